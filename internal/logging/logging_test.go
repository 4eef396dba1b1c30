package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"":        slog.LevelInfo,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("trace")
	assert.Error(t, err)
}

func TestNewWritesComponent(t *testing.T) {
	var buf bytes.Buffer
	l, err := New("debug", "text", &buf)
	require.NoError(t, err)
	Component(l, "apiclient").Debug("call")
	assert.Contains(t, buf.String(), "component=apiclient")
}

func TestForTUIWithoutFileDiscards(t *testing.T) {
	l, c, err := ForTUI("info", "")
	require.NoError(t, err)
	require.NotNil(t, l)
	assert.NoError(t, c.Close())
}
