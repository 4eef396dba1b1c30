package apiclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psds-microservice/suptec-client/internal/logging"
)

func TestDoSetsHeaders(t *testing.T) {
	var got *http.Request
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/api", time.Second, logging.Discard())
	resp := c.Do(context.Background(), http.MethodPost, "Gerente/Adicionar", []byte(`{"nome":"Ana"}`), "tok")

	require.NotNil(t, got)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, resp.OK())
	assert.JSONEq(t, `{"ok":true}`, string(resp.Body))
	assert.Equal(t, "/api/Gerente/Adicionar", got.URL.Path)
	assert.Equal(t, "application/json", got.Header.Get("Accept"))
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.Equal(t, "Bearer tok", got.Header.Get("Authorization"))
	assert.JSONEq(t, `{"nome":"Ana"}`, string(gotBody))
}

func TestDoWithoutBodyAndToken(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL+"/", time.Second, logging.Discard())
	resp := c.Do(context.Background(), http.MethodGet, "Tecnico/Listar", nil, "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.Empty(t, got.Get("Content-Type"))
	assert.Empty(t, got.Get("Authorization"))
}

func TestDoReturnsNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	resp := New(srv.URL, time.Second, logging.Discard()).Do(context.Background(), http.MethodGet, "Chamado/Listar", nil, "x")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, resp.OK())
	assert.False(t, resp.TransportFailed())
}

func TestDoTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	resp := New(url, time.Second, logging.Discard()).Do(context.Background(), http.MethodGet, "Chamado/Listar", nil, "")
	assert.Equal(t, StatusTransportError, resp.StatusCode)
	assert.Nil(t, resp.Body)
	assert.True(t, resp.TransportFailed())
}

func TestDoTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	resp := New(srv.URL, 20*time.Millisecond, logging.Discard()).Do(context.Background(), http.MethodGet, "Chamado/Listar", nil, "")
	assert.Equal(t, StatusTransportError, resp.StatusCode)
}
