package session

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psds-microservice/suptec-client/internal/apiclient"
	"github.com/psds-microservice/suptec-client/internal/logging"
)

type fakeAPI struct {
	mu       sync.Mutex
	resp     apiclient.Response
	method   string
	endpoint string
	body     []byte
	token    string
}

func (f *fakeAPI) Do(_ context.Context, method, endpoint string, body []byte, token string) apiclient.Response {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.method, f.endpoint, f.body, f.token = method, endpoint, body, token
	return f.resp
}

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	return s
}

func tokenBody(t *testing.T, token string) []byte {
	t.Helper()
	b, err := json.Marshal(map[string]string{"token": token})
	require.NoError(t, err)
	return b
}

func TestLoginSuccessReadsNameClaim(t *testing.T) {
	tok := signed(t, jwt.MapClaims{DefaultNameClaim: "Maria Gerente"})
	api := &fakeAPI{resp: apiclient.Response{StatusCode: 200, Body: tokenBody(t, tok)}}
	s := New(api, Options{}, logging.Discard())

	require.True(t, s.Login(context.Background(), "maria@suptec.com", "123456"))
	assert.Equal(t, "POST", api.method)
	assert.Equal(t, DefaultLoginEndpoint, api.endpoint)
	assert.Empty(t, api.token)
	assert.JSONEq(t, `{"email":"maria@suptec.com","senha":"123456"}`, string(api.body))

	assert.True(t, s.Authenticated())
	assert.Equal(t, tok, s.Token())
	assert.Equal(t, "maria@suptec.com", s.Email())
	assert.Equal(t, "Maria Gerente", s.DisplayName())
}

func TestLoginFallsBackToNameClaim(t *testing.T) {
	tok := signed(t, jwt.MapClaims{"name": "Jo"})
	s := New(&fakeAPI{resp: apiclient.Response{StatusCode: 200, Body: tokenBody(t, tok)}}, Options{}, logging.Discard())
	require.True(t, s.Login(context.Background(), "x@y.com", "p"))
	assert.Equal(t, "Jo", s.DisplayName())
}

func TestLoginDisplayNameFromEmail(t *testing.T) {
	s := New(&fakeAPI{resp: apiclient.Response{StatusCode: 200, Body: tokenBody(t, "opaque-token")}}, Options{}, logging.Discard())
	require.True(t, s.Login(context.Background(), "joao.silva@suptec.com", "p"))
	assert.Equal(t, "Joao.silva", s.DisplayName())
}

func TestLoginFailures(t *testing.T) {
	tests := []struct {
		name string
		resp apiclient.Response
	}{
		{"transport", apiclient.Response{StatusCode: apiclient.StatusTransportError}},
		{"unauthorized", apiclient.Response{StatusCode: 401, Body: []byte(`{"message":"x"}`)}},
		{"empty body", apiclient.Response{StatusCode: 200, Body: []byte("  ")}},
		{"no token", apiclient.Response{StatusCode: 200, Body: []byte(`{"ok":true}`)}},
		{"blank token", apiclient.Response{StatusCode: 200, Body: []byte(`{"token":"  "}`)}},
		{"not json", apiclient.Response{StatusCode: 200, Body: []byte(`<html>`)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(&fakeAPI{resp: tt.resp}, Options{}, logging.Discard())
			assert.False(t, s.Login(context.Background(), "a@b.com", "p"))
			assert.False(t, s.Authenticated())
			assert.Equal(t, Placeholder, s.DisplayName())
			assert.Equal(t, tt.resp.StatusCode, s.LastStatus())
		})
	}
}

func TestLogoutClearsState(t *testing.T) {
	s := New(&fakeAPI{resp: apiclient.Response{StatusCode: 200, Body: tokenBody(t, "t")}}, Options{LoginEndpoint: "Auth/Login"}, logging.Discard())
	require.True(t, s.Login(context.Background(), "ana@b.com", "p"))
	s.Logout()
	assert.False(t, s.Authenticated())
	assert.Empty(t, s.LoginEmail())
	assert.Equal(t, Placeholder, s.Email())
	assert.Equal(t, Placeholder, s.DisplayName())
}

func TestNameFromEmail(t *testing.T) {
	assert.Equal(t, "Ána", nameFromEmail("ána@x.com"))
	assert.Equal(t, Placeholder, nameFromEmail("@x.com"))
	assert.Equal(t, Placeholder, nameFromEmail(""))
}

func TestEmailPlaceholderWithoutSession(t *testing.T) {
	s := New(&fakeAPI{}, Options{}, logging.Discard())
	assert.Equal(t, Placeholder, s.Email())
	assert.Empty(t, s.LoginEmail())
}
