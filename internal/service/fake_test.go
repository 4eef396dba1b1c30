package service

import (
	"context"
	"sync"

	"github.com/psds-microservice/suptec-client/internal/apiclient"
)

type call struct {
	Method   string
	Endpoint string
	Body     []byte
	Token    string
}

// fakeAPI отвечает заранее заданными ответами по "METHOD endpoint".
type fakeAPI struct {
	mu        sync.Mutex
	responses map[string]apiclient.Response
	calls     []call
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{responses: map[string]apiclient.Response{}}
}

func (f *fakeAPI) on(method, endpoint string, status int, body string) *fakeAPI {
	var b []byte
	if body != "" {
		b = []byte(body)
	}
	f.responses[method+" "+endpoint] = apiclient.Response{StatusCode: status, Body: b}
	return f
}

func (f *fakeAPI) Do(_ context.Context, method, endpoint string, body []byte, token string) apiclient.Response {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{method, endpoint, body, token})
	if r, ok := f.responses[method+" "+endpoint]; ok {
		return r
	}
	return apiclient.Response{StatusCode: 404}
}

func (f *fakeAPI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeAPI) last() call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

type fakeCreds struct {
	token string
	email string
}

func (c fakeCreds) Token() string      { return c.token }
func (c fakeCreds) LoginEmail() string { return c.email }
