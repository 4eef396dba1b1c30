package apiclient

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/psds-microservice/suptec-client/internal/logging"
)

// StatusTransportError — код ответа, когда до сервера не достучались
// (отказ соединения, таймаут, ошибка чтения тела).
const StatusTransportError = -1

const DefaultTimeout = 30 * time.Second

// Response — результат вызова API. Body может быть nil.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK — код 2xx.
func (r Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// TransportFailed — запрос не дошёл до сервера.
func (r Response) TransportFailed() bool {
	return r.StatusCode == StatusTransportError
}

// Doer — то, что нужно сервисам от клиента (подменяется в тестах).
type Doer interface {
	Do(ctx context.Context, method, endpoint string, body []byte, token string) Response
}

// Client — единственная точка выхода в SUPTEC API. Ошибок не возвращает:
// любые сбои транспорта превращаются в StatusTransportError.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// New возвращает клиент. timeout <= 0 — DefaultTimeout.
func New(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if baseURL != "" && !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: logging.Component(log, "apiclient"),
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do выполняет запрос к baseURL+endpoint. Content-Type ставится только
// при непустом теле, Authorization — только при непустом токене.
func (c *Client) Do(ctx context.Context, method, endpoint string, body []byte, token string) Response {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	url := c.baseURL + strings.TrimPrefix(endpoint, "/")
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		c.log.Error("new request", "method", method, "endpoint", endpoint, "error", err)
		return Response{StatusCode: StatusTransportError}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("request failed", "method", method, "endpoint", endpoint, "error", err)
		return Response{StatusCode: StatusTransportError}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Warn("read body", "method", method, "endpoint", endpoint, "status", resp.StatusCode, "error", err)
		return Response{StatusCode: StatusTransportError}
	}
	c.log.Debug("api call",
		"method", method,
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)
	return Response{StatusCode: resp.StatusCode, Body: data}
}
