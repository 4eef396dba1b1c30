package service

import (
	"net/http"
	"sync"

	"github.com/psds-microservice/suptec-client/internal/apiclient"
)

// Outcome — итог последнего вызова сервиса. Сервисы отвечают bool,
// а Outcome позволяет слою workflow выбрать сообщение для оператора.
type Outcome int

const (
	OutcomeOK Outcome = iota
	// OutcomeTransport — сервер недоступен (StatusTransportError).
	OutcomeTransport
	// OutcomeUnauthorized — 401/403.
	OutcomeUnauthorized
	OutcomeNotFound
	// OutcomeServer — 5xx.
	OutcomeServer
	// OutcomeRejected — прочие не-2xx (валидация на сервере, конфликт).
	OutcomeRejected
	// OutcomeNoSession — нет токена, запрос не отправлялся.
	OutcomeNoSession
	// OutcomeInvalid — запись без ID, самоудаление и т.п.; запрос не отправлялся.
	OutcomeInvalid
	// OutcomeMalformed — сервер ответил 2xx, но тело не разобрать.
	OutcomeMalformed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeTransport:
		return "transport"
	case OutcomeUnauthorized:
		return "unauthorized"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeServer:
		return "server"
	case OutcomeRejected:
		return "rejected"
	case OutcomeNoSession:
		return "no_session"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeMalformed:
		return "malformed"
	}
	return "unknown"
}

// OutcomeOf классифицирует ответ API.
func OutcomeOf(resp apiclient.Response) Outcome {
	switch code := resp.StatusCode; {
	case code == apiclient.StatusTransportError:
		return OutcomeTransport
	case resp.OK():
		return OutcomeOK
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return OutcomeUnauthorized
	case code == http.StatusNotFound:
		return OutcomeNotFound
	case code >= 500:
		return OutcomeServer
	}
	return OutcomeRejected
}

// outcomeHolder хранит последний Outcome сервиса.
type outcomeHolder struct {
	mu   sync.Mutex
	last Outcome
}

func (h *outcomeHolder) set(o Outcome) {
	h.mu.Lock()
	h.last = o
	h.mu.Unlock()
}

func (h *outcomeHolder) LastOutcome() Outcome {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}
