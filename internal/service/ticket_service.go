package service

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/psds-microservice/suptec-client/internal/apiclient"
	"github.com/psds-microservice/suptec-client/internal/logging"
	"github.com/psds-microservice/suptec-client/internal/model"
)

const (
	endpointTicketList   = "Chamado/ListarChamados"
	endpointTicketEdit   = "Chamado/Editar/"
	endpointTicketDelete = "Chamado/Excluir/"
)

// TicketServicer — операции над тикетами, которые нужны workflow и CLI.
type TicketServicer interface {
	List(ctx context.Context) ListResult[model.Ticket]
	Search(ctx context.Context, term string) ListResult[model.Ticket]
	FilterByPriority(ctx context.Context, priority string) ListResult[model.Ticket]
	Update(ctx context.Context, t model.Ticket) bool
	Delete(ctx context.Context, t model.Ticket) bool
	LastOutcome() Outcome
}

type TicketService struct {
	outcomeHolder
	api   apiclient.Doer
	creds Credentials
	log   *slog.Logger
}

func NewTicketService(api apiclient.Doer, creds Credentials, log *slog.Logger) *TicketService {
	return &TicketService{
		api:   api,
		creds: creds,
		log:   logging.Component(log, "ticket_service"),
	}
}

// List загружает все тикеты. Нечитаемые элементы пропускаются.
func (s *TicketService) List(ctx context.Context) ListResult[model.Ticket] {
	token := s.creds.Token()
	if token == "" {
		s.log.Warn("list: no session token")
		s.set(OutcomeNoSession)
		return ListResult[model.Ticket]{}
	}
	resp := s.api.Do(ctx, http.MethodGet, endpointTicketList, nil, token)
	if resp.StatusCode != http.StatusOK || resp.Body == nil {
		s.log.Warn("list failed", "status", resp.StatusCode)
		s.set(failureOutcome(resp))
		return ListResult[model.Ticket]{}
	}
	elems, err := decodeArray(resp.Body)
	if err != nil {
		s.log.Error("list: malformed response", "error", err)
		s.set(OutcomeMalformed)
		return ListResult[model.Ticket]{}
	}

	out := ListResult[model.Ticket]{Items: make([]model.Ticket, 0, len(elems))}
	for i, raw := range elems {
		t, err := decodeTicket(raw)
		if err != nil {
			s.log.Warn("list: skip malformed ticket", "index", i, "error", err)
			out.Skipped++
			continue
		}
		out.Items = append(out.Items, t)
	}
	s.log.Debug("tickets loaded", "count", len(out.Items), "skipped", out.Skipped)
	s.set(OutcomeOK)
	return out
}

// Search — List, отфильтрованный по TicketMatches.
func (s *TicketService) Search(ctx context.Context, term string) ListResult[model.Ticket] {
	res := s.List(ctx)
	if strings.TrimSpace(term) == "" {
		return res
	}
	res.Items = filter(res.Items, func(t model.Ticket) bool { return TicketMatches(t, term) })
	return res
}

// FilterByPriority — List, отфильтрованный по приоритету ("Todas" — без фильтра).
func (s *TicketService) FilterByPriority(ctx context.Context, priority string) ListResult[model.Ticket] {
	res := s.List(ctx)
	res.Items = filter(res.Items, func(t model.Ticket) bool { return TicketHasPriority(t, priority) })
	return res
}

// Update отправляет изменяемые поля тикета. Успех — только 200.
func (s *TicketService) Update(ctx context.Context, t model.Ticket) bool {
	if !t.HasID() {
		s.log.Warn("update: ticket without id")
		s.set(OutcomeInvalid)
		return false
	}
	token := s.creds.Token()
	if token == "" {
		s.log.Warn("update: no session token")
		s.set(OutcomeNoSession)
		return false
	}
	body, err := encodeTicketUpdate(t)
	if err != nil {
		s.log.Error("update: marshal", "error", err)
		s.set(OutcomeInvalid)
		return false
	}
	resp := s.api.Do(ctx, http.MethodPut, endpointTicketEdit+t.ID, body, token)
	if resp.StatusCode != http.StatusOK {
		s.log.Warn("update failed", "id", t.ID, "status", resp.StatusCode)
		s.set(failureOutcome(resp))
		return false
	}
	s.log.Info("ticket updated", "id", t.ID)
	s.set(OutcomeOK)
	return true
}

// Delete удаляет тикет. Успех — только 200.
func (s *TicketService) Delete(ctx context.Context, t model.Ticket) bool {
	if !t.HasID() {
		s.log.Warn("delete: ticket without id")
		s.set(OutcomeInvalid)
		return false
	}
	token := s.creds.Token()
	if token == "" {
		s.log.Warn("delete: no session token")
		s.set(OutcomeNoSession)
		return false
	}
	resp := s.api.Do(ctx, http.MethodDelete, endpointTicketDelete+t.ID, nil, token)
	if resp.StatusCode != http.StatusOK {
		s.log.Warn("delete failed", "id", t.ID, "status", resp.StatusCode)
		s.set(failureOutcome(resp))
		return false
	}
	s.log.Info("ticket deleted", "id", t.ID)
	s.set(OutcomeOK)
	return true
}

// failureOutcome — как OutcomeOf, но 2xx, не принятый вызывающим
// (например 204 там, где ждём 200), считается отказом.
func failureOutcome(resp apiclient.Response) Outcome {
	if o := OutcomeOf(resp); o != OutcomeOK {
		return o
	}
	return OutcomeRejected
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
