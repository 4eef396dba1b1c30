package workflow

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/psds-microservice/suptec-client/internal/logging"
	"github.com/psds-microservice/suptec-client/internal/model"
	"github.com/psds-microservice/suptec-client/internal/search"
	"github.com/psds-microservice/suptec-client/internal/selection"
	"github.com/psds-microservice/suptec-client/internal/service"
)

// NoTechnician — пункт списка техников «снять назначение».
const NoTechnician = "Nenhum"

// TicketWorkflow — список тикетов: загрузка, поиск, фильтр по приоритету,
// выбор и действия над выбранным тикетом.
type TicketWorkflow struct {
	flight
	svc    service.TicketServicer
	users  service.UserServicer
	engine *search.Engine[model.Ticket]
	sel    *selection.Machine[model.Ticket]
	prompt Prompter
	log    *slog.Logger

	mu      sync.RWMutex
	all     []model.Ticket
	visible []model.Ticket
	skipped int
}

// NewTicketWorkflow; users нужен только для списка техников в форме
// редактирования и может быть nil.
func NewTicketWorkflow(svc service.TicketServicer, users service.UserServicer, p Prompter, log *slog.Logger) *TicketWorkflow {
	return &TicketWorkflow{
		svc:    svc,
		users:  users,
		engine: search.Tickets(),
		sel:    selection.New[model.Ticket](),
		prompt: p,
		log:    logging.Component(log, "ticket_workflow"),
	}
}

// Reload загружает тикеты заново, сбрасывает выбор и применяет текущий поиск.
func (w *TicketWorkflow) Reload(ctx context.Context) error {
	if !w.begin() {
		return ErrBusy
	}
	defer w.end()
	w.reload(ctx)
	return nil
}

func (w *TicketWorkflow) reload(ctx context.Context) {
	res := w.svc.List(ctx)
	if o := w.svc.LastOutcome(); o != service.OutcomeOK {
		title, msg := failureMessage(o, "Erro ao Carregar", "Não foi possível carregar os chamados.")
		w.prompt.Error(title, msg)
	}
	w.sel.Clear()
	w.mu.Lock()
	w.all = res.Items
	w.skipped = res.Skipped
	w.mu.Unlock()
	w.refilter()
}

func (w *TicketWorkflow) refilter() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.visible = w.engine.Apply(w.all)
}

// SetTerm меняет строку поиска и пересчитывает видимый список.
func (w *TicketWorkflow) SetTerm(term string) []model.Ticket {
	w.engine.SetTerm(term)
	w.refilter()
	return w.Visible()
}

// SetPriorityFilter; "" или "Todas" — без фильтра.
func (w *TicketWorkflow) SetPriorityFilter(priority string) []model.Ticket {
	w.engine.SetCategory(priority)
	w.refilter()
	return w.Visible()
}

// ClearSearch сбрасывает и строку поиска, и фильтр.
func (w *TicketWorkflow) ClearSearch() []model.Ticket {
	w.engine.Clear()
	w.refilter()
	return w.Visible()
}

func (w *TicketWorkflow) Term() string           { return w.engine.Term() }
func (w *TicketWorkflow) PriorityFilter() string { return w.engine.Category() }
func (w *TicketWorkflow) Counter() string        { return w.engine.Counter() }

// Visible — копия текущего отфильтрованного списка.
func (w *TicketWorkflow) Visible() []model.Ticket {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]model.Ticket(nil), w.visible...)
}

// All — все загруженные тикеты без фильтра (для отчёта).
func (w *TicketWorkflow) All() []model.Ticket {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]model.Ticket(nil), w.all...)
}

// Skipped — сколько элементов последней загрузки не удалось разобрать.
func (w *TicketWorkflow) Skipped() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.skipped
}

// Select выбирает видимый тикет по ID.
func (w *TicketWorkflow) Select(id string) bool {
	for _, t := range w.Visible() {
		if t.ID == id {
			w.sel.Select(t)
			return true
		}
	}
	return false
}

// SelectIndex выбирает тикет по позиции в видимом списке.
func (w *TicketWorkflow) SelectIndex(i int) bool {
	v := w.Visible()
	if i < 0 || i >= len(v) {
		return false
	}
	w.sel.Select(v[i])
	return true
}

func (w *TicketWorkflow) Deselect() { w.sel.Clear() }

func (w *TicketWorkflow) Selected() (model.Ticket, bool) { return w.sel.Selected() }

func (w *TicketWorkflow) Selection() *selection.Machine[model.Ticket] { return w.sel }

// View показывает карточку выбранного тикета.
func (w *TicketWorkflow) View() (string, error) {
	t, ok := w.sel.Selected()
	if !ok {
		w.prompt.Warn(titleWarning, "Selecione um chamado para visualizar.")
		return "", ErrNoSelection
	}
	details := TicketDetails(t)
	w.prompt.Info("Detalhes do Chamado", details)
	return details, nil
}

// BeginEdit открывает форму редактирования выбранного тикета.
func (w *TicketWorkflow) BeginEdit(ctx context.Context) (*TicketEditForm, error) {
	t, ok := w.sel.Selected()
	if !ok {
		w.prompt.Warn(titleWarning, "Selecione um chamado para editar.")
		return nil, ErrNoSelection
	}
	if !t.HasID() {
		w.prompt.Error(titleDataError, "Não é possível editar este chamado porque ele não possui um ID válido.")
		return nil, ErrNoSelection
	}
	// Список техников грузится по сети, поэтому под тем же флагом.
	if !w.begin() {
		return nil, ErrBusy
	}
	defer w.end()
	return newTicketEditForm(w, t, w.technicians(ctx)), nil
}

// technicians — имена техников для выбора ответственного.
func (w *TicketWorkflow) technicians(ctx context.Context) []string {
	opts := []string{NoTechnician}
	if w.users == nil {
		return opts
	}
	for _, u := range w.users.List(ctx).Items {
		if u.Variant == model.Technician && strings.TrimSpace(u.Name) != "" {
			opts = append(opts, u.Name)
		}
	}
	return opts
}

// Delete удаляет выбранный тикет после подтверждения. true — удалён.
func (w *TicketWorkflow) Delete(ctx context.Context) (bool, error) {
	t, ok := w.sel.Selected()
	if !ok {
		w.prompt.Warn(titleWarning, "Selecione um chamado para excluir.")
		return false, ErrNoSelection
	}
	if !t.HasID() {
		w.prompt.Error(titleDataError, "Não é possível excluir este chamado porque ele não possui um ID válido.")
		return false, nil
	}
	if !w.begin() {
		return false, ErrBusy
	}
	defer w.end()

	if !w.prompt.Confirm("Confirmar Exclusão", TicketDeleteConfirmation(t)) {
		return false, nil
	}
	if !w.svc.Delete(ctx, t) {
		title, msg := failureMessage(w.svc.LastOutcome(), "Erro ao Excluir",
			"Não foi possível excluir o chamado.\n\nID do Chamado: "+t.ID)
		w.prompt.Error(title, msg)
		return false, nil
	}
	w.log.Info("ticket deleted", "id", t.ID)
	w.prompt.Info(titleSuccess, "Chamado excluído com sucesso!\n\nID: "+t.ID+"\nTítulo: "+t.Title)
	w.reload(ctx)
	return true, nil
}
