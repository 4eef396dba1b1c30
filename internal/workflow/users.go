package workflow

import (
	"context"
	"log/slog"
	"sync"

	"github.com/psds-microservice/suptec-client/internal/logging"
	"github.com/psds-microservice/suptec-client/internal/model"
	"github.com/psds-microservice/suptec-client/internal/search"
	"github.com/psds-microservice/suptec-client/internal/selection"
	"github.com/psds-microservice/suptec-client/internal/service"
)

// SelfChecker — определяет, что запись принадлежит вошедшему менеджеру.
type SelfChecker interface {
	LoginEmail() string
}

// UserWorkflow — список пользователей всех трёх типов.
type UserWorkflow struct {
	flight
	svc    service.UserServicer
	reg    service.Registrar
	self   SelfChecker
	engine *search.Engine[model.User]
	sel    *selection.Machine[model.User]
	prompt Prompter
	log    *slog.Logger

	mu      sync.RWMutex
	all     []model.User
	visible []model.User
	skipped int
}

func NewUserWorkflow(svc service.UserServicer, reg service.Registrar, self SelfChecker, p Prompter, log *slog.Logger) *UserWorkflow {
	return &UserWorkflow{
		svc:    svc,
		reg:    reg,
		self:   self,
		engine: search.Users(),
		sel:    selection.New[model.User](),
		prompt: p,
		log:    logging.Component(log, "user_workflow"),
	}
}

func (w *UserWorkflow) Reload(ctx context.Context) error {
	if !w.begin() {
		return ErrBusy
	}
	defer w.end()
	w.reload(ctx)
	return nil
}

func (w *UserWorkflow) reload(ctx context.Context) {
	res := w.svc.List(ctx)
	if o := w.svc.LastOutcome(); o != service.OutcomeOK {
		title, msg := failureMessage(o, "Erro ao Carregar", "Não foi possível carregar todos os usuários.")
		w.prompt.Error(title, msg)
	}
	w.sel.Clear()
	w.mu.Lock()
	w.all = res.Items
	w.skipped = res.Skipped
	w.mu.Unlock()
	w.refilter()
}

func (w *UserWorkflow) refilter() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.visible = w.engine.Apply(w.all)
}

func (w *UserWorkflow) SetTerm(term string) []model.User {
	w.engine.SetTerm(term)
	w.refilter()
	return w.Visible()
}

// SetVariantFilter; "" или "Todos" — все типы.
func (w *UserWorkflow) SetVariantFilter(label string) []model.User {
	w.engine.SetCategory(label)
	w.refilter()
	return w.Visible()
}

func (w *UserWorkflow) ClearSearch() []model.User {
	w.engine.Clear()
	w.refilter()
	return w.Visible()
}

func (w *UserWorkflow) Term() string          { return w.engine.Term() }
func (w *UserWorkflow) VariantFilter() string { return w.engine.Category() }
func (w *UserWorkflow) Counter() string       { return w.engine.Counter() }

func (w *UserWorkflow) Visible() []model.User {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]model.User(nil), w.visible...)
}

func (w *UserWorkflow) All() []model.User {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]model.User(nil), w.all...)
}

func (w *UserWorkflow) Skipped() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.skipped
}

// Select выбирает видимого пользователя по ID (ID уникален в пределах типа,
// поэтому при совпадении берётся первый).
func (w *UserWorkflow) Select(id string) bool {
	for _, u := range w.Visible() {
		if u.ID == id {
			w.sel.Select(u)
			return true
		}
	}
	return false
}

func (w *UserWorkflow) SelectIndex(i int) bool {
	v := w.Visible()
	if i < 0 || i >= len(v) {
		return false
	}
	w.sel.Select(v[i])
	return true
}

func (w *UserWorkflow) Deselect() { w.sel.Clear() }

func (w *UserWorkflow) Selected() (model.User, bool) { return w.sel.Selected() }

func (w *UserWorkflow) Selection() *selection.Machine[model.User] { return w.sel }

func (w *UserWorkflow) View() (string, error) {
	u, ok := w.sel.Selected()
	if !ok {
		w.prompt.Warn(titleWarning, "Selecione um usuário para visualizar os detalhes.")
		return "", ErrNoSelection
	}
	details := UserDetails(u)
	w.prompt.Info("Detalhes do Usuário", details)
	return details, nil
}

func (w *UserWorkflow) BeginEdit() (*UserEditForm, error) {
	u, ok := w.sel.Selected()
	if !ok {
		w.prompt.Warn(titleWarning, "Selecione um usuário para editar.")
		return nil, ErrNoSelection
	}
	if !u.HasID() || u.Variant == nil {
		w.prompt.Error(titleDataError, "Usuário inválido para edição.")
		return nil, ErrNoSelection
	}
	return newUserEditForm(w, u), nil
}

// BeginCreate открывает пустую форму регистрации.
func (w *UserWorkflow) BeginCreate() *UserCreateForm {
	return &UserCreateForm{wf: w}
}

// IsSelf — запись принадлежит вошедшему менеджеру.
func (w *UserWorkflow) IsSelf(u model.User) bool {
	return w.self != nil && model.SameEmail(u.Email, w.self.LoginEmail())
}

// Delete удаляет выбранного пользователя. Себя удалить нельзя.
func (w *UserWorkflow) Delete(ctx context.Context) (bool, error) {
	u, ok := w.sel.Selected()
	if !ok {
		w.prompt.Warn(titleWarning, "Selecione um usuário para excluir.")
		return false, ErrNoSelection
	}
	if !u.HasID() {
		w.prompt.Error(titleDataError, "Não é possível excluir este usuário porque ele não possui um ID válido.\n\n"+
			"Isso pode indicar um problema na sincronização com a API.\nTente atualizar a lista de usuários.")
		return false, nil
	}
	if !w.begin() {
		return false, ErrBusy
	}
	defer w.end()

	if !w.prompt.Confirm("Confirmar Exclusão", UserDeleteConfirmation(u)) {
		return false, nil
	}
	if w.IsSelf(u) {
		w.prompt.Warn("Operação Não Permitida", "Você não pode excluir o próprio usuário que está logado no sistema.\n\n"+
			"Por favor, peça a outro administrador para realizar esta operação.")
		return false, nil
	}
	if !w.svc.Delete(ctx, u) {
		title, msg := failureMessage(w.svc.LastOutcome(), "Erro ao Excluir",
			"Não foi possível excluir o usuário '"+u.Name+"'.\n\n"+
				"Verifique:\n• Conexão com a API\n• Se o usuário ainda existe\n\n"+
				"Se o problema persistir, contate o administrador.")
		w.prompt.Error(title, msg)
		return false, nil
	}
	w.log.Info("user deleted", "id", u.ID, "variant", u.VariantLabel())
	w.prompt.Info(titleSuccess, "Usuário '"+u.Name+"' foi excluído com sucesso!")
	w.reload(ctx)
	return true, nil
}
