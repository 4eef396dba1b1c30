package workflow

import (
	"context"
	"errors"
	"sync"

	"github.com/psds-microservice/suptec-client/internal/model"
	"github.com/psds-microservice/suptec-client/internal/validate"
)

// FormState — состояние формы редактирования/создания.
//
//	Editing → Validating → Invalid → Editing
//	                     → Confirming → Declined → Editing
//	                                  → Submitting → Closed (успех, перезагрузка списка)
//	                                               → Editing (ошибка)
type FormState int

const (
	FormEditing FormState = iota
	FormValidating
	FormInvalid
	FormConfirming
	FormDeclined
	FormSubmitting
	FormClosed
)

func (s FormState) String() string {
	switch s {
	case FormEditing:
		return "editing"
	case FormValidating:
		return "validating"
	case FormInvalid:
		return "invalid"
	case FormConfirming:
		return "confirming"
	case FormDeclined:
		return "declined"
	case FormSubmitting:
		return "submitting"
	case FormClosed:
		return "closed"
	}
	return "unknown"
}

// validFormTransitions — матрица допустимых переходов.
var validFormTransitions = map[FormState]map[FormState]bool{
	FormEditing:    {FormValidating: true, FormClosed: true},
	FormValidating: {FormInvalid: true, FormConfirming: true},
	FormInvalid:    {FormEditing: true},
	FormConfirming: {FormDeclined: true, FormSubmitting: true},
	FormDeclined:   {FormEditing: true},
	FormSubmitting: {FormClosed: true, FormEditing: true},
	FormClosed:     {},
}

// Visibility — какие поля принадлежности показывать.
type Visibility struct {
	Sector    bool
	Specialty bool
}

// FieldVisibility: техник — специализация, остальные — отдел.
func FieldVisibility(v model.Variant) Visibility {
	if v != nil && v.Affiliation() == model.AffiliationSpecialty {
		return Visibility{Specialty: true}
	}
	return Visibility{Sector: true}
}

// formMachine — общий автомат форм. Переходы пишутся в history.
type formMachine struct {
	mu      sync.Mutex
	state   FormState
	history []FormState
	invalid *validate.FieldError
}

func (m *formMachine) to(s FormState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !validFormTransitions[m.state][s] {
		panic("workflow: invalid form transition " + m.state.String() + " -> " + s.String())
	}
	m.state = s
	m.history = append(m.history, s)
}

// State — текущее состояние формы.
func (m *formMachine) State() FormState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// History — все пройденные состояния, начиная с первого перехода.
func (m *formMachine) History() []FormState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]FormState(nil), m.history...)
}

// InvalidField — ошибка последней неудачной проверки (поле для фокуса).
func (m *formMachine) InvalidField() *validate.FieldError {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.invalid
}

// submitSteps — то, чем формы отличаются друг от друга.
type submitSteps struct {
	validate     func() error
	confirmTitle string
	confirmText  func() string
	submit       func(ctx context.Context) bool
	onSuccess    func(ctx context.Context)
	onFailure    func()
}

// run проводит форму по автомату. Возвращает nil только при успехе.
func (m *formMachine) run(ctx context.Context, f *flight, p Prompter, s submitSteps) error {
	if m.State() == FormClosed {
		return ErrClosed
	}
	if !f.begin() {
		return ErrBusy
	}
	defer f.end()

	m.to(FormValidating)
	if err := s.validate(); err != nil {
		m.to(FormInvalid)
		fe, ok := validate.AsFieldError(err)
		if !ok {
			fe = &validate.FieldError{Title: "Erro", Message: err.Error()}
		}
		m.mu.Lock()
		m.invalid = fe
		m.mu.Unlock()
		p.Warn(fe.Title, fe.Message)
		m.to(FormEditing)
		return fe
	}
	m.mu.Lock()
	m.invalid = nil
	m.mu.Unlock()

	m.to(FormConfirming)
	if !p.Confirm(s.confirmTitle, s.confirmText()) {
		m.to(FormDeclined)
		m.to(FormEditing)
		return ErrDeclined
	}

	m.to(FormSubmitting)
	if !s.submit(ctx) {
		s.onFailure()
		m.to(FormEditing)
		return ErrFailed
	}
	m.to(FormClosed)
	s.onSuccess(ctx)
	return nil
}

// cancel закрывает форму; при несохранённых изменениях спрашивает оператора.
func (m *formMachine) cancel(p Prompter, dirty bool, title, text string) bool {
	if m.State() != FormEditing {
		return false
	}
	if dirty && !p.Confirm(title, text) {
		return false
	}
	m.to(FormClosed)
	return true
}

// IsValidation — ошибка Submit вызвана проверкой полей.
func IsValidation(err error) bool {
	var fe *validate.FieldError
	return errors.As(err, &fe)
}
