package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/psds-microservice/suptec-client/internal/model"
	"github.com/psds-microservice/suptec-client/internal/validate"
)

// TicketEditForm — поля формы редактирования тикета. ID, дата открытия и
// данные заявителя берутся из исходной записи и не редактируются.
type TicketEditForm struct {
	formMachine
	wf       *TicketWorkflow
	original model.Ticket

	Title       string
	Description string
	Priority    string
	// Status пустой — статус не меняется.
	Status string
	// AssignedTechnician: "" или NoTechnician — не назначен.
	AssignedTechnician string
	TechnicianResponse string

	// Technicians — варианты для AssignedTechnician.
	Technicians []string
}

func newTicketEditForm(wf *TicketWorkflow, t model.Ticket, technicians []string) *TicketEditForm {
	f := &TicketEditForm{
		wf:          wf,
		original:    t,
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Technicians: technicians,
	}
	if p, ok := model.ParsePriority(t.Priority); ok {
		f.Priority = string(p)
	}
	if t.Status != nil {
		f.Status = *t.Status
	}
	if t.AssignedTechnician != nil {
		f.AssignedTechnician = *t.AssignedTechnician
	}
	if t.TechnicianResponse != nil {
		f.TechnicianResponse = *t.TechnicianResponse
	}
	return f
}

// Original — запись, с которой открыта форма.
func (f *TicketEditForm) Original() model.Ticket { return f.original }

// Result — тикет, который будет отправлен на сервер.
func (f *TicketEditForm) Result() model.Ticket {
	c := model.TicketChanges{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Priority:    strings.TrimSpace(f.Priority),
		Status:      f.original.Status,
	}
	if p, ok := model.ParsePriority(f.Priority); ok {
		c.Priority = string(p)
	}
	if s := strings.TrimSpace(f.Status); s != "" {
		c.Status = &s
	}
	if tech := strings.TrimSpace(f.AssignedTechnician); tech != "" && tech != NoTechnician {
		c.AssignedTechnician = &tech
	}
	if r := strings.TrimSpace(f.TechnicianResponse); r != "" {
		c.TechnicianResponse = &r
	}
	return f.original.WithChanges(c)
}

// Dirty — есть изменения относительно исходной записи.
func (f *TicketEditForm) Dirty() bool {
	r := f.Result()
	o := f.original
	return r.Title != o.Title || r.Description != o.Description ||
		!model.SamePriority(r.Priority, o.Priority) ||
		r.StatusText() != o.StatusText() ||
		r.AssignedTechnicianText() != o.AssignedTechnicianText() ||
		r.TechnicianResponseText() != o.TechnicianResponseText()
}

// Check проверяет поля, не меняя состояния формы.
func (f *TicketEditForm) Check() error { return f.steps().validate() }

// Confirmation — заголовок и текст запроса подтверждения перед отправкой.
func (f *TicketEditForm) Confirmation() (string, string) {
	s := f.steps()
	return s.confirmTitle, s.confirmText()
}

// Submit: проверка → подтверждение → отправка → перезагрузка списка.
func (f *TicketEditForm) Submit(ctx context.Context) error {
	return f.run(ctx, &f.wf.flight, f.wf.prompt, f.steps())
}

func (f *TicketEditForm) steps() submitSteps {
	return submitSteps{
		validate: func() error {
			return validate.CheckTicketEdit(validate.TicketEdit{Title: f.Title, Priority: f.Priority})
		},
		confirmTitle: "Confirmar Edição",
		confirmText: func() string {
			r := f.Result()
			return fmt.Sprintf("Deseja salvar as alterações do chamado?\n\nTítulo: %s\nPrioridade: %s\nTécnico: %s",
				r.Title, r.Priority, r.AssignedTechnicianText())
		},
		submit: func(ctx context.Context) bool {
			return f.wf.svc.Update(ctx, f.Result())
		},
		onSuccess: func(ctx context.Context) {
			f.wf.prompt.Info(titleSuccess, "Chamado atualizado com sucesso!")
			f.wf.reload(ctx)
		},
		onFailure: func() {
			title, msg := failureMessage(f.wf.svc.LastOutcome(), "Erro ao Atualizar",
				"Não foi possível atualizar o chamado. Verifique os logs e a API.")
			f.wf.prompt.Error(title, msg)
		},
	}
}

// Cancel закрывает форму; при изменениях спрашивает подтверждение.
func (f *TicketEditForm) Cancel() bool {
	return f.cancel(f.wf.prompt, f.Dirty(), "Cancelar Edição",
		"Deseja realmente cancelar? Todas as alterações serão perdidas.")
}
