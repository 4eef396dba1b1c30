package model

import (
	"strings"
	"time"
)

// Requester — снимок данных пользователя, открывшего тикет (не ссылка).
type Requester struct {
	Name   string
	Email  string
	Sector string
}

// Ticket — тикет (Chamado) в том виде, в каком его отдаёт API.
// ID, OpenedAt и Requester не меняются при редактировании.
type Ticket struct {
	ID                 string
	Title              string
	Description        string
	Priority           string
	Status             *string
	Requester          Requester
	AssignedTechnician *string
	TechnicianResponse *string
	OpenedAt           time.Time
}

// HasID сообщает, есть ли у тикета серверный идентификатор.
func (t *Ticket) HasID() bool {
	return t != nil && strings.TrimSpace(t.ID) != ""
}

// TicketChanges — поля, которые разрешено менять через форму редактирования.
type TicketChanges struct {
	Title              string
	Description        string
	Priority           string
	Status             *string
	AssignedTechnician *string
	TechnicianResponse *string
}

// WithChanges возвращает копию тикета с применёнными изменениями.
// ID, OpenedAt и Requester копируются из исходной записи как есть.
func (t Ticket) WithChanges(c TicketChanges) Ticket {
	out := t
	out.Title = c.Title
	out.Description = c.Description
	out.Priority = c.Priority
	out.Status = c.Status
	out.AssignedTechnician = c.AssignedTechnician
	out.TechnicianResponse = c.TechnicianResponse
	return out
}

func (t Ticket) StatusText() string {
	if t.Status == nil || strings.TrimSpace(*t.Status) == "" {
		return "N/A"
	}
	return *t.Status
}

func (t Ticket) OpenedAtText() string {
	if t.OpenedAt.IsZero() {
		return "N/A"
	}
	return t.OpenedAt.Format("02/01/2006 15:04")
}

func (t Ticket) RequesterEmailText() string {
	return orNA(t.Requester.Email)
}

func (t Ticket) RequesterSectorText() string {
	return orNA(t.Requester.Sector)
}

func (t Ticket) AssignedTechnicianText() string {
	if t.AssignedTechnician == nil || strings.TrimSpace(*t.AssignedTechnician) == "" {
		return "Não atribuído"
	}
	return *t.AssignedTechnician
}

func (t Ticket) TechnicianResponseText() string {
	if t.TechnicianResponse == nil || strings.TrimSpace(*t.TechnicianResponse) == "" {
		return "Sem resposta"
	}
	return *t.TechnicianResponse
}

func (t Ticket) DescriptionText() string {
	if strings.TrimSpace(t.Description) == "" {
		return "Sem descrição"
	}
	return t.Description
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

// StringPtr — удобный конструктор для необязательных строковых полей.
func StringPtr(s string) *string {
	return &s
}
