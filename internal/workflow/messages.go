package workflow

import (
	"fmt"
	"strings"

	"github.com/psds-microservice/suptec-client/internal/model"
	"github.com/psds-microservice/suptec-client/internal/service"
)

const (
	titleWarning   = "Aviso"
	titleDataError = "Erro de Dados"
	titleSuccess   = "Sucesso"
)

// failureMessage выбирает текст ошибки по Outcome. generic — текст для
// 404/5xx/прочих отказов конкретной операции.
func failureMessage(o service.Outcome, title, generic string) (string, string) {
	switch o {
	case service.OutcomeTransport:
		return "Erro de Conexão", "Não foi possível contactar o servidor.\n\nVerifique a conexão com a API e tente novamente."
	case service.OutcomeUnauthorized, service.OutcomeNoSession:
		return "Sessão Expirada", "Sessão expirada ou acesso negado.\n\nFaça login novamente."
	case service.OutcomeMalformed:
		return title, "O servidor retornou uma resposta inválida."
	}
	return title, generic
}

// TicketDetails — текст карточки тикета.
func TicketDetails(t model.Ticket) string {
	var b strings.Builder
	b.WriteString("INFORMAÇÕES DO CHAMADO\n\n")
	fmt.Fprintf(&b, "ID: %s\n", t.ID)
	fmt.Fprintf(&b, "Título: %s\n", t.Title)
	fmt.Fprintf(&b, "Prioridade: %s\n", t.Priority)
	fmt.Fprintf(&b, "Status: %s\n", t.StatusText())
	fmt.Fprintf(&b, "Data de Abertura: %s\n", t.OpenedAtText())
	fmt.Fprintf(&b, "Técnico: %s\n\n", t.AssignedTechnicianText())
	b.WriteString("USUÁRIO\n\n")
	fmt.Fprintf(&b, "Nome: %s\n", t.Requester.Name)
	fmt.Fprintf(&b, "Email: %s\n", t.RequesterEmailText())
	fmt.Fprintf(&b, "Setor: %s\n\n", t.RequesterSectorText())
	b.WriteString("DESCRIÇÃO\n\n")
	b.WriteString(t.DescriptionText())
	b.WriteString("\n\nRESPOSTA DO TÉCNICO\n\n")
	b.WriteString(t.TechnicianResponseText())
	return b.String()
}

// UserDetails — текст карточки пользователя.
func UserDetails(u model.User) string {
	aff := "Setor"
	if u.Variant != nil {
		aff = u.Variant.Affiliation().Label()
	}
	return fmt.Sprintf("Nome: %s\nEmail: %s\nTelefone: %s\n%s: %s\nTipo: %s",
		u.Name, u.Email, u.Phone, aff, u.AffiliationText(), u.VariantLabel())
}

// TicketDeleteConfirmation — текст подтверждения удаления тикета.
func TicketDeleteConfirmation(t model.Ticket) string {
	return fmt.Sprintf("Deseja realmente excluir o chamado?\n\n"+
		"ID: %s\nTítulo: %s\nPrioridade: %s\nUsuário: %s\n\n"+
		"Esta ação não pode ser desfeita!",
		t.ID, t.Title, t.Priority, t.Requester.Name)
}

// UserDeleteConfirmation — текст подтверждения удаления пользователя.
func UserDeleteConfirmation(u model.User) string {
	return fmt.Sprintf("Deseja realmente excluir o usuário?\n\n"+
		"Nome: %s\nEmail: %s\nTipo: %s\nID: %s\n\n"+
		"Esta ação não pode ser desfeita!",
		u.Name, u.Email, u.VariantLabel(), u.ID)
}
