package service

import (
	"strings"

	"github.com/psds-microservice/suptec-client/internal/model"
)

// TicketMatches — поиск по заголовку, описанию, данным заявителя и
// приоритету; без учёта регистра и акцентов. Пустой term совпадает со всем.
func TicketMatches(t model.Ticket, term string) bool {
	if strings.TrimSpace(term) == "" {
		return true
	}
	for _, field := range []string{
		t.Title,
		t.Description,
		t.Requester.Name,
		t.Requester.Email,
		t.Requester.Sector,
		t.Priority,
	} {
		if field != "" && model.ContainsFold(field, term) {
			return true
		}
	}
	return false
}

// TicketHasPriority — фильтр по приоритету; "" и PriorityAll пропускают всё.
func TicketHasPriority(t model.Ticket, priority string) bool {
	if strings.TrimSpace(priority) == "" || model.Fold(priority) == model.Fold(model.PriorityAll) {
		return true
	}
	return model.SamePriority(t.Priority, priority)
}

// UserMatches — поиск по имени, e-mail, типу и отделу/специализации.
func UserMatches(u model.User, term string) bool {
	if strings.TrimSpace(term) == "" {
		return true
	}
	for _, field := range []string{
		u.Name,
		u.Email,
		u.VariantLabel(),
		u.Sector,
		u.Specialty,
	} {
		if field != "" && model.ContainsFold(field, term) {
			return true
		}
	}
	return false
}

// UserHasVariant — фильтр по типу пользователя; nil пропускает всё.
func UserHasVariant(u model.User, v model.Variant) bool {
	return v == nil || u.Variant == v
}
