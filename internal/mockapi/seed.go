package mockapi

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// SeedManagerEmail и SeedManagerPassword — учётная запись для входа после Seed.
const (
	SeedManagerEmail    = "gerente@suptec.com"
	SeedManagerPassword = "suptec123"
)

type seedUser struct {
	kind        Kind
	name, email string
	phone       string
	affiliation string
}

var seedUsers = []seedUser{
	{KindManager, "Gerente Suptec", SeedManagerEmail, "11999990000", "TI"},
	{KindTechnician, "Carlos Técnico", "carlos@suptec.com", "11988887777", "Redes"},
	{KindTechnician, "Marina Souza", "marina@suptec.com", "1133334444", "Hardware"},
	{KindCommonUser, "Ana Lima", "ana@empresa.com.br", "32722864", "Financeiro"},
	{KindCommonUser, "Bruno Alves", "bruno@empresa.com.br", "999999999", "RH"},
}

// Seed заполняет пустое хранилище демонстрационными данными. Все
// пользователи получают пароль SeedManagerPassword. Повторный вызов ничего
// не меняет.
func Seed(ctx context.Context, s Store, now time.Time) error {
	if _, err := s.FindUserByEmail(ctx, SeedManagerEmail); err == nil {
		return nil
	} else if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("seed: %w", err)
	}
	hash, err := hashPassword(SeedManagerPassword)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	for _, su := range seedUsers {
		u := UserRecord{Kind: su.kind, Name: su.name, Email: su.email, PasswordHash: hash, Phone: su.phone}
		if su.kind.UsesSpecialty() {
			u.Specialty = su.affiliation
		} else {
			u.Sector = su.affiliation
		}
		if _, err := s.AddUser(ctx, u); err != nil && !errors.Is(err, ErrConflict) {
			return fmt.Errorf("seed user %s: %w", su.email, err)
		}
	}

	str := func(s string) *string { return &s }
	tickets := []TicketRecord{
		{Title: "Impressora não imprime", Description: "A impressora do 2º andar está offline.", Priority: "Alta",
			Status: str("Aberto"), RequesterName: "Ana Lima", RequesterEmail: "ana@empresa.com.br", RequesterSector: "Financeiro",
			OpenedAt: now.AddDate(0, 0, -2)},
		{Title: "Sem acesso à VPN", Priority: "Media", Status: str("Pendente"),
			RequesterName: "Bruno Alves", RequesterEmail: "bruno@empresa.com.br", RequesterSector: "RH",
			Technician: str("Carlos Técnico"), OpenedAt: now.AddDate(0, -1, 0)},
		{Title: "Troca de teclado", Description: "Teclas falhando.", Priority: "Baixa", Status: str("Fechado"),
			RequesterName: "Ana Lima", RequesterEmail: "ana@empresa.com.br", RequesterSector: "Financeiro",
			Technician: str("Marina Souza"), TechnicianResponse: str("Teclado substituído."), OpenedAt: now.AddDate(0, -3, 0)},
	}
	for _, t := range tickets {
		t.OpenedAt = t.OpenedAt.Truncate(time.Second)
		if _, err := s.CreateTicket(ctx, t); err != nil {
			return fmt.Errorf("seed ticket: %w", err)
		}
	}
	return nil
}
