package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psds-microservice/suptec-client/internal/model"
)

func ticket(status *string, priority string, opened time.Time) model.Ticket {
	return model.Ticket{ID: "x", Title: "t", Status: status, Priority: priority, OpenedAt: opened}
}

func TestBuild(t *testing.T) {
	now := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)
	tickets := []model.Ticket{
		ticket(model.StringPtr("Fechado"), "Alta", time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)),
		ticket(model.StringPtr(" FECHADO "), "média", time.Date(2026, time.January, 31, 23, 0, 0, 0, time.UTC)),
		ticket(model.StringPtr("Aberto"), "Baixa", time.Date(2025, time.October, 2, 0, 0, 0, 0, time.UTC)),
		ticket(model.StringPtr("Em andamento"), "urgente", time.Date(2025, time.September, 30, 0, 0, 0, 0, time.UTC)),
		ticket(nil, "", time.Time{}),
	}
	users := []model.User{
		{Variant: model.Manager},
		{Variant: model.Technician},
		{Variant: model.Technician},
		{Variant: model.CommonUser},
	}

	s := Build(tickets, users, now)

	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 2, s.Closed)
	assert.Equal(t, 3, s.Pending)
	assert.True(t, s.HasPending())
	assert.Equal(t, 2, s.Technicians)
	assert.Equal(t, 1, s.CommonUsers)

	assert.Equal(t, []Count{{"Aberto", 1}, {"Fechado", 2}, {"Pendente", 2}}, s.ByStatus)
	assert.Equal(t, []Count{{"Baixa", 3}, {"Media", 1}, {"Alta", 1}}, s.ByPriority)

	require.Len(t, s.Monthly, Months)
	assert.Equal(t, []Count{
		{"out 2025", 1},
		{"nov 2025", 0},
		{"dez 2025", 0},
		{"jan 2026", 1},
		{"fev 2026", 0},
		{"mar 2026", 1},
	}, s.Monthly)
}

func TestBuild_Empty(t *testing.T) {
	s := Build(nil, nil, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC))

	assert.Zero(t, s.Total)
	assert.False(t, s.HasPending())
	assert.Equal(t, "ago 2025", s.Monthly[0].Label)
	assert.Equal(t, "jan 2026", s.Monthly[5].Label)
}

func TestRender(t *testing.T) {
	now := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

	out := Render(Build([]model.Ticket{
		ticket(model.StringPtr("Aberto"), "Alta", now),
		ticket(model.StringPtr("Fechado"), "Alta", now),
	}, nil, now))
	assert.Contains(t, out, "Total de chamados: 2")
	assert.Contains(t, out, "Fechados: 1")
	assert.Contains(t, out, "1 (50%)")
	assert.Contains(t, out, "existem chamados pendentes")
	assert.Contains(t, out, "mar 2026")

	out = Render(Build(nil, nil, now))
	assert.Contains(t, out, "Nenhum chamado pendente no momento.")
	assert.False(t, strings.Contains(out, "█"))
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "set 2024", MonthLabel(time.September, 2024))
	assert.Equal(t, "dez 2026", MonthLabel(time.December, 2026))
}

func TestBuildMonthlyUsesWallClock(t *testing.T) {
	brt := time.FixedZone("BRT", -3*3600)
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, brt)

	// Начало месяца: при переводе из UTC в BRT попало бы в февраль.
	s := Build([]model.Ticket{
		ticket(model.StringPtr("Aberto"), "Alta", time.Date(2026, time.March, 1, 1, 0, 0, 0, time.UTC)),
		ticket(model.StringPtr("Aberto"), "Alta", time.Date(2026, time.February, 28, 23, 30, 0, 0, time.UTC)),
	}, nil, now)

	require.Len(t, s.Monthly, Months)
	assert.Equal(t, Count{"fev 2026", 1}, s.Monthly[4])
	assert.Equal(t, Count{"mar 2026", 1}, s.Monthly[5])
}
