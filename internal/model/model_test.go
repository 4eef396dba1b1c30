package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		in   *string
		want Status
	}{
		{nil, StatusPending},
		{StringPtr("Aberto"), StatusOpen},
		{StringPtr("  ABERTO "), StatusOpen},
		{StringPtr("Em aberto"), StatusOpen},
		{StringPtr("open"), StatusOpen},
		{StringPtr("Fechado"), StatusClosed},
		{StringPtr("closed"), StatusClosed},
		{StringPtr("Em andamento"), StatusPending},
		{StringPtr(""), StatusPending},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeStatus(tt.in))
	}
}

func TestNormalizePriority(t *testing.T) {
	assert.Equal(t, PriorityHigh, NormalizePriority("ALTA"))
	assert.Equal(t, PriorityMedium, NormalizePriority("Média"))
	assert.Equal(t, PriorityMedium, NormalizePriority("media"))
	assert.Equal(t, PriorityLow, NormalizePriority("Baixa"))
	assert.Equal(t, PriorityLow, NormalizePriority("urgente"))
	assert.Equal(t, PriorityLow, NormalizePriority(""))
}

func TestParsePriority(t *testing.T) {
	p, ok := ParsePriority("Média")
	require.True(t, ok)
	assert.Equal(t, PriorityMedium, p)

	p, ok = ParsePriority("high")
	require.True(t, ok)
	assert.Equal(t, PriorityHigh, p)

	_, ok = ParsePriority("Todas")
	assert.False(t, ok)
}

func TestSamePriority(t *testing.T) {
	assert.True(t, SamePriority("alta", "Alta"))
	assert.True(t, SamePriority("Média", "MEDIA"))
	assert.False(t, SamePriority("", ""))
	assert.False(t, SamePriority("Baixa", "Alta"))
}

func TestFold(t *testing.T) {
	assert.Equal(t, "tecnico", Fold(" Técnico "))
	assert.Equal(t, "usuario", Fold("USUÁRIO"))
	assert.True(t, ContainsFold("Impressora não funciona", "NAO"))
}

func TestParseVariant(t *testing.T) {
	for in, want := range map[string]Variant{
		"Gerente":    Manager,
		"manager":    Manager,
		"Técnico":    Technician,
		"tecnico":    Technician,
		"Usuário":    CommonUser,
		"commonuser": CommonUser,
	} {
		got, ok := ParseVariant(in)
		require.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseVariant("admin")
	assert.False(t, ok)
}

func TestVariantDecisions(t *testing.T) {
	assert.Equal(t, "Tecnico", Technician.Resource())
	assert.Equal(t, "especialidade", Technician.Affiliation().JSONKey())
	assert.Equal(t, "setor", Manager.Affiliation().JSONKey())
	assert.Equal(t, "setor", CommonUser.Affiliation().JSONKey())
	assert.Equal(t, "usuarioID", CommonUser.IDKey())
	assert.Len(t, Variants, 3)
}

func TestUserAffiliation(t *testing.T) {
	u := User{Variant: Technician}
	u.SetAffiliation("Redes")
	assert.Equal(t, "Redes", u.Specialty)
	assert.Empty(t, u.Sector)
	assert.Equal(t, "Redes", u.AffiliationText())

	m := User{Variant: Manager, Specialty: "x"}
	m.SetAffiliation("")
	assert.Empty(t, m.Specialty)
	assert.Equal(t, "N/A", m.AffiliationText())
}

func TestSameEmail(t *testing.T) {
	assert.True(t, SameEmail("Ana@Suptec.com", "ana@suptec.com "))
	assert.False(t, SameEmail("", ""))
	assert.False(t, SameEmail("a@b.com", "b@b.com"))
}

func TestTicketWithChangesKeepsImmutableFields(t *testing.T) {
	orig := Ticket{
		ID:        "42",
		Title:     "Old",
		Priority:  "Baixa",
		Requester: Requester{Name: "Ana", Email: "ana@x.com", Sector: "RH"},
	}
	edited := orig.WithChanges(TicketChanges{
		Title:              "New",
		Priority:           "Alta",
		Status:             StringPtr("Fechado"),
		TechnicianResponse: StringPtr("ok"),
	})
	assert.Equal(t, "42", edited.ID)
	assert.Equal(t, orig.Requester, edited.Requester)
	assert.Equal(t, orig.OpenedAt, edited.OpenedAt)
	assert.Equal(t, "New", edited.Title)
	assert.Equal(t, "Old", orig.Title)
	assert.Equal(t, "Fechado", edited.StatusText())
}

func TestTicketDisplayFallbacks(t *testing.T) {
	var tk Ticket
	assert.Equal(t, "N/A", tk.StatusText())
	assert.Equal(t, "N/A", tk.OpenedAtText())
	assert.Equal(t, "Não atribuído", tk.AssignedTechnicianText())
	assert.Equal(t, "Sem resposta", tk.TechnicianResponseText())
	assert.Equal(t, "Sem descrição", tk.DescriptionText())
	assert.False(t, tk.HasID())
}
