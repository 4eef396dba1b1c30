package workflow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psds-microservice/suptec-client/internal/logging"
	"github.com/psds-microservice/suptec-client/internal/model"
	"github.com/psds-microservice/suptec-client/internal/selection"
	"github.com/psds-microservice/suptec-client/internal/service"
)

func newTicketFixture(t *testing.T, answer bool) (*TicketWorkflow, *fakeTickets, *RecordingPrompter) {
	t.Helper()
	svc := &fakeTickets{items: sampleTickets(), ok: true}
	users := &fakeUsers{items: sampleUsers()}
	p := NewRecordingPrompter(answer)
	w := NewTicketWorkflow(svc, users, p, logging.Discard())
	require.NoError(t, w.Reload(context.Background()))
	return w, svc, p
}

func TestTicketWorkflow_ReloadAndFilter(t *testing.T) {
	w, _, p := newTicketFixture(t, true)

	assert.Len(t, w.Visible(), 3)
	assert.Equal(t, "3 chamado(s) encontrado(s)", w.Counter())
	assert.Empty(t, p.Drain())

	got := w.SetTerm("IMPRESSORA")
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)

	w.SetTerm("")
	got = w.SetPriorityFilter("Média")
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)

	got = w.SetTerm("impressora")
	assert.Empty(t, got, "term and priority filters intersect")
	assert.Equal(t, "0 chamado(s) encontrado(s)", w.Counter())

	got = w.ClearSearch()
	assert.Len(t, got, 3)
	assert.Equal(t, model.PriorityAll, w.PriorityFilter())
}

func TestTicketWorkflow_ReloadClearsSelection(t *testing.T) {
	w, _, _ := newTicketFixture(t, true)

	require.True(t, w.Select("2"))
	assert.Equal(t, selection.OneSelected, w.Selection().State())

	require.NoError(t, w.Reload(context.Background()))
	_, ok := w.Selected()
	assert.False(t, ok)
	assert.False(t, w.Selection().ActionsEnabled())
}

func TestTicketWorkflow_ReloadFailureReportsOutcome(t *testing.T) {
	svc := &fakeTickets{outcome: service.OutcomeTransport}
	p := NewRecordingPrompter(true)
	w := NewTicketWorkflow(svc, nil, p, logging.Discard())

	require.NoError(t, w.Reload(context.Background()))
	m, ok := p.Last()
	require.True(t, ok)
	assert.Equal(t, "error", m.Kind)
	assert.Equal(t, "Erro de Conexão", m.Title)
	assert.Empty(t, w.Visible())
}

func TestTicketWorkflow_ViewWithoutSelection(t *testing.T) {
	w, _, p := newTicketFixture(t, true)

	_, err := w.View()
	assert.ErrorIs(t, err, ErrNoSelection)
	m, _ := p.Last()
	assert.Equal(t, "warn", m.Kind)

	require.True(t, w.SelectIndex(0))
	details, err := w.View()
	require.NoError(t, err)
	assert.Contains(t, details, "Impressora travada")
	assert.Contains(t, details, "Sem resposta")
	assert.Contains(t, details, "Não atribuído")
}

func TestTicketWorkflow_Delete(t *testing.T) {
	t.Run("no selection", func(t *testing.T) {
		w, svc, p := newTicketFixture(t, true)
		ok, err := w.Delete(context.Background())
		assert.False(t, ok)
		assert.ErrorIs(t, err, ErrNoSelection)
		assert.Empty(t, svc.deleted)
		m, _ := p.Last()
		assert.Equal(t, "warn", m.Kind)
	})

	t.Run("blank id", func(t *testing.T) {
		svc := &fakeTickets{items: []model.Ticket{{ID: " ", Title: "x"}}, ok: true}
		p := NewRecordingPrompter(true)
		w := NewTicketWorkflow(svc, nil, p, logging.Discard())
		require.NoError(t, w.Reload(context.Background()))
		require.True(t, w.SelectIndex(0))

		ok, err := w.Delete(context.Background())
		assert.False(t, ok)
		assert.NoError(t, err)
		assert.Empty(t, svc.deleted)
		assert.Empty(t, p.Confirms)
		m, _ := p.Last()
		assert.Equal(t, titleDataError, m.Title)
	})

	t.Run("declined", func(t *testing.T) {
		w, svc, p := newTicketFixture(t, false)
		require.True(t, w.Select("1"))
		ok, err := w.Delete(context.Background())
		assert.False(t, ok)
		assert.NoError(t, err)
		assert.Empty(t, svc.deleted)
		require.Len(t, p.Confirms, 1)
		assert.Contains(t, p.Confirms[0].Message, "Esta ação não pode ser desfeita!")
	})

	t.Run("success reloads", func(t *testing.T) {
		w, svc, p := newTicketFixture(t, true)
		require.True(t, w.Select("1"))
		before := svc.listCount()

		ok, err := w.Delete(context.Background())
		require.NoError(t, err)
		assert.True(t, ok)
		require.Len(t, svc.deleted, 1)
		assert.Equal(t, "1", svc.deleted[0].ID)
		assert.Equal(t, before+1, svc.listCount())
		m, _ := p.Last()
		assert.Equal(t, "info", m.Kind)
		_, selected := w.Selected()
		assert.False(t, selected)
	})

	t.Run("server failure", func(t *testing.T) {
		w, svc, p := newTicketFixture(t, true)
		svc.ok = false
		svc.outcome = service.OutcomeServer
		require.True(t, w.Select("1"))

		ok, err := w.Delete(context.Background())
		assert.NoError(t, err)
		assert.False(t, ok)
		m, _ := p.Last()
		assert.Equal(t, "Erro ao Excluir", m.Title)
		assert.Contains(t, m.Message, "ID do Chamado: 1")
	})

	t.Run("session expired", func(t *testing.T) {
		w, svc, p := newTicketFixture(t, true)
		svc.ok = false
		svc.outcome = service.OutcomeUnauthorized
		require.True(t, w.Select("1"))

		_, _ = w.Delete(context.Background())
		m, _ := p.Last()
		assert.Equal(t, "Sessão Expirada", m.Title)
	})
}

func TestTicketWorkflow_SingleFlight(t *testing.T) {
	w, svc, _ := newTicketFixture(t, true)
	svc.block = make(chan struct{})
	require.True(t, w.Select("1"))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = w.Delete(context.Background())
	}()

	require.Eventually(t, w.Busy, time.Second, time.Millisecond)
	before := svc.listCount()
	assert.ErrorIs(t, w.Reload(context.Background()), ErrBusy)
	assert.Equal(t, before, svc.listCount(), "busy reload must not reach the service")

	close(svc.block)
	<-done
	assert.False(t, w.Busy())
}

func TestTicketEditForm(t *testing.T) {
	t.Run("prefilled", func(t *testing.T) {
		w, _, _ := newTicketFixture(t, true)
		require.True(t, w.Select("3"))
		f, err := w.BeginEdit(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Troca de mouse", f.Title)
		assert.Equal(t, "Carlos", f.AssignedTechnician)
		assert.Equal(t, []string{NoTechnician, "Carlos"}, f.Technicians)
		assert.False(t, f.Dirty())
		assert.Equal(t, FormEditing, f.State())
	})

	t.Run("invalid title", func(t *testing.T) {
		w, svc, p := newTicketFixture(t, true)
		require.True(t, w.Select("1"))
		f, err := w.BeginEdit(context.Background())
		require.NoError(t, err)

		f.Title = "  "
		err = f.Submit(context.Background())
		require.Error(t, err)
		assert.True(t, IsValidation(err))
		assert.Equal(t, "titulo", f.InvalidField().Field)
		assert.Equal(t, FormEditing, f.State())
		assert.Equal(t, []FormState{FormValidating, FormInvalid, FormEditing}, f.History())
		assert.Empty(t, svc.updated)
		assert.Empty(t, p.Confirms)
	})

	t.Run("check does not move the state machine", func(t *testing.T) {
		w, _, p := newTicketFixture(t, true)
		require.True(t, w.Select("1"))
		f, _ := w.BeginEdit(context.Background())

		f.Title = ""
		assert.True(t, IsValidation(f.Check()))
		f.Title = "Outro"
		require.NoError(t, f.Check())
		title, text := f.Confirmation()
		assert.Equal(t, "Confirmar Edição", title)
		assert.Contains(t, text, "Título: Outro")
		assert.Empty(t, f.History())
		assert.Empty(t, p.Confirms)
	})

	t.Run("declined", func(t *testing.T) {
		w, svc, _ := newTicketFixture(t, false)
		require.True(t, w.Select("1"))
		f, _ := w.BeginEdit(context.Background())
		f.Title = "Novo título"

		assert.ErrorIs(t, f.Submit(context.Background()), ErrDeclined)
		assert.Equal(t, FormEditing, f.State())
		assert.Empty(t, svc.updated)
	})

	t.Run("success", func(t *testing.T) {
		w, svc, p := newTicketFixture(t, true)
		require.True(t, w.Select("1"))
		f, _ := w.BeginEdit(context.Background())
		f.Title = "  Impressora consertada "
		f.Priority = "baixa"
		f.AssignedTechnician = NoTechnician
		f.Status = ""
		f.TechnicianResponse = "Toner trocado"
		before := svc.listCount()

		require.NoError(t, f.Submit(context.Background()))
		assert.Equal(t, FormClosed, f.State())
		require.Len(t, svc.updated, 1)
		got := svc.updated[0]
		assert.Equal(t, "1", got.ID)
		assert.Equal(t, "Impressora consertada", got.Title)
		assert.Equal(t, "Baixa", got.Priority)
		assert.Nil(t, got.AssignedTechnician)
		require.NotNil(t, got.Status)
		assert.Equal(t, "Aberto", *got.Status, "blank status keeps the original")
		require.NotNil(t, got.TechnicianResponse)
		assert.Equal(t, "Toner trocado", *got.TechnicianResponse)
		assert.Equal(t, "Ana", got.Requester.Name)
		assert.Equal(t, before+1, svc.listCount())

		m, _ := p.Last()
		assert.Equal(t, "Chamado atualizado com sucesso!", m.Message)
		assert.ErrorIs(t, f.Submit(context.Background()), ErrClosed)
	})

	t.Run("failure returns to editing", func(t *testing.T) {
		w, svc, p := newTicketFixture(t, true)
		svc.ok = false
		svc.outcome = service.OutcomeNotFound
		require.True(t, w.Select("2"))
		f, _ := w.BeginEdit(context.Background())

		assert.ErrorIs(t, f.Submit(context.Background()), ErrFailed)
		assert.Equal(t, FormEditing, f.State())
		m, _ := p.Last()
		assert.Equal(t, "Erro ao Atualizar", m.Title)
	})

	t.Run("cancel asks only when dirty", func(t *testing.T) {
		w, _, p := newTicketFixture(t, false)
		require.True(t, w.Select("2"))
		f, _ := w.BeginEdit(context.Background())

		f.Title = "mudou"
		assert.False(t, f.Cancel())
		assert.Len(t, p.Confirms, 1)

		f.Title = "Sem internet"
		assert.True(t, f.Cancel())
		assert.Equal(t, FormClosed, f.State())
	})
}

func TestTicketWorkflow_BeginEditWithoutUsers(t *testing.T) {
	svc := &fakeTickets{items: sampleTickets()}
	w := NewTicketWorkflow(svc, nil, NewRecordingPrompter(true), logging.Discard())
	require.NoError(t, w.Reload(context.Background()))
	require.True(t, w.Select("2"))

	f, err := w.BeginEdit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{NoTechnician}, f.Technicians)
}

func TestTicketWorkflow_BeginEditWhileBusy(t *testing.T) {
	svc := &fakeTickets{items: sampleTickets(), ok: true, block: make(chan struct{})}
	users := &fakeUsers{items: []model.User{{ID: "t1", Name: "Carlos", Variant: model.Technician}}}
	w := NewTicketWorkflow(svc, users, NewRecordingPrompter(true), logging.Discard())
	require.NoError(t, w.Reload(context.Background()))
	require.True(t, w.Select("1"))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = w.Delete(context.Background())
	}()
	require.Eventually(t, w.Busy, time.Second, time.Millisecond)

	f, err := w.BeginEdit(context.Background())
	assert.ErrorIs(t, err, ErrBusy)
	assert.Nil(t, f)
	users.mu.Lock()
	assert.Zero(t, users.lists, "technicians are not loaded while another operation runs")
	users.mu.Unlock()

	close(svc.block)
	<-done
	require.True(t, w.Select("2"))
	f, err = w.BeginEdit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{NoTechnician, "Carlos"}, f.Technicians)
}

func TestTicketWorkflow_SearchUsesLoadedList(t *testing.T) {
	w, svc, _ := newTicketFixture(t, true)
	before := svc.listCount()

	assert.Len(t, w.SetTerm("impressora"), 1)
	assert.Len(t, w.SetPriorityFilter("Baixa"), 0)
	assert.Len(t, w.ClearSearch(), 3)
	assert.Equal(t, before, svc.listCount(), "search and clear work on the loaded list")
}
