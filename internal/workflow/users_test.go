package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psds-microservice/suptec-client/internal/logging"
	"github.com/psds-microservice/suptec-client/internal/model"
	"github.com/psds-microservice/suptec-client/internal/service"
)

type userFixture struct {
	w   *UserWorkflow
	svc *fakeUsers
	reg *fakeRegistrar
	p   *RecordingPrompter
}

func newUserFixture(t *testing.T, answer bool) userFixture {
	t.Helper()
	fx := userFixture{
		svc: &fakeUsers{items: sampleUsers(), ok: true},
		reg: &fakeRegistrar{ok: true},
		p:   NewRecordingPrompter(answer),
	}
	fx.w = NewUserWorkflow(fx.svc, fx.reg, fakeSelf("GABI@x.com"), fx.p, logging.Discard())
	require.NoError(t, fx.w.Reload(context.Background()))
	return fx
}

func TestUserWorkflow_SearchAndVariantFilter(t *testing.T) {
	fx := newUserFixture(t, true)

	assert.Equal(t, "3 usuário(s) encontrado(s)", fx.w.Counter())
	got := fx.w.SetTerm("tecnico")
	require.Len(t, got, 1)
	assert.Equal(t, "Carlos", got[0].Name)

	fx.w.SetTerm("")
	got = fx.w.SetVariantFilter("Usuário")
	require.Len(t, got, 1)
	assert.Equal(t, "Dora", got[0].Name)

	got = fx.w.SetTerm("rh")
	assert.Len(t, got, 1)

	got = fx.w.ClearSearch()
	assert.Len(t, got, 3)
}

func TestUserWorkflow_SelectByIDPicksVisibleRow(t *testing.T) {
	fx := newUserFixture(t, true)

	fx.w.SetVariantFilter("Técnico")
	require.True(t, fx.w.Select("1"))
	u, ok := fx.w.Selected()
	require.True(t, ok)
	assert.Equal(t, model.Technician, u.Variant)
	assert.False(t, fx.w.Select("7"))
}

func TestUserWorkflow_View(t *testing.T) {
	fx := newUserFixture(t, true)
	require.True(t, fx.w.SelectIndex(1))

	details, err := fx.w.View()
	require.NoError(t, err)
	assert.Contains(t, details, "Especialidade: Redes")
	assert.Contains(t, details, "Tipo: Técnico")
}

func TestUserWorkflow_Delete(t *testing.T) {
	t.Run("self delete is refused", func(t *testing.T) {
		fx := newUserFixture(t, true)
		require.True(t, fx.w.SelectIndex(0))

		ok, err := fx.w.Delete(context.Background())
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, fx.svc.deleted)
		m, _ := fx.p.Last()
		assert.Equal(t, "Operação Não Permitida", m.Title)
	})

	t.Run("success", func(t *testing.T) {
		fx := newUserFixture(t, true)
		require.True(t, fx.w.SelectIndex(2))

		ok, err := fx.w.Delete(context.Background())
		require.NoError(t, err)
		assert.True(t, ok)
		require.Len(t, fx.svc.deleted, 1)
		assert.Equal(t, "Dora", fx.svc.deleted[0].Name)
		m, _ := fx.p.Last()
		assert.Equal(t, "Usuário 'Dora' foi excluído com sucesso!", m.Message)
	})

	t.Run("declined", func(t *testing.T) {
		fx := newUserFixture(t, false)
		require.True(t, fx.w.SelectIndex(2))
		ok, _ := fx.w.Delete(context.Background())
		assert.False(t, ok)
		assert.Empty(t, fx.svc.deleted)
	})

	t.Run("failure", func(t *testing.T) {
		fx := newUserFixture(t, true)
		fx.svc.ok = false
		fx.svc.outcome = service.OutcomeTransport
		require.True(t, fx.w.SelectIndex(2))

		ok, _ := fx.w.Delete(context.Background())
		assert.False(t, ok)
		m, _ := fx.p.Last()
		assert.Equal(t, "Erro de Conexão", m.Title)
	})
}

func TestUserEditForm(t *testing.T) {
	t.Run("technician shows specialty", func(t *testing.T) {
		fx := newUserFixture(t, true)
		require.True(t, fx.w.SelectIndex(1))
		f, err := fx.w.BeginEdit()
		require.NoError(t, err)
		assert.Equal(t, Visibility{Specialty: true}, f.Visibility())
		assert.Equal(t, "Redes", f.Affiliation)
	})

	t.Run("password mismatch", func(t *testing.T) {
		fx := newUserFixture(t, true)
		require.True(t, fx.w.SelectIndex(2))
		f, _ := fx.w.BeginEdit()
		f.ChangePassword = true
		f.NewPassword = "segredo1"
		f.ConfirmPassword = "segredo2"

		err := f.Submit(context.Background())
		require.True(t, IsValidation(err))
		assert.Equal(t, "confirmarSenha", f.InvalidField().Field)
		assert.Empty(t, fx.svc.updated)
	})

	t.Run("success keeps variant", func(t *testing.T) {
		fx := newUserFixture(t, true)
		require.True(t, fx.w.SelectIndex(1))
		f, _ := fx.w.BeginEdit()
		f.Name = " Carlos Souza "
		f.Affiliation = "Hardware"

		require.NoError(t, f.Submit(context.Background()))
		require.Len(t, fx.svc.updated, 1)
		got := fx.svc.updated[0]
		assert.Equal(t, "Carlos Souza", got.Name)
		assert.Equal(t, model.Technician, got.Variant)
		assert.Equal(t, "Hardware", got.Specialty)
		assert.Empty(t, got.Sector)
		assert.Empty(t, got.Password)
		assert.Equal(t, FormClosed, f.State())
	})

	t.Run("password change is sent", func(t *testing.T) {
		fx := newUserFixture(t, true)
		require.True(t, fx.w.SelectIndex(2))
		f, _ := fx.w.BeginEdit()
		f.ChangePassword = true
		f.NewPassword = "segredo1"
		f.ConfirmPassword = "segredo1"

		require.NoError(t, f.Submit(context.Background()))
		assert.Equal(t, "segredo1", fx.svc.updated[0].Password)
	})
}

func TestUserCreateForm(t *testing.T) {
	t.Run("variant required first", func(t *testing.T) {
		fx := newUserFixture(t, true)
		f := fx.w.BeginCreate()
		f.Name = "Eva Lima"

		err := f.Submit(context.Background())
		require.True(t, IsValidation(err))
		assert.Equal(t, "tipo", f.InvalidField().Field)
		assert.Empty(t, fx.reg.added)
	})

	t.Run("technician specialty letters only", func(t *testing.T) {
		fx := newUserFixture(t, true)
		f := fx.w.BeginCreate()
		f.Variant = model.Technician
		f.Name = "Eva Lima"
		f.Email = "eva@empresa.com.br"
		f.Password = "123456"
		f.Phone = "(11) 99999-9999"
		f.Affiliation = "Redes 2"

		err := f.Submit(context.Background())
		require.True(t, IsValidation(err))
		assert.Equal(t, "especialidade", f.InvalidField().Field)
	})

	t.Run("success", func(t *testing.T) {
		fx := newUserFixture(t, true)
		f := fx.w.BeginCreate()
		f.Variant = model.CommonUser
		f.Name = "Eva Lima "
		f.Email = "eva@empresa.com"
		f.Password = "123456"
		f.Phone = "3272-2864"
		f.Affiliation = "Financeiro"

		require.NoError(t, f.Submit(context.Background()))
		require.Len(t, fx.reg.added, 1)
		got := fx.reg.added[0]
		assert.Equal(t, model.CommonUser, got.variant)
		assert.Equal(t, "Eva Lima", got.name)
		assert.Equal(t, "Financeiro", got.affiliation)
		m, _ := fx.p.Last()
		assert.Equal(t, "info", m.Kind)
	})

	t.Run("server rejects", func(t *testing.T) {
		fx := newUserFixture(t, true)
		fx.reg.ok = false
		fx.reg.outcome = service.OutcomeRejected
		f := fx.w.BeginCreate()
		f.Variant = model.Manager
		f.Name = "Eva Lima"
		f.Email = "eva@empresa.com"
		f.Password = "123456"
		f.Phone = "32722864"
		f.Affiliation = "TI"

		assert.ErrorIs(t, f.Submit(context.Background()), ErrFailed)
		m, _ := fx.p.Last()
		assert.Equal(t, "Erro ao Cadastrar", m.Title)
		assert.Equal(t, FormEditing, f.State())
	})
}

func TestFieldVisibility(t *testing.T) {
	assert.Equal(t, Visibility{Sector: true}, FieldVisibility(model.Manager))
	assert.Equal(t, Visibility{Specialty: true}, FieldVisibility(model.Technician))
	assert.Equal(t, Visibility{Sector: true}, FieldVisibility(model.CommonUser))
	assert.Equal(t, Visibility{Sector: true}, FieldVisibility(nil))
}
