package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psds-microservice/suptec-client/internal/model"
)

func validCreate() UserCreate {
	return UserCreate{
		Variant:     model.Technician,
		Name:        "José da Silva",
		Email:       "jose@suptec.com.br",
		Password:    "123456",
		Phone:       "(11) 99999-8888",
		Affiliation: "Redes",
	}
}

func requireField(t *testing.T, err error, field string) *FieldError {
	t.Helper()
	fe, ok := AsFieldError(err)
	require.True(t, ok, "expected FieldError, got %v", err)
	assert.Equal(t, field, fe.Field)
	assert.NotEmpty(t, fe.Message)
	return fe
}

func TestCheckUserCreateValid(t *testing.T) {
	assert.NoError(t, CheckUserCreate(validCreate()))
}

func TestCheckUserCreateFieldOrder(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*UserCreate)
		field  string
		title  string
	}{
		{"no variant", func(f *UserCreate) { f.Variant = nil; f.Name = "" }, FieldVariant, "Campos obrigatórios"},
		{"empty name", func(f *UserCreate) { f.Name = "  "; f.Email = "" }, FieldName, "Campos obrigatórios"},
		{"short name", func(f *UserCreate) { f.Name = "Jo" }, FieldName, "Nome inválido"},
		{"digits in name", func(f *UserCreate) { f.Name = "José 2" }, FieldName, "Nome inválido"},
		{"empty email", func(f *UserCreate) { f.Email = "" }, FieldEmail, "Campos obrigatórios"},
		{"bad tld", func(f *UserCreate) { f.Email = "jose@suptec.xyz" }, FieldEmail, "Email inválido"},
		{"no domain dot", func(f *UserCreate) { f.Email = "jose@suptec" }, FieldEmail, "Email inválido"},
		{"empty label", func(f *UserCreate) { f.Email = "jose@suptec..com" }, FieldEmail, "Email inválido"},
		{"short password", func(f *UserCreate) { f.Password = " 12345 " }, FieldPassword, "Senha inválida"},
		{"empty password", func(f *UserCreate) { f.Password = "   " }, FieldPassword, "Campos obrigatórios"},
		{"short phone", func(f *UserCreate) { f.Phone = "123-4567" }, FieldPhone, "Telefone inválido"},
		{"long phone", func(f *UserCreate) { f.Phone = "+55 (11) 99999-8888" }, FieldPhone, "Telefone inválido"},
		{"empty specialty", func(f *UserCreate) { f.Affiliation = "" }, FieldSpecialty, "Campos obrigatórios"},
		{"digits in specialty", func(f *UserCreate) { f.Affiliation = "Redes 2" }, FieldSpecialty, "Especialidade inválida"},
		{"sector for manager", func(f *UserCreate) { f.Variant = model.Manager; f.Affiliation = "TI1" }, FieldSector, "Setor inválido"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validCreate()
			tt.mutate(&f)
			fe := requireField(t, CheckUserCreate(f), tt.field)
			assert.Equal(t, tt.title, fe.Title)
		})
	}
}

func TestRules(t *testing.T) {
	assert.True(t, Phone("3272-2864"))
	assert.True(t, Phone("(11) 3272-2864"))
	assert.False(t, Phone("1234567"))
	assert.True(t, SignupEmail("a@b.org"))
	assert.True(t, SignupEmail("a@b.INFO"))
	assert.False(t, SignupEmail("@b.com"))
	assert.False(t, SignupEmail("a@b@c.com"))
	assert.True(t, PersonName("Ána"))
	assert.False(t, PersonName("Ana!"))
	assert.Equal(t, "11999998888", Digits("(11) 99999-8888"))
}

func validEdit() UserEdit {
	return UserEdit{
		Name:        "Maria",
		Email:       "maria@x",
		Phone:       "1",
		Variant:     model.Manager,
		Affiliation: "TI",
	}
}

func TestCheckUserEdit(t *testing.T) {
	assert.NoError(t, CheckUserEdit(validEdit()), "edit only needs an @ in email")

	f := validEdit()
	f.Email = "maria.x.com"
	requireField(t, CheckUserEdit(f), FieldEmail)

	f = validEdit()
	f.Phone = " "
	requireField(t, CheckUserEdit(f), FieldPhone)

	f = validEdit()
	f.Variant = model.Technician
	f.Affiliation = ""
	requireField(t, CheckUserEdit(f), FieldSpecialty)

	f = validEdit()
	f.Variant = nil
	requireField(t, CheckUserEdit(f), FieldVariant)
}

func TestCheckUserEditPasswordChange(t *testing.T) {
	f := validEdit()
	f.NewPassword = "x"
	assert.NoError(t, CheckUserEdit(f), "password ignored when toggle is off")

	f.ChangePassword = true
	f.NewPassword = ""
	requireField(t, CheckUserEdit(f), FieldPassword)

	f.NewPassword = "12345"
	fe := requireField(t, CheckUserEdit(f), FieldPassword)
	assert.Equal(t, "Senha Fraca", fe.Title)

	f.NewPassword = "123456"
	f.ConfirmPassword = "1234567"
	requireField(t, CheckUserEdit(f), FieldPasswordConfirm)

	f.ConfirmPassword = "123456"
	assert.NoError(t, CheckUserEdit(f))
}

func TestCheckTicketEdit(t *testing.T) {
	assert.NoError(t, CheckTicketEdit(TicketEdit{Title: "x", Priority: "Alta"}))
	requireField(t, CheckTicketEdit(TicketEdit{Title: " ", Priority: ""}), FieldTitle)
	requireField(t, CheckTicketEdit(TicketEdit{Title: "x"}), FieldPriority)
}

func TestAffiliationField(t *testing.T) {
	assert.Equal(t, FieldSpecialty, AffiliationField(model.Technician))
	assert.Equal(t, FieldSector, AffiliationField(model.CommonUser))
	assert.Equal(t, FieldSector, AffiliationField(nil))
}
