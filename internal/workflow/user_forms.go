package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/psds-microservice/suptec-client/internal/model"
	"github.com/psds-microservice/suptec-client/internal/validate"
)

// UserEditForm — редактирование пользователя. Тип пользователя не меняется.
type UserEditForm struct {
	formMachine
	wf       *UserWorkflow
	original model.User

	Name  string
	Email string
	Phone string
	// Affiliation — отдел или специализация, см. Visibility.
	Affiliation string

	ChangePassword  bool
	NewPassword     string
	ConfirmPassword string
}

func newUserEditForm(wf *UserWorkflow, u model.User) *UserEditForm {
	return &UserEditForm{
		wf:          wf,
		original:    u,
		Name:        u.Name,
		Email:       u.Email,
		Phone:       u.Phone,
		Affiliation: u.AffiliationValue(),
	}
}

func (f *UserEditForm) Original() model.User { return f.original }

func (f *UserEditForm) Variant() model.Variant { return f.original.Variant }

func (f *UserEditForm) Visibility() Visibility { return FieldVisibility(f.original.Variant) }

// Result — пользователь, который будет отправлен на сервер.
func (f *UserEditForm) Result() model.User {
	u := f.original
	u.Name = strings.TrimSpace(f.Name)
	u.Email = strings.TrimSpace(f.Email)
	u.Phone = strings.TrimSpace(f.Phone)
	u.SetAffiliation(strings.TrimSpace(f.Affiliation))
	u.Password = ""
	if f.ChangePassword {
		u.Password = f.NewPassword
	}
	return u
}

func (f *UserEditForm) Dirty() bool {
	r := f.Result()
	o := f.original
	return f.ChangePassword || r.Name != o.Name || r.Email != o.Email ||
		r.Phone != o.Phone || r.AffiliationValue() != o.AffiliationValue()
}

// Check проверяет поля, не меняя состояния формы.
func (f *UserEditForm) Check() error { return f.steps().validate() }

// Confirmation — заголовок и текст запроса подтверждения перед отправкой.
func (f *UserEditForm) Confirmation() (string, string) {
	s := f.steps()
	return s.confirmTitle, s.confirmText()
}

func (f *UserEditForm) Submit(ctx context.Context) error {
	return f.run(ctx, &f.wf.flight, f.wf.prompt, f.steps())
}

func (f *UserEditForm) steps() submitSteps {
	return submitSteps{
		validate: func() error {
			return validate.CheckUserEdit(validate.UserEdit{
				Name:            f.Name,
				Email:           f.Email,
				Phone:           f.Phone,
				Variant:         f.original.Variant,
				Affiliation:     f.Affiliation,
				ChangePassword:  f.ChangePassword,
				NewPassword:     f.NewPassword,
				ConfirmPassword: f.ConfirmPassword,
			})
		},
		confirmTitle: "Confirmar Edição",
		confirmText: func() string {
			r := f.Result()
			text := fmt.Sprintf("Deseja salvar as alterações do usuário?\n\nNome: %s\nEmail: %s\nTipo: %s",
				r.Name, r.Email, r.VariantLabel())
			if f.ChangePassword {
				text += "\n\nA senha será alterada."
			}
			return text
		},
		submit: func(ctx context.Context) bool {
			return f.wf.svc.Update(ctx, f.Result())
		},
		onSuccess: func(ctx context.Context) {
			f.wf.prompt.Info(titleSuccess, "Usuário atualizado com sucesso!")
			f.wf.reload(ctx)
		},
		onFailure: func() {
			title, msg := failureMessage(f.wf.svc.LastOutcome(), "Erro ao Atualizar",
				"Não foi possível atualizar o usuário. Verifique os dados e tente novamente.")
			f.wf.prompt.Error(title, msg)
		},
	}
}

func (f *UserEditForm) Cancel() bool {
	return f.cancel(f.wf.prompt, f.Dirty(), "Cancelar Edição",
		"Deseja realmente cancelar? Todas as alterações serão perdidas.")
}

// UserCreateForm — регистрация нового пользователя любого типа.
type UserCreateForm struct {
	formMachine
	wf *UserWorkflow

	Variant     model.Variant
	Name        string
	Email       string
	Password    string
	Phone       string
	Affiliation string
}

// Visibility — поля принадлежности для выбранного типа; пока тип не
// выбран, показывается отдел.
func (f *UserCreateForm) Visibility() Visibility { return FieldVisibility(f.Variant) }

func (f *UserCreateForm) Dirty() bool {
	return f.Variant != nil || strings.TrimSpace(f.Name+f.Email+f.Password+f.Phone+f.Affiliation) != ""
}

// Check проверяет поля, не меняя состояния формы.
func (f *UserCreateForm) Check() error { return f.steps().validate() }

// Confirmation — заголовок и текст запроса подтверждения перед отправкой.
func (f *UserCreateForm) Confirmation() (string, string) {
	s := f.steps()
	return s.confirmTitle, s.confirmText()
}

func (f *UserCreateForm) Submit(ctx context.Context) error {
	return f.run(ctx, &f.wf.flight, f.wf.prompt, f.steps())
}

func (f *UserCreateForm) steps() submitSteps {
	return submitSteps{
		validate: func() error {
			return validate.CheckUserCreate(validate.UserCreate{
				Variant:     f.Variant,
				Name:        f.Name,
				Email:       f.Email,
				Password:    f.Password,
				Phone:       f.Phone,
				Affiliation: f.Affiliation,
			})
		},
		confirmTitle: "Confirmar Cadastro",
		confirmText: func() string {
			aff := FieldVisibility(f.Variant)
			label := "Setor"
			if aff.Specialty {
				label = "Especialidade"
			}
			return fmt.Sprintf("Deseja cadastrar o usuário?\n\nTipo: %s\nNome: %s\nEmail: %s\n%s: %s",
				f.Variant.Label(), strings.TrimSpace(f.Name), strings.TrimSpace(f.Email),
				label, strings.TrimSpace(f.Affiliation))
		},
		submit: func(ctx context.Context) bool {
			return f.wf.reg.Add(ctx, f.Variant,
				strings.TrimSpace(f.Name),
				strings.TrimSpace(f.Email),
				strings.TrimSpace(f.Password),
				strings.TrimSpace(f.Phone),
				strings.TrimSpace(f.Affiliation))
		},
		onSuccess: func(ctx context.Context) {
			f.wf.prompt.Info(titleSuccess, f.Variant.Label()+" cadastrado com sucesso!")
			f.wf.reload(ctx)
		},
		onFailure: func() {
			title, msg := failureMessage(f.wf.reg.LastOutcome(), "Erro ao Cadastrar",
				"Não foi possível cadastrar o usuário.\nVerifique se o email já não está em uso.")
			f.wf.prompt.Error(title, msg)
		},
	}
}

func (f *UserCreateForm) Cancel() bool {
	return f.cancel(f.wf.prompt, f.Dirty(), "Cancelar Cadastro",
		"Deseja realmente cancelar? Os dados preenchidos serão perdidos.")
}
