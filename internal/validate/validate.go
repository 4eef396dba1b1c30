// Пакет validate — проверка форм создания и редактирования на клиенте.
// Первая найденная ошибка возвращается как *FieldError с именем поля,
// на которое нужно перевести фокус.
package validate

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/psds-microservice/suptec-client/internal/model"
)

// Имена полей форм (совпадают с ключами JSON API).
const (
	FieldVariant         = "tipo"
	FieldName            = "nome"
	FieldEmail           = "email"
	FieldPassword        = "senha"
	FieldPasswordConfirm = "confirmarSenha"
	FieldPhone           = "telefone"
	FieldSector          = "setor"
	FieldSpecialty       = "especialidade"
	FieldTitle           = "titulo"
	FieldPriority        = "prioridade"
)

const MinPasswordLen = 6

// FieldError — нарушение правила в конкретном поле формы.
type FieldError struct {
	Field   string
	Title   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// AsFieldError — удобная обёртка над errors.As.
func AsFieldError(err error) (*FieldError, bool) {
	var fe *FieldError
	ok := errors.As(err, &fe)
	return fe, ok
}

// Домены верхнего уровня, которые принимает форма регистрации.
var allowedTLDs = map[string]bool{
	"com": true, "br": true, "org": true, "net": true, "edu": true, "gov": true,
	"mil": true, "int": true, "info": true, "biz": true, "name": true, "pro": true,
}

var lettersRe = regexp.MustCompile(`^[a-zA-ZÀ-ÿ\s]+$`)

// UserCreate — форма регистрации пользователя.
type UserCreate struct {
	Variant  model.Variant `form:"tipo" validate:"-"`
	Name     string        `form:"nome" validate:"filled,person_name"`
	Email    string        `form:"email" validate:"filled,signup_email"`
	Password string        `form:"senha" validate:"filled,password"`
	Phone    string        `form:"telefone" validate:"filled,phone"`
	// Affiliation — отдел или специализация, в зависимости от Variant.
	Affiliation string `form:"-"`
}

// UserEdit — форма редактирования пользователя.
type UserEdit struct {
	Name        string        `form:"nome" validate:"filled"`
	Email       string        `form:"email" validate:"filled,contains=@"`
	Phone       string        `form:"telefone" validate:"filled"`
	Variant     model.Variant `form:"tipo" validate:"-"`
	Affiliation string        `form:"-"`

	ChangePassword  bool   `form:"-"`
	NewPassword     string `form:"senha" validate:"-"`
	ConfirmPassword string `form:"confirmarSenha" validate:"-"`
}

type passwordChange struct {
	NewPassword     string `form:"senha" validate:"filled,min=6"`
	ConfirmPassword string `form:"confirmarSenha" validate:"eqfield=NewPassword"`
}

// TicketEdit — форма редактирования тикета.
type TicketEdit struct {
	Title    string `form:"titulo" validate:"filled"`
	Priority string `form:"prioridade" validate:"filled"`
}

// Validator оборачивает validator.Validate с зарегистрированными правилами.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "filled", func(fl validator.FieldLevel) bool {
		return Filled(fl.Field().String())
	})
	mustRegister(v, "person_name", func(fl validator.FieldLevel) bool {
		return PersonName(fl.Field().String())
	})
	mustRegister(v, "signup_email", func(fl validator.FieldLevel) bool {
		return SignupEmail(fl.Field().String())
	})
	mustRegister(v, "password", func(fl validator.FieldLevel) bool {
		return Password(fl.Field().String())
	})
	mustRegister(v, "phone", func(fl validator.FieldLevel) bool {
		return Phone(fl.Field().String())
	})
	mustRegister(v, "letters", func(fl validator.FieldLevel) bool {
		return LettersOnly(fl.Field().String())
	})
	return &Validator{v: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("validate: register " + tag + ": " + err.Error())
	}
}

var std = New()

// CheckUserCreate проверяет форму регистрации в порядке полей формы.
func CheckUserCreate(f UserCreate) error { return std.CheckUserCreate(f) }

func CheckUserEdit(f UserEdit) error { return std.CheckUserEdit(f) }

func CheckTicketEdit(f TicketEdit) error { return std.CheckTicketEdit(f) }

func (x *Validator) CheckUserCreate(f UserCreate) error {
	if f.Variant == nil {
		return createMessages.lookup(FieldVariant, "required")
	}
	if err := x.v.Struct(f); err != nil {
		return toFieldError(err, createMessages)
	}
	return x.checkAffiliation(f.Variant, f.Affiliation, "filled,letters", createMessages)
}

func (x *Validator) CheckUserEdit(f UserEdit) error {
	if err := x.v.Struct(f); err != nil {
		return toFieldError(err, editMessages)
	}
	if f.Variant == nil {
		return editMessages.lookup(FieldVariant, "required")
	}
	if err := x.checkAffiliation(f.Variant, f.Affiliation, "filled", editMessages); err != nil {
		return err
	}
	if !f.ChangePassword {
		return nil
	}
	if err := x.v.Struct(passwordChange{NewPassword: f.NewPassword, ConfirmPassword: f.ConfirmPassword}); err != nil {
		return toFieldError(err, editMessages)
	}
	return nil
}

func (x *Validator) CheckTicketEdit(f TicketEdit) error {
	if err := x.v.Struct(f); err != nil {
		return toFieldError(err, ticketMessages)
	}
	return nil
}

// AffiliationField — имя поля отдела/специализации для варианта.
func AffiliationField(v model.Variant) string {
	if v != nil && v.Affiliation() == model.AffiliationSpecialty {
		return FieldSpecialty
	}
	return FieldSector
}

func (x *Validator) checkAffiliation(v model.Variant, value, tags string, msgs messages) error {
	field := AffiliationField(v)
	err := x.v.Var(value, tags)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return msgs.lookup(field, verrs[0].Tag())
	}
	return &FieldError{Field: field, Title: "Campo inválido", Message: err.Error()}
}

func toFieldError(err error, msgs messages) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	first := verrs[0]
	return msgs.lookup(first.Field(), first.Tag())
}

// Filled — непустая строка после обрезки пробелов.
func Filled(s string) bool {
	return strings.TrimSpace(s) != ""
}

// PersonName — только буквы (включая акцентированные) и пробелы, минимум 3 символа.
func PersonName(s string) bool {
	s = strings.TrimSpace(s)
	return utf8.RuneCountInString(s) >= 3 && lettersRe.MatchString(s)
}

// LettersOnly — только буквы и пробелы.
func LettersOnly(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && lettersRe.MatchString(s)
}

// SignupEmail — local@domain.tld, все части домена непустые, TLD из allowedTLDs.
func SignupEmail(s string) bool {
	s = strings.TrimSpace(s)
	local, domain, ok := strings.Cut(s, "@")
	if !ok || local == "" || strings.Contains(domain, "@") {
		return false
	}
	parts := strings.Split(domain, ".")
	if len(parts) < 2 {
		return false
	}
	for _, p := range parts {
		if p == "" {
			return false
		}
	}
	return allowedTLDs[strings.ToLower(parts[len(parts)-1])]
}

// Password — минимум MinPasswordLen символов после обрезки пробелов.
func Password(s string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) >= MinPasswordLen
}

// Phone — от 8 до 11 цифр, прочие символы игнорируются.
func Phone(s string) bool {
	n := len(Digits(s))
	return n >= 8 && n <= 11
}

// Digits оставляет в строке только цифры ASCII.
func Digits(s string) string {
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}
