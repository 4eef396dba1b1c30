package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/psds-microservice/suptec-client/internal/model"
	"github.com/psds-microservice/suptec-client/internal/validate"
	"github.com/psds-microservice/suptec-client/internal/workflow"
)

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldSecret
	fieldChoice
	fieldToggle
)

// Служебные имена полей, которых нет среди validate.Field*.
const (
	fieldDescription    = "descricao"
	fieldStatus         = "status"
	fieldTechnician     = "tecnico"
	fieldResponse       = "resposta"
	fieldChangePassword = "alterarSenha"
)

// Пустое значение в списке выбора.
const choiceNone = "—"

type formField struct {
	name    string
	label   string
	kind    fieldKind
	input   textinput.Model
	options []string
	choice  int
	checked bool
	// visible nil — поле видно всегда.
	visible func() bool
}

func textField(name, label, value string) *formField {
	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = 200
	in.SetValue(value)
	return &formField{name: name, label: label, kind: fieldText, input: in}
}

func secretField(name, label string) *formField {
	f := textField(name, label, "")
	f.kind = fieldSecret
	f.input.EchoMode = textinput.EchoPassword
	return f
}

// choiceField: current выбирается без учёта регистра и акцентов; если его
// нет среди options, он добавляется первым.
func choiceField(name, label string, options []string, current string) *formField {
	f := &formField{name: name, label: label, kind: fieldChoice, options: append([]string(nil), options...)}
	for i, o := range f.options {
		if model.Fold(o) == model.Fold(current) {
			f.choice = i
			return f
		}
	}
	if current == "" {
		current = choiceNone
	}
	f.options = append([]string{current}, f.options...)
	return f
}

func toggleField(name, label string) *formField {
	return &formField{name: name, label: label, kind: fieldToggle}
}

func (f *formField) shown() bool { return f.visible == nil || f.visible() }

func (f *formField) value() string {
	switch f.kind {
	case fieldChoice:
		if len(f.options) == 0 || f.options[f.choice] == choiceNone {
			return ""
		}
		return f.options[f.choice]
	case fieldToggle:
		if f.checked {
			return "true"
		}
		return ""
	}
	return f.input.Value()
}

// formEditor — общий редактор полей поверх форм пакета workflow.
// sync переносит значения полей в форму перед каждой проверкой.
type formEditor struct {
	title  string
	header []string
	fields []*formField
	focus  int

	sync         func(*formEditor)
	check        func() error
	confirmation func() (string, string)
	submit       func(context.Context) error
	cancel       func() bool
	dirty        func() bool
	cancelPrompt [2]string
}

func (e *formEditor) field(name string) *formField {
	for _, f := range e.fields {
		if f.name == name {
			return f
		}
	}
	return nil
}

func (e *formEditor) text(name string) string {
	if f := e.field(name); f != nil {
		return f.value()
	}
	return ""
}

func (e *formEditor) visibleFields() []*formField {
	out := make([]*formField, 0, len(e.fields))
	for _, f := range e.fields {
		if f.shown() {
			out = append(out, f)
		}
	}
	return out
}

func (e *formEditor) current() *formField {
	v := e.visibleFields()
	if len(v) == 0 {
		return nil
	}
	if e.focus >= len(v) {
		e.focus = len(v) - 1
	}
	return v[e.focus]
}

// focusCmd переводит фокус ввода на текущее поле.
func (e *formEditor) focusCmd() tea.Cmd {
	cur := e.current()
	var cmd tea.Cmd
	for _, f := range e.fields {
		if f == cur && (f.kind == fieldText || f.kind == fieldSecret) {
			cmd = f.input.Focus()
			continue
		}
		f.input.Blur()
	}
	return cmd
}

func (e *formEditor) move(delta int) tea.Cmd {
	n := len(e.visibleFields())
	if n == 0 {
		return nil
	}
	e.focus = (e.focus + delta + n) % n
	return e.focusCmd()
}

// focusField ставит фокус на поле с ошибкой проверки.
func (e *formEditor) focusField(name string) tea.Cmd {
	for i, f := range e.visibleFields() {
		if f.name == name {
			e.focus = i
			return e.focusCmd()
		}
	}
	return nil
}

// update передаёт сообщение текстовому полю в фокусе.
func (e *formEditor) update(msg tea.Msg) tea.Cmd {
	cur := e.current()
	if cur == nil || (cur.kind != fieldText && cur.kind != fieldSecret) {
		return nil
	}
	var cmd tea.Cmd
	cur.input, cmd = cur.input.Update(msg)
	return cmd
}

func (e *formEditor) handleKey(keys KeyMap, msg tea.KeyMsg) tea.Cmd {
	cur := e.current()
	switch {
	case key.Matches(msg, keys.NextField):
		return e.move(1)
	case key.Matches(msg, keys.PrevField):
		return e.move(-1)
	}
	if cur == nil {
		return nil
	}
	switch cur.kind {
	case fieldChoice:
		switch {
		case key.Matches(msg, keys.Left):
			cur.choice = (cur.choice - 1 + len(cur.options)) % len(cur.options)
		case key.Matches(msg, keys.Right), key.Matches(msg, keys.Toggle):
			cur.choice = (cur.choice + 1) % len(cur.options)
		}
		return nil
	case fieldToggle:
		if key.Matches(msg, keys.Toggle) || msg.Type == tea.KeyEnter {
			cur.checked = !cur.checked
		}
		return nil
	}
	return e.update(msg)
}

func newTicketEditor(f *workflow.TicketEditForm) *formEditor {
	o := f.Original()
	priorities := make([]string, 0, len(model.Priorities))
	for _, p := range model.Priorities {
		priorities = append(priorities, string(p))
	}
	statuses := make([]string, 0, len(model.Statuses))
	for _, s := range model.Statuses {
		statuses = append(statuses, string(s))
	}
	technician := f.AssignedTechnician
	if technician == "" {
		technician = workflow.NoTechnician
	}
	e := &formEditor{
		title: "Editar Chamado",
		header: []string{
			"ID: " + o.ID,
			"Solicitante: " + o.Requester.Name + " <" + o.RequesterEmailText() + ">",
			"Aberto em: " + o.OpenedAtText(),
		},
		fields: []*formField{
			textField(validate.FieldTitle, "Título", f.Title),
			textField(fieldDescription, "Descrição", f.Description),
			choiceField(validate.FieldPriority, "Prioridade", priorities, f.Priority),
			choiceField(fieldStatus, "Status", statuses, f.Status),
			choiceField(fieldTechnician, "Técnico Responsável", f.Technicians, technician),
			textField(fieldResponse, "Resposta do Técnico", f.TechnicianResponse),
		},
		check:        f.Check,
		confirmation: f.Confirmation,
		submit:       f.Submit,
		cancel:       f.Cancel,
		dirty:        f.Dirty,
		cancelPrompt: [2]string{"Cancelar Edição", "Deseja realmente cancelar? Todas as alterações serão perdidas."},
	}
	e.sync = func(e *formEditor) {
		f.Title = e.text(validate.FieldTitle)
		f.Description = e.text(fieldDescription)
		f.Priority = e.text(validate.FieldPriority)
		f.Status = e.text(fieldStatus)
		f.AssignedTechnician = e.text(fieldTechnician)
		f.TechnicianResponse = e.text(fieldResponse)
	}
	return e
}

func newUserEditor(f *workflow.UserEditForm) *formEditor {
	v := f.Variant()
	aff := validate.AffiliationField(v)
	e := &formEditor{
		title:  "Editar " + v.Label(),
		header: []string{"ID: " + f.Original().ID, "Tipo: " + v.Label()},
		fields: []*formField{
			textField(validate.FieldName, "Nome", f.Name),
			textField(validate.FieldEmail, "Email", f.Email),
			textField(validate.FieldPhone, "Telefone", f.Phone),
			textField(aff, v.Affiliation().Label(), f.Affiliation),
			toggleField(fieldChangePassword, "Alterar senha"),
			secretField(validate.FieldPassword, "Nova senha"),
			secretField(validate.FieldPasswordConfirm, "Confirmar senha"),
		},
		check:        f.Check,
		confirmation: f.Confirmation,
		submit:       f.Submit,
		cancel:       f.Cancel,
		dirty:        f.Dirty,
		cancelPrompt: [2]string{"Cancelar Edição", "Deseja realmente cancelar? Todas as alterações serão perdidas."},
	}
	changing := func() bool { return e.field(fieldChangePassword).checked }
	e.field(validate.FieldPassword).visible = changing
	e.field(validate.FieldPasswordConfirm).visible = changing
	e.sync = func(e *formEditor) {
		f.Name = e.text(validate.FieldName)
		f.Email = e.text(validate.FieldEmail)
		f.Phone = e.text(validate.FieldPhone)
		f.Affiliation = e.text(aff)
		f.ChangePassword = changing()
		f.NewPassword = e.text(validate.FieldPassword)
		f.ConfirmPassword = e.text(validate.FieldPasswordConfirm)
	}
	return e
}

func newUserCreator(f *workflow.UserCreateForm) *formEditor {
	variants := make([]string, 0, len(model.Variants))
	for _, v := range model.Variants {
		variants = append(variants, v.Label())
	}
	e := &formEditor{
		title: "Cadastrar Usuário",
		fields: []*formField{
			choiceField(validate.FieldVariant, "Tipo", variants, ""),
			textField(validate.FieldName, "Nome", ""),
			textField(validate.FieldEmail, "Email", ""),
			secretField(validate.FieldPassword, "Senha"),
			textField(validate.FieldPhone, "Telefone", ""),
			textField(validate.FieldSector, "Setor", ""),
			textField(validate.FieldSpecialty, "Especialidade", ""),
		},
		check:        f.Check,
		confirmation: f.Confirmation,
		submit:       f.Submit,
		cancel:       f.Cancel,
		dirty:        f.Dirty,
		cancelPrompt: [2]string{"Cancelar Cadastro", "Deseja realmente cancelar? Os dados preenchidos serão perdidos."},
	}
	variant := func() model.Variant {
		v, _ := model.ParseVariant(e.text(validate.FieldVariant))
		return v
	}
	e.field(validate.FieldSector).visible = func() bool { return workflow.FieldVisibility(variant()).Sector }
	e.field(validate.FieldSpecialty).visible = func() bool { return workflow.FieldVisibility(variant()).Specialty }
	e.sync = func(e *formEditor) {
		f.Variant = variant()
		f.Name = e.text(validate.FieldName)
		f.Email = e.text(validate.FieldEmail)
		f.Password = e.text(validate.FieldPassword)
		f.Phone = e.text(validate.FieldPhone)
		f.Affiliation = e.text(validate.AffiliationField(f.Variant))
	}
	return e
}

func (e *formEditor) view(keys KeyMap) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(e.title))
	b.WriteString("\n\n")
	for _, h := range e.header {
		b.WriteString(helpStyle.Render(h))
		b.WriteByte('\n')
	}
	if len(e.header) > 0 {
		b.WriteByte('\n')
	}
	cur := e.current()
	for _, f := range e.visibleFields() {
		marker := "  "
		if f == cur {
			marker = cursorStyle.Render(">") + " "
		}
		b.WriteString(marker)
		b.WriteString(labelStyle.Render(f.label + ":"))
		switch f.kind {
		case fieldChoice:
			b.WriteString("◀ " + f.options[f.choice] + " ▶")
		case fieldToggle:
			if f.checked {
				b.WriteString("[x]")
			} else {
				b.WriteString("[ ]")
			}
		default:
			b.WriteString(f.input.View())
		}
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(helpStyle.Render(strings.Join([]string{
		keys.NextField.Help().Key + " " + keys.NextField.Help().Desc,
		"←/→ opções",
		keys.Submit.Help().Key + " " + keys.Submit.Help().Desc,
		"esc cancelar",
	}, " • ")))
	return b.String()
}
