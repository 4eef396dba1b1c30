package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/psds-microservice/suptec-client/internal/validate"
)

type dialogAction int

const (
	actNone dialogAction = iota
	actDeleteTicket
	actDeleteUser
	actSubmitForm
	actCancelForm
)

// dialog — модальное окно. actNone — просто сообщение, закрывается любой
// клавишей; остальные ждут ответа да/нет.
type dialog struct {
	title  string
	text   string
	kind   string
	action dialogAction
}

func messageDialog(kind, title, text string) *dialog {
	return &dialog{kind: kind, title: title, text: text}
}

func confirmDialog(action dialogAction, title, text string) *dialog {
	return &dialog{kind: "confirm", title: title, text: text, action: action}
}

func (d *dialog) view() string {
	title := titleStyle.Render(d.title)
	switch d.kind {
	case "error":
		title = errorStyle.Bold(true).Render(d.title)
	case "warn":
		title = warnStyle.Bold(true).Render(d.title)
	}
	hint := "enter/esc fechar"
	if d.action != actNone {
		hint = "s/enter sim • n/esc não"
	}
	return dialogStyle.Render(title + "\n\n" + strings.TrimRight(d.text, "\n") + "\n\n" + helpStyle.Render(hint))
}

func (m Model) handleDialogKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.dialog
	if d.action == actNone {
		m.dialog = nil
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.dialog = nil
		return m.runDialogAction(d.action)
	case key.Matches(msg, m.keys.Cancel):
		m.dialog = nil
		if d.action == actSubmitForm && m.form != nil {
			m.setStatus("info", "Alterações não enviadas.")
		}
	}
	return m, nil
}

func (m Model) runDialogAction(action dialogAction) (tea.Model, tea.Cmd) {
	d := m.deps
	switch action {
	case actDeleteTicket:
		m.busy = true
		return m, func() tea.Msg {
			_, err := d.Tickets.Delete(context.Background())
			return opDoneMsg{err: err, msgs: d.Prompt.Drain()}
		}
	case actDeleteUser:
		m.busy = true
		return m, func() tea.Msg {
			_, err := d.Users.Delete(context.Background())
			return opDoneMsg{err: err, msgs: d.Prompt.Drain()}
		}
	case actSubmitForm:
		if m.form == nil {
			return m, nil
		}
		m.busy = true
		submit := m.form.submit
		return m, func() tea.Msg {
			err := submit(context.Background())
			return formDoneMsg{err: err, msgs: d.Prompt.Drain()}
		}
	case actCancelForm:
		if m.form != nil && m.form.cancel() {
			m.form = nil
			d.Prompt.Drain()
		}
	}
	return m, nil
}

func (m Model) handleFormDone(msg formDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	m.showMessages(msg.msgs)
	if msg.err == nil {
		m.form = nil
		m.clampCursor()
		return m, nil
	}
	if fe, ok := validate.AsFieldError(msg.err); ok && m.form != nil {
		return m, m.form.focusField(fe.Field)
	}
	return m, nil
}

func (m Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	e := m.form
	if m.busy {
		return m, nil
	}
	switch {
	case msg.Type == tea.KeyEsc:
		e.sync(e)
		if e.dirty() {
			m.dialog = confirmDialog(actCancelForm, e.cancelPrompt[0], e.cancelPrompt[1])
			return m, nil
		}
		e.cancel()
		m.form = nil
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		e.sync(e)
		if err := e.check(); err != nil {
			fe, ok := validate.AsFieldError(err)
			if !ok {
				m.dialog = messageDialog("warn", "Erro", err.Error())
				return m, nil
			}
			m.dialog = messageDialog("warn", fe.Title, fe.Message)
			return m, e.focusField(fe.Field)
		}
		title, text := e.confirmation()
		m.dialog = confirmDialog(actSubmitForm, title, text)
		return m, nil
	}
	return m, e.handleKey(m.keys, msg)
}
