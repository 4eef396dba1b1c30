package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/psds-microservice/suptec-client/internal/model"
	"github.com/psds-microservice/suptec-client/internal/search"
	"github.com/psds-microservice/suptec-client/internal/workflow"
)

// Значения фильтров в порядке переключения клавишей f.
var (
	priorityFilters = []string{model.PriorityAll, string(model.PriorityLow), string(model.PriorityMedium), string(model.PriorityHigh)}
	variantFilters  = []string{search.UserVariantAll, model.Manager.Label(), model.Technician.Label(), model.CommonUser.Label()}
)

func nextFilter(options []string, current string) string {
	for i, o := range options {
		if strings.EqualFold(o, current) {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

func (m *Model) rows() int {
	switch m.tab {
	case TabTickets:
		return len(m.deps.Tickets.Visible())
	case TabUsers:
		return len(m.deps.Users.Visible())
	}
	return 0
}

func (m *Model) clampCursor() {
	for i, n := range []int{len(m.deps.Tickets.Visible()), len(m.deps.Users.Visible())} {
		if m.cursor[i] >= n {
			m.cursor[i] = n - 1
		}
		if m.cursor[i] < 0 {
			m.cursor[i] = 0
		}
	}
}

// selectCursor выбирает строку под курсором.
func (m *Model) selectCursor() bool {
	if m.tab == TabTickets {
		return m.deps.Tickets.SelectIndex(m.cursor[TabTickets])
	}
	return m.deps.Users.SelectIndex(m.cursor[TabUsers])
}

// toggleCursor снимает выбор со строки под курсором или выбирает её.
func (m *Model) toggleCursor() {
	i := m.cursor[m.tab]
	if m.tab == TabTickets {
		v := m.deps.Tickets.Visible()
		if cur, ok := m.deps.Tickets.Selected(); ok && i < len(v) && cur.ID == v[i].ID {
			m.deps.Tickets.Deselect()
			return
		}
	} else {
		v := m.deps.Users.Visible()
		if cur, ok := m.deps.Users.Selected(); ok && i < len(v) && cur.ID == v[i].ID && cur.Variant == v[i].Variant {
			m.deps.Users.Deselect()
			return
		}
	}
	m.selectCursor()
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.deps
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor[m.tab] > 0 {
			m.cursor[m.tab]--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor[m.tab] < m.rows()-1 {
			m.cursor[m.tab]++
		}
	case key.Matches(msg, m.keys.Select):
		m.toggleCursor()
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.search[m.tab].Focus()
	case key.Matches(msg, m.keys.Filter):
		if m.tab == TabTickets {
			d.Tickets.SetPriorityFilter(nextFilter(priorityFilters, d.Tickets.PriorityFilter()))
		} else {
			d.Users.SetVariantFilter(nextFilter(variantFilters, d.Users.VariantFilter()))
		}
		m.cursor[m.tab] = 0
	case key.Matches(msg, m.keys.Clear):
		if m.tab == TabTickets {
			d.Tickets.ClearSearch()
		} else {
			d.Users.ClearSearch()
		}
		m.search[m.tab].SetValue("")
		m.cursor[m.tab] = 0
	case key.Matches(msg, m.keys.View):
		m.selectCursor()
		return m.view()
	case key.Matches(msg, m.keys.Edit):
		return m.beginEdit()
	case key.Matches(msg, m.keys.New):
		if m.tab == TabUsers {
			m.form = newUserCreator(d.Users.BeginCreate())
			return m, m.form.focusCmd()
		}
	case key.Matches(msg, m.keys.Delete):
		return m.beginDelete()
	}
	return m, nil
}

func (m Model) view() (tea.Model, tea.Cmd) {
	var (
		details string
		err     error
		title   = "Detalhes do Chamado"
	)
	if m.tab == TabTickets {
		details, err = m.deps.Tickets.View()
	} else {
		title = "Detalhes do Usuário"
		details, err = m.deps.Users.View()
	}
	msgs := m.deps.Prompt.Drain()
	if err != nil {
		m.showMessages(msgs)
		return m, nil
	}
	m.dialog = messageDialog("info", title, details)
	return m, nil
}

func (m Model) beginEdit() (tea.Model, tea.Cmd) {
	d := m.deps
	if m.tab == TabUsers {
		f, err := d.Users.BeginEdit()
		m.showMessages(d.Prompt.Drain())
		if err != nil {
			return m, nil
		}
		m.form = newUserEditor(f)
		return m, m.form.focusCmd()
	}
	if _, ok := d.Tickets.Selected(); !ok {
		// Предупреждение без обращения к сети.
		_, _ = d.Tickets.BeginEdit(context.Background())
		m.showMessages(d.Prompt.Drain())
		return m, nil
	}
	// Форма тикета загружает список техников.
	m.busy = true
	return m, func() tea.Msg {
		f, err := d.Tickets.BeginEdit(context.Background())
		msg := formOpenedMsg{err: err, msgs: d.Prompt.Drain()}
		if err == nil {
			msg.editor = newTicketEditor(f)
		}
		return msg
	}
}

func (m Model) beginDelete() (tea.Model, tea.Cmd) {
	d := m.deps
	if m.tab == TabTickets {
		t, ok := d.Tickets.Selected()
		if !ok || !t.HasID() {
			_, _ = d.Tickets.Delete(context.Background())
			m.showMessages(d.Prompt.Drain())
			return m, nil
		}
		m.dialog = confirmDialog(actDeleteTicket, "Confirmar Exclusão", workflow.TicketDeleteConfirmation(t))
		return m, nil
	}
	u, ok := d.Users.Selected()
	if !ok || !u.HasID() {
		_, _ = d.Users.Delete(context.Background())
		m.showMessages(d.Prompt.Drain())
		return m, nil
	}
	m.dialog = confirmDialog(actDeleteUser, "Confirmar Exclusão", workflow.UserDeleteConfirmation(u))
	return m, nil
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tab := m.tab
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		m.searching = false
		m.search[tab].Blur()
		m.debounceSeq++
		m.applySearch(tab)
		return m, nil
	}
	var cmd tea.Cmd
	m.search[tab], cmd = m.search[tab].Update(msg)
	m.debounceSeq++
	seq := m.debounceSeq
	return m, tea.Batch(cmd, tea.Tick(search.Debounce, func(time.Time) tea.Msg {
		return debounceMsg{seq: seq, tab: tab}
	}))
}

func (m *Model) applySearch(tab Tab) {
	term := m.search[tab].Value()
	switch tab {
	case TabTickets:
		m.deps.Tickets.SetTerm(term)
	case TabUsers:
		m.deps.Users.SetTerm(term)
	}
	m.cursor[tab] = 0
}

func (m Model) ticketTable() string {
	w := m.deps.Tickets
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("  %-10s %-32s %-8s %-10s %-20s %-20s", "ID", "Título", "Prior.", "Status", "Usuário", "Técnico")))
	b.WriteByte('\n')
	sel, hasSel := w.Selected()
	for i, t := range w.Visible() {
		mark := " "
		if hasSel && sel.ID == t.ID {
			mark = "*"
		}
		line := fmt.Sprintf("%s %-10s %-32s %-8s %-10s %-20s %-20s", mark,
			clip(t.ID, 10), clip(t.Title, 32), clip(t.Priority, 8), clip(t.StatusText(), 10),
			clip(t.Requester.Name, 20), clip(t.AssignedTechnicianText(), 20))
		b.WriteString(m.row(i, TabTickets, hasSel && sel.ID == t.ID, line))
		b.WriteByte('\n')
	}
	return b.String()
}

func (m Model) userTable() string {
	w := m.deps.Users
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("  %-24s %-28s %-14s %-10s %-18s", "Nome", "Email", "Telefone", "Tipo", "Setor/Espec.")))
	b.WriteByte('\n')
	sel, hasSel := w.Selected()
	for i, u := range w.Visible() {
		selected := hasSel && sel.ID == u.ID && sel.Variant == u.Variant
		mark := " "
		if selected {
			mark = "*"
		}
		line := fmt.Sprintf("%s %-24s %-28s %-14s %-10s %-18s", mark,
			clip(u.Name, 24), clip(u.Email, 28), clip(u.Phone, 14), clip(u.VariantLabel(), 10), clip(u.AffiliationText(), 18))
		b.WriteString(m.row(i, TabUsers, selected, line))
		b.WriteByte('\n')
	}
	return b.String()
}

func (m Model) row(i int, tab Tab, selected bool, line string) string {
	switch {
	case i == m.cursor[tab] && m.form == nil:
		return cursorStyle.Render(line)
	case selected:
		return selectedStyle.Render(line)
	}
	return line
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
