package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/psds-microservice/suptec-client/internal/report"
)

func (m Model) View() string {
	var body string
	switch {
	case m.screen == screenLogin:
		body = m.loginView()
	case m.form != nil:
		body = m.form.view(m.keys)
	default:
		body = m.mainView()
	}
	if m.dialog != nil {
		body = lipgloss.JoinVertical(lipgloss.Left, body, "", m.dialog.view())
	}
	return body
}

func (m Model) loginView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("SUPTEC — Acesso do Gerente"))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Email:") + m.email.View() + "\n")
	b.WriteString(labelStyle.Render("Senha:") + m.password.View() + "\n\n")
	switch {
	case m.busy:
		b.WriteString(helpStyle.Render("Entrando..."))
	case m.loginError != "":
		b.WriteString(errorStyle.Render(m.loginError))
	}
	b.WriteString("\n\n" + helpStyle.Render("tab trocar campo • enter entrar • esc sair"))
	return b.String()
}

func (m Model) mainView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("SUPTEC"))
	if m.deps.Session != nil {
		b.WriteString("  " + helpStyle.Render(m.deps.Session.DisplayName()))
	}
	b.WriteString("\n")
	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if Tab(i) == m.tab {
			tabs[i] = activeTabStyle.Render(label)
		} else {
			tabs[i] = tabStyle.Render(label)
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	switch m.tab {
	case TabTickets:
		w := m.deps.Tickets
		b.WriteString(m.searchLine("Prioridade: "+w.PriorityFilter(), w.Counter(), w.Skipped()))
		b.WriteString(m.ticketTable())
	case TabUsers:
		w := m.deps.Users
		b.WriteString(m.searchLine("Tipo: "+w.VariantFilter(), w.Counter(), w.Skipped()))
		b.WriteString(m.userTable())
	case TabReport:
		b.WriteString(report.Render(report.Build(m.deps.Tickets.All(), m.deps.Users.All(), m.deps.Now())))
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(m.statusView())
	b.WriteByte('\n')
	b.WriteString(helpStyle.Render(m.helpLine()))
	return b.String()
}

func (m Model) searchLine(filter, counter string, skipped int) string {
	line := m.search[m.tab].View() + "   " + helpStyle.Render(filter+" • "+counter)
	if skipped > 0 {
		line += "  " + warnStyle.Render(fmt.Sprintf("(%d registro(s) ignorado(s))", skipped))
	}
	return line + "\n\n"
}

func (m Model) statusView() string {
	if m.busy {
		return helpStyle.Render("Carregando...")
	}
	switch m.status.kind {
	case "info":
		return infoStyle.Render(m.status.text)
	case "warn":
		return warnStyle.Render(m.status.text)
	case "error":
		return errorStyle.Render(m.status.text)
	}
	return ""
}

func (m Model) helpLine() string {
	k := m.keys
	parts := []string{
		k.Up.Help().Key + "/" + k.Down.Help().Key + " mover",
		k.NextTab.Help().Key + " aba",
	}
	if m.tab != TabReport {
		parts = append(parts,
			k.Search.Help().Key+" "+k.Search.Help().Desc,
			k.Filter.Help().Key+" "+k.Filter.Help().Desc,
			k.Select.Help().Key+" "+k.Select.Help().Desc,
			k.View.Help().Key+" "+k.View.Help().Desc,
			k.Edit.Help().Key+" "+k.Edit.Help().Desc,
			k.Delete.Help().Key+" "+k.Delete.Help().Desc,
		)
		if m.tab == TabUsers {
			parts = append(parts, k.New.Help().Key+" "+k.New.Help().Desc)
		}
	}
	parts = append(parts,
		k.Reload.Help().Key+" "+k.Reload.Help().Desc,
		k.Logout.Help().Key+" "+k.Logout.Help().Desc,
		k.Quit.Help().Key+" "+k.Quit.Help().Desc,
	)
	return strings.Join(parts, " • ")
}
