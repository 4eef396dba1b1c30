package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BarWidth — длина самой длинной полосы в символах.
const BarWidth = 30

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	kpiStyle    = lipgloss.NewStyle().Bold(true)
	alertStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	labelStyle  = lipgloss.NewStyle().Width(10)

	barColors = map[string]lipgloss.Color{
		"Aberto":   lipgloss.Color("#3498db"),
		"Fechado":  lipgloss.Color("#2ecc71"),
		"Pendente": lipgloss.Color("#f1c40f"),
		"Baixa":    lipgloss.Color("#2ecc71"),
		"Media":    lipgloss.Color("#f39c12"),
		"Alta":     lipgloss.Color("#e74c3c"),
	}
)

// Render — текстовый отчёт: KPI, распределения по статусу и приоритету,
// помесячный объём и предупреждение о незакрытых тикетах.
func Render(s Summary) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Relatórios"))
	b.WriteString("\n\n")
	for _, kpi := range []Count{
		{"Total de chamados", s.Total},
		{"Fechados", s.Closed},
		{"Pendentes", s.Pending},
		{"Técnicos", s.Technicians},
		{"Usuários comuns", s.CommonUsers},
	} {
		b.WriteString(kpiStyle.Render(fmt.Sprintf("%s: %d", kpi.Label, kpi.Value)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(headerStyle.Render("Chamados por status:"))
	b.WriteString("\n")
	writeBars(&b, s.ByStatus, s.Total, true)

	b.WriteString("\n")
	b.WriteString(headerStyle.Render("Chamados por prioridade:"))
	b.WriteString("\n")
	writeBars(&b, s.ByPriority, s.Total, false)

	b.WriteString("\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("Volume mensal (últimos %d meses):", len(s.Monthly))))
	b.WriteString("\n")
	writeBars(&b, s.Monthly, 0, false)

	b.WriteString("\n")
	if s.HasPending() {
		b.WriteString(alertStyle.Render("Atenção: existem chamados pendentes. Verifique a fila para evitar acúmulo."))
	} else {
		b.WriteString(okStyle.Render("Nenhum chamado pendente no momento."))
	}
	b.WriteString("\n")
	return b.String()
}

// writeBars рисует по полосе на категорию. total > 0 и withPct — добавить процент.
func writeBars(b *strings.Builder, counts []Count, total int, withPct bool) {
	maxV := 0
	for _, c := range counts {
		maxV = max(maxV, c.Value)
	}
	for _, c := range counts {
		n := 0
		if maxV > 0 {
			n = c.Value * BarWidth / maxV
		}
		if c.Value > 0 && n == 0 {
			n = 1
		}
		bar := strings.Repeat("█", n)
		if color, ok := barColors[c.Label]; ok {
			bar = lipgloss.NewStyle().Foreground(color).Render(bar)
		}
		b.WriteString(labelStyle.Render(c.Label))
		b.WriteString(" ")
		b.WriteString(bar)
		if withPct && total > 0 {
			fmt.Fprintf(b, " %d (%.0f%%)", c.Value, float64(c.Value)*100/float64(total))
		} else {
			fmt.Fprintf(b, " %d", c.Value)
		}
		b.WriteString("\n")
	}
}
