package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	figure "github.com/common-nighthawk/go-figure"

	"stockdash/internal/theme"
)

const (
	colSymbol = 10
	colPrice  = 14
	colChange = 10

	chartHeight = 8
)

func (m Model) View() string {
	if !m.ready {
		return "\n  Loading..."
	}

	t := theme.Default
	pad := lipgloss.NewStyle().Padding(0, 2)

	sections := []string{
		pad.Render(m.viewHeader(t)),
		"",
		pad.Render(m.viewTable(t)),
		"",
		pad.Render(m.viewChart(t)),
		"",
		pad.Render(m.viewFooter(t)),
	}
	return strings.Join(sections, "\n")
}

func (m Model) viewHeader(t theme.Theme) string {
	title := lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Render("stockdash")
	src := lipgloss.NewStyle().Foreground(t.Muted).Render(" · " + m.prov.Name())

	status := ""
	switch {
	case m.fetching:
		status = "  " + m.spin.View() + lipgloss.NewStyle().Foreground(t.Muted).Render("fetching")
	case !m.updatedAt.IsZero():
		status = lipgloss.NewStyle().Foreground(t.Muted).
			Render("  updated " + m.updatedAt.Format("15:04:05"))
	}
	return title + src + status
}

func (m Model) viewTable(t theme.Theme) string {
	headStyle := lipgloss.NewStyle().Foreground(t.Subtext).Bold(true)
	marker := " ▲"
	if m.sortDesc {
		marker = " ▼"
	}
	col := func(name string, width int, active bool) string {
		if active {
			name += marker
		}
		return padRight(name, width)
	}

	lines := []string{headStyle.Render(
		col("SYMBOL", colSymbol, m.sortBy == bySymbol) +
			col("PRICE", colPrice, m.sortBy == byPrice) +
			col("CHANGE", colChange, m.sortBy == byChange),
	)}

	if len(m.rows) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(t.Muted).Render("no quotes yet"))
	}
	for i, q := range m.rows {
		line := padRight(q.Symbol, colSymbol) + padRight(fmtPrice(q.Price), colPrice)

		change := padRight(fmtChange(q.ChangePct), colChange)
		changeStyle := lipgloss.NewStyle().Foreground(t.Muted)
		if q.ChangePct != nil {
			if *q.ChangePct >= 0 {
				changeStyle = changeStyle.Foreground(t.Up)
			} else {
				changeStyle = changeStyle.Foreground(t.Down)
			}
		}

		rowStyle := lipgloss.NewStyle().Foreground(t.Text)
		if i == m.cursor {
			rowStyle = rowStyle.Bold(true).Foreground(t.Accent)
		}
		lines = append(lines, rowStyle.Render(line)+changeStyle.Render(change))
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewChart(t theme.Theme) string {
	sym := m.selectedSymbol()
	if sym == "" {
		return ""
	}

	head := lipgloss.NewStyle().Foreground(t.Subtext).Bold(true).Render(sym + " · last 30 days")
	if m.series == nil {
		return head + "\n" + lipgloss.NewStyle().Foreground(t.Muted).Render("loading history...")
	}

	chartWidth := max(m.width-6, 20)
	blocks := []string{head}

	if big := m.viewBigPrice(t, chartWidth); big != "" {
		blocks = append(blocks, big)
	}
	if chart := renderChart(*m.series, chartWidth, chartHeight, t); chart != "" {
		blocks = append(blocks, chart)
	}
	if n := len(m.series.Labels); n > 0 {
		span := m.series.Labels[0] + " — " + m.series.Labels[n-1]
		blocks = append(blocks, lipgloss.NewStyle().Foreground(t.Muted).Render(span))
	}
	return strings.Join(blocks, "\n")
}

// viewBigPrice renders the selected row's price as figlet text when the
// terminal is wide enough for it.
func (m Model) viewBigPrice(t theme.Theme, width int) string {
	if width < 60 || m.cursor >= len(m.rows) {
		return ""
	}
	price := m.rows[m.cursor].Price
	if price == nil {
		return ""
	}
	fig := figure.NewFigure(fmt.Sprintf("%.2f", *price), "", false)
	text := strings.Join(fig.Slicify(), "\n")
	if lipgloss.Width(text) > width {
		return ""
	}
	return lipgloss.NewStyle().Foreground(t.Primary).Render(text)
}

func (m Model) viewFooter(t theme.Theme) string {
	var parts []string
	if m.errMsg != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(t.Warning).Render(m.errMsg))
	}
	help := fmt.Sprintf("↑/↓ select · s sort (%s) · o order · r refresh · q quit", m.sortBy)
	parts = append(parts, lipgloss.NewStyle().Foreground(t.Muted).Render(help))
	return strings.Join(parts, "\n")
}

func fmtPrice(p *float64) string {
	if p == nil {
		return "—"
	}
	return fmt.Sprintf("%.2f", *p)
}

func fmtChange(p *float64) string {
	if p == nil {
		return "—"
	}
	return fmt.Sprintf("%+.2f%%", *p)
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
