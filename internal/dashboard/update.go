package dashboard

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.series = nil
				cmds = append(cmds, fetchHistory(m.prov, m.selectedSymbol()))
			}

		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.rows)-1 {
				m.cursor++
				m.series = nil
				cmds = append(cmds, fetchHistory(m.prov, m.selectedSymbol()))
			}

		case key.Matches(msg, keys.Sort):
			sym := m.selectedSymbol()
			m.sortBy = m.sortBy.next()
			sortQuotes(m.rows, m.sortBy, m.sortDesc)
			m.followSymbol(sym)

		case key.Matches(msg, keys.Reverse):
			sym := m.selectedSymbol()
			m.sortDesc = !m.sortDesc
			sortQuotes(m.rows, m.sortBy, m.sortDesc)
			m.followSymbol(sym)

		case key.Matches(msg, keys.Refresh):
			if !m.fetching {
				m.fetching = true
				cmds = append(cmds, m.spin.Tick, fetchQuotes(m.prov, m.symbols))
			}
		}

	case refreshMsg:
		if !m.fetching {
			m.fetching = true
			cmds = append(cmds, m.spin.Tick, fetchQuotes(m.prov, m.symbols))
		}
		if m.refresh > 0 {
			cmds = append(cmds, scheduleRefresh(m.refresh))
		}

	case quotesMsg:
		m.fetching = false
		if msg.err != nil {
			// Keep showing the previous table; surface the failure.
			m.errMsg = msg.err.Error()
			m.log.Warn().Err(msg.err).Msg("quote fetch failed")
			break
		}
		m.errMsg = ""
		m.updatedAt = time.Now()
		sym := m.selectedSymbol()
		m.rows = msg.quotes
		sortQuotes(m.rows, m.sortBy, m.sortDesc)
		m.followSymbol(sym)
		if sel := m.selectedSymbol(); sel != "" && (m.series == nil || m.series.Symbol != sel) {
			cmds = append(cmds, fetchHistory(m.prov, sel))
		}

	case historyMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			m.log.Warn().Err(msg.err).Msg("history fetch failed")
			break
		}
		// Ignore answers for a symbol the cursor has already left.
		if msg.series.Symbol == m.selectedSymbol() {
			m.series = &msg.series
		}

	case spinner.TickMsg:
		if m.fetching {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// followSymbol moves the cursor to the row holding sym, or clamps it when
// the symbol is gone.
func (m *Model) followSymbol(sym string) {
	for i, q := range m.rows {
		if q.Symbol == sym {
			m.cursor = i
			return
		}
	}
	if m.cursor >= len(m.rows) {
		m.cursor = max(len(m.rows)-1, 0)
	}
}
