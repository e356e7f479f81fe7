// Package dashboard is the terminal UI: a sortable quote table for the
// configured symbols plus a trailing-month close chart for the selected
// one. All data flows in through provider fetch commands; fetch errors are
// shown in the status line and never terminate the program.
package dashboard

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"stockdash/internal/provider"
	"stockdash/internal/theme"
)

type Model struct {
	prov    provider.Provider
	symbols []string
	refresh time.Duration
	log     zerolog.Logger

	// Data
	rows      []provider.Quote
	series    *provider.Series
	updatedAt time.Time

	// UI state
	width    int
	height   int
	ready    bool
	cursor   int
	sortBy   sortKey
	sortDesc bool
	fetching bool
	errMsg   string

	spin spinner.Model
}

// Messages

type quotesMsg struct {
	quotes []provider.Quote
	err    error
}

type historyMsg struct {
	series provider.Series
	err    error
}

type refreshMsg struct{}

func New(prov provider.Provider, symbols []string, refresh time.Duration, log zerolog.Logger) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = sp.Style.Foreground(theme.Default.Accent)
	return Model{
		prov:     prov,
		symbols:  symbols,
		refresh:  refresh,
		log:      log.With().Str("component", "dashboard").Logger(),
		fetching: true,
		spin:     sp,
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick, fetchQuotes(m.prov, m.symbols)}
	if len(m.symbols) > 0 {
		cmds = append(cmds, fetchHistory(m.prov, m.symbols[0]))
	}
	if m.refresh > 0 {
		cmds = append(cmds, scheduleRefresh(m.refresh))
	}
	return tea.Batch(cmds...)
}

// Commands

func fetchQuotes(p provider.Provider, symbols []string) tea.Cmd {
	return func() tea.Msg {
		qs, err := p.Quotes(context.Background(), symbols)
		return quotesMsg{qs, err}
	}
}

func fetchHistory(p provider.Provider, symbol string) tea.Cmd {
	return func() tea.Msg {
		s, err := p.History(context.Background(), symbol)
		return historyMsg{s, err}
	}
}

func scheduleRefresh(after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return refreshMsg{}
	})
}

// selectedSymbol is the symbol under the cursor, or "" while the table is
// empty.
func (m Model) selectedSymbol() string {
	if m.cursor >= 0 && m.cursor < len(m.rows) {
		return m.rows[m.cursor].Symbol
	}
	return ""
}
