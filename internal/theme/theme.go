// Package theme holds the semantic color palette shared by the TUI.
package theme

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Border  lipgloss.Color
	Muted   lipgloss.Color
	Text    lipgloss.Color
	Subtext lipgloss.Color
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Up      lipgloss.Color
	Down    lipgloss.Color
	Warning lipgloss.Color
}

var Default = Theme{
	Border:  lipgloss.Color("#4D4C57"),
	Muted:   lipgloss.Color("#858392"),
	Text:    lipgloss.Color("#DFDBDD"),
	Subtext: lipgloss.Color("#BFBCC8"),
	Primary: lipgloss.Color("#6B50FF"),
	Accent:  lipgloss.Color("#FF60FF"),
	Up:      lipgloss.Color("#00FFB2"),
	Down:    lipgloss.Color("#E94090"),
	Warning: lipgloss.Color("#FFD300"),
}
