package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	header     lipgloss.Style
	languages  lipgloss.Style
	original   lipgloss.Style
	translated lipgloss.Style
	pending    lipgloss.Style
	failed     lipgloss.Style
	input      lipgloss.Style
	status     lipgloss.Style
	help       lipgloss.Style
	recording  lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		header:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		languages:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		original:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		translated: lipgloss.NewStyle().Foreground(lipgloss.Color("86")).PaddingLeft(2),
		pending:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true).PaddingLeft(2),
		failed:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")).PaddingLeft(2),
		input:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62")).Padding(0, 1),
		status:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		help:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		recording:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
	}
}
