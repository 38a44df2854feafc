// Package ui implements the interactive terminal mode: the login and
// registration screens and the task board, with one bubbletea message
// loop driving them all. Which screen is visible is decided by the
// session: the board is reachable only with a logged-in user, and a
// logged-in user is kept off the auth screens.
package ui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the terminal UI. All colors use
// ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Faint    lipgloss.Style
	Error    lipgloss.Style
	Notice   lipgloss.Style
	Selected lipgloss.Style
	Done     lipgloss.Style
	TabOn    lipgloss.Style
	TabOff   lipgloss.Style
	Help     lipgloss.Style
}

// DefaultTheme is the palette used unless a caller overrides it.
var DefaultTheme = Theme{
	Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
	Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	Faint:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("160")),
	Notice:   lipgloss.NewStyle().Foreground(lipgloss.Color("35")),
	Selected: lipgloss.NewStyle().Background(lipgloss.Color("236")),
	Done:     lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("240")),
	TabOn:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Underline(true),
	TabOff:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
}
