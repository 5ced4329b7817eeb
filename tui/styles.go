// Package tui is the single UI event loop: an idle screen, a terminal
// surface for drag selection and the log entry form.
package tui

import "github.com/charmbracelet/lipgloss"

// Dark charting palette.
var (
	colorBackground = lipgloss.Color("#1e222d")
	colorText       = lipgloss.Color("#d1d4dc")
	colorInput      = lipgloss.Color("#2a2e39")
	colorBorder     = lipgloss.Color("#363a45")
	colorAccent     = lipgloss.Color("#2962ff")
	colorMuted      = lipgloss.Color("#787b86")
	colorUp         = lipgloss.Color("#089981")
	colorDown       = lipgloss.Color("#f23645")
	colorWarn       = lipgloss.Color("#ff9800")
)

// Styles holds every style the views use.
type Styles struct {
	Dialog  lipgloss.Style
	Title   lipgloss.Style
	Label   lipgloss.Style
	Input   lipgloss.Style
	Focused lipgloss.Style
	Button  lipgloss.Style
	Muted   lipgloss.Style
	Hint    lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Status  lipgloss.Style
}

// DefaultStyles returns the dark theme.
func DefaultStyles() Styles {
	return Styles{
		Dialog: lipgloss.NewStyle().
			Background(colorBackground).
			Foreground(colorText).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2).
			Width(48),
		Title: lipgloss.NewStyle().Foreground(colorText).Bold(true).MarginBottom(1),
		Label: lipgloss.NewStyle().Foreground(colorText).Bold(true),
		Input: lipgloss.NewStyle().
			Background(colorInput).
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorBorder).
			Width(40),
		Focused: lipgloss.NewStyle().
			Background(colorInput).
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorAccent).
			Width(40),
		Button: lipgloss.NewStyle().
			Background(colorAccent).
			Foreground(lipgloss.Color("#ffffff")).
			Bold(true).
			Padding(0, 2).
			MarginTop(1),
		Muted:   lipgloss.NewStyle().Foreground(colorMuted),
		Hint:    lipgloss.NewStyle().Foreground(colorDown),
		Warning: lipgloss.NewStyle().Foreground(colorWarn).Bold(true),
		Success: lipgloss.NewStyle().Foreground(colorUp),
		Error:   lipgloss.NewStyle().Foreground(colorDown).Bold(true),
		Status:  lipgloss.NewStyle().Foreground(colorMuted).Background(colorBackground),
	}
}
