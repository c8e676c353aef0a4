// ABOUTME: Shared lipgloss styles for consistent TUI appearance
// ABOUTME: Defines colors, panels and the expiry color scale used across views

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Core palette
	Primary   = lipgloss.Color("#10B981") // Green
	Secondary = lipgloss.Color("#84CC16") // Lime
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Danger    = lipgloss.Color("#EF4444") // Red
	Muted     = lipgloss.Color("#6B7280") // Gray
	Text      = lipgloss.Color("#F9FAFB") // Light

	Accent  = lipgloss.Color("#34D399")
	Surface = lipgloss.Color("#374151")
	Info    = lipgloss.Color("#3B82F6")

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			MarginBottom(1)

	StatusOK = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	StatusWarning = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	StatusCritical = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(1, 2)

	ActivePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	Help = lipgloss.NewStyle().
		Foreground(Muted).
		MarginTop(1)

	// Notice is the one-line result of the last action
	Notice = lipgloss.NewStyle().
		Foreground(Accent)

	KeyStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true)
)

// ExpiryStyle colors an item by days left: expired red, within window amber
func ExpiryStyle(daysLeft, window int) lipgloss.Style {
	switch {
	case daysLeft < 0:
		return StatusCritical
	case daysLeft <= window:
		return StatusWarning
	default:
		return lipgloss.NewStyle().Foreground(Text)
	}
}

// ProgressBar returns a styled bar that turns green as it fills
func ProgressBar(percent float64, width int) string {
	filled := int(percent / 100.0 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	color := Warning
	if percent >= 50 {
		color = Secondary
	}
	if percent >= 100 {
		color = Primary
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return lipgloss.NewStyle().Foreground(color).Render(bar)
}
