// ABOUTME: Compact metric block widget for dashboard displays
// ABOUTME: Combines icon, value, sparkline or bar, and a subtitle in a bordered panel

package widgets

import (
	"fmt"
	"strings"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/tui/icons"
	"github.com/charmbracelet/lipgloss"
)

// MetricBlockConfig holds configuration for a metric block
type MetricBlockConfig struct {
	Width       int
	BorderColor lipgloss.Color
	TitleColor  lipgloss.Color
	ValueColor  lipgloss.Color
}

// DefaultMetricBlockConfig returns sensible defaults
func DefaultMetricBlockConfig() MetricBlockConfig {
	return MetricBlockConfig{
		Width:       22,
		BorderColor: lipgloss.Color("#6B7280"),
		TitleColor:  lipgloss.Color("#10B981"),
		ValueColor:  lipgloss.Color("#F9FAFB"),
	}
}

var subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

// frame draws the title-in-border box around lines already padded to inner width
func frame(icon icons.Icon, title string, lines []string, config MetricBlockConfig) string {
	innerWidth := config.Width - 4

	titleStr := truncate(fmt.Sprintf("%s %s", icon.String(), title), innerWidth)
	titleStyle := lipgloss.NewStyle().Foreground(config.TitleColor)
	borderStyle := lipgloss.NewStyle().Foreground(config.BorderColor)

	out := []string{borderStyle.Render(fmt.Sprintf("┌─ %s %s┐",
		titleStyle.Render(titleStr),
		strings.Repeat("─", max(0, innerWidth-lipgloss.Width(titleStr)-1))))}
	for _, line := range lines {
		pad := max(0, innerWidth-lipgloss.Width(line))
		out = append(out, borderStyle.Render("│  ")+line+strings.Repeat(" ", pad)+borderStyle.Render("│"))
	}
	out = append(out, borderStyle.Render(fmt.Sprintf("└%s┘", strings.Repeat("─", config.Width-2))))
	return strings.Join(out, "\n")
}

func normalize(config MetricBlockConfig) MetricBlockConfig {
	if config.Width <= 0 {
		config.Width = 22
	}
	return config
}

// MetricBlock renders a compact metric display block
func MetricBlock(icon icons.Icon, title, value, subtitle string, config MetricBlockConfig) string {
	config = normalize(config)
	inner := config.Width - 4
	valueStyle := lipgloss.NewStyle().Foreground(config.ValueColor).Bold(true)
	return frame(icon, title, []string{
		valueStyle.Render(truncate(value, inner)),
		subtitleStyle.Render(truncate(subtitle, inner)),
	}, config)
}

// CountBlock renders a simple count metric
func CountBlock(icon icons.Icon, title string, count int, label string, config MetricBlockConfig) string {
	return MetricBlock(icon, title, fmt.Sprintf("%d", count), label, config)
}

// MetricBlockWithBar renders a completion bar, such as items bought
func MetricBlockWithBar(icon icons.Icon, title string, percent float64, details string, config MetricBlockConfig) string {
	config = normalize(config)
	inner := config.Width - 4
	barWidth := max(1, inner-6)

	color := lipgloss.Color("#F59E0B")
	if percent >= 100 {
		color = lipgloss.Color("#10B981")
	}

	percentStr := lipgloss.NewStyle().Foreground(color).Bold(true).Render(fmt.Sprintf("%3.0f%%", percent))
	return frame(icon, title, []string{
		percentStr,
		CompactProgressBar(percent, barWidth, color),
		subtitleStyle.Render(truncate(details, inner)),
	}, config)
}

// MetricBlockWithSparkline renders a value next to its recent history
func MetricBlockWithSparkline(icon icons.Icon, title, value string, sparkData []float64, subtitle string, config MetricBlockConfig) string {
	config = normalize(config)
	inner := config.Width - 4
	sparkWidth := min(12, max(1, inner-lipgloss.Width(value)-2))

	valueStyle := lipgloss.NewStyle().Foreground(config.ValueColor).Bold(true)
	spark := Sparkline(sparkData, sparkWidth, config.TitleColor)

	return frame(icon, title, []string{
		valueStyle.Render(value) + "  " + spark,
		subtitleStyle.Render(truncate(subtitle, inner)),
	}, config)
}

// CompactProgressBar renders a minimal progress bar for tight spaces
func CompactProgressBar(percent float64, width int, color lipgloss.Color) string {
	if width <= 0 {
		width = 10
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := int(percent / 100.0 * float64(width))
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("▓", filled)) +
		lipgloss.NewStyle().Foreground(lipgloss.Color("#374151")).Render(strings.Repeat("░", width-filled))
}

// truncate shortens a string to maxLen runes with an ellipsis
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
