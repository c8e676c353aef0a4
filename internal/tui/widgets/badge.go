// ABOUTME: Status badge widgets for quick visual status indication
// ABOUTME: Colored inline badges for expiry, priority and moderation state

package widgets

import (
	"fmt"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/models"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/tui/icons"
	"github.com/charmbracelet/lipgloss"
)

// StatusLevel represents the severity of a status
type StatusLevel int

const (
	StatusOK StatusLevel = iota
	StatusWarning
	StatusCritical
	StatusInfo
	StatusNeutral
)

var (
	BadgeOKBg      = lipgloss.Color("#10B981")
	BadgeOKFg      = lipgloss.Color("#FFFFFF")
	BadgeWarnBg    = lipgloss.Color("#F59E0B")
	BadgeWarnFg    = lipgloss.Color("#000000")
	BadgeCritBg    = lipgloss.Color("#EF4444")
	BadgeCritFg    = lipgloss.Color("#FFFFFF")
	BadgeInfoBg    = lipgloss.Color("#3B82F6")
	BadgeInfoFg    = lipgloss.Color("#FFFFFF")
	BadgeNeutralBg = lipgloss.Color("#6B7280")
	BadgeNeutralFg = lipgloss.Color("#FFFFFF")
)

func levelColors(level StatusLevel) (bg, fg lipgloss.Color) {
	switch level {
	case StatusOK:
		return BadgeOKBg, BadgeOKFg
	case StatusWarning:
		return BadgeWarnBg, BadgeWarnFg
	case StatusCritical:
		return BadgeCritBg, BadgeCritFg
	case StatusInfo:
		return BadgeInfoBg, BadgeInfoFg
	default:
		return BadgeNeutralBg, BadgeNeutralFg
	}
}

// Badge renders a colored status badge
func Badge(text string, level StatusLevel) string {
	bg, fg := levelColors(level)
	return lipgloss.NewStyle().
		Background(bg).
		Foreground(fg).
		Padding(0, 1).
		Bold(true).
		Render(text)
}

// StatusFromPercent returns the level for a percentage value
func StatusFromPercent(percent, warnThreshold, critThreshold float64) StatusLevel {
	if percent >= critThreshold {
		return StatusCritical
	}
	if percent >= warnThreshold {
		return StatusWarning
	}
	return StatusOK
}

// StatusFromDays grades days until expiry against the near-expiry window
func StatusFromDays(daysLeft, window int) StatusLevel {
	switch {
	case daysLeft < 0:
		return StatusCritical
	case daysLeft <= window:
		return StatusWarning
	default:
		return StatusOK
	}
}

// StatusIcon returns the icon for a status level
func StatusIcon(level StatusLevel) string {
	bg, _ := levelColors(level)
	style := lipgloss.NewStyle().Foreground(bg)
	switch level {
	case StatusOK:
		return style.Render(icons.CheckOK.String())
	case StatusWarning:
		return style.Render(icons.Warning.String())
	case StatusCritical:
		return style.Render(icons.Critical.String())
	case StatusInfo:
		return style.Render(icons.Info.String())
	default:
		return style.Render("•")
	}
}

// StatusText returns styled status text with icon
func StatusText(text string, level StatusLevel) string {
	bg, _ := levelColors(level)
	return fmt.Sprintf("%s %s", StatusIcon(level), lipgloss.NewStyle().Foreground(bg).Render(text))
}

// ExpiryBadge labels an item by days left
func ExpiryBadge(daysLeft, window int) string {
	level := StatusFromDays(daysLeft, window)
	switch {
	case daysLeft < 0:
		return Badge("EXPIRED", level)
	case daysLeft == 0:
		return Badge("TODAY", level)
	case level == StatusWarning:
		return Badge(fmt.Sprintf("%dd", daysLeft), level)
	default:
		return Badge("FRESH", level)
	}
}

// PriorityBadge is empty for items without a priority
func PriorityBadge(p models.Priority) string {
	switch p {
	case models.PriorityHigh:
		return Badge("HIGH", StatusCritical)
	case models.PriorityMedium:
		return Badge("MED", StatusWarning)
	case models.PriorityLow:
		return Badge("LOW", StatusNeutral)
	default:
		return ""
	}
}

// ModerationBadge colors a review state
func ModerationBadge(s models.ModerationStatus) string {
	switch s {
	case models.ModerationApproved:
		return Badge("APPROVED", StatusOK)
	case models.ModerationRejected:
		return Badge("REJECTED", StatusCritical)
	default:
		return Badge("PENDING", StatusInfo)
	}
}
