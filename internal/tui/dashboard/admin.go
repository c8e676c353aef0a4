// ABOUTME: Administration overview with user, category and review counts
// ABOUTME: Health comes from the client's request metrics

package dashboard

import (
	"fmt"
	"strings"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/client"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/models"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/tui/icons"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/tui/styles"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/tui/widgets"
	"github.com/charmbracelet/lipgloss"
)

const maxPendingShown = 5

// AdminSummary holds what the overview counts
type AdminSummary struct {
	Users      int
	Categories int
	Pending    []models.ModerationItem
	Metrics    *client.MetricsSnapshot // nil when metrics are off
}

// Health is the share of successful requests as a percentage, and false
// when nothing has been recorded
func (s AdminSummary) Health() (float64, bool) {
	if s.Metrics == nil || s.Metrics.Requests == 0 {
		return 0, false
	}
	return 100 - s.Metrics.ErrorRate, true
}

// AdminOverview renders the administration landing view
func AdminOverview(s AdminSummary, width int) string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Administration"))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render("Users, categories and content awaiting review"))
	sb.WriteString("\n")

	config := widgets.DefaultMetricBlockConfig()
	// Four blocks side by side need 4*width+3; narrow frames get two rows
	narrow := width < 4*config.Width+3
	if narrow {
		config.Width = max(18, (width-1)/2)
	}

	health := widgets.MetricBlock(icons.Gauge, "Health", "n/a", "no requests yet", config)
	if pct, ok := s.Health(); ok {
		health = widgets.MetricBlock(icons.Gauge, "Health", fmt.Sprintf("%.0f%%", pct),
			fmt.Sprintf("%d requests", s.Metrics.Requests), config)
	}
	blocks := []string{
		widgets.CountBlock(icons.User, "Users", s.Users, "accounts", config),
		widgets.CountBlock(icons.Tag, "Categories", s.Categories, "food categories", config),
		widgets.CountBlock(icons.Inbox, "Pending", len(s.Pending), "awaiting review", config),
		health,
	}
	if narrow {
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, blocks[0], " ", blocks[1]))
		sb.WriteString("\n")
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, blocks[2], " ", blocks[3]))
	} else {
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, blocks[0], " ", blocks[1], " ", blocks[2], " ", blocks[3]))
	}
	sb.WriteString("\n\n")

	sb.WriteString(styles.ValueStyle.Render("Awaiting review"))
	sb.WriteString("\n")
	if len(s.Pending) == 0 {
		sb.WriteString(styles.Help.UnsetMarginTop().Render("  Nothing to review"))
		return sb.String()
	}
	for i, item := range s.Pending {
		if i == maxPendingShown {
			sb.WriteString(styles.Help.UnsetMarginTop().Render(fmt.Sprintf("  and %d more", len(s.Pending)-maxPendingShown)))
			break
		}
		title := item.Title
		if title == "" {
			title = item.Content
		}
		line := fmt.Sprintf("  %s %s by %s", item.Kind, truncateLine(title, max(10, width-30)), item.Author)
		sb.WriteString(line + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func truncateLine(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
