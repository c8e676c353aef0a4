// ABOUTME: Dashboard component summarizing the household at a glance
// ABOUTME: Count blocks, the expiring list, today's meals and consumption trends

package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/models"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/tui/icons"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/tui/styles"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/tui/widgets"
	"github.com/charmbracelet/lipgloss"
)

// maxListed caps the expiring and meal lists
const maxListed = 6

// Dashboard displays the /dashboard/ summary
type Dashboard struct {
	data   *models.Dashboard
	user   string
	window int
	now    func() time.Time
	width  int
	height int
}

// New creates a dashboard. window is the near-expiry window in days.
func New(data *models.Dashboard, user string, window, width, height int) *Dashboard {
	return &Dashboard{data: data, user: user, window: window, now: time.Now, width: width, height: height}
}

// Update swaps in freshly loaded data
func (d *Dashboard) Update(data *models.Dashboard) {
	d.data = data
}

// SetClock replaces the clock used to count days until expiry
func (d *Dashboard) SetClock(now func() time.Time) {
	d.now = now
}

// SetSize updates the dashboard dimensions
func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// View renders the dashboard
func (d *Dashboard) View() string {
	if d.data == nil {
		return styles.Panel.Width(d.width).Render("Loading dashboard...")
	}

	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Household overview"))
	sb.WriteString("\n")
	if d.user != "" {
		sb.WriteString(styles.Subtitle.Render("Signed in as " + d.user))
		sb.WriteString("\n")
	}

	sb.WriteString(d.renderBlocks())
	sb.WriteString("\n\n")

	sb.WriteString(styles.ValueStyle.Render("Expiring soon"))
	sb.WriteString("\n")
	sb.WriteString(d.renderExpiring())
	sb.WriteString("\n\n")

	sb.WriteString(styles.ValueStyle.Render("Upcoming meals"))
	sb.WriteString("\n")
	sb.WriteString(d.renderMeals())

	if series := d.data.ConsumptionSeries(); len(series) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(styles.ValueStyle.Render("Consumption"))
		sb.WriteString("  ")
		sb.WriteString(widgets.Sparkline(series, min(30, len(series)*2), styles.Primary))
	}

	return lipgloss.NewStyle().
		Width(d.width).
		Height(d.height).
		Render(sb.String())
}

// renderBlocks lays the count blocks out in one or two rows
func (d *Dashboard) renderBlocks() string {
	config := widgets.DefaultMetricBlockConfig()
	pending := d.data.PendingShopping()
	total := len(d.data.ShoppingList)

	bought := 0.0
	if total > 0 {
		bought = float64(total-pending) / float64(total) * 100
	}

	blocks := []string{
		widgets.CountBlock(icons.Fridge, "Fridge", len(d.data.FridgeItems), "items stored", config),
		widgets.CountBlock(icons.Warning, "Expiring", len(d.data.ExpiringItems), fmt.Sprintf("within %d days", d.window), config),
		widgets.MetricBlockWithBar(icons.Cart, "Shopping", bought, fmt.Sprintf("%d of %d pending", pending, total), config),
		widgets.MetricBlock(icons.Money, "Spent", fmt.Sprintf("%.2f", d.data.PurchaseTotal()),
			fmt.Sprintf("%d wasted", len(d.data.WastedFood)), config),
	}

	perRow := max(1, d.width/(config.Width+1))
	var rows []string
	for i := 0; i < len(blocks); i += perRow {
		end := min(len(blocks), i+perRow)
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, spaced(blocks[i:end])...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func spaced(blocks []string) []string {
	out := make([]string, 0, len(blocks)*2)
	for i, b := range blocks {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, b)
	}
	return out
}

func (d *Dashboard) renderExpiring() string {
	if len(d.data.ExpiringItems) == 0 {
		return styles.StatusOK.Render(icons.CheckOK.String() + " Nothing expiring")
	}

	today := models.Truncate(d.now())
	var lines []string
	for i, f := range d.data.ExpiringItems {
		if i == maxListed {
			lines = append(lines, styles.Help.Render(fmt.Sprintf("  and %d more", len(d.data.ExpiringItems)-maxListed)))
			break
		}
		badge := ""
		if t, err := models.ParseDate(f.ExpiryDate); err == nil {
			days := int(t.Sub(today).Hours() / 24)
			badge = widgets.ExpiryBadge(days, d.window)
		}
		lines = append(lines, fmt.Sprintf("  %s %s", badge, f.Name))
	}
	return strings.Join(lines, "\n")
}

func (d *Dashboard) renderMeals() string {
	if len(d.data.MealPlans) == 0 {
		return styles.Help.Render("  No meals planned")
	}

	var lines []string
	for i, p := range d.data.MealPlans {
		if i == maxListed {
			break
		}
		var meals []string
		for _, m := range p.Meals {
			meals = append(meals, fmt.Sprintf("%s: %s", m.Type, m.Recipe.Name))
		}
		lines = append(lines, fmt.Sprintf("  %s  %s", styles.KeyStyle.Render(p.Date), strings.Join(meals, ", ")))
	}
	return strings.Join(lines, "\n")
}
