// ABOUTME: Rendering for every routed view
// ABOUTME: Lists share a cursor; empty, loading and error states are shown inline

package tui

import (
	"fmt"
	"strings"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/guard"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/models"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/tui/dashboard"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/tui/icons"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/tui/styles"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/tui/widgets"
	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenMenu:
		content = a.viewMenu()
	case ScreenForm:
		content = a.viewForm()
	default:
		content = a.viewRoute()
	}

	return a.wrapWithFrame(a.withNotice(content))
}

func (a *App) viewMenu() string {
	if a.menu != nil {
		return styles.ActivePanel.Width(a.contentWidth()).Render(a.menu.View())
	}
	return ""
}

func (a *App) viewForm() string {
	if a.form != nil {
		return a.form.View()
	}
	return ""
}

// withNotice appends the status line under the content
func (a *App) withNotice(content string) string {
	line := ""
	switch {
	case a.busy:
		line = a.spinner.View() + " Working..."
	case a.notice != "" && a.noticeErr:
		line = styles.StatusCritical.Render(icons.Critical.String() + " " + a.notice)
	case a.notice != "":
		line = styles.Notice.Render(a.notice)
	}
	if a.searching {
		line = a.search.View()
	}
	return content + "\n" + line
}

func (a *App) viewRoute() string {
	width := a.contentWidth()
	var body string

	switch a.route {
	case guard.HomePath:
		body = a.viewDashboard(width)
	case routeInventory:
		body = a.viewInventory()
	case routeShopping:
		body = a.viewShopping()
	case routeMeals:
		body = a.viewMeals()
	case routeRecipes:
		body = a.viewRecipes()
	case routeFamily:
		body = a.viewFamily()
	case routeProfile:
		body = a.viewProfile()
	case routeAdmin:
		body = a.viewAdmin(width)
	case routeUsers:
		body = a.viewUsers()
	case routeCategories:
		body = a.viewCategories()
	case routeModeration:
		body = a.viewModeration()
	case routePerformance:
		body = a.viewPerformance(width)
	default:
		body = styles.StatusWarning.Render("Nothing here: " + a.route)
	}

	return styles.ActivePanel.Width(width).Render(body)
}

func (a *App) viewDashboard(width int) string {
	name := ""
	if a.state.User != nil {
		name = a.state.User.DisplayName()
	}
	var summary *models.Dashboard
	if a.dash != nil {
		summary = a.dash.Summary()
		if err := a.dash.Err(); err != "" && summary == nil {
			return styles.StatusCritical.Render(err)
		}
	}
	d := dashboard.New(summary, name, a.deps.Config.NearExpiryDays, width-panelPadding, a.contentHeight()-4)
	d.SetClock(a.now)
	return d.View()
}

func (a *App) viewAdmin(width int) string {
	for _, r := range []loadState{a.users, a.categories, a.pending} {
		if !r.Loaded() {
			return placeholder(r, "")
		}
	}
	summary := dashboard.AdminSummary{
		Users:      a.users.Total(),
		Categories: a.categories.Len(),
		Pending:    a.pending.Items(),
	}
	if m := a.deps.Client.Metrics(); m != nil {
		snap := m.Snapshot()
		summary.Metrics = &snap
	}
	return dashboard.AdminOverview(summary, width-panelPadding)
}

func (a *App) viewPerformance(width int) string {
	m := a.deps.Client.Metrics()
	if m == nil {
		return styles.Help.Render("Request metrics are not being recorded.")
	}
	return dashboard.Performance(m.Snapshot(), a.deps.Client.BaseURL(), width-panelPadding)
}

// loadState is the part of a hook placeholder reads
type loadState interface {
	Loaded() bool
	Err() string
}

func placeholder(r loadState, empty string) string {
	switch {
	case r.Err() != "" && !r.Loaded():
		return styles.StatusCritical.Render(r.Err())
	case !r.Loaded():
		return styles.Help.Render("Loading...")
	default:
		return styles.Help.Render(empty)
	}
}

// rowPrefix marks the row under the cursor
func (a *App) rowPrefix(i int) string {
	if i == a.cursor {
		return styles.KeyStyle.Render("› ")
	}
	return "  "
}

func heading(icon icons.Icon, title, subtitle string) string {
	out := styles.Title.Render(icon.String() + " " + title)
	if subtitle != "" {
		out += "\n" + styles.Subtitle.Render(subtitle)
	}
	return out
}

// inventoryRows applies the current filter to the inventory
func (a *App) inventoryRows() []models.InventoryItem {
	h := a.inventory
	switch {
	case a.filter != "":
		return h.Search(a.filter)
	case a.invMode == inventoryExpiring:
		return h.NearExpiry(a.deps.Config.NearExpiryDays)
	case a.invMode == inventoryExpired:
		return h.Expired()
	case a.compartment != "":
		return h.InCompartment(a.compartment)
	}
	return h.Items()
}

func (a *App) inventoryScope() string {
	switch {
	case a.filter != "":
		return fmt.Sprintf("Matching %q", a.filter)
	case a.invMode == inventoryExpiring:
		return fmt.Sprintf("Expiring within %d days", a.deps.Config.NearExpiryDays)
	case a.invMode == inventoryExpired:
		return "Expired"
	case a.compartment != "":
		return "In the " + string(a.compartment)
	}
	return "All compartments"
}

func (a *App) viewInventory() string {
	rows := a.inventoryRows()
	var sb strings.Builder
	sb.WriteString(heading(icons.Fridge, "Inventory", a.inventoryScope()))
	sb.WriteString("\n")

	if len(rows) == 0 {
		sb.WriteString(placeholder(a.inventory, "No items. Press a to add one."))
		return sb.String()
	}

	now := a.now()
	window := a.deps.Config.NearExpiryDays
	for i, item := range rows {
		icon := icons.Fridge
		if item.Compartment == models.Freezer {
			icon = icons.Freezer
		}
		days, err := item.DaysUntilExpiry(now)
		label := item.ExpiryLabel(now)
		if err == nil {
			label = styles.ExpiryStyle(days, window).Render(fmt.Sprintf("%-6s", label))
		}
		fmt.Fprintf(&sb, "%s%s %-24s %3d  %-12s %s  %s\n",
			a.rowPrefix(i), icon.String(), truncate(item.Name, 24), item.Quantity,
			truncate(item.Category, 12), label, styles.Help.UnsetMarginTop().Render(item.Location))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (a *App) viewShopping() string {
	if a.items != nil {
		return a.viewShoppingItems()
	}

	lists := a.lists.Items()
	var sb strings.Builder
	sb.WriteString(heading(icons.Cart, "Shopping lists", ""))
	sb.WriteString("\n")
	if len(lists) == 0 {
		sb.WriteString(placeholder(a.lists, "No shopping lists. Press n to create one."))
		return sb.String()
	}
	for i, l := range lists {
		fmt.Fprintf(&sb, "%s%s\n", a.rowPrefix(i), l.Name)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (a *App) viewShoppingItems() string {
	title := "Shopping list"
	for _, l := range a.lists.Items() {
		if l.ID == a.items.ListID() {
			title = l.Name
		}
	}

	bought, total := a.items.Progress()
	percent := 0.0
	if total > 0 {
		percent = float64(bought) / float64(total) * 100
	}

	var sb strings.Builder
	sb.WriteString(heading(icons.Cart, title, fmt.Sprintf("%d of %d bought", bought, total)))
	sb.WriteString("\n")
	sb.WriteString(styles.ProgressBar(percent, 30))
	sb.WriteString("\n\n")

	items := a.items.Items()
	if len(items) == 0 {
		sb.WriteString(placeholder(a.items, "This list is empty. Press a to add an item."))
		return sb.String()
	}
	for i, item := range items {
		check := "[ ]"
		name := item.Item
		if item.Status == models.StatusBought {
			check = styles.StatusOK.Render("[x]")
			name = lipgloss.NewStyle().Strikethrough(true).Foreground(styles.Muted).Render(name)
		}
		fmt.Fprintf(&sb, "%s%s %s x%d %s\n", a.rowPrefix(i), check, name, item.Quantity, widgets.PriorityBadge(item.Priority))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (a *App) recipeRows() []models.Recipe {
	if a.filter != "" {
		return a.recipes.Search(a.filter)
	}
	return a.recipes.Items()
}

func (a *App) viewRecipes() string {
	rows := a.recipeRows()
	subtitle := ""
	if a.filter != "" {
		subtitle = fmt.Sprintf("Matching %q", a.filter)
	}

	var sb strings.Builder
	sb.WriteString(heading(icons.Recipe, "Recipes", subtitle))
	sb.WriteString("\n")
	if len(rows) == 0 {
		sb.WriteString(placeholder(a.recipes, "No recipes. Press a to add one."))
		return sb.String()
	}

	if a.detail && a.cursor < len(rows) {
		sb.WriteString(recipeDetail(rows[a.cursor]))
		return sb.String()
	}

	for i, r := range rows {
		fmt.Fprintf(&sb, "%s%-28s %-7s %3d min  %s\n", a.rowPrefix(i), truncate(r.Name, 28), r.Difficulty,
			r.TotalTime(), styles.Help.UnsetMarginTop().Render(strings.Join(r.Category, ", ")))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func recipeDetail(r models.Recipe) string {
	var sb strings.Builder
	sb.WriteString(styles.ValueStyle.Render(r.Name))
	sb.WriteString("\n")
	if r.Description != "" {
		sb.WriteString(r.Description + "\n")
	}
	fmt.Fprintf(&sb, "%s  prep %d min, cook %d min, serves %d\n\n", r.Difficulty, r.PrepTime, r.CookTime, r.Servings)
	sb.WriteString(styles.KeyStyle.Render("Ingredients") + "\n")
	for _, ing := range r.Ingredients {
		sb.WriteString("  • " + ing + "\n")
	}
	sb.WriteString("\n" + styles.KeyStyle.Render("Steps") + "\n")
	for i, step := range r.Instructions {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, step)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (a *App) viewMeals() string {
	h := a.meals
	days := h.Days()
	start := h.Start()

	var sb strings.Builder
	sb.WriteString(heading(icons.Calendar, "Meal planner", "Week of "+start.Format("Jan 2, 2006")))
	sb.WriteString("\n")
	if err := h.Err(); err != "" && !h.Loaded() {
		sb.WriteString(styles.StatusCritical.Render(err))
		return sb.String()
	}

	today := models.Truncate(a.now()).Format(models.DateLayout)
	for i, date := range days {
		day := start.AddDate(0, 0, i)
		label := day.Format("Mon 01-02")
		if date == today {
			label = styles.KeyStyle.Render(label)
		}
		plan, _ := h.ForDate(date)
		var slots []string
		for _, slot := range models.MealSlots {
			name := "-"
			if r := plan.Meals.Get(slot); r != nil {
				name = r.Name
			}
			slots = append(slots, fmt.Sprintf("%s %-18s", string(slot)[:1], truncate(name, 18)))
		}
		fmt.Fprintf(&sb, "%s%s  %s\n", a.rowPrefix(i), label, strings.Join(slots, " "))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// memberRows flattens the members in family order
func (a *App) memberRows() []models.FamilyMember {
	var rows []models.FamilyMember
	for _, g := range a.members.ByFamily() {
		rows = append(rows, g.Members...)
	}
	return rows
}

func (a *App) viewFamily() string {
	var sb strings.Builder
	sb.WriteString(heading(icons.Family, "Family members", ""))
	sb.WriteString("\n")

	groups := a.members.ByFamily()
	if len(groups) == 0 {
		if families := a.families.Items(); len(families) > 0 {
			for _, f := range families {
				sb.WriteString(styles.ValueStyle.Render(f.Name) + "\n")
			}
			sb.WriteString(styles.Help.Render("No members yet. Press a to add one."))
			return sb.String()
		}
		sb.WriteString(placeholder(a.members, "No family yet. Press n to create one."))
		return sb.String()
	}

	row := 0
	for _, g := range groups {
		name := a.families.Name(g.FamilyID)
		sb.WriteString(styles.ValueStyle.Render(name) + "\n")
		for _, m := range g.Members {
			age := ""
			if m.Age > 0 {
				age = fmt.Sprintf("%d", m.Age)
			}
			fmt.Fprintf(&sb, "%s%-20s %-12s %3s  %s\n", a.rowPrefix(row), truncate(m.Name, 20),
				truncate(m.Relationship, 12), age, m.Email)
			row++
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (a *App) viewProfile() string {
	u := a.state.User
	var sb strings.Builder
	sb.WriteString(heading(icons.User, "Profile", ""))
	sb.WriteString("\n")
	if u == nil {
		return sb.String()
	}

	role := "Member"
	if a.state.IsAdmin() {
		role = "Administrator"
	}
	family := "none"
	if u.HasFamily() {
		family = fmt.Sprintf("%d", *u.FamilyID)
	}
	fields := [][2]string{
		{"Username", u.Username},
		{"Full name", u.FullName},
		{"Email", u.Email},
		{"Phone", u.PhoneNumber},
		{"Address", u.Address},
		{"Family", family},
		{"Role", role},
	}
	for _, f := range fields {
		fmt.Fprintf(&sb, "%s %s\n", styles.KeyStyle.Render(fmt.Sprintf("%-10s", f[0])), f[1])
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (a *App) viewUsers() string {
	h := a.users
	subtitle := fmt.Sprintf("Page %d of %d (%d users)", h.Page(), h.Pages(), h.Total())
	if a.filter != "" {
		subtitle += fmt.Sprintf(", matching %q", a.filter)
	}

	var sb strings.Builder
	sb.WriteString(heading(icons.Shield, "User management", subtitle))
	sb.WriteString("\n")
	rows := h.Items()
	if len(rows) == 0 {
		sb.WriteString(placeholder(h, "No users found."))
		return sb.String()
	}
	for i, u := range rows {
		role := ""
		if u.IsAdmin {
			role = widgets.Badge("ADMIN", widgets.StatusInfo)
		}
		fmt.Fprintf(&sb, "%s%4d  %-20s %-28s %s\n", a.rowPrefix(i), u.ID, truncate(u.Username, 20), truncate(u.Email, 28), role)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (a *App) viewCategories() string {
	var sb strings.Builder
	sb.WriteString(heading(icons.Tag, "Categories", ""))
	sb.WriteString("\n")
	rows := a.categories.Items()
	if len(rows) == 0 {
		sb.WriteString(placeholder(a.categories, "No categories. Press a to add one."))
		return sb.String()
	}
	for i, c := range rows {
		fmt.Fprintf(&sb, "%s%s\n", a.rowPrefix(i), c.Name)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (a *App) viewModeration() string {
	h := a.moderation
	scope := "All content"
	if h.Status() != "" {
		scope = "Showing " + string(h.Status())
	}

	var sb strings.Builder
	sb.WriteString(heading(icons.Inbox, "Content moderation", scope))
	sb.WriteString("\n")
	rows := h.Items()
	if len(rows) == 0 {
		sb.WriteString(placeholder(h, "Nothing to review."))
		return sb.String()
	}
	for i, item := range rows {
		summary := item.Title
		if summary == "" {
			summary = item.Content
		}
		fmt.Fprintf(&sb, "%s%s %-8s %-14s %s\n", a.rowPrefix(i), widgets.ModerationBadge(item.Status),
			item.Kind, truncate(item.Author, 14), truncate(summary, 40))
		if item.Status == models.ModerationRejected && item.RejectReason != "" && i == a.cursor {
			sb.WriteString(styles.Help.UnsetMarginTop().Render("    reason: "+item.RejectReason) + "\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// truncate shortens s to n runes with an ellipsis
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
