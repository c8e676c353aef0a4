// ABOUTME: Keyboard handling for each view and the writes forms submit
// ABOUTME: Destructive actions need a second press of the same key

package tui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/guard"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/models"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/tui/wizard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKey handles global keys, then the current route's keys
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	armed := a.armed
	a.armed = ""

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "m":
		return a, a.openMenu()
	case "esc":
		if a.route == routeShopping && a.items != nil {
			a.closeList()
			return a, nil
		}
		if a.detail {
			a.detail = false
			return a, nil
		}
		return a, a.openMenu()
	case "r":
		a.notice = ""
		return a, a.load(true)
	case "L":
		store := a.deps.Store
		a.busy = true
		return a, func() tea.Msg {
			_ = store.Logout(context.Background())
			return loggedOutMsg{}
		}
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil
	case "down", "j":
		if a.cursor < a.rowCount()-1 {
			a.cursor++
		}
		return a, nil
	}

	switch a.route {
	case routeInventory:
		return a.inventoryKey(msg, armed)
	case routeShopping:
		return a.shoppingKey(msg, armed)
	case routeRecipes:
		return a.recipesKey(msg, armed)
	case routeMeals:
		return a.mealsKey(msg)
	case routeFamily:
		return a.familyKey(msg, armed)
	case routeProfile:
		if msg.String() == "e" {
			return a, a.openForm(wizard.Profile(a.state.User))
		}
	case routeAdmin:
		return a.adminKey(msg)
	case routeUsers:
		return a.usersKey(msg, armed)
	case routeCategories:
		return a.categoriesKey(msg, armed)
	case routeModeration:
		return a.moderationKey(msg)
	}
	return a, nil
}

// adminKey jumps from the overview to an admin view
func (a *App) adminKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	target := map[string]string{
		"u": routeUsers,
		"c": routeCategories,
		"v": routeModeration,
		"p": routePerformance,
	}[msg.String()]
	if target == "" {
		return a, nil
	}
	return a, a.navigate(target)
}

// confirmed reports whether token was armed by the previous key press,
// arming it otherwise
func (a *App) confirmed(armed, token, prompt string) bool {
	if armed == token {
		return true
	}
	a.armed = token
	a.setNotice(prompt + " Press again to confirm.")
	return false
}

func (a *App) startSearch() (tea.Model, tea.Cmd) {
	a.searching = true
	a.search.SetValue(a.filter)
	a.search.CursorEnd()
	a.search.Focus()
	return a, textinput.Blink
}

func (a *App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.searching = false
		a.search.Blur()
		a.filter = a.search.Value()
		a.cursor = 0
		if a.route == routeUsers {
			users, term := a.users, a.filter
			return a, a.mutate("", func(ctx context.Context) error { return users.Query(ctx, term) })
		}
		return a, nil
	case "esc":
		a.searching = false
		a.search.Blur()
		return a, nil
	}

	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	return a, cmd
}

func (a *App) inventoryKey(msg tea.KeyMsg, armed string) (tea.Model, tea.Cmd) {
	rows := a.inventoryRows()
	h := a.inventory
	switch msg.String() {
	case "/":
		a.invMode = inventoryAll
		return a.startSearch()
	case "a":
		return a, a.openForm(wizard.InventoryItem(nil, a.categories.Names()))
	case "tab":
		a.cursor = 0
		a.invMode = inventoryAll
		switch a.compartment {
		case "":
			a.compartment = models.Cooler
		case models.Cooler:
			a.compartment = models.Freezer
		default:
			a.compartment = ""
		}
	case "w":
		a.cursor = 0
		a.invMode = toggleMode(a.invMode, inventoryExpiring)
	case "x":
		a.cursor = 0
		a.invMode = toggleMode(a.invMode, inventoryExpired)
	}

	if a.cursor >= len(rows) {
		return a, nil
	}
	item := rows[a.cursor]
	switch msg.String() {
	case "e", "enter":
		return a, a.openForm(wizard.InventoryItem(&item, a.categories.Names()))
	case "d":
		if a.confirmed(armed, fmt.Sprintf("inventory:%d", item.ID), "Delete "+item.Name+"?") {
			return a, a.mutate("Deleted "+item.Name, func(ctx context.Context) error { return h.Delete(ctx, item.ID) })
		}
	}
	return a, nil
}

func toggleMode(cur, mode inventoryMode) inventoryMode {
	if cur == mode {
		return inventoryAll
	}
	return mode
}

func (a *App) shoppingKey(msg tea.KeyMsg, armed string) (tea.Model, tea.Cmd) {
	if a.items != nil {
		return a.shoppingItemsKey(msg, armed)
	}

	lists := a.lists.Items()
	h := a.lists
	if msg.String() == "n" {
		return a, a.openForm(wizard.Name(wizard.KindShoppingList, "New shopping list"))
	}
	if a.cursor >= len(lists) {
		return a, nil
	}
	list := lists[a.cursor]
	switch msg.String() {
	case "enter":
		a.listCursor = a.cursor
		a.cursor = 0
		a.openList(list.ID)
		a.items.Attach()
		return a, a.load(false)
	case "d":
		if a.confirmed(armed, fmt.Sprintf("list:%d", list.ID), "Delete list "+list.Name+"?") {
			return a, a.mutate("Deleted "+list.Name, func(ctx context.Context) error { return h.Delete(ctx, list.ID) })
		}
	}
	return a, nil
}

func (a *App) shoppingItemsKey(msg tea.KeyMsg, armed string) (tea.Model, tea.Cmd) {
	h := a.items
	switch msg.String() {
	case "b", "backspace":
		a.closeList()
		return a, nil
	case "a":
		return a, a.openForm(wizard.ShoppingItem(h.ListID()))
	}

	items := h.Items()
	if a.cursor >= len(items) {
		return a, nil
	}
	item := items[a.cursor]
	switch msg.String() {
	case " ", "space":
		return a, a.mutate(item.Item+" is now "+string(item.Status.Toggled()), func(ctx context.Context) error {
			return h.Toggle(ctx, item.ID)
		})
	case "d":
		if a.confirmed(armed, fmt.Sprintf("item:%d", item.ID), "Remove "+item.Item+"?") {
			return a, a.mutate("Removed "+item.Item, func(ctx context.Context) error { return h.Delete(ctx, item.ID) })
		}
	}
	return a, nil
}

func (a *App) recipesKey(msg tea.KeyMsg, armed string) (tea.Model, tea.Cmd) {
	h := a.recipes
	switch msg.String() {
	case "/":
		a.detail = false
		return a.startSearch()
	case "a":
		return a, a.openForm(wizard.Recipe())
	}

	rows := a.recipeRows()
	if a.cursor >= len(rows) {
		return a, nil
	}
	recipe := rows[a.cursor]
	switch msg.String() {
	case "enter":
		a.detail = !a.detail
	case "d":
		if a.confirmed(armed, fmt.Sprintf("recipe:%d", recipe.ID), "Delete "+recipe.Name+"?") {
			a.detail = false
			return a, a.mutate("Deleted "+recipe.Name, func(ctx context.Context) error { return h.Delete(ctx, recipe.ID) })
		}
	}
	return a, nil
}

func (a *App) mealsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	h := a.meals
	days := h.Days()
	switch msg.String() {
	case "[", "]":
		n := 1
		if msg.String() == "[" {
			n = -1
		}
		route := a.route
		a.busy = true
		return a, func() tea.Msg {
			return loadedMsg{route: route, err: h.ShiftWeek(context.Background(), n)}
		}
	case "s", "enter":
		recipes := a.recipes.Items()
		if len(recipes) == 0 {
			a.setError("Add a recipe before planning meals.")
			return a, nil
		}
		return a, a.openForm(wizard.MealSlot(days[a.cursor], recipes))
	case "1", "2", "3":
		slot := models.MealSlots[int(msg.String()[0]-'1')]
		date := days[a.cursor]
		return a, a.mutate(fmt.Sprintf("Cleared %s on %s", slot, date), func(ctx context.Context) error {
			return h.ClearMeal(ctx, date, slot)
		})
	}
	return a, nil
}

func (a *App) familyKey(msg tea.KeyMsg, armed string) (tea.Model, tea.Cmd) {
	rows := a.memberRows()
	switch msg.String() {
	case "n":
		return a, a.openForm(wizard.Name(wizard.KindFamily, "New family"))
	case "a":
		familyID := a.targetFamily(rows)
		if familyID == 0 {
			a.setError("Create a family first.")
			return a, nil
		}
		return a, a.openForm(wizard.Member(familyID))
	}

	if a.cursor >= len(rows) {
		return a, nil
	}
	member := rows[a.cursor]
	h := a.members
	if msg.String() == "d" {
		if a.confirmed(armed, fmt.Sprintf("member:%d", member.ID), "Remove "+member.Name+"?") {
			return a, a.mutate("Removed "+member.Name, func(ctx context.Context) error { return h.Delete(ctx, member.ID) })
		}
	}
	return a, nil
}

// targetFamily picks the family new members join: the selected member's,
// then the user's own, then the first one loaded
func (a *App) targetFamily(rows []models.FamilyMember) int {
	if a.cursor < len(rows) {
		return rows[a.cursor].FamilyID
	}
	if a.state.User != nil && a.state.User.HasFamily() {
		return *a.state.User.FamilyID
	}
	if families := a.families.Items(); len(families) > 0 {
		return families[0].ID
	}
	return 0
}

func (a *App) usersKey(msg tea.KeyMsg, armed string) (tea.Model, tea.Cmd) {
	h := a.users
	switch msg.String() {
	case "/":
		return a.startSearch()
	case "a":
		return a, a.openForm(wizard.User())
	case "right", "l", "pgdown":
		if h.Page() < h.Pages() {
			a.cursor = 0
			return a, a.mutate("", h.Next)
		}
		return a, nil
	case "left", "h", "pgup":
		if h.Page() > 1 {
			a.cursor = 0
			return a, a.mutate("", h.Prev)
		}
		return a, nil
	}

	rows := h.Items()
	if a.cursor >= len(rows) {
		return a, nil
	}
	user := rows[a.cursor]
	switch msg.String() {
	case "d":
		if a.confirmed(armed, fmt.Sprintf("user:%d", user.ID), "Delete "+user.Username+"?") {
			return a, a.mutate("Deleted "+user.Username, func(ctx context.Context) error { return h.Delete(ctx, user.ID) })
		}
	case "A":
		role := "administrator"
		if user.IsAdmin {
			role = "member"
		}
		return a, a.mutate(user.Username+" is now "+role, func(ctx context.Context) error {
			return h.SetAdmin(ctx, user.ID, !user.IsAdmin)
		})
	}
	return a, nil
}

func (a *App) categoriesKey(msg tea.KeyMsg, armed string) (tea.Model, tea.Cmd) {
	h := a.categories
	if msg.String() == "a" {
		return a, a.openForm(wizard.Name(wizard.KindCategory, "New category"))
	}
	rows := h.Items()
	if a.cursor >= len(rows) {
		return a, nil
	}
	c := rows[a.cursor]
	if msg.String() == "d" {
		if a.confirmed(armed, fmt.Sprintf("category:%d", c.ID), "Delete category "+c.Name+"?") {
			return a, a.mutate("Deleted "+c.Name, func(ctx context.Context) error { return h.Delete(ctx, c.ID) })
		}
	}
	return a, nil
}

// moderationFilters is the tab cycle over the queue
var moderationFilters = []models.ModerationStatus{
	models.ModerationPending, models.ModerationApproved, models.ModerationRejected, "",
}

func (a *App) moderationKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	h := a.moderation
	if msg.String() == "tab" {
		next := moderationFilters[0]
		for i, s := range moderationFilters {
			if s == h.Status() {
				next = moderationFilters[(i+1)%len(moderationFilters)]
				break
			}
		}
		a.cursor = 0
		return a, a.mutate("", func(ctx context.Context) error { return h.Filter(ctx, next) })
	}

	rows := h.Items()
	if a.cursor >= len(rows) {
		return a, nil
	}
	item := rows[a.cursor]
	switch msg.String() {
	case "y":
		return a, a.mutate(fmt.Sprintf("Approved %s %d", item.Kind, item.ID), func(ctx context.Context) error {
			return h.Approve(ctx, item.ID)
		})
	case "n":
		return a, a.openForm(wizard.Reject(item.ID))
	}
	return a, nil
}

// submit turns a completed form into the matching write
func (a *App) submit(msg wizard.CompleteMsg) tea.Cmd {
	v := msg.Values
	switch msg.Kind {
	case wizard.KindLogin:
		store := a.deps.Store
		username, password := v[wizard.FieldUsername], v[wizard.FieldPassword]
		a.lastUser = username
		a.busy = true
		return tea.Batch(a.spinner.Tick, func() tea.Msg {
			return loginMsg{state: store.Login(context.Background(), username, password)}
		})

	case wizard.KindRegister:
		c := a.deps.Client
		req := models.RegisterRequest{
			Username:    v[wizard.FieldUsername],
			Password:    v[wizard.FieldPassword],
			Email:       v[wizard.FieldEmail],
			FullName:    v[wizard.FieldFullName],
			Age:         v.Int(wizard.FieldAge),
			PhoneNumber: v[wizard.FieldPhone],
		}
		a.busy = true
		return func() tea.Msg {
			user, err := c.Register(context.Background(), req)
			if err != nil {
				return registeredMsg{err: err}
			}
			return registeredMsg{username: user.Username}
		}

	case wizard.KindProfile:
		c, store := a.deps.Client, a.deps.Store
		update := models.ProfileUpdate{
			FullName:    v[wizard.FieldFullName],
			Email:       v[wizard.FieldEmail],
			Age:         v.Int(wizard.FieldAge),
			PhoneNumber: v[wizard.FieldPhone],
			Address:     v[wizard.FieldAddress],
		}
		a.busy = true
		return func() tea.Msg {
			user, err := c.UpdateProfile(context.Background(), update)
			if err != nil {
				return profileMsg{err: err}
			}
			if err := store.SetUser(user); err != nil {
				return profileMsg{err: err}
			}
			return profileMsg{user: user}
		}

	case wizard.KindInventory:
		h := a.inventory
		in := models.InventoryInput{
			Name:        v[wizard.FieldName],
			Category:    v[wizard.FieldCategory],
			Compartment: models.Compartment(v[wizard.FieldCompartment]),
			Location:    v[wizard.FieldLocation],
			Quantity:    v.Int(wizard.FieldQuantity),
			ExpiryDate:  v[wizard.FieldExpiry],
			Note:        v[wizard.FieldNote],
		}
		if msg.Target > 0 {
			id := msg.Target
			return a.mutate("Updated "+in.Name, func(ctx context.Context) error { return h.Update(ctx, id, in) })
		}
		return a.mutate("Added "+in.Name, func(ctx context.Context) error { return h.Add(ctx, in) })

	case wizard.KindShoppingList:
		h, owner, name := a.lists, a.state.User, v[wizard.FieldName]
		return a.mutate("Created "+name, func(ctx context.Context) error { return h.Create(ctx, name, owner) })

	case wizard.KindShoppingItem:
		h := a.items
		if h == nil {
			return nil
		}
		priority, _ := models.ParsePriority(v[wizard.FieldPriority])
		in := models.ShoppingItemInput{
			ShoppingListID: msg.Target,
			Item:           v[wizard.FieldName],
			Quantity:       v.Int(wizard.FieldQuantity),
			Category:       v[wizard.FieldCategory],
			Priority:       priority,
		}
		return a.mutate("Added "+in.Item, func(ctx context.Context) error { return h.Add(ctx, in) })

	case wizard.KindRecipe:
		h := a.recipes
		in := models.RecipeInput{
			Name:         v[wizard.FieldName],
			Description:  v[wizard.FieldDescription],
			Ingredients:  v.Lines(wizard.FieldIngredients),
			Instructions: v.Lines(wizard.FieldInstructions),
			PrepTime:     v.Int(wizard.FieldPrepTime),
			CookTime:     v.Int(wizard.FieldCookTime),
			Servings:     v.Int(wizard.FieldServings),
			Difficulty:   models.Difficulty(v[wizard.FieldDifficulty]),
			Category:     v.List(wizard.FieldCategory),
		}
		return a.mutate("Created "+in.Name, func(ctx context.Context) error { return h.Create(ctx, in) })

	case wizard.KindMealSlot:
		h := a.meals
		recipe, ok := a.recipes.Get(v.Int(wizard.FieldRecipe))
		if !ok {
			a.setError("Pick a recipe.")
			return nil
		}
		date, slot := v[wizard.FieldDate], models.MealSlot(v[wizard.FieldSlot])
		return a.mutate(fmt.Sprintf("%s on %s: %s", slot, date, recipe.Name), func(ctx context.Context) error {
			return h.SetMeal(ctx, date, slot, recipe)
		})

	case wizard.KindFamily:
		h, name := a.families, v[wizard.FieldName]
		return a.mutate("Created "+name, func(ctx context.Context) error { return h.Create(ctx, name) })

	case wizard.KindMember:
		h := a.members
		in := models.FamilyMemberInput{
			Name:         v[wizard.FieldName],
			Email:        v[wizard.FieldEmail],
			Relationship: v[wizard.FieldRelationship],
			Age:          v.Int(wizard.FieldAge),
			FamilyID:     msg.Target,
		}
		return a.mutate("Added "+in.Name, func(ctx context.Context) error { return h.Add(ctx, in) })

	case wizard.KindCategory:
		h, name := a.categories, v[wizard.FieldName]
		return a.mutate("Created "+name, func(ctx context.Context) error { return h.Create(ctx, name) })

	case wizard.KindUser:
		h := a.users
		admin := v[wizard.FieldRole] == "admin"
		in := models.UserInput{
			Username: v[wizard.FieldUsername],
			Password: v[wizard.FieldPassword],
			Email:    v[wizard.FieldEmail],
			IsAdmin:  &admin,
		}
		return a.mutate("Created "+in.Username, func(ctx context.Context) error { return h.Create(ctx, in) })

	case wizard.KindReject:
		h, id, reason := a.moderation, msg.Target, v[wizard.FieldReason]
		return a.mutate("Rejected "+strconv.Itoa(id), func(ctx context.Context) error { return h.Reject(ctx, id, reason) })
	}
	return nil
}

// rowCount is how many rows the cursor moves over on the current view
func (a *App) rowCount() int {
	switch a.route {
	case routeInventory:
		return len(a.inventoryRows())
	case routeShopping:
		if a.items != nil {
			return a.items.Len()
		}
		return a.lists.Len()
	case routeRecipes:
		return len(a.recipeRows())
	case routeMeals:
		return 7
	case routeFamily:
		return len(a.memberRows())
	case routeUsers:
		return a.users.Len()
	case routeCategories:
		return a.categories.Len()
	case routeModeration:
		return a.moderation.Len()
	}
	return 0
}

// clampCursor keeps the cursor on a row after the data changed
func (a *App) clampCursor() {
	if a.route == guard.LoginPath || a.route == routeRegister {
		return
	}
	if n := a.rowCount(); a.cursor >= n {
		a.cursor = max(0, n-1)
	}
}
