// ABOUTME: Data hooks behind each route, created on first visit
// ABOUTME: The mounted set is attached on enter and detached on leave

package tui

import (
	"github.com/00rei000/Smart-Grocery-Management-System/internal/guard"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/hooks"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/models"
)

// Route paths with views of their own
const (
	routeInventory   = "/inventory"
	routeShopping    = "/shopping-list"
	routeMeals       = "/meal-planner"
	routeRecipes     = "/recipes"
	routeFamily      = "/family-members"
	routeProfile     = "/profile"
	routeAdmin       = "/admin"
	routeUsers       = "/admin/users"
	routeCategories  = "/admin/categories"
	routeModeration  = "/admin/moderation"
	routePerformance = "/admin/performance"
	routeRegister    = "/register"
)

// resources returns the hooks route reads from
func (a *App) resources(route string) []resource {
	switch route {
	case guard.HomePath:
		return []resource{a.dashboardHook()}
	case routeInventory:
		return []resource{a.inventoryHook(), a.categoriesHook()}
	case routeShopping:
		rs := []resource{a.listsHook()}
		if a.items != nil {
			rs = append(rs, a.items)
		}
		return rs
	case routeMeals:
		return []resource{a.mealsHook(), a.recipesHook()}
	case routeRecipes:
		return []resource{a.recipesHook()}
	case routeFamily:
		return []resource{a.familiesHook(), a.membersHook()}
	case routeAdmin:
		return []resource{a.usersHook(), a.categoriesHook(), a.pendingHook()}
	case routeUsers:
		return []resource{a.usersHook()}
	case routeCategories:
		return []resource{a.categoriesHook()}
	case routeModeration:
		return []resource{a.moderationHook()}
	}
	return nil
}

func (a *App) dashboardHook() *hooks.Dashboard {
	if a.dash == nil {
		a.dash = hooks.NewDashboard(a.deps.Client, a.deps.Cache)
	}
	return a.dash
}

func (a *App) inventoryHook() *hooks.Inventory {
	if a.inventory == nil {
		a.inventory = hooks.NewInventory(a.deps.Client, a.deps.Cache, a.now)
	}
	return a.inventory
}

func (a *App) listsHook() *hooks.ShoppingLists {
	if a.lists == nil {
		a.lists = hooks.NewShoppingLists(a.deps.Client, a.deps.Cache)
	}
	return a.lists
}

func (a *App) recipesHook() *hooks.Recipes {
	if a.recipes == nil {
		a.recipes = hooks.NewRecipes(a.deps.Client, a.deps.Cache)
	}
	return a.recipes
}

func (a *App) mealsHook() *hooks.MealPlans {
	if a.meals == nil {
		a.meals = hooks.NewMealPlans(a.deps.Client, a.deps.Cache, a.now)
	}
	return a.meals
}

func (a *App) familiesHook() *hooks.Families {
	if a.families == nil {
		a.families = hooks.NewFamilies(a.deps.Client, a.deps.Cache)
	}
	return a.families
}

func (a *App) membersHook() *hooks.FamilyMembers {
	if a.members == nil {
		a.members = hooks.NewFamilyMembers(a.deps.Client, a.deps.Cache)
	}
	return a.members
}

// usersHook is only reached on an admin route, so the session has a user
func (a *App) usersHook() *hooks.Users {
	if a.users == nil {
		a.users = hooks.NewUsers(a.deps.Client, a.state.User.ID)
	}
	return a.users
}

func (a *App) categoriesHook() *hooks.Categories {
	if a.categories == nil {
		a.categories = hooks.NewCategories(a.deps.Client, a.deps.Cache)
	}
	return a.categories
}

func (a *App) moderationHook() *hooks.Moderation {
	if a.moderation == nil {
		a.moderation = hooks.NewModeration(a.deps.Client, a.deps.Cache, models.ModerationPending)
	}
	return a.moderation
}

func (a *App) pendingHook() *hooks.Moderation {
	if a.pending == nil {
		a.pending = hooks.NewModeration(a.deps.Client, a.deps.Cache, models.ModerationPending)
	}
	return a.pending
}

// openList mounts the items of the list under the cursor
func (a *App) openList(listID int) {
	if a.items != nil {
		a.items.Detach()
	}
	a.items = hooks.NewShoppingItems(a.deps.Client, a.deps.Cache, listID)
	a.mounted = append(a.mounted, a.items)
}

// closeList returns to the shopping lists
func (a *App) closeList() {
	if a.items == nil {
		return
	}
	a.items.Detach()
	kept := a.mounted[:0]
	for _, r := range a.mounted {
		if r != resource(a.items) {
			kept = append(kept, r)
		}
	}
	a.mounted = kept
	a.items = nil
	a.cursor = a.listCursor
}
