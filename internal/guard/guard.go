// ABOUTME: Route guard deciding whether a session may open a view
// ABOUTME: Public, protected and admin routes; admin requires a server-verified session

package guard

import (
	"log/slog"
	"strings"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/session"
)

// Level is the access a route requires. Unknown paths resolve to
// Protected, so a typo never opens a route to anonymous users.
type Level int

const (
	Public Level = iota
	Protected
	Admin
)

func (l Level) String() string {
	switch l {
	case Public:
		return "public"
	case Admin:
		return "admin"
	default:
		return "protected"
	}
}

const (
	LoginPath = "/login"
	HomePath  = "/"
)

// Route is one navigable view
type Route struct {
	Path  string
	Title string
	Level Level
}

// Routes lists every view in menu order
var Routes = []Route{
	{"/login", "Log in", Public},
	{"/register", "Register", Public},
	{"/", "Dashboard", Protected},
	{"/inventory", "Inventory", Protected},
	{"/shopping-list", "Shopping lists", Protected},
	{"/meal-planner", "Meal planner", Protected},
	{"/recipes", "Recipes", Protected},
	{"/family-members", "Family members", Protected},
	{"/profile", "Profile", Protected},
	{"/admin", "Administration", Admin},
	{"/admin/users", "User management", Admin},
	{"/admin/categories", "Categories", Admin},
	{"/admin/moderation", "Content moderation", Admin},
	{"/admin/performance", "System performance", Admin},
}

var routeIndex = func() map[string]Route {
	m := make(map[string]Route, len(Routes))
	for _, r := range Routes {
		m[r.Path] = r
	}
	return m
}()

// Normalize strips the query and trailing slash: "/inventory/?x=1" -> "/inventory"
func Normalize(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimRight(path, "/")
	if path == "" {
		return HomePath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

// Lookup returns the route for path and whether it is known
func Lookup(path string) (Route, bool) {
	r, ok := routeIndex[Normalize(path)]
	return r, ok
}

// LevelOf returns the access level path requires
func LevelOf(path string) Level {
	if r, ok := Lookup(path); ok {
		return r.Level
	}
	return Protected
}

// Decision is the outcome of a navigation check
type Decision struct {
	Allowed  bool
	Redirect string
	// From is the originally requested path, carried to the login view
	From string
}

// Decide evaluates a navigation to path for state. It is cheap and must be
// called on every navigation; the result is never cached.
func Decide(path string, state session.State) Decision {
	path = Normalize(path)
	level := LevelOf(path)

	if permits(level, state) {
		return Decision{Allowed: true}
	}

	if !state.IsAuthenticated() {
		slog.Warn("Navigation denied",
			"path", path,
			"required", level.String(),
			"status", state.Status.String(),
		)
		return Decision{Redirect: LoginPath, From: path}
	}

	slog.Warn("Navigation denied",
		"path", path,
		"required", level.String(),
		"username", state.User.Username,
		"is_admin", state.User.IsAdmin,
		"verified", state.Verified,
	)
	return Decision{Redirect: HomePath}
}

func permits(level Level, state session.State) bool {
	switch level {
	case Public:
		return true
	case Admin:
		return state.IsAuthenticated() && state.IsAdmin()
	default:
		return state.IsAuthenticated()
	}
}

// PostLoginTarget is where to go after a successful login: the requested
// route when it is a known non-public one, else home
func PostLoginTarget(from string) string {
	r, ok := Lookup(from)
	if !ok || r.Level == Public {
		return HomePath
	}
	return r.Path
}

// Visible returns the non-public routes state may open, for navigation menus
func Visible(state session.State) []Route {
	var out []Route
	for _, r := range Routes {
		if r.Level == Public {
			continue
		}
		if permits(r.Level, state) {
			out = append(out, r)
		}
	}
	return out
}
