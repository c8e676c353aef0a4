// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Guards every navigation, mounts each view's hooks and routes keys to it

package tui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/cache"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/client"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/config"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/guard"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/hooks"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/models"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/session"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/tui/menu"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/tui/recentusers"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/tui/styles"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/tui/wizard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Screen is what currently owns the keyboard
type Screen int

const (
	ScreenView Screen = iota
	ScreenMenu
	ScreenForm
)

// Layout constants
const (
	minTerminalWidth = 80 // Frame never renders narrower than this
	panelPadding     = 4  // Total horizontal padding from panel borders (2 each side)
)

// Deps are the long-lived services the app drives
type Deps struct {
	Store  *session.Store
	Client *client.Client
	Cache  *cache.Cache // may be nil
	Config *config.Config
	Recent *recentusers.RecentUsers // may be nil
}

// loadedMsg is sent when a view's hooks finish loading
type loadedMsg struct {
	route string
	err   error
}

// doneMsg is sent when a write finishes
type doneMsg struct {
	route  string
	notice string
	err    error
}

type loginMsg struct {
	state session.State
}

type registeredMsg struct {
	username string
	err      error
}

type verifiedMsg struct {
	state session.State
	err   error
}

type profileMsg struct {
	user *models.User
	err  error
}

type loggedOutMsg struct{}

type tickMsg time.Time

// inventoryMode narrows the inventory listing
type inventoryMode int

const (
	inventoryAll inventoryMode = iota
	inventoryExpiring
	inventoryExpired
)

// resource is a mounted hook
type resource interface {
	Load(ctx context.Context) error
	Reload(ctx context.Context) error
	Attach()
	Detach()
}

// App is the root model for the TUI
type App struct {
	deps  Deps
	now   func() time.Time
	state session.State

	route  string
	from   string // route to resume after logging in
	screen Screen
	width  int
	height int

	notice     string
	noticeErr  bool
	armed      string // action waiting for a confirming second press
	lastUpdate time.Time
	lastUser   string
	busy       bool
	spinner    spinner.Model

	cursor    int
	searching bool
	search    textinput.Model
	filter    string
	detail    bool

	// Child models
	menu *menu.Menu
	form *wizard.Wizard

	// Data hooks, created on first use and dropped at logout
	mounted     []resource
	dash        *hooks.Dashboard
	inventory   *hooks.Inventory
	invMode     inventoryMode
	compartment models.Compartment
	lists       *hooks.ShoppingLists
	items       *hooks.ShoppingItems
	listCursor  int
	recipes     *hooks.Recipes
	meals       *hooks.MealPlans
	families    *hooks.Families
	members     *hooks.FamilyMembers
	users       *hooks.Users
	categories  *hooks.Categories
	moderation  *hooks.Moderation
	pending     *hooks.Moderation // overview counts, independent of the moderation filter
}

// New creates the app on the persisted session. Nothing is fetched until Init.
func New(deps Deps) *App {
	if deps.Config == nil {
		deps.Config = &config.Config{NearExpiryDays: 3}
	}

	search := textinput.New()
	search.Placeholder = "search"
	search.Prompt = "/ "
	search.CharLimit = 64

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Notice

	a := &App{
		deps:    deps,
		now:     time.Now,
		route:   guard.HomePath,
		spinner: sp,
		search:  search,
	}
	if deps.Store != nil {
		a.state = deps.Store.Load()
	}
	if a.state.User != nil {
		a.lastUser = a.state.User.Username
	} else if deps.Recent != nil {
		a.lastUser = deps.Recent.Last()
	}
	return a
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.navigate(guard.HomePath), a.tick()}
	if a.state.IsAuthenticated() {
		cmds = append(cmds, a.verify())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form.SetWidth(a.contentWidth())
			_, cmd := a.form.Update(msg)
			return a, cmd
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		switch a.screen {
		case ScreenForm:
			return a.updateForm(msg)
		case ScreenMenu:
			return a.updateMenu(msg)
		}
		if a.searching {
			return a.updateSearch(msg)
		}
		return a.handleKey(msg)

	case spinner.TickMsg:
		if !a.busy {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tickMsg:
		return a.handleTick()

	case loadedMsg:
		if msg.route != a.route {
			return a, nil
		}
		a.busy = false
		if msg.err != nil {
			return a.handleError(msg.err)
		}
		a.lastUpdate = a.now()
		a.clampCursor()
		return a, nil

	case doneMsg:
		a.busy = false
		if msg.err != nil {
			return a.handleError(msg.err)
		}
		a.setNotice(msg.notice)
		a.lastUpdate = a.now()
		a.clampCursor()
		return a, nil

	case loginMsg:
		return a.handleLogin(msg)

	case registeredMsg:
		a.busy = false
		if msg.err != nil {
			a.setError(client.Message(msg.err))
			return a, a.openForm(wizard.Register())
		}
		a.lastUser = msg.username
		a.setNotice("Registered " + msg.username + ". Log in to continue.")
		return a, a.navigate(guard.LoginPath)

	case verifiedMsg:
		return a.handleVerified(msg)

	case profileMsg:
		a.busy = false
		if msg.err != nil {
			return a.handleError(msg.err)
		}
		a.state.User = msg.user
		a.setNotice("Profile updated")
		return a, nil

	case loggedOutMsg:
		a.busy = false
		a.resetHooks()
		a.from = ""
		a.setNotice("Logged out")
		return a, a.navigate(guard.LoginPath)

	case wizard.CompleteMsg:
		a.form = nil
		a.screen = ScreenView
		return a, a.submit(msg)

	case wizard.CancelledMsg:
		return a.handleFormCancelled(msg)

	case menu.RouteSelectedMsg:
		a.menu = nil
		return a, a.navigate(msg.Path)

	case menu.CancelledMsg:
		a.menu = nil
		a.screen = ScreenView
		return a, nil
	}

	// huh forms drive themselves with internal messages
	if a.screen == ScreenForm && a.form != nil {
		_, cmd := a.form.Update(msg)
		return a, cmd
	}
	if a.screen == ScreenMenu && a.menu != nil {
		_, cmd := a.menu.Update(msg)
		return a, cmd
	}
	if a.searching {
		var cmd tea.Cmd
		a.search, cmd = a.search.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.form == nil {
		a.screen = ScreenView
		return a, nil
	}
	_, cmd := a.form.Update(msg)
	return a, cmd
}

func (a *App) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.menu == nil {
		a.screen = ScreenView
		return a, nil
	}
	_, cmd := a.menu.Update(msg)
	return a, cmd
}

// navigate checks path against the guard, leaves the current view and
// enters the allowed one. Every navigation goes through here.
func (a *App) navigate(path string) tea.Cmd {
	a.rehydrate()
	target := guard.Normalize(path)
	d := guard.Decide(target, a.state)
	if !d.Allowed {
		target = d.Redirect
		if d.Redirect == guard.LoginPath {
			a.from = d.From
		} else {
			a.setError("Administrator access required.")
		}
	}

	a.leave()
	a.items = nil
	a.route = target
	a.screen = ScreenView
	a.cursor = 0
	a.filter = ""
	a.searching = false
	a.detail = false
	a.armed = ""
	slog.Debug("Navigated", "route", target, "from", path)
	return a.enter()
}

// rehydrate rereads the persisted session, which another process may
// have cleared or replaced since the last navigation
func (a *App) rehydrate() {
	if a.deps.Store == nil {
		return
	}
	prev := a.state.User
	a.state = a.deps.Store.Load()
	if prev != nil && (a.state.User == nil || a.state.User.ID != prev.ID) {
		slog.Info("Session changed outside the app", "user", prev.Username)
		a.resetHooks()
	}
}

func (a *App) enter() tea.Cmd {
	switch a.route {
	case guard.LoginPath:
		return a.openForm(a.loginForm())
	case "/register":
		return a.openForm(wizard.Register())
	}

	a.mounted = a.resources(a.route)
	for _, r := range a.mounted {
		r.Attach()
	}
	return a.load(false)
}

// leave detaches the current view's hooks so late results are dropped
func (a *App) leave() {
	for _, r := range a.mounted {
		r.Detach()
	}
	a.mounted = nil
}

// resetHooks forgets every hook; they hold the previous user's data
func (a *App) resetHooks() {
	a.leave()
	a.dash = nil
	a.inventory = nil
	a.lists = nil
	a.items = nil
	a.recipes = nil
	a.meals = nil
	a.families = nil
	a.members = nil
	a.users = nil
	a.categories = nil
	a.moderation = nil
	a.pending = nil
}

// load fetches every mounted hook concurrently
func (a *App) load(force bool) tea.Cmd {
	if len(a.mounted) == 0 {
		a.lastUpdate = a.now()
		return nil
	}

	route := a.route
	mounted := append([]resource(nil), a.mounted...)
	a.busy = true
	return tea.Batch(a.spinner.Tick, func() tea.Msg {
		ctx := context.Background()
		var err error
		if force {
			reloaders := make([]interface{ Reload(context.Context) error }, len(mounted))
			for i, r := range mounted {
				reloaders[i] = r
			}
			err = hooks.ReloadAll(ctx, reloaders...)
		} else {
			loaders := make([]hooks.Loader, len(mounted))
			for i, r := range mounted {
				loaders[i] = r
			}
			err = hooks.LoadAll(ctx, loaders...)
		}
		return loadedMsg{route: route, err: err}
	})
}

// mutate runs a write against the current view
func (a *App) mutate(notice string, write func(ctx context.Context) error) tea.Cmd {
	route := a.route
	a.busy = true
	return tea.Batch(a.spinner.Tick, func() tea.Msg {
		return doneMsg{route: route, notice: notice, err: write(context.Background())}
	})
}

func (a *App) verify() tea.Cmd {
	store := a.deps.Store
	return func() tea.Msg {
		state, err := store.Verify(context.Background())
		return verifiedMsg{state: state, err: err}
	}
}

func (a *App) tick() tea.Cmd {
	poll := a.deps.Config.DashboardPoll
	if poll <= 0 {
		return nil
	}
	return tea.Tick(poll, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// handleTick refreshes the views that poll
func (a *App) handleTick() (tea.Model, tea.Cmd) {
	if a.screen == ScreenView && !a.busy && a.route == guard.HomePath {
		return a, tea.Batch(a.load(true), a.tick())
	}
	return a, a.tick()
}

// handleError shows err; a session that can no longer be refreshed sends
// the user to log in and then back to where they were
func (a *App) handleError(err error) (tea.Model, tea.Cmd) {
	a.busy = false
	if errors.Is(err, client.ErrReauthRequired) {
		from := a.route
		a.resetHooks()
		cmd := a.navigate(from)
		a.setError(client.Message(err))
		return a, cmd
	}
	a.setError(client.Message(err))
	return a, nil
}

func (a *App) handleLogin(msg loginMsg) (tea.Model, tea.Cmd) {
	a.busy = false
	if !msg.state.IsAuthenticated() {
		a.setError("Login failed: " + msg.state.Reason)
		return a, a.openForm(a.loginForm())
	}

	a.resetHooks()
	a.state = msg.state
	a.lastUser = msg.state.User.Username
	if a.deps.Recent != nil {
		if err := a.deps.Recent.Add(a.lastUser); err != nil {
			slog.Warn("Failed to remember username", "error", err)
		}
	}
	a.setNotice("Welcome, " + msg.state.User.DisplayName())
	target := guard.PostLoginTarget(a.from)
	a.from = ""
	return a, a.navigate(target)
}

// handleVerified adopts the server's view of the user and re-checks the
// current route, which may have been admin-only
func (a *App) handleVerified(msg verifiedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if errors.Is(msg.err, client.ErrReauthRequired) {
			return a.handleError(msg.err)
		}
		slog.Warn("Session verification failed", "error", msg.err)
		return a, nil
	}
	a.state = msg.state
	if !guard.Decide(a.route, a.state).Allowed {
		return a, a.navigate(a.route)
	}
	return a, nil
}

func (a *App) handleFormCancelled(msg wizard.CancelledMsg) (tea.Model, tea.Cmd) {
	a.form = nil
	a.screen = ScreenView
	switch msg.Kind {
	case wizard.KindLogin:
		return a, tea.Quit
	case wizard.KindRegister:
		return a, a.navigate(guard.LoginPath)
	}
	return a, nil
}

func (a *App) openForm(w *wizard.Wizard) tea.Cmd {
	a.form = w
	a.form.SetWidth(a.contentWidth())
	a.screen = ScreenForm
	return a.form.Init()
}

func (a *App) loginForm() *wizard.Wizard {
	if a.deps.Recent == nil {
		return wizard.Login(a.lastUser)
	}
	return wizard.Login(a.lastUser, a.deps.Recent.List()...)
}

func (a *App) openMenu() tea.Cmd {
	a.menu = menu.New(a.state, a.route)
	a.screen = ScreenMenu
	return a.menu.Init()
}

func (a *App) setNotice(s string) {
	a.notice = s
	a.noticeErr = false
}

func (a *App) setError(s string) {
	a.notice = s
	a.noticeErr = true
}

// contentWidth is the width available inside the frame
func (a *App) contentWidth() int {
	return a.frameWidth() - panelPadding
}

// contentHeight calculates the height available between header and footer
func (a *App) contentHeight() int {
	// header, footer and the notice line
	return max(10, a.height-4)
}

// Run starts the TUI
func Run(deps Deps) error {
	app := New(deps)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
