// ABOUTME: Test harness for the TUI app against a fake backend
// ABOUTME: Runs commands synchronously and feeds app messages back into Update

package tui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/client"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/config"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/models"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/session"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/tui/menu"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/tui/wizard"
	tea "github.com/charmbracelet/bubbletea"
)

func intPtr(v int) *int { return &v }

var (
	member = models.User{ID: 2, Username: "jane", FullName: "Jane Doe", Email: "jane@example.com", FamilyID: intPtr(1)}
	admin  = models.User{ID: 1, Username: "root", Email: "root@example.com", IsAdmin: true, FamilyID: intPtr(1)}
)

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// newTestApp builds an app on a fake backend. A non-nil user is stored as
// the persisted session before the app loads it.
func newTestApp(t *testing.T, handler http.Handler, user *models.User) *App {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	storage := session.NewMemoryStorage()
	if user != nil {
		data, _ := json.Marshal(user)
		for k, v := range map[string]string{
			session.KeyAccessToken:  "access-token",
			session.KeyRefreshToken: "refresh-token",
			session.KeyCurrentUser:  string(data),
		} {
			if err := storage.Set(k, v); err != nil {
				t.Fatalf("failed to seed session: %v", err)
			}
		}
	}

	store := session.New(storage)
	c := client.New(server.URL,
		client.WithTokens(store),
		client.WithTimeout(5*time.Second),
		client.WithMetrics(client.NewMetrics()),
	)
	store.Attach(c)

	app := New(Deps{Store: store, Client: c, Config: &config.Config{NearExpiryDays: 3}})
	app.width = 120
	app.height = 40
	return app
}

// drive runs cmd and feeds every app message it yields back into the app
// until nothing is left. Timer and cursor messages are dropped.
func drive(t *testing.T, a *App, cmd tea.Cmd) {
	t.Helper()
	for _, msg := range collect(cmd, 0) {
		_, next := a.Update(msg)
		drive(t, a, next)
	}
}

// send delivers msg and drives whatever follows
func send(t *testing.T, a *App, msg tea.Msg) {
	t.Helper()
	_, cmd := a.Update(msg)
	drive(t, a, cmd)
}

// press sends a key by name
func press(t *testing.T, a *App, key string) {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	send(t, a, msg)
}

func collect(cmd tea.Cmd, depth int) []tea.Msg {
	if cmd == nil || depth > 4 {
		return nil
	}

	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	var msg tea.Msg
	select {
	case msg = <-ch:
	case <-time.After(2 * time.Second):
		return nil
	}

	switch m := msg.(type) {
	case tea.BatchMsg:
		results := make([][]tea.Msg, len(m))
		var wg sync.WaitGroup
		for i, c := range m {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results[i] = collect(c, depth+1)
			}()
		}
		wg.Wait()
		var out []tea.Msg
		for _, r := range results {
			out = append(out, r...)
		}
		return out
	case loadedMsg, doneMsg, loginMsg, registeredMsg, verifiedMsg, profileMsg, loggedOutMsg,
		wizard.CompleteMsg, wizard.CancelledMsg, menu.RouteSelectedMsg, menu.CancelledMsg:
		return []tea.Msg{msg}
	}
	return nil
}

// backend is a fake API with canned responses per path. Writes are recorded.
type backend struct {
	mu       sync.Mutex
	routes   map[string]http.HandlerFunc
	requests []string
}

func newBackend() *backend {
	b := &backend{routes: map[string]http.HandlerFunc{}}
	b.json("/users/user-info/", member)
	b.json("/dashboard/", models.Dashboard{})
	return b
}

func (b *backend) json(path string, v interface{}) {
	b.handle(path, func(w http.ResponseWriter, r *http.Request) { writeJSON(w, v) })
}

func (b *backend) handle(path string, fn http.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[path] = fn
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.requests = append(b.requests, r.Method+" "+r.URL.Path)
	fn, ok := b.routes[r.URL.Path]
	b.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	fn(w, r)
}

// sent reports whether a request with method and path was received
func (b *backend) sent(method, path string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, r := range b.requests {
		if r == method+" "+path {
			return true
		}
	}
	return false
}

// foods serves both compartment listings from items
func (b *backend) foods(items []models.InventoryItem) {
	for _, comp := range models.Compartments {
		out := []models.InventoryItem{}
		for _, item := range items {
			if item.Compartment == comp {
				out = append(out, item)
			}
		}
		b.json("/fridge/foods/"+string(comp)+"/", map[string]interface{}{"foods": out})
	}
}

// date returns today shifted by offset days as YYYY-MM-DD
func date(offset int) string {
	return time.Now().AddDate(0, 0, offset).Format(models.DateLayout)
}
