// ABOUTME: Shared fixtures for command tests
// ABOUTME: Isolated state directory, seeded sessions and a fixed clock

package cmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/models"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/session"
)

// testNow follows the wall clock because the API client validates expiry
// dates against the real current day
var testNow = time.Now()

// isolate points the CLI at a temp state dir and resets global flags
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("GROCERY_STATE_DIR", dir)
	t.Setenv("GROCERY_API_URL", "")
	t.Setenv("GROCERY_LOG_LEVEL", "error")

	now = func() time.Time { return testNow }
	t.Cleanup(func() {
		now = time.Now
		apiURL = ""
		jsonOutput = false
	})
	return dir
}

// serve starts handler and points the CLI at it
func serve(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	apiURL = server.URL
	return server
}

// seedSession writes a logged-in session for user into dir
func seedSession(t *testing.T, dir string, user models.User) *session.FileStorage {
	t.Helper()
	fs := session.NewFileStorage(filepath.Join(dir, "session.json"))
	data, _ := json.Marshal(user)
	for k, v := range map[string]string{
		session.KeyAccessToken:  "access-token",
		session.KeyRefreshToken: "refresh-token",
		session.KeyCurrentUser:  string(data),
	} {
		if err := fs.Set(k, v); err != nil {
			t.Fatalf("failed to seed session: %v", err)
		}
	}
	return fs
}

func intPtr(v int) *int { return &v }

var (
	member = models.User{ID: 2, Username: "jane", FullName: "Jane Doe", Email: "jane@example.com", FamilyID: intPtr(1)}
	admin  = models.User{ID: 1, Username: "root", Email: "root@example.com", IsAdmin: true, FamilyID: intPtr(1)}
)

func writeJSON200(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// foods serves the two compartment listings from items
func foods(items []models.InventoryItem) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var comp models.Compartment
		switch r.URL.Path {
		case "/fridge/foods/cooler/":
			comp = models.Cooler
		case "/fridge/foods/freezer/":
			comp = models.Freezer
		default:
			http.NotFound(w, r)
			return
		}
		out := []models.InventoryItem{}
		for _, item := range items {
			if item.Compartment == comp {
				out = append(out, item)
			}
		}
		writeJSON200(w, map[string]interface{}{"foods": out})
	}
}

// date returns testNow shifted by offset days as YYYY-MM-DD
func date(offset int) string {
	return testNow.AddDate(0, 0, offset).Format(models.DateLayout)
}
