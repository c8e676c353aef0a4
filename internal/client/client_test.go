// ABOUTME: Tests for the grocery API client
// ABOUTME: Uses httptest to mock backend responses, token refresh and error shapes

package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func foodsHandler(items ...models.InventoryItem) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"foods": items})
	}
}

func TestBearerAttached(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer abc" {
			t.Errorf("expected Bearer abc, got %q", got)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("expected X-Request-ID header")
		}
		writeJSON(w, http.StatusOK, []models.Recipe{})
	}))
	defer server.Close()

	c := New(server.URL, WithTokens(&memTokens{access: "abc", refresh: "r"}))
	if _, err := c.ListRecipes(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBearerOmittedWithoutToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("expected no Authorization header, got %q", got)
		}
		writeJSON(w, http.StatusOK, []models.Recipe{})
	}))
	defer server.Close()

	c := New(server.URL, WithTokens(&memTokens{}))
	if _, err := c.ListRecipes(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLogin_IsAnonymous(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/login/" {
			t.Errorf("expected path /users/login/, got %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("login must not carry a token, got %q", got)
		}
		var body models.LoginRequest
		json.NewDecoder(r.Body).Decode(&body)
		if body.Username != "alice" {
			t.Errorf("expected username alice, got %s", body.Username)
		}
		writeJSON(w, http.StatusOK, models.LoginResponse{
			User:    models.User{ID: 1, Username: "alice"},
			Access:  "a",
			Refresh: "r",
		})
	}))
	defer server.Close()

	c := New(server.URL, WithTokens(&memTokens{access: "stale", refresh: "stale"}))
	resp, err := c.Login(context.Background(), models.LoginRequest{Username: "alice", Password: "secret"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Access != "a" || resp.Refresh != "r" {
		t.Errorf("expected tokens a/r, got %s/%s", resp.Access, resp.Refresh)
	}
}

func TestLogin_BadCredentialsDoesNotRefresh(t *testing.T) {
	var refreshes int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/users/refresh/" {
			atomic.AddInt32(&refreshes, 1)
		}
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "No active account found with the given credentials"})
	}))
	defer server.Close()

	tokens := &memTokens{}
	c := New(server.URL, WithTokens(tokens))
	_, err := c.Login(context.Background(), models.LoginRequest{Username: "alice", Password: "wrong"})
	if !IsStatus(err, http.StatusUnauthorized) {
		t.Fatalf("expected 401 APIError, got %v", err)
	}
	if errors.Is(err, ErrReauthRequired) {
		t.Error("bad credentials must not be reported as reauth")
	}
	if refreshes != 0 {
		t.Errorf("expected no refresh, got %d", refreshes)
	}
	if got := Message(err); got != "No active account found with the given credentials" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestRefreshAndReplayOn401(t *testing.T) {
	var refreshes, foodCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/users/refresh/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshes, 1)
		var body models.RefreshRequest
		json.NewDecoder(r.Body).Decode(&body)
		if body.Refresh != "refresh-1" {
			t.Errorf("expected refresh-1, got %s", body.Refresh)
		}
		writeJSON(w, http.StatusOK, models.RefreshResponse{Access: "new", Refresh: "refresh-2"})
	})
	mux.HandleFunc("/fridge/foods/cooler/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&foodCalls, 1)
		if r.Header.Get("Authorization") != "Bearer new" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Given token not valid", "code": "token_not_valid"})
			return
		}
		foodsHandler(models.InventoryItem{ID: 1, Name: "Milk"})(w, r)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	tokens := &memTokens{access: "old", refresh: "refresh-1"}
	c := New(server.URL, WithTokens(tokens))

	items, err := c.ListInventory(context.Background(), models.Cooler, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Milk" {
		t.Errorf("expected replayed response, got %+v", items)
	}
	if refreshes != 1 {
		t.Errorf("expected 1 refresh, got %d", refreshes)
	}
	if foodCalls != 2 {
		t.Errorf("expected original call plus one replay, got %d", foodCalls)
	}
	access, refresh := tokens.Tokens()
	if access != "new" || refresh != "refresh-2" {
		t.Errorf("expected stored tokens new/refresh-2, got %s/%s", access, refresh)
	}
}

func TestRefreshRejectedRequiresReauth(t *testing.T) {
	var foodCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/users/refresh/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Token is blacklisted"})
	})
	mux.HandleFunc("/recipes/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&foodCalls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	tokens := &memTokens{access: "old", refresh: "revoked"}
	c := New(server.URL, WithTokens(tokens))

	_, err := c.ListRecipes(context.Background())
	if !errors.Is(err, ErrReauthRequired) {
		t.Fatalf("expected ErrReauthRequired, got %v", err)
	}
	if tokens.clearedCount() != 1 {
		t.Errorf("expected session cleared once, got %d", tokens.clearedCount())
	}
	if foodCalls != 1 {
		t.Errorf("expected no replay after failed refresh, got %d calls", foodCalls)
	}
	if got := Message(err); !strings.Contains(got, "log in again") {
		t.Errorf("expected reauth message, got %q", got)
	}
}

func TestReplayRejectedRequiresReauth(t *testing.T) {
	var refreshes int32
	mux := http.NewServeMux()
	mux.HandleFunc("/users/refresh/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshes, 1)
		writeJSON(w, http.StatusOK, models.RefreshResponse{Access: "new"})
	})
	mux.HandleFunc("/dashboard/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	tokens := &memTokens{access: "old", refresh: "r"}
	c := New(server.URL, WithTokens(tokens))

	_, err := c.Dashboard(context.Background())
	if !errors.Is(err, ErrReauthRequired) {
		t.Fatalf("expected ErrReauthRequired, got %v", err)
	}
	if refreshes != 1 {
		t.Errorf("expected exactly one refresh, got %d", refreshes)
	}
	if tokens.clearedCount() != 1 {
		t.Errorf("expected session cleared, got %d", tokens.clearedCount())
	}
}

func TestRefreshFailureClearsSession(t *testing.T) {
	tests := []struct {
		name    string
		refresh http.HandlerFunc
	}{
		{"rejected", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusUnauthorized) }},
		{"server error", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusServiceUnavailable) }},
		{"no access token", func(w http.ResponseWriter, r *http.Request) { writeJSON(w, http.StatusOK, models.RefreshResponse{}) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/users/refresh/", tt.refresh)
			mux.HandleFunc("/recipes/", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			})
			server := httptest.NewServer(mux)
			defer server.Close()

			tokens := &memTokens{access: "old", refresh: "r"}
			c := New(server.URL, WithTokens(tokens))

			_, err := c.ListRecipes(context.Background())
			if !errors.Is(err, ErrReauthRequired) {
				t.Errorf("expected ErrReauthRequired, got %v", err)
			}
			if tokens.clearedCount() != 1 {
				t.Errorf("expected session cleared once, cleared %d times", tokens.clearedCount())
			}
		})
	}
}

func TestRefreshCancelledKeepsSession(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	mux := http.NewServeMux()
	mux.HandleFunc("/users/refresh/", func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		cancel()
		<-r.Context().Done()
	})
	mux.HandleFunc("/recipes/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	tokens := &memTokens{access: "old", refresh: "r"}
	c := New(server.URL, WithTokens(tokens))

	_, err := c.ListRecipes(ctx)
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrReauthRequired) {
		t.Error("a cancelled refresh must not force reauthentication")
	}
	if tokens.clearedCount() != 0 {
		t.Errorf("expected session kept, cleared %d times", tokens.clearedCount())
	}
}

func TestConcurrent401sShareOneRefresh(t *testing.T) {
	var refreshes int32
	mux := http.NewServeMux()
	mux.HandleFunc("/users/refresh/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshes, 1)
		time.Sleep(50 * time.Millisecond)
		writeJSON(w, http.StatusOK, models.RefreshResponse{Access: "new"})
	})
	mux.HandleFunc("/recipes/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer new" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(w, http.StatusOK, []models.Recipe{{ID: 1, Name: "Soup"}})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	tokens := &memTokens{access: "old", refresh: "r"}
	c := New(server.URL, WithTokens(tokens))

	const callers = 5
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.ListRecipes(context.Background())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	}
	if refreshes != 1 {
		t.Errorf("expected 1 refresh for %d concurrent callers, got %d", callers, refreshes)
	}
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"token_type": "access",
		"user_id":    1,
		"exp":        exp.Unix(),
	})
	s, err := token.SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return s
}

func TestProactiveRefreshOfExpiredToken(t *testing.T) {
	var order []string
	var mu sync.Mutex
	mux := http.NewServeMux()
	mux.HandleFunc("/users/refresh/", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		order = append(order, "refresh")
		mu.Unlock()
		writeJSON(w, http.StatusOK, models.RefreshResponse{Access: "fresh"})
	})
	mux.HandleFunc("/users/user-info/", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		order = append(order, r.Header.Get("Authorization"))
		mu.Unlock()
		writeJSON(w, http.StatusOK, models.User{ID: 1, Username: "alice"})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	expired := signedToken(t, testNow.Add(-time.Minute))
	c := New(server.URL, WithTokens(&memTokens{access: expired, refresh: "r"}), WithClock(fixedClock))

	if _, err := c.CurrentUser(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 2 || order[0] != "refresh" || order[1] != "Bearer fresh" {
		t.Errorf("expected refresh before the call, got %v", order)
	}
}

func TestTokenExpired(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		expected bool
	}{
		{"opaque", "not-a-jwt", false},
		{"valid", signedToken(t, testNow.Add(time.Hour)), false},
		{"expired", signedToken(t, testNow.Add(-time.Second)), true},
		{"within skew", signedToken(t, testNow.Add(10*time.Second)), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tokenExpired(tt.token, testNow); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestErrorShapes(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected string
	}{
		{"detail", http.StatusForbidden, `{"detail":"Admin only"}`, "Admin only"},
		{"error and details", http.StatusBadRequest, `{"error":"Invalid date","details":"use YYYY-MM-DD"}`, "Invalid date: use YYYY-MM-DD"},
		{"message", http.StatusConflict, `{"message":"Already exists"}`, "Already exists"},
		{"field map", http.StatusBadRequest, `{"name":["This field is required."],"quantity":"must be positive"}`, "name: This field is required.; quantity: must be positive"},
		{"empty forbidden", http.StatusForbidden, ``, "You do not have permission to do that."},
		{"empty server error", http.StatusInternalServerError, ``, "Request failed with status 500."},
		{"html body", http.StatusBadGateway, `<html>bad gateway</html>`, "Request failed with status 502."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := New(server.URL)
			_, err := c.ListRecipes(context.Background())
			if !IsStatus(err, tt.status) {
				t.Fatalf("expected status %d, got %v", tt.status, err)
			}
			if got := Message(err); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestErrorCodes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found.", "code": "not_found"})
	}))
	defer server.Close()

	_, err := New(server.URL).GetRecipe(context.Background(), 42)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != CodeNotFound {
		t.Errorf("expected %s, got %s", CodeNotFound, apiErr.Code)
	}
	if apiErr.ServerCode != "not_found" {
		t.Errorf("expected server code not_found, got %s", apiErr.ServerCode)
	}
}

func TestConnectionError(t *testing.T) {
	c := New("http://localhost:99999")
	_, err := c.ListRecipes(context.Background())
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
	if netErr.Code != CodeNetwork {
		t.Errorf("expected %s, got %s", CodeNetwork, netErr.Code)
	}
	if !strings.Contains(Message(err), "cannot connect to backend") {
		t.Errorf("unexpected message %q", Message(err))
	}
}

func TestContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		writeJSON(w, http.StatusOK, []models.Recipe{})
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(server.URL).ListRecipes(ctx)
	if err == nil {
		t.Fatal("expected error for canceled context, got nil")
	}
	if Message(err) != "request canceled" {
		t.Errorf("expected request canceled, got %q", Message(err))
	}
}

func TestValidationBeforeNetwork(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()

	c := New(server.URL, WithClock(fixedClock))
	ctx := context.Background()

	_, err := c.CreateInventoryItem(ctx, models.InventoryInput{Name: "Milk", Category: "Dairy", Compartment: models.Cooler, Location: "top shelf", Quantity: 0, ExpiryDate: "2026-03-15"})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "quantity" {
		t.Errorf("expected quantity validation error, got %v", err)
	}
	if _, err := c.CreateShoppingItem(ctx, models.ShoppingItemInput{Item: "Eggs", Quantity: 1}); err == nil {
		t.Error("expected missing list id to be rejected")
	}
	if _, err := c.RejectContent(ctx, 1, models.RejectInput{}); err == nil {
		t.Error("expected empty reason to be rejected")
	}
	if err := c.DeleteUser(ctx, 0); err == nil {
		t.Error("expected missing user id to be rejected")
	}
	if hits != 0 {
		t.Errorf("expected no requests, got %d", hits)
	}
}

func TestListInventory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/fridge/foods/freezer/" {
			t.Errorf("expected freezer path, got %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("search"); got != "pea" {
			t.Errorf("expected search pea, got %q", got)
		}
		foodsHandler(models.InventoryItem{ID: 3, Name: "Peas", Compartment: models.Freezer})(w, r)
	}))
	defer server.Close()

	items, err := New(server.URL).ListInventory(context.Background(), "Freezer", "pea")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Peas" {
		t.Errorf("expected Peas, got %+v", items)
	}
}

func TestListInventory_InvalidCompartment(t *testing.T) {
	_, err := New("http://localhost:99999").ListInventory(context.Background(), "pantry", "")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestCreateInventoryItem_Envelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/fridge/foods/" {
			t.Errorf("expected POST /fridge/foods/, got %s %s", r.Method, r.URL.Path)
		}
		var in models.InventoryInput
		json.NewDecoder(r.Body).Decode(&in)
		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"status":  "success",
			"message": "Food item added",
			"data":    models.InventoryItem{ID: 9, Name: in.Name, ExpiryDate: in.ExpiryDate},
		})
	}))
	defer server.Close()

	c := New(server.URL, WithClock(fixedClock))
	item, err := c.CreateInventoryItem(context.Background(), models.InventoryInput{
		Name: "Yogurt", Category: "Dairy", Compartment: models.Cooler, Location: "door", Quantity: 2, ExpiryDate: "2026-03-12",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.ID != 9 || item.Name != "Yogurt" {
		t.Errorf("expected envelope data, got %+v", item)
	}
}

func TestListUsers_Shapes(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		count int
		users int
	}{
		{"bare array", `[{"id":1,"username":"a"},{"id":2,"username":"b"}]`, 2, 2},
		{"paginated", `{"results":[{"id":1,"username":"a"}],"count":41}`, 41, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.URL.Query().Get("page"); got != "2" {
					t.Errorf("expected page 2, got %q", got)
				}
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			page, err := New(server.URL).ListUsers(context.Background(), UserQuery{Page: 2})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if page.Count != tt.count || len(page.Results) != tt.users {
				t.Errorf("expected %d/%d, got %d/%d", tt.users, tt.count, len(page.Results), page.Count)
			}
		})
	}
}

func TestDeleteUser_SendsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		if body["user_id"] != float64(7) {
			t.Errorf("expected user_id 7, got %v", body["user_id"])
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	if err := New(server.URL).DeleteUser(context.Background(), 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestModerationPaths(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.RequestURI())
		if strings.HasSuffix(r.URL.Path, "/reject/") {
			var in models.RejectInput
			json.NewDecoder(r.Body).Decode(&in)
			if in.Reason != "spam" {
				t.Errorf("expected reason spam, got %q", in.Reason)
			}
		}
		if r.Method == http.MethodGet {
			writeJSON(w, http.StatusOK, []models.ModerationItem{})
			return
		}
		writeJSON(w, http.StatusOK, models.ModerationItem{ID: 5})
	}))
	defer server.Close()

	c := New(server.URL)
	ctx := context.Background()
	if _, err := c.ListModeration(ctx, models.ModerationPending); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.ApproveContent(ctx, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.RejectContent(ctx, 5, models.RejectInput{Reason: "spam"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{
		"GET /moderation/items/?status=pending",
		"POST /moderation/items/5/approve/",
		"POST /moderation/items/5/reject/",
	}
	for i, want := range expected {
		if i >= len(paths) || paths[i] != want {
			t.Errorf("request %d: expected %s, got %v", i, want, paths)
		}
	}
}

func TestWeeklyMealPlansPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/meal_plans/weekly/2026-03-09/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		writeJSON(w, http.StatusOK, []models.MealPlan{{ID: 1, Date: "2026-03-09"}})
	}))
	defer server.Close()

	start := time.Date(2026, 3, 9, 0, 0, 0, 0, time.Local)
	plans, err := New(server.URL).WeeklyMealPlans(context.Background(), start)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plans) != 1 {
		t.Errorf("expected 1 plan, got %d", len(plans))
	}
}

func TestShoppingItemsQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("shopping_list_id"); got != "4" {
			t.Errorf("expected shopping_list_id 4, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"shopping_list":{"id":4,"name":"Weekly"},"item":"Eggs","quantity":12,"status":"pending"}]`))
	}))
	defer server.Close()

	items, err := New(server.URL).ListShoppingItems(context.Background(), 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].ListID() != 4 {
		t.Errorf("expected item on list 4, got %+v", items)
	}
}

func TestMetricsRecorded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/recipes/1/" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, []models.Recipe{})
	}))
	defer server.Close()

	m := NewMetrics()
	c := New(server.URL, WithMetrics(m))
	ctx := context.Background()
	c.ListRecipes(ctx)
	c.ListRecipes(ctx)
	c.GetRecipe(ctx, 1)

	snap := m.Snapshot()
	if snap.Requests != 3 {
		t.Errorf("expected 3 requests, got %d", snap.Requests)
	}
	if snap.Failures != 1 {
		t.Errorf("expected 1 failure, got %d", snap.Failures)
	}
	if snap.Statuses[http.StatusOK] != 2 {
		t.Errorf("expected 2 OK responses, got %d", snap.Statuses[http.StatusOK])
	}
	if len(snap.LatencyMillis) != 3 {
		t.Errorf("expected 3 latency samples, got %d", len(snap.LatencyMillis))
	}
}
