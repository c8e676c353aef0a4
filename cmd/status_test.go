// ABOUTME: Tests for the status command
// ABOUTME: Verifies dashboard output formatting, reauthentication and exit codes

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/models"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/session"
)

func sampleDashboard() models.Dashboard {
	return models.Dashboard{
		ExpiringItems: []models.DashboardFood{{ID: 1, Name: "Milk", ExpiryDate: "2026-03-11"}},
		ShoppingList:  []models.DashboardFood{{ID: 2, Name: "Eggs"}, {ID: 3, Name: "Bread", Completed: true}},
		FridgeItems:   []models.DashboardFood{{ID: 1, Name: "Milk"}, {ID: 4, Name: "Butter"}},
		MealPlans: []models.DashboardMealPlan{{
			ID: 1, Date: "2026-03-10",
			Meals: []models.DashboardMeal{{Type: "dinner"}},
		}},
		FoodPurchases: []models.DashboardFood{{Name: "Milk", Price: 2.5}, {Name: "Eggs", Price: 3.25}},
	}
}

func TestFormatStatusHuman(t *testing.T) {
	d := sampleDashboard()
	d.MealPlans[0].Meals[0].Recipe.Name = "Pasta"
	output := formatStatusHuman(newStatusReport("http://localhost:8000",
		session.State{Status: session.Authenticated, User: &member}, &d))

	checks := []string{
		"http://localhost:8000",
		"jane",
		"Fridge items:     2",
		"Expiring soon:    1",
		"Shopping pending: 1",
		"5.75",
		"dinner: Pasta",
	}
	for _, check := range checks {
		if !bytes.Contains([]byte(output), []byte(check)) {
			t.Errorf("expected output to contain '%s'", check)
		}
	}
}

func TestFormatStatusJSON(t *testing.T) {
	d := sampleDashboard()
	output := formatStatusJSON(newStatusReport("http://localhost:8000",
		session.State{Status: session.Authenticated, User: &admin, Verified: true}, &d))

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(output), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if parsed["user"] != "root" {
		t.Errorf("expected user in JSON, got %v", parsed["user"])
	}
	if parsed["admin"] != true {
		t.Errorf("expected verified admin in JSON, got %v", parsed["admin"])
	}
}

func TestStatusCommand_Success(t *testing.T) {
	dir := isolate(t)
	serve(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/dashboard/" {
			http.NotFound(w, r)
			return
		}
		writeJSON200(w, sampleDashboard())
	}))
	seedSession(t, dir, member)

	var buf bytes.Buffer
	exitCode := runStatus(context.Background(), &buf)

	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("Milk")) {
		t.Error("expected expiring item in output")
	}
}

func TestStatusCommand_SessionExpired(t *testing.T) {
	dir := isolate(t)
	serve(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Token is invalid or expired", "code": "token_not_valid"})
	}))
	fs := seedSession(t, dir, member)

	var buf bytes.Buffer
	exitCode := runStatus(context.Background(), &buf)

	if exitCode != exitReauth {
		t.Errorf("expected exit code 3, got %d: %s", exitCode, buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("grocery login")) {
		t.Errorf("expected login hint, got %q", buf.String())
	}
	if _, ok := fs.Get(session.KeyRefreshToken); ok {
		t.Error("expected session to be cleared after the refresh was rejected")
	}
}

func TestStatusCommand_ConnectionError(t *testing.T) {
	dir := isolate(t)
	apiURL = "http://localhost:99999"
	seedSession(t, dir, member)

	var buf bytes.Buffer
	exitCode := runStatus(context.Background(), &buf)

	if exitCode != exitUsage {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
}
