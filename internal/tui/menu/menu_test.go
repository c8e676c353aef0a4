// ABOUTME: Tests for the navigation menu
// ABOUTME: Validates route visibility per session and selection messages

package menu

import (
	"testing"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/models"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/session"
	tea "github.com/charmbracelet/bubbletea"
)

func memberState() session.State {
	return session.State{Status: session.Authenticated, User: &models.User{ID: 2, Username: "jane"}, Verified: true}
}

func adminState(verified bool) session.State {
	return session.State{Status: session.Authenticated, User: &models.User{ID: 1, Username: "root", IsAdmin: true}, Verified: verified}
}

func contains(paths []string, want string) bool {
	for _, p := range paths {
		if p == want {
			return true
		}
	}
	return false
}

func TestMenuOptions(t *testing.T) {
	tests := []struct {
		name      string
		state     session.State
		count     int
		wantAdmin bool
	}{
		{"anonymous", session.State{}, 0, false},
		{"member", memberState(), 7, false},
		{"unverified admin", adminState(false), 7, false},
		{"verified admin", adminState(true), 12, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(tt.state, "/")
			paths := m.Options()
			if len(paths) != tt.count {
				t.Errorf("expected %d options, got %d: %v", tt.count, len(paths), paths)
			}
			if contains(paths, "/admin/users") != tt.wantAdmin {
				t.Errorf("expected admin listed=%v, got %v", tt.wantAdmin, paths)
			}
			if contains(paths, "/login") {
				t.Error("expected public routes to be left out")
			}
		})
	}
}

func TestMenuPreselectsCurrent(t *testing.T) {
	m := New(memberState(), "/recipes/")
	if m.Selected() != "/recipes" {
		t.Errorf("expected /recipes preselected, got %s", m.Selected())
	}

	m = New(memberState(), "/admin/users")
	if m.Selected() != "/" {
		t.Errorf("expected home when current is not listed, got %s", m.Selected())
	}
}

func TestMenuEscCancels(t *testing.T) {
	m := New(memberState(), "/")
	m.Init()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected cancel command")
	}
	if _, ok := cmd().(CancelledMsg); !ok {
		t.Errorf("expected CancelledMsg, got %T", cmd())
	}
}

func TestMenuFirstOptionIsDashboard(t *testing.T) {
	m := New(memberState(), "/")
	if paths := m.Options(); len(paths) == 0 || paths[0] != "/" {
		t.Errorf("expected dashboard first, got %v", paths)
	}
}
