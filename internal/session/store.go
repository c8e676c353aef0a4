// ABOUTME: Session store holding tokens and the current user record
// ABOUTME: Rehydrates from storage on every Load and is the single writer of session state

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/models"
)

// Persisted keys. All three must be present for a session to count as authenticated.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyCurrentUser  = "current_user"
)

// ErrNoAuthenticator is returned when the store has no backend attached
var ErrNoAuthenticator = errors.New("session store has no authenticator attached")

// Status is the authentication state of a session
type Status int

const (
	Anonymous Status = iota
	Authenticated
	Unauthenticated // a login attempt failed
)

func (s Status) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return "anonymous"
	}
}

// State is a snapshot of the session. User is non-nil only when Authenticated.
type State struct {
	Status Status
	User   *models.User
	// Verified is true once this process has confirmed the user record
	// with the server (at login or via Verify).
	Verified bool
	// Reason explains an Unauthenticated result
	Reason string
}

// IsAuthenticated reports whether the session carries a user
func (s State) IsAuthenticated() bool {
	return s.Status == Authenticated && s.User != nil
}

// IsAdmin reports server-verified admin status
func (s State) IsAdmin() bool {
	return s.IsAuthenticated() && s.Verified && s.User.IsAdmin
}

// Authenticator is the backend side of the session lifecycle
type Authenticator interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	CurrentUser(ctx context.Context) (*models.User, error)
}

// Store owns the persisted session. Only the store and the client's token
// refresh path write to it.
type Store struct {
	storage Storage
	auth    Authenticator

	mu             sync.Mutex
	verifiedUserID int
	onClear        []func()
}

// New creates a store over storage
func New(storage Storage) *Store {
	return &Store{storage: storage}
}

// Attach sets the backend used by Login, Logout and Verify
func (s *Store) Attach(auth Authenticator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth = auth
}

// OnClear registers fn to run after the session is cleared
func (s *Store) OnClear(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onClear = append(s.onClear, fn)
}

// Load reads persisted state without a network call
func (s *Store) Load() State {
	access, okA := s.storage.Get(KeyAccessToken)
	refresh, okR := s.storage.Get(KeyRefreshToken)
	raw, okU := s.storage.Get(KeyCurrentUser)
	if !okA || !okR || !okU || access == "" || refresh == "" {
		return State{Status: Anonymous}
	}

	user, err := decodeUser(raw)
	if err != nil {
		slog.Warn("Discarding persisted user record", "error", err)
		return State{Status: Anonymous}
	}

	s.mu.Lock()
	verified := s.verifiedUserID == user.ID
	s.mu.Unlock()

	return State{Status: Authenticated, User: user, Verified: verified}
}

// Login authenticates against the backend and persists the session. It
// never returns an error; failures come back as Unauthenticated.
func (s *Store) Login(ctx context.Context, username, password string) State {
	auth := s.authenticator()
	if auth == nil {
		return State{Status: Unauthenticated, Reason: ErrNoAuthenticator.Error()}
	}

	resp, err := auth.Login(ctx, models.LoginRequest{Username: username, Password: password})
	if err != nil {
		slog.Info("Login failed", "username", models.SanitizeForLog(username), "error", err)
		return State{Status: Unauthenticated, Reason: err.Error()}
	}
	if resp.Access == "" || resp.Refresh == "" || !resp.User.Valid() {
		return State{Status: Unauthenticated, Reason: "login response is missing tokens or user"}
	}

	if err := s.persist(resp.Access, resp.Refresh, &resp.User); err != nil {
		slog.Error("Failed to persist session", "error", err)
		return State{Status: Unauthenticated, Reason: err.Error()}
	}

	s.mu.Lock()
	s.verifiedUserID = resp.User.ID
	s.mu.Unlock()

	slog.Info("Logged in", "username", models.SanitizeForLog(resp.User.Username), "admin", resp.User.IsAdmin)
	user := resp.User
	return State{Status: Authenticated, User: &user, Verified: true}
}

// Logout blacklists the refresh token on a best-effort basis and then
// clears local state unconditionally. Safe to call repeatedly.
func (s *Store) Logout(ctx context.Context) error {
	refresh, ok := s.storage.Get(KeyRefreshToken)
	if auth := s.authenticator(); auth != nil && ok && refresh != "" {
		if err := auth.Logout(ctx, refresh); err != nil {
			slog.Debug("Server logout failed, clearing local session anyway", "error", err)
		}
	}
	return s.Clear()
}

// Verify re-reads the current user from the server, persists it and marks
// the session verified for this process.
func (s *Store) Verify(ctx context.Context) (State, error) {
	state := s.Load()
	if !state.IsAuthenticated() {
		return state, nil
	}
	auth := s.authenticator()
	if auth == nil {
		return state, ErrNoAuthenticator
	}

	user, err := auth.CurrentUser(ctx)
	if err != nil {
		return s.Load(), fmt.Errorf("failed to verify session: %w", err)
	}
	if !user.Valid() {
		return state, fmt.Errorf("failed to verify session: server returned an incomplete user")
	}

	// The session may have been cleared by a failed refresh meanwhile
	if !s.Load().IsAuthenticated() {
		return s.Load(), nil
	}
	if err := s.saveUser(user); err != nil {
		return state, err
	}

	s.mu.Lock()
	s.verifiedUserID = user.ID
	s.mu.Unlock()

	return State{Status: Authenticated, User: user, Verified: true}, nil
}

// SetUser replaces the persisted user record after a profile update
func (s *Store) SetUser(user *models.User) error {
	if !s.Load().IsAuthenticated() {
		return nil
	}
	return s.saveUser(user)
}

// Tokens returns the persisted access and refresh tokens
func (s *Store) Tokens() (access, refresh string) {
	access, _ = s.storage.Get(KeyAccessToken)
	refresh, _ = s.storage.Get(KeyRefreshToken)
	return access, refresh
}

// UpdateTokens stores a refreshed access token (and a rotated refresh
// token when the server sends one). Ignored if the session was cleared.
func (s *Store) UpdateTokens(access, refresh string) error {
	if _, ok := s.storage.Get(KeyRefreshToken); !ok {
		return nil
	}
	if err := s.storage.Set(KeyAccessToken, access); err != nil {
		return fmt.Errorf("failed to store access token: %w", err)
	}
	if refresh != "" {
		if err := s.storage.Set(KeyRefreshToken, refresh); err != nil {
			return fmt.Errorf("failed to store refresh token: %w", err)
		}
	}
	return nil
}

// Clear removes all persisted session keys
func (s *Store) Clear() error {
	err := s.storage.Delete(KeyAccessToken, KeyRefreshToken, KeyCurrentUser)

	s.mu.Lock()
	s.verifiedUserID = 0
	hooks := append([]func(){}, s.onClear...)
	s.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (s *Store) authenticator() Authenticator {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.auth
}

func (s *Store) persist(access, refresh string, user *models.User) error {
	if err := s.storage.Set(KeyAccessToken, access); err != nil {
		return fmt.Errorf("failed to store access token: %w", err)
	}
	if err := s.storage.Set(KeyRefreshToken, refresh); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return s.saveUser(user)
}

func (s *Store) saveUser(user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.storage.Set(KeyCurrentUser, string(data)); err != nil {
		return fmt.Errorf("failed to store user: %w", err)
	}
	return nil
}

// decodeUser is the parse-and-validate boundary for the persisted record
func decodeUser(raw string) (*models.User, error) {
	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("malformed user record: %w", err)
	}
	if !user.Valid() {
		return nil, errors.New("user record has no identity")
	}
	return &user, nil
}
