// ABOUTME: Remembers the accounts recently used to log in on this machine
// ABOUTME: Stored as JSON in the state directory and offered on the login form

package recentusers

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// MaxRecentUsers is the maximum number of usernames to keep
const MaxRecentUsers = 5

// RecentUsers manages the list of recently used usernames, newest first
type RecentUsers struct {
	stateDir string
	users    []string
}

type recentData struct {
	Users []string `json:"users"`
}

// New creates a RecentUsers manager over stateDir
func New(stateDir string) *RecentUsers {
	return &RecentUsers{stateDir: stateDir}
}

func (r *RecentUsers) file() string {
	return filepath.Join(r.stateDir, "recent-users.json")
}

// Load reads the list from disk. A missing or corrupt file is an empty list.
func (r *RecentUsers) Load() ([]string, error) {
	data, err := os.ReadFile(r.file())
	if os.IsNotExist(err) {
		r.users = []string{}
		return r.users, nil
	}
	if err != nil {
		return nil, err
	}

	var recent recentData
	if err := json.Unmarshal(data, &recent); err != nil {
		r.users = []string{}
		return r.users, nil
	}

	r.users = make([]string, 0, len(recent.Users))
	for _, u := range recent.Users {
		if u = strings.TrimSpace(u); u != "" {
			r.users = append(r.users, u)
		}
	}
	return r.users, nil
}

// Save writes users to disk, trimmed to MaxRecentUsers
func (r *RecentUsers) Save(users []string) error {
	if err := os.MkdirAll(r.stateDir, 0700); err != nil {
		return err
	}
	if len(users) > MaxRecentUsers {
		users = users[:MaxRecentUsers]
	}
	r.users = users

	data, err := json.MarshalIndent(recentData{Users: users}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.file(), data, 0600)
}

// Add moves username to the front of the list
func (r *RecentUsers) Add(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil
	}
	if r.users == nil {
		if _, err := r.Load(); err != nil {
			r.users = []string{}
		}
	}

	users := make([]string, 0, len(r.users)+1)
	users = append(users, username)
	for _, u := range r.users {
		if u != username {
			users = append(users, u)
		}
	}
	return r.Save(users)
}

// List returns the usernames, newest first
func (r *RecentUsers) List() []string {
	if r.users == nil {
		r.Load()
	}
	return r.users
}

// Last returns the most recent username, or ""
func (r *RecentUsers) Last() string {
	if users := r.List(); len(users) > 0 {
		return users[0]
	}
	return ""
}
