// ABOUTME: Shared fakes for client tests
// ABOUTME: In-memory token store and a fixed clock

package client

import (
	"sync"
	"time"
)

// memTokens is a TokenStore that records how often it was cleared
type memTokens struct {
	mu      sync.Mutex
	access  string
	refresh string
	cleared int
}

func (m *memTokens) Tokens() (string, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.access, m.refresh
}

func (m *memTokens) UpdateTokens(access, refresh string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access = access
	if refresh != "" {
		m.refresh = refresh
	}
	return nil
}

func (m *memTokens) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access, m.refresh = "", ""
	m.cleared++
	return nil
}

func (m *memTokens) clearedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cleared
}

var testNow = time.Date(2026, 3, 10, 15, 30, 0, 0, time.Local)

func fixedClock() time.Time { return testNow }
