// ABOUTME: In-process request metrics for the system performance screen
// ABOUTME: Keeps counters and a bounded window of recent latencies

package client

import (
	"sort"
	"sync"
	"time"
)

// latencyWindow is how many recent requests feed percentiles and sparklines
const latencyWindow = 60

// Metrics accumulates request outcomes recorded by the transport
type Metrics struct {
	mu        sync.Mutex
	started   time.Time
	requests  int
	failures  int
	latencies []time.Duration
	statuses  map[int]int
}

// NewMetrics creates an empty recorder
func NewMetrics() *Metrics {
	return &Metrics{
		started:  time.Now(),
		statuses: make(map[int]int),
	}
}

// Record adds one request. status is 0 for transport failures.
func (m *Metrics) Record(status int, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests++
	if status == 0 || status >= 500 {
		m.failures++
	}
	m.statuses[status]++
	m.latencies = append(m.latencies, d)
	if len(m.latencies) > latencyWindow {
		m.latencies = m.latencies[len(m.latencies)-latencyWindow:]
	}
}

// MetricsSnapshot is a point-in-time copy safe to render
type MetricsSnapshot struct {
	Since     time.Time
	Requests  int
	Failures  int
	ErrorRate float64 // percent
	P50       time.Duration
	P95       time.Duration
	Last      time.Duration
	// LatencyMillis is the recent window, oldest first
	LatencyMillis []float64
	Statuses      map[int]int
}

// Snapshot copies the current counters
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := MetricsSnapshot{
		Since:         m.started,
		Requests:      m.requests,
		Failures:      m.failures,
		LatencyMillis: make([]float64, len(m.latencies)),
		Statuses:      make(map[int]int, len(m.statuses)),
	}
	for k, v := range m.statuses {
		snap.Statuses[k] = v
	}
	if m.requests > 0 {
		snap.ErrorRate = float64(m.failures) / float64(m.requests) * 100
	}
	for i, d := range m.latencies {
		snap.LatencyMillis[i] = float64(d.Microseconds()) / 1000
	}
	if n := len(m.latencies); n > 0 {
		snap.Last = m.latencies[n-1]
		sorted := append([]time.Duration(nil), m.latencies...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
		snap.P50 = percentile(sorted, 50)
		snap.P95 = percentile(sorted, 95)
	}
	return snap
}

// percentile uses nearest-rank over an ascending slice
func percentile(sorted []time.Duration, p int) time.Duration {
	rank := (p*len(sorted) + 99) / 100
	if rank < 1 {
		rank = 1
	}
	return sorted[rank-1]
}
