package timer

import (
	"sync"
	"time"
)

type manualTimer struct {
	at  time.Duration
	seq int
	fn  func()
}

// Manual is a deterministic Scheduler driven by Advance. Callbacks run on
// the goroutine calling Advance, ordered by due time and then by the order
// they were scheduled.
type Manual struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []manualTimer
}

// NewManual creates a Manual clock at virtual time zero.
func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) ScheduleAfter(delay time.Duration, fn func()) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	m.timers = append(m.timers, manualTimer{at: m.now + max(delay, 0), seq: m.seq, fn: fn})
}

// Advance moves the clock forward by d and runs every callback that becomes
// due, including callbacks scheduled by other callbacks within the window.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + max(d, 0)
	for {
		idx := m.next(target)
		if idx < 0 {
			break
		}
		t := m.timers[idx]
		m.timers = append(m.timers[:idx], m.timers[idx+1:]...)
		m.now = t.at

		m.mu.Unlock()
		t.fn()
		m.mu.Lock()
	}
	m.now = target
	m.mu.Unlock()
}

// next returns the index of the earliest timer due at or before target, or -1.
// Must be called with lock held.
func (m *Manual) next(target time.Duration) int {
	idx := -1
	for i, t := range m.timers {
		if t.at > target {
			continue
		}
		if idx < 0 || t.at < m.timers[idx].at || (t.at == m.timers[idx].at && t.seq < m.timers[idx].seq) {
			idx = i
		}
	}
	return idx
}

// Pending returns the number of callbacks not yet run.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

// Now returns the virtual time elapsed since creation.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}
