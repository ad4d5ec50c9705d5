package alert

import (
	"fmt"
	"sync"
)

// State is the lifecycle state of a tracked alert.
type State string

const (
	StatePending   State = "pending"
	StateRevealed  State = "revealed"
	StateDismissed State = "dismissed"
	StateDestroyed State = "destroyed"
)

// Event moves an alert between states.
type Event string

const (
	EventReveal  Event = "reveal"
	EventDismiss Event = "dismiss"
	EventDestroy Event = "destroy"
)

// transitions is indexed by [from][event]. Destroyed has no outgoing edges.
var transitions = map[State]map[Event]State{
	StatePending: {
		EventReveal:  StateRevealed,
		EventDismiss: StateDismissed,
		EventDestroy: StateDestroyed,
	},
	StateRevealed: {
		EventDismiss: StateDismissed,
		EventDestroy: StateDestroyed,
	},
	StateDismissed: {
		EventDestroy: StateDestroyed,
	},
}

// Tracker holds the lifecycle state of every live alert. Reaching
// StateDestroyed releases the alert from the registry and forgets it.
type Tracker struct {
	registry *Registry
	observer Observer
	states   map[string]State
	mu       sync.Mutex
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithTrackerObserver notifies o when an alert is tracked and when it is destroyed.
func WithTrackerObserver(o Observer) TrackerOption {
	return func(t *Tracker) {
		if o != nil {
			t.observer = o
		}
	}
}

// NewTracker creates a Tracker releasing into reg. A nil reg gets a private registry.
func NewTracker(reg *Registry, opts ...TrackerOption) *Tracker {
	if reg == nil {
		reg = NewRegistry()
	}
	t := &Tracker{
		registry: reg,
		observer: NopObserver{},
		states:   make(map[string]State),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Track starts tracking r in StatePending and reports whether r is tracked.
// Tracking a known id is a no-op. A grouped alert that was already evicted
// from the registry is refused, so it never reaches a page.
func (t *Tracker) Track(r *Rendered) bool {
	if r.Grouped() && !t.registry.Contains(r.ID) {
		return false
	}

	t.mu.Lock()
	_, known := t.states[r.ID]
	if !known {
		t.states[r.ID] = StatePending
	}
	t.mu.Unlock()

	if !known {
		t.observer.Tracked(r.ID)
	}
	return true
}

// State returns the current state of id.
func (t *Tracker) State(id string) (State, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.states[id]
	return s, ok
}

// Len returns the number of tracked alerts.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.states)
}

// Fire applies event to id and returns the new state.
// It returns ErrUnknownAlert for untracked ids and *ErrNoTransition when
// the event is not allowed from the current state.
func (t *Tracker) Fire(id string, event Event) (State, error) {
	t.mu.Lock()
	from, ok := t.states[id]
	if !ok {
		t.mu.Unlock()
		return "", fmt.Errorf("%w: %s", ErrUnknownAlert, id)
	}

	to, ok := transitions[from][event]
	if !ok {
		t.mu.Unlock()
		return from, &ErrNoTransition{ID: id, State: from, Event: event}
	}

	if to != StateDestroyed {
		t.states[id] = to
		t.mu.Unlock()
		return to, nil
	}

	delete(t.states, id)
	t.mu.Unlock()

	t.registry.Release(id)
	t.observer.Destroyed(id)
	return to, nil
}
