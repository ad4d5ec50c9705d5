package alert

// Observer receives alert lifecycle notifications, typically for metrics.
type Observer interface {
	Rendered(r *Rendered)
	Evicted(id, groupID string)
	Tracked(id string)
	Destroyed(id string)
}

// NopObserver ignores every notification.
type NopObserver struct{}

func (NopObserver) Rendered(*Rendered)     {}
func (NopObserver) Evicted(string, string) {}
func (NopObserver) Tracked(string)         {}
func (NopObserver) Destroyed(string)       {}
