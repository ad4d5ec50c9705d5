package alert

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/alertkit/pkg/logger"
)

const (
	// DefaultRevealDelay gives the host time to attach the element before
	// "show" is toggled; without it the fade transition does not play.
	DefaultRevealDelay = 100 * time.Millisecond
	// DefaultFadeOut is how long the host waits between hiding and removing an element.
	DefaultFadeOut = 400 * time.Millisecond

	maxIDAttempts = 8
)

// Renderer turns a Config and Content into a Rendered alert.
type Renderer struct {
	registry    *Registry
	newID       IDGenerator
	observer    Observer
	logger      *slog.Logger
	revealDelay time.Duration
	fadeOut     time.Duration
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithIDGenerator replaces the identity generator.
func WithIDGenerator(gen IDGenerator) RendererOption {
	return func(r *Renderer) {
		if gen != nil {
			r.newID = gen
		}
	}
}

// WithObserver registers an Observer for render and eviction notifications.
func WithObserver(o Observer) RendererOption {
	return func(r *Renderer) {
		if o != nil {
			r.observer = o
		}
	}
}

// WithLogger sets the logger for the Renderer.
func WithLogger(l *slog.Logger) RendererOption {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithRevealDelay overrides DefaultRevealDelay.
func WithRevealDelay(d time.Duration) RendererOption {
	return func(r *Renderer) {
		if d >= 0 {
			r.revealDelay = d
		}
	}
}

// WithFadeOutDuration overrides DefaultFadeOut.
func WithFadeOutDuration(d time.Duration) RendererOption {
	return func(r *Renderer) {
		if d >= 0 {
			r.fadeOut = d
		}
	}
}

// NewRenderer creates a Renderer bound to reg. A nil reg gets a private registry.
func NewRenderer(reg *Registry, opts ...RendererOption) *Renderer {
	if reg == nil {
		reg = NewRegistry()
	}

	r := &Renderer{
		registry:    reg,
		newID:       NewID,
		observer:    NopObserver{},
		logger:      slog.Default(),
		revealDelay: DefaultRevealDelay,
		fadeOut:     DefaultFadeOut,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Registry returns the group registry the renderer admits into.
func (r *Renderer) Registry() *Registry {
	return r.registry
}

// Render builds the alert markup and its lifecycle requests. Eviction
// requests come first so the host removes old members before inserting.
// A nil cfg uses the built-in defaults and a nil content renders nothing inside.
func (r *Renderer) Render(cfg *Config, content *Content) *Rendered {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if content == nil {
		content = NewContent()
	}

	out := &Rendered{
		ID:          r.identity(),
		Classes:     classList(cfg),
		Background:  cfg.Background(),
		Dismissible: cfg.Dismissible(),
		FadeIn:      cfg.FadeIn(),
		content:     content.String(),
	}

	if cfg.Grouped() {
		out.GroupID = cfg.GroupID()
		out.MaxCount = cfg.MaxCount()

		for _, id := range r.registry.TryAdmit(out.ID, out.GroupID, out.MaxCount) {
			out.Requests = append(out.Requests, Request{Kind: RequestEvict, TargetID: id})
			r.observer.Evicted(id, out.GroupID)
			r.logger.LogAttrs(context.Background(), slog.LevelDebug, "alert evicted",
				logger.AlertID(id),
				logger.GroupID(out.GroupID),
				slog.Int("max_count", out.MaxCount),
			)
		}
	}

	out.Markup = compose(out, out.Classes)

	if cfg.FadeIn() {
		out.Requests = append(out.Requests, Request{
			Kind:     RequestReveal,
			TargetID: out.ID,
			Delay:    r.revealDelay,
		})
	}
	if cfg.Dismissible() && cfg.DestroyAfter() > 0 {
		out.Requests = append(out.Requests, Request{
			Kind:     RequestDestroy,
			TargetID: out.ID,
			Delay:    cfg.DestroyAfter(),
			FadeOut:  r.fadeOut,
		})
	}

	r.observer.Rendered(out)
	return out
}

// identity draws ids until one is not live in the registry.
func (r *Renderer) identity() string {
	id := r.newID()
	for i := 1; i < maxIDAttempts && r.registry.Contains(id); i++ {
		id = r.newID()
	}
	return id
}

func classList(cfg *Config) []string {
	classes := []string{"alert", "alert-" + cfg.Background().String()}
	if cfg.Dismissible() {
		classes = append(classes, "alert-dismissible")
	}
	if cfg.FadeIn() {
		classes = append(classes, "fade")
	}
	return appendUnique(classes, cfg.Classes()...)
}
