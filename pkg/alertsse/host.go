package alertsse

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/alertkit/pkg/alert"
	"github.com/dmitrymomot/alertkit/pkg/logger"
	"github.com/dmitrymomot/alertkit/pkg/timer"
)

// shownAlert is an alert this host appended to its page.
type shownAlert struct {
	rendered *alert.Rendered
	// closing is set once a removal is scheduled, by auto-destroy or dismissal.
	closing bool
	// held alerts keep Wait blocked until they are destroyed.
	held bool
}

// Host executes rendered alerts through a Patcher.
//
// A grouped alert without auto-destroy can only leave the page through
// eviction or dismissal, so the host holds it: Wait does not return until
// it is destroyed. When the host closes, every alert still on its page
// without a pending removal is destroyed, releasing its group slot.
type Host struct {
	patcher   Patcher
	tracker   *alert.Tracker
	scheduler timer.Scheduler
	pages     *Pages
	logger    *slog.Logger
	fadeOut   time.Duration

	shown   map[string]*shownAlert
	mu      sync.Mutex
	pending sync.WaitGroup

	closed  bool
	patchMu sync.Mutex
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithHostLogger sets the logger for the Host.
func WithHostLogger(l *slog.Logger) HostOption {
	return func(h *Host) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithDismissFadeOut sets the fade-out used by Dismiss. Defaults to alert.DefaultFadeOut.
func WithDismissFadeOut(d time.Duration) HostOption {
	return func(h *Host) {
		if d >= 0 {
			h.fadeOut = d
		}
	}
}

// WithPages shares an ownership index with other hosts on the same tracker.
func WithPages(p *Pages) HostOption {
	return func(h *Host) {
		h.pages = p
	}
}

// NewHost creates a Host. A nil tracker gets a private one.
func NewHost(p Patcher, tracker *alert.Tracker, scheduler timer.Scheduler, opts ...HostOption) *Host {
	if tracker == nil {
		tracker = alert.NewTracker(nil)
	}
	h := &Host{
		patcher:   p,
		tracker:   tracker,
		scheduler: scheduler,
		logger:    slog.Default(),
		fadeOut:   alert.DefaultFadeOut,
		shown:     make(map[string]*shownAlert),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Show removes evicted group members, appends the alert and schedules its
// reveal and destroy requests. An alert evicted before it could be shown is
// skipped.
func (h *Host) Show(ctx context.Context, r *alert.Rendered) error {
	for _, req := range r.Evictions() {
		if owner, ok := h.pages.owner(req.TargetID, h); ok {
			owner.evict(ctx, req.TargetID)
			continue
		}
		if err := h.patch(func() error { return h.patcher.Remove(ctx, req.TargetID) }); err != nil {
			return err
		}
		h.fire(req.TargetID, alert.EventDestroy)
		h.settle(req.TargetID)
	}

	s := &shownAlert{
		rendered: r,
		closing:  r.AutoDestroy(),
		held:     r.Grouped() && !r.AutoDestroy(),
	}

	// Claim before Track: a racing eviction either finds this host and
	// waits for the append, or Track refuses the alert.
	h.patchMu.Lock()
	h.pages.claim(r.ID, h)
	if !h.tracker.Track(r) {
		h.pages.release(r.ID, h)
		h.patchMu.Unlock()
		h.logger.LogAttrs(ctx, slog.LevelDebug, "alert evicted before shown",
			logger.AlertID(r.ID),
			logger.GroupID(r.GroupID),
		)
		return nil
	}
	if s.held {
		h.pending.Add(1)
	}
	h.mu.Lock()
	h.shown[r.ID] = s
	h.mu.Unlock()

	var err error
	if !h.closed {
		err = h.patcher.Append(ctx, r.ID, r.Markup)
	}
	h.patchMu.Unlock()

	if err != nil {
		h.fire(r.ID, alert.EventDestroy)
		h.settle(r.ID)
		return err
	}

	cbCtx := context.WithoutCancel(ctx)
	for _, req := range r.Requests {
		switch req.Kind {
		case alert.RequestReveal:
			h.schedule(req.Delay, func() { h.reveal(cbCtx, r) })
		case alert.RequestDestroy:
			fade := req.FadeOut
			h.schedule(req.Delay, func() { h.dismiss(cbCtx, r.ID, fade) })
		}
	}
	return nil
}

// Dismiss fades id out and removes it. An alert shown by another host on
// the same Pages is dismissed on that host's page. An id the tracker no
// longer knows is removed from this page right away.
func (h *Host) Dismiss(ctx context.Context, id string) {
	if owner, ok := h.pages.owner(id, h); ok {
		owner.Dismiss(ctx, id)
		return
	}
	h.dismiss(context.WithoutCancel(ctx), id, h.fadeOut)
}

// Wait blocks until every callback scheduled by this host has run and every
// held alert is destroyed, or ctx is done.
func (h *Host) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		h.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops all further patches. Alerts with a pending removal still run
// their callbacks and keep the tracker current; every other alert this host
// showed is destroyed, since nothing can reach it once the page is gone.
func (h *Host) Close() {
	h.patchMu.Lock()
	h.closed = true
	h.patchMu.Unlock()

	h.pages.releaseHost(h)

	h.mu.Lock()
	var orphans []string
	for id, s := range h.shown {
		if !s.closing {
			orphans = append(orphans, id)
		}
	}
	h.mu.Unlock()

	for _, id := range orphans {
		h.fire(id, alert.EventDestroy)
		h.settle(id)
	}
}

// evict removes id from this host's page on behalf of another host.
func (h *Host) evict(ctx context.Context, id string) {
	if err := h.patch(func() error { return h.patcher.Remove(ctx, id) }); err != nil {
		h.patchFailed(ctx, id, "evict", err)
	}
	h.fire(id, alert.EventDestroy)
	h.settle(id)
}

func (h *Host) patch(fn func() error) error {
	h.patchMu.Lock()
	defer h.patchMu.Unlock()
	if h.closed {
		return nil
	}
	return fn()
}

func (h *Host) reveal(ctx context.Context, r *alert.Rendered) {
	if !h.fire(r.ID, alert.EventReveal) {
		return
	}
	if err := h.patch(func() error { return h.patcher.Replace(ctx, r.ID, r.RevealedMarkup()) }); err != nil {
		h.patchFailed(ctx, r.ID, "reveal", err)
	}
}

func (h *Host) dismiss(ctx context.Context, id string, fade time.Duration) {
	_, err := h.tracker.Fire(id, alert.EventDismiss)
	if errors.Is(err, alert.ErrUnknownAlert) {
		h.skipped(id, alert.EventDismiss, err)
		if err := h.patch(func() error { return h.patcher.Remove(ctx, id) }); err != nil {
			h.patchFailed(ctx, id, "remove", err)
		}
		h.settle(id)
		return
	}
	if err != nil {
		h.skipped(id, alert.EventDismiss, err)
		return
	}

	h.mu.Lock()
	s, ok := h.shown[id]
	if ok {
		s.closing = true
	}
	h.mu.Unlock()
	if ok {
		if err := h.patch(func() error { return h.patcher.Replace(ctx, id, s.rendered.Markup) }); err != nil {
			h.patchFailed(ctx, id, "fade_out", err)
		}
	}

	h.schedule(fade, func() {
		if err := h.patch(func() error { return h.patcher.Remove(ctx, id) }); err != nil {
			h.patchFailed(ctx, id, "remove", err)
		}
		h.fire(id, alert.EventDestroy)
		h.settle(id)
	})
}

// fire applies ev and reports whether the transition happened.
func (h *Host) fire(id string, ev alert.Event) bool {
	_, err := h.tracker.Fire(id, ev)
	if err == nil {
		return true
	}
	h.skipped(id, ev, err)
	return false
}

func (h *Host) skipped(id string, ev alert.Event, err error) {
	level := slog.LevelWarn
	if errors.Is(err, alert.ErrUnknownAlert) || alert.IsNoTransition(err) {
		level = slog.LevelDebug
	}
	h.logger.LogAttrs(context.Background(), level, "alert request skipped",
		logger.AlertID(id),
		logger.Event(string(ev)),
		logger.Error(err),
	)
}

func (h *Host) schedule(delay time.Duration, fn func()) {
	h.pending.Add(1)
	h.scheduler.ScheduleAfter(delay, func() {
		defer h.pending.Done()
		fn()
	})
}

// settle forgets a destroyed alert and releases its ownership.
func (h *Host) settle(id string) {
	h.mu.Lock()
	s, ok := h.shown[id]
	delete(h.shown, id)
	h.mu.Unlock()

	h.pages.release(id, h)
	if ok && s.held {
		h.pending.Done()
	}
}

func (h *Host) patchFailed(ctx context.Context, id, op string, err error) {
	h.logger.LogAttrs(ctx, slog.LevelWarn, "alert patch failed",
		logger.AlertID(id),
		slog.String("op", op),
		logger.Error(err),
	)
}
