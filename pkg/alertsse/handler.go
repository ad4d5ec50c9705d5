package alertsse

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/alertkit/pkg/alert"
	"github.com/dmitrymomot/alertkit/pkg/logger"
	"github.com/dmitrymomot/alertkit/pkg/timer"
)

const (
	// RequestsHeader carries the lifecycle requests of a plain HTML response as JSON.
	RequestsHeader = "X-Alert-Requests"

	maxBodySize = 1 << 20
	// streamSlack is added to a stream's expected lifetime for its write deadline.
	streamSlack = 5 * time.Second
)

// ShowRequest is the body accepted by POST.
type ShowRequest struct {
	Preset  string          `json:"preset,omitempty"`
	Config  alert.Overrides `json:"config"`
	Content []alert.Block   `json:"content"`
}

// Handler serves alerts over HTTP.
type Handler struct {
	renderer  *alert.Renderer
	tracker   *alert.Tracker
	scheduler timer.Scheduler
	pages     *Pages
	defaults  alert.Defaults
	presets   alert.Presets
	logger    *slog.Logger
	target    string
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithDefaults sets the baseline configuration. Defaults to alert.DefaultDefaults().
func WithDefaults(d alert.Defaults) HandlerOption {
	return func(h *Handler) {
		h.defaults = d
	}
}

// WithPresets sets the named presets a request can refer to.
func WithPresets(p alert.Presets) HandlerOption {
	return func(h *Handler) {
		h.presets = p
	}
}

// WithHandlerLogger sets the logger for the Handler and the hosts it creates.
func WithHandlerLogger(l *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithTarget sets the selector of the alert container.
func WithTarget(selector string) HandlerOption {
	return func(h *Handler) {
		if selector != "" {
			h.target = selector
		}
	}
}

// NewHandler creates a Handler. The tracker should release into the
// renderer's registry.
func NewHandler(renderer *alert.Renderer, tracker *alert.Tracker, scheduler timer.Scheduler, opts ...HandlerOption) *Handler {
	h := &Handler{
		renderer:  renderer,
		tracker:   tracker,
		scheduler: scheduler,
		pages:     NewPages(),
		defaults:  alert.DefaultDefaults(),
		logger:    slog.Default(),
		target:    DefaultTarget,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Pages returns the index of alerts currently shown over this handler's streams.
func (h *Handler) Pages() *Pages {
	return h.pages
}

// Routes returns the alert routes, meant to be mounted under a prefix.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.show)
	r.Delete("/{id}", h.dismiss)
	return r
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	var req ShowRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req); err != nil {
		h.logger.LogAttrs(r.Context(), slog.LevelDebug, "alert request rejected", logger.Error(err))
		http.Error(w, fmt.Errorf("%w: %v", ErrMalformedRequest, err).Error(), http.StatusBadRequest)
		return
	}

	cfg := h.presets.Config(req.Preset, h.defaults, req.Config.Options()...)
	content := alert.NewContent()
	content.Apply(req.Content...)
	out := h.renderer.Render(cfg, content)

	if IsDataStar(r) {
		h.stream(w, r, showDeadline(time.Now(), out), func(host *Host) error { return host.Show(r.Context(), out) })
		return
	}

	// The client runs the requests itself. Only grouped alerts are tracked,
	// so DELETE can free their slot; the group cap bounds them.
	for _, ev := range out.Evictions() {
		h.destroy(r.Context(), ev.TargetID)
	}
	if out.Grouped() {
		h.tracker.Track(out)
	}

	requests, err := json.Marshal(out.Requests)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set(RequestsHeader, string(requests))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := out.Render(r.Context(), w); err != nil {
		h.logger.LogAttrs(r.Context(), slog.LevelWarn, "failed to write alert", logger.AlertID(out.ID), logger.Error(err))
	}
}

func (h *Handler) dismiss(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if IsDataStar(r) {
		deadline := time.Now().Add(alert.DefaultFadeOut + streamSlack)
		h.stream(w, r, deadline, func(host *Host) error {
			host.Dismiss(r.Context(), id)
			return nil
		})
		return
	}

	h.destroy(r.Context(), id)
	w.WriteHeader(http.StatusNoContent)
}

// destroy removes id from the page showing it, if any, and destroys it.
func (h *Handler) destroy(ctx context.Context, id string) {
	if owner, ok := h.pages.owner(id, nil); ok {
		owner.evict(ctx, id)
		return
	}
	if _, err := h.tracker.Fire(id, alert.EventDestroy); err != nil {
		h.logger.LogAttrs(ctx, slog.LevelDebug, "alert destroy skipped", logger.AlertID(id), logger.Error(err))
	}
}

// stream opens SSE, runs fn on a fresh host and keeps the connection open
// until the host is done or the client goes away. A zero deadline clears
// the server's write timeout for the stream.
func (h *Handler) stream(w http.ResponseWriter, r *http.Request, deadline time.Time, fn func(*Host) error) {
	if err := http.NewResponseController(w).SetWriteDeadline(deadline); err != nil {
		h.logger.LogAttrs(r.Context(), slog.LevelDebug, "stream write deadline not set", logger.Error(err))
	}

	sse := datastar.NewSSE(w, r)
	host := NewHost(NewSSEPatcher(sse, h.target), h.tracker, h.scheduler,
		WithHostLogger(h.logger),
		WithPages(h.pages),
	)
	defer host.Close()

	if err := fn(host); err != nil {
		h.logger.LogAttrs(r.Context(), slog.LevelWarn, "alert stream failed", logger.Error(err))
		return
	}
	if err := host.Wait(r.Context()); err != nil {
		h.logger.LogAttrs(r.Context(), slog.LevelDebug, "alert stream closed early", logger.Error(err))
	}
}

// showDeadline bounds a Show stream by the alert's lifetime. Held alerts
// end with eviction, dismissal or the client, so they get no deadline.
func showDeadline(now time.Time, r *alert.Rendered) time.Time {
	if r.Grouped() && !r.AutoDestroy() {
		return time.Time{}
	}
	d := r.Lifetime()
	if d > math.MaxInt64-streamSlack {
		return time.Time{}
	}
	return now.Add(d + streamSlack)
}

// IsDataStar reports whether r expects a datastar SSE response.
func IsDataStar(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "text/event-stream") {
		return true
	}
	if r.URL.Query().Has("datastar") {
		return true
	}
	return strings.Contains(r.Header.Get("Content-Type"), "application/x-datastar")
}
