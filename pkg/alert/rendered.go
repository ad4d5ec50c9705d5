package alert

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
)

// RequestKind names a deferred action the host is asked to perform.
type RequestKind string

const (
	// RequestEvict asks the host to remove an older group member right away.
	RequestEvict RequestKind = "evict"
	// RequestReveal asks the host to add the "show" class once the element is attached.
	RequestReveal RequestKind = "reveal"
	// RequestDestroy asks the host to fade the element out and remove it.
	RequestDestroy RequestKind = "destroy"
)

// Request is a lifecycle request produced by Render.
type Request struct {
	Kind     RequestKind
	TargetID string
	Delay    time.Duration
	FadeOut  time.Duration // destroy only
}

// MarshalJSON encodes durations as milliseconds.
func (r Request) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind      RequestKind `json:"kind"`
		TargetID  string      `json:"target"`
		DelayMS   int64       `json:"delay_ms"`
		FadeOutMS int64       `json:"fade_out_ms,omitempty"`
	}{r.Kind, r.TargetID, r.Delay.Milliseconds(), r.FadeOut.Milliseconds()})
}

// Rendered is the output of a render: identity, classes, markup and the
// lifecycle requests the host should execute.
type Rendered struct {
	ID          string
	Classes     []string
	Markup      string
	Requests    []Request
	Background  Color
	GroupID     string
	MaxCount    int
	Dismissible bool
	FadeIn      bool

	content string
}

// Grouped reports whether the alert counts against a group cap.
func (r *Rendered) Grouped() bool {
	return r.GroupID != "" && r.MaxCount > 0
}

// AutoDestroy reports whether the alert carries a destroy request.
func (r *Rendered) AutoDestroy() bool {
	_, ok := r.FirstRequest(RequestDestroy)
	return ok
}

// Lifetime is the time from insertion until the last request completes,
// saturating at the largest Duration.
func (r *Rendered) Lifetime() time.Duration {
	var d time.Duration
	for _, req := range r.Requests {
		if req.Delay > math.MaxInt64-req.FadeOut {
			return time.Duration(math.MaxInt64)
		}
		d = max(d, req.Delay+req.FadeOut)
	}
	return d
}

// Evictions returns the eviction requests, in the order they must run.
func (r *Rendered) Evictions() []Request {
	return r.requests(RequestEvict)
}

// FirstRequest returns the first request of the given kind.
func (r *Rendered) FirstRequest(kind RequestKind) (Request, bool) {
	if reqs := r.requests(kind); len(reqs) > 0 {
		return reqs[0], true
	}
	return Request{}, false
}

func (r *Rendered) requests(kind RequestKind) []Request {
	var out []Request
	for _, req := range r.Requests {
		if req.Kind == kind {
			out = append(out, req)
		}
	}
	return out
}

// RevealedMarkup is the markup in its visible state.
func (r *Rendered) RevealedMarkup() string {
	return compose(r, appendUnique(append([]string(nil), r.Classes...), "show"))
}

// Render writes the markup, so a Rendered can be used as a templ component.
func (r *Rendered) Render(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, r.Markup)
	return err
}

// Component returns the markup as a templ component.
func (r *Rendered) Component() templ.Component {
	return templ.Raw(r.Markup)
}

// RevealedComponent returns the visible-state markup as a templ component.
func (r *Rendered) RevealedComponent() templ.Component {
	return templ.Raw(r.RevealedMarkup())
}

const dismissButton = `<button type="button" class="close" data-dismiss="alert" aria-label="Close">` +
	`<span aria-hidden="true">&times;</span>` +
	`</button>`

func compose(r *Rendered, classes []string) string {
	var sb strings.Builder
	sb.WriteString(`<div id="`)
	sb.WriteString(r.ID)
	sb.WriteString(`" class="`)
	sb.WriteString(strings.Join(classes, " "))
	sb.WriteString(`" role="alert"`)
	if r.Grouped() {
		sb.WriteString(` data-max-id="`)
		sb.WriteString(r.GroupID)
		sb.WriteString(`" data-max-count="`)
		sb.WriteString(strconv.Itoa(r.MaxCount))
		sb.WriteString(`"`)
	}
	sb.WriteString(`>`)
	if r.Dismissible {
		sb.WriteString(dismissButton)
	}
	sb.WriteString(r.content)
	sb.WriteString(`</div>`)
	return sb.String()
}
