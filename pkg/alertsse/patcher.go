package alertsse

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
)

// DefaultTarget is the container selector new alerts are appended into.
const DefaultTarget = "#alerts"

// Patcher applies element changes to a page.
type Patcher interface {
	// Append inserts markup for element id at the end of the alert container.
	Append(ctx context.Context, id, markup string) error
	// Replace morphs element id into markup.
	Replace(ctx context.Context, id, markup string) error
	// Remove deletes element id.
	Remove(ctx context.Context, id string) error
}

// SSEPatcher sends patches as datastar element events.
type SSEPatcher struct {
	sse    *datastar.ServerSentEventGenerator
	target string
}

// NewSSEPatcher creates a patcher writing to sse. An empty target uses DefaultTarget.
func NewSSEPatcher(sse *datastar.ServerSentEventGenerator, target string) *SSEPatcher {
	if target == "" {
		target = DefaultTarget
	}
	return &SSEPatcher{sse: sse, target: target}
}

func (p *SSEPatcher) Append(_ context.Context, _, markup string) error {
	return p.sse.PatchElementTempl(templ.Raw(markup),
		datastar.WithSelector(p.target),
		datastar.WithMode(datastar.ElementPatchModeAppend),
	)
}

func (p *SSEPatcher) Replace(_ context.Context, id, markup string) error {
	return p.sse.PatchElementTempl(templ.Raw(markup),
		datastar.WithSelector(selector(id)),
		datastar.WithMode(datastar.ElementPatchModeOuter),
	)
}

func (p *SSEPatcher) Remove(_ context.Context, id string) error {
	return p.sse.PatchElementTempl(templ.Raw(""),
		datastar.WithSelector(selector(id)),
		datastar.WithMode(datastar.ElementPatchModeRemove),
	)
}

func selector(id string) string {
	return "#" + id
}

type element struct {
	id     string
	markup string
}

// Document is an in-memory page. Operations on missing ids are no-ops.
type Document struct {
	elements []element
	history  []string
	mu       sync.Mutex
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{}
}

func (d *Document) Append(_ context.Context, id, markup string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.record("append", id)
	d.elements = append(d.elements, element{id: id, markup: markup})
	return nil
}

func (d *Document) Replace(_ context.Context, id, markup string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if i := d.index(id); i >= 0 {
		d.record("replace", id)
		d.elements[i].markup = markup
	}
	return nil
}

func (d *Document) Remove(_ context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if i := d.index(id); i >= 0 {
		d.record("remove", id)
		d.elements = slices.Delete(d.elements, i, i+1)
	}
	return nil
}

// IDs returns the element ids in document order.
func (d *Document) IDs() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	ids := make([]string, 0, len(d.elements))
	for _, e := range d.elements {
		ids = append(ids, e.id)
	}
	return ids
}

// Markup returns the current markup of id.
func (d *Document) Markup(id string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if i := d.index(id); i >= 0 {
		return d.elements[i].markup, true
	}
	return "", false
}

// HTML returns the concatenated markup of all elements.
func (d *Document) HTML() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	var sb strings.Builder
	for _, e := range d.elements {
		sb.WriteString(e.markup)
	}
	return sb.String()
}

// History returns applied operations as "op id", oldest first.
func (d *Document) History() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.history)
}

func (d *Document) index(id string) int {
	return slices.IndexFunc(d.elements, func(e element) bool { return e.id == id })
}

func (d *Document) record(op, id string) {
	d.history = append(d.history, op+" "+id)
}
