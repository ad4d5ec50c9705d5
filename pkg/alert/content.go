package alert

import (
	"math"
	"strconv"
	"strings"
)

// Content accumulates the inner markup of an alert.
// Input is never escaped; callers are responsible for passing safe markup.
type Content struct {
	buf strings.Builder
}

// NewContent returns an empty content buffer.
func NewContent() *Content {
	return &Content{}
}

// SetHTML replaces the whole content.
func (c *Content) SetHTML(markup string) {
	c.buf.Reset()
	c.buf.WriteString(markup)
}

// AddHTML appends raw markup.
func (c *Content) AddHTML(markup string) {
	c.buf.WriteString(markup)
}

// AddParagraph appends a paragraph. Without classes it renders class="".
func (c *Content) AddParagraph(text string, classes ...string) {
	c.buf.WriteString(`<p class="`)
	c.buf.WriteString(joinClasses(classes))
	c.buf.WriteString(`">`)
	c.buf.WriteString(text)
	c.buf.WriteString(`</p>`)
}

// LinkOption sets an optional anchor attribute.
type LinkOption func(*link)

type link struct {
	classes  []string
	target   string
	title    string
	hasTgt   bool
	hasTitle bool
}

// WithLinkClasses adds classes after the base "alert-link" class.
func WithLinkClasses(classes ...string) LinkOption {
	return func(l *link) { l.classes = append(l.classes, classes...) }
}

// WithTarget emits a target attribute.
func WithTarget(target string) LinkOption {
	return func(l *link) {
		l.target = target
		l.hasTgt = true
	}
}

// WithTitle emits a title attribute.
func WithTitle(title string) LinkOption {
	return func(l *link) {
		l.title = title
		l.hasTitle = true
	}
}

// AddLink appends an anchor and returns its markup.
func (c *Content) AddLink(text, href string, opts ...LinkOption) string {
	a := anchor(text, href, opts)
	c.buf.WriteString(a)
	return a
}

// AddParaLink appends an anchor wrapped in a paragraph and returns the
// wrapped markup. Options are forwarded to the anchor unchanged.
func (c *Content) AddParaLink(text, href string, opts ...LinkOption) string {
	p := "<p>" + anchor(text, href, opts) + "</p>"
	c.buf.WriteString(p)
	return p
}

func anchor(text, href string, opts []LinkOption) string {
	var l link
	for _, opt := range opts {
		opt(&l)
	}

	var sb strings.Builder
	sb.WriteString(`<a href="`)
	sb.WriteString(href)
	sb.WriteString(`" class="`)
	sb.WriteString(joinClasses(append([]string{"alert-link"}, l.classes...)))
	sb.WriteString(`"`)
	if l.hasTgt {
		sb.WriteString(` target="`)
		sb.WriteString(l.target)
		sb.WriteString(`"`)
	}
	if l.hasTitle {
		sb.WriteString(` title="`)
		sb.WriteString(l.title)
		sb.WriteString(`"`)
	}
	sb.WriteString(`>`)
	sb.WriteString(text)
	sb.WriteString(`</a>`)
	return sb.String()
}

// AddHeading appends an hN element. level is clamped to [1, 6].
func (c *Content) AddHeading(level int, text string, classes ...string) {
	level = min(max(level, 1), 6)
	tag := "h" + strconv.Itoa(level)

	c.buf.WriteString(`<` + tag + ` class="`)
	c.buf.WriteString(joinClasses(append([]string{"alert-heading"}, classes...)))
	c.buf.WriteString(`">`)
	c.buf.WriteString(text)
	c.buf.WriteString(`</` + tag + `>`)
}

// HeadingLevel normalizes a decoded heading level. Values are clamped to
// [1, 6] first; anything that is then not a whole number becomes 1.
func HeadingLevel(v any) int {
	var f float64
	switch n := v.(type) {
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case float32:
		f = float64(n)
	case float64:
		f = n
	default:
		return 1
	}

	if math.IsNaN(f) {
		return 1
	}
	f = math.Min(math.Max(f, 1), 6)
	if f != math.Trunc(f) {
		return 1
	}
	return int(f)
}

// IsEmpty reports whether no content is set.
func (c *Content) IsEmpty() bool {
	return c.buf.Len() == 0
}

// Clear drops all content.
func (c *Content) Clear() {
	c.buf.Reset()
}

// String returns the accumulated markup.
func (c *Content) String() string {
	return c.buf.String()
}

func joinClasses(classes []string) string {
	var parts []string
	for _, cl := range classes {
		parts = append(parts, strings.Fields(cl)...)
	}
	return strings.Join(parts, " ")
}
