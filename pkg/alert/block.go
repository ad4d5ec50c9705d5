package alert

// Block types accepted by Content.Apply. The short forms mirror the
// addP/addA/addPA/addH shorthands of the browser widget.
const (
	BlockParagraph = "paragraph"
	BlockLink      = "link"
	BlockParaLink  = "paralink"
	BlockHeading   = "heading"
	BlockHTML      = "html"
	BlockSetHTML   = "set"
)

var blockAliases = map[string]string{
	"p":  BlockParagraph,
	"a":  BlockLink,
	"pa": BlockParaLink,
	"h":  BlockHeading,
}

// Block is one decoded content operation, as received on the HTTP boundary.
type Block struct {
	Type    string  `json:"type" yaml:"type"`
	Text    string  `json:"text,omitempty" yaml:"text,omitempty"`
	Href    string  `json:"href,omitempty" yaml:"href,omitempty"`
	Classes string  `json:"classes,omitempty" yaml:"classes,omitempty"`
	Target  *string `json:"target,omitempty" yaml:"target,omitempty"`
	Title   *string `json:"title,omitempty" yaml:"title,omitempty"`
	Level   any     `json:"level,omitempty" yaml:"level,omitempty"`
	HTML    string  `json:"html,omitempty" yaml:"html,omitempty"`
}

// Apply replays blocks in order. Unknown block types are skipped.
func (c *Content) Apply(blocks ...Block) {
	for _, b := range blocks {
		typ := b.Type
		if alias, ok := blockAliases[typ]; ok {
			typ = alias
		}

		switch typ {
		case BlockParagraph:
			c.AddParagraph(b.Text, b.Classes)
		case BlockLink:
			c.AddLink(b.Text, b.Href, b.linkOptions()...)
		case BlockParaLink:
			c.AddParaLink(b.Text, b.Href, b.linkOptions()...)
		case BlockHeading:
			c.AddHeading(HeadingLevel(b.Level), b.Text, b.Classes)
		case BlockHTML:
			c.AddHTML(b.HTML)
		case BlockSetHTML:
			c.SetHTML(b.HTML)
		}
	}
}

func (b Block) linkOptions() []LinkOption {
	var opts []LinkOption
	if b.Classes != "" {
		opts = append(opts, WithLinkClasses(b.Classes))
	}
	if b.Target != nil {
		opts = append(opts, WithTarget(*b.Target))
	}
	if b.Title != nil {
		opts = append(opts, WithTitle(*b.Title))
	}
	return opts
}
