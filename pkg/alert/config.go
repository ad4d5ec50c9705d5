package alert

import (
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults is the baseline every Config starts from.
// It can be populated from the environment with pkg/config.
type Defaults struct {
	Dismissible  bool          `env:"ALERT_DISMISSIBLE" envDefault:"false"`
	FadeIn       bool          `env:"ALERT_FADE_IN" envDefault:"true"`
	DestroyAfter time.Duration `env:"ALERT_DESTROY_AFTER" envDefault:"3s"`
	MaxCount     int           `env:"ALERT_MAX_COUNT" envDefault:"0"`
	GroupID      string        `env:"ALERT_GROUP_ID"`
	Background   string        `env:"ALERT_BACKGROUND" envDefault:"primary"`
	Classes      []string      `env:"ALERT_CLASSES" envSeparator:" "`
}

// DefaultDefaults returns the built-in defaults without reading the environment.
func DefaultDefaults() Defaults {
	return Defaults{
		FadeIn:       true,
		DestroyAfter: 3 * time.Second,
		Background:   string(Primary),
	}
}

// Config is the resolved configuration of a single alert.
// Only the background can change after construction, via SetBackground.
type Config struct {
	dismissible  bool
	fadeIn       bool
	destroyAfter time.Duration
	maxCount     int
	groupID      string
	background   Color
	fallback     Color
	classes      []string
}

// Option overrides a default while building a Config.
type Option func(*Config)

// WithDismissible controls the close button and auto-destroy.
func WithDismissible(v bool) Option {
	return func(c *Config) { c.dismissible = v }
}

// WithFadeIn controls the fade class and the reveal request.
func WithFadeIn(v bool) Option {
	return func(c *Config) { c.fadeIn = v }
}

// WithDestroyAfter sets the auto-destroy delay. Zero or negative disables it.
func WithDestroyAfter(d time.Duration) Option {
	return func(c *Config) { c.destroyAfter = d }
}

// WithMaxCount caps how many alerts of the group may be live. Zero or negative means unbounded.
func WithMaxCount(n int) Option {
	return func(c *Config) { c.maxCount = n }
}

// WithGroup sets the group id used for capacity eviction.
func WithGroup(id string) Option {
	return func(c *Config) { c.groupID = id }
}

// WithBackground accepts a Color, a token string or a 1-based index.
// Invalid input falls back to the configured default background.
func WithBackground(input any) Option {
	return func(c *Config) { c.SetBackground(input) }
}

// WithClasses appends extra classes to the alert container.
func WithClasses(classes Classes) Option {
	return func(c *Config) { c.classes = appendUnique(c.classes, classes.names...) }
}

// NewConfig merges opts over d.
func NewConfig(d Defaults, opts ...Option) *Config {
	fallback := Resolve(d.Background, Primary)
	c := &Config{
		dismissible:  d.Dismissible,
		fadeIn:       d.FadeIn,
		destroyAfter: d.DestroyAfter,
		maxCount:     d.MaxCount,
		groupID:      d.GroupID,
		background:   fallback,
		fallback:     fallback,
		classes:      ClassList(d.Classes...).names,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultConfig is NewConfig with the built-in defaults.
func DefaultConfig(opts ...Option) *Config {
	return NewConfig(DefaultDefaults(), opts...)
}

// SetBackground re-validates and replaces the background.
func (c *Config) SetBackground(input any) {
	c.background = Resolve(input, c.fallback)
}

func (c *Config) Dismissible() bool           { return c.dismissible }
func (c *Config) FadeIn() bool                { return c.fadeIn }
func (c *Config) DestroyAfter() time.Duration { return c.destroyAfter }
func (c *Config) MaxCount() int               { return c.maxCount }
func (c *Config) GroupID() string             { return c.groupID }
func (c *Config) Background() Color           { return c.background }

// DefaultBackground is the fallback used when a background input is invalid.
func (c *Config) DefaultBackground() Color { return c.fallback }

// Classes returns a copy of the extra classes.
func (c *Config) Classes() []string { return slices.Clone(c.classes) }

// Grouped reports whether the alert takes part in capacity eviction.
func (c *Config) Grouped() bool {
	return c.groupID != "" && c.maxCount > 0
}

// Overrides is a partial configuration decoded from JSON or YAML.
// Keys follow the option names of the browser widget; absent keys keep the default.
type Overrides struct {
	Dismissible  *bool    `json:"dismissible,omitempty" yaml:"dismissible,omitempty"`
	FadeIn       *bool    `json:"fadeIn,omitempty" yaml:"fadeIn,omitempty"`
	DestroyAfter *float64 `json:"destroyAfter,omitempty" yaml:"destroyAfter,omitempty"` // milliseconds
	Max          *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	MaxID        *string  `json:"maxId,omitempty" yaml:"maxId,omitempty"`
	Background   any      `json:"background,omitempty" yaml:"background,omitempty"`
	Classes      *Classes `json:"classes,omitempty" yaml:"classes,omitempty"`
}

// Options converts the set fields into Config options.
func (o Overrides) Options() []Option {
	var opts []Option
	if o.Dismissible != nil {
		opts = append(opts, WithDismissible(*o.Dismissible))
	}
	if o.FadeIn != nil {
		opts = append(opts, WithFadeIn(*o.FadeIn))
	}
	if o.DestroyAfter != nil {
		opts = append(opts, WithDestroyAfter(millis(*o.DestroyAfter)))
	}
	if o.Max != nil {
		opts = append(opts, WithMaxCount(count(*o.Max)))
	}
	if o.MaxID != nil {
		opts = append(opts, WithGroup(*o.MaxID))
	}
	if o.Background != nil {
		opts = append(opts, WithBackground(o.Background))
	}
	if o.Classes != nil {
		opts = append(opts, WithClasses(*o.Classes))
	}
	return opts
}

// millis converts decoded milliseconds, saturating instead of overflowing.
// NaN and non-positive values disable the delay.
func millis(ms float64) time.Duration {
	if math.IsNaN(ms) || ms <= 0 {
		return 0
	}
	if ms >= float64(math.MaxInt64/int64(time.Millisecond)) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(ms * float64(time.Millisecond))
}

// count converts a decoded cap, saturating at math.MaxInt32.
// NaN and non-positive values disable the cap.
func count(n float64) int {
	if math.IsNaN(n) || n <= 0 {
		return 0
	}
	if n >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(n)
}

// Presets maps a preset name to its overrides.
type Presets map[string]Overrides

// LoadPresets decodes a YAML document of named presets. An empty document yields no presets.
func LoadPresets(r io.Reader) (Presets, error) {
	p := Presets{}
	if err := yaml.NewDecoder(r).Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode alert presets: %w", err)
	}
	return p, nil
}

// Config builds a Config from d, the named preset and then extra.
// An unknown name applies no preset.
func (p Presets) Config(name string, d Defaults, extra ...Option) *Config {
	var opts []Option
	if o, ok := p[name]; ok {
		opts = append(opts, o.Options()...)
	}
	return NewConfig(d, append(opts, extra...)...)
}
