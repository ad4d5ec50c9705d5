package alert_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/alertkit/pkg/alert"
)

// sequentialIDs returns a deterministic IDGenerator.
func sequentialIDs() alert.IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("alert-%d", n)
	}
}

type recordingObserver struct {
	rendered  []string
	evicted   []string
	tracked   []string
	destroyed []string
}

func (o *recordingObserver) Rendered(r *alert.Rendered) { o.rendered = append(o.rendered, r.ID) }
func (o *recordingObserver) Evicted(id, _ string)      { o.evicted = append(o.evicted, id) }
func (o *recordingObserver) Tracked(id string)         { o.tracked = append(o.tracked, id) }
func (o *recordingObserver) Destroyed(id string)       { o.destroyed = append(o.destroyed, id) }

func TestRenderer_Scenario(t *testing.T) {
	r := alert.NewRenderer(alert.NewRegistry(), alert.WithIDGenerator(sequentialIDs()))

	cfg := alert.DefaultConfig(
		alert.WithDismissible(true),
		alert.WithDestroyAfter(500*time.Millisecond),
		alert.WithFadeIn(true),
	)
	content := alert.NewContent()
	content.AddParagraph("hi")

	out := r.Render(cfg, content)

	assert.Contains(t, out.Markup, `role="alert"`)
	assert.Contains(t, out.Markup, `<p class="">hi</p>`)
	assert.Contains(t, out.Markup, `data-dismiss="alert"`)
	assert.Contains(t, out.Markup, `aria-label="Close"`)

	require.Len(t, out.Requests, 2)
	assert.Equal(t, alert.Request{Kind: alert.RequestReveal, TargetID: out.ID, Delay: alert.DefaultRevealDelay}, out.Requests[0])
	assert.Equal(t, alert.Request{
		Kind:     alert.RequestDestroy,
		TargetID: out.ID,
		Delay:    500 * time.Millisecond,
		FadeOut:  alert.DefaultFadeOut,
	}, out.Requests[1])
}

func TestRenderer_Markup(t *testing.T) {
	r := alert.NewRenderer(nil, alert.WithIDGenerator(sequentialIDs()))

	t.Run("full markup", func(t *testing.T) {
		cfg := alert.DefaultConfig(
			alert.WithDismissible(true),
			alert.WithBackground(alert.Warning),
			alert.WithGroup("flash"),
			alert.WithMaxCount(3),
			alert.WithClasses(alert.ClassString("shadow")),
		)
		content := alert.NewContent()
		content.AddHTML("<b>x</b>")

		out := r.Render(cfg, content)

		assert.Equal(t, "alert-1", out.ID)
		assert.Equal(t, []string{"alert", "alert-warning", "alert-dismissible", "fade", "shadow"}, out.Classes)
		assert.Equal(t,
			`<div id="alert-1" class="alert alert-warning alert-dismissible fade shadow" role="alert" data-max-id="flash" data-max-count="3">`+
				`<button type="button" class="close" data-dismiss="alert" aria-label="Close"><span aria-hidden="true">&times;</span></button>`+
				`<b>x</b></div>`,
			out.Markup,
		)
	})

	t.Run("not dismissible has no button and no destroy", func(t *testing.T) {
		out := r.Render(alert.DefaultConfig(alert.WithDestroyAfter(time.Second)), nil)

		assert.NotContains(t, out.Markup, "<button")
		assert.NotContains(t, out.Markup, "data-dismiss")
		_, ok := out.FirstRequest(alert.RequestDestroy)
		assert.False(t, ok)
	})

	t.Run("no fade has no reveal", func(t *testing.T) {
		out := r.Render(alert.DefaultConfig(alert.WithFadeIn(false)), nil)

		assert.NotContains(t, out.Classes, "fade")
		assert.Empty(t, out.Requests)
	})

	t.Run("group attributes only with a positive cap", func(t *testing.T) {
		out := r.Render(alert.DefaultConfig(alert.WithGroup("flash")), nil)
		assert.NotContains(t, out.Markup, "data-max-id")
		assert.NotContains(t, out.Markup, "data-max-count")
	})

	t.Run("auto destroy disabled by non-positive delay", func(t *testing.T) {
		out := r.Render(alert.DefaultConfig(alert.WithDismissible(true), alert.WithDestroyAfter(0)), nil)
		_, ok := out.FirstRequest(alert.RequestDestroy)
		assert.False(t, ok)
	})

	t.Run("duplicate extra classes dropped", func(t *testing.T) {
		out := r.Render(alert.DefaultConfig(alert.WithClasses(alert.ClassList("alert", "fade", "x", "x"))), nil)
		assert.Equal(t, []string{"alert", "alert-primary", "fade", "x"}, out.Classes)
	})

	t.Run("nil config uses defaults", func(t *testing.T) {
		out := r.Render(nil, nil)
		assert.Equal(t, []string{"alert", "alert-primary", "fade"}, out.Classes)
	})
}

func TestRenderer_ClassShapesEquivalent(t *testing.T) {
	r := alert.NewRenderer(nil)
	shapes := []alert.Classes{
		alert.ClassString("a b"),
		alert.ClassList("a", "b"),
		alert.ClassMap(map[string]any{"a": 1, "b": 0}),
	}

	var results [][]string
	for _, s := range shapes {
		out := r.Render(alert.DefaultConfig(alert.WithClasses(s)), nil)
		results = append(results, out.Classes)
	}
	for _, got := range results[1:] {
		assert.ElementsMatch(t, results[0], got)
	}
}

func TestRenderer_Eviction(t *testing.T) {
	reg := alert.NewRegistry()
	obs := &recordingObserver{}
	r := alert.NewRenderer(reg, alert.WithIDGenerator(sequentialIDs()), alert.WithObserver(obs))
	cfg := alert.DefaultConfig(alert.WithGroup("g"), alert.WithMaxCount(2))

	first := r.Render(cfg, nil)
	second := r.Render(cfg, nil)
	assert.Empty(t, first.Evictions())
	assert.Empty(t, second.Evictions())

	third := r.Render(cfg, nil)
	evictions := third.Evictions()
	require.Len(t, evictions, 1)
	assert.Equal(t, first.ID, evictions[0].TargetID)
	assert.Equal(t, alert.RequestEvict, third.Requests[0].Kind, "eviction comes before other requests")
	assert.Equal(t, 2, reg.Len("g"))
	assert.Equal(t, []string{first.ID}, obs.evicted)
	assert.Equal(t, []string{first.ID, second.ID, third.ID}, obs.rendered)
}

func TestRenderer_UngroupedNeverEvicts(t *testing.T) {
	r := alert.NewRenderer(nil)
	for _, cfg := range []*alert.Config{
		alert.DefaultConfig(alert.WithGroup("g"), alert.WithMaxCount(0)),
		alert.DefaultConfig(alert.WithGroup(""), alert.WithMaxCount(1)),
	} {
		for range 5 {
			assert.Empty(t, r.Render(cfg, nil).Evictions())
		}
	}
}

func TestRenderer_IdentityRetriesOnCollision(t *testing.T) {
	reg := alert.NewRegistry()
	reg.TryAdmit("alert-dup", "g", 5)

	ids := []string{"alert-dup", "alert-dup", "alert-fresh"}
	gen := func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}
	r := alert.NewRenderer(reg, alert.WithIDGenerator(gen))

	out := r.Render(alert.DefaultConfig(alert.WithGroup("g"), alert.WithMaxCount(5)), nil)
	assert.Equal(t, "alert-fresh", out.ID)
}

func TestRenderer_DefaultIDs(t *testing.T) {
	r := alert.NewRenderer(nil)
	seen := map[string]bool{}
	for range 100 {
		out := r.Render(nil, nil)
		assert.True(t, strings.HasPrefix(out.ID, "alert-"))
		assert.False(t, seen[out.ID])
		seen[out.ID] = true
	}
}

func TestRenderer_Options(t *testing.T) {
	r := alert.NewRenderer(nil,
		alert.WithRevealDelay(50*time.Millisecond),
		alert.WithFadeOutDuration(time.Second),
	)
	out := r.Render(alert.DefaultConfig(alert.WithDismissible(true)), nil)

	reveal, ok := out.FirstRequest(alert.RequestReveal)
	require.True(t, ok)
	assert.Equal(t, 50*time.Millisecond, reveal.Delay)

	destroy, ok := out.FirstRequest(alert.RequestDestroy)
	require.True(t, ok)
	assert.Equal(t, time.Second, destroy.FadeOut)
}

func TestRendered_Output(t *testing.T) {
	r := alert.NewRenderer(nil, alert.WithIDGenerator(sequentialIDs()))
	content := alert.NewContent()
	content.AddParagraph("hi")
	out := r.Render(alert.DefaultConfig(), content)

	t.Run("revealed markup adds show", func(t *testing.T) {
		assert.Equal(t,
			`<div id="alert-1" class="alert alert-primary fade show" role="alert"><p class="">hi</p></div>`,
			out.RevealedMarkup(),
		)
		assert.NotContains(t, out.Markup, "show")
	})

	t.Run("templ component", func(t *testing.T) {
		var sb strings.Builder
		require.NoError(t, out.Component().Render(context.Background(), &sb))
		assert.Equal(t, out.Markup, sb.String())

		sb.Reset()
		require.NoError(t, out.Render(context.Background(), &sb))
		assert.Equal(t, out.Markup, sb.String())

		sb.Reset()
		require.NoError(t, out.RevealedComponent().Render(context.Background(), &sb))
		assert.Equal(t, out.RevealedMarkup(), sb.String())
	})

	t.Run("requests encode as json", func(t *testing.T) {
		data, err := out.Requests[0].MarshalJSON()
		require.NoError(t, err)
		assert.JSONEq(t, `{"kind":"reveal","target":"alert-1","delay_ms":100}`, string(data))
	})
}

func TestRendered_Lifecycle(t *testing.T) {
	renderer := alert.NewRenderer(alert.NewRegistry())

	plain := renderer.Render(alert.DefaultConfig(), nil)
	assert.False(t, plain.Grouped())
	assert.False(t, plain.AutoDestroy())
	assert.Equal(t, 100*time.Millisecond, plain.Lifetime())

	grouped := renderer.Render(alert.DefaultConfig(
		alert.WithGroup("g"), alert.WithMaxCount(2),
		alert.WithDismissible(true), alert.WithDestroyAfter(time.Second),
	), nil)
	assert.True(t, grouped.Grouped())
	assert.True(t, grouped.AutoDestroy())
	assert.Equal(t, time.Second+alert.DefaultFadeOut, grouped.Lifetime())

	unbounded := renderer.Render(alert.DefaultConfig(alert.WithGroup("g"), alert.WithMaxCount(0)), nil)
	assert.False(t, unbounded.Grouped(), "a group without a cap is not admitted")
}
