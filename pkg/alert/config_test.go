package alert_test

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/alertkit/pkg/alert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := alert.DefaultConfig()

	assert.False(t, cfg.Dismissible())
	assert.True(t, cfg.FadeIn())
	assert.Equal(t, 3*time.Second, cfg.DestroyAfter())
	assert.Zero(t, cfg.MaxCount())
	assert.Empty(t, cfg.GroupID())
	assert.Equal(t, alert.Primary, cfg.Background())
	assert.Empty(t, cfg.Classes())
	assert.False(t, cfg.Grouped())
}

func TestNewConfig_Options(t *testing.T) {
	cfg := alert.DefaultConfig(
		alert.WithDismissible(true),
		alert.WithFadeIn(false),
		alert.WithDestroyAfter(500*time.Millisecond),
		alert.WithMaxCount(2),
		alert.WithGroup("g"),
		alert.WithBackground(3),
		alert.WithClasses(alert.ClassString("a b")),
		alert.WithClasses(alert.ClassList("b", "c")),
	)

	assert.True(t, cfg.Dismissible())
	assert.False(t, cfg.FadeIn())
	assert.Equal(t, 500*time.Millisecond, cfg.DestroyAfter())
	assert.Equal(t, 2, cfg.MaxCount())
	assert.Equal(t, "g", cfg.GroupID())
	assert.Equal(t, alert.Success, cfg.Background())
	assert.Equal(t, []string{"a", "b", "c"}, cfg.Classes())
	assert.True(t, cfg.Grouped())
}

func TestConfig_Grouped(t *testing.T) {
	assert.False(t, alert.DefaultConfig(alert.WithGroup("g")).Grouped(), "no cap")
	assert.False(t, alert.DefaultConfig(alert.WithMaxCount(3)).Grouped(), "no group")
	assert.False(t, alert.DefaultConfig(alert.WithGroup("g"), alert.WithMaxCount(-1)).Grouped())
}

func TestConfig_SetBackground(t *testing.T) {
	d := alert.DefaultDefaults()
	d.Background = "info"
	cfg := alert.NewConfig(d)
	require.Equal(t, alert.Info, cfg.Background())
	assert.Equal(t, alert.Info, cfg.DefaultBackground())

	cfg.SetBackground("danger")
	assert.Equal(t, alert.Danger, cfg.Background())

	cfg.SetBackground("purple")
	assert.Equal(t, alert.Info, cfg.Background(), "invalid input falls back to the configured default")

	cfg.SetBackground(8)
	assert.Equal(t, alert.Dark, cfg.Background())

	cfg.SetBackground(0)
	assert.Equal(t, alert.Info, cfg.Background())
}

func TestNewConfig_InvalidDefaultBackground(t *testing.T) {
	d := alert.DefaultDefaults()
	d.Background = "chartreuse"
	cfg := alert.NewConfig(d, alert.WithBackground("nope"))
	assert.Equal(t, alert.Primary, cfg.Background())
}

func TestNewConfig_DefaultClasses(t *testing.T) {
	d := alert.DefaultDefaults()
	d.Classes = []string{"shadow", "shadow"}
	cfg := alert.NewConfig(d, alert.WithClasses(alert.ClassString("mt-2")))
	assert.Equal(t, []string{"shadow", "mt-2"}, cfg.Classes())
}

func TestOverrides(t *testing.T) {
	t.Run("json with widget option names", func(t *testing.T) {
		var o alert.Overrides
		require.NoError(t, json.Unmarshal([]byte(`{
			"dismissible": true,
			"fadeIn": false,
			"destroyAfter": 500,
			"max": 2,
			"maxId": "flash",
			"background": 4,
			"classes": {"shadow": true}
		}`), &o))

		cfg := alert.DefaultConfig(o.Options()...)
		assert.True(t, cfg.Dismissible())
		assert.False(t, cfg.FadeIn())
		assert.Equal(t, 500*time.Millisecond, cfg.DestroyAfter())
		assert.Equal(t, 2, cfg.MaxCount())
		assert.Equal(t, "flash", cfg.GroupID())
		assert.Equal(t, alert.Danger, cfg.Background())
		assert.Equal(t, []string{"shadow"}, cfg.Classes())
	})

	t.Run("absent keys keep defaults", func(t *testing.T) {
		var o alert.Overrides
		require.NoError(t, json.Unmarshal([]byte(`{"background": "warning"}`), &o))
		cfg := alert.DefaultConfig(o.Options()...)

		assert.Equal(t, alert.Warning, cfg.Background())
		assert.True(t, cfg.FadeIn())
		assert.Equal(t, 3*time.Second, cfg.DestroyAfter())
	})

	t.Run("out of range numbers saturate", func(t *testing.T) {
		var o alert.Overrides
		require.NoError(t, json.Unmarshal([]byte(`{"dismissible": true, "destroyAfter": 1e300, "max": 1e300, "maxId": "g"}`), &o))
		cfg := alert.DefaultConfig(o.Options()...)

		assert.Equal(t, math.MaxInt32, cfg.MaxCount())
		assert.True(t, cfg.Grouped(), "a huge cap must not wrap around and disable grouping")
		assert.Equal(t, time.Duration(math.MaxInt64), cfg.DestroyAfter())
	})

	t.Run("negative numbers disable", func(t *testing.T) {
		var o alert.Overrides
		require.NoError(t, json.Unmarshal([]byte(`{"destroyAfter": -5, "max": -1e300, "maxId": "g"}`), &o))
		cfg := alert.DefaultConfig(o.Options()...)

		assert.Zero(t, cfg.MaxCount())
		assert.False(t, cfg.Grouped())
		assert.Zero(t, cfg.DestroyAfter())
	})

	t.Run("fractional values", func(t *testing.T) {
		var o alert.Overrides
		require.NoError(t, json.Unmarshal([]byte(`{"destroyAfter": 1.5, "max": 2.9}`), &o))
		cfg := alert.DefaultConfig(o.Options()...)

		assert.Equal(t, 1500*time.Microsecond, cfg.DestroyAfter())
		assert.Equal(t, 2, cfg.MaxCount())
	})

	t.Run("invalid background normalized", func(t *testing.T) {
		var o alert.Overrides
		require.NoError(t, json.Unmarshal([]byte(`{"background": 12}`), &o))
		assert.Equal(t, alert.Primary, alert.DefaultConfig(o.Options()...).Background())
	})

	t.Run("explicit false overrides true default", func(t *testing.T) {
		var o alert.Overrides
		require.NoError(t, json.Unmarshal([]byte(`{"fadeIn": false}`), &o))
		assert.False(t, alert.DefaultConfig(o.Options()...).FadeIn())
	})
}

func TestPresets(t *testing.T) {
	doc := `
flash:
  dismissible: true
  max: 3
  maxId: flash
  background: success
  classes: [shadow]
error:
  background: 4
  destroyAfter: 0
`
	presets, err := alert.LoadPresets(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, presets, 2)

	t.Run("named preset", func(t *testing.T) {
		cfg := presets.Config("flash", alert.DefaultDefaults())
		assert.True(t, cfg.Dismissible())
		assert.Equal(t, 3, cfg.MaxCount())
		assert.Equal(t, "flash", cfg.GroupID())
		assert.Equal(t, alert.Success, cfg.Background())
		assert.Equal(t, []string{"shadow"}, cfg.Classes())
	})

	t.Run("numeric background from yaml", func(t *testing.T) {
		cfg := presets.Config("error", alert.DefaultDefaults())
		assert.Equal(t, alert.Danger, cfg.Background())
		assert.Zero(t, cfg.DestroyAfter())
	})

	t.Run("extra options applied last", func(t *testing.T) {
		cfg := presets.Config("flash", alert.DefaultDefaults(), alert.WithBackground(alert.Info))
		assert.Equal(t, alert.Info, cfg.Background())
	})

	t.Run("unknown preset uses defaults", func(t *testing.T) {
		cfg := presets.Config("missing", alert.DefaultDefaults())
		assert.Equal(t, alert.Primary, cfg.Background())
		assert.False(t, cfg.Dismissible())
	})

	t.Run("empty document", func(t *testing.T) {
		p, err := alert.LoadPresets(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, p)
	})

	t.Run("malformed document", func(t *testing.T) {
		_, err := alert.LoadPresets(strings.NewReader("flash: [unclosed"))
		assert.Error(t, err)
	})
}
