package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/alertkit/pkg/alert"
)

func TestLoadPresets(t *testing.T) {
	t.Run("no file", func(t *testing.T) {
		p, err := loadPresets("")
		require.NoError(t, err)
		assert.Empty(t, p)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadPresets(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorContains(t, err, "failed to open presets file")
	})

	t.Run("yaml file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "presets.yaml")
		require.NoError(t, os.WriteFile(path, []byte("warn:\n  background: warning\nflash:\n  maxId: flash\n  max: 1\n"), 0o600))

		p, err := loadPresets(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"flash", "warn"}, presetNames(p))
		assert.Equal(t, alert.Warning, p.Config("warn", alert.DefaultDefaults()).Background())
	})
}

func TestIndexPage(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, indexPage([]string{"flash", "<x>"}, "alerts").Render(context.Background(), &sb))

	page := sb.String()
	assert.Contains(t, page, `<div id="alerts"`)
	assert.NotContains(t, page, `id="#`)
	assert.Contains(t, page, `$preset = 'flash'`)
	assert.Contains(t, page, "&lt;x&gt;")
	assert.Contains(t, page, datastarScript)
	assert.NotContains(t, page, "%PRESETS%")
}
