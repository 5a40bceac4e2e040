package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/runoshun/daisen/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, domain.ConfigFileName), []byte(content), 0644)
	require.NoError(t, err)
}

func TestLoader_Load_Defaults(t *testing.T) {
	loader := NewLoaderWithGlobalDir(t.TempDir(), t.TempDir())

	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, domain.NewDefaultConfig(), cfg)
}

func TestLoader_Load_ProjectConfigOnly(t *testing.T) {
	projectDir := t.TempDir()
	writeConfig(t, projectDir, `
[trace]
source = "http"
url = "http://sim:3001"
timeout_ms = 500

[layout]
thick_ratio = 0.9
padding_threshold = 12

[gesture]
settle_ms = 250

[view]
component_pane = false
resume = false

[log]
level = "debug"
`)

	cfg, err := NewLoaderWithGlobalDir(projectDir, t.TempDir()).Load()
	require.NoError(t, err)

	assert.Equal(t, domain.SourceHTTP, cfg.Trace.Source)
	assert.Equal(t, "http://sim:3001", cfg.Trace.URL)
	assert.Equal(t, 500, cfg.Trace.TimeoutMS)
	assert.Equal(t, 0.9, cfg.Layout.ThickRatio)
	assert.Equal(t, 12.0, cfg.Layout.PaddingThreshold, "integers widen to floats")
	assert.Equal(t, 250, cfg.Gesture.SettleMS)
	assert.False(t, cfg.View.ComponentPane)
	assert.False(t, cfg.View.Resume)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, domain.DefaultThinRatio, cfg.Layout.ThinRatio, "untouched keys keep defaults")
	assert.Empty(t, cfg.Warnings)
}

func TestLoader_Load_MergeProjectOverridesGlobal(t *testing.T) {
	projectDir := t.TempDir()
	globalDir := t.TempDir()
	writeConfig(t, globalDir, `
[trace]
path = "global.json"
requests_per_second = 2

[log]
level = "warn"
`)
	writeConfig(t, projectDir, `
[trace]
path = "project.json"
`)

	cfg, err := NewLoaderWithGlobalDir(projectDir, globalDir).Load()
	require.NoError(t, err)

	assert.Equal(t, "project.json", cfg.Trace.Path)
	assert.Equal(t, 2.0, cfg.Trace.RequestsPerSecond)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoader_LoadGlobal(t *testing.T) {
	projectDir := t.TempDir()
	globalDir := t.TempDir()
	writeConfig(t, globalDir, "[trace]\npath = \"global.json\"\n")
	writeConfig(t, projectDir, "[trace]\npath = \"project.json\"\n")

	cfg, err := NewLoaderWithGlobalDir(projectDir, globalDir).LoadGlobal()
	require.NoError(t, err)

	assert.Equal(t, "global.json", cfg.Trace.Path)
}

func TestLoader_Load_Warnings(t *testing.T) {
	projectDir := t.TempDir()
	writeConfig(t, projectDir, `
stray = 1

[trace]
colour = "red"
timeout_ms = "soon"

[gesture]
settle_ms = 1.5

[plugins]
enabled = true
`)

	cfg, err := NewLoaderWithGlobalDir(projectDir, "").Load()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"invalid value in [gesture]: settle_ms",
		"invalid value in [trace]: timeout_ms",
		"unknown key in [trace]: colour",
		"unknown key: stray",
		"unknown section: plugins",
	}, cfg.Warnings)
	assert.Equal(t, domain.DefaultTimeoutMS, cfg.Trace.TimeoutMS)
	assert.Equal(t, domain.DefaultSettleMS, cfg.Gesture.SettleMS)
}

func TestLoader_Load_InvalidTOML(t *testing.T) {
	projectDir := t.TempDir()
	writeConfig(t, projectDir, "[trace\n")

	_, err := NewLoaderWithGlobalDir(projectDir, "").Load()

	assert.ErrorContains(t, err, "parse")
}
