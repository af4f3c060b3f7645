package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "none.toml"))
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gldemo.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
start_demo = 5

[window]
width = 800
title = "demo"

[images]
prefetch = ["a.png", "b.png"]

[animation]
periods = [1000.0, 2000.0, 3000.0]
`), 0644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.StartDemo)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 480, cfg.Window.Height)
	assert.Equal(t, "demo", cfg.Window.Title)
	assert.Equal(t, []string{"a.png", "b.png"}, cfg.Images.Prefetch)
	assert.Equal(t, [3]float64{1000, 2000, 3000}, cfg.Animation.Periods)
	assert.Equal(t, "img", cfg.Surface)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	for name, body := range map[string]string{
		"demo.toml":    "start_demo = 8",
		"surface.toml": `surface = ""`,
		"window.toml":  "[window]\nwidth = 0",
		"syntax.toml":  "start_demo = ",
	} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0644))
		_, err := loadConfig(path)
		assert.Error(t, err, name)
	}
}

func TestWriteConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.toml")
	want := defaultConfig()
	want.ShaderDir = "shaders"
	want.Images.Parallel = 2
	require.NoError(t, writeConfig(path, want))

	got, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
