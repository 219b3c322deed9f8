package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hubastard/gamelamp/engine/colors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sandbox.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
window:
  title: Sandbox
  width: 1280
clear_color: [0.1, 0.2, 0.3, 1]
shader_dir: assets/shaders
log_level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Sandbox", cfg.Window.Title)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 640, cfg.Window.Height, "unset keys keep their default")
	assert.True(t, cfg.Window.VSync)
	assert.Equal(t, colors.Color{0.1, 0.2, 0.3, 1}, cfg.ClearColor)
	assert.Equal(t, "assets/shaders", cfg.ShaderDir)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsMalformed(t *testing.T) {
	_, err := Load(writeFile(t, "window: [nope"))
	assert.Error(t, err)
}

func TestLoadRejectsBadSize(t *testing.T) {
	_, err := Load(writeFile(t, "window:\n  width: 0\n"))
	assert.ErrorContains(t, err, "window size must be positive")
}

func TestLoadGUIAndProfile(t *testing.T) {
	cfg, err := Load(writeFile(t, "gui:\n  font: fonts/mono.ttf\nprofile: true\n"))
	require.NoError(t, err)
	assert.Equal(t, "fonts/mono.ttf", cfg.GUI.Font)
	assert.Equal(t, 14.0, cfg.GUI.FontSize)
	assert.True(t, cfg.Profile)
}

func TestLoadRejectsBadFontSize(t *testing.T) {
	_, err := Load(writeFile(t, "gui:\n  font: mono.ttf\n  font_size: -1\n"))
	assert.ErrorContains(t, err, "gui font size")
}
