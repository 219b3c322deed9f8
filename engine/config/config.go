package config

import (
	"os"

	"github.com/hubastard/gamelamp/engine/colors"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Window describes the platform window to create.
type Window struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	VSync  bool   `yaml:"vsync"`
	// Icon is an optional PNG path.
	Icon string `yaml:"icon"`
}

// GUI configures the debug overlay.
type GUI struct {
	// Font is an optional TrueType file; the built-in bitmap font otherwise.
	Font     string  `yaml:"font"`
	FontSize float64 `yaml:"font_size"`
}

// Config for the engine run.
type Config struct {
	Window     Window       `yaml:"window"`
	ClearColor colors.Color `yaml:"clear_color"`
	// ShaderDir, when set, holds triangle.vert and triangle.frag and is
	// watched for changes.
	ShaderDir string `yaml:"shader_dir"`
	LogLevel  string `yaml:"log_level"`
	GUI       GUI    `yaml:"gui"`
	// Profile enables the frame profiler; Ctrl+P dumps a speedscope capture.
	Profile bool `yaml:"profile"`
}

func Default() Config {
	return Config{
		Window: Window{
			Title:  "GameLamp",
			Width:  640,
			Height: 640,
			VSync:  true,
		},
		ClearColor: colors.Blue,
		LogLevel:   "info",
		GUI:        GUI{FontSize: 14},
	}
}

// Load reads a YAML config over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "read config %q", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), errors.Wrapf(err, "parse config %q", path)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), errors.Wrapf(err, "config %q", path)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.GUI.Font != "" && c.GUI.FontSize <= 0 {
		return errors.Errorf("gui font size must be positive, got %v", c.GUI.FontSize)
	}
	return nil
}
