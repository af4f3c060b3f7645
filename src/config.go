package main

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
)

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	VSync  bool   `toml:"vsync"`
}

type ImageConfig struct {
	// Dir resolves relative image paths.
	Dir      string   `toml:"dir"`
	Prefetch []string `toml:"prefetch"`
	Parallel int      `toml:"parallel"`
	// Texture is the image of the shared textured cube.
	Texture string `toml:"texture"`
	// Banner is the image of the cube that keeps its own texture.
	Banner string `toml:"banner"`
}

type AnimationConfig struct {
	// Periods of the X, Y and Z rotations, in milliseconds.
	Periods [3]float64 `toml:"periods"`
	// Square is the period of the rotating square.
	Square float64 `toml:"square"`
}

type Config struct {
	Surface   string          `toml:"surface"`
	StartDemo int             `toml:"start_demo"`
	ShaderDir string          `toml:"shader_dir"`
	Window    WindowConfig    `toml:"window"`
	Images    ImageConfig     `toml:"images"`
	Animation AnimationConfig `toml:"animation"`
}

func defaultConfig() *Config {
	return &Config{
		Surface:   "img",
		StartDemo: 1,
		Window: WindowConfig{
			Width:  640,
			Height: 480,
			Title:  "gldemo",
			VSync:  true,
		},
		Images: ImageConfig{
			Dir:      "img",
			Prefetch: []string{"ukareru1.png"},
			Parallel: 4,
			Texture:  "ukareru1.png",
			Banner:   "banzai.png",
		},
		Animation: AnimationConfig{
			Periods: [3]float64{4000, 5000, 6000},
			Square:  4000,
		},
	}
}

// loadConfig reads path over the defaults. A missing file is not an error.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("couldn't read config file: %w", err)
	}
	for _, key := range md.Undecoded() {
		logger.Warn("unknown config key", "file", path, "key", key.String())
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Surface == "" {
		return errors.New("surface must not be empty")
	}
	if c.StartDemo < 1 || c.StartDemo > len(demos) {
		return fmt.Errorf("start_demo must be between 1 and %d", len(demos))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	return nil
}

func writeConfig(path string, cfg *Config) error {
	var buffer bytes.Buffer
	if err := toml.NewEncoder(&buffer).Encode(cfg); err != nil {
		return fmt.Errorf("couldn't encode config: %w", err)
	}
	return os.WriteFile(path, buffer.Bytes(), 0644)
}
