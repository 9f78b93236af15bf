package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"map-viewport/viewport"
)

// DefaultPath is where the viewer looks for its configuration.
const DefaultPath = "viewport.yaml"

var (
	ErrNotFound = errors.New("config file not found")
	ErrInvalid  = errors.New("invalid config")
)

type ImageConfig struct {
	Path   string  `yaml:"path"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type ScaleConfig struct {
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
	Default float64 `yaml:"default"`
	Step    float64 `yaml:"step"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type LayoutConfig struct {
	HeaderHeight int `yaml:"header_height"`
	StatusHeight int `yaml:"status_height"`
}

// WorldConfig points at an optional Starlark file that converts image
// coordinates into world units for the status bar.
type WorldConfig struct {
	Script string `yaml:"script"`
}

type FontConfig struct {
	Path string  `yaml:"path"`
	Size float64 `yaml:"size"`
}

type Config struct {
	Image  ImageConfig  `yaml:"image"`
	Scale  ScaleConfig  `yaml:"scale"`
	Window WindowConfig `yaml:"window"`
	Layout LayoutConfig `yaml:"layout"`
	World  WorldConfig  `yaml:"world"`
	Font   FontConfig   `yaml:"font"`
}

// Default returns the built-in configuration for the bundled map.
func Default() Config {
	return Config{
		Image: ImageConfig{Path: "assets/map.png", Width: 3638, Height: 4855},
		Scale: ScaleConfig{Min: 0.1, Max: 4.0, Default: 0.8, Step: viewport.DefaultStep},
		Window: WindowConfig{
			Width:  1024,
			Height: 768,
			Title:  "Map Viewport",
		},
		Layout: LayoutConfig{HeaderHeight: 32, StatusHeight: 24},
		Font:   FontConfig{Path: "fonts/Roboto-Regular.ttf", Size: 14},
	}
}

// Load reads filename over the defaults. Keys missing from the file keep
// their default values. A missing file returns the defaults and an error
// wrapping ErrNotFound.
func Load(filename string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("%w: %s", ErrNotFound, filename)
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", filename, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", filename, err)
	}
	return cfg, nil
}

// Save writes cfg as YAML.
func Save(cfg Config, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(&cfg); err != nil {
		return err
	}
	return enc.Close()
}

func (c Config) Validate() error {
	if c.Image.Width <= 0 || c.Image.Height <= 0 {
		return fmt.Errorf("%w: image size %vx%v", ErrInvalid, c.Image.Width, c.Image.Height)
	}
	if c.Scale.Min <= 0 || c.Scale.Min > c.Scale.Max {
		return fmt.Errorf("%w: scale range [%v, %v]", ErrInvalid, c.Scale.Min, c.Scale.Max)
	}
	if c.Scale.Step <= 0 {
		return fmt.Errorf("%w: scale step %v", ErrInvalid, c.Scale.Step)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Layout.HeaderHeight < 0 || c.Layout.StatusHeight < 0 {
		return fmt.Errorf("%w: negative bar height", ErrInvalid)
	}
	return nil
}

// Options converts the image and scale sections into engine options.
func (c Config) Options() viewport.Options {
	return viewport.Options{
		Image:        viewport.ImageSpec{Width: c.Image.Width, Height: c.Image.Height},
		Range:        viewport.ScaleRange{Min: c.Scale.Min, Max: c.Scale.Max},
		DefaultScale: c.Scale.Default,
		Step:         c.Scale.Step,
	}
}
