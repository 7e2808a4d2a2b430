package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every configuration validation failure in the
// engine, so callers can test with errors.Is regardless of which
// component rejected the value.
var ErrInvalid = errors.New("config: invalid value")

// Render distance bounds in chunks.
const (
	MinRenderDistance = 1
	MaxRenderDistance = 32
)

// Config holds the engine configuration.
type Config struct {
	RenderDistance int     `yaml:"render_distance"`
	Generator      string  `yaml:"generator"` // "flat" or "noise"
	Seed           int64   `yaml:"seed"`
	Frequency      float64 `yaml:"frequency"`
	MinHeight      int     `yaml:"min_height"`
	MaxHeight      int     `yaml:"max_height"`
	DirtDepth      int     `yaml:"dirt_depth"`
	SurfaceHeight  int     `yaml:"surface_height"` // flat generator only
	BlockData      string  `yaml:"block_data"`     // optional block definition JSON path
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		RenderDistance: 8,
		Generator:      "noise",
		Frequency:      0.01,
		MinHeight:      48,
		MaxHeight:      100,
		DirtDepth:      3,
		SurfaceHeight:  64,
	}
}

// Load reads a YAML config file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every field against its documented range.
func (c *Config) Validate() error {
	if c.RenderDistance < MinRenderDistance || c.RenderDistance > MaxRenderDistance {
		return fmt.Errorf("%w: render_distance %d outside [%d,%d]",
			ErrInvalid, c.RenderDistance, MinRenderDistance, MaxRenderDistance)
	}
	switch c.Generator {
	case "flat", "noise":
	default:
		return fmt.Errorf("%w: generator %q (want \"flat\" or \"noise\")", ErrInvalid, c.Generator)
	}
	if c.Frequency <= 0 {
		return fmt.Errorf("%w: frequency %g must be positive", ErrInvalid, c.Frequency)
	}
	if c.MinHeight > c.MaxHeight {
		return fmt.Errorf("%w: min_height %d > max_height %d", ErrInvalid, c.MinHeight, c.MaxHeight)
	}
	if c.MinHeight < 0 || c.MaxHeight > 255 {
		return fmt.Errorf("%w: height bounds [%d,%d] outside [0,255]", ErrInvalid, c.MinHeight, c.MaxHeight)
	}
	if c.DirtDepth < 1 {
		return fmt.Errorf("%w: dirt_depth %d must be at least 1", ErrInvalid, c.DirtDepth)
	}
	if c.SurfaceHeight < 0 || c.SurfaceHeight > 255 {
		return fmt.Errorf("%w: surface_height %d outside [0,255]", ErrInvalid, c.SurfaceHeight)
	}
	return nil
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["render-distance"] {
		cfg.RenderDistance = fromFile.RenderDistance
	}
	if !explicitFlags["generator"] {
		cfg.Generator = fromFile.Generator
	}
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicitFlags["frequency"] {
		cfg.Frequency = fromFile.Frequency
	}
	if !explicitFlags["min-height"] {
		cfg.MinHeight = fromFile.MinHeight
	}
	if !explicitFlags["max-height"] {
		cfg.MaxHeight = fromFile.MaxHeight
	}
	if !explicitFlags["dirt-depth"] {
		cfg.DirtDepth = fromFile.DirtDepth
	}
	if !explicitFlags["surface-height"] {
		cfg.SurfaceHeight = fromFile.SurfaceHeight
	}
	if !explicitFlags["block-data"] {
		cfg.BlockData = fromFile.BlockData
	}
}
