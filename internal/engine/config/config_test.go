package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults do not validate: %v", err)
	}
	if cfg.RenderDistance != 8 {
		t.Errorf("RenderDistance = %d, want 8", cfg.RenderDistance)
	}
	if cfg.Generator != "noise" {
		t.Errorf("Generator = %q, want \"noise\"", cfg.Generator)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "veldt.yml")
	data := []byte("render_distance: 12\ngenerator: flat\nsurface_height: 70\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RenderDistance != 12 {
		t.Errorf("RenderDistance = %d, want 12", cfg.RenderDistance)
	}
	if cfg.Generator != "flat" {
		t.Errorf("Generator = %q, want \"flat\"", cfg.Generator)
	}
	if cfg.SurfaceHeight != 70 {
		t.Errorf("SurfaceHeight = %d, want 70", cfg.SurfaceHeight)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Frequency != 0.01 {
		t.Errorf("Frequency = %g, want default 0.01", cfg.Frequency)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "veldt.yml")
	if err := os.WriteFile(path, []byte("render_distance: 99\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); !errors.Is(err, ErrInvalid) {
		t.Errorf("Load error = %v, want ErrInvalid", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Error("Load of a missing file should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"render distance too low", func(c *Config) { c.RenderDistance = 0 }},
		{"render distance too high", func(c *Config) { c.RenderDistance = 33 }},
		{"unknown generator", func(c *Config) { c.Generator = "perlin" }},
		{"zero frequency", func(c *Config) { c.Frequency = 0 }},
		{"min above max", func(c *Config) { c.MinHeight = 120; c.MaxHeight = 60 }},
		{"negative min height", func(c *Config) { c.MinHeight = -1 }},
		{"max height too high", func(c *Config) { c.MaxHeight = 256 }},
		{"zero dirt depth", func(c *Config) { c.DirtDepth = 0 }},
		{"surface out of range", func(c *Config) { c.SurfaceHeight = 300 }},
	}
	for _, tt := range tests {
		cfg := Default()
		tt.mutate(cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: Validate() = %v, want ErrInvalid", tt.name, err)
		}
	}
}

func TestMergeKeepsExplicitFlags(t *testing.T) {
	cfg := Default()
	cfg.RenderDistance = 16
	cfg.Generator = "flat"

	fromFile := Default()
	fromFile.RenderDistance = 4
	fromFile.Generator = "noise"
	fromFile.Seed = 777

	Merge(cfg, fromFile, map[string]bool{"render-distance": true})

	if cfg.RenderDistance != 16 {
		t.Errorf("explicit render-distance overwritten: %d", cfg.RenderDistance)
	}
	if cfg.Generator != "noise" {
		t.Errorf("non-explicit generator not taken from file: %q", cfg.Generator)
	}
	if cfg.Seed != 777 {
		t.Errorf("non-explicit seed not taken from file: %d", cfg.Seed)
	}
}
