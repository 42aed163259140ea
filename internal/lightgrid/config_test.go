package lightgrid

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config should be valid: %v", err)
	}
	if cfg.ClusterCount() != 16*9*24 {
		t.Errorf("Expected %d clusters, got %d", 16*9*24, cfg.ClusterCount())
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero x", func(c *Config) { c.CountX = 0 }},
		{"negative depth", func(c *Config) { c.CountDepth = -1 }},
		{"zero near", func(c *Config) { c.Near = 0 }},
		{"far equals near", func(c *Config) { c.Far = c.Near }},
		{"inverted", func(c *Config) { c.Near, c.Far = 100, 1 }},
		{"no lights", func(c *Config) { c.MaxLights = 0 }},
		{"negative workers", func(c *Config) { c.BoundsWorkers = -2 }},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(&cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: expected ErrInvalidConfig, got %v", tt.name, err)
		}
	}
}

func TestSliceMaxDepthMonotonic(t *testing.T) {
	cfg := DefaultConfig()

	prev := cfg.Near
	for s := 0; s < cfg.CountDepth; s++ {
		d := cfg.SliceMaxDepth(s)
		if d <= prev {
			t.Fatalf("Slice %d depth %f not greater than %f", s, d, prev)
		}
		prev = d
	}

	if last := cfg.SliceMaxDepth(cfg.CountDepth - 1); last < cfg.Far*0.999 || last > cfg.Far*1.001 {
		t.Errorf("Last slice should end at far, got %f", last)
	}
}

func TestSliceForDepth(t *testing.T) {
	cfg := DefaultConfig()

	for s := 0; s < cfg.CountDepth; s++ {
		lo := cfg.Near
		if s > 0 {
			lo = cfg.SliceMaxDepth(s - 1)
		}
		mid := (lo + cfg.SliceMaxDepth(s)) / 2
		if got := cfg.SliceForDepth(mid); got != s {
			t.Errorf("Depth %f: expected slice %d, got %d", mid, s, got)
		}
	}

	if cfg.SliceForDepth(0.01) != 0 {
		t.Error("Depth before near should clamp to slice 0")
	}
	if cfg.SliceForDepth(5000) != cfg.CountDepth-1 {
		t.Error("Depth past far should clamp to the last slice")
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "grid.json")
	if err := os.WriteFile(path, []byte(`{"cluster_count_x": 8, "cluster_far": 500}`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.CountX != 8 || cfg.Far != 500 {
		t.Errorf("Overrides not applied: %+v", cfg)
	}
	if cfg.CountY != 9 || cfg.Near != 0.1 {
		t.Errorf("Missing fields should keep defaults: %+v", cfg)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "grid.json")
	if err := os.WriteFile(path, []byte(`{"cluster_near": 10, "cluster_far": 1}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
	if _, err := LoadConfig(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}
