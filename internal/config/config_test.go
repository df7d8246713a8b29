package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Input != DefaultInput {
		t.Errorf("expected input %s, got %s", DefaultInput, cfg.Input)
	}
	if cfg.Window.Size <= 0 {
		t.Error("window size should be positive")
	}
	if cfg.Segment.End <= cfg.Segment.Start {
		t.Error("segment end should be after start")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"inverted segment", func(c *Config) { c.Segment.Start = 1.0; c.Segment.End = 0.5 }},
		{"zero window", func(c *Config) { c.Window.Size = 0 }},
		{"zero step", func(c *Config) { c.Window.Step = 0 }},
		{"window beyond segment", func(c *Config) { c.Window.Size = 10.0 }},
		{"negative mass", func(c *Config) { c.Source.Mass = -1 }},
		{"zero carrier", func(c *Config) { c.Source.CarrierVelocity = 0 }},
		{"inverted band", func(c *Config) { c.Preprocess.BandLow = 300; c.Preprocess.BandHigh = 100 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gwflux.yaml")

	cfg := DefaultConfig()
	cfg.Segment.Start = 0.35
	cfg.Preprocess.BandLow = 35
	cfg.Preprocess.BandHigh = 350

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Segment.Start != 0.35 {
		t.Errorf("expected segment start 0.35, got %f", loaded.Segment.Start)
	}
	if loaded.Preprocess.BandHigh != 350 {
		t.Errorf("expected band high 350, got %f", loaded.Preprocess.BandHigh)
	}
	// Fields absent from the file keep their defaults.
	if loaded.Source.Mass != DefaultMass {
		t.Errorf("expected default mass, got %e", loaded.Source.Mass)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("merger")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Segment.Start != 0.4 {
		t.Errorf("expected segment start 0.4, got %f", cfg.Segment.Start)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) == 0 {
		t.Error("expected presets")
	}
}

func TestBandpass(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Bandpass() {
		t.Error("default config should not band-pass")
	}
	cfg.Preprocess.BandLow = 35
	cfg.Preprocess.BandHigh = 350
	if !cfg.Bandpass() {
		t.Error("expected bandpass enabled")
	}
}
