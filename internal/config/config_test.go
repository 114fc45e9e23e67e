package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Speed != 1.0 {
		t.Errorf("expected speed 1, got %f", cfg.Speed)
	}
	if cfg.Interval() != time.Second {
		t.Errorf("expected 1s interval, got %v", cfg.Interval())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
	if len(cfg.PlaybackOptions()) != 2 {
		t.Error("expected speed and interval options")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"speed too low", func(c *Config) { c.Speed = 0.25 }},
		{"speed too high", func(c *Config) { c.Speed = 4 }},
		{"zero interval", func(c *Config) { c.IntervalMs = 0 }},
		{"unknown language", func(c *Config) { c.Language = "cobol" }},
		{"unknown log level", func(c *Config) { c.LogLevel = "loud" }},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: expected ErrInvalid, got %v", tt.name, err)
		}
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "algoviz.yaml")
	cfg := DefaultConfig()
	cfg.Speed = 2.5
	cfg.Language = "python"
	cfg.Theme = "sunset"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *got != *cfg {
		t.Errorf("round trip mismatch: %+v vs %+v", got, cfg)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte("theme: retro\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Theme != "retro" || cfg.Speed != DefaultSpeed || cfg.Language != DefaultLanguage {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte("speed: 9\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("missing file should fall back: %v", err)
	}
	if cfg.Theme != DefaultTheme {
		t.Errorf("expected default theme, got %s", cfg.Theme)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("lecture")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Speed != 0.5 || cfg.Language != "python" {
		t.Errorf("unexpected lecture preset %+v", cfg)
	}

	cfg.Speed = 3
	if Presets["lecture"].Speed != 0.5 {
		t.Error("GetPreset should return a copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsValidate(t *testing.T) {
	names := ListPresets()
	if len(names) != 4 {
		t.Fatalf("expected 4 presets, got %v", names)
	}
	for _, n := range names {
		if err := GetPreset(n).Validate(); err != nil {
			t.Errorf("preset %s: %v", n, err)
		}
	}
}
