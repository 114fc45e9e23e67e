package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/algoviz/internal/playback"
	"github.com/san-kum/algoviz/internal/templates"
)

const (
	DefaultSpeed      = playback.DefaultSpeed
	DefaultIntervalMs = 1000
	DefaultLanguage   = "javascript"
	DefaultTheme      = "cyberpunk"
	DefaultDataDir    = ".algoviz"
	DefaultLogLevel   = "info"
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Speed      float64 `yaml:"speed"`
	IntervalMs int     `yaml:"interval_ms"`
	Language   string  `yaml:"language"`
	Theme      string  `yaml:"theme"`
	DataDir    string  `yaml:"data_dir"`
	LogLevel   string  `yaml:"log_level"`
	LogFile    string  `yaml:"log_file"`
	Console    bool    `yaml:"console"`
}

func DefaultConfig() *Config {
	return &Config{
		Speed:      DefaultSpeed,
		IntervalMs: DefaultIntervalMs,
		Language:   DefaultLanguage,
		Theme:      DefaultTheme,
		DataDir:    DefaultDataDir,
		LogLevel:   DefaultLogLevel,
		Console:    true,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault returns the defaults when path is empty or does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Speed < playback.MinSpeed || c.Speed > playback.MaxSpeed {
		return fmt.Errorf("%w: speed %.2f outside [%.1f, %.1f]", ErrInvalid, c.Speed, playback.MinSpeed, playback.MaxSpeed)
	}
	if c.IntervalMs <= 0 {
		return fmt.Errorf("%w: interval_ms must be positive", ErrInvalid)
	}
	if _, err := templates.Lookup(c.Language); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	return nil
}

func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalMs) * time.Millisecond
}

// PlaybackOptions maps the config onto controller options.
func (c *Config) PlaybackOptions() []playback.Option {
	return []playback.Option{
		playback.WithSpeed(c.Speed),
		playback.WithBaseInterval(c.Interval()),
	}
}
