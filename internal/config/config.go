package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config captures user-level preferences stored in ~/.pyforge/config.yaml.
type Config struct {
	Version       int            `yaml:"version" json:"version" validate:"gte=1"`
	ToolchainsDir string         `yaml:"toolchains_dir,omitempty" json:"toolchains_dir,omitempty"`
	DefaultTools  []string       `yaml:"default_tools" json:"default_tools" validate:"dive,required"`
	Logging       LoggingConfig  `yaml:"logging" json:"logging"`
	Download      DownloadConfig `yaml:"download" json:"download"`
}

// LoggingConfig controls console and file logging.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level" validate:"oneof=trace debug info warn error"`
	File  *bool  `yaml:"file,omitempty" json:"file,omitempty"`
}

// DownloadConfig tunes release downloads.
type DownloadConfig struct {
	Timeout   Duration `yaml:"timeout,omitempty" json:"timeout,omitempty"`
	UserAgent string   `yaml:"user_agent,omitempty" json:"user_agent,omitempty"`
}

// Duration is a time.Duration that reads and writes Go duration strings.
type Duration struct {
	time.Duration
}

// UnmarshalYAML parses values such as "90s" or "5m".
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	if raw == "" {
		d.Duration = 0
		return nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", raw, err)
	}
	d.Duration = parsed
	return nil
}

// MarshalYAML renders the duration string form.
func (d Duration) MarshalYAML() (any, error) {
	if d.Duration == 0 {
		return "", nil
	}
	return d.Duration.String(), nil
}

// MarshalJSON renders the duration string form.
func (d Duration) MarshalJSON() ([]byte, error) {
	if d.Duration == 0 {
		return json.Marshal("")
	}
	return json.Marshal(d.Duration.String())
}

// FileLoggingEnabled returns the effective file logging flag applying defaults.
func (l LoggingConfig) FileLoggingEnabled() bool {
	if l.File == nil {
		return true
	}
	return *l.File
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Version:      1,
		DefaultTools: []string{"ruff", "mypy", "pytest"},
		Logging: LoggingConfig{
			Level: "info",
			File:  boolPtr(true),
		},
		Download: DownloadConfig{
			UserAgent: "pyforge/1.0",
		},
	}
}

// Load reads the YAML configuration from disk if it exists, otherwise returns
// the default configuration.
func Load(path string) (Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			cfg.ApplyDefaults()
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// ApplyDefaults ensures fields fall back to sensible defaults when the YAML
// omits them.
func (c *Config) ApplyDefaults() {
	defaults := Default()

	if c.Version == 0 {
		c.Version = defaults.Version
	}
	if c.DefaultTools == nil {
		c.DefaultTools = defaults.DefaultTools
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}
	if c.Logging.File == nil {
		c.Logging.File = boolPtr(true)
	}
	if c.Download.UserAgent == "" {
		c.Download.UserAgent = defaults.Download.UserAgent
	}
}

// Marshal returns the YAML encoding of the configuration.
func (c Config) Marshal() ([]byte, error) {
	buf, err := yaml.Marshal(&c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return buf, nil
}

func boolPtr(v bool) *bool {
	return &v
}
