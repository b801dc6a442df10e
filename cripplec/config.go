package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v3"

	"github.com/WJQSERVER/cripple"
)

// Config holds the complete cripplec configuration.
type Config struct {
	Lexer  LexerConfig  `toml:"lexer" yaml:"lexer"`
	Source SourceConfig `toml:"source" yaml:"source"`
	Output OutputConfig `toml:"output" yaml:"output"`
	Log    LogConfig    `toml:"log" yaml:"log"`
	Watch  WatchConfig  `toml:"watch" yaml:"watch"`
}

// LexerConfig holds tokenizer settings
type LexerConfig struct {
	NumericLiterals bool `toml:"numeric_literals" yaml:"numeric_literals"`
}

// SourceConfig holds input file settings
type SourceConfig struct {
	Extension string `toml:"extension" yaml:"extension"`
}

// OutputConfig holds printer settings
type OutputConfig struct {
	Format    string `toml:"format" yaml:"format"`
	Color     bool   `toml:"color" yaml:"color"`
	Indent    string `toml:"indent" yaml:"indent"`
	Positions bool   `toml:"positions" yaml:"positions"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// WatchConfig holds settings for the watch command
type WatchConfig struct {
	Debounce     Duration `toml:"debounce" yaml:"debounce"`
	PollInterval Duration `toml:"poll_interval" yaml:"poll_interval"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// DefaultConfig returns the configuration used when no file is found.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file, chosen by extension.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LoadFromEnv resolves the config path from CRIPPLE_CONFIG or the default
// locations, loads it, and applies environment overrides. A missing file is
// not an error; defaults are used instead.
func LoadFromEnv(explicit string) (*Config, error) {
	path := explicit
	if path == "" {
		path = env.Str("CRIPPLE_CONFIG")
	}
	if path == "" {
		home, _ := os.UserHomeDir()
		for _, p := range []string{
			"./cripple.toml",
			"./cripple.yaml",
			filepath.Join(home, ".config", "cripple", "config.toml"),
		} {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	cfg := DefaultConfig()
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.applyEnv()
	return cfg, nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Source.Extension == "" {
		c.Source.Extension = cripple.DefaultExtension
	}
	if c.Output.Format == "" {
		c.Output.Format = "tree"
	}
	if c.Output.Indent == "" {
		c.Output.Indent = cripple.DefaultIndent
	}
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Watch.Debounce.Duration == 0 {
		c.Watch.Debounce.Duration = 200 * time.Millisecond
	}
	if c.Watch.PollInterval.Duration == 0 {
		c.Watch.PollInterval.Duration = 500 * time.Millisecond
	}
}

// applyEnv overrides file settings with CRIPPLE_* variables that are set.
func (c *Config) applyEnv() {
	if env.Has("CRIPPLE_NUMERIC") {
		c.Lexer.NumericLiterals = env.Bool("CRIPPLE_NUMERIC")
	}
	if env.Has("CRIPPLE_COLOR") {
		c.Output.Color = env.Bool("CRIPPLE_COLOR")
	}
	c.Output.Format = env.Str("CRIPPLE_FORMAT", c.Output.Format)
	c.Source.Extension = env.Str("CRIPPLE_EXTENSION", c.Source.Extension)
	c.Log.Level = env.Str("CRIPPLE_LOG_LEVEL", c.Log.Level)
	c.Log.Format = env.Str("CRIPPLE_LOG_FORMAT", c.Log.Format)
}

// Validate checks values that cannot be fixed up by defaults.
func (c *Config) Validate() error {
	if _, err := cripple.ParseFormat(c.Output.Format); err != nil {
		return err
	}
	if !strings.HasPrefix(c.Source.Extension, ".") {
		return fmt.Errorf("source extension %q must start with '.'", c.Source.Extension)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// FrontEndOptions translates the configuration into library options.
func (c *Config) FrontEndOptions(hook cripple.ErrorHook) []cripple.Option {
	return []cripple.Option{
		cripple.WithLexer(cripple.WithNumericLiterals(c.Lexer.NumericLiterals)),
		cripple.WithParser(cripple.WithErrorHook(hook)),
		cripple.WithExtension(c.Source.Extension),
	}
}
