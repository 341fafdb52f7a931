// Package config loads lang settings from a TOML or YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/graeme-hill/lang-go/lib"
)

var ErrUnknownFormat = errors.New("unknown config file format")

type Config struct {
	Log    LogConfig    `toml:"log" yaml:"log"`
	Parser ParserConfig `toml:"parser" yaml:"parser"`
	Check  CheckConfig  `toml:"check" yaml:"check"`
	Store  StoreConfig  `toml:"store" yaml:"store"`
	REPL   REPLConfig   `toml:"repl" yaml:"repl"`
}

type LogConfig struct {
	Level       string `toml:"level" yaml:"level"`
	Development bool   `toml:"development" yaml:"development"`
}

type ParserConfig struct {
	Comparisons bool `toml:"comparisons" yaml:"comparisons"`
	RequireEOF  bool `toml:"require_eof" yaml:"require_eof"`
}

type CheckConfig struct {
	Workers   int    `toml:"workers" yaml:"workers"`
	Extension string `toml:"extension" yaml:"extension"`
}

type StoreConfig struct {
	Driver string `toml:"driver" yaml:"driver"`
	DSN    string `toml:"dsn" yaml:"dsn"`
}

type REPLConfig struct {
	Prompt string `toml:"prompt" yaml:"prompt"`
	Color  bool   `toml:"color" yaml:"color"`
	Format string `toml:"format" yaml:"format"`
}

func Default() *Config {
	return &Config{
		Log:   LogConfig{Level: "info"},
		Check: CheckConfig{Extension: ".lg"},
		Store: StoreConfig{Driver: "sqlite3", DSN: "lang.db"},
		REPL:  REPLConfig{Prompt: "> ", Color: true, Format: "sexpr"},
	}
}

// Load reads path, picking the decoder from its extension. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// validate fills empty values with defaults and rejects the rest.
func (c *Config) validate() error {
	def := Default()
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	if c.Check.Workers < 0 {
		return fmt.Errorf("check.workers must not be negative, got %d", c.Check.Workers)
	}
	if c.Check.Extension == "" {
		c.Check.Extension = def.Check.Extension
	}
	if !strings.HasPrefix(c.Check.Extension, ".") {
		c.Check.Extension = "." + c.Check.Extension
	}

	if c.Store.Driver == "" {
		c.Store.Driver = def.Store.Driver
	}
	switch c.Store.Driver {
	case "postgres", "sqlite3":
	default:
		return fmt.Errorf("store.driver must be postgres or sqlite3, got %q", c.Store.Driver)
	}
	if c.Store.DSN == "" {
		c.Store.DSN = def.Store.DSN
	}

	if c.REPL.Prompt == "" {
		c.REPL.Prompt = def.REPL.Prompt
	}
	if c.REPL.Format == "" {
		c.REPL.Format = def.REPL.Format
	}
	return nil
}

func (c *Config) ParseOptions() lib.ParseOptions {
	return lib.ParseOptions{
		Comparisons: c.Parser.Comparisons,
		RequireEOF:  c.Parser.RequireEOF,
	}
}

// NewLogger builds a zap logger from the log section. verbose forces debug
// level regardless of the configured one.
func (c *Config) NewLogger(verbose bool) (*zap.Logger, error) {
	var zcfg zap.Config
	if c.Log.Development {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	return zcfg.Build()
}
