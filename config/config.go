// Package config loads solver settings from a YAML file.
//
// A missing path yields Default(); a file only needs the keys it changes:
//
//	workers: 4
//	policy: abort
//	max_levels: 0
//	max_expansions: 1000000
//	cache: true
//	log:
//	  level: debug
//	  format: json
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/switchyard/batch"
	"github.com/katalvlaran/switchyard/logging"
)

// ErrInvalid is returned by Validate and Load for out-of-range settings.
var ErrInvalid = errors.New("config: invalid value")

// Config is the YAML document.
type Config struct {
	// Workers bounds concurrent machine solves.
	Workers int `yaml:"workers"`

	// Policy is "skip" or "abort" for machines without a solution.
	Policy string `yaml:"policy"`

	// MaxLevels caps joltage halving levels; 0 derives it per machine.
	MaxLevels int `yaml:"max_levels"`

	// MaxExpansions caps each subset walk; 0 is unlimited.
	MaxExpansions int `yaml:"max_expansions"`

	// Cache enables joltage memoization.
	Cache bool `yaml:"cache"`

	Log LogConfig `yaml:"log"`
}

// LogConfig selects the logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns NumCPU workers, skip policy, derived level cap, no
// expansion cap, caching on and info-level text logs.
func Default() Config {
	return Config{
		Workers: runtime.NumCPU(),
		Policy:  batch.PolicySkip.String(),
		Cache:   true,
		Log: LogConfig{
			Level:  "info",
			Format: logging.FormatText,
		},
	}
}

// Load reads path over Default(). An empty path returns Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks every field.
func (c Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d", ErrInvalid, c.Workers)
	}
	if c.MaxLevels < 0 {
		return fmt.Errorf("%w: max_levels %d", ErrInvalid, c.MaxLevels)
	}
	if c.MaxExpansions < 0 {
		return fmt.Errorf("%w: max_expansions %d", ErrInvalid, c.MaxExpansions)
	}
	if _, err := batch.ParsePolicy(c.Policy); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("%w: log.format %q", ErrInvalid, c.Log.Format)
	}
	return nil
}

// BatchOptions converts the settings into batch options.
func (c Config) BatchOptions() ([]batch.Option, error) {
	p, err := batch.ParsePolicy(c.Policy)
	if err != nil {
		return nil, err
	}
	return []batch.Option{
		batch.WithWorkers(c.Workers),
		batch.WithPolicy(p),
		batch.WithMaxLevels(c.MaxLevels),
		batch.WithMaxExpansions(c.MaxExpansions),
		batch.WithCache(c.Cache),
	}, nil
}

// Marshal renders the config as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
