package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env
// vars. Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if DRIFTWATCH_CONFIG is set
//  3. env (prefix DRIFTWATCH_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("DRIFTWATCH_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: DRIFTWATCH_LOGS_FILE, DRIFTWATCH_RANDOM_SEED, ...
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("DRIFTWATCH_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "driftwatch_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.LogsFile == "" || c.BaselineFile == "" || c.StatsFile == "" || c.LiveLogsFile == "" {
		return fmt.Errorf("%w: artifact file names must not be empty", ErrInvalidConfig)
	}
	if c.ThresholdMultiplier <= 0 {
		return fmt.Errorf("%w: threshold_multiplier must be positive, got %v", ErrInvalidConfig, c.ThresholdMultiplier)
	}
	return nil
}
