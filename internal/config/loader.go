package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. .env file in the working directory, if present
//  3. file (YAML) if BINGO_CONFIG is set
//  4. env (prefix BINGO_)
func Load(_ context.Context) (*Config, error) {
	// A missing .env is fine; it only seeds the process environment.
	_ = godotenv.Load()

	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("BINGO_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: BINGO_ADDR, BINGO_ADMIN_CODE, ...
	// Map env keys like BINGO_ADMIN_CODE -> admin_code (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("BINGO_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "bingo_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.AdminCode == "" {
		return fmt.Errorf("%w: admin_code must be set", ErrInvalidConfig)
	}
	switch c.Scheme {
	case "periods", "tiers":
	default:
		return fmt.Errorf("%w: scheme must be periods or tiers, got %q", ErrInvalidConfig, c.Scheme)
	}
	switch c.Store {
	case "memory":
	case "sqlite":
		if c.SQLitePath == "" {
			return fmt.Errorf("%w: sqlite_path must be set when store is sqlite", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: store must be memory or sqlite, got %q", ErrInvalidConfig, c.Store)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("%w: max_body_bytes must be positive", ErrInvalidConfig)
	}
	if c.PollIntervalMS <= 0 || c.PollMaxBackoffMS < c.PollIntervalMS {
		return fmt.Errorf("%w: poll intervals must be positive and max backoff >= base", ErrInvalidConfig)
	}
	return nil
}
