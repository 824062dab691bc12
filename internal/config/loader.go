package config

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if VITALIS_CONFIG is set
//  3. env (prefix VITALIS_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("VITALIS_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: VITALIS_ADDR, VITALIS_WINDOW_DAYS, ...
	// Keys keep their underscores to match the koanf struct tags.
	envProvider := env.Provider("VITALIS_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "vitalis_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

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
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.WindowDays < 1:
		return fmt.Errorf("%w: window_days must be at least 1", ErrInvalidConfig)
	case c.ForecastHorizon < 1:
		return fmt.Errorf("%w: forecast_horizon must be at least 1", ErrInvalidConfig)
	case c.GoalSleepMinutes <= 0:
		return fmt.Errorf("%w: goal_sleep_minutes must be positive", ErrInvalidConfig)
	case c.HRSaturationBPM <= 0:
		return fmt.Errorf("%w: hr_saturation_bpm must be positive", ErrInvalidConfig)
	}
	if c.SleepWeight <= 0 || c.HRWeight <= 0 || c.StepsWeight <= 0 {
		return fmt.Errorf("%w: component weights must be positive", ErrInvalidConfig)
	}
	if math.Abs(c.SleepWeight+c.HRWeight+c.StepsWeight-1) > 1e-9 {
		return fmt.Errorf("%w: component weights must sum to 1", ErrInvalidConfig)
	}
	return nil
}
