// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load() layers file/env.
// - External errors are wrapped via this package's sentinel kinds.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// WindowDays bounds the trailing baseline window used for alignment,
	// scoring, and projection.
	WindowDays int `koanf:"window_days"`

	// ForecastHorizon sets how many days ahead readiness is projected.
	ForecastHorizon int `koanf:"forecast_horizon"`

	// GoalSleepMinutes is the nightly sleep goal the sleep component
	// scores against.
	GoalSleepMinutes float64 `koanf:"goal_sleep_minutes"`

	// HRSaturationBPM is the heart-rate deviation at which the HR
	// component bottoms out.
	HRSaturationBPM float64 `koanf:"hr_saturation_bpm"`

	// Component weights; they must sum to 1.
	SleepWeight float64 `koanf:"sleep_weight"`
	HRWeight    float64 `koanf:"hr_weight"`
	StepsWeight float64 `koanf:"steps_weight"`

	// MaxIntradaySamples caps the intraday HR chart length.
	MaxIntradaySamples int `koanf:"max_intraday_samples"`

	// FitBaseURL is the upstream fitness-data service. Empty disables the
	// sync endpoint and the periodic refresh.
	FitBaseURL string `koanf:"fit_base_url"`

	// FitTimeoutMS and FitRetryCount configure the upstream HTTP client.
	FitTimeoutMS  int `koanf:"fit_timeout_ms"`
	FitRetryCount int `koanf:"fit_retry_count"`

	// RefreshIntervalS triggers a periodic fetch+recompute when positive
	// and FitBaseURL is set.
	RefreshIntervalS int `koanf:"refresh_interval_s"`

	// ResultHistorySize bounds the in-memory ring of published results.
	ResultHistorySize int `koanf:"result_history_size"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":9090",
		WindowDays:         7,
		ForecastHorizon:    3,
		GoalSleepMinutes:   480,
		HRSaturationBPM:    20,
		SleepWeight:        0.5,
		HRWeight:           0.3,
		StepsWeight:        0.2,
		MaxIntradaySamples: 288, // one day of 5-minute buckets
		FitBaseURL:         "",
		FitTimeoutMS:       10_000,
		FitRetryCount:      3,
		RefreshIntervalS:   0,
		ResultHistorySize:  16,
	}
}
