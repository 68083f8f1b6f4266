// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults and Load(ctx) to layer
//   file and environment overrides on top.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// AdminCode is the shared secret expected in the X-Admin-Code header
	// for administrative endpoints. Must be set; there is no default.
	AdminCode string `koanf:"admin_code"`

	// Scheme selects the event catalog and prize rules: periods or tiers.
	Scheme string `koanf:"scheme"`

	// Store selects the persistence backend: memory or sqlite.
	Store string `koanf:"store"`

	// SQLitePath is the database file path when Store is sqlite.
	SQLitePath string `koanf:"sqlite_path"`

	// MaxBodyBytes caps the size of accepted request bodies.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`

	// PollIntervalMS is the base client poll interval.
	PollIntervalMS int `koanf:"poll_interval_ms"`

	// PollMaxBackoffMS caps the exponential poll backoff.
	PollMaxBackoffMS int `koanf:"poll_max_backoff_ms"`

	// StaleAfterMS marks client data stale after this long without a
	// successful poll.
	StaleAfterMS int `koanf:"stale_after_ms"`

	// GameDataURL is the upstream game data feed used by verification.
	// Empty disables automatic fetching; manual text may still be supplied.
	GameDataURL string `koanf:"game_data_url"`

	// AnalyzerAPIKey authenticates against the analysis API. Empty disables
	// AI verification.
	AnalyzerAPIKey string `koanf:"analyzer_api_key"`

	// AnalyzerBaseURL and AnalyzerModel select the analysis endpoint.
	AnalyzerBaseURL string `koanf:"analyzer_base_url"`
	AnalyzerModel   string `koanf:"analyzer_model"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":9080",
		Scheme:           "periods",
		Store:            "memory",
		SQLitePath:       "bingo.db",
		MaxBodyBytes:     1 << 20,
		PollIntervalMS:   8_000,
		PollMaxBackoffMS: 60_000,
		StaleAfterMS:     30_000,
		AnalyzerBaseURL:  "https://api.openai.com",
		AnalyzerModel:    "gpt-4o-mini",
	}
}
