// Package config loads and validates the roadscout configuration:
// provider order, generation settings, capability backends and
// timeouts. The configuration is immutable after startup.
package config

import (
	"os"
	"time"
)

// Config represents the main roadscout configuration
type Config struct {
	// Providers is the generation fallback order, first entry tried first.
	Providers []ProviderConfig `json:"providers" mapstructure:"providers"`

	// Generation settings shared by every provider
	Generation GenerationConfig `json:"generation" mapstructure:"generation"`

	// Search capability backend
	Search SearchConfig `json:"search" mapstructure:"search"`

	// Route capability backend
	Route RouteConfig `json:"route" mapstructure:"route"`

	// Summary agent behavior
	Summary SummaryConfig `json:"summary" mapstructure:"summary"`

	// Timeouts per capability call
	Timeouts TimeoutsConfig `json:"timeouts" mapstructure:"timeouts"`

	// Logging
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// ProviderConfig configures one generation backend. API keys are never
// stored in the config file; APIKeyEnv names the environment variable
// that holds the key.
type ProviderConfig struct {
	Name      string `json:"name" mapstructure:"name"` // anthropic, openai, gemini
	Model     string `json:"model" mapstructure:"model"`
	APIKeyEnv string `json:"api_key_env" mapstructure:"api_key_env"`
}

// APIKey resolves the provider's API key from the environment.
func (p ProviderConfig) APIKey() string {
	return os.Getenv(p.APIKeyEnv)
}

// GenerationConfig holds model sampling settings
type GenerationConfig struct {
	Temperature float64 `json:"temperature" mapstructure:"temperature"`
	MaxTokens   int     `json:"max_tokens" mapstructure:"max_tokens"`
}

// SearchConfig selects and configures the offer search backend
type SearchConfig struct {
	// Mode is "catalog" (deterministic offline offers) or "browser"
	// (rod-driven Kayak scrape).
	Mode string `json:"mode" mapstructure:"mode"`
	// ControlURL connects the browser mode to a remote CDP endpoint.
	// Empty launches a local headless browser.
	ControlURL string `json:"control_url" mapstructure:"control_url"`
	// ResultTimeoutSeconds bounds the wait for the results page.
	ResultTimeoutSeconds int `json:"result_timeout_seconds" mapstructure:"result_timeout_seconds"`
}

// RouteConfig configures the geocoding backend
type RouteConfig struct {
	NominatimURL string `json:"nominatim_url" mapstructure:"nominatim_url"`
	UserAgent    string `json:"user_agent" mapstructure:"user_agent"`
}

// SummaryConfig configures the summary agent
type SummaryConfig struct {
	// DegradeOnUpstream downgrades the summary status when an upstream
	// section is missing or degraded.
	DegradeOnUpstream bool `json:"degrade_on_upstream" mapstructure:"degrade_on_upstream"`
}

// TimeoutsConfig bounds capability calls, in seconds
type TimeoutsConfig struct {
	SearchSeconds   int `json:"search_seconds" mapstructure:"search_seconds"`
	RouteSeconds    int `json:"route_seconds" mapstructure:"route_seconds"`
	GenerateSeconds int `json:"generate_seconds" mapstructure:"generate_seconds"`
}

// SearchTimeout returns the search timeout as a duration.
func (t TimeoutsConfig) SearchTimeout() time.Duration {
	return time.Duration(t.SearchSeconds) * time.Second
}

// RouteTimeout returns the route timeout as a duration.
func (t TimeoutsConfig) RouteTimeout() time.Duration {
	return time.Duration(t.RouteSeconds) * time.Second
}

// GenerateTimeout returns the generation timeout as a duration.
func (t TimeoutsConfig) GenerateTimeout() time.Duration {
	return time.Duration(t.GenerateSeconds) * time.Second
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level   string `json:"level" mapstructure:"level"`
	File    string `json:"file" mapstructure:"file"`
	Console bool   `json:"console" mapstructure:"console"`
	Pretty  bool   `json:"pretty" mapstructure:"pretty"`
}

// DefaultConfig returns the default configuration. Gemini leads the
// provider order, with anthropic and openai as fallbacks.
func DefaultConfig() *Config {
	return &Config{
		Providers: []ProviderConfig{
			{Name: "gemini", Model: "gemini-1.5-flash", APIKeyEnv: "GEMINI_API_KEY"},
			{Name: "anthropic", Model: "claude-sonnet-4-20250514", APIKeyEnv: "ANTHROPIC_API_KEY"},
			{Name: "openai", Model: "gpt-4o-mini", APIKeyEnv: "OPENAI_API_KEY"},
		},
		Generation: GenerationConfig{
			Temperature: 0.7,
			MaxTokens:   2048,
		},
		Search: SearchConfig{
			Mode:                 "catalog",
			ResultTimeoutSeconds: 60,
		},
		Route: RouteConfig{},
		Summary: SummaryConfig{
			DegradeOnUpstream: true,
		},
		Timeouts: TimeoutsConfig{
			SearchSeconds:   90,
			RouteSeconds:    30,
			GenerateSeconds: 60,
		},
		Logging: LoggingConfig{
			Level:   "info",
			Console: true,
			Pretty:  true,
		},
	}
}
