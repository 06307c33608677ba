// Package config loads agent configuration from an optional YAML file with
// environment variable overrides. Precedence: defaults < file < environment.
package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// envPrefix is the prefix for environment overrides, e.g. AGENT_MODEL,
// AGENT_API_KEY, AGENT_HEADLESS.
const envPrefix = "agent"

// Config holds every runtime knob of the agent and its browser capability set.
type Config struct {
	// LLM endpoint
	Model   string `yaml:"model" envconfig:"MODEL"`
	APIKey  string `yaml:"api_key" envconfig:"API_KEY"`
	BaseURL string `yaml:"base_url" envconfig:"BASE_URL"`

	// Agent loop budgets
	MaxIterations     int `yaml:"max_iterations" envconfig:"MAX_ITERATIONS"`
	HistoryTokenLimit int `yaml:"history_token_limit" envconfig:"HISTORY_TOKEN_LIMIT"`

	// Browser
	Headless            bool     `yaml:"headless" envconfig:"HEADLESS"`
	ViewportWidth       int      `yaml:"viewport_width" envconfig:"VIEWPORT_WIDTH"`
	ViewportHeight      int      `yaml:"viewport_height" envconfig:"VIEWPORT_HEIGHT"`
	NavigationTimeoutMs float64  `yaml:"navigation_timeout_ms" envconfig:"NAVIGATION_TIMEOUT_MS"`
	Locale              string   `yaml:"locale" envconfig:"LOCALE"`
	UserAgent           string   `yaml:"user_agent" envconfig:"USER_AGENT"`
	StorageStatePath    string   `yaml:"storage_state_path" envconfig:"STORAGE_STATE_PATH"`
	BrowserArgs         []string `yaml:"browser_args" envconfig:"BROWSER_ARGS"`

	// Overlay dismissal selectors tried before every scan and navigation.
	OverlaySelectors []string `yaml:"overlay_selectors" envconfig:"OVERLAY_SELECTORS"`

	// AllowedDomains restricts open_url to hosts matching these glob
	// patterns (e.g. "*.wikipedia.org"). Empty means no restriction.
	AllowedDomains []string `yaml:"allowed_domains" envconfig:"ALLOWED_DOMAINS"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Model:   "openai/gpt-4o-mini",
		BaseURL: "https://openrouter.ai/api/v1",

		MaxIterations:     50,
		HistoryTokenLimit: 100000,

		Headless:            false,
		ViewportWidth:       1280,
		ViewportHeight:      800,
		NavigationTimeoutMs: 15000,
		Locale:              "en-US",
		UserAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 " +
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		StorageStatePath: "auth.json",
		BrowserArgs: []string{
			"--disable-blink-features=AutomationControlled",
			"--no-sandbox",
			"--disable-infobars",
			"--start-maximized",
		},
		OverlaySelectors: []string{
			"button[aria-label='Close']",
			"button:has-text('Accept all')",
			"button:has-text('Accept')",
			"button:has-text('Got it')",
			".Cookie-Button",
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (if the
// file exists; an empty path skips the file entirely), and environment
// overrides, in that order.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// No file is fine, defaults + env carry the day.
		case err != nil:
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment overrides: %w", err)
	}

	// Widely used key variables are honored when the prefixed one is absent.
	if cfg.APIKey == "" {
		if key := os.Getenv("OPENROUTER_API_KEY"); key != "" {
			cfg.APIKey = key
		} else if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			cfg.APIKey = key
		}
	}

	return cfg, nil
}

// Validate reports configuration that cannot possibly work.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("API key is missing: set api_key in the config file or the AGENT_API_KEY environment variable")
	}
	if c.Model == "" {
		return fmt.Errorf("model name cannot be empty")
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("max_iterations must be positive, got %d", c.MaxIterations)
	}
	if c.HistoryTokenLimit <= 0 {
		return fmt.Errorf("history_token_limit must be positive, got %d", c.HistoryTokenLimit)
	}
	return nil
}
