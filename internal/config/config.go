package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Yahoo holds endpoint overrides for the Yahoo provider. Empty fields fall
// back to the provider defaults; tests point them at local servers.
type Yahoo struct {
	QuoteURL string `json:"quote_url"`
	ChartURL string `json:"chart_url"`
	Range    string `json:"range"`
	Interval string `json:"interval"`
}

// Finnhub holds the Finnhub credential and endpoint override.
type Finnhub struct {
	BaseURL        string `json:"base_url"`
	Token          string `json:"token"`
	MaxConcurrency int    `json:"max_concurrency"`
}

// Config is read once at startup and treated as immutable for the session.
type Config struct {
	// Provider is "auto", "yahoo" or "finnhub". With "auto" the backend is
	// inferred from the presence of a Finnhub token.
	Provider          string   `json:"provider"`
	Symbols           []string `json:"symbols"`
	RequestTimeoutSec int      `json:"request_timeout_sec"`
	RefreshSec        int      `json:"refresh_sec"`
	Yahoo             Yahoo    `json:"yahoo"`
	Finnhub           Finnhub  `json:"finnhub"`
}

func Default() Config {
	return Config{
		Provider:          "auto",
		Symbols:           []string{"AAPL", "MSFT", "GOOGL", "AMZN", "TSLA"},
		RequestTimeoutSec: 15,
		RefreshSec:        30,
	}
}

// Load reads JSON config from path. If path is empty or the file does not
// exist, it returns defaults. Environment variables override select fields.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		if _, err := os.Stat("config.json"); err == nil {
			path = "config.json"
		}
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := json.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PROVIDER"); v != "" {
		cfg.Provider = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("SYMBOLS"); v != "" {
		cfg.Symbols = SplitCSV(v)
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
		var x int
		_, _ = fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.RequestTimeoutSec = x
		}
	}
	if v := os.Getenv("REFRESH_SEC"); v != "" {
		var x int
		_, _ = fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.RefreshSec = x
		}
	}
	if v := os.Getenv("FINNHUB_TOKEN"); v != "" {
		cfg.Finnhub.Token = v
	}
	if v := os.Getenv("FINNHUB_BASE_URL"); v != "" {
		cfg.Finnhub.BaseURL = v
	}
	if v := os.Getenv("YAHOO_QUOTE_URL"); v != "" {
		cfg.Yahoo.QuoteURL = v
	}
	if v := os.Getenv("YAHOO_CHART_URL"); v != "" {
		cfg.Yahoo.ChartURL = v
	}
}

// SplitCSV splits a comma-separated list, trimming blanks.
func SplitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
