// Package registry turns configuration into a concrete provider. It is the
// only place that knows every backend; adding a provider means adding a
// case here and nowhere else.
package registry

import (
	"fmt"

	"github.com/rs/zerolog"

	"stockdash/internal/config"
	"stockdash/internal/httpx"
	"stockdash/internal/provider"
	"stockdash/internal/provider/finnhub"
	"stockdash/internal/provider/yahoo"
)

// New resolves the configured provider choice and constructs the matching
// backend, sharing the given HTTP client.
func New(cfg config.Config, hc *httpx.Client, log zerolog.Logger) (provider.Provider, error) {
	switch provider.Resolve(provider.Choice(cfg.Provider), cfg.Finnhub.Token) {
	case provider.ChoiceYahoo:
		return yahoo.New(yahoo.Config{
			QuoteURL: cfg.Yahoo.QuoteURL,
			ChartURL: cfg.Yahoo.ChartURL,
			Range:    cfg.Yahoo.Range,
			Interval: cfg.Yahoo.Interval,
		}, hc, log), nil
	case provider.ChoiceFinnhub:
		if cfg.Finnhub.Token == "" {
			return nil, fmt.Errorf("finnhub provider selected but no token configured")
		}
		return finnhub.New(finnhub.Config{
			BaseURL:        cfg.Finnhub.BaseURL,
			Token:          cfg.Finnhub.Token,
			MaxConcurrency: cfg.Finnhub.MaxConcurrency,
		}, hc, log), nil
	}
	return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
}
