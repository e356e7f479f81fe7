// fetch is a one-shot CLI for scripting: it prints quotes (and optionally
// trailing-month history) for a set of symbols as JSON or CSV, using the
// same retrieval layer as the dashboard.
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"stockdash/internal/config"
	"stockdash/internal/httpx"
	"stockdash/internal/provider"
	"stockdash/internal/provider/registry"
)

const historyConcurrency = 4

func main() {
	var (
		symbolsCSV   string
		providerName string
		token        string
		timeout      int
		configPath   string
		withHistory  bool
		format       string
		verbose      bool
	)
	flag.StringVar(&symbolsCSV, "symbols", os.Getenv("SYMBOLS"), "comma-separated ticker symbols")
	flag.StringVar(&providerName, "provider", "", "data provider: auto, yahoo or finnhub")
	flag.StringVar(&token, "token", "", "Finnhub API token")
	flag.IntVar(&timeout, "timeout", 0, "request timeout seconds")
	flag.StringVar(&configPath, "config", os.Getenv("CONFIG_FILE"), "path to config.json (optional)")
	flag.BoolVar(&withHistory, "history", false, "also fetch trailing-month daily closes")
	flag.StringVar(&format, "format", "json", "output format: json or csv")
	flag.BoolVar(&verbose, "v", false, "verbose logging")
	flag.Parse()

	_ = godotenv.Load()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if !verbose {
		log = log.Level(zerolog.WarnLevel)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	// Flags override file and environment.
	if providerName != "" {
		cfg.Provider = providerName
	}
	if token != "" {
		cfg.Finnhub.Token = token
	}
	if timeout > 0 {
		cfg.RequestTimeoutSec = timeout
	}
	if symbolsCSV != "" {
		cfg.Symbols = config.SplitCSV(symbolsCSV)
	}
	if len(cfg.Symbols) == 0 {
		log.Fatal().Msg("no symbols provided")
	}

	hc := httpx.New(time.Duration(cfg.RequestTimeoutSec) * time.Second)
	prov, err := registry.New(cfg, hc, log)
	if err != nil {
		log.Fatal().Err(err).Msg("provider")
	}

	ctx := context.Background()

	quotes, err := prov.Quotes(ctx, cfg.Symbols)
	if err != nil {
		log.Fatal().Err(err).Msg("fetch quotes")
	}
	log.Info().Str("provider", prov.Name()).Int("quotes", len(quotes)).Msg("fetched")

	var histories []provider.Series
	if withHistory {
		histories = make([]provider.Series, len(cfg.Symbols))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(historyConcurrency)
		for i, sym := range cfg.Symbols {
			g.Go(func() error {
				s, err := prov.History(gctx, sym)
				if err != nil {
					return fmt.Errorf("history %s: %w", sym, err)
				}
				histories[i] = s
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			log.Fatal().Err(err).Msg("fetch history")
		}
	}

	switch format {
	case "json":
		printJSON(quotes, histories)
	case "csv":
		printCSV(quotes)
	default:
		log.Fatal().Str("format", format).Msg("unknown format")
	}
}

func printJSON(quotes []provider.Quote, histories []provider.Series) {
	out := struct {
		Quotes  []provider.Quote  `json:"quotes"`
		History []provider.Series `json:"history,omitempty"`
	}{Quotes: quotes, History: histories}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	_ = enc.Encode(out)
}

func printCSV(quotes []provider.Quote) {
	rows := [][]string{{"symbol", "price", "change_percent"}}
	for _, q := range quotes {
		rows = append(rows, []string{q.Symbol, floatField(q.Price), floatField(q.ChangePct)})
	}
	w := csv.NewWriter(os.Stdout)
	_ = w.WriteAll(rows)
}

func floatField(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}
