package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"stockdash/internal/config"
	"stockdash/internal/dashboard"
	"stockdash/internal/httpx"
	"stockdash/internal/provider/registry"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_FILE"), "path to config.json (optional)")
	logPath := flag.String("log", os.Getenv("LOG_FILE"), "append debug logs to this file (optional)")
	flag.Parse()

	// Pick up FINNHUB_TOKEN etc. from a local .env if present.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fail(err)
	}

	// stdout belongs to the TUI, so logs go to a file or nowhere.
	log := zerolog.Nop()
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fail(err)
		}
		defer f.Close()
		log = zerolog.New(f).With().Timestamp().Logger()
	}

	hc := httpx.New(time.Duration(cfg.RequestTimeoutSec) * time.Second)
	prov, err := registry.New(cfg, hc, log)
	if err != nil {
		fail(err)
	}
	log.Info().Str("provider", prov.Name()).Strs("symbols", cfg.Symbols).Msg("starting dashboard")

	m := dashboard.New(prov, cfg.Symbols, time.Duration(cfg.RefreshSec)*time.Second, log)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
