package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockdash/internal/config"
)

func TestDefaults(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, "auto", cfg.Provider)
	assert.NotEmpty(t, cfg.Symbols)
	assert.Positive(t, cfg.RequestTimeoutSec)
	assert.Positive(t, cfg.RefreshSec)
	assert.Empty(t, cfg.Finnhub.Token)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"provider": "finnhub",
		"symbols": ["NVDA", "AMD"],
		"refresh_sec": 5,
		"finnhub": {"token": "file-token"}
	}`), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "finnhub", cfg.Provider)
	assert.Equal(t, []string{"NVDA", "AMD"}, cfg.Symbols)
	assert.Equal(t, 5, cfg.RefreshSec)
	assert.Equal(t, "file-token", cfg.Finnhub.Token)
	// Untouched fields keep their defaults.
	assert.Equal(t, 15, cfg.RequestTimeoutSec)
}

func TestLoadBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"provider": `), 0o600))

	_, err := config.Load(path)
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PROVIDER", "Yahoo")
	t.Setenv("SYMBOLS", " AAPL , MSFT ,")
	t.Setenv("FINNHUB_TOKEN", "env-token")
	t.Setenv("REFRESH_SEC", "7")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, "yahoo", cfg.Provider)
	assert.Equal(t, []string{"AAPL", "MSFT"}, cfg.Symbols)
	assert.Equal(t, "env-token", cfg.Finnhub.Token)
	assert.Equal(t, 7, cfg.RefreshSec)
}

func TestSplitCSV(t *testing.T) {
	assert.Equal(t, []string{"AAPL", "MSFT"}, config.SplitCSV("AAPL, MSFT"))
	assert.Empty(t, config.SplitCSV(" , ,"))
}
