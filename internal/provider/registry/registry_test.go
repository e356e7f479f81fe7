package registry_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockdash/internal/config"
	"stockdash/internal/httpx"
	"stockdash/internal/provider/registry"
)

func build(t *testing.T, cfg config.Config) (name string, err error) {
	t.Helper()
	p, err := registry.New(cfg, httpx.New(0), zerolog.Nop())
	if err != nil {
		return "", err
	}
	return p.Name(), nil
}

func TestNewDefaultsToYahoo(t *testing.T) {
	t.Parallel()

	name, err := build(t, config.Default())
	require.NoError(t, err)
	assert.Equal(t, "Yahoo", name)
}

func TestNewPicksFinnhubWhenTokenPresent(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Finnhub.Token = "X"
	name, err := build(t, cfg)
	require.NoError(t, err)
	assert.Equal(t, "Finnhub", name)
}

func TestNewExplicitChoiceWinsOverToken(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Provider = "yahoo"
	cfg.Finnhub.Token = "X"
	name, err := build(t, cfg)
	require.NoError(t, err)
	assert.Equal(t, "Yahoo", name)
}

func TestNewExplicitFinnhubWithoutToken(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Provider = "finnhub"
	_, err := build(t, cfg)
	require.Error(t, err)
}
