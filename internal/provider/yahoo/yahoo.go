// Package yahoo implements the quote contract on top of the public Yahoo
// Finance query API. Quotes for any number of symbols cost a single
// batched request, so a failure there is always wholesale.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"stockdash/internal/httpx"
	"stockdash/internal/provider"
)

const (
	defaultQuoteURL = "https://query1.finance.yahoo.com/v7/finance/quote"
	defaultChartURL = "https://query1.finance.yahoo.com/v8/finance/chart"

	// Yahoo rejects the default Go user agent.
	browserUA = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
)

// Config controls the Yahoo provider behavior.
type Config struct {
	Name     string
	QuoteURL string // batch quote endpoint
	ChartURL string // chart endpoint; the symbol is appended as a path segment
	Range    string // trailing window, e.g. "1mo"
	Interval string // candle resolution, e.g. "1d"
}

// Provider fetches quotes and daily close history from Yahoo Finance.
type Provider struct {
	cfg    Config
	client *httpx.Client
	log    zerolog.Logger
}

func New(cfg Config, hc *httpx.Client, log zerolog.Logger) *Provider {
	if cfg.Name == "" {
		cfg.Name = "Yahoo"
	}
	if cfg.QuoteURL == "" {
		cfg.QuoteURL = defaultQuoteURL
	}
	if cfg.ChartURL == "" {
		cfg.ChartURL = defaultChartURL
	}
	if cfg.Range == "" {
		cfg.Range = "1mo"
	}
	if cfg.Interval == "" {
		cfg.Interval = "1d"
	}
	return &Provider{cfg: cfg, client: hc, log: log.With().Str("client", "yahoo").Logger()}
}

func (p *Provider) Name() string { return p.cfg.Name }

type quoteEnvelope struct {
	QuoteResponse struct {
		Result []struct {
			Symbol                     string   `json:"symbol"`
			RegularMarketPrice         *float64 `json:"regularMarketPrice"`
			RegularMarketChangePercent *float64 `json:"regularMarketChangePercent"`
		} `json:"result"`
	} `json:"quoteResponse"`
}

// Quotes issues one batched request with all symbols comma-joined. A missing
// result list is an empty answer, not an error.
func (p *Provider) Quotes(ctx context.Context, symbols []string) ([]provider.Quote, error) {
	if len(symbols) == 0 {
		return nil, nil
	}

	q := url.Values{}
	q.Set("symbols", strings.Join(symbols, ","))
	q.Set("fields", "symbol,regularMarketPrice,regularMarketChangePercent")

	var env quoteEnvelope
	if err := p.getJSON(ctx, p.cfg.QuoteURL+"?"+q.Encode(), "quote", &env); err != nil {
		return nil, err
	}

	out := make([]provider.Quote, 0, len(env.QuoteResponse.Result))
	for _, r := range env.QuoteResponse.Result {
		out = append(out, provider.Quote{
			Symbol:    r.Symbol,
			Price:     r.RegularMarketPrice,
			ChangePct: r.RegularMarketChangePercent,
		})
	}
	p.log.Debug().Int("requested", len(symbols)).Int("returned", len(out)).Msg("fetched quotes")
	return out, nil
}

type chartEnvelope struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
	} `json:"chart"`
}

// History fetches the trailing-month daily chart. Null closes are kept so
// labels and closes stay aligned across non-trading gaps.
func (p *Provider) History(ctx context.Context, symbol string) (provider.Series, error) {
	q := url.Values{}
	q.Set("range", p.cfg.Range)
	q.Set("interval", p.cfg.Interval)
	u := p.cfg.ChartURL + "/" + url.PathEscape(symbol) + "?" + q.Encode()

	var env chartEnvelope
	if err := p.getJSON(ctx, u, "chart", &env); err != nil {
		return provider.Series{}, err
	}
	if len(env.Chart.Result) == 0 {
		return provider.Series{}, &provider.NoDataError{Provider: p.cfg.Name, What: "chart data"}
	}

	res := env.Chart.Result[0]
	var closes []*float64
	if len(res.Indicators.Quote) > 0 {
		closes = res.Indicators.Quote[0].Close
	}

	series := provider.Series{
		Symbol: symbol,
		Labels: make([]string, 0, len(res.Timestamp)),
		Closes: make([]*float64, 0, len(res.Timestamp)),
	}
	for i, ts := range res.Timestamp {
		series.Labels = append(series.Labels, time.Unix(ts, 0).Format("Jan 2"))
		if i < len(closes) {
			series.Closes = append(series.Closes, closes[i])
		} else {
			series.Closes = append(series.Closes, nil)
		}
	}
	p.log.Debug().Str("symbol", symbol).Int("points", len(series.Labels)).Msg("fetched history")
	return series, nil
}

func (p *Provider) getJSON(ctx context.Context, u, op string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", browserUA)
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &provider.StatusError{Provider: p.cfg.Name, Op: op, Status: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode %s response: %w", op, err)
	}
	return nil
}
