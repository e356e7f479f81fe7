// Package finnhub implements the quote contract on top of the Finnhub REST
// API. Finnhub has no batch quote endpoint, so quotes fan out one request
// per symbol; the aggregation policy is best-effort: partial failures are
// dropped and only a total failure is surfaced to the caller.
package finnhub

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"stockdash/internal/httpx"
	"stockdash/internal/provider"
	"stockdash/internal/provider/fanout"
)

const defaultBaseURL = "https://finnhub.io/api/v1"

// historyWindow is the trailing range requested from the candle endpoint.
const historyWindow = 30 * 24 * time.Hour

// Config controls the Finnhub provider behavior.
type Config struct {
	Name    string
	BaseURL string
	Token   string
	// MaxConcurrency caps in-flight per-symbol quote requests.
	// 0 or negative means unbounded.
	MaxConcurrency int
}

// Provider fetches quotes and candle history from Finnhub.
type Provider struct {
	cfg    Config
	client *httpx.Client
	log    zerolog.Logger

	now func() time.Time
}

func New(cfg Config, hc *httpx.Client, log zerolog.Logger) *Provider {
	if cfg.Name == "" {
		cfg.Name = "Finnhub"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &Provider{
		cfg:    cfg,
		client: hc,
		log:    log.With().Str("client", "finnhub").Logger(),
		now:    time.Now,
	}
}

func (p *Provider) Name() string { return p.cfg.Name }

type quoteBody struct {
	Current   *float64 `json:"c"`
	ChangePct *float64 `json:"dp"`
}

// Quotes issues one request per symbol, concurrently, and waits for all of
// them to settle. Failed symbols are dropped from the result; an error is
// returned only when every request failed.
func (p *Provider) Quotes(ctx context.Context, symbols []string) ([]provider.Quote, error) {
	if len(symbols) == 0 {
		return nil, nil
	}

	oks, errs := fanout.Settle(ctx, symbols, p.cfg.MaxConcurrency, p.fetchQuote)
	if len(oks) == 0 && len(errs) > 0 {
		return nil, &provider.AggregateError{Errs: errs}
	}
	if len(errs) > 0 {
		// Best effort: keep the successes, log what was dropped.
		p.log.Warn().Int("failed", len(errs)).Int("ok", len(oks)).Msg("partial quote fetch")
	}
	return oks, nil
}

func (p *Provider) fetchQuote(ctx context.Context, symbol string) (provider.Quote, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("token", p.cfg.Token)

	var body quoteBody
	if err := p.getJSON(ctx, p.cfg.BaseURL+"/quote?"+q.Encode(), "quote", &body); err != nil {
		return provider.Quote{}, err
	}
	return provider.Quote{Symbol: symbol, Price: body.Current, ChangePct: body.ChangePct}, nil
}

type candleBody struct {
	Status     string    `json:"s"`
	Timestamps []int64   `json:"t"`
	Closes     []float64 `json:"c"`
}

// History fetches daily candles for the trailing 30 days. The endpoint can
// answer HTTP 200 with a semantic failure; only s == "ok" counts as data.
func (p *Provider) History(ctx context.Context, symbol string) (provider.Series, error) {
	to := p.now()
	from := to.Add(-historyWindow)

	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("resolution", "D")
	q.Set("from", strconv.FormatInt(from.Unix(), 10))
	q.Set("to", strconv.FormatInt(to.Unix(), 10))
	q.Set("token", p.cfg.Token)

	var body candleBody
	if err := p.getJSON(ctx, p.cfg.BaseURL+"/stock/candle?"+q.Encode(), "chart", &body); err != nil {
		return provider.Series{}, err
	}
	if body.Status != "ok" {
		return provider.Series{}, &provider.NoDataError{Provider: p.cfg.Name, What: "candle data"}
	}

	series := provider.Series{
		Symbol: symbol,
		Labels: make([]string, 0, len(body.Timestamps)),
		Closes: make([]*float64, 0, len(body.Timestamps)),
	}
	for i, ts := range body.Timestamps {
		series.Labels = append(series.Labels, time.Unix(ts, 0).Format("Jan 2"))
		if i < len(body.Closes) {
			c := body.Closes[i]
			series.Closes = append(series.Closes, &c)
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
