package yahoo_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"stockdash/internal/httpx"
	httpxmock "stockdash/internal/httpx/mock"
	"stockdash/internal/provider"
	"stockdash/internal/provider/yahoo"
)

func newProvider(doer httpx.Doer) *yahoo.Provider {
	return yahoo.New(yahoo.Config{}, &httpx.Client{HTTP: doer}, zerolog.Nop())
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func TestQuotesEmptyInputMakesNoRequest(t *testing.T) {
	t.Parallel()

	// Arrange: a mock client with no expected calls.
	ctrl := gomock.NewController(t)
	p := newProvider(httpxmock.NewMockDoer(ctrl))

	// Act
	quotes, err := p.Quotes(t.Context(), nil)

	// Assert: no error, no result, and no Do call recorded.
	require.NoError(t, err)
	assert.Empty(t, quotes)
}

func TestQuotesBatchesAllSymbolsIntoOneRequest(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	doer := httpxmock.NewMockDoer(ctrl)

	doer.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, http.MethodGet, req.Method)
			assert.Equal(t, "AAPL,MSFT,GOOGL", req.URL.Query().Get("symbols"))
			return jsonResponse(http.StatusOK, `{
				"quoteResponse": {"result": [
					{"symbol": "MSFT", "regularMarketPrice": 410.5, "regularMarketChangePercent": -0.8},
					{"symbol": "AAPL", "regularMarketPrice": 189.25, "regularMarketChangePercent": 1.2}
				]}
			}`), nil
		}).
		Times(1)

	p := newProvider(doer)
	quotes, err := p.Quotes(t.Context(), []string{"AAPL", "MSFT", "GOOGL"})
	require.NoError(t, err)

	// Provider-returned order is preserved; symbols are a subset of the request.
	require.Len(t, quotes, 2)
	assert.Equal(t, "MSFT", quotes[0].Symbol)
	assert.Equal(t, "AAPL", quotes[1].Symbol)
	require.NotNil(t, quotes[0].Price)
	assert.InDelta(t, 410.5, *quotes[0].Price, 1e-9)
	require.NotNil(t, quotes[1].ChangePct)
	assert.InDelta(t, 1.2, *quotes[1].ChangePct, 1e-9)
}

func TestQuotesMissingFieldsAreNil(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	doer := httpxmock.NewMockDoer(ctrl)
	doer.EXPECT().
		Do(gomock.Any()).
		Return(jsonResponse(http.StatusOK, `{"quoteResponse": {"result": [{"symbol": "AAPL"}]}}`), nil)

	quotes, err := newProvider(doer).Quotes(t.Context(), []string{"AAPL"})
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.Nil(t, quotes[0].Price)
	assert.Nil(t, quotes[0].ChangePct)
}

func TestQuotesMissingResultListIsEmptyNotError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	doer := httpxmock.NewMockDoer(ctrl)
	doer.EXPECT().
		Do(gomock.Any()).
		Return(jsonResponse(http.StatusOK, `{}`), nil)

	quotes, err := newProvider(doer).Quotes(t.Context(), []string{"AAPL"})
	require.NoError(t, err)
	assert.Empty(t, quotes)
}

func TestQuotesNon2xxFailsWholesale(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	doer := httpxmock.NewMockDoer(ctrl)
	doer.EXPECT().
		Do(gomock.Any()).
		Return(jsonResponse(http.StatusTooManyRequests, `{}`), nil)

	_, err := newProvider(doer).Quotes(t.Context(), []string{"AAPL", "MSFT"})

	var statusErr *provider.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusTooManyRequests, statusErr.Status)
	assert.Equal(t, "Yahoo quote failed (429)", err.Error())
}

func TestHistoryKeepsLabelsAndClosesAligned(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/AAPL"))
		assert.Equal(t, "1mo", r.URL.Query().Get("range"))
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		_, _ = w.Write([]byte(`{
			"chart": {"result": [{
				"timestamp": [1704067200, 1704153600, 1704240000],
				"indicators": {"quote": [{"close": [185.1, null, 186.4]}]}
			}]}
		}`))
	}))
	defer srv.Close()

	p := yahoo.New(yahoo.Config{ChartURL: srv.URL}, httpx.New(0), zerolog.Nop())
	series, err := p.History(t.Context(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", series.Symbol)
	require.Len(t, series.Labels, 3)
	require.Len(t, series.Closes, 3)
	require.NotNil(t, series.Closes[0])
	assert.InDelta(t, 185.1, *series.Closes[0], 1e-9)
	assert.Nil(t, series.Closes[1], "non-trading gap stays nil")
	require.NotNil(t, series.Closes[2])
	assert.InDelta(t, 186.4, *series.Closes[2], 1e-9)
}

func TestHistoryPadsMissingCloses(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"chart": {"result": [{
				"timestamp": [1704067200, 1704153600],
				"indicators": {"quote": [{"close": [185.1]}]}
			}]}
		}`))
	}))
	defer srv.Close()

	p := yahoo.New(yahoo.Config{ChartURL: srv.URL}, httpx.New(0), zerolog.Nop())
	series, err := p.History(t.Context(), "AAPL")
	require.NoError(t, err)
	require.Len(t, series.Labels, 2)
	require.Len(t, series.Closes, 2)
	assert.Nil(t, series.Closes[1])
}

func TestHistoryNoChartData(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"chart": {"result": []}}`))
	}))
	defer srv.Close()

	p := yahoo.New(yahoo.Config{ChartURL: srv.URL}, httpx.New(0), zerolog.Nop())
	_, err := p.History(t.Context(), "AAPL")

	var noData *provider.NoDataError
	require.ErrorAs(t, err, &noData)
	assert.Equal(t, "No Yahoo chart data", err.Error())
}
