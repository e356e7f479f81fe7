package provider_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockdash/internal/provider"
)

func TestStatusErrorMessage(t *testing.T) {
	t.Parallel()

	err := &provider.StatusError{Provider: "Finnhub", Op: "quote", Status: 503}
	assert.Equal(t, "Finnhub quote failed (503)", err.Error())
}

func TestNoDataErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "No Yahoo chart data", (&provider.NoDataError{Provider: "Yahoo", What: "chart data"}).Error())
	assert.Equal(t, "No Finnhub candle data", (&provider.NoDataError{Provider: "Finnhub", What: "candle data"}).Error())
}

func TestAggregateErrorJoinsAndTruncates(t *testing.T) {
	t.Parallel()

	short := &provider.AggregateError{Errs: []error{
		errors.New("Finnhub quote failed (500)"),
		errors.New("Finnhub quote failed (429)"),
	}}
	assert.Equal(t, "Finnhub quote failed (500); Finnhub quote failed (429)", short.Error())

	var errs []error
	for i := 0; i < 20; i++ {
		errs = append(errs, fmt.Errorf("Finnhub quote failed (50%d)", i%10))
	}
	long := &provider.AggregateError{Errs: errs}
	msg := long.Error()
	require.LessOrEqual(t, len(msg), 180)
	assert.True(t, strings.HasPrefix(msg, "Finnhub quote failed (500); "))
}

func TestAggregateErrorUnwrap(t *testing.T) {
	t.Parallel()

	inner := &provider.StatusError{Provider: "Finnhub", Op: "quote", Status: 500}
	err := error(&provider.AggregateError{Errs: []error{inner}})

	var statusErr *provider.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 500, statusErr.Status)
}
