package provider

import (
	"fmt"
	"strings"
)

// aggregateMsgCap bounds the joined failure summary of an AggregateError.
const aggregateMsgCap = 180

// StatusError reports a non-2xx HTTP status from a provider endpoint.
type StatusError struct {
	Provider string
	Op       string // "quote" or "chart"
	Status   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s failed (%d)", e.Provider, e.Op, e.Status)
}

// NoDataError reports a well-formed response that lacks the expected data,
// e.g. an empty chart result or a candle response with a non-"ok" status.
type NoDataError struct {
	Provider string
	What     string
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("No %s %s", e.Provider, e.What)
}

// AggregateError is returned only when every sub-request of a concurrent
// fan-out failed. Its message joins the underlying failures with "; ",
// truncated to aggregateMsgCap characters.
type AggregateError struct {
	Errs []error
}

func (e *AggregateError) Error() string {
	msgs := make([]string, 0, len(e.Errs))
	for _, err := range e.Errs {
		if err != nil {
			msgs = append(msgs, err.Error())
		}
	}
	joined := strings.Join(msgs, "; ")
	if len(joined) > aggregateMsgCap {
		joined = joined[:aggregateMsgCap]
	}
	return joined
}

func (e *AggregateError) Unwrap() []error { return e.Errs }
