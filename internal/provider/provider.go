package provider

import "context"

// Quote is the normalized snapshot shape returned by all providers.
// Price and ChangePct are nil when the upstream record omits the field.
type Quote struct {
	Symbol    string   `json:"symbol"`
	Price     *float64 `json:"price"`
	ChangePct *float64 `json:"change_percent"`
}

// Series is a time-ordered list of daily closing prices for one symbol,
// oldest first. Labels[i] is the date label for Closes[i]; the two slices
// always have equal length. A nil close marks a non-trading gap.
type Series struct {
	Symbol string     `json:"symbol"`
	Labels []string   `json:"labels"`
	Closes []*float64 `json:"closes"`
}

// Provider is the contract shared by all quote backends.
type Provider interface {
	Name() string
	// Quotes returns current quotes for the given symbols. An empty input
	// yields an empty result without any network call.
	Quotes(ctx context.Context, symbols []string) ([]Quote, error)
	// History returns roughly one trailing month of daily closes.
	History(ctx context.Context, symbol string) (Series, error)
}
