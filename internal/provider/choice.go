package provider

import "strings"

// Choice names a quote backend. It is resolved once from configuration and
// never changes for the lifetime of the session.
type Choice string

const (
	// ChoiceAuto defers the decision to Resolve.
	ChoiceAuto Choice = "auto"
	// ChoiceYahoo selects the Yahoo Finance backend (no credential needed).
	ChoiceYahoo Choice = "yahoo"
	// ChoiceFinnhub selects the Finnhub backend (token required per call).
	ChoiceFinnhub Choice = "finnhub"
)

// Resolve maps a configured choice and an optional credential token to a
// concrete backend. An explicit choice wins; "auto" (or anything
// unrecognized) picks Finnhub when a token is present and Yahoo otherwise.
func Resolve(choice Choice, token string) Choice {
	switch Choice(strings.ToLower(strings.TrimSpace(string(choice)))) {
	case ChoiceYahoo:
		return ChoiceYahoo
	case ChoiceFinnhub:
		return ChoiceFinnhub
	}
	if strings.TrimSpace(token) != "" {
		return ChoiceFinnhub
	}
	return ChoiceYahoo
}
