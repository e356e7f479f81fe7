package dashboard

import (
	"sort"
	"strings"

	"stockdash/internal/provider"
)

// sortKey selects the active table column for ordering.
type sortKey int

const (
	bySymbol sortKey = iota
	byPrice
	byChange
)

func (k sortKey) String() string {
	switch k {
	case byPrice:
		return "price"
	case byChange:
		return "change"
	default:
		return "symbol"
	}
}

// next cycles symbol -> price -> change -> symbol.
func (k sortKey) next() sortKey {
	return (k + 1) % 3
}

// sortQuotes orders rows in place by the given column. Rows whose column
// value is nil always sink to the bottom, whatever the direction.
func sortQuotes(rows []provider.Quote, key sortKey, desc bool) {
	field := func(q provider.Quote) *float64 {
		if key == byChange {
			return q.ChangePct
		}
		return q.Price
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if key == bySymbol {
			if desc {
				return strings.Compare(rows[i].Symbol, rows[j].Symbol) > 0
			}
			return strings.Compare(rows[i].Symbol, rows[j].Symbol) < 0
		}

		a, b := field(rows[i]), field(rows[j])
		switch {
		case a == nil && b == nil:
			return false
		case a == nil:
			return false
		case b == nil:
			return true
		case desc:
			return *a > *b
		default:
			return *a < *b
		}
	})
}
