// Package sqlite implements the read-side repositories over a SQLite
// database opened by the db package. Monetary and quantity columns are
// stored as decimal strings and never pass through floats.
package sqlite

import (
	"fmt"

	"github.com/shopspring/decimal"
)

func parseDecimal(column, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse %s %q: %w", column, value, err)
	}
	return d, nil
}
