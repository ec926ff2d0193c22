// Package core provides the ledger's domain types.
//
// This file contains amount parsing. Amounts are kept as exact decimals so
// totals and percentages don't drift the way float sums do.
package core

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a decimal string into an exact amount.
//
// Leading and trailing whitespace is ignored. Any sign is accepted: the
// ledger does not decide whether a negative entry is a refund or a typo.
// NaN, infinities and anything else that is not a finite number is rejected.
//
// Examples:
//   ParseAmount("1000")   -> 1000, nil
//   ParseAmount(" 12.5 ") -> 12.5, nil
//   ParseAmount("-40")    -> -40, nil
//   ParseAmount("abc")    -> 0, ErrInvalidAmount
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrEmptyAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d, nil
}

// FormatAmount renders an amount with two decimal places.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
