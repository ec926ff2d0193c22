// Package summary computes a month's aggregates from its transactions.
package summary

import (
	"fmt"

	"github.com/shopspring/decimal"

	"expenses/internal/core"
)

// PercentPlaces is the number of decimal places percentages are rounded to.
const PercentPlaces = 2

var hundred = decimal.NewFromInt(100)

// Summarize totals income and each expense category, and expresses each
// expense category as a percentage of income. It reads txs without
// modifying it and has no side effects.
//
// Every expense category is present in the result, zero when unused. With no
// positive income all percentages are zero. A transaction whose category is
// outside the enumeration yields *core.InvariantViolation.
func Summarize(txs []core.Transaction) (core.Summary, error) {
	s := core.Summary{
		TotalIncome:         decimal.Zero,
		CategoryTotals:      make(map[core.Category]decimal.Decimal, 3),
		CategoryPercentages: make(map[core.Category]decimal.Decimal, 3),
		TotalExpenses:       decimal.Zero,
	}
	for _, c := range core.ExpenseCategories() {
		s.CategoryTotals[c] = decimal.Zero
	}

	for _, t := range txs {
		switch {
		case t.Category == core.Income:
			s.TotalIncome = s.TotalIncome.Add(t.Amount)
		case t.Category.IsExpense():
			s.CategoryTotals[t.Category] = s.CategoryTotals[t.Category].Add(t.Amount)
		default:
			return core.Summary{}, &core.InvariantViolation{
				ID:     t.ID,
				Reason: fmt.Sprintf("unknown category %q reached aggregation", string(t.Category)),
			}
		}
	}

	for _, c := range core.ExpenseCategories() {
		total := s.CategoryTotals[c]
		s.TotalExpenses = s.TotalExpenses.Add(total)
		s.CategoryPercentages[c] = Percent(total, s.TotalIncome)
	}

	return s, nil
}

// Percent returns part as a percentage of whole rounded to PercentPlaces.
// It is zero unless whole is positive.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Mul(hundred).DivRound(whole, PercentPlaces)
}
