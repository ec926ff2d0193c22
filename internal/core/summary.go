package core

import "github.com/shopspring/decimal"

// Summary holds one month's aggregates.
type Summary struct {
	TotalIncome         decimal.Decimal
	CategoryTotals      map[Category]decimal.Decimal
	CategoryPercentages map[Category]decimal.Decimal
	TotalExpenses       decimal.Decimal
}

// CategoryShare is one row of the expense breakdown.
type CategoryShare struct {
	Category Category
	Total    decimal.Decimal
	Percent  decimal.Decimal
}

// MonthReport is everything a front end shows for a month.
type MonthReport struct {
	Month        MonthKey
	Transactions []Transaction
	Summary      Summary
}

// Breakdown returns the expense rows in the order of ExpenseCategories.
func (s Summary) Breakdown() []CategoryShare {
	rows := make([]CategoryShare, 0, len(categories)-1)
	for _, c := range ExpenseCategories() {
		rows = append(rows, CategoryShare{
			Category: c,
			Total:    s.CategoryTotals[c],
			Percent:  s.CategoryPercentages[c],
		})
	}
	return rows
}

// Clone returns a copy that shares no maps with s.
func (s Summary) Clone() Summary {
	out := s
	out.CategoryTotals = make(map[Category]decimal.Decimal, len(s.CategoryTotals))
	for k, v := range s.CategoryTotals {
		out.CategoryTotals[k] = v
	}
	out.CategoryPercentages = make(map[Category]decimal.Decimal, len(s.CategoryPercentages))
	for k, v := range s.CategoryPercentages {
		out.CategoryPercentages[k] = v
	}
	return out
}

// Income returns the month's Income transactions in storage order.
func (r MonthReport) Income() []Transaction {
	var out []Transaction
	for _, t := range r.Transactions {
		if t.Category == Income {
			out = append(out, t)
		}
	}
	return out
}

// Expenses returns the month's non-Income transactions in storage order.
func (r MonthReport) Expenses() []Transaction {
	var out []Transaction
	for _, t := range r.Transactions {
		if t.Category != Income {
			out = append(out, t)
		}
	}
	return out
}

// Clone returns a deep copy of the report.
func (r MonthReport) Clone() MonthReport {
	out := r
	out.Transactions = append([]Transaction(nil), r.Transactions...)
	out.Summary = r.Summary.Clone()
	return out
}
