// Package months tracks which months hold transactions and which one is
// currently selected.
package months

import (
	"context"
	"errors"
	"fmt"

	"expenses/internal/core"
	"expenses/internal/ledger"
)

// ErrUnknownMonth is returned when selecting a month with no transactions.
var ErrUnknownMonth = errors.New("month has no transactions")

// Index is either Unselected (no months known) or Selected on one of the
// months returned by the last Refresh.
type Index struct {
	lister   ledger.MonthLister
	months   []core.MonthKey
	selected core.MonthKey
	has      bool
}

func NewIndex(lister ledger.MonthLister) *Index {
	return &Index{lister: lister}
}

// Refresh reloads the distinct months and selects the most recent one, or
// clears the selection when the ledger is empty. On error the previous state
// is kept.
func (x *Index) Refresh(ctx context.Context) error {
	months, err := x.lister.ListDistinctMonths(ctx)
	if err != nil {
		return fmt.Errorf("refresh months: %w", err)
	}
	x.months = months
	if len(months) == 0 {
		x.selected, x.has = core.MonthKey{}, false
		return nil
	}
	x.selected, x.has = months[0], true
	return nil
}

// Reload reloads the distinct months but keeps the current selection while
// that month still holds transactions. Otherwise it behaves like Refresh.
func (x *Index) Reload(ctx context.Context) error {
	months, err := x.lister.ListDistinctMonths(ctx)
	if err != nil {
		return fmt.Errorf("reload months: %w", err)
	}
	prev, had := x.selected, x.has
	x.months = months
	if had && x.contains(prev) {
		return nil
	}
	if len(months) == 0 {
		x.selected, x.has = core.MonthKey{}, false
		return nil
	}
	x.selected, x.has = months[0], true
	return nil
}

// Months returns the months seen by the last Refresh, most recent first.
func (x *Index) Months() []core.MonthKey {
	return append([]core.MonthKey(nil), x.months...)
}

// Selected returns the current selection; ok is false when Unselected.
func (x *Index) Selected() (m core.MonthKey, ok bool) {
	return x.selected, x.has
}

// Select moves the selection to m, which must be one of Months().
func (x *Index) Select(m core.MonthKey) error {
	if !x.contains(m) {
		return fmt.Errorf("select %s: %w", m, ErrUnknownMonth)
	}
	x.selected, x.has = m, true
	return nil
}

func (x *Index) contains(m core.MonthKey) bool {
	for _, known := range x.months {
		if known == m {
			return true
		}
	}
	return false
}
