// Package ledger declares the ports a transaction store implements.
package ledger

import (
	"context"

	"expenses/internal/core"
)

type (
	TransactionWriter interface {
		// Insert persists a draft and returns the id assigned to it. Ids are
		// strictly increasing and never reused.
		Insert(ctx context.Context, d core.Draft) (int64, error)
	}

	TransactionDeleter interface {
		// DeleteByID removes a transaction permanently. Deleting an id that
		// does not exist is not an error.
		DeleteByID(ctx context.Context, id int64) error
	}

	// MonthReader returns the transactions dated inside a month.
	MonthReader interface {
		QueryByMonth(ctx context.Context, m core.MonthKey) ([]core.Transaction, error)
	}

	// MonthLister returns every month holding at least one transaction,
	// most recent first.
	MonthLister interface {
		ListDistinctMonths(ctx context.Context) ([]core.MonthKey, error)
	}

	// Store is the full set of ledger operations.
	Store interface {
		TransactionWriter
		TransactionDeleter
		MonthReader
		MonthLister
	}
)
