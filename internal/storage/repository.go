package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"expenses/internal/core"
	"expenses/internal/ledger"

	_ "modernc.org/sqlite"
)

const (
	insertTransaction = `INSERT INTO transactions (date, category, amount, description) VALUES (?, ?, ?, ?)`

	deleteTransaction = `DELETE FROM transactions WHERE id = ?`

	selectByMonth = `SELECT id, date, category, amount, description
FROM transactions
WHERE strftime('%Y-%m', date) = ?
ORDER BY id`

	selectDistinctMonths = `SELECT DISTINCT strftime('%Y-%m', date) AS month
FROM transactions
ORDER BY month DESC`
)

var _ ledger.Store = (*SQLiteRepository)(nil)

// SQLiteRepository is the file-backed ledger store.
type SQLiteRepository struct {
	db      *sql.DB
	adopted bool
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// One writer, and per-connection pragmas apply to every statement.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Each autocommitted statement must be on disk before it returns.
	if _, err := db.Exec("PRAGMA synchronous = FULL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set synchronous pragma: %w", err)
	}

	adopted, err := EnsureSchema(dbPath)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteRepository{db: db, adopted: adopted}, nil
}

// Adopted reports whether the file predates the migration history, i.e. it
// was created by the desktop tracker and taken over on open.
func (r *SQLiteRepository) Adopted() bool {
	return r.adopted
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Insert implements ledger.TransactionWriter
func (r *SQLiteRepository) Insert(ctx context.Context, d core.Draft) (int64, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, insertTransaction,
		d.Date.String(),
		string(d.Category),
		d.Amount.String(),
		d.Description)
	if err != nil {
		return 0, core.NewStoreError("insert transaction", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, core.NewStoreError("read inserted id", err)
	}
	return id, nil
}

// DeleteByID implements ledger.TransactionDeleter
func (r *SQLiteRepository) DeleteByID(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, deleteTransaction, id); err != nil {
		return core.NewStoreError(fmt.Sprintf("delete transaction %d", id), err)
	}
	return nil
}

// QueryByMonth implements ledger.MonthReader
func (r *SQLiteRepository) QueryByMonth(ctx context.Context, m core.MonthKey) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, selectByMonth, m.String())
	if err != nil {
		return nil, core.NewStoreError("query transactions by month", err)
	}
	defer rows.Close()

	out := []core.Transaction{}
	for rows.Next() {
		var (
			id                           int64
			date, category, amount, desc sql.NullString
		)
		if err := rows.Scan(&id, &date, &category, &amount, &desc); err != nil {
			return nil, core.NewStoreError("scan transaction", err)
		}
		t, err := toTransaction(id, date, category, amount, desc)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, core.NewStoreError("iterate transactions", err)
	}
	return out, nil
}

// ListDistinctMonths implements ledger.MonthLister
func (r *SQLiteRepository) ListDistinctMonths(ctx context.Context) ([]core.MonthKey, error) {
	rows, err := r.db.QueryContext(ctx, selectDistinctMonths)
	if err != nil {
		return nil, core.NewStoreError("list distinct months", err)
	}
	defer rows.Close()

	out := []core.MonthKey{}
	for rows.Next() {
		var month sql.NullString
		if err := rows.Scan(&month); err != nil {
			return nil, core.NewStoreError("scan month", err)
		}
		if !month.Valid {
			return nil, &core.InvariantViolation{Reason: "transaction with missing or malformed date"}
		}
		m, err := core.ParseMonthKey(month.String)
		if err != nil {
			return nil, &core.InvariantViolation{Reason: err.Error()}
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, core.NewStoreError("iterate months", err)
	}
	return out, nil
}

// toTransaction converts a scanned row, rejecting anything that breaks the
// ledger invariants. Amounts written by older versions as REAL arrive here as
// their shortest decimal text and parse the same way.
func toTransaction(id int64, date, category, amount, desc sql.NullString) (core.Transaction, error) {
	if !date.Valid {
		return core.Transaction{}, &core.InvariantViolation{ID: id, Reason: "missing date"}
	}
	d, err := core.ParseDate(date.String)
	if err != nil {
		return core.Transaction{}, &core.InvariantViolation{ID: id, Reason: err.Error()}
	}
	if !amount.Valid {
		return core.Transaction{}, &core.InvariantViolation{ID: id, Reason: "missing amount"}
	}
	a, err := core.ParseAmount(amount.String)
	if err != nil {
		return core.Transaction{}, &core.InvariantViolation{ID: id, Reason: err.Error()}
	}

	t := core.Transaction{
		ID:          id,
		Date:        d,
		Category:    core.Category(category.String),
		Amount:      a,
		Description: desc.String,
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	return t, nil
}
