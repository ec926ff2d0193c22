package services

import (
	"context"
	"fmt"
	"time"

	"expenses/internal/cache"
	"expenses/internal/core"
	"expenses/internal/ledger"
	"expenses/internal/log"
	"expenses/internal/months"
	"expenses/internal/summary"
)

// LedgerServiceConfig tunes the month report cache.
type LedgerServiceConfig struct {
	CacheSize int
	CacheTTL  time.Duration
}

// DefaultLedgerServiceConfig keeps a year of reports for ten minutes.
func DefaultLedgerServiceConfig() LedgerServiceConfig {
	return LedgerServiceConfig{
		CacheSize: 12,
		CacheTTL:  10 * time.Minute,
	}
}

// LedgerService is the boundary a front end talks to: it validates input,
// writes through the store, keeps the month index in step with the ledger
// and builds month reports.
type LedgerService struct {
	store   ledger.Store
	index   *months.Index
	reports cache.Cache[core.MonthKey, core.MonthReport]
	logger  *log.Logger
}

// NewLedgerService wires a service around store and loads the month index.
// A nil logger discards output.
func NewLedgerService(ctx context.Context, store ledger.Store, logger *log.Logger, cfg LedgerServiceConfig) (*LedgerService, error) {
	if store == nil {
		return nil, fmt.Errorf("ledger service: nil store")
	}
	if logger == nil {
		logger = log.Discard()
	}

	s := &LedgerService{
		store:   store,
		index:   months.NewIndex(store),
		reports: cache.NewLRU[core.MonthKey, core.MonthReport](cfg.CacheSize, cfg.CacheTTL),
		logger:  logger.WithComponent(log.ComponentLedger),
	}

	if err := s.index.Refresh(ctx); err != nil {
		return nil, fmt.Errorf("load months: %w", err)
	}

	return s, nil
}

// AddTransaction validates in, persists it and returns the new id.
func (s *LedgerService) AddTransaction(ctx context.Context, in core.TransactionInput) (int64, error) {
	d, err := in.Parse()
	if err != nil {
		return 0, err
	}

	id, err := s.store.Insert(ctx, d)
	if err != nil {
		return 0, fmt.Errorf("add transaction: %w", err)
	}

	s.reports.Delete(d.Date.MonthKey())
	s.logger.InfoContext(ctx, "Transaction added",
		log.NewFields().WithOperation(log.OpCreate).WithTransaction(id, d).ToSlice()...)

	s.refreshAfterWrite(ctx)
	return id, nil
}

// DeleteTransaction removes a transaction. Unknown ids are not an error.
func (s *LedgerService) DeleteTransaction(ctx context.Context, id int64) error {
	if err := s.store.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	// The deleted row's month is not known here.
	s.reports.Purge()
	s.logger.InfoContext(ctx, "Transaction deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldTransactionID, id)

	s.refreshAfterWrite(ctx)
	return nil
}

// ListMonths returns every month holding transactions, most recent first.
// It leaves the selection alone unless the selected month has gone.
func (s *LedgerService) ListMonths(ctx context.Context) ([]core.MonthKey, error) {
	if err := s.index.Reload(ctx); err != nil {
		return nil, fmt.Errorf("list months: %w", err)
	}
	months := s.index.Months()
	s.logger.DebugContext(ctx, "Months listed",
		log.FieldOperation, log.OpList,
		log.FieldCount, len(months))
	return months, nil
}

// GetMonthSummary returns the month's transactions and their aggregates. A
// month without transactions yields an empty report, not an error.
func (s *LedgerService) GetMonthSummary(ctx context.Context, m core.MonthKey) (core.MonthReport, error) {
	if r, ok := s.reports.Get(m); ok {
		return r.Clone(), nil
	}

	txs, err := s.store.QueryByMonth(ctx, m)
	if err != nil {
		return core.MonthReport{}, fmt.Errorf("month summary %s: %w", m, err)
	}

	sum, err := summary.Summarize(txs)
	if err != nil {
		return core.MonthReport{}, fmt.Errorf("month summary %s: %w", m, err)
	}

	r := core.MonthReport{Month: m, Transactions: txs, Summary: sum}
	s.reports.Set(m, r)
	s.logger.DebugContext(ctx, "Month summary built",
		log.FieldOperation, log.OpSummary,
		log.FieldMonth, m.String(),
		log.FieldCount, len(txs))
	return r.Clone(), nil
}

// SelectedMonth returns the month index selection; ok is false when the
// ledger is empty.
func (s *LedgerService) SelectedMonth() (core.MonthKey, bool) {
	return s.index.Selected()
}

// SelectMonth changes the selection to one of the listed months.
func (s *LedgerService) SelectMonth(m core.MonthKey) error {
	return s.index.Select(m)
}

// CurrentReport returns the report for the selected month. ok is false when
// nothing is selected.
func (s *LedgerService) CurrentReport(ctx context.Context) (r core.MonthReport, ok bool, err error) {
	m, ok := s.index.Selected()
	if !ok {
		return core.MonthReport{}, false, nil
	}
	r, err = s.GetMonthSummary(ctx, m)
	if err != nil {
		return core.MonthReport{}, true, err
	}
	return r, true, nil
}

// refreshAfterWrite keeps the month index in step after a committed write.
// The write already succeeded, so a failure here is logged rather than
// returned; ListMonths refreshes again.
func (s *LedgerService) refreshAfterWrite(ctx context.Context) {
	if err := s.index.Refresh(ctx); err != nil {
		s.logger.ErrorContext(ctx, "Failed to refresh months after write",
			log.NewFields().WithOperation(log.OpRefresh).WithError(err).ToSlice()...)
	}
}
