package memory

import (
	"context"
	"sort"
	"sync"

	"expenses/internal/core"
	"expenses/internal/ledger"
)

var _ ledger.Store = (*Store)(nil)

// Store keeps the ledger in process memory. It honours the same contract as
// the SQLite repository apart from durability.
type Store struct {
	mu     sync.Mutex
	nextID int64
	items  []core.Transaction
}

func New() *Store {
	return &Store{nextID: 1}
}

// NewFromTransactions seeds the store. Seeded ids are kept, and new ids
// continue after the highest one.
func NewFromTransactions(seed []core.Transaction) (*Store, error) {
	s := New()
	for _, t := range seed {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		s.items = append(s.items, t)
		if t.ID >= s.nextID {
			s.nextID = t.ID + 1
		}
	}
	sort.SliceStable(s.items, func(i, j int) bool { return s.items[i].ID < s.items[j].ID })
	return s, nil
}

// Insert implements ledger.TransactionWriter
func (s *Store) Insert(_ context.Context, d core.Draft) (int64, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.items = append(s.items, core.Transaction{
		ID:          id,
		Date:        d.Date,
		Category:    d.Category,
		Amount:      d.Amount,
		Description: d.Description,
	})
	return id, nil
}

// DeleteByID implements ledger.TransactionDeleter
func (s *Store) DeleteByID(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.items {
		if t.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return nil
}

// QueryByMonth implements ledger.MonthReader
func (s *Store) QueryByMonth(_ context.Context, m core.MonthKey) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []core.Transaction{}
	for _, t := range s.items {
		if m.Contains(t.Date) {
			out = append(out, t)
		}
	}
	return out, nil
}

// ListDistinctMonths implements ledger.MonthLister
func (s *Store) ListDistinctMonths(_ context.Context) ([]core.MonthKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := map[core.MonthKey]struct{}{}
	out := []core.MonthKey{}
	for _, t := range s.items {
		m := t.Date.MonthKey()
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[j].Before(out[i]) })
	return out, nil
}
