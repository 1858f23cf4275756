package memory

import (
	"context"
	"sync"

	"salesdash/internal/core"
	"salesdash/internal/records"
)

// Store is an in-memory record store for development and tests. The slice
// is swapped wholesale on reseed, so readers never observe a half-replaced
// dataset.
type Store struct {
	mu    sync.RWMutex
	items []core.Transaction
}

var _ records.Store = (*Store)(nil)

func New() *Store {
	return &Store{}
}

// ReplaceAll swaps the full contents for the given records.
func (s *Store) ReplaceAll(_ context.Context, ts []core.Transaction) error {
	items := append([]core.Transaction(nil), ts...)
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

// FindRange returns records inside the window, in insertion order.
func (s *Store) FindRange(_ context.Context, w core.MonthWindow) ([]core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []core.Transaction
	for _, t := range s.items {
		if w.Contains(t.DateOfSale) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *Store) Close() error {
	return nil
}
