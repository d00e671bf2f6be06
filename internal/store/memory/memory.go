package memory

import (
	"context"
	"sync"

	"finanza/internal/core"
)

// Store is the in-memory backend, used as the default and in tests.
type Store struct {
	mu       sync.Mutex
	items    []core.Transaction
	settings map[string]string
}

func New() *Store {
	return &Store{settings: make(map[string]string)}
}

// NewWith seeds the store with an initial transaction list.
func NewWith(txs []core.Transaction) *Store {
	s := New()
	s.items = append(s.items, txs...)
	return s
}

func (s *Store) Get(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *Store) Replace(_ context.Context, txs []core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make([]core.Transaction, len(txs))
	copy(s.items, txs)
	return nil
}

func (s *Store) Append(_ context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	// Newest first, matching the list order the dashboard shows.
	s.items = append([]core.Transaction{t}, s.items...)
	return nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.items[:0]
	for _, t := range s.items {
		if t.ID != id {
			out = append(out, t)
		}
	}
	s.items = out
	return nil
}

func (s *Store) GetSetting(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings[key], nil
}

func (s *Store) SetSetting(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[key] = value
	return nil
}
