package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"finsight/internal/core"
)

// ErrDuplicateID is returned when a transaction ID is already in the ledger.
var ErrDuplicateID = errors.New("duplicate transaction id")

// Store keeps the ledger in process memory. Nothing survives a restart.
type Store struct {
	mu     sync.Mutex
	ids    map[string]struct{}
	items  []core.Transaction
	budget core.Money
}

func New(budget core.Money) *Store {
	return &Store{ids: map[string]struct{}{}, budget: budget}
}

// NewSeeded returns a store preloaded with the demo ledger.
func NewSeeded(budget core.Money) *Store {
	s := New(budget)
	for _, t := range DemoTransactions() {
		s.ids[t.ID] = struct{}{}
		s.items = append(s.items, t)
	}
	return s
}

// DemoTransactions is the starter ledger shown on a fresh dashboard.
func DemoTransactions() []core.Transaction {
	d := func(day int) time.Time { return time.Date(2024, time.May, day, 0, 0, 0, 0, time.UTC) }
	return []core.Transaction{
		{ID: "1", Type: core.Income, Source: "Figma Project A", Amount: core.Money{Cents: 350000}, Date: d(1)},
		{ID: "2", Type: core.Income, Source: "Client B", Amount: core.Money{Cents: 200000}, Date: d(5)},
		{ID: "3", Type: core.Expense, Source: "Software", Amount: core.Money{Cents: 15000}, Date: d(2)},
		{ID: "4", Type: core.Expense, Source: "Hardware", Amount: core.Money{Cents: 80000}, Date: d(10)},
		{ID: "5", Type: core.Expense, Source: "Utilities", Amount: core.Money{Cents: 25000}, Date: d(15)},
		{ID: "6", Type: core.Expense, Source: "Marketing", Amount: core.Money{Cents: 40000}, Date: d(20)},
	}
}

// Append stores the transaction and returns its ID.
func (s *Store) Append(_ context.Context, t core.Transaction) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[t.ID]; ok || t.ID == "" {
		return "", ErrDuplicateID
	}
	s.ids[t.ID] = struct{}{}
	s.items = append(s.items, t)
	return t.ID, nil
}

// ListTransactions returns a copy of the ledger in insertion order.
func (s *Store) ListTransactions(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.items...), nil
}

func (s *Store) Budget(_ context.Context) (core.Money, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.budget, nil
}

func (s *Store) SetBudget(_ context.Context, budget core.Money) error {
	if err := core.ValidateBudget(budget); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budget = budget
	return nil
}
