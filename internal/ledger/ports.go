package ledger

import (
	"context"

	"finsight/internal/core"
)

// Ports for the transaction ledger.
type (
	TransactionWriter interface {
		// Append stores a validated transaction and returns its ID.
		Append(ctx context.Context, t core.Transaction) (id string, err error)
	}

	// TransactionLister returns the ledger in insertion order.
	TransactionLister interface {
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
	}

	BudgetStore interface {
		Budget(ctx context.Context) (core.Money, error)
		SetBudget(ctx context.Context, budget core.Money) error
	}

	// Store is everything the dashboard needs from a ledger backend.
	Store interface {
		TransactionWriter
		TransactionLister
		BudgetStore
	}
)
