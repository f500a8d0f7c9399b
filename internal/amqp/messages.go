package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"finsight/internal/core"
)

// EventType names a ledger change.
type EventType string

const (
	EventTransactionRecorded EventType = "transaction.recorded"
	EventBudgetUpdated       EventType = "budget.updated"
)

// LedgerEvent is published after each accepted ledger change.
// Amounts are in cents.
type LedgerEvent struct {
	ID              string    `json:"id"`
	Type            EventType `json:"type"`
	TransactionID   string    `json:"transaction_id,omitempty"`
	TransactionType string    `json:"transaction_type,omitempty"`
	Source          string    `json:"source,omitempty"`
	AmountCents     int64     `json:"amount_cents,omitempty"`
	BudgetCents     int64     `json:"budget_cents,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

// NewTransactionRecorded describes a transaction that was added to the ledger.
func NewTransactionRecorded(t core.Transaction) *LedgerEvent {
	return &LedgerEvent{
		ID:              uuid.NewString(),
		Type:            EventTransactionRecorded,
		TransactionID:   t.ID,
		TransactionType: string(t.Type),
		Source:          t.Source,
		AmountCents:     t.Amount.Cents,
		Timestamp:       time.Now().UTC(),
	}
}

// NewBudgetUpdated describes a budget change.
func NewBudgetUpdated(budget core.Money) *LedgerEvent {
	return &LedgerEvent{
		ID:          uuid.NewString(),
		Type:        EventBudgetUpdated,
		BudgetCents: budget.Cents,
		Timestamp:   time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerEventFromJSON creates a message from JSON bytes
func LedgerEventFromJSON(data []byte) (*LedgerEvent, error) {
	var msg LedgerEvent
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
