package core

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

type (
	TransactionType string

	Money struct {
		Cents int64
	}

	Transaction struct {
		ID     string
		Type   TransactionType
		Source string // Income source, or category for expenses
		Amount Money
		Date   time.Time
	}
)

var (
	ErrInvalidType    = errors.New("transaction type must be income or expense")
	ErrInvalidAmount  = errors.New("amount must be a positive number")
	ErrShortSource    = errors.New("source/category must be at least 2 characters")
	ErrLongSource     = errors.New("source/category too long (max 200 characters)")
	ErrMissingDate    = errors.New("transaction date cannot be zero")
	ErrNegativeBudget = errors.New("budget cannot be negative")
)

// ParseTransactionType accepts "income" or "expense" in any case.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(strings.ToLower(strings.TrimSpace(s))) {
	case Income:
		return Income, nil
	case Expense:
		return Expense, nil
	default:
		return "", ErrInvalidType
	}
}

func (t TransactionType) Validate() error {
	switch t {
	case Income, Expense:
		return nil
	default:
		return ErrInvalidType
	}
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (t Transaction) Validate() error {
	if err := t.Type.Validate(); err != nil {
		return err
	}
	source := strings.TrimSpace(t.Source)
	if utf8.RuneCountInString(source) < 2 {
		return ErrShortSource
	}
	if len(source) > 200 {
		return ErrLongSource
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if t.Date.IsZero() {
		return ErrMissingDate
	}
	return nil
}

// ValidateBudget accepts zero (no budget set) and any positive amount.
func ValidateBudget(m Money) error {
	if m.Cents < 0 {
		return ErrNegativeBudget
	}
	return nil
}
