package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"finsight/internal/advisor"
	"finsight/internal/amqp"
	"finsight/internal/core"
	"finsight/internal/ledger"
	"finsight/internal/log"
)

// ErrNotEnoughData is returned when a forecast is requested for an empty ledger.
var ErrNotEnoughData = errors.New("not enough data")

// EventPublisher receives ledger change events. *amqp.Client implements it.
type EventPublisher interface {
	PublishLedgerEvent(ctx context.Context, event *amqp.LedgerEvent) error
}

// Advisor is the model-backed side of the dashboard. *advisor.Advisor implements it.
type Advisor interface {
	Forecast(ctx context.Context, req advisor.ForecastRequest) advisor.Envelope[advisor.ForecastResult]
	Insights(ctx context.Context, req advisor.InsightsRequest) advisor.Envelope[advisor.InsightsResult]
}

// NewTransaction is a ledger entry as submitted by a client.
type NewTransaction struct {
	Type   core.TransactionType
	Source string
	Amount core.Money
}

// DashboardService orchestrates the ledger, the advisor and event publishing
type DashboardService struct {
	store   ledger.Store
	advisor Advisor
	events  EventPublisher
	logger  *log.Logger
	now     func() time.Time
	newID   func() string
}

// NewDashboardService wires the service. events may be nil.
func NewDashboardService(store ledger.Store, adv Advisor, events EventPublisher, logger *log.Logger) *DashboardService {
	if logger == nil {
		logger = log.Discard()
	}
	return &DashboardService{
		store:   store,
		advisor: adv,
		events:  events,
		logger:  logger.WithComponent(log.ComponentLedger),
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
	}
}

// AddTransaction assigns an ID and date, stores the transaction and publishes an event
func (s *DashboardService) AddTransaction(ctx context.Context, in NewTransaction) (core.Transaction, error) {
	tx := core.Transaction{
		ID:     s.newID(),
		Type:   in.Type,
		Source: strings.TrimSpace(in.Source),
		Amount: in.Amount,
		Date:   s.now(),
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	if _, err := s.store.Append(ctx, tx); err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}

	s.logger.InfoContext(ctx, "Transaction recorded",
		log.NewFields().
			WithOperation(log.OpCreate).
			WithTransaction(tx.ID, string(tx.Type), tx.Amount.Cents).
			ToSlice()...)

	// The transaction is already stored; a publish failure is only logged.
	if err := s.publish(ctx, amqp.NewTransactionRecorded(tx)); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish ledger event",
			log.FieldTransactionID, tx.ID,
			log.FieldError, err)
	}

	return tx, nil
}

// Transactions returns the ledger sorted by date, newest first
func (s *DashboardService) Transactions(ctx context.Context) ([]core.Transaction, error) {
	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.After(txs[j].Date)
	})
	return txs, nil
}

// Summary computes the dashboard aggregates for the current ledger and budget
func (s *DashboardService) Summary(ctx context.Context) (core.Summary, error) {
	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return core.Summary{}, fmt.Errorf("list transactions: %w", err)
	}
	budget, err := s.store.Budget(ctx)
	if err != nil {
		return core.Summary{}, fmt.Errorf("read budget: %w", err)
	}
	return core.Summarize(txs, budget), nil
}

// SetBudget replaces the budget and publishes an event
func (s *DashboardService) SetBudget(ctx context.Context, budget core.Money) error {
	if err := core.ValidateBudget(budget); err != nil {
		return err
	}
	if err := s.store.SetBudget(ctx, budget); err != nil {
		return fmt.Errorf("save budget: %w", err)
	}

	s.logger.InfoContext(ctx, "Budget updated",
		log.FieldOperation, log.OpBudget,
		log.FieldBudgetCents, budget.Cents)

	if err := s.publish(ctx, amqp.NewBudgetUpdated(budget)); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish ledger event",
			log.FieldBudgetCents, budget.Cents,
			log.FieldError, err)
	}
	return nil
}

// Forecast passes an explicit request straight to the advisor.
func (s *DashboardService) Forecast(ctx context.Context, req advisor.ForecastRequest) advisor.Envelope[advisor.ForecastResult] {
	return s.advisor.Forecast(ctx, req)
}

// Insights passes an explicit request straight to the advisor.
func (s *DashboardService) Insights(ctx context.Context, req advisor.InsightsRequest) advisor.Envelope[advisor.InsightsResult] {
	return s.advisor.Insights(ctx, req)
}

// ForecastFromLedger builds the historical data from the ledger and asks for a forecast.
// It returns ErrNotEnoughData without calling the advisor when the ledger is empty.
func (s *DashboardService) ForecastFromLedger(ctx context.Context, marketTrends string, assumptions *string) (advisor.Envelope[advisor.ForecastResult], error) {
	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return advisor.Envelope[advisor.ForecastResult]{}, fmt.Errorf("list transactions: %w", err)
	}
	history := core.HistoricalData(txs)
	if history == "" {
		return advisor.Envelope[advisor.ForecastResult]{}, ErrNotEnoughData
	}
	return s.advisor.Forecast(ctx, advisor.ForecastRequest{
		HistoricalData: history,
		MarketTrends:   marketTrends,
		Assumptions:    assumptions,
	}), nil
}

// InsightsFromLedger builds the insights request from the ledger and budget.
func (s *DashboardService) InsightsFromLedger(ctx context.Context) (advisor.Envelope[advisor.InsightsResult], error) {
	req, err := s.InsightsRequest(ctx)
	if err != nil {
		return advisor.Envelope[advisor.InsightsResult]{}, err
	}
	return s.advisor.Insights(ctx, req), nil
}

// InsightsRequest lists every income and expense transaction in ledger order.
func (s *DashboardService) InsightsRequest(ctx context.Context) (advisor.InsightsRequest, error) {
	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return advisor.InsightsRequest{}, fmt.Errorf("list transactions: %w", err)
	}
	budget, err := s.store.Budget(ctx)
	if err != nil {
		return advisor.InsightsRequest{}, fmt.Errorf("read budget: %w", err)
	}

	req := advisor.InsightsRequest{
		Income:       []advisor.IncomeEntry{},
		Expenditures: []advisor.ExpenditureEntry{},
		Budget:       budget.Dollars(),
	}
	for _, t := range txs {
		switch t.Type {
		case core.Income:
			req.Income = append(req.Income, advisor.IncomeEntry{Source: t.Source, Amount: t.Amount.Dollars()})
		case core.Expense:
			req.Expenditures = append(req.Expenditures, advisor.ExpenditureEntry{Category: t.Source, Amount: t.Amount.Dollars()})
		}
	}
	return req, nil
}

func (s *DashboardService) publish(ctx context.Context, event *amqp.LedgerEvent) error {
	if s.events == nil {
		s.logger.WarnContext(ctx, "AMQP client not available, skipping ledger event",
			"event_type", event.Type)
		return nil
	}
	return s.events.PublishLedgerEvent(ctx, event)
}
