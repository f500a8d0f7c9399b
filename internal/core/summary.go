package core

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// Summary is the dashboard overview computed from the ledger.
type Summary struct {
	TotalIncome        Money
	TotalExpenses      Money
	NetSavings         Money
	ExpenseByCategory  []CategoryAmount // first-seen order
	Budget             Money
	BudgetUsagePercent decimal.Decimal // rounded to one decimal place
	OverBudget         bool
}

var hundred = decimal.NewFromInt(100)

// Summarize aggregates transactions against a budget.
func Summarize(txs []Transaction, budget Money) Summary {
	s := Summary{Budget: budget}
	index := map[string]int{}
	for _, t := range txs {
		switch t.Type {
		case Income:
			s.TotalIncome.Cents += t.Amount.Cents
		case Expense:
			s.TotalExpenses.Cents += t.Amount.Cents
			i, ok := index[t.Source]
			if !ok {
				i = len(s.ExpenseByCategory)
				index[t.Source] = i
				s.ExpenseByCategory = append(s.ExpenseByCategory, CategoryAmount{Name: t.Source})
			}
			s.ExpenseByCategory[i].Amount.Cents += t.Amount.Cents
		}
	}
	s.NetSavings.Cents = s.TotalIncome.Cents - s.TotalExpenses.Cents

	usage := decimal.Zero
	if budget.Cents > 0 {
		usage = decimal.NewFromInt(s.TotalExpenses.Cents).
			Div(decimal.NewFromInt(budget.Cents)).
			Mul(hundred)
	}
	s.OverBudget = usage.GreaterThan(hundred)
	s.BudgetUsagePercent = usage.Round(1)
	return s
}

// BudgetStatus describes how far over or under the budget the expenses are.
func (s Summary) BudgetStatus() string {
	if s.OverBudget {
		return s.BudgetUsagePercent.Sub(hundred).StringFixed(1) + "% over budget"
	}
	return hundred.Sub(s.BudgetUsagePercent).StringFixed(1) + "% budget remaining"
}

// HistoricalData renders transactions as the plain-text history sent to the forecaster,
// one "<type> of $<amount> from <source> on <date>" line per transaction.
func HistoricalData(txs []Transaction) string {
	lines := make([]string, 0, len(txs))
	for _, t := range txs {
		lines = append(lines, fmt.Sprintf("%s of $%s from %s on %s",
			t.Type, t.Amount, t.Source, t.Date.Format("2006-01-02")))
	}
	return strings.Join(lines, "\n")
}
