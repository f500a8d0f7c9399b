package http

import (
	"time"

	"finsight/internal/core"
)

type transactionJSON struct {
	ID     string  `json:"id"`
	Type   string  `json:"type"`
	Source string  `json:"source"`
	Amount float64 `json:"amount"`
	Date   string  `json:"date"`
}

func toTransactionJSON(t core.Transaction) transactionJSON {
	return transactionJSON{
		ID:     t.ID,
		Type:   string(t.Type),
		Source: t.Source,
		Amount: t.Amount.Dollars(),
		Date:   t.Date.UTC().Format(time.RFC3339),
	}
}

type createTransactionRequest struct {
	Type   string   `json:"type"`
	Source string   `json:"source"`
	Amount *float64 `json:"amount"`
}

type budgetRequest struct {
	Budget *float64 `json:"budget"`
}

type categoryJSON struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

type summaryJSON struct {
	TotalIncome        float64        `json:"totalIncome"`
	TotalExpenses      float64        `json:"totalExpenses"`
	NetSavings         float64        `json:"netSavings"`
	ExpenseByCategory  []categoryJSON `json:"expenseByCategory"`
	Budget             float64        `json:"budget"`
	BudgetUsagePercent float64        `json:"budgetUsagePercent"`
	OverBudget         bool           `json:"overBudget"`
	BudgetStatus       string         `json:"budgetStatus"`
}

func toSummaryJSON(s core.Summary) summaryJSON {
	out := summaryJSON{
		TotalIncome:        s.TotalIncome.Dollars(),
		TotalExpenses:      s.TotalExpenses.Dollars(),
		NetSavings:         s.NetSavings.Dollars(),
		ExpenseByCategory:  make([]categoryJSON, 0, len(s.ExpenseByCategory)),
		Budget:             s.Budget.Dollars(),
		BudgetUsagePercent: s.BudgetUsagePercent.InexactFloat64(),
		OverBudget:         s.OverBudget,
		BudgetStatus:       s.BudgetStatus(),
	}
	for _, c := range s.ExpenseByCategory {
		out.ExpenseByCategory = append(out.ExpenseByCategory, categoryJSON{Name: c.Name, Amount: c.Amount.Dollars()})
	}
	return out
}

type dashboardForecastRequest struct {
	MarketTrends string  `json:"marketTrends"`
	Assumptions  *string `json:"assumptions,omitempty"`
}
