// Package advisor exposes the two model-backed finance operations, forecast and
// dashboard insights, and always answers with an Envelope.
package advisor

// ForecastRequest asks for a projection from free-text financial history.
type ForecastRequest struct {
	HistoricalData string  `json:"historicalData"`
	MarketTrends   string  `json:"marketTrends"`
	Assumptions    *string `json:"assumptions,omitempty"`
}

// ForecastResult is the model's projection. NetSavings is reported as given
// and is not recomputed from income and expenses.
type ForecastResult struct {
	ForecastedIncome   float64 `json:"forecastedIncome"`
	ForecastedExpenses float64 `json:"forecastedExpenses"`
	NetSavings         float64 `json:"netSavings"`
	InvestmentAdvice   string  `json:"investmentAdvice"`
}

type IncomeEntry struct {
	Source string  `json:"source"`
	Amount float64 `json:"amount"`
}

type ExpenditureEntry struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// InsightsRequest carries the dashboard figures to summarise.
type InsightsRequest struct {
	Income       []IncomeEntry      `json:"income"`
	Expenditures []ExpenditureEntry `json:"expenditures"`
	Budget       float64            `json:"budget"`
}

type InsightsResult struct {
	Summary         string   `json:"summary"`
	Insights        []string `json:"insights"`
	Recommendations []string `json:"recommendations"`
}
