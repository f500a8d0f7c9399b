package advisor

import "finsight/internal/genflow"

var forecastPrompt = genflow.MustPrompt("forecastFinancialOutcome", `You are a financial advisor. Based on the user's historical financial data, current market trends, and any assumptions they provide, forecast their financial outcome and provide investment advice.

Historical Data: {{.HistoricalData}}
Market Trends: {{.MarketTrends}}
Assumptions: {{optional .Assumptions}}

Forecasted Income:
Forecasted Expenses:
Net Savings:
Investment Advice:`)

var insightsPrompt = genflow.MustPrompt("generateSummaryDashboardInsights", `You are a financial advisor providing insights and summaries of financial data for a user dashboard.

Summarize the key financial metrics, identify areas for improvement, and provide recommendations based on the following data:

Income: {{range $i, $e := .Income}}{{$e.Source}}: {{number $e.Amount}}{{if not (last $i (len $.Income))}}, {{end}}{{end}}
Expenditures: {{range $i, $e := .Expenditures}}{{$e.Category}}: {{number $e.Amount}}{{if not (last $i (len $.Expenditures))}}, {{end}}{{end}}
Budget: {{number .Budget}}

Write a concise summary, list key insights, and provide actionable recommendations.
Ensure the tone is professional, encouraging, and focused on helping the user improve their financial health.
Follow the schema descriptions closely.
`)
