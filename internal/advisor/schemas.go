package advisor

import "finsight/internal/genflow"

var ForecastRequestSchema = &genflow.Descriptor{
	Name: "FinancialForecastingInput",
	Fields: []genflow.Field{
		genflow.Text("historicalData", "Historical financial data, including income and expenses."),
		genflow.Text("marketTrends", "Current market trends and economic indicators."),
		genflow.Optional(genflow.Text("assumptions", "Assumptions about future income or expenses.")),
	},
}

var ForecastResultSchema = &genflow.Descriptor{
	Name: "FinancialForecastingOutput",
	Fields: []genflow.Field{
		genflow.Number("forecastedIncome", "Forecasted total income."),
		genflow.Number("forecastedExpenses", "Forecasted total expenses."),
		genflow.Number("netSavings", "The net savings, based on forecasted income and expenses."),
		genflow.Text("investmentAdvice", "Investment advice based on the forecast."),
	},
}

var InsightsRequestSchema = &genflow.Descriptor{
	Name: "GenerateSummaryDashboardInsightsInput",
	Fields: []genflow.Field{
		genflow.List("income", "An array of income sources and amounts.",
			genflow.Object("", "",
				genflow.Text("source", "Income source."),
				genflow.Number("amount", "Amount received."),
			)),
		genflow.List("expenditures", "An array of expenditures categorized by type and amount.",
			genflow.Object("", "",
				genflow.Text("category", "Expense category."),
				genflow.Number("amount", "Amount spent."),
			)),
		genflow.Number("budget", "The total budget for the period."),
	},
}

var InsightsResultSchema = &genflow.Descriptor{
	Name: "GenerateSummaryDashboardInsightsOutput",
	Fields: []genflow.Field{
		genflow.Text("summary", "A summary of the financial data."),
		genflow.List("insights", "Key insights from the data.", genflow.Text("", "")),
		genflow.List("recommendations", "Recommendations for improvement.", genflow.Text("", "")),
	},
}
