package advisor

import (
	"context"
	"time"

	"finsight/internal/genflow"
	"finsight/internal/log"
)

// User-facing failure messages. Fault detail only goes to the log.
const (
	ForecastFailureMessage = "Failed to generate financial forecast. Please try again."
	InsightsFailureMessage = "Failed to generate dashboard insights. Please try again."
)

// Advisor runs the forecast and insights operations against one generator.
// It is safe for concurrent use.
type Advisor struct {
	forecast *genflow.Flow[ForecastRequest, ForecastResult]
	insights *genflow.Flow[InsightsRequest, InsightsResult]
	logger   *log.Logger
}

// New wires both operations to gen. A nil logger discards output.
func New(gen genflow.Generator, timeout time.Duration, logger *log.Logger, opts ...genflow.Option) *Advisor {
	if logger == nil {
		logger = log.Discard()
	}
	invoker := genflow.NewInvoker(gen, timeout)
	flowOpts := append([]genflow.Option{genflow.WithLogger(logger)}, opts...)
	return &Advisor{
		forecast: genflow.NewFlow[ForecastRequest, ForecastResult](
			"forecastFinancialOutcome", ForecastRequestSchema, ForecastResultSchema,
			forecastPrompt, invoker, flowOpts...),
		insights: genflow.NewFlow[InsightsRequest, InsightsResult](
			"generateSummaryDashboardInsights", InsightsRequestSchema, InsightsResultSchema,
			insightsPrompt, invoker, flowOpts...),
		logger: logger.WithComponent(log.ComponentAdvisor),
	}
}

// Forecast projects income, expenses and savings and gives investment advice.
func (a *Advisor) Forecast(ctx context.Context, req ForecastRequest) Envelope[ForecastResult] {
	start := time.Now()
	out, err := a.forecast.Run(ctx, req)
	if err != nil {
		a.logFault(ctx, log.OpForecast, err)
		return Fail[ForecastResult](ForecastFailureMessage)
	}
	a.logger.InfoContext(ctx, "Forecast generated",
		log.FieldOperation, log.OpForecast,
		log.FieldDuration, time.Since(start).Milliseconds())
	return Succeed(out)
}

// Insights summarises dashboard figures into insights and recommendations.
func (a *Advisor) Insights(ctx context.Context, req InsightsRequest) Envelope[InsightsResult] {
	start := time.Now()
	out, err := a.insights.Run(ctx, req)
	if err != nil {
		a.logFault(ctx, log.OpInsights, err)
		return Fail[InsightsResult](InsightsFailureMessage)
	}
	a.logger.InfoContext(ctx, "Insights generated",
		log.FieldOperation, log.OpInsights,
		log.FieldDuration, time.Since(start).Milliseconds(),
		"insights", len(out.Insights),
		"recommendations", len(out.Recommendations))
	return Succeed(out)
}

func (a *Advisor) logFault(ctx context.Context, op string, err error) {
	attrs := []any{
		log.FieldOperation, op,
		log.FieldError, err.Error(),
	}
	if f, ok := genflow.FaultOf(err); ok {
		attrs = append(attrs, log.FieldErrorType, errorType(f.Kind))
		if f.Field != "" {
			attrs = append(attrs, log.FieldFaultField, f.Field)
		}
	}
	a.logger.ErrorContext(ctx, "Generation failed", attrs...)
}

func errorType(k genflow.FaultKind) string {
	switch k {
	case genflow.FaultValidation:
		return log.ErrorTypeValidation
	case genflow.FaultDecoding:
		return log.ErrorTypeDecoding
	case genflow.FaultTimeout:
		return log.ErrorTypeTimeout
	case genflow.FaultGeneration:
		return log.ErrorTypeNetwork
	default:
		return log.ErrorTypeInternal
	}
}
