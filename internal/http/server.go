package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"finsight/internal/advisor"
	"finsight/internal/core"
	"finsight/internal/log"
	"finsight/internal/middleware/security"
	"finsight/internal/middleware/trace"
	"finsight/internal/services"
)

// Dashboard is everything the API needs from the service layer.
type Dashboard interface {
	AddTransaction(ctx context.Context, in services.NewTransaction) (core.Transaction, error)
	Transactions(ctx context.Context) ([]core.Transaction, error)
	Summary(ctx context.Context) (core.Summary, error)
	SetBudget(ctx context.Context, budget core.Money) error
	Forecast(ctx context.Context, req advisor.ForecastRequest) advisor.Envelope[advisor.ForecastResult]
	Insights(ctx context.Context, req advisor.InsightsRequest) advisor.Envelope[advisor.InsightsResult]
	ForecastFromLedger(ctx context.Context, marketTrends string, assumptions *string) (advisor.Envelope[advisor.ForecastResult], error)
	InsightsFromLedger(ctx context.Context) (advisor.Envelope[advisor.InsightsResult], error)
}

// Options configures the server.
type Options struct {
	Addr string
	// GenerationTimeout is added to the write timeout so a slow model
	// reply is not cut off by the server.
	GenerationTimeout time.Duration
	Logger            *log.Logger
}

type Server struct {
	http.Server
	dash    Dashboard
	logger  *log.Logger
	tracer  *trace.Middleware
	started time.Time

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run http.Server.
func NewServer(dash Dashboard, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}
	detector := security.NewDetector()

	s := &Server{
		Server: http.Server{
			Addr:              opts.Addr,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      opts.GenerationTimeout + 15*time.Second,
			IdleTimeout:       60 * time.Second,
		},
		dash:    dash,
		logger:  logger.WithComponent(log.ComponentHTTP),
		tracer:  trace.NewMiddleware(logger, detector.ExtractClientIP),
		started: time.Now(),
	}

	r := chi.NewRouter()
	r.Use(log.Middleware(s.logger))
	r.Use(s.tracer.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware)
	r.Use(detector.Middleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NotFoundError("not found").Write(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		MethodNotAllowedError("method not allowed").Write(w)
	})

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Get("/transactions", s.handleListTransactions)
		r.Post("/transactions", s.handleCreateTransaction)
		r.Put("/budget", s.handleSetBudget)

		r.Post("/forecast", s.handleForecast)
		r.Post("/insights", s.handleInsights)

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/summary", s.handleSummary)
			r.Post("/forecast", s.handleDashboardForecast)
			r.Post("/insights", s.handleDashboardInsights)
		})
	})

	s.Handler = r
	return s
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.logger.InfoContext(ctx, "Shutting down HTTP server", log.FieldOperation, log.OpShutdown)
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// requestLogger returns the request-scoped logger tagged for this package.
func requestLogger(r *http.Request) *log.Logger {
	return log.FromContext(r.Context()).WithComponent(log.ComponentHTTP)
}
