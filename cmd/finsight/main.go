package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"finsight/internal/advisor"
	"finsight/internal/amqp"
	"finsight/internal/cli"
	"finsight/internal/genflow"
	apphttp "finsight/internal/http"
	"finsight/internal/ledger/memory"
	"finsight/internal/log"
	"finsight/internal/services"
)

func main() {
	// Load .env file for local development (ignored when absent)
	cli.LoadEnvFile()

	cfg := cli.LoadAndValidateConfig()

	logger, err := cli.SetupLogger(cfg)
	if err != nil {
		log.New(log.DefaultConfig()).Error("Failed to set up logger", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Starting finsight", log.FieldOperation, log.OpStartup, "port", cfg.Port)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gen, err := genflow.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		logger.Error("Failed to initialize Gemini client",
			log.FieldErrorType, log.ErrorTypeConfiguration,
			log.FieldError, err)
		os.Exit(1)
	}
	adv := advisor.New(gen, cfg.GenerationTimeout, logger)
	logger.Info("Advisor ready", log.FieldModel, gen.Model(), "timeout", cfg.GenerationTimeout.String())

	var store *memory.Store
	if cfg.SeedDemoData {
		store = memory.NewSeeded(cfg.Budget())
	} else {
		store = memory.New(cfg.Budget())
	}

	// Ledger events are optional; the service skips publishing when none is set.
	var events services.EventPublisher
	if cfg.AMQPEnabled() {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRoutingKey, logger)
		if err != nil {
			logger.Error("Failed to connect to AMQP broker",
				log.FieldErrorType, log.ErrorTypeNetwork,
				log.FieldError, err)
			os.Exit(1)
		}
		defer client.Close()
		events = client
		logger.Info("AMQP publishing enabled", "exchange", cfg.AMQPExchange)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	dash := services.NewDashboardService(store, adv, events, logger)
	srv := apphttp.NewServer(dash, apphttp.Options{
		Addr:              ":" + cfg.Port,
		GenerationTimeout: cfg.GenerationTimeout,
		Logger:            logger,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
