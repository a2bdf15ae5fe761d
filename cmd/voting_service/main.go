package main

import (
	"context"
	"errors"
	"github.com/gagliardetto/solana-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"net/http"
	"os"
	"os/signal"
	"quadratic_voting/configs"
	"quadratic_voting/internal/api"
	"quadratic_voting/internal/di"
	"quadratic_voting/internal/program"
	"syscall"
	"time"
)

func main() {
	config, err := configs.LoadVotingServiceConfig()
	logger := di.NewLogger(config.Logger, config.App.Environment)

	if err != nil {
		logger.Fatalw("failed to load config", "error", err)
	}
	logger.Info("config loaded")

	programID, err := solana.PublicKeyFromBase58(config.App.ProgramID)
	if err != nil {
		logger.Fatalw("invalid program id", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Infow("opening ledger", "backend", config.Ledger.Backend)
	store, err := di.NewAccountStore(ctx, config.Ledger, logger)
	if err != nil {
		logger.Fatalw("failed to open ledger", "error", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Errorw("failed to close ledger", "error", err)
		}
	}()
	logger.Info("ledger opened")

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	processor := program.NewVotingProcessor(programID, store, program.NewMetrics(registry), logger)
	router := api.NewServer(processor, store, registry, config.App.IsDevEnvironment(), logger).Router()

	server := &http.Server{
		Addr:              config.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infow("starting http server", "addr", config.HTTP.Addr, "program_id", programID)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorw("failed to start http server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("failed to shutdown http server", "error", err)
		return
	}

	logger.Info("shutting down")
}
