package main

import (
	"context"
	"errors"
	"github.com/go-co-op/gocron"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"net/http"
	"os"
	"os/signal"
	"quadratic_voting/configs"
	"quadratic_voting/internal/api"
	"quadratic_voting/internal/db/models"
	"quadratic_voting/internal/di"
	"quadratic_voting/internal/services"
	"syscall"
	"time"
)

const (
	choiceTied   = "Tied"
	tallyTimeout = time.Minute
)

type tally struct {
	proposal models.ProposalEntry
	leading  string
}

func main() {
	s := gocron.NewScheduler(time.UTC)

	config, err := configs.LoadTallyServiceConfig()
	logger := di.NewLogger(config.Logger, config.App.Environment)

	if err != nil {
		logger.Fatalw("failed to load config", "error", err)
	}
	logger.Info("config loaded")

	registry := prometheus.NewRegistry()
	credits := newCreditsGauge(registry)
	votingService := services.NewVotingService(config.VotingAPI.URL)

	_, err = s.Cron(config.Tally.Schedule).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), tallyTimeout)
		defer cancel()

		logger.Info("collecting tallies")
		tallies, err := collectTallies(ctx, votingService)
		if err != nil {
			logger.Errorw("failed to collect tallies", "error", err)
			return
		}

		if len(tallies) == 0 {
			logger.Info("no proposals to tally")
			return
		}

		reportTallies(tallies, credits, logger)
	})
	if err != nil {
		logger.Fatalw("failed to schedule tally", "error", err, "schedule", config.Tally.Schedule)
	}

	server := &http.Server{
		Addr:              config.HTTP.Addr,
		Handler:           api.NewHealthRouter(registry),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("setting up health check server")
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorw("failed to start http server", "error", err)
		}
	}()

	s.StartAsync()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	s.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), config.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Errorw("failed to shutdown http server", "error", err)
		return
	}

	logger.Info("shutting down")
}

func newCreditsGauge(registerer prometheus.Registerer) *prometheus.GaugeVec {
	gauge := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "qv",
		Name:      "proposal_vote_credits",
		Help:      "Accumulated vote credits per proposal and choice at the last tally",
	}, []string{"proposal", "vote_type"})
	registerer.MustRegister(gauge)
	return gauge
}

func collectTallies(ctx context.Context, votingService services.VotingService) ([]tally, error) {
	proposals, err := votingService.GetProposals(ctx)
	if err != nil {
		return nil, err
	}

	tallies := make([]tally, 0, len(proposals))
	for _, proposal := range proposals {
		tallies = append(tallies, tally{
			proposal: proposal,
			leading:  leadingChoice(proposal.Proposal),
		})
	}

	return tallies, nil
}

func leadingChoice(proposal *models.Proposal) string {
	switch {
	case proposal.YesVoteCount > proposal.NoVoteCount:
		return models.VoteTypeYes.CapitalizedString()
	case proposal.NoVoteCount > proposal.YesVoteCount:
		return models.VoteTypeNo.CapitalizedString()
	default:
		return choiceTied
	}
}

func reportTallies(tallies []tally, credits *prometheus.GaugeVec, logger *zap.SugaredLogger) {
	for _, t := range tallies {
		address := t.proposal.Address.String()
		proposal := t.proposal.Proposal

		credits.WithLabelValues(address, models.VoteTypeYes.String()).Set(float64(proposal.YesVoteCount))
		credits.WithLabelValues(address, models.VoteTypeNo.String()).Set(float64(proposal.NoVoteCount))

		logger.Infow("proposal tally",
			"proposal", address,
			"metadata", proposal.Metadata,
			"yes", proposal.YesVoteCount,
			"no", proposal.NoVoteCount,
			"leading", t.leading,
		)
	}
}
