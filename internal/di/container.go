package di

import (
	"context"
	"fmt"
	zaploki "github.com/paul-milne/zap-loki"
	"go.uber.org/zap"
	"quadratic_voting/configs"
	"quadratic_voting/internal/db"
	"quadratic_voting/internal/db/repositories"
	"time"
)

func NewLogger(config configs.Logger, environment string) *zap.SugaredLogger {
	zapConfig := zap.NewProductionConfig()
	if environment == "dev" {
		zapConfig = zap.NewDevelopmentConfig()
	}

	if config.URL == "" {
		return zap.Must(zapConfig.Build()).Sugar()
	}

	ctx := context.Background()
	lokiConfig := zaploki.Config{
		Url:          config.URL,
		BatchMaxSize: 1000,
		BatchMaxWait: 10 * time.Second,
		Labels:       map[string]string{"app": config.AppName, "environment": environment},
	}
	return zap.Must(zaploki.New(ctx, lokiConfig).WithCreateLogger(zapConfig)).Sugar()
}

// NewAccountStore opens the ledger backend selected by config.
func NewAccountStore(ctx context.Context, config configs.Ledger, logger *zap.SugaredLogger) (repositories.AccountStore, error) {
	switch config.Backend {
	case configs.LedgerBackendMemory:
		logger.Warn("using in-memory ledger, state is lost on exit")
		return repositories.NewMemoryStore(), nil
	case configs.LedgerBackendPostgres:
		database, err := db.StartDB(ctx, config.DB, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to start db: %w", err)
		}
		return repositories.NewPostgresStore(database), nil
	case configs.LedgerBackendBadger:
		return repositories.NewBadgerStore(config.BadgerDir, logger)
	default:
		return nil, fmt.Errorf("unknown ledger backend: %s", config.Backend)
	}
}
