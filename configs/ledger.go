package configs

import (
	"errors"
	"fmt"
)

type LedgerBackend string

const (
	LedgerBackendMemory   LedgerBackend = "memory"
	LedgerBackendPostgres LedgerBackend = "postgres"
	LedgerBackendBadger   LedgerBackend = "badger"
)

func (b LedgerBackend) String() string {
	return string(b)
}

type DB struct {
	URL           string `env:"DATABASE_URL"`
	MigrationsDir string `env:"MIGRATIONS_DIR" envDefault:"migrations"`
}

type Ledger struct {
	Backend   LedgerBackend `env:"LEDGER_BACKEND" envDefault:"memory"`
	BadgerDir string        `env:"BADGER_DIR"`
	DB        DB
}

func (c Ledger) Validate() error {
	switch c.Backend {
	case LedgerBackendMemory, LedgerBackendBadger:
		return nil
	case LedgerBackendPostgres:
		if c.DB.URL == "" {
			return errors.New("DATABASE_URL is required for the postgres ledger backend")
		}
		return nil
	default:
		return fmt.Errorf("unknown ledger backend: %s", c.Backend)
	}
}
