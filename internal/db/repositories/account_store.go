package repositories

import (
	"context"
	"errors"
	"github.com/gagliardetto/solana-go"
	"quadratic_voting/internal/db/models"
)

var (
	ErrAccountAlreadyInUse        = errors.New("account already in use")
	ErrAccountNotFound            = errors.New("account not found")
	ErrAccountOwnedByWrongProgram = errors.New("account is not owned by the expected program")
	ErrTransactionConflict        = errors.New("transaction conflicts with a concurrent write")
)

// AccountTx is the view of the ledger available to one instruction.
type AccountTx interface {
	Get(ctx context.Context, address solana.PublicKey) (*models.Account, error)
	// Create inserts a new account and fails with ErrAccountAlreadyInUse if the address is occupied.
	Create(ctx context.Context, account *models.Account) error
	Update(ctx context.Context, account *models.Account) error
	Scan(ctx context.Context, owner solana.PublicKey, discriminator models.Discriminator) ([]*models.Account, error)
}

//go:generate mockgen -source=account_store.go -destination=mocks/mock_account_store.go -package=mock_repositories

// AccountStore runs fn atomically: every write made through tx commits, or none does.
type AccountStore interface {
	RunInTransaction(ctx context.Context, fn func(tx AccountTx) error) error
	Close() error
}

func hasDiscriminator(account *models.Account, discriminator models.Discriminator) bool {
	d, ok := account.Discriminator()
	return ok && d == discriminator
}
