package repositories

import (
	"context"
	"fmt"
	"github.com/gagliardetto/solana-go"
	"quadratic_voting/internal/db/models"
)

type repository struct {
	tx        AccountTx
	programID solana.PublicKey
}

// load fetches an account and checks that this program owns it.
func (r repository) load(ctx context.Context, address solana.PublicKey) (*models.Account, error) {
	account, err := r.tx.Get(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", address, err)
	}

	if !account.OwnedBy(r.programID) {
		return nil, fmt.Errorf("%s: %w", address, ErrAccountOwnedByWrongProgram)
	}

	return account, nil
}

func (r repository) create(ctx context.Context, address solana.PublicKey, data []byte) error {
	if err := r.tx.Create(ctx, models.NewAccount(address, r.programID, data)); err != nil {
		return fmt.Errorf("%s: %w", address, err)
	}
	return nil
}

func (r repository) update(ctx context.Context, address solana.PublicKey, data []byte) error {
	if err := r.tx.Update(ctx, models.NewAccount(address, r.programID, data)); err != nil {
		return fmt.Errorf("%s: %w", address, err)
	}
	return nil
}
