package token

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	tokenprog "github.com/gagliardetto/solana-go/programs/token"
	"quadratic_voting/internal/db/models"
	"quadratic_voting/internal/db/repositories"
)

var (
	ErrInvalidAccountData   = errors.New("invalid token account data")
	ErrTokenAccountMismatch = errors.New("token account belongs to a different owner or mint")
)

// Load decodes a ledger account as a token account after checking it belongs to the token program.
func Load(account *models.Account) (*tokenprog.Account, error) {
	if !account.OwnedBy(solana.TokenProgramID) {
		return nil, fmt.Errorf("%s: %w", account.Address, repositories.ErrAccountOwnedByWrongProgram)
	}

	tokenAccount := &tokenprog.Account{}
	if err := bin.NewBinDecoder(account.Data).Decode(tokenAccount); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAccountData, err)
	}

	return tokenAccount, nil
}

func NewAccount(address, mint, owner solana.PublicKey, amount uint64) (*models.Account, error) {
	buf := new(bytes.Buffer)
	tokenAccount := &tokenprog.Account{
		Mint:   mint,
		Owner:  owner,
		Amount: amount,
	}
	if err := bin.NewBinEncoder(buf).Encode(tokenAccount); err != nil {
		return nil, fmt.Errorf("failed to encode token account: %w", err)
	}

	return models.NewAccount(address, solana.TokenProgramID, buf.Bytes()), nil
}

// SetBalance creates the token account at address or overwrites its balance.
// An existing account keeps its owner and mint.
func SetBalance(ctx context.Context, store repositories.AccountStore, address, mint, owner solana.PublicKey, amount uint64) error {
	account, err := NewAccount(address, mint, owner, amount)
	if err != nil {
		return err
	}

	return store.RunInTransaction(ctx, func(tx repositories.AccountTx) error {
		existing, err := tx.Get(ctx, address)
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return tx.Create(ctx, account)
		} else if err != nil {
			return err
		}

		current, err := Load(existing)
		if err != nil {
			return err
		}

		if !current.Owner.Equals(owner) || !current.Mint.Equals(mint) {
			return fmt.Errorf("%s: %w", address, ErrTokenAccountMismatch)
		}

		return tx.Update(ctx, account)
	})
}
