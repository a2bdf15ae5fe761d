package token

import (
	"context"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"quadratic_voting/internal/db/models"
	"quadratic_voting/internal/db/repositories"
	"testing"
)

func newKey(t *testing.T) solana.PublicKey {
	t.Helper()
	key, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	return key.PublicKey()
}

func TestNewAccountAndLoad(t *testing.T) {
	address, mint, owner := newKey(t), newKey(t), newKey(t)

	account, err := NewAccount(address, mint, owner, 100_000000)
	require.NoError(t, err)
	assert.True(t, account.OwnedBy(solana.TokenProgramID))

	tokenAccount, err := Load(account)
	require.NoError(t, err)
	assert.Equal(t, mint, tokenAccount.Mint)
	assert.Equal(t, owner, tokenAccount.Owner)
	assert.Equal(t, uint64(100_000000), tokenAccount.Amount)
}

func TestLoad_WrongProgram(t *testing.T) {
	account := models.NewAccount(newKey(t), newKey(t), make([]byte, 165))

	_, err := Load(account)
	assert.ErrorIs(t, err, repositories.ErrAccountOwnedByWrongProgram)
}

func TestLoad_TruncatedData(t *testing.T) {
	account := models.NewAccount(newKey(t), solana.TokenProgramID, []byte{1, 2, 3})

	_, err := Load(account)
	assert.ErrorIs(t, err, ErrInvalidAccountData)
}

func TestSetBalance_CreatesThenUpdates(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	address, mint, owner := newKey(t), newKey(t), newKey(t)

	require.NoError(t, SetBalance(ctx, store, address, mint, owner, 9))
	require.NoError(t, SetBalance(ctx, store, address, mint, owner, 16))

	require.NoError(t, store.RunInTransaction(ctx, func(tx repositories.AccountTx) error {
		account, err := tx.Get(ctx, address)
		require.NoError(t, err)

		tokenAccount, err := Load(account)
		require.NoError(t, err)
		assert.Equal(t, uint64(16), tokenAccount.Amount)
		return nil
	}))
}

func TestSetBalance_RefusesForeignAccount(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	address := newKey(t)

	require.NoError(t, store.RunInTransaction(ctx, func(tx repositories.AccountTx) error {
		return tx.Create(ctx, models.NewAccount(address, newKey(t), []byte{0}))
	}))

	err := SetBalance(ctx, store, address, newKey(t), newKey(t), 1)
	assert.ErrorIs(t, err, repositories.ErrAccountOwnedByWrongProgram)
}

func TestSetBalance_RefusesOwnerChange(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	address, mint, owner, intruder := newKey(t), newKey(t), newKey(t), newKey(t)

	require.NoError(t, SetBalance(ctx, store, address, mint, owner, 9))

	err := SetBalance(ctx, store, address, mint, intruder, 1_000_000)
	assert.ErrorIs(t, err, ErrTokenAccountMismatch)

	err = SetBalance(ctx, store, address, newKey(t), owner, 1_000_000)
	assert.ErrorIs(t, err, ErrTokenAccountMismatch)

	require.NoError(t, store.RunInTransaction(ctx, func(tx repositories.AccountTx) error {
		account, err := tx.Get(ctx, address)
		require.NoError(t, err)

		tokenAccount, err := Load(account)
		require.NoError(t, err)
		assert.Equal(t, owner, tokenAccount.Owner)
		assert.Equal(t, uint64(9), tokenAccount.Amount)
		return nil
	}))
}
