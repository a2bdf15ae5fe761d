package repositories

import (
	"context"
	"github.com/gagliardetto/solana-go"
	"quadratic_voting/internal/db/models"
	"slices"
	"strings"
	"sync"
	"time"
)

type memoryStore struct {
	lock     sync.Mutex
	accounts map[string]models.Account
}

// NewMemoryStore returns a process-local store. Transactions are serialized.
func NewMemoryStore() AccountStore {
	return &memoryStore{accounts: make(map[string]models.Account)}
}

func (s *memoryStore) RunInTransaction(ctx context.Context, fn func(tx AccountTx) error) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &memoryTx{store: s, writes: make(map[string]models.Account)}
	if err := fn(tx); err != nil {
		return err
	}

	for address, account := range tx.writes {
		s.accounts[address] = account
	}

	return nil
}

func (s *memoryStore) Close() error {
	return nil
}

type memoryTx struct {
	store  *memoryStore
	writes map[string]models.Account
}

func (t *memoryTx) lookup(address string) (models.Account, bool) {
	if account, ok := t.writes[address]; ok {
		return account, true
	}
	account, ok := t.store.accounts[address]
	return account, ok
}

func (t *memoryTx) Get(_ context.Context, address solana.PublicKey) (*models.Account, error) {
	account, ok := t.lookup(address.String())
	if !ok {
		return nil, ErrAccountNotFound
	}
	return copyAccount(account), nil
}

func (t *memoryTx) Create(_ context.Context, account *models.Account) error {
	if _, ok := t.lookup(account.Address); ok {
		return ErrAccountAlreadyInUse
	}

	now := time.Now().UTC()
	stored := *copyAccount(*account)
	stored.CreatedAt = now
	stored.UpdatedAt = now
	t.writes[account.Address] = stored

	return nil
}

func (t *memoryTx) Update(_ context.Context, account *models.Account) error {
	existing, ok := t.lookup(account.Address)
	if !ok {
		return ErrAccountNotFound
	}

	stored := *copyAccount(*account)
	stored.CreatedAt = existing.CreatedAt
	stored.UpdatedAt = time.Now().UTC()
	t.writes[account.Address] = stored

	return nil
}

func (t *memoryTx) Scan(_ context.Context, owner solana.PublicKey, discriminator models.Discriminator) ([]*models.Account, error) {
	accounts := make([]*models.Account, 0)

	seen := make(map[string]struct{})
	collect := func(account models.Account) {
		if _, ok := seen[account.Address]; ok {
			return
		}
		seen[account.Address] = struct{}{}

		if account.OwnedBy(owner) && hasDiscriminator(&account, discriminator) {
			accounts = append(accounts, copyAccount(account))
		}
	}

	for _, account := range t.writes {
		collect(account)
	}
	for _, account := range t.store.accounts {
		collect(account)
	}

	slices.SortFunc(accounts, func(a, b *models.Account) int {
		return strings.Compare(a.Address, b.Address)
	})

	return accounts, nil
}

func copyAccount(account models.Account) *models.Account {
	account.Data = slices.Clone(account.Data)
	return &account
}
