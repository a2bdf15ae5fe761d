package repositories

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	badger "github.com/dgraph-io/badger/v4"
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
	"quadratic_voting/internal/db/models"
	"slices"
	"strings"
	"sync"
	"time"
)

var accountKeyPrefix = []byte("acct:")

// badgerStore serializes transactions so writers to a shared account never abort each other.
type badgerStore struct {
	lock sync.Mutex
	db   *badger.DB
}

// NewBadgerStore opens a badger-backed store in dir, or an in-memory one when dir is empty.
func NewBadgerStore(dir string, logger *zap.SugaredLogger) (AccountStore, error) {
	options := badger.DefaultOptions(dir).
		WithLogger(badgerLogger{logger}).
		WithLoggingLevel(badger.WARNING)
	if dir == "" {
		options = options.WithInMemory(true)
	}

	db, err := badger.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}

	return &badgerStore{db: db}, nil
}

func (s *badgerStore) RunInTransaction(ctx context.Context, fn func(tx AccountTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	err := s.db.Update(func(txn *badger.Txn) error {
		return fn(&badgerTx{txn: txn})
	})
	if errors.Is(err, badger.ErrConflict) {
		return ErrTransactionConflict
	}

	return err
}

func (s *badgerStore) Close() error {
	return s.db.Close()
}

type badgerRecord struct {
	Owner     solana.PublicKey
	Data      []byte
	CreatedAt int64
	UpdatedAt int64
}

type badgerTx struct {
	txn *badger.Txn
}

func accountKey(address solana.PublicKey) []byte {
	return append(slices.Clone(accountKeyPrefix), address.Bytes()...)
}

func (t *badgerTx) Get(_ context.Context, address solana.PublicKey) (*models.Account, error) {
	item, err := t.txn.Get(accountKey(address))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrAccountNotFound
	} else if err != nil {
		return nil, err
	}

	value, err := item.ValueCopy(nil)
	if err != nil {
		return nil, err
	}

	return decodeBadgerAccount(address, value)
}

func (t *badgerTx) Create(ctx context.Context, account *models.Account) error {
	address, err := account.PublicKey()
	if err != nil {
		return err
	}

	_, err = t.txn.Get(accountKey(address))
	if err == nil {
		return ErrAccountAlreadyInUse
	} else if !errors.Is(err, badger.ErrKeyNotFound) {
		return err
	}

	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now

	return t.put(address, account)
}

func (t *badgerTx) Update(ctx context.Context, account *models.Account) error {
	address, err := account.PublicKey()
	if err != nil {
		return err
	}

	existing, err := t.Get(ctx, address)
	if err != nil {
		return err
	}

	account.CreatedAt = existing.CreatedAt
	account.UpdatedAt = time.Now().UTC()

	return t.put(address, account)
}

func (t *badgerTx) Scan(_ context.Context, owner solana.PublicKey, discriminator models.Discriminator) ([]*models.Account, error) {
	accounts := make([]*models.Account, 0)

	iterator := t.txn.NewIterator(badger.DefaultIteratorOptions)
	defer iterator.Close()

	for iterator.Seek(accountKeyPrefix); iterator.ValidForPrefix(accountKeyPrefix); iterator.Next() {
		item := iterator.Item()

		address := solana.PublicKeyFromBytes(bytes.TrimPrefix(item.KeyCopy(nil), accountKeyPrefix))
		value, err := item.ValueCopy(nil)
		if err != nil {
			return nil, err
		}

		account, err := decodeBadgerAccount(address, value)
		if err != nil {
			return nil, err
		}

		if account.OwnedBy(owner) && hasDiscriminator(account, discriminator) {
			accounts = append(accounts, account)
		}
	}

	slices.SortFunc(accounts, func(a, b *models.Account) int {
		return strings.Compare(a.Address, b.Address)
	})

	return accounts, nil
}

func (t *badgerTx) put(address solana.PublicKey, account *models.Account) error {
	owner, err := solana.PublicKeyFromBase58(account.Owner)
	if err != nil {
		return fmt.Errorf("invalid account owner: %w", err)
	}

	buf := new(bytes.Buffer)
	record := badgerRecord{
		Owner:     owner,
		Data:      account.Data,
		CreatedAt: account.CreatedAt.UnixNano(),
		UpdatedAt: account.UpdatedAt.UnixNano(),
	}
	if err := bin.NewBorshEncoder(buf).Encode(&record); err != nil {
		return err
	}

	return t.txn.Set(accountKey(address), buf.Bytes())
}

func decodeBadgerAccount(address solana.PublicKey, value []byte) (*models.Account, error) {
	var record badgerRecord
	if err := bin.NewBorshDecoder(value).Decode(&record); err != nil {
		return nil, fmt.Errorf("failed to decode account %s: %w", address, err)
	}

	return &models.Account{
		Address:   address.String(),
		Owner:     record.Owner.String(),
		Data:      record.Data,
		CreatedAt: time.Unix(0, record.CreatedAt).UTC(),
		UpdatedAt: time.Unix(0, record.UpdatedAt).UTC(),
	}, nil
}

type badgerLogger struct {
	logger *zap.SugaredLogger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Errorf(strings.TrimSpace(format), args...)
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warnf(strings.TrimSpace(format), args...)
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Infof(strings.TrimSpace(format), args...)
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debugf(strings.TrimSpace(format), args...)
}
