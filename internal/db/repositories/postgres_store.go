package repositories

import (
	"context"
	"errors"
	"github.com/gagliardetto/solana-go"
	"github.com/go-pg/pg/v10"
	"quadratic_voting/internal/db/models"
	"time"
)

type postgresStore struct {
	db *pg.DB
}

func NewPostgresStore(db *pg.DB) AccountStore {
	return &postgresStore{db: db}
}

func (s *postgresStore) RunInTransaction(ctx context.Context, fn func(tx AccountTx) error) error {
	return s.db.RunInTransaction(ctx, func(tx *pg.Tx) error {
		return fn(&postgresTx{tx: tx})
	})
}

func (s *postgresStore) Close() error {
	return s.db.Close()
}

type postgresTx struct {
	tx *pg.Tx
}

func (t *postgresTx) Get(ctx context.Context, address solana.PublicKey) (*models.Account, error) {
	account := &models.Account{}

	err := t.tx.ModelContext(ctx, account).
		Where("address = ?", address.String()).
		For("UPDATE").
		Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, ErrAccountNotFound
	}

	return account, err
}

func (t *postgresTx) Create(ctx context.Context, account *models.Account) error {
	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now

	_, err := t.tx.ModelContext(ctx, account).Insert()

	var pgErr pg.Error
	if errors.As(err, &pgErr) && pgErr.IntegrityViolation() {
		return ErrAccountAlreadyInUse
	}

	return err
}

func (t *postgresTx) Update(ctx context.Context, account *models.Account) error {
	account.UpdatedAt = time.Now().UTC()

	result, err := t.tx.ModelContext(ctx, account).
		Column("owner", "data", "updated_at").
		WherePK().
		Update()
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrAccountNotFound
	}

	return nil
}

func (t *postgresTx) Scan(ctx context.Context, owner solana.PublicKey, discriminator models.Discriminator) ([]*models.Account, error) {
	accounts := make([]*models.Account, 0)

	err := t.tx.ModelContext(ctx, &accounts).
		Where("owner = ?", owner.String()).
		Where("substring(data from 1 for ?) = ?", models.DiscriminatorSize, discriminator[:]).
		OrderExpr(`address COLLATE "C" ASC`).
		Select()

	return accounts, err
}
