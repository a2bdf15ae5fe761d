package repositories

import (
	"context"
	"github.com/gagliardetto/solana-go"
	"quadratic_voting/internal/db/models"
)

type daoRepository struct {
	repository
}

type DaoRepository interface {
	Create(ctx context.Context, address solana.PublicKey, dao *models.Dao) error
	Update(ctx context.Context, address solana.PublicKey, dao *models.Dao) error
	GetOne(ctx context.Context, address solana.PublicKey) (*models.Dao, error)
}

func NewDaoRepository(tx AccountTx, programID solana.PublicKey) DaoRepository {
	return &daoRepository{
		repository: repository{
			tx:        tx,
			programID: programID,
		},
	}
}

func (r *daoRepository) Create(ctx context.Context, address solana.PublicKey, dao *models.Dao) error {
	data, err := dao.Marshal()
	if err != nil {
		return err
	}

	return r.create(ctx, address, data)
}

func (r *daoRepository) Update(ctx context.Context, address solana.PublicKey, dao *models.Dao) error {
	data, err := dao.Marshal()
	if err != nil {
		return err
	}

	return r.update(ctx, address, data)
}

func (r *daoRepository) GetOne(ctx context.Context, address solana.PublicKey) (*models.Dao, error) {
	account, err := r.load(ctx, address)
	if err != nil {
		return nil, err
	}

	return models.UnmarshalDao(account.Data)
}
