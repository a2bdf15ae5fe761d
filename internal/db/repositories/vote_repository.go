package repositories

import (
	"context"
	"github.com/gagliardetto/solana-go"
	"quadratic_voting/internal/db/models"
)

type voteRepository struct {
	repository
}

type VoteRepository interface {
	Create(ctx context.Context, address solana.PublicKey, vote *models.Vote) error
	GetOne(ctx context.Context, address solana.PublicKey) (*models.Vote, error)
}

func NewVoteRepository(tx AccountTx, programID solana.PublicKey) VoteRepository {
	return &voteRepository{
		repository: repository{
			tx:        tx,
			programID: programID,
		},
	}
}

func (r *voteRepository) Create(ctx context.Context, address solana.PublicKey, vote *models.Vote) error {
	data, err := vote.Marshal()
	if err != nil {
		return err
	}

	return r.create(ctx, address, data)
}

func (r *voteRepository) GetOne(ctx context.Context, address solana.PublicKey) (*models.Vote, error) {
	account, err := r.load(ctx, address)
	if err != nil {
		return nil, err
	}

	return models.UnmarshalVote(account.Data)
}
