package repositories

import (
	"context"
	"github.com/gagliardetto/solana-go"
	"quadratic_voting/internal/db/models"
)

type proposalRepository struct {
	repository
}

type ProposalRepository interface {
	Create(ctx context.Context, address solana.PublicKey, proposal *models.Proposal) error
	Update(ctx context.Context, address solana.PublicKey, proposal *models.Proposal) error
	GetOne(ctx context.Context, address solana.PublicKey) (*models.Proposal, error)
	GetMany(ctx context.Context) ([]models.ProposalEntry, error)
}

func NewProposalRepository(tx AccountTx, programID solana.PublicKey) ProposalRepository {
	return &proposalRepository{
		repository: repository{
			tx:        tx,
			programID: programID,
		},
	}
}

func (r *proposalRepository) Create(ctx context.Context, address solana.PublicKey, proposal *models.Proposal) error {
	data, err := proposal.Marshal()
	if err != nil {
		return err
	}

	return r.create(ctx, address, data)
}

func (r *proposalRepository) Update(ctx context.Context, address solana.PublicKey, proposal *models.Proposal) error {
	data, err := proposal.Marshal()
	if err != nil {
		return err
	}

	return r.update(ctx, address, data)
}

func (r *proposalRepository) GetOne(ctx context.Context, address solana.PublicKey) (*models.Proposal, error) {
	account, err := r.load(ctx, address)
	if err != nil {
		return nil, err
	}

	return models.UnmarshalProposal(account.Data)
}

func (r *proposalRepository) GetMany(ctx context.Context) ([]models.ProposalEntry, error) {
	accounts, err := r.tx.Scan(ctx, r.programID, models.ProposalDiscriminator)
	if err != nil {
		return nil, err
	}

	proposals := make([]models.ProposalEntry, 0, len(accounts))
	for _, account := range accounts {
		address, err := account.PublicKey()
		if err != nil {
			return nil, err
		}

		proposal, err := models.UnmarshalProposal(account.Data)
		if err != nil {
			return nil, err
		}

		proposals = append(proposals, models.ProposalEntry{Address: address, Proposal: proposal})
	}

	return proposals, nil
}
