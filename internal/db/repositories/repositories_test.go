package repositories

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"quadratic_voting/internal/db/models"
	"testing"
)

func TestDaoRepository_CreateUpdateGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	address := newKey(t)
	authority := newKey(t)

	require.NoError(t, store.RunInTransaction(ctx, func(tx AccountTx) error {
		return NewDaoRepository(tx, testProgramID).Create(ctx, address, &models.Dao{Authority: authority, Name: "T", Bump: 255})
	}))

	require.NoError(t, store.RunInTransaction(ctx, func(tx AccountTx) error {
		daoRepository := NewDaoRepository(tx, testProgramID)

		dao, err := daoRepository.GetOne(ctx, address)
		require.NoError(t, err)
		dao.ProposalCount = 2

		return daoRepository.Update(ctx, address, dao)
	}))

	require.NoError(t, store.RunInTransaction(ctx, func(tx AccountTx) error {
		dao, err := NewDaoRepository(tx, testProgramID).GetOne(ctx, address)
		require.NoError(t, err)
		assert.Equal(t, &models.Dao{Authority: authority, Name: "T", ProposalCount: 2, Bump: 255}, dao)
		return nil
	}))
}

func TestDaoRepository_WrongOwner(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	address := newKey(t)

	require.NoError(t, store.RunInTransaction(ctx, func(tx AccountTx) error {
		return NewDaoRepository(tx, newKey(t)).Create(ctx, address, &models.Dao{Name: "T"})
	}))

	err := store.RunInTransaction(ctx, func(tx AccountTx) error {
		_, err := NewDaoRepository(tx, testProgramID).GetOne(ctx, address)
		return err
	})
	assert.ErrorIs(t, err, ErrAccountOwnedByWrongProgram)
}

func TestProposalRepository_GetOneRejectsOtherTypes(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	address := newKey(t)

	require.NoError(t, store.RunInTransaction(ctx, func(tx AccountTx) error {
		return NewVoteRepository(tx, testProgramID).Create(ctx, address, &models.Vote{VoteCredits: 3})
	}))

	err := store.RunInTransaction(ctx, func(tx AccountTx) error {
		_, err := NewProposalRepository(tx, testProgramID).GetOne(ctx, address)
		return err
	})
	assert.ErrorIs(t, err, models.ErrAccountDiscriminatorMismatch)
}

func TestProposalRepository_GetMany(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	first := newKey(t)
	second := newKey(t)

	require.NoError(t, store.RunInTransaction(ctx, func(tx AccountTx) error {
		proposalRepository := NewProposalRepository(tx, testProgramID)
		if err := proposalRepository.Create(ctx, first, &models.Proposal{Metadata: "first", YesVoteCount: 3}); err != nil {
			return err
		}
		if err := proposalRepository.Create(ctx, second, &models.Proposal{Metadata: "second", NoVoteCount: 4}); err != nil {
			return err
		}
		return NewDaoRepository(tx, testProgramID).Create(ctx, newKey(t), &models.Dao{Name: "T"})
	}))

	require.NoError(t, store.RunInTransaction(ctx, func(tx AccountTx) error {
		proposals, err := NewProposalRepository(tx, testProgramID).GetMany(ctx)
		require.NoError(t, err)
		require.Len(t, proposals, 2)

		byAddress := make(map[string]*models.Proposal)
		for _, entry := range proposals {
			byAddress[entry.Address.String()] = entry.Proposal
		}
		assert.Equal(t, uint64(3), byAddress[first.String()].YesVoteCount)
		assert.Equal(t, uint64(4), byAddress[second.String()].NoVoteCount)
		return nil
	}))
}

func TestVoteRepository_DuplicateCreate(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	address := newKey(t)

	create := func() error {
		return store.RunInTransaction(ctx, func(tx AccountTx) error {
			return NewVoteRepository(tx, testProgramID).Create(ctx, address, &models.Vote{VoteType: models.VoteTypeYes, VoteCredits: 3})
		})
	}

	require.NoError(t, create())
	assert.ErrorIs(t, create(), ErrAccountAlreadyInUse)
}
