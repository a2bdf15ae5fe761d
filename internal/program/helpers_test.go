package program

import (
	"context"
	"github.com/gagliardetto/solana-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"quadratic_voting/internal/db/models"
	"quadratic_voting/internal/db/repositories"
	"quadratic_voting/internal/token"
	"testing"
)

var testProgramID = solana.MustPublicKeyFromBase58("AnBkWTCj5fySwjX1X762GVwxQHappyvVXX8aMwRZ1dZk")

type harness struct {
	t         *testing.T
	ctx       context.Context
	store     repositories.AccountStore
	metrics   *Metrics
	processor *Processor
	mint      solana.PublicKey
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	store := repositories.NewMemoryStore()
	metrics := NewMetrics(prometheus.NewRegistry())

	return &harness{
		t:         t,
		ctx:       context.Background(),
		store:     store,
		metrics:   metrics,
		processor: NewVotingProcessor(testProgramID, store, metrics, zap.NewNop().Sugar()),
		mint:      newWallet(t).PublicKey(),
	}
}

func newWallet(t *testing.T) solana.PrivateKey {
	t.Helper()
	key, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	return key
}

func (h *harness) submit(instruction Instruction, signers ...solana.PrivateKey) error {
	h.t.Helper()
	request, err := NewRequest(instruction, signers...)
	require.NoError(h.t, err)
	return h.processor.Process(h.ctx, request)
}

func (h *harness) initDao(creator solana.PrivateKey, name string) solana.PublicKey {
	h.t.Helper()
	instruction, daoAddress, err := NewInitDaoInstruction(testProgramID, creator.PublicKey(), name)
	require.NoError(h.t, err)
	require.NoError(h.t, h.submit(instruction, creator))
	return daoAddress
}

func (h *harness) initProposal(creator solana.PrivateKey, daoAddress solana.PublicKey, metadata string) solana.PublicKey {
	h.t.Helper()
	dao := h.dao(daoAddress)
	instruction, proposalAddress, err := NewInitProposalInstruction(testProgramID, creator.PublicKey(), daoAddress, dao.ProposalCount, metadata)
	require.NoError(h.t, err)
	require.NoError(h.t, h.submit(instruction, creator))
	return proposalAddress
}

func (h *harness) fund(owner solana.PublicKey, amount uint64) solana.PublicKey {
	h.t.Helper()
	address := newWallet(h.t).PublicKey()
	require.NoError(h.t, token.SetBalance(h.ctx, h.store, address, h.mint, owner, amount))
	return address
}

func (h *harness) castVote(voter solana.PrivateKey, daoAddress, proposalAddress, tokenAccount solana.PublicKey, voteType uint8) (solana.PublicKey, error) {
	h.t.Helper()
	instruction, voteAddress, err := NewCastVoteInstruction(testProgramID, voter.PublicKey(), daoAddress, proposalAddress, tokenAccount, voteType)
	require.NoError(h.t, err)
	return voteAddress, h.submit(instruction, voter)
}

func (h *harness) dao(address solana.PublicKey) *models.Dao {
	h.t.Helper()
	var dao *models.Dao
	require.NoError(h.t, h.store.RunInTransaction(h.ctx, func(tx repositories.AccountTx) error {
		var err error
		dao, err = repositories.NewDaoRepository(tx, testProgramID).GetOne(h.ctx, address)
		return err
	}))
	return dao
}

func (h *harness) proposal(address solana.PublicKey) *models.Proposal {
	h.t.Helper()
	var proposal *models.Proposal
	require.NoError(h.t, h.store.RunInTransaction(h.ctx, func(tx repositories.AccountTx) error {
		var err error
		proposal, err = repositories.NewProposalRepository(tx, testProgramID).GetOne(h.ctx, address)
		return err
	}))
	return proposal
}

func (h *harness) vote(address solana.PublicKey) (*models.Vote, error) {
	h.t.Helper()
	var vote *models.Vote
	err := h.store.RunInTransaction(h.ctx, func(tx repositories.AccountTx) error {
		var err error
		vote, err = repositories.NewVoteRepository(tx, testProgramID).GetOne(h.ctx, address)
		return err
	})
	return vote, err
}
