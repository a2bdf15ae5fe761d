package program

import (
	"context"
	"errors"
	"github.com/gagliardetto/solana-go"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"quadratic_voting/internal/auth"
	"quadratic_voting/internal/db/models"
	"quadratic_voting/internal/db/repositories"
	mock_repositories "quadratic_voting/internal/db/repositories/mocks"
	"testing"
)

func TestProcess_VotingScenario(t *testing.T) {
	h := newHarness(t)

	creator := newWallet(t)
	voterA := newWallet(t)
	voterB := newWallet(t)

	daoAddress := h.initDao(creator, "T")
	proposalAddress := h.initProposal(creator, daoAddress, "P0")

	expectedProposal, _, err := NewInitProposalInstruction(testProgramID, creator.PublicKey(), daoAddress, 0, "P0")
	require.NoError(t, err)
	assert.Equal(t, expectedProposal.Accounts[2].PublicKey, proposalAddress)
	assert.Equal(t, uint64(1), h.dao(daoAddress).ProposalCount)

	tokenA := h.fund(voterA.PublicKey(), 9)
	tokenB := h.fund(voterB.PublicKey(), 16)

	voteA, err := h.castVote(voterA, daoAddress, proposalAddress, tokenA, uint8(models.VoteTypeYes))
	require.NoError(t, err)

	proposal := h.proposal(proposalAddress)
	assert.Equal(t, uint64(3), proposal.YesVoteCount)
	assert.Equal(t, uint64(0), proposal.NoVoteCount)

	_, err = h.castVote(voterB, daoAddress, proposalAddress, tokenB, uint8(models.VoteTypeNo))
	require.NoError(t, err)

	proposal = h.proposal(proposalAddress)
	assert.Equal(t, uint64(3), proposal.YesVoteCount)
	assert.Equal(t, uint64(4), proposal.NoVoteCount)

	vote, err := h.vote(voteA)
	require.NoError(t, err)
	assert.Equal(t, voterA.PublicKey(), vote.Authority)
	assert.Equal(t, models.VoteTypeYes, vote.VoteType)
	assert.Equal(t, uint64(3), vote.VoteCredits)

	_, err = h.castVote(voterA, daoAddress, proposalAddress, tokenA, uint8(models.VoteTypeNo))
	require.ErrorIs(t, err, repositories.ErrAccountAlreadyInUse)
	assert.Equal(t, "AccountAlreadyInUse", ErrorName(err))

	proposal = h.proposal(proposalAddress)
	assert.Equal(t, uint64(3), proposal.YesVoteCount)
	assert.Equal(t, uint64(4), proposal.NoVoteCount)

	vote, err = h.vote(voteA)
	require.NoError(t, err)
	assert.Equal(t, models.VoteTypeYes, vote.VoteType)

	assert.Equal(t, float64(2), testutil.ToFloat64(h.metrics.instructions.WithLabelValues(CastVoteInstruction, "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(h.metrics.instructions.WithLabelValues(CastVoteInstruction, "AccountAlreadyInUse")))
	assert.Equal(t, float64(1), testutil.ToFloat64(h.metrics.instructions.WithLabelValues(InitDaoInstruction, "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(h.metrics.instructions.WithLabelValues(InitProposalInstruction, "ok")))
}

func TestProcess_WrongProgramID(t *testing.T) {
	h := newHarness(t)
	creator := newWallet(t)

	instruction, _, err := NewInitDaoInstruction(testProgramID, creator.PublicKey(), "T")
	require.NoError(t, err)
	instruction.ProgramID = newWallet(t).PublicKey()

	err = h.submit(instruction, creator)
	require.ErrorIs(t, err, ErrInvalidProgramID)
	assert.Equal(t, float64(1), testutil.ToFloat64(h.metrics.instructions.WithLabelValues(unknownInstruction, "InvalidProgramId")))
}

func TestProcess_MissingDiscriminator(t *testing.T) {
	h := newHarness(t)
	creator := newWallet(t)

	instruction := Instruction{
		ProgramID: testProgramID,
		Accounts:  []AccountMeta{Signer(creator.PublicKey())},
		Data:      []byte{1, 2, 3},
	}

	err := h.submit(instruction, creator)
	require.ErrorIs(t, err, ErrInstructionMissing)
}

func TestProcess_UnknownInstruction(t *testing.T) {
	h := newHarness(t)
	creator := newWallet(t)

	discriminator := InstructionDiscriminator("close_dao")
	instruction := Instruction{
		ProgramID: testProgramID,
		Accounts:  []AccountMeta{Signer(creator.PublicKey())},
		Data:      discriminator[:],
	}

	err := h.submit(instruction, creator)
	require.ErrorIs(t, err, ErrInstructionFallbackNotFound)
	assert.Equal(t, "InstructionFallbackNotFound", ErrorName(err))
}

func TestProcess_MissingSignature(t *testing.T) {
	h := newHarness(t)
	creator := newWallet(t)

	instruction, daoAddress, err := NewInitDaoInstruction(testProgramID, creator.PublicKey(), "T")
	require.NoError(t, err)

	err = h.submit(instruction)
	require.ErrorIs(t, err, auth.ErrMissingSignature)

	err = h.store.RunInTransaction(h.ctx, func(tx repositories.AccountTx) error {
		_, err := tx.Get(h.ctx, daoAddress)
		return err
	})
	assert.ErrorIs(t, err, repositories.ErrAccountNotFound)
}

func TestProcess_SignatureFromAnotherKey(t *testing.T) {
	h := newHarness(t)
	creator := newWallet(t)
	impostor := newWallet(t)

	instruction, _, err := NewInitDaoInstruction(testProgramID, creator.PublicKey(), "T")
	require.NoError(t, err)

	request, err := NewRequest(instruction, impostor)
	require.NoError(t, err)
	request.Credentials[0].Signer = creator.PublicKey()

	err = h.processor.Process(h.ctx, request)
	require.ErrorIs(t, err, auth.ErrSignatureVerificationFailed)
}

func TestProcess_TamperedInstruction(t *testing.T) {
	h := newHarness(t)
	creator := newWallet(t)

	instruction, _, err := NewInitDaoInstruction(testProgramID, creator.PublicKey(), "T")
	require.NoError(t, err)

	request, err := NewRequest(instruction, creator)
	require.NoError(t, err)

	tampered, _, err := NewInitDaoInstruction(testProgramID, creator.PublicKey(), "U")
	require.NoError(t, err)
	request.Instruction = tampered

	err = h.processor.Process(h.ctx, request)
	require.ErrorIs(t, err, auth.ErrSignatureVerificationFailed)
	assert.Equal(t, "SignatureVerificationFailed", ErrorName(err))
}

func TestProcess_TransactionConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mock_repositories.NewMockAccountStore(ctrl)

	store.EXPECT().
		RunInTransaction(gomock.Any(), gomock.Any()).
		Return(repositories.ErrTransactionConflict)

	processor := NewVotingProcessor(testProgramID, store, nil, zap.NewNop().Sugar())
	creator := newWallet(t)

	instruction, _, err := NewInitDaoInstruction(testProgramID, creator.PublicKey(), "T")
	require.NoError(t, err)
	request, err := NewRequest(instruction, creator)
	require.NoError(t, err)

	err = processor.Process(context.Background(), request)
	require.ErrorIs(t, err, repositories.ErrTransactionConflict)
	assert.Equal(t, "TransactionConflict", ErrorName(err))
}

func TestProcess_StoreWriteFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mock_repositories.NewMockAccountStore(ctrl)
	tx := mock_repositories.NewMockAccountTx(ctrl)

	storeErr := errors.New("disk full")

	store.EXPECT().
		RunInTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(repositories.AccountTx) error) error {
			return fn(tx)
		})
	tx.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(storeErr)

	processor := NewVotingProcessor(testProgramID, store, nil, zap.NewNop().Sugar())
	creator := newWallet(t)

	instruction, _, err := NewInitDaoInstruction(testProgramID, creator.PublicKey(), "T")
	require.NoError(t, err)
	request, err := NewRequest(instruction, creator)
	require.NoError(t, err)

	err = processor.Process(context.Background(), request)
	require.ErrorIs(t, err, storeErr)
	assert.Equal(t, "Unknown", ErrorName(err))
}

func TestProcess_NotEnoughAccounts(t *testing.T) {
	h := newHarness(t)
	creator := newWallet(t)

	instruction, _, err := NewInitDaoInstruction(testProgramID, creator.PublicKey(), "T")
	require.NoError(t, err)
	instruction.Accounts = instruction.Accounts[:2]

	err = h.submit(instruction, creator)
	require.ErrorIs(t, err, ErrNotEnoughAccountKeys)
}

func TestProcess_WrongSystemProgram(t *testing.T) {
	h := newHarness(t)
	creator := newWallet(t)

	instruction, _, err := NewInitDaoInstruction(testProgramID, creator.PublicKey(), "T")
	require.NoError(t, err)
	instruction.Accounts[2] = ReadOnly(solana.TokenProgramID)

	err = h.submit(instruction, creator)
	require.ErrorIs(t, err, ErrInvalidProgramID)
}

func TestErrorName(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil", nil, "ok"},
		{"program error", ErrInvalidVoteType, "InvalidVoteType"},
		{"wrapped program error", errors.Join(errors.New("context"), ErrInvalidProposal), "InvalidProposal"},
		{"framework error", repositories.ErrAccountNotFound, "AccountNotInitialized"},
		{"unknown", errors.New("boom"), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ErrorName(tt.err))
		})
	}
}

func TestErrorCodes(t *testing.T) {
	assert.Equal(t, uint32(6000), ErrInvalidTokenAccount.Code)
	assert.Equal(t, uint32(6001), ErrInvalidVoteType.Code)
	assert.Equal(t, uint32(6002), ErrInvalidProposal.Code)
	assert.Equal(t, "InvalidVoteType: Invalid vote type. Must be 0 or 1", ErrInvalidVoteType.Error())
}
