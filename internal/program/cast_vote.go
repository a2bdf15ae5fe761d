package program

import (
	"context"
	"fmt"
	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
	"quadratic_voting/internal/db/models"
	"quadratic_voting/internal/db/repositories"
	"quadratic_voting/internal/identity"
	"quadratic_voting/internal/quadratic"
	"quadratic_voting/internal/token"
)

type castVoteArgs struct {
	VoteType uint8
}

type castVoteHandler struct {
	deriver       identity.Deriver
	discriminator Discriminator
	logger        *zap.SugaredLogger
}

func NewCastVoteHandler(deriver identity.Deriver, logger *zap.SugaredLogger) Handler {
	return &castVoteHandler{
		deriver:       deriver,
		discriminator: InstructionDiscriminator(CastVoteInstruction),
		logger:        logger,
	}
}

func (h *castVoteHandler) Name() string {
	return CastVoteInstruction
}

func (h *castVoteHandler) CanHandle(discriminator Discriminator) bool {
	return discriminator == h.discriminator
}

// Accounts: voter (signer), dao (writable), proposal (writable), vote (writable),
// voter token account, token program, system program.
//
// A voter gets one vote per proposal: the vote address is derived from
// (voter, proposal), so a second attempt finds the address in use.
func (h *castVoteHandler) Handle(ctx context.Context, tx repositories.AccountTx, instruction Instruction) error {
	var args castVoteArgs
	if err := decodeInstructionArgs(instruction.Data, &args); err != nil {
		return err
	}

	accounts := newAccountCursor(instruction.Accounts)
	voter, err := accounts.signer()
	if err != nil {
		return err
	}
	daoAddress, err := accounts.writable()
	if err != nil {
		return err
	}
	proposalAddress, err := accounts.writable()
	if err != nil {
		return err
	}
	voteAddress, err := accounts.writable()
	if err != nil {
		return err
	}
	tokenAccountAddress, err := accounts.readOnly()
	if err != nil {
		return err
	}
	if err := accounts.program(solana.TokenProgramID); err != nil {
		return err
	}
	if err := accounts.program(solana.SystemProgramID); err != nil {
		return err
	}

	programID := h.deriver.ProgramID()
	proposalRepository := repositories.NewProposalRepository(tx, programID)

	dao, err := repositories.NewDaoRepository(tx, programID).GetOne(ctx, daoAddress)
	if err != nil {
		return fmt.Errorf("failed to load dao: %w", err)
	}
	proposal, err := proposalRepository.GetOne(ctx, proposalAddress)
	if err != nil {
		return fmt.Errorf("failed to load proposal: %w", err)
	}

	if !proposal.Authority.Equals(dao.Authority) {
		return ErrInvalidProposal
	}

	tokenAccountRecord, err := tx.Get(ctx, tokenAccountAddress)
	if err != nil {
		return fmt.Errorf("failed to load token account %s: %w", tokenAccountAddress, err)
	}
	tokenAccount, err := token.Load(tokenAccountRecord)
	if err != nil {
		return err
	}

	if !tokenAccount.Owner.Equals(voter) {
		return ErrInvalidTokenAccount
	}

	voteType := models.VoteType(args.VoteType)
	if !voteType.IsValid() {
		return ErrInvalidVoteType
	}

	bump, err := h.deriver.Verify(voteAddress, identity.VoteSeeds(voter, proposalAddress))
	if err != nil {
		return fmt.Errorf("vote: %w", err)
	}

	credits := quadratic.VoteCredits(tokenAccount.Amount)

	vote := &models.Vote{
		Authority:   voter,
		VoteType:    voteType,
		VoteCredits: credits,
		Bump:        bump,
	}
	if err := repositories.NewVoteRepository(tx, programID).Create(ctx, voteAddress, vote); err != nil {
		return fmt.Errorf("failed to create vote: %w", err)
	}

	if err := proposal.AddCredits(voteType, credits); err != nil {
		return err
	}
	if err := proposalRepository.Update(ctx, proposalAddress, proposal); err != nil {
		return fmt.Errorf("failed to update proposal: %w", err)
	}

	h.logger.Infow("vote cast",
		"proposal", proposalAddress,
		"voter", voter,
		"vote_type", voteType.String(),
		"vote_credits", credits,
	)
	return nil
}

func NewCastVoteInstruction(programID, voter, dao, proposal, voterTokenAccount solana.PublicKey, voteType uint8) (Instruction, solana.PublicKey, error) {
	voteAddress, _, err := identity.NewDeriver(programID).Vote(voter, proposal)
	if err != nil {
		return Instruction{}, solana.PublicKey{}, err
	}

	data, err := encodeInstructionData(CastVoteInstruction, &castVoteArgs{VoteType: voteType})
	if err != nil {
		return Instruction{}, solana.PublicKey{}, err
	}

	return Instruction{
		ProgramID: programID,
		Accounts: []AccountMeta{
			Signer(voter),
			Writable(dao),
			Writable(proposal),
			Writable(voteAddress),
			ReadOnly(voterTokenAccount),
			ReadOnly(solana.TokenProgramID),
			ReadOnly(solana.SystemProgramID),
		},
		Data: data,
	}, voteAddress, nil
}
