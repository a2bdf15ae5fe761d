package program

import (
	"context"
	"fmt"
	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
	"quadratic_voting/internal/db/models"
	"quadratic_voting/internal/db/repositories"
	"quadratic_voting/internal/identity"
)

type initProposalArgs struct {
	Metadata string
}

type initProposalHandler struct {
	deriver       identity.Deriver
	discriminator Discriminator
	logger        *zap.SugaredLogger
}

func NewInitProposalHandler(deriver identity.Deriver, logger *zap.SugaredLogger) Handler {
	return &initProposalHandler{
		deriver:       deriver,
		discriminator: InstructionDiscriminator(InitProposalInstruction),
		logger:        logger,
	}
}

func (h *initProposalHandler) Name() string {
	return InitProposalInstruction
}

func (h *initProposalHandler) CanHandle(discriminator Discriminator) bool {
	return discriminator == h.discriminator
}

// Accounts: creator (signer), dao (writable), proposal (writable), system program.
//
// The proposal address is derived from the DAO's counter before it is advanced;
// both writes land in the same transaction.
func (h *initProposalHandler) Handle(ctx context.Context, tx repositories.AccountTx, instruction Instruction) error {
	var args initProposalArgs
	if err := decodeInstructionArgs(instruction.Data, &args); err != nil {
		return err
	}

	accounts := newAccountCursor(instruction.Accounts)
	creator, err := accounts.signer()
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
	if err := accounts.program(solana.SystemProgramID); err != nil {
		return err
	}

	if len(args.Metadata) > models.MaxMetadataLength {
		return ErrMetadataTooLong
	}

	programID := h.deriver.ProgramID()
	daoRepository := repositories.NewDaoRepository(tx, programID)
	proposalRepository := repositories.NewProposalRepository(tx, programID)

	dao, err := daoRepository.GetOne(ctx, daoAddress)
	if err != nil {
		return fmt.Errorf("failed to load dao: %w", err)
	}

	if !dao.Authority.Equals(creator) {
		return ErrUnauthorized
	}

	index, err := dao.NextProposalIndex()
	if err != nil {
		return err
	}

	bump, err := h.deriver.Verify(proposalAddress, identity.ProposalSeeds(daoAddress, index))
	if err != nil {
		return fmt.Errorf("proposal: %w", err)
	}

	proposal := &models.Proposal{
		Authority:    creator,
		Metadata:     args.Metadata,
		YesVoteCount: 0,
		NoVoteCount:  0,
		Bump:         bump,
	}
	if err := proposalRepository.Create(ctx, proposalAddress, proposal); err != nil {
		return fmt.Errorf("failed to create proposal: %w", err)
	}

	if err := daoRepository.Update(ctx, daoAddress, dao); err != nil {
		return fmt.Errorf("failed to update dao: %w", err)
	}

	h.logger.Infow("proposal initialized", "dao", daoAddress, "proposal", proposalAddress, "index", index)
	return nil
}

// NewInitProposalInstruction builds the instruction for the proposal at index, which must
// equal the DAO's current proposal count.
func NewInitProposalInstruction(programID, creator, dao solana.PublicKey, index uint64, metadata string) (Instruction, solana.PublicKey, error) {
	proposalAddress, _, err := identity.NewDeriver(programID).Proposal(dao, index)
	if err != nil {
		return Instruction{}, solana.PublicKey{}, err
	}

	data, err := encodeInstructionData(InitProposalInstruction, &initProposalArgs{Metadata: metadata})
	if err != nil {
		return Instruction{}, solana.PublicKey{}, err
	}

	return Instruction{
		ProgramID: programID,
		Accounts: []AccountMeta{
			Signer(creator),
			Writable(dao),
			Writable(proposalAddress),
			ReadOnly(solana.SystemProgramID),
		},
		Data: data,
	}, proposalAddress, nil
}
