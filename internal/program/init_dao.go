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

type initDaoArgs struct {
	Name string
}

type initDaoHandler struct {
	deriver       identity.Deriver
	discriminator Discriminator
	logger        *zap.SugaredLogger
}

func NewInitDaoHandler(deriver identity.Deriver, logger *zap.SugaredLogger) Handler {
	return &initDaoHandler{
		deriver:       deriver,
		discriminator: InstructionDiscriminator(InitDaoInstruction),
		logger:        logger,
	}
}

func (h *initDaoHandler) Name() string {
	return InitDaoInstruction
}

func (h *initDaoHandler) CanHandle(discriminator Discriminator) bool {
	return discriminator == h.discriminator
}

// Accounts: creator (signer), dao (writable), system program.
func (h *initDaoHandler) Handle(ctx context.Context, tx repositories.AccountTx, instruction Instruction) error {
	var args initDaoArgs
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
	if err := accounts.program(solana.SystemProgramID); err != nil {
		return err
	}

	if len(args.Name) > models.MaxNameLength {
		return ErrNameTooLong
	}

	bump, err := h.deriver.Verify(daoAddress, identity.DaoSeeds(creator, args.Name))
	if err != nil {
		return fmt.Errorf("dao: %w", err)
	}

	dao := &models.Dao{
		Authority:     creator,
		Name:          args.Name,
		ProposalCount: 0,
		Bump:          bump,
	}
	if err := repositories.NewDaoRepository(tx, h.deriver.ProgramID()).Create(ctx, daoAddress, dao); err != nil {
		return fmt.Errorf("failed to create dao: %w", err)
	}

	h.logger.Infow("dao initialized", "dao", daoAddress, "authority", creator, "name", args.Name)
	return nil
}

func NewInitDaoInstruction(programID, creator solana.PublicKey, name string) (Instruction, solana.PublicKey, error) {
	daoAddress, _, err := identity.NewDeriver(programID).Dao(creator, name)
	if err != nil {
		return Instruction{}, solana.PublicKey{}, err
	}

	data, err := encodeInstructionData(InitDaoInstruction, &initDaoArgs{Name: name})
	if err != nil {
		return Instruction{}, solana.PublicKey{}, err
	}

	return Instruction{
		ProgramID: programID,
		Accounts: []AccountMeta{
			Signer(creator),
			Writable(daoAddress),
			ReadOnly(solana.SystemProgramID),
		},
		Data: data,
	}, daoAddress, nil
}
