package program

import (
	"context"
	"fmt"
	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
	"quadratic_voting/internal/db/repositories"
	"quadratic_voting/internal/identity"
)

const unknownInstruction = "unknown"

// Processor authenticates requests and runs each instruction in its own ledger transaction.
type Processor struct {
	programID solana.PublicKey
	store     repositories.AccountStore
	handlers  []Handler
	metrics   *Metrics
	logger    *zap.SugaredLogger
}

func NewProcessor(
	programID solana.PublicKey,
	store repositories.AccountStore,
	metrics *Metrics,
	logger *zap.SugaredLogger,
	handlers ...Handler,
) *Processor {
	return &Processor{
		programID: programID,
		store:     store,
		handlers:  handlers,
		metrics:   metrics,
		logger:    logger,
	}
}

// NewVotingProcessor wires the init_dao, init_proposal and cast_vote handlers.
func NewVotingProcessor(
	programID solana.PublicKey,
	store repositories.AccountStore,
	metrics *Metrics,
	logger *zap.SugaredLogger,
) *Processor {
	deriver := identity.NewDeriver(programID)

	return NewProcessor(programID, store, metrics, logger,
		NewInitDaoHandler(deriver, logger),
		NewInitProposalHandler(deriver, logger),
		NewCastVoteHandler(deriver, logger),
	)
}

func (p *Processor) ProgramID() solana.PublicKey {
	return p.programID
}

func (p *Processor) Process(ctx context.Context, request Request) error {
	name, err := p.process(ctx, request)
	p.metrics.observe(name, err)

	if err != nil {
		p.logger.Warnw("instruction rejected", "instruction", name, "reason", ErrorName(err), "error", err)
		return err
	}

	return nil
}

func (p *Processor) process(ctx context.Context, request Request) (string, error) {
	instruction := request.Instruction

	if !instruction.ProgramID.Equals(p.programID) {
		return unknownInstruction, fmt.Errorf("%w: %s", ErrInvalidProgramID, instruction.ProgramID)
	}

	discriminator, err := instruction.Discriminator()
	if err != nil {
		return unknownInstruction, err
	}

	handler := p.handlerFor(discriminator)
	if handler == nil {
		return unknownInstruction, ErrInstructionFallbackNotFound
	}

	message, err := instruction.Message()
	if err != nil {
		return handler.Name(), err
	}

	for _, meta := range instruction.Accounts {
		if !meta.IsSigner {
			continue
		}
		if err := request.Credentials.Verify(meta.PublicKey, message); err != nil {
			return handler.Name(), err
		}
	}

	err = p.store.RunInTransaction(ctx, func(tx repositories.AccountTx) error {
		return handler.Handle(ctx, tx, instruction)
	})

	return handler.Name(), err
}

func (p *Processor) handlerFor(discriminator Discriminator) Handler {
	for _, handler := range p.handlers {
		if handler.CanHandle(discriminator) {
			return handler
		}
	}
	return nil
}
