package program

import (
	"context"
	"fmt"
	"github.com/gagliardetto/solana-go"
	"quadratic_voting/internal/db/repositories"
)

// Handler executes one instruction against the accounts visible in tx.
type Handler interface {
	Name() string
	CanHandle(discriminator Discriminator) bool
	Handle(ctx context.Context, tx repositories.AccountTx, instruction Instruction) error
}

// accountCursor walks the instruction's account list in declaration order.
type accountCursor struct {
	metas []AccountMeta
	next  int
}

func newAccountCursor(metas []AccountMeta) *accountCursor {
	return &accountCursor{metas: metas}
}

func (c *accountCursor) take() (AccountMeta, error) {
	if c.next >= len(c.metas) {
		return AccountMeta{}, ErrNotEnoughAccountKeys
	}
	meta := c.metas[c.next]
	c.next++
	return meta, nil
}

func (c *accountCursor) signer() (solana.PublicKey, error) {
	meta, err := c.take()
	if err != nil {
		return solana.PublicKey{}, err
	}
	if !meta.IsSigner {
		return solana.PublicKey{}, fmt.Errorf("%w: %s", ErrAccountNotSigner, meta.PublicKey)
	}
	if !meta.IsWritable {
		return solana.PublicKey{}, fmt.Errorf("%w: %s", ErrAccountNotMutable, meta.PublicKey)
	}
	return meta.PublicKey, nil
}

func (c *accountCursor) writable() (solana.PublicKey, error) {
	meta, err := c.take()
	if err != nil {
		return solana.PublicKey{}, err
	}
	if !meta.IsWritable {
		return solana.PublicKey{}, fmt.Errorf("%w: %s", ErrAccountNotMutable, meta.PublicKey)
	}
	return meta.PublicKey, nil
}

func (c *accountCursor) readOnly() (solana.PublicKey, error) {
	meta, err := c.take()
	if err != nil {
		return solana.PublicKey{}, err
	}
	return meta.PublicKey, nil
}

func (c *accountCursor) program(id solana.PublicKey) error {
	meta, err := c.take()
	if err != nil {
		return err
	}
	if !meta.PublicKey.Equals(id) {
		return fmt.Errorf("%w: expected %s, got %s", ErrInvalidProgramID, id, meta.PublicKey)
	}
	return nil
}
