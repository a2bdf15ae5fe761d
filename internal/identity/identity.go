package identity

import (
	"encoding/binary"
	"errors"
	"fmt"
	"github.com/gagliardetto/solana-go"
)

const (
	DaoSeed      = "dao"
	ProposalSeed = "proposal"
	VoteSeed     = "vote"
)

var (
	ErrConstraintSeeds = errors.New("a seeds constraint was violated")
	ErrSeedTooLong     = fmt.Errorf("seed exceeds %d bytes", solana.MaxSeedLength)
)

// Deriver maps seed tuples to program-derived addresses owned by one program.
type Deriver struct {
	programID solana.PublicKey
}

func NewDeriver(programID solana.PublicKey) Deriver {
	return Deriver{programID: programID}
}

func (d Deriver) ProgramID() solana.PublicKey {
	return d.programID
}

func DaoSeeds(authority solana.PublicKey, name string) [][]byte {
	return [][]byte{[]byte(DaoSeed), authority.Bytes(), []byte(name)}
}

func ProposalSeeds(dao solana.PublicKey, index uint64) [][]byte {
	var encodedIndex [8]byte
	binary.LittleEndian.PutUint64(encodedIndex[:], index)
	return [][]byte{[]byte(ProposalSeed), dao.Bytes(), encodedIndex[:]}
}

func VoteSeeds(voter, proposal solana.PublicKey) [][]byte {
	return [][]byte{[]byte(VoteSeed), voter.Bytes(), proposal.Bytes()}
}

// Derive returns the canonical address for seeds and the bump that moved it off the curve.
func (d Deriver) Derive(seeds [][]byte) (solana.PublicKey, uint8, error) {
	for _, seed := range seeds {
		if len(seed) > solana.MaxSeedLength {
			return solana.PublicKey{}, 0, ErrSeedTooLong
		}
	}

	address, bump, err := solana.FindProgramAddress(seeds, d.programID)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("failed to find program address: %w", err)
	}

	return address, bump, nil
}

func (d Deriver) Dao(authority solana.PublicKey, name string) (solana.PublicKey, uint8, error) {
	return d.Derive(DaoSeeds(authority, name))
}

func (d Deriver) Proposal(dao solana.PublicKey, index uint64) (solana.PublicKey, uint8, error) {
	return d.Derive(ProposalSeeds(dao, index))
}

func (d Deriver) Vote(voter, proposal solana.PublicKey) (solana.PublicKey, uint8, error) {
	return d.Derive(VoteSeeds(voter, proposal))
}

// Verify re-derives seeds and checks the result against the address a caller supplied.
func (d Deriver) Verify(supplied solana.PublicKey, seeds [][]byte) (uint8, error) {
	expected, bump, err := d.Derive(seeds)
	if err != nil {
		return 0, err
	}

	if !expected.Equals(supplied) {
		return 0, fmt.Errorf("%w: expected %s, got %s", ErrConstraintSeeds, expected, supplied)
	}

	return bump, nil
}
