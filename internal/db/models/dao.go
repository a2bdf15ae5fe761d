package models

import (
	"errors"
	"github.com/gagliardetto/solana-go"
)

// MaxNameLength keeps the name usable as a single derivation seed.
const MaxNameLength = solana.MaxSeedLength

var ErrProposalCountOverflow = errors.New("proposal count overflow")

type Dao struct {
	Authority     solana.PublicKey `json:"authority"`
	Name          string           `json:"name"`
	ProposalCount uint64           `json:"proposal_count"`
	Bump          uint8            `json:"bump"`
}

func (d *Dao) Marshal() ([]byte, error) {
	return encodeRecord(DaoDiscriminator, d)
}

func UnmarshalDao(data []byte) (*Dao, error) {
	dao := &Dao{}
	if err := decodeRecord(data, DaoDiscriminator, dao); err != nil {
		return nil, err
	}
	return dao, nil
}

// NextProposalIndex returns the index the next proposal is derived from and advances the counter.
func (d *Dao) NextProposalIndex() (uint64, error) {
	index := d.ProposalCount
	if index == ^uint64(0) {
		return 0, ErrProposalCountOverflow
	}
	d.ProposalCount++
	return index, nil
}
