package models

import (
	"errors"
	"github.com/gagliardetto/solana-go"
	"math/bits"
)

const MaxMetadataLength = 200

var ErrVoteCountOverflow = errors.New("vote count overflow")

type Proposal struct {
	Authority    solana.PublicKey `json:"authority"`
	Metadata     string           `json:"metadata"`
	YesVoteCount uint64           `json:"yes_vote_count"`
	NoVoteCount  uint64           `json:"no_vote_count"`
	Bump         uint8            `json:"bump"`
}

type ProposalEntry struct {
	Address  solana.PublicKey `json:"address"`
	Proposal *Proposal        `json:"proposal"`
}

func (p *Proposal) Marshal() ([]byte, error) {
	return encodeRecord(ProposalDiscriminator, p)
}

func UnmarshalProposal(data []byte) (*Proposal, error) {
	proposal := &Proposal{}
	if err := decodeRecord(data, ProposalDiscriminator, proposal); err != nil {
		return nil, err
	}
	return proposal, nil
}

// AddCredits accumulates weighted credits into the counter selected by voteType.
func (p *Proposal) AddCredits(voteType VoteType, credits uint64) error {
	counter := &p.NoVoteCount
	if voteType == VoteTypeYes {
		counter = &p.YesVoteCount
	}

	sum, carry := bits.Add64(*counter, credits, 0)
	if carry != 0 {
		return ErrVoteCountOverflow
	}
	*counter = sum

	return nil
}
