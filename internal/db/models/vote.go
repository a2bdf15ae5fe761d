package models

import (
	"github.com/gagliardetto/solana-go"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type VoteType uint8

const (
	VoteTypeNo  VoteType = 0
	VoteTypeYes VoteType = 1
)

func (v VoteType) IsValid() bool {
	return v == VoteTypeNo || v == VoteTypeYes
}

func (v VoteType) String() string {
	switch v {
	case VoteTypeNo:
		return "no"
	case VoteTypeYes:
		return "yes"
	default:
		return "unknown"
	}
}

func (v VoteType) CapitalizedString() string {
	return cases.Title(language.English).String(v.String())
}

type Vote struct {
	Authority   solana.PublicKey `json:"authority"`
	VoteType    VoteType         `json:"vote_type"`
	VoteCredits uint64           `json:"vote_credits"`
	Bump        uint8            `json:"bump"`
}

func (v *Vote) Marshal() ([]byte, error) {
	return encodeRecord(VoteDiscriminator, v)
}

func UnmarshalVote(data []byte) (*Vote, error) {
	vote := &Vote{}
	if err := decodeRecord(data, VoteDiscriminator, vote); err != nil {
		return nil, err
	}
	return vote, nil
}
