package program

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"quadratic_voting/internal/auth"
)

const (
	InitDaoInstruction      = "init_dao"
	InitProposalInstruction = "init_proposal"
	CastVoteInstruction     = "cast_vote"
)

const DiscriminatorSize = 8

type Discriminator [DiscriminatorSize]byte

// InstructionDiscriminator is the first eight bytes of sha256("global:<name>").
func InstructionDiscriminator(name string) Discriminator {
	var d Discriminator
	sum := sha256.Sum256([]byte("global:" + name))
	copy(d[:], sum[:DiscriminatorSize])
	return d
}

type AccountMeta struct {
	PublicKey  solana.PublicKey
	IsSigner   bool
	IsWritable bool
}

func Signer(key solana.PublicKey) AccountMeta {
	return AccountMeta{PublicKey: key, IsSigner: true, IsWritable: true}
}

func Writable(key solana.PublicKey) AccountMeta {
	return AccountMeta{PublicKey: key, IsWritable: true}
}

func ReadOnly(key solana.PublicKey) AccountMeta {
	return AccountMeta{PublicKey: key}
}

type Instruction struct {
	ProgramID solana.PublicKey
	Accounts  []AccountMeta
	Data      []byte
}

func (i Instruction) Discriminator() (Discriminator, error) {
	var d Discriminator
	if len(i.Data) < DiscriminatorSize {
		return d, ErrInstructionMissing
	}
	copy(d[:], i.Data[:DiscriminatorSize])
	return d, nil
}

// Message is the canonical byte form of the instruction that signers sign.
func (i Instruction) Message() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := bin.NewBorshEncoder(buf).Encode(&i); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInstructionDidNotSerialize, err)
	}
	return buf.Bytes(), nil
}

// Request is an instruction together with the signatures over its message.
type Request struct {
	Instruction Instruction
	Credentials auth.Credentials
}

func NewRequest(instruction Instruction, signers ...solana.PrivateKey) (Request, error) {
	message, err := instruction.Message()
	if err != nil {
		return Request{}, err
	}

	credentials, err := auth.Sign(message, signers...)
	if err != nil {
		return Request{}, err
	}

	return Request{Instruction: instruction, Credentials: credentials}, nil
}

func encodeInstructionData(name string, args interface{}) ([]byte, error) {
	discriminator := InstructionDiscriminator(name)

	buf := new(bytes.Buffer)
	buf.Write(discriminator[:])
	if err := bin.NewBorshEncoder(buf).Encode(args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInstructionDidNotSerialize, err)
	}

	return buf.Bytes(), nil
}

func decodeInstructionArgs(data []byte, args interface{}) error {
	if len(data) < DiscriminatorSize {
		return ErrInstructionMissing
	}

	if err := bin.NewBorshDecoder(data[DiscriminatorSize:]).Decode(args); err != nil {
		return fmt.Errorf("%w: %v", ErrInstructionDidNotDeserialize, err)
	}

	return nil
}
