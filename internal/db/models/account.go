package models

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"time"
)

const DiscriminatorSize = 8

var (
	ErrAccountDiscriminatorMismatch = errors.New("account discriminator did not match what was expected")
	ErrAccountDidNotDeserialize     = errors.New("failed to deserialize the account")
	ErrAccountDidNotSerialize       = errors.New("failed to serialize the account")
)

// Account is one ledger slot: the program that owns it and its raw record bytes.
type Account struct {
	Address   string    `json:"address" pg:",pk"`
	Owner     string    `json:"owner" pg:",notnull"`
	Data      []byte    `json:"data" pg:",notnull"`
	CreatedAt time.Time `json:"created_at" pg:"default:now()"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewAccount(address, owner solana.PublicKey, data []byte) *Account {
	return &Account{
		Address: address.String(),
		Owner:   owner.String(),
		Data:    data,
	}
}

func (a *Account) PublicKey() (solana.PublicKey, error) {
	return solana.PublicKeyFromBase58(a.Address)
}

func (a *Account) OwnedBy(program solana.PublicKey) bool {
	return a.Owner == program.String()
}

func (a *Account) Discriminator() (Discriminator, bool) {
	var d Discriminator
	if len(a.Data) < DiscriminatorSize {
		return d, false
	}
	copy(d[:], a.Data[:DiscriminatorSize])
	return d, true
}

type Discriminator [DiscriminatorSize]byte

// AccountDiscriminator is the first eight bytes of sha256("account:<name>").
func AccountDiscriminator(name string) Discriminator {
	var d Discriminator
	sum := sha256.Sum256([]byte("account:" + name))
	copy(d[:], sum[:DiscriminatorSize])
	return d
}

var (
	DaoDiscriminator      = AccountDiscriminator("Dao")
	ProposalDiscriminator = AccountDiscriminator("Proposal")
	VoteDiscriminator     = AccountDiscriminator("Vote")
)

func encodeRecord(discriminator Discriminator, record interface{}) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(discriminator[:])

	if err := bin.NewBorshEncoder(buf).Encode(record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAccountDidNotSerialize, err)
	}

	return buf.Bytes(), nil
}

func decodeRecord(data []byte, discriminator Discriminator, record interface{}) error {
	if len(data) < DiscriminatorSize || !bytes.Equal(data[:DiscriminatorSize], discriminator[:]) {
		return ErrAccountDiscriminatorMismatch
	}

	if err := bin.NewBorshDecoder(data[DiscriminatorSize:]).Decode(record); err != nil {
		return fmt.Errorf("%w: %v", ErrAccountDidNotDeserialize, err)
	}

	return nil
}
