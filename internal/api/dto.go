package api

import (
	"github.com/gagliardetto/solana-go"
	"quadratic_voting/internal/auth"
	"quadratic_voting/internal/db/models"
	"quadratic_voting/internal/program"
)

type AccountMeta struct {
	PublicKey  solana.PublicKey `json:"pubkey"`
	IsSigner   bool             `json:"is_signer"`
	IsWritable bool             `json:"is_writable"`
}

type Signature struct {
	Signer    solana.PublicKey `json:"signer"`
	Signature solana.Signature `json:"signature"`
}

// InstructionRequest is the wire form of program.Request. Data is base64.
type InstructionRequest struct {
	ProgramID  solana.PublicKey `json:"program_id"`
	Accounts   []AccountMeta    `json:"accounts"`
	Data       []byte           `json:"data"`
	Signatures []Signature      `json:"signatures"`
}

func NewInstructionRequest(request program.Request) InstructionRequest {
	accounts := make([]AccountMeta, 0, len(request.Instruction.Accounts))
	for _, meta := range request.Instruction.Accounts {
		accounts = append(accounts, AccountMeta{
			PublicKey:  meta.PublicKey,
			IsSigner:   meta.IsSigner,
			IsWritable: meta.IsWritable,
		})
	}

	signatures := make([]Signature, 0, len(request.Credentials))
	for _, credential := range request.Credentials {
		signatures = append(signatures, Signature{Signer: credential.Signer, Signature: credential.Signature})
	}

	return InstructionRequest{
		ProgramID:  request.Instruction.ProgramID,
		Accounts:   accounts,
		Data:       request.Instruction.Data,
		Signatures: signatures,
	}
}

func (r InstructionRequest) Request() program.Request {
	metas := make([]program.AccountMeta, 0, len(r.Accounts))
	for _, account := range r.Accounts {
		metas = append(metas, program.AccountMeta{
			PublicKey:  account.PublicKey,
			IsSigner:   account.IsSigner,
			IsWritable: account.IsWritable,
		})
	}

	credentials := make(auth.Credentials, 0, len(r.Signatures))
	for _, signature := range r.Signatures {
		credentials = append(credentials, auth.Signature{Signer: signature.Signer, Signature: signature.Signature})
	}

	return program.Request{
		Instruction: program.Instruction{
			ProgramID: r.ProgramID,
			Accounts:  metas,
			Data:      r.Data,
		},
		Credentials: credentials,
	}
}

type InstructionResponse struct {
	Result string `json:"result"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    uint32 `json:"code,omitempty"`
}

const (
	AccountKindDao      = "dao"
	AccountKindProposal = "proposal"
	AccountKindVote     = "vote"
	AccountKindToken    = "token"
	AccountKindUnknown  = "unknown"
)

type TokenAccount struct {
	Mint   solana.PublicKey `json:"mint"`
	Owner  solana.PublicKey `json:"owner"`
	Amount uint64           `json:"amount"`
}

type AccountResponse struct {
	Address solana.PublicKey `json:"address"`
	Owner   solana.PublicKey `json:"owner"`
	Kind    string           `json:"kind"`
	Data    interface{}      `json:"data"`
}

type ProposalsResponse struct {
	Proposals []models.ProposalEntry `json:"proposals"`
}

type TokenBalanceRequest struct {
	Address solana.PublicKey `json:"address"`
	Mint    solana.PublicKey `json:"mint"`
	Owner   solana.PublicKey `json:"owner"`
	Amount  uint64           `json:"amount"`
}
