package program

import (
	"errors"
	"fmt"
	"quadratic_voting/internal/auth"
	"quadratic_voting/internal/db/models"
	"quadratic_voting/internal/db/repositories"
	"quadratic_voting/internal/identity"
	"quadratic_voting/internal/token"
)

// errorCodeOffset is where program error codes start.
const errorCodeOffset = 6000

// Error is a program-level rejection surfaced to the caller by name and code.
type Error struct {
	Code uint32
	Name string
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Msg)
}

var (
	ErrInvalidTokenAccount = &Error{errorCodeOffset, "InvalidTokenAccount", "The token account does not belong to the voter"}
	ErrInvalidVoteType     = &Error{errorCodeOffset + 1, "InvalidVoteType", "Invalid vote type. Must be 0 or 1"}
	ErrInvalidProposal     = &Error{errorCodeOffset + 2, "InvalidProposal", "Proposal does not belong to this DAO"}
	ErrUnauthorized        = &Error{errorCodeOffset + 3, "Unauthorized", "Only the DAO authority can create proposals"}
	ErrNameTooLong         = &Error{errorCodeOffset + 4, "NameTooLong", fmt.Sprintf("DAO name exceeds %d bytes", models.MaxNameLength)}
	ErrMetadataTooLong     = &Error{errorCodeOffset + 5, "MetadataTooLong", fmt.Sprintf("Proposal metadata exceeds %d bytes", models.MaxMetadataLength)}
)

var (
	ErrInstructionMissing           = errors.New("instruction discriminator not provided")
	ErrInstructionFallbackNotFound  = errors.New("fallback functions are not supported")
	ErrInstructionDidNotDeserialize = errors.New("the program could not deserialize the given instruction")
	ErrInstructionDidNotSerialize   = errors.New("the program could not serialize the given instruction")
	ErrInvalidProgramID             = errors.New("program ID was not as expected")
	ErrNotEnoughAccountKeys         = errors.New("not enough account keys given to the instruction")
	ErrAccountNotSigner             = errors.New("a signer constraint was violated")
	ErrAccountNotMutable            = errors.New("a mut constraint was violated")
)

var errorNames = []struct {
	err  error
	name string
}{
	{repositories.ErrAccountAlreadyInUse, "AccountAlreadyInUse"},
	{repositories.ErrAccountNotFound, "AccountNotInitialized"},
	{repositories.ErrAccountOwnedByWrongProgram, "AccountOwnedByWrongProgram"},
	{repositories.ErrTransactionConflict, "TransactionConflict"},
	{models.ErrAccountDiscriminatorMismatch, "AccountDiscriminatorMismatch"},
	{models.ErrAccountDidNotDeserialize, "AccountDidNotDeserialize"},
	{models.ErrAccountDidNotSerialize, "AccountDidNotSerialize"},
	{models.ErrProposalCountOverflow, "ArithmeticOverflow"},
	{models.ErrVoteCountOverflow, "ArithmeticOverflow"},
	{identity.ErrConstraintSeeds, "ConstraintSeeds"},
	{identity.ErrSeedTooLong, "MaxSeedLengthExceeded"},
	{token.ErrInvalidAccountData, "InvalidAccountData"},
	{token.ErrTokenAccountMismatch, "TokenAccountMismatch"},
	{auth.ErrMissingSignature, "MissingRequiredSignature"},
	{auth.ErrSignatureVerificationFailed, "SignatureVerificationFailed"},
	{ErrInstructionMissing, "InstructionMissing"},
	{ErrInstructionFallbackNotFound, "InstructionFallbackNotFound"},
	{ErrInstructionDidNotDeserialize, "InstructionDidNotDeserialize"},
	{ErrInstructionDidNotSerialize, "InstructionDidNotSerialize"},
	{ErrInvalidProgramID, "InvalidProgramId"},
	{ErrNotEnoughAccountKeys, "NotEnoughAccountKeys"},
	{ErrAccountNotSigner, "ConstraintSigner"},
	{ErrAccountNotMutable, "ConstraintMut"},
}

// ErrorName maps err to the stable name reported to callers and metrics.
func ErrorName(err error) string {
	if err == nil {
		return "ok"
	}

	var programErr *Error
	if errors.As(err, &programErr) {
		return programErr.Name
	}

	for _, known := range errorNames {
		if errors.Is(err, known.err) {
			return known.name
		}
	}

	return "Unknown"
}
