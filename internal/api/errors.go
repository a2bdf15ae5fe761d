package api

import (
	"errors"
	"net/http"
	"quadratic_voting/internal/auth"
	"quadratic_voting/internal/db/models"
	"quadratic_voting/internal/db/repositories"
	"quadratic_voting/internal/identity"
	"quadratic_voting/internal/program"
	"quadratic_voting/internal/token"
)

var errBadRequest = errors.New("malformed request body")

var badRequestErrors = []error{
	errBadRequest,
	program.ErrInstructionMissing,
	program.ErrInstructionFallbackNotFound,
	program.ErrInstructionDidNotDeserialize,
	program.ErrInvalidProgramID,
	program.ErrNotEnoughAccountKeys,
	program.ErrAccountNotSigner,
	program.ErrAccountNotMutable,
	identity.ErrConstraintSeeds,
	identity.ErrSeedTooLong,
	repositories.ErrAccountOwnedByWrongProgram,
	models.ErrAccountDiscriminatorMismatch,
	models.ErrAccountDidNotDeserialize,
	token.ErrInvalidAccountData,
}

func statusFor(err error) int {
	var programErr *program.Error
	if errors.As(err, &programErr) {
		return http.StatusUnprocessableEntity
	}

	switch {
	case errors.Is(err, repositories.ErrAccountAlreadyInUse),
		errors.Is(err, repositories.ErrTransactionConflict),
		errors.Is(err, token.ErrTokenAccountMismatch):
		return http.StatusConflict
	case errors.Is(err, repositories.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, auth.ErrMissingSignature),
		errors.Is(err, auth.ErrSignatureVerificationFailed):
		return http.StatusUnauthorized
	}

	for _, known := range badRequestErrors {
		if errors.Is(err, known) {
			return http.StatusBadRequest
		}
	}

	return http.StatusInternalServerError
}

func errorResponse(err error) ErrorResponse {
	response := ErrorResponse{
		Error:   program.ErrorName(err),
		Message: err.Error(),
	}

	var programErr *program.Error
	if errors.As(err, &programErr) {
		response.Code = programErr.Code
	}

	if errors.Is(err, errBadRequest) {
		response.Error = "BadRequest"
	}

	return response
}
