package api

import (
	"fmt"
	"github.com/gagliardetto/solana-go"
	"github.com/go-chi/chi/v5"
	"net/http"
	"quadratic_voting/internal/db/models"
	"quadratic_voting/internal/db/repositories"
	"quadratic_voting/internal/token"
)

func (s *Server) submitInstruction(w http.ResponseWriter, r *http.Request) {
	var body InstructionRequest
	if err := s.readJSON(w, r, &body); err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.processor.Process(r.Context(), body.Request()); err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, InstructionResponse{Result: "ok"})
}

func (s *Server) getAccount(w http.ResponseWriter, r *http.Request) {
	address, err := solana.PublicKeyFromBase58(chi.URLParam(r, "address"))
	if err != nil {
		s.writeError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	var account *models.Account
	err = s.store.RunInTransaction(r.Context(), func(tx repositories.AccountTx) error {
		account, err = tx.Get(r.Context(), address)
		return err
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	response, err := s.describeAccount(address, account)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) describeAccount(address solana.PublicKey, account *models.Account) (AccountResponse, error) {
	owner, err := solana.PublicKeyFromBase58(account.Owner)
	if err != nil {
		return AccountResponse{}, err
	}

	response := AccountResponse{
		Address: address,
		Owner:   owner,
		Kind:    AccountKindUnknown,
		Data:    account.Data,
	}

	if account.OwnedBy(solana.TokenProgramID) {
		tokenAccount, err := token.Load(account)
		if err != nil {
			return AccountResponse{}, err
		}
		response.Kind = AccountKindToken
		response.Data = TokenAccount{Mint: tokenAccount.Mint, Owner: tokenAccount.Owner, Amount: tokenAccount.Amount}
		return response, nil
	}

	if !account.OwnedBy(s.processor.ProgramID()) {
		return response, nil
	}

	discriminator, ok := account.Discriminator()
	if !ok {
		return response, nil
	}

	switch discriminator {
	case models.DaoDiscriminator:
		response.Kind = AccountKindDao
		response.Data, err = models.UnmarshalDao(account.Data)
	case models.ProposalDiscriminator:
		response.Kind = AccountKindProposal
		response.Data, err = models.UnmarshalProposal(account.Data)
	case models.VoteDiscriminator:
		response.Kind = AccountKindVote
		response.Data, err = models.UnmarshalVote(account.Data)
	}
	if err != nil {
		return AccountResponse{}, err
	}

	return response, nil
}

func (s *Server) listProposals(w http.ResponseWriter, r *http.Request) {
	var proposals []models.ProposalEntry
	err := s.store.RunInTransaction(r.Context(), func(tx repositories.AccountTx) error {
		var err error
		proposals, err = repositories.NewProposalRepository(tx, s.processor.ProgramID()).GetMany(r.Context())
		return err
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, ProposalsResponse{Proposals: proposals})
}

func (s *Server) setTokenBalance(w http.ResponseWriter, r *http.Request) {
	var body TokenBalanceRequest
	if err := s.readJSON(w, r, &body); err != nil {
		s.writeError(w, err)
		return
	}

	if err := token.SetBalance(r.Context(), s.store, body.Address, body.Mint, body.Owner, body.Amount); err != nil {
		s.writeError(w, err)
		return
	}

	s.logger.Infow("token balance set", "address", body.Address, "owner", body.Owner, "amount", body.Amount)
	s.writeJSON(w, http.StatusOK, TokenAccount{Mint: body.Mint, Owner: body.Owner, Amount: body.Amount})
}
