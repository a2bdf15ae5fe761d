package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"quadratic_voting/internal/api"
	"quadratic_voting/internal/db/models"
	"time"
)

//go:generate mockgen -source=voting_service.go -destination=mocks/mock_voting_service.go -package=mock_services

type service struct {
	client  *http.Client
	baseURL string
}

type VotingService interface {
	GetProposals(ctx context.Context) ([]models.ProposalEntry, error)
}

func NewVotingService(baseURL string) VotingService {
	return &service{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: baseURL,
	}
}

func (s *service) GetProposals(ctx context.Context) ([]models.ProposalEntry, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s", s.baseURL, "proposals"), nil)
	if err != nil {
		return nil, err
	}

	request.Header.Add("Accept", "application/json")

	response, err := s.client.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	if response.StatusCode != http.StatusOK {
		var apiErr api.ErrorResponse
		if err := json.Unmarshal(responseBody, &apiErr); err == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("voting service returned %d: %s: %s", response.StatusCode, apiErr.Error, apiErr.Message)
		}
		return nil, fmt.Errorf("voting service returned %d", response.StatusCode)
	}

	responseData := new(api.ProposalsResponse)
	if err := json.Unmarshal(responseBody, responseData); err != nil {
		return nil, err
	}

	return responseData.Proposals, nil
}
