package configs

import (
	"fmt"
	"github.com/caarlos0/env/v6"
)

type VotingServiceConfig struct {
	App    App
	Logger Logger
	Ledger Ledger
	HTTP   HTTP
}

type TallyServiceConfig struct {
	App       App
	Logger    Logger
	HTTP      HTTP
	Tally     Tally
	VotingAPI VotingAPI
}

func LoadVotingServiceConfig() (VotingServiceConfig, error) {
	var config VotingServiceConfig

	if err := env.Parse(&config); err != nil {
		return VotingServiceConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Ledger.Validate(); err != nil {
		return VotingServiceConfig{}, fmt.Errorf("invalid ledger config: %w", err)
	}

	return config, nil
}

func LoadTallyServiceConfig() (TallyServiceConfig, error) {
	var config TallyServiceConfig

	if err := env.Parse(&config); err != nil {
		return TallyServiceConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}
