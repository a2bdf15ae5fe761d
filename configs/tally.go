package configs

type Tally struct {
	Schedule string `env:"TALLY_CRON" envDefault:"*/10 * * * *"`
}

type VotingAPI struct {
	URL string `env:"VOTING_API_URL" envDefault:"http://localhost:8080"`
}
