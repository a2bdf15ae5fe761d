package configs

type App struct {
	Environment string `env:"ENVIRONMENT,notEmpty"`
	ProgramID   string `env:"PROGRAM_ID" envDefault:"AnBkWTCj5fySwjX1X762GVwxQHappyvVXX8aMwRZ1dZk"`
}

func (c App) IsDevEnvironment() bool {
	return c.Environment == "dev"
}
