package configs

type Logger struct {
	URL     string `env:"LOKI_URL"`
	AppName string `env:"APP_NAME" envDefault:"quadratic_voting"`
}
