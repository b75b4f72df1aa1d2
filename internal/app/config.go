package app

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/adanyl0v/go-todo-lists/internal/config"
)

func (a *Application) MustReadEnv() {
	a.MustReadConfig(config.NewEnvReader())
}

func (a *Application) MustReadConfig(reader config.Reader) {
	cfg, err := reader.Read()
	if err != nil {
		a.logger.Error().
			Err(err).
			Msg("failed to read env")
		panic(err)
	}
	a.logger.Info().
		Str("env", cfg.Env).
		Msg("read env")

	a.config = cfg
}
