package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-todo-lists/internal/config"
)

// InitDefaultLogger installs a JSON logger used until the config is read.
func (a *Application) InitDefaultLogger() {
	zerolog.TimestampFieldName = "timestamp"
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	a.logger = zerolog.New(os.Stdout).
		With().
		Timestamp().
		Caller().
		Int("pid", os.Getpid()).
		Logger()
	a.logger.Debug().Msg("default logger ready")
}

// envLogging picks the level and sink for env. Only local gets the
// human-readable console output.
func envLogging(env string, out io.Writer) (zerolog.Level, io.Writer, error) {
	switch env {
	case config.EnvProd:
		return zerolog.InfoLevel, out, nil
	case config.EnvDev:
		return zerolog.DebugLevel, out, nil
	case config.EnvLocal:
		return zerolog.TraceLevel, zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.DateTime,
		}, nil
	}
	return zerolog.NoLevel, nil, fmt.Errorf("no logging setup for env %q", env)
}

func (a *Application) MustInitApplicationLogger() {
	level, w, err := envLogging(a.config.Env, os.Stdout)
	if err != nil {
		a.logger.Error().
			Err(err).
			Msg("failed to configure logger")
		panic(err)
	}

	zerolog.SetGlobalLevel(level)
	a.logger = a.logger.Output(w)
	a.logger.Info().
		Str("env", a.config.Env).
		Stringer("level", level).
		Msg("logger configured")
}
