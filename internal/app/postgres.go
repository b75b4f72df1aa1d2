package app

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adanyl0v/go-todo-lists/internal/config"
	"github.com/adanyl0v/go-todo-lists/internal/services"
)

func postgresURL(cfg config.PostgresConfig) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.Username, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:     "/" + cfg.Database,
		RawQuery: url.Values{"sslmode": {cfg.SSLMode}}.Encode(),
	}
	return u.String()
}

func (a *Application) MustConnectPostgres() {
	cfg := a.config.Postgres

	poolCfg, err := pgxpool.ParseConfig(postgresURL(cfg))
	if err != nil {
		a.logger.Error().
			Err(err).
			Msg("failed to parse postgres config")
		panic(err)
	}
	poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	poolCfg.MaxConns = cfg.MaxConns

	a.pgPool, err = pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		a.logger.Error().
			Err(err).
			Msg("failed to connect to postgres")
		panic(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.PingTimeout)
	defer cancel()

	err = a.pgPool.Ping(ctx)
	if err != nil {
		a.logger.Error().
			Err(err).
			Msg("failed to ping postgres")
		panic(err)
	}
	a.logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Int32("max_conns", cfg.MaxConns).
		Msg("connected to postgres")
}

func (a *Application) MustEnsureSchema() {
	ctx, cancel := context.WithTimeout(context.Background(), a.config.Postgres.PingTimeout)
	defer cancel()

	err := services.EnsureSchema(ctx, a.logger, a.pgPool)
	if err != nil {
		panic(fmt.Errorf("ensure schema: %w", err))
	}
}

func (a *Application) DisconnectPostgres() {
	a.pgPool.Close()
	a.logger.Info().Msg("disconnected from postgres")
}
