package app

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-todo-lists/internal/config"
)

// Application owns the process-wide resources. They are created by the
// Must* steps in main and handed to the layers that need them.
type Application struct {
	logger zerolog.Logger
	config *config.Config
	pgPool *pgxpool.Pool
}

func New() *Application {
	return &Application{}
}
