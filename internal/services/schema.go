package services

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/rs/zerolog"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// schemaLockKey serializes schema bootstrap across instances starting at
// the same time. Concurrent CREATE ... IF NOT EXISTS on the same catalog
// rows otherwise fails with "tuple concurrently updated".
const schemaLockKey int64 = 0x746f646f6c697374

const schemaLockQuery = `SELECT pg_advisory_xact_lock($1)`

// schemaStatements returns the embedded DDL in file name order,
// one statement per file.
func schemaStatements() ([]string, error) {
	names, err := fs.Glob(schemaFS, "schema/*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	statements := make([]string, 0, len(names))
	for _, name := range names {
		b, err := schemaFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		statements = append(statements, string(b))
	}
	return statements, nil
}

// EnsureSchema creates the tables, index and update triggers if they don't
// exist yet. All statements run in a single transaction.
func EnsureSchema(ctx context.Context, logger zerolog.Logger, pg Postgres) error {
	statements, err := schemaStatements()
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to load schema")
		return err
	}

	tx, err := pg.Begin(ctx)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to begin transaction")
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Released on commit or rollback.
	_, err = tx.Exec(ctx, schemaLockQuery, schemaLockKey)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to acquire schema lock")
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	for i, stmt := range statements {
		_, err = tx.Exec(ctx, stmt)
		if err != nil {
			logger.Error().
				Err(err).
				Int("statement", i).
				Msg("failed to apply schema")
			return fmt.Errorf("apply schema statement %d: %w", i, err)
		}
	}

	err = tx.Commit(ctx)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to commit schema")
		return err
	}

	logger.Info().
		Int("statements", len(statements)).
		Msg("ensured schema")
	return nil
}
