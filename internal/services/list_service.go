package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-todo-lists/internal/models"
)

type listServiceImpl struct {
	logger zerolog.Logger
	pg     Postgres
}

func NewListService(
	logger zerolog.Logger,
	pg Postgres,
) ListService {
	return &listServiceImpl{
		logger: logger,
		pg:     pg,
	}
}

const listColumns = `id, title, description, created_at, updated_at`

func scanList(row pgx.Row) (models.List, error) {
	var list models.List
	err := row.Scan(
		&list.ID,
		&list.Title,
		&list.Description,
		&list.CreatedAt,
		&list.UpdatedAt,
	)
	return list, err
}

func (s *listServiceImpl) CreateList(ctx context.Context, params CreateListParams) (models.List, error) {
	const insertListQuery = `
INSERT INTO todo_lists (title,
                        description)
VALUES ($1, $2)
RETURNING ` + listColumns

	list, err := scanList(s.pg.QueryRow(
		ctx,
		insertListQuery,
		params.Title,
		params.Description,
	))
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert todo list")
		return models.List{}, fmt.Errorf("insert todo list: %w", err)
	}

	s.logger.Debug().
		Int64("list_id", list.ID).
		Msg("created todo list")
	return list, nil
}

func (s *listServiceImpl) GetList(ctx context.Context, listID int64) (models.List, error) {
	const selectListQuery = `
SELECT ` + listColumns + `
FROM todo_lists
WHERE id = $1
`
	list, err := scanList(s.pg.QueryRow(ctx, selectListQuery, listID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Int64("list_id", listID).
				Msg("todo list not found")
			return models.List{}, ErrListNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("list_id", listID).
			Msg("failed to select todo list")
		return models.List{}, fmt.Errorf("select todo list: %w", err)
	}

	s.logger.Debug().
		Int64("list_id", listID).
		Msg("selected todo list")
	return list, nil
}

func (s *listServiceImpl) GetLists(ctx context.Context, offset, limit int) ([]models.List, error) {
	offset, limit = normalizeWindow(offset, limit)

	const selectListsQuery = `
SELECT ` + listColumns + `
FROM todo_lists
ORDER BY id
LIMIT $1 OFFSET $2
`
	rows, err := s.pg.Query(
		ctx,
		selectListsQuery,
		limit,
		offset,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select todo lists")
		return nil, fmt.Errorf("select todo lists: %w", err)
	}
	defer rows.Close()

	lists := make([]models.List, 0, limit)
	for rows.Next() {
		list, err := scanList(rows)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan todo list")
			return nil, fmt.Errorf("scan todo list: %w", err)
		}
		lists = append(lists, list)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, fmt.Errorf("iterate todo lists: %w", err)
	}

	s.logger.Debug().
		Int("count", len(lists)).
		Int("offset", offset).
		Int("limit", limit).
		Msg("selected todo lists")
	return lists, nil
}

func (s *listServiceImpl) UpdateList(ctx context.Context, params UpdateListParams) (models.List, error) {
	// updated_at is refreshed by the todo_lists_touch_updated_at trigger.
	const updateListQuery = `
UPDATE todo_lists
SET title       = COALESCE($1::text, title),
    description = COALESCE($2::text, description)
WHERE id = $3
RETURNING ` + listColumns

	list, err := scanList(s.pg.QueryRow(
		ctx,
		updateListQuery,
		params.Title,
		params.Description,
		params.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Int64("list_id", params.ID).
				Msg("todo list not found")
			return models.List{}, ErrListNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("list_id", params.ID).
			Msg("failed to update todo list")
		return models.List{}, fmt.Errorf("update todo list: %w", err)
	}

	s.logger.Debug().
		Int64("list_id", list.ID).
		Msg("updated todo list")
	return list, nil
}

func (s *listServiceImpl) DeleteList(ctx context.Context, listID int64) (bool, error) {
	// Items go with the list through ON DELETE CASCADE.
	const deleteListQuery = `
DELETE FROM todo_lists
WHERE id = $1
`
	tag, err := s.pg.Exec(ctx, deleteListQuery, listID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("list_id", listID).
			Msg("failed to delete todo list")
		return false, fmt.Errorf("delete todo list: %w", err)
	}
	if tag.RowsAffected() == 0 {
		s.logger.Warn().
			Int64("list_id", listID).
			Msg("todo list not found")
		return false, nil
	}

	s.logger.Debug().
		Int64("list_id", listID).
		Msg("deleted todo list")
	return true, nil
}
