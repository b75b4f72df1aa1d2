package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-todo-lists/internal/models"
)

type itemServiceImpl struct {
	logger zerolog.Logger
	pg     Postgres
}

func NewItemService(
	logger zerolog.Logger,
	pg Postgres,
) ItemService {
	return &itemServiceImpl{
		logger: logger,
		pg:     pg,
	}
}

const itemColumns = `id, todo_list_id, title, description, status_code, due_at, created_at, updated_at`

func scanItem(row pgx.Row) (models.Item, error) {
	var (
		item       models.Item
		statusCode string
	)
	err := row.Scan(
		&item.ID,
		&item.ListID,
		&item.Title,
		&item.Description,
		&statusCode,
		&item.DueAt,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return models.Item{}, err
	}

	item.Status, err = models.ParseItemStatus(statusCode)
	if err != nil {
		return models.Item{}, err
	}
	return item, nil
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation
}

func (s *itemServiceImpl) CreateItem(ctx context.Context, params CreateItemParams) (models.Item, error) {
	// A missing list surfaces as a foreign key violation, so there is no
	// window between checking for the list and inserting the item.
	const insertItemQuery = `
INSERT INTO todo_items (todo_list_id,
                        title,
                        description,
                        due_at,
                        status_code)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + itemColumns

	item, err := scanItem(s.pg.QueryRow(
		ctx,
		insertItemQuery,
		params.ListID,
		params.Title,
		params.Description,
		params.DueAt,
		models.StatusNotCompleted.String(),
	))
	if err != nil {
		if isForeignKeyViolation(err) {
			s.logger.Warn().
				Int64("list_id", params.ListID).
				Msg("todo list not found")
			return models.Item{}, ErrListNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("list_id", params.ListID).
			Msg("failed to insert todo item")
		return models.Item{}, fmt.Errorf("insert todo item: %w", err)
	}

	s.logger.Debug().
		Int64("list_id", item.ListID).
		Int64("item_id", item.ID).
		Msg("created todo item")
	return item, nil
}

func (s *itemServiceImpl) GetItem(ctx context.Context, listID, itemID int64) (models.Item, error) {
	const selectItemQuery = `
SELECT ` + itemColumns + `
FROM todo_items
WHERE id = $1 AND todo_list_id = $2
`
	item, err := scanItem(s.pg.QueryRow(ctx, selectItemQuery, itemID, listID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Int64("list_id", listID).
				Int64("item_id", itemID).
				Msg("todo item not found")
			return models.Item{}, ErrItemNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("list_id", listID).
			Int64("item_id", itemID).
			Msg("failed to select todo item")
		return models.Item{}, fmt.Errorf("select todo item: %w", err)
	}

	s.logger.Debug().
		Int64("list_id", listID).
		Int64("item_id", itemID).
		Msg("selected todo item")
	return item, nil
}

func (s *itemServiceImpl) GetItems(ctx context.Context, listID int64, offset, limit int) ([]models.Item, error) {
	offset, limit = normalizeWindow(offset, limit)

	const selectItemsQuery = `
SELECT ` + itemColumns + `
FROM todo_items
WHERE todo_list_id = $1
ORDER BY id
LIMIT $2 OFFSET $3
`
	rows, err := s.pg.Query(
		ctx,
		selectItemsQuery,
		listID,
		limit,
		offset,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("list_id", listID).
			Msg("failed to select todo items")
		return nil, fmt.Errorf("select todo items: %w", err)
	}
	defer rows.Close()

	items := make([]models.Item, 0, limit)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan todo item")
			return nil, fmt.Errorf("scan todo item: %w", err)
		}
		items = append(items, item)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, fmt.Errorf("iterate todo items: %w", err)
	}

	s.logger.Debug().
		Int64("list_id", listID).
		Int("count", len(items)).
		Int("offset", offset).
		Int("limit", limit).
		Msg("selected todo items")
	return items, nil
}

func (s *itemServiceImpl) UpdateItem(ctx context.Context, params UpdateItemParams) (models.Item, error) {
	var statusCode *string
	if params.Status != nil {
		if !params.Status.Valid() {
			return models.Item{}, fmt.Errorf("update todo item: invalid status %d", uint8(*params.Status))
		}
		code := params.Status.String()
		statusCode = &code
	}

	// updated_at is refreshed by the todo_items_touch_updated_at trigger.
	const updateItemQuery = `
UPDATE todo_items
SET title       = COALESCE($1::text, title),
    description = COALESCE($2::text, description),
    due_at      = COALESCE($3::timestamptz, due_at),
    status_code = COALESCE($4::text, status_code)
WHERE id = $5 AND todo_list_id = $6
RETURNING ` + itemColumns

	item, err := scanItem(s.pg.QueryRow(
		ctx,
		updateItemQuery,
		params.Title,
		params.Description,
		params.DueAt,
		statusCode,
		params.ID,
		params.ListID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Int64("list_id", params.ListID).
				Int64("item_id", params.ID).
				Msg("todo item not found")
			return models.Item{}, ErrItemNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("list_id", params.ListID).
			Int64("item_id", params.ID).
			Msg("failed to update todo item")
		return models.Item{}, fmt.Errorf("update todo item: %w", err)
	}

	s.logger.Debug().
		Int64("list_id", item.ListID).
		Int64("item_id", item.ID).
		Str("status", item.Status.String()).
		Msg("updated todo item")
	return item, nil
}

func (s *itemServiceImpl) DeleteItem(ctx context.Context, listID, itemID int64) (bool, error) {
	const deleteItemQuery = `
DELETE FROM todo_items
WHERE id = $1 AND todo_list_id = $2
`
	tag, err := s.pg.Exec(ctx, deleteItemQuery, itemID, listID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("list_id", listID).
			Int64("item_id", itemID).
			Msg("failed to delete todo item")
		return false, fmt.Errorf("delete todo item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		s.logger.Warn().
			Int64("list_id", listID).
			Int64("item_id", itemID).
			Msg("todo item not found")
		return false, nil
	}

	s.logger.Debug().
		Int64("list_id", listID).
		Int64("item_id", itemID).
		Msg("deleted todo item")
	return true, nil
}
