package services

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/adanyl0v/go-todo-lists/internal/models"
)

var (
	ErrListNotFound = errors.New("todo list not found")
	ErrItemNotFound = errors.New("todo item not found")
)

// Postgres is the subset of *pgxpool.Pool the services run queries through.
// Every call acquires a pooled connection and releases it before returning.
type Postgres interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type ListService interface {
	// CreateList inserts a list and returns it with the identifier and
	// timestamps assigned by the database.
	CreateList(ctx context.Context, params CreateListParams) (models.List, error)

	// GetList returns ErrListNotFound if the list doesn't exist.
	GetList(ctx context.Context, listID int64) (models.List, error)

	// GetLists returns up to limit lists ordered by id, skipping the first
	// offset rows. An offset past the end yields an empty slice.
	GetLists(ctx context.Context, offset, limit int) ([]models.List, error)

	// UpdateList changes only the non-nil fields of params.
	//
	// It returns ErrListNotFound if the list doesn't exist.
	UpdateList(ctx context.Context, params UpdateListParams) (models.List, error)

	// DeleteList removes the list together with all of its items and
	// reports whether the list existed.
	DeleteList(ctx context.Context, listID int64) (bool, error)
}

type ItemService interface {
	// CreateItem inserts a NOT_COMPLETED item into the given list.
	//
	// It returns ErrListNotFound if the list doesn't exist.
	CreateItem(ctx context.Context, params CreateItemParams) (models.Item, error)

	// GetItem looks the item up by both identifiers, so an item
	// addressed through a list it doesn't belong to is ErrItemNotFound.
	GetItem(ctx context.Context, listID, itemID int64) (models.Item, error)

	// GetItems pages through the items of one list ordered by id.
	GetItems(ctx context.Context, listID int64, offset, limit int) ([]models.Item, error)

	// UpdateItem changes only the non-nil fields of params.
	//
	// It returns ErrItemNotFound if the item doesn't exist in the list.
	UpdateItem(ctx context.Context, params UpdateItemParams) (models.Item, error)

	DeleteItem(ctx context.Context, listID, itemID int64) (bool, error)
}

type CreateListParams struct {
	Title       string
	Description *string
}

type UpdateListParams struct {
	ID          int64
	Title       *string
	Description *string
}

type CreateItemParams struct {
	ListID      int64
	Title       string
	Description *string
	DueAt       *time.Time
}

type UpdateItemParams struct {
	ListID      int64
	ID          int64
	Title       *string
	Description *string
	DueAt       *time.Time
	Status      *models.ItemStatus
}

// defaultLimit applies when a caller asks for a non-positive page size.
const defaultLimit = 10

func normalizeWindow(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	return offset, limit
}
