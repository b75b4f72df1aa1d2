package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-todo-lists/internal/models"
	"github.com/adanyl0v/go-todo-lists/internal/services"
)

type itemResponse struct {
	ID          int64             `json:"id"`
	TodoListID  int64             `json:"todo_list_id"`
	Title       string            `json:"title"`
	Description *string           `json:"description"`
	StatusCode  models.ItemStatus `json:"status_code"`
	DueAt       *time.Time        `json:"due_at"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func newItemResponse(item models.Item) itemResponse {
	return itemResponse{
		ID:          item.ID,
		TodoListID:  item.ListID,
		Title:       item.Title,
		Description: item.Description,
		StatusCode:  item.Status,
		DueAt:       item.DueAt,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

type createItemRequest struct {
	Title       string  `json:"title" binding:"required,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,min=1,max=200"`
	DueAt       *dueAt  `json:"due_at"`
}

type updateItemRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,min=1,max=200"`
	DueAt       *dueAt  `json:"due_at"`
	Complete    *bool   `json:"complete"`
}

func (h *handlerImpl) HandleCreateItem(c *gin.Context) {
	listID, apiErr := pathID(c, listIDParam)
	if apiErr != nil {
		abort(c, *apiErr)
		return
	}

	var req createItemRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBindingError(err))
		return
	}

	item, err := h.items.CreateItem(c, services.CreateItemParams{
		ListID:      listID,
		Title:       req.Title,
		Description: req.Description,
		DueAt:       req.DueAt.Time(),
	})
	if err != nil {
		if errors.Is(err, services.ErrListNotFound) {
			abort(c, newNotFoundError(msgListNotFound))
			return
		}

		h.logger.Error().
			Err(err).
			Int64("list_id", listID).
			Msg("failed to create todo item")
		abort(c, newInternalError())
		return
	}

	h.logger.Info().
		Int64("list_id", listID).
		Int64("item_id", item.ID).
		Msg("created todo item")
	c.JSON(http.StatusCreated, newItemResponse(item))
}

func (h *handlerImpl) HandleGetItems(c *gin.Context) {
	listID, apiErr := pathID(c, listIDParam)
	if apiErr != nil {
		abort(c, *apiErr)
		return
	}

	offset, limit, apiErr := pagination(c)
	if apiErr != nil {
		h.logger.Warn().
			Str("page", c.Query(pageQuery)).
			Str("per_page", c.Query(perPageQuery)).
			Msg("invalid pagination")
		abort(c, *apiErr)
		return
	}

	items, err := h.items.GetItems(c, listID, offset, limit)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("list_id", listID).
			Msg("failed to get todo items")
		abort(c, newInternalError())
		return
	}

	response := make([]itemResponse, len(items))
	for i, item := range items {
		response[i] = newItemResponse(item)
	}

	h.logger.Info().
		Int64("list_id", listID).
		Int("count", len(response)).
		Msg("fetched todo items")
	c.JSON(http.StatusOK, response)
}

func itemIDs(c *gin.Context) (listID, itemID int64, apiErr *apiError) {
	listID, apiErr = pathID(c, listIDParam)
	if apiErr != nil {
		return 0, 0, apiErr
	}
	itemID, apiErr = pathID(c, itemIDParam)
	if apiErr != nil {
		return 0, 0, apiErr
	}
	return listID, itemID, nil
}

func (h *handlerImpl) HandleGetItem(c *gin.Context) {
	listID, itemID, apiErr := itemIDs(c)
	if apiErr != nil {
		abort(c, *apiErr)
		return
	}

	item, err := h.items.GetItem(c, listID, itemID)
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			abort(c, newNotFoundError(msgItemNotFound))
			return
		}

		h.logger.Error().
			Err(err).
			Int64("list_id", listID).
			Int64("item_id", itemID).
			Msg("failed to get todo item")
		abort(c, newInternalError())
		return
	}

	c.JSON(http.StatusOK, newItemResponse(item))
}

func (h *handlerImpl) HandleUpdateItem(c *gin.Context) {
	listID, itemID, apiErr := itemIDs(c)
	if apiErr != nil {
		abort(c, *apiErr)
		return
	}

	var req updateItemRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBindingError(err))
		return
	}

	params := services.UpdateItemParams{
		ListID:      listID,
		ID:          itemID,
		Title:       req.Title,
		Description: req.Description,
		DueAt:       req.DueAt.Time(),
	}
	if req.Complete != nil {
		status := models.StatusFromComplete(*req.Complete)
		params.Status = &status
	}

	item, err := h.items.UpdateItem(c, params)
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			abort(c, newNotFoundError(msgItemNotFound))
			return
		}

		h.logger.Error().
			Err(err).
			Int64("list_id", listID).
			Int64("item_id", itemID).
			Msg("failed to update todo item")
		abort(c, newInternalError())
		return
	}

	h.logger.Info().
		Int64("list_id", listID).
		Int64("item_id", itemID).
		Str("status", item.Status.String()).
		Msg("updated todo item")
	c.JSON(http.StatusOK, newItemResponse(item))
}

func (h *handlerImpl) HandleDeleteItem(c *gin.Context) {
	listID, itemID, apiErr := itemIDs(c)
	if apiErr != nil {
		abort(c, *apiErr)
		return
	}

	deleted, err := h.items.DeleteItem(c, listID, itemID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("list_id", listID).
			Int64("item_id", itemID).
			Msg("failed to delete todo item")
		abort(c, newInternalError())
		return
	}
	if !deleted {
		abort(c, newNotFoundError(msgItemNotFound))
		return
	}

	h.logger.Info().
		Int64("list_id", listID).
		Int64("item_id", itemID).
		Msg("deleted todo item")
	c.JSON(http.StatusOK, gin.H{"message": "Todo Item deleted successfully"})
}
