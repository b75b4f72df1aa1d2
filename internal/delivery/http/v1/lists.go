package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-todo-lists/internal/models"
	"github.com/adanyl0v/go-todo-lists/internal/services"
)

type listResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newListResponse(list models.List) listResponse {
	return listResponse{
		ID:          list.ID,
		Title:       list.Title,
		Description: list.Description,
		CreatedAt:   list.CreatedAt,
		UpdatedAt:   list.UpdatedAt,
	}
}

type createListRequest struct {
	Title       string  `json:"title" binding:"required,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,min=1,max=200"`
}

type updateListRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,min=1,max=200"`
}

func (h *handlerImpl) HandleCreateList(c *gin.Context) {
	var req createListRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBindingError(err))
		return
	}

	list, err := h.lists.CreateList(c, services.CreateListParams{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create todo list")
		abort(c, newInternalError())
		return
	}

	h.logger.Info().
		Int64("list_id", list.ID).
		Msg("created todo list")
	c.JSON(http.StatusCreated, newListResponse(list))
}

func (h *handlerImpl) HandleGetLists(c *gin.Context) {
	offset, limit, apiErr := pagination(c)
	if apiErr != nil {
		h.logger.Warn().
			Str("page", c.Query(pageQuery)).
			Str("per_page", c.Query(perPageQuery)).
			Msg("invalid pagination")
		abort(c, *apiErr)
		return
	}

	lists, err := h.lists.GetLists(c, offset, limit)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to get todo lists")
		abort(c, newInternalError())
		return
	}

	response := make([]listResponse, len(lists))
	for i, list := range lists {
		response[i] = newListResponse(list)
	}

	h.logger.Info().
		Int("count", len(response)).
		Msg("fetched todo lists")
	c.JSON(http.StatusOK, response)
}

func (h *handlerImpl) HandleGetList(c *gin.Context) {
	listID, apiErr := pathID(c, listIDParam)
	if apiErr != nil {
		abort(c, *apiErr)
		return
	}

	list, err := h.lists.GetList(c, listID)
	if err != nil {
		if errors.Is(err, services.ErrListNotFound) {
			abort(c, newNotFoundError(msgListNotFound))
			return
		}

		h.logger.Error().
			Err(err).
			Int64("list_id", listID).
			Msg("failed to get todo list")
		abort(c, newInternalError())
		return
	}

	c.JSON(http.StatusOK, newListResponse(list))
}

func (h *handlerImpl) HandleUpdateList(c *gin.Context) {
	listID, apiErr := pathID(c, listIDParam)
	if apiErr != nil {
		abort(c, *apiErr)
		return
	}

	var req updateListRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBindingError(err))
		return
	}

	list, err := h.lists.UpdateList(c, services.UpdateListParams{
		ID:          listID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, services.ErrListNotFound) {
			abort(c, newNotFoundError(msgListNotFound))
			return
		}

		h.logger.Error().
			Err(err).
			Int64("list_id", listID).
			Msg("failed to update todo list")
		abort(c, newInternalError())
		return
	}

	h.logger.Info().
		Int64("list_id", listID).
		Msg("updated todo list")
	c.JSON(http.StatusOK, newListResponse(list))
}

func (h *handlerImpl) HandleDeleteList(c *gin.Context) {
	listID, apiErr := pathID(c, listIDParam)
	if apiErr != nil {
		abort(c, *apiErr)
		return
	}

	deleted, err := h.lists.DeleteList(c, listID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("list_id", listID).
			Msg("failed to delete todo list")
		abort(c, newInternalError())
		return
	}
	if !deleted {
		abort(c, newNotFoundError(msgListNotFound))
		return
	}

	h.logger.Info().
		Int64("list_id", listID).
		Msg("deleted todo list")
	c.JSON(http.StatusOK, gin.H{})
}
