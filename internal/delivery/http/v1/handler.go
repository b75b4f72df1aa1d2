package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-todo-lists/internal/services"
)

type Handler interface {
	HandleRequestLogger(c *gin.Context)
	HandleHealth(c *gin.Context)

	HandleCreateList(c *gin.Context)
	HandleGetLists(c *gin.Context)
	HandleGetList(c *gin.Context)
	HandleUpdateList(c *gin.Context)
	HandleDeleteList(c *gin.Context)

	HandleCreateItem(c *gin.Context)
	HandleGetItems(c *gin.Context)
	HandleGetItem(c *gin.Context)
	HandleUpdateItem(c *gin.Context)
	HandleDeleteItem(c *gin.Context)
}

type handlerImpl struct {
	logger zerolog.Logger
	lists  services.ListService
	items  services.ItemService
}

func New(
	logger zerolog.Logger,
	listService services.ListService,
	itemService services.ItemService,
) Handler {
	useJSONFieldNames()
	return &handlerImpl{
		logger: logger,
		lists:  listService,
		items:  itemService,
	}
}

// RegisterRoutes mounts the todo list API on router.
func RegisterRoutes(router gin.IRouter, h Handler) {
	router.GET("/health", h.HandleHealth)

	lists := router.Group("/lists")
	lists.GET("", h.HandleGetLists)
	lists.POST("", h.HandleCreateList)
	lists.GET("/:list_id", h.HandleGetList)
	lists.PUT("/:list_id", h.HandleUpdateList)
	lists.DELETE("/:list_id", h.HandleDeleteList)

	items := lists.Group("/:list_id/items")
	items.GET("", h.HandleGetItems)
	items.POST("", h.HandleCreateItem)
	items.GET("/:item_id", h.HandleGetItem)
	items.PUT("/:item_id", h.HandleUpdateItem)
	items.DELETE("/:item_id", h.HandleDeleteItem)
}
