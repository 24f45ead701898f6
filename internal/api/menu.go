package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/smartcanteen/backend/internal/recommend"
	"github.com/pageza/smartcanteen/backend/internal/service"
	"github.com/pageza/smartcanteen/backend/internal/types"
)

// MenuHandler serves the personalised menu and ordering.
type MenuHandler struct {
	menu   service.IMenuService
	orders service.IOrderService
}

func NewMenuHandler(menu service.IMenuService, orders service.IOrderService) *MenuHandler {
	return &MenuHandler{menu: menu, orders: orders}
}

func (h *MenuHandler) RegisterRoutes(router *gin.RouterGroup) {
	menu := router.Group("/menu")
	{
		menu.GET("/intelligent", h.GetIntelligentMenu)
		menu.GET("/items/:id/alternatives", h.GetAlternatives)
		menu.POST("/order", h.CreateOrder)
		menu.GET("/history", h.GetHistory)
	}
}

func (h *MenuHandler) GetIntelligentMenu(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var q types.MenuQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu filter", "details": err.Error()})
		return
	}

	filter := recommend.MenuFilter{Tag: q.Tag, Limit: q.Limit, SortByScore: q.Sort == "score"}
	if q.MaxRisk != nil {
		level := types.RiskLevel(*q.MaxRisk)
		filter.MaxRisk = &level
	}

	items, err := h.menu.Menu(c.Request.Context(), userID, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *MenuHandler) GetAlternatives(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || itemID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil || limit < 1 || limit > 20 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 20"})
			return
		}
	}

	items, err := h.menu.Alternatives(c.Request.Context(), userID, uint(itemID), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *MenuHandler) CreateOrder(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req types.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	order, err := h.orders.CreateOrder(c.Request.Context(), userID, req.ItemIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *MenuHandler) GetHistory(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	orders, err := h.orders.History(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}
