package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adonay-express/orderflow/internal/domain/model"
	"github.com/adonay-express/orderflow/internal/server/http/dto"
)

// OrderHandler manages order lifecycle endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Submit handles POST /api/orders.
func (h *OrderHandler) Submit(c *gin.Context) {
	var req dto.SubmitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.SubmitOrder(c.Request.Context(), req.CustomerID, req.Nickname, toModelLines(req.Lines), req.StaffPlaced)
	if err != nil {
		c.Status(statusForError(err))
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

// Active handles GET /api/orders/active.
func (h *OrderHandler) Active(c *gin.Context) {
	orders := h.facade.ActiveOrders()

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, response)
}

// Archive handles GET /api/orders/archive.
func (h *OrderHandler) Archive(c *gin.Context) {
	groups := h.facade.ArchivedOrders()

	response := make([]dto.MonthGroupResponse, 0, len(groups))
	for _, g := range groups {
		orders := make([]dto.OrderResponse, 0, len(g.Orders))
		for _, o := range g.Orders {
			orders = append(orders, toOrderResponse(o))
		}
		response = append(response, dto.MonthGroupResponse{Label: g.Label, Orders: orders})
	}
	c.JSON(http.StatusOK, response)
}

// ChangeStatus handles PATCH /api/orders/:id/status.
func (h *OrderHandler) ChangeStatus(c *gin.Context) {
	var req dto.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	result, err := h.facade.ChangeOrderStatus(c.Request.Context(), c.Param("id"), model.OrderStatus(req.Status), req.Force)
	if err != nil {
		c.Status(statusForError(err))
		return
	}

	c.JSON(http.StatusOK, toTransitionResponse(result))
}

// ReviseLines handles PUT /api/orders/:id/lines.
func (h *OrderHandler) ReviseLines(c *gin.Context) {
	var req dto.ReviseLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.ReviseOrder(c.Request.Context(), c.Param("id"), toModelLines(req.Lines))
	if err != nil {
		c.Status(statusForError(err))
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Finalize handles POST /api/orders/:id/finalize.
func (h *OrderHandler) Finalize(c *gin.Context) {
	var req dto.ReviseLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	result, err := h.facade.FinalizeOrder(c.Request.Context(), c.Param("id"), toModelLines(req.Lines))
	if err != nil {
		c.Status(statusForError(err))
		return
	}

	c.JSON(http.StatusOK, toTransitionResponse(result))
}
