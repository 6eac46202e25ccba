package admin

import (
	"errors"
	"strconv"

	"github.com/minikart-next/minikart/internal/http/response"
	"github.com/minikart-next/minikart/internal/repository"
	"github.com/minikart-next/minikart/internal/service"

	"github.com/gin-gonic/gin"
)

// ListOrders returns a page of all orders.
func (h *Handler) ListOrders(c *gin.Context) {
	page, pageSize := parsePageQuery(c)
	buyerID, _ := strconv.ParseUint(c.Query("buyer_id"), 10, 64)

	orders, total, err := h.OrderService.ListAdmin(repository.OrderListFilter{
		Status:   c.Query("status"),
		BuyerID:  uint(buyerID),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		response.Internal(c, "order list failed")
		return
	}
	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus moves an order through its lifecycle.
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid order id")
		return
	}
	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	order, err := h.OrderService.UpdateStatus(id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			response.BadRequest(c, "unknown order status")
		case errors.Is(err, service.ErrNotFound):
			response.NotFound(c, "order not found")
		default:
			response.Internal(c, "order status update failed")
		}
		return
	}
	response.Success(c, "order status updated", gin.H{"order": order})
}
