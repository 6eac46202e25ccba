package public

import (
	"errors"

	"github.com/minikart-next/minikart/internal/http/response"
	"github.com/minikart-next/minikart/internal/service"

	"github.com/gin-gonic/gin"
)

// ListOrders returns the buyer's order history.
func (h *Handler) ListOrders(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	page, pageSize := parsePageQuery(c)
	orders, total, err := h.OrderService.ListByBuyer(userID, page, pageSize)
	if err != nil {
		response.Internal(c, "order list failed")
		return
	}
	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// GetOrder returns one of the buyer's orders.
func (h *Handler) GetOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid order id")
		return
	}

	order, err := h.OrderService.GetByIDAndBuyer(id, userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "order not found")
			return
		}
		response.Internal(c, "order fetch failed")
		return
	}
	response.Success(c, "success", gin.H{"order": order})
}
