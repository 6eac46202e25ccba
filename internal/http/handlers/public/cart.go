package public

import (
	"github.com/minikart-next/minikart/internal/cart"
	"github.com/minikart-next/minikart/internal/checkout"
	"github.com/minikart-next/minikart/internal/http/response"

	"github.com/gin-gonic/gin"
)

// cartView is the cart payload with its localized total.
type cartView struct {
	Items []cart.Item `json:"items"`
	Total string      `json:"total"`
}

func newCartView(items []cart.Item) cartView {
	return cartView{
		Items: items,
		Total: checkout.FormattedTotal(items),
	}
}

// GetCart returns the session's cart with its total.
func (h *Handler) GetCart(c *gin.Context) {
	session := sessionID(c)
	if session == "" {
		response.BadRequest(c, "session required")
		return
	}

	items, err := h.Checkout.Cart(c.Request.Context(), session)
	if err != nil {
		response.Internal(c, "cart fetch failed")
		return
	}
	response.Success(c, "success", newCartView(items))
}

type replaceCartRequest struct {
	Items []cart.Item `json:"items"`
}

// ReplaceCart swaps in the full next cart state.
func (h *Handler) ReplaceCart(c *gin.Context) {
	session := sessionID(c)
	if session == "" {
		response.BadRequest(c, "session required")
		return
	}

	var req replaceCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	items, err := h.Checkout.ReplaceCart(c.Request.Context(), session, req.Items)
	if err != nil {
		response.Internal(c, "cart update failed")
		return
	}
	response.Success(c, "cart updated", newCartView(items))
}

// RemoveCartItem filters one line out of the cart.
func (h *Handler) RemoveCartItem(c *gin.Context) {
	session := sessionID(c)
	if session == "" {
		response.BadRequest(c, "session required")
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid item id")
		return
	}

	items, err := h.Checkout.RemoveItem(c.Request.Context(), session, id)
	if err != nil {
		response.Internal(c, "cart update failed")
		return
	}
	response.Success(c, "item removed", newCartView(items))
}

type changeQuantityRequest struct {
	ID       uint `json:"id"`
	Quantity int  `json:"quantity"`
}

// ChangeCartQuantity updates one line's quantity, clamped to the line's
// available stock.
func (h *Handler) ChangeCartQuantity(c *gin.Context) {
	session := sessionID(c)
	if session == "" {
		response.BadRequest(c, "session required")
		return
	}

	var req changeQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == 0 {
		response.BadRequest(c, "invalid request body")
		return
	}

	current, err := h.Checkout.Cart(c.Request.Context(), session)
	if err != nil {
		response.Internal(c, "cart fetch failed")
		return
	}
	maxAvailable := 0
	for _, item := range current {
		if item.ID == req.ID {
			maxAvailable = item.Quantity
			break
		}
	}

	items, err := h.Checkout.ChangeQuantity(c.Request.Context(), session, req.ID, req.Quantity, maxAvailable)
	if err != nil {
		response.Internal(c, "cart update failed")
		return
	}
	response.Success(c, "quantity updated", newCartView(items))
}
