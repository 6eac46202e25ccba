package public

import (
	"errors"

	"github.com/minikart-next/minikart/internal/cart"
	"github.com/minikart-next/minikart/internal/checkout"
	"github.com/minikart-next/minikart/internal/http/response"

	"github.com/gin-gonic/gin"
)

type paymentRequest struct {
	Cart []cart.Item `json:"cart"`
}

// BraintreeToken hands the storefront a gateway client token for the
// payment form.
func (h *Handler) BraintreeToken(c *gin.Context) {
	token, err := h.Gateway.ClientToken(c.Request.Context())
	if err != nil {
		response.Internal(c, "gateway token failed")
		return
	}
	response.Success(c, "success", gin.H{"client_token": token})
}

// BraintreePayment runs the guarded checkout submission: authenticated
// buyer with an address, non-empty cart, one submission at a time. The
// client may post its cart in the body; when it does, that cart replaces
// the stored one before the charge. On success the cart is cleared and the
// order returned; on failure the cart is left untouched.
func (h *Handler) BraintreePayment(c *gin.Context) {
	userID, _ := getUserID(c)
	session := sessionID(c)

	var req paymentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "invalid request body")
			return
		}
	}
	if len(req.Cart) > 0 {
		if _, err := h.Checkout.ReplaceCart(c.Request.Context(), session, req.Cart); err != nil {
			response.Internal(c, "cart unavailable")
			return
		}
	}

	order, err := h.Checkout.Submit(c.Request.Context(), session, userID)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrNotAuthenticated):
			response.Unauthorized(c, "please login to checkout")
		case errors.Is(err, checkout.ErrNoAddress):
			response.BadRequest(c, "please add a delivery address")
		case errors.Is(err, checkout.ErrEmptyCart):
			response.BadRequest(c, "your cart is empty")
		case errors.Is(err, checkout.ErrSubmitInFlight):
			response.Conflict(c, "payment already in progress")
		default:
			response.Internal(c, "payment failed")
		}
		return
	}

	response.Success(c, "payment completed successfully", gin.H{"order": order})
}

// CheckoutLoading reports whether a submission is in flight for the
// session.
func (h *Handler) CheckoutLoading(c *gin.Context) {
	session := sessionID(c)
	if session == "" {
		response.BadRequest(c, "session required")
		return
	}
	response.Success(c, "success", gin.H{"loading": h.Checkout.Loading(session)})
}
