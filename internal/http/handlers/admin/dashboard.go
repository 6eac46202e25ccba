package admin

import (
	"errors"

	"github.com/minikart-next/minikart/internal/http/response"
	"github.com/minikart-next/minikart/internal/service"

	"github.com/gin-gonic/gin"
)

// Dashboard returns the admin landing page payload: the signed-in admin's
// contact card and the storefront counters.
func (h *Handler) Dashboard(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	profile, counters, err := h.DashboardService.Overview(adminID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.Unauthorized(c, "authentication required")
			return
		}
		response.Internal(c, "dashboard fetch failed")
		return
	}

	response.Success(c, "success", gin.H{
		"admin":    profile,
		"counters": counters,
	})
}

// ListUsers returns a page of registered users.
func (h *Handler) ListUsers(c *gin.Context) {
	page, pageSize := parsePageQuery(c)
	users, total, err := h.UserRepo.List(repositoryUserFilter(c, page, pageSize))
	if err != nil {
		response.Internal(c, "user list failed")
		return
	}
	response.SuccessWithPage(c, users, response.NewPagination(page, pageSize, total))
}
