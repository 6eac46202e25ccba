package admin

import (
	"errors"

	"github.com/minikart-next/minikart/internal/http/response"
	"github.com/minikart-next/minikart/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateCategory adds a category.
func (h *Handler) CreateCategory(c *gin.Context) {
	var input service.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	category, err := h.CategoryService.Create(input)
	if err != nil {
		respondCategoryError(c, err)
		return
	}
	response.Created(c, "category created successfully", gin.H{"category": category})
}

// UpdateCategory renames a category.
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid category id")
		return
	}
	var input service.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	category, err := h.CategoryService.Update(id, input)
	if err != nil {
		respondCategoryError(c, err)
		return
	}
	response.Success(c, "category updated successfully", gin.H{"category": category})
}

// DeleteCategory removes a category.
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid category id")
		return
	}
	if err := h.CategoryService.Delete(id); err != nil {
		respondCategoryError(c, err)
		return
	}
	response.Success(c, "category deleted successfully", nil)
}

func respondCategoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMissingField):
		response.BadRequest(c, "name is required")
	case errors.Is(err, service.ErrSlugExists):
		response.Conflict(c, "slug already in use")
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, "category not found")
	default:
		response.Internal(c, "category operation failed")
	}
}
