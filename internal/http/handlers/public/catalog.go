package public

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/minikart-next/minikart/internal/http/response"
	"github.com/minikart-next/minikart/internal/repository"
	"github.com/minikart-next/minikart/internal/service"

	"github.com/gin-gonic/gin"
)

// ListProducts returns a storefront page of active products.
func (h *Handler) ListProducts(c *gin.Context) {
	page, pageSize := parsePageQuery(c)
	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 64)

	products, total, err := h.ProductService.List(repository.ProductListFilter{
		CategoryID: uint(categoryID),
		Keyword:    c.Query("keyword"),
		ActiveOnly: true,
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		response.Internal(c, "product list failed")
		return
	}
	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// GetProduct returns one product by slug.
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.ProductService.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "product not found")
			return
		}
		response.Internal(c, "product fetch failed")
		return
	}
	response.Success(c, "success", gin.H{"product": product})
}

// GetProductPhoto streams the stored photo blob with its content type.
func (h *Handler) GetProductPhoto(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid product id")
		return
	}

	photo, contentType, err := h.ProductService.GetPhoto(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "photo not found")
			return
		}
		response.Internal(c, "photo fetch failed")
		return
	}

	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, contentType, photo)
}

// ListCategories returns the catalog taxonomy.
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		response.Internal(c, "category list failed")
		return
	}
	response.Success(c, "success", gin.H{"categories": categories})
}
