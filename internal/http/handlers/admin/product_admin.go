package admin

import (
	"errors"
	"io"
	"strconv"

	"github.com/minikart-next/minikart/internal/http/response"
	"github.com/minikart-next/minikart/internal/models"
	"github.com/minikart-next/minikart/internal/repository"
	"github.com/minikart-next/minikart/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ListProducts returns a page of products, inactive ones included.
func (h *Handler) ListProducts(c *gin.Context) {
	page, pageSize := parsePageQuery(c)
	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 64)

	products, total, err := h.ProductService.List(repository.ProductListFilter{
		CategoryID: uint(categoryID),
		Keyword:    c.Query("keyword"),
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		response.Internal(c, "product list failed")
		return
	}
	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// CreateProduct adds a product. The form arrives as multipart so the photo
// can ride along with the fields.
func (h *Handler) CreateProduct(c *gin.Context) {
	input, err := bindProductForm(c)
	if err != nil {
		response.BadRequest(c, "invalid product form")
		return
	}

	product, err := h.ProductService.Create(*input)
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.Created(c, "product created successfully", gin.H{"product": product})
}

// UpdateProduct modifies a product.
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid product id")
		return
	}
	input, err := bindProductForm(c)
	if err != nil {
		response.BadRequest(c, "invalid product form")
		return
	}

	product, err := h.ProductService.Update(id, *input)
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, "product updated successfully", gin.H{"product": product})
}

// DeleteProduct removes a product.
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid product id")
		return
	}
	if err := h.ProductService.Delete(id); err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, "product deleted successfully", nil)
}

func bindProductForm(c *gin.Context) (*service.ProductInput, error) {
	price, err := decimal.NewFromString(c.DefaultPostForm("price", "0"))
	if err != nil {
		return nil, err
	}
	quantity, err := strconv.Atoi(c.DefaultPostForm("quantity", "0"))
	if err != nil {
		return nil, err
	}
	categoryID, _ := strconv.ParseUint(c.PostForm("category_id"), 10, 64)
	shipping := c.PostForm("shipping") == "1" || c.PostForm("shipping") == "true"

	input := &service.ProductInput{
		CategoryID:  uint(categoryID),
		Name:        c.PostForm("name"),
		Slug:        c.PostForm("slug"),
		Description: c.PostForm("description"),
		Price:       models.NewMoneyFromDecimal(price),
		Quantity:    quantity,
		Shipping:    shipping,
	}
	if raw, ok := c.GetPostForm("is_active"); ok {
		active := raw == "1" || raw == "true"
		input.IsActive = &active
	}

	if file, err := c.FormFile("photo"); err == nil {
		opened, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer opened.Close()
		photo, err := io.ReadAll(opened)
		if err != nil {
			return nil, err
		}
		input.Photo = photo
		input.PhotoType = file.Header.Get("Content-Type")
	}
	return input, nil
}

func respondProductError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMissingField):
		response.BadRequest(c, "name, non-negative price and quantity are required")
	case errors.Is(err, service.ErrPhotoTooLarge):
		response.BadRequest(c, "photo should be less than 1mb")
	case errors.Is(err, service.ErrSlugExists):
		response.Conflict(c, "slug already in use")
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, "product or category not found")
	default:
		response.Internal(c, "product operation failed")
	}
}
