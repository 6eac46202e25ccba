package service

import (
	"github.com/minikart-next/minikart/internal/models"
	"github.com/minikart-next/minikart/internal/repository"
)

// Product photos are stored inline; cap matches the original upload limit.
const maxPhotoBytes = 1 << 20

// ProductService handles the catalog.
type ProductService struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService creates a product service.
func NewProductService(repo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductService {
	return &ProductService{repo: repo, categoryRepo: categoryRepo}
}

// ProductInput is the admin create/update payload. Photo arrives separately
// as multipart bytes.
type ProductInput struct {
	CategoryID  uint         `json:"category_id"`
	Name        string       `json:"name"`
	Slug        string       `json:"slug"`
	Description string       `json:"description"`
	Price       models.Money `json:"price"`
	Quantity    int          `json:"quantity"`
	Shipping    bool         `json:"shipping"`
	IsActive    *bool        `json:"is_active"`
	Photo       []byte       `json:"-"`
	PhotoType   string       `json:"-"`
}

// List returns a storefront page of active products.
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.repo.List(filter)
}

// GetBySlug returns one product for the storefront.
func (s *ProductService) GetBySlug(slug string) (*models.Product, error) {
	product, err := s.repo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// GetByID returns one product.
func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// GetPhoto returns the stored photo blob with its content type.
func (s *ProductService) GetPhoto(id uint) ([]byte, string, error) {
	photo, contentType, err := s.repo.GetPhoto(id)
	if err != nil {
		return nil, "", err
	}
	if len(photo) == 0 {
		return nil, "", ErrNotFound
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return photo, contentType, nil
}

// Create adds a product.
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	name, slug, err := normalizeNameSlug(input.Name, input.Slug)
	if err != nil {
		return nil, err
	}
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlugExists
	}

	product := models.Product{
		CategoryID:  input.CategoryID,
		Name:        name,
		Slug:        slug,
		Description: input.Description,
		Price:       input.Price,
		Quantity:    input.Quantity,
		Photo:       input.Photo,
		PhotoType:   input.PhotoType,
		Shipping:    input.Shipping,
		IsActive:    true,
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if err := s.repo.Create(&product); err != nil {
		return nil, err
	}
	product.Photo = nil
	return &product, nil
}

// Update modifies a product. A nil Photo leaves the stored blob alone.
func (s *ProductService) Update(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}

	name, slug, err := normalizeNameSlug(input.Name, input.Slug)
	if err != nil {
		return nil, err
	}
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != product.ID {
		return nil, ErrSlugExists
	}

	product.CategoryID = input.CategoryID
	product.Name = name
	product.Slug = slug
	product.Description = input.Description
	product.Price = input.Price
	product.Quantity = input.Quantity
	product.Shipping = input.Shipping
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if len(input.Photo) > 0 {
		product.Photo = input.Photo
		product.PhotoType = input.PhotoType
	}

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	product.Photo = nil
	return product, nil
}

// Delete removes a product.
func (s *ProductService) Delete(id uint) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}

func (s *ProductService) validateInput(input ProductInput) error {
	if input.Price.Decimal.IsNegative() || input.Quantity < 0 {
		return ErrMissingField
	}
	if len(input.Photo) > maxPhotoBytes {
		return ErrPhotoTooLarge
	}
	if input.CategoryID != 0 {
		category, err := s.categoryRepo.GetByID(input.CategoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return ErrNotFound
		}
	}
	return nil
}
