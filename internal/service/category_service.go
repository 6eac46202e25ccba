package service

import (
	"github.com/minikart-next/minikart/internal/models"
	"github.com/minikart-next/minikart/internal/repository"
)

// CategoryService handles the catalog taxonomy.
type CategoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService creates a category service.
func NewCategoryService(repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// CategoryInput is the create/update payload.
type CategoryInput struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// List returns all categories.
func (s *CategoryService) List() ([]models.Category, error) {
	return s.repo.List()
}

// GetBySlug returns one category, nil when absent.
func (s *CategoryService) GetBySlug(slug string) (*models.Category, error) {
	category, err := s.repo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	return category, nil
}

// Create adds a category.
func (s *CategoryService) Create(input CategoryInput) (*models.Category, error) {
	name, slug, err := normalizeNameSlug(input.Name, input.Slug)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlugExists
	}

	category := models.Category{Name: name, Slug: slug}
	if err := s.repo.Create(&category); err != nil {
		return nil, err
	}
	return &category, nil
}

// Update renames a category.
func (s *CategoryService) Update(id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}

	name, slug, err := normalizeNameSlug(input.Name, input.Slug)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != category.ID {
		return nil, ErrSlugExists
	}

	category.Name = name
	category.Slug = slug
	if err := s.repo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category.
func (s *CategoryService) Delete(id uint) error {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}

func normalizeNameSlug(name, slug string) (string, string, error) {
	name = trimmed(name)
	if name == "" {
		return "", "", ErrMissingField
	}
	slug = trimmed(slug)
	if slug == "" {
		slug = Slugify(name)
	}
	if slug == "" {
		return "", "", ErrMissingField
	}
	return name, slug, nil
}
