package service

import (
	"context"
	"errors"
	"strings"

	"produtos-api/internal/apperror"
	"produtos-api/internal/domain"
	"produtos-api/internal/repository"
)

// CategoryService defines the business operations over categories
type CategoryService interface {
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	GetCategory(ctx context.Context, id int64) (*domain.Category, error)
	CreateCategory(ctx context.Context, name string) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id int64, name string) (*domain.Category, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new instance of CategoryService
func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

// ListCategories returns every category. An empty slice means the store holds none.
func (s *categoryService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, apperror.Store(err, "failed to list categories")
	}
	return categories, nil
}

func (s *categoryService) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	return findCategory(ctx, s.categoryRepo, id)
}

func (s *categoryService) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	if err := validateName("category", name); err != nil {
		return nil, err
	}

	category := &domain.Category{Name: strings.TrimSpace(name)}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, apperror.Store(err, "failed to create category")
	}

	return category, nil
}

// UpdateCategory renames an existing category
func (s *categoryService) UpdateCategory(ctx context.Context, id int64, name string) (*domain.Category, error) {
	category, err := findCategory(ctx, s.categoryRepo, id)
	if err != nil {
		return nil, err
	}

	if err := validateName("category", name); err != nil {
		return nil, err
	}

	category.Name = strings.TrimSpace(name)
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, categoryNotFound(id)
		}
		return nil, apperror.Store(err, "failed to update category")
	}

	return category, nil
}

// findCategory is shared with the product service for foreign key checks.
func findCategory(ctx context.Context, repo repository.CategoryRepository, id int64) (*domain.Category, error) {
	category, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, categoryNotFound(id)
		}
		return nil, apperror.Store(err, "failed to find category")
	}
	return category, nil
}

func categoryNotFound(id int64) error {
	return apperror.NotFound("category with id %d does not exist", id)
}
