package service

import (
	"context"
	"errors"
	"strings"

	"produtos-api/internal/apperror"
	"produtos-api/internal/domain"
	"produtos-api/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductInput carries the writable fields of a product
type ProductInput struct {
	Name       string
	Price      decimal.Decimal
	Quantity   int
	CategoryID int64
}

// ProductService defines the business operations over products.
// Every listing reports an empty result as a not-found error.
type ProductService interface {
	ListProducts(ctx context.Context) ([]*domain.ProductDetails, error)
	GetProduct(ctx context.Context, id int64) (*domain.ProductDetails, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]*domain.ProductDetails, error)
	ListByMinPrice(ctx context.Context, value decimal.Decimal) ([]*domain.ProductDetails, error)
	ListByMaxPrice(ctx context.Context, value decimal.Decimal) ([]*domain.ProductDetails, error)
	ListInStock(ctx context.Context) ([]*domain.ProductDetails, error)
	ListOutOfStock(ctx context.Context) ([]*domain.ProductDetails, error)
	CreateProduct(ctx context.Context, input ProductInput) (*domain.ProductDetails, error)
	UpdateProduct(ctx context.Context, id int64, input ProductInput) (*domain.ProductDetails, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService creates a new instance of ProductService
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *productService) ListProducts(ctx context.Context) ([]*domain.ProductDetails, error) {
	return s.list(ctx, repository.ProductFilter{}, "no products found")
}

func (s *productService) GetProduct(ctx context.Context, id int64) (*domain.ProductDetails, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, productNotFound(id)
		}
		return nil, apperror.Store(err, "failed to find product")
	}
	return product, nil
}

// ListByCategory fails with not-found when the category itself is unknown
func (s *productService) ListByCategory(ctx context.Context, categoryID int64) ([]*domain.ProductDetails, error) {
	category, err := findCategory(ctx, s.categoryRepo, categoryID)
	if err != nil {
		return nil, err
	}

	return s.list(ctx,
		repository.ProductFilter{CategoryID: &category.ID},
		"no products found in category "+category.Name,
	)
}

// ListByMinPrice returns products priced at or above value
func (s *productService) ListByMinPrice(ctx context.Context, value decimal.Decimal) ([]*domain.ProductDetails, error) {
	if err := validatePrice("minimum price", value); err != nil {
		return nil, err
	}
	return s.list(ctx,
		repository.ProductFilter{MinPrice: &value},
		"no products priced at or above "+value.String(),
	)
}

// ListByMaxPrice returns products priced at or below value
func (s *productService) ListByMaxPrice(ctx context.Context, value decimal.Decimal) ([]*domain.ProductDetails, error) {
	if err := validatePrice("maximum price", value); err != nil {
		return nil, err
	}
	return s.list(ctx,
		repository.ProductFilter{MaxPrice: &value},
		"no products priced at or below "+value.String(),
	)
}

func (s *productService) ListInStock(ctx context.Context) ([]*domain.ProductDetails, error) {
	return s.list(ctx, repository.ProductFilter{Stock: repository.StockAvailable}, "no products in stock")
}

func (s *productService) ListOutOfStock(ctx context.Context) ([]*domain.ProductDetails, error) {
	return s.list(ctx, repository.ProductFilter{Stock: repository.StockSoldOut}, "no products out of stock")
}

// CreateProduct validates input, checks the category exists and inserts the product
func (s *productService) CreateProduct(ctx context.Context, input ProductInput) (*domain.ProductDetails, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	category, err := findCategory(ctx, s.categoryRepo, input.CategoryID)
	if err != nil {
		return nil, err
	}

	product := &domain.Product{
		Name:       strings.TrimSpace(input.Name),
		Price:      input.Price,
		Quantity:   input.Quantity,
		CategoryID: category.ID,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, categoryNotFound(input.CategoryID)
		}
		return nil, apperror.Store(err, "failed to create product")
	}

	return &domain.ProductDetails{Product: *product, CategoryName: category.Name}, nil
}

// UpdateProduct overwrites all writable fields of an existing product
func (s *productService) UpdateProduct(ctx context.Context, id int64, input ProductInput) (*domain.ProductDetails, error) {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return nil, err
	}

	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	category, err := findCategory(ctx, s.categoryRepo, input.CategoryID)
	if err != nil {
		return nil, err
	}

	product := &domain.Product{
		ID:         id,
		Name:       strings.TrimSpace(input.Name),
		Price:      input.Price,
		Quantity:   input.Quantity,
		CategoryID: category.ID,
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			return nil, productNotFound(id)
		case errors.Is(err, repository.ErrCategoryNotFound):
			return nil, categoryNotFound(input.CategoryID)
		}
		return nil, apperror.Store(err, "failed to update product")
	}

	return &domain.ProductDetails{Product: *product, CategoryName: category.Name}, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return productNotFound(id)
		}
		return apperror.Store(err, "failed to delete product")
	}
	return nil
}

func (s *productService) list(ctx context.Context, filter repository.ProductFilter, emptyMessage string) ([]*domain.ProductDetails, error) {
	products, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, apperror.Store(err, "failed to list products")
	}
	if len(products) == 0 {
		return nil, apperror.NotFound("%s", emptyMessage)
	}
	return products, nil
}

func validateProductInput(input ProductInput) error {
	if err := validateName("product", input.Name); err != nil {
		return err
	}
	if err := validateStoredPrice("price", input.Price); err != nil {
		return err
	}
	return validateQuantity(input.Quantity)
}

func productNotFound(id int64) error {
	return apperror.NotFound("product with id %d does not exist", id)
}
