package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"produtos-api/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

const productCategoryFK = "fk_products_category"

// StockFilter selects products by availability
type StockFilter int

const (
	StockAny StockFilter = iota
	StockAvailable
	StockSoldOut
)

// ProductFilter narrows a product listing. Zero values leave a dimension unfiltered.
type ProductFilter struct {
	CategoryID *int64
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Stock      StockFilter
}

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*domain.ProductDetails, error)
	List(ctx context.Context, filter ProductFilter) ([]*domain.ProductDetails, error)
}

type productRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sqlx.DB) ProductRepository {
	return &productRepository{db: db}
}

const selectProductDetails = `
	SELECT p.id, p.name, p.price, p.quantity, p.category_id, c.name AS category_name
	FROM products p
	JOIN categories c ON c.id = p.category_id
`

// Create inserts a new product and stores the generated id on product.
// A category_id without a matching category yields ErrCategoryNotFound.
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (name, price, quantity, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRowxContext(
		ctx,
		query,
		product.Name,
		product.Price,
		product.Quantity,
		product.CategoryID,
	).Scan(&product.ID)

	if err != nil {
		if isForeignKeyViolation(err, productCategoryFK) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// Update overwrites every mutable column of an existing product
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET name = $2, price = $3, quantity = $4, category_id = $5
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Price,
		product.Quantity,
		product.CategoryID,
	)

	if err != nil {
		if isForeignKeyViolation(err, productCategoryFK) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete removes a product
func (r *productRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM products WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// FindByID retrieves a product joined with its category name
func (r *productRepository) FindByID(ctx context.Context, id int64) (*domain.ProductDetails, error) {
	query := selectProductDetails + `WHERE p.id = $1`

	product := &domain.ProductDetails{}
	if err := r.db.GetContext(ctx, product, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// List retrieves products matching filter, joined with their category names
func (r *productRepository) List(ctx context.Context, filter ProductFilter) ([]*domain.ProductDetails, error) {
	conditions := []string{}
	args := []interface{}{}

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		conditions = append(conditions, fmt.Sprintf("p.category_id = $%d", len(args)))
	}
	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		conditions = append(conditions, fmt.Sprintf("p.price >= $%d", len(args)))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		conditions = append(conditions, fmt.Sprintf("p.price <= $%d", len(args)))
	}

	switch filter.Stock {
	case StockAvailable:
		conditions = append(conditions, "p.quantity > 0")
	case StockSoldOut:
		conditions = append(conditions, "p.quantity = 0")
	}

	query := selectProductDetails
	if len(conditions) > 0 {
		query += "WHERE " + strings.Join(conditions, " AND ") + "\n"
	}
	query += "ORDER BY p.id ASC"

	products := []*domain.ProductDetails{}
	if err := r.db.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}
