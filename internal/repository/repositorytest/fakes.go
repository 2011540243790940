// Package repositorytest provides in-memory repositories for tests above the
// storage layer.
package repositorytest

import (
	"context"
	"errors"

	"produtos-api/internal/domain"
	"produtos-api/internal/repository"
)

// ErrStoreDown is a stand-in for a driver failure
var ErrStoreDown = errors.New("connection refused")

var (
	_ repository.CategoryRepository = (*CategoryRepository)(nil)
	_ repository.ProductRepository  = (*ProductRepository)(nil)
)

// CategoryRepository keeps categories in a map. Err, when set, is returned by every call.
type CategoryRepository struct {
	Categories map[int64]*domain.Category
	Err        error
	nextID     int64
}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{Categories: make(map[int64]*domain.Category)}
}

func (m *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	if m.Err != nil {
		return m.Err
	}
	m.nextID++
	category.ID = m.nextID
	stored := *category
	m.Categories[category.ID] = &stored
	return nil
}

func (m *CategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Categories[category.ID]; !ok {
		return repository.ErrCategoryNotFound
	}
	stored := *category
	m.Categories[category.ID] = &stored
	return nil
}

func (m *CategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	categories := []*domain.Category{}
	for id := int64(1); id <= m.nextID; id++ {
		if c, ok := m.Categories[id]; ok {
			copied := *c
			categories = append(categories, &copied)
		}
	}
	return categories, nil
}

func (m *CategoryRepository) FindByID(ctx context.Context, id int64) (*domain.Category, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	c, ok := m.Categories[id]
	if !ok {
		return nil, repository.ErrCategoryNotFound
	}
	copied := *c
	return &copied, nil
}

// ProductRepository keeps products in a map and resolves category names and
// foreign keys through the CategoryRepository it was built with.
type ProductRepository struct {
	Products   map[int64]*domain.Product
	Err        error
	categories *CategoryRepository
	nextID     int64
}

func NewProductRepository(categories *CategoryRepository) *ProductRepository {
	return &ProductRepository{
		Products:   make(map[int64]*domain.Product),
		categories: categories,
	}
}

func (m *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.categories.Categories[product.CategoryID]; !ok {
		return repository.ErrCategoryNotFound
	}
	m.nextID++
	product.ID = m.nextID
	stored := *product
	m.Products[product.ID] = &stored
	return nil
}

func (m *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Products[product.ID]; !ok {
		return repository.ErrProductNotFound
	}
	if _, ok := m.categories.Categories[product.CategoryID]; !ok {
		return repository.ErrCategoryNotFound
	}
	stored := *product
	m.Products[product.ID] = &stored
	return nil
}

func (m *ProductRepository) Delete(ctx context.Context, id int64) error {
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(m.Products, id)
	return nil
}

func (m *ProductRepository) FindByID(ctx context.Context, id int64) (*domain.ProductDetails, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.Products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return m.details(p), nil
}

func (m *ProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]*domain.ProductDetails, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	products := []*domain.ProductDetails{}
	for id := int64(1); id <= m.nextID; id++ {
		p, ok := m.Products[id]
		if !ok {
			continue
		}
		if filter.CategoryID != nil && p.CategoryID != *filter.CategoryID {
			continue
		}
		if filter.MinPrice != nil && p.Price.LessThan(*filter.MinPrice) {
			continue
		}
		if filter.MaxPrice != nil && p.Price.GreaterThan(*filter.MaxPrice) {
			continue
		}
		if filter.Stock == repository.StockAvailable && p.Quantity == 0 {
			continue
		}
		if filter.Stock == repository.StockSoldOut && p.Quantity != 0 {
			continue
		}
		products = append(products, m.details(p))
	}
	return products, nil
}

func (m *ProductRepository) details(p *domain.Product) *domain.ProductDetails {
	details := &domain.ProductDetails{Product: *p}
	if c, ok := m.categories.Categories[p.CategoryID]; ok {
		details.CategoryName = c.Name
	}
	return details
}
