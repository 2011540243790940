package transport

import (
	"produtos-api/internal/domain"

	"github.com/shopspring/decimal"
)

// CategoryRequest is the body accepted when creating or renaming a category
type CategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

// CategoryResponse is the public shape of a category
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ProductRequest is the body accepted when creating or replacing a product.
// Pointers distinguish an absent field from its zero value.
type ProductRequest struct {
	Name       string           `json:"name" validate:"required"`
	Price      *decimal.Decimal `json:"price" validate:"required"`
	Quantity   *int             `json:"quantity" validate:"required,gte=0,lte=2147483647"`
	CategoryID *int64           `json:"category_id" validate:"required"`
}

// ProductResponse is the public shape of a product, enriched with its category name
type ProductResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	CategoryID   int64           `json:"category_id"`
	CategoryName string          `json:"category_name"`
}

func toCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name}
}

func toCategoryResponses(categories []*domain.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		out[i] = toCategoryResponse(c)
	}
	return out
}

func toProductResponse(p *domain.ProductDetails) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.Price,
		Quantity:     p.Quantity,
		CategoryID:   p.CategoryID,
		CategoryName: p.CategoryName,
	}
}

func toProductResponses(products []*domain.ProductDetails) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	return out
}
