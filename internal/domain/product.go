package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// MaxPrice is the largest price accepted for a product and for price filters.
var MaxPrice = decimal.New(1, 16)

const (
	// PriceScale is the number of decimal places a stored price keeps.
	PriceScale = 2

	// MaxQuantity is the largest stock level the products table can hold.
	MaxQuantity = math.MaxInt32

	// MaxNameLength bounds category and product names, counted in characters.
	MaxNameLength = 255
)

func init() {
	// Prices travel as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product represents a sellable item in the catalog
type Product struct {
	ID         int64           `json:"id" db:"id"`
	Name       string          `json:"name" db:"name"`
	Price      decimal.Decimal `json:"price" db:"price"`
	Quantity   int             `json:"quantity" db:"quantity"`
	CategoryID int64           `json:"category_id" db:"category_id"`
}

// InStock reports whether at least one unit is available.
func (p *Product) InStock() bool {
	return p.Quantity > 0
}

// ProductDetails is a product joined with the name of its category
type ProductDetails struct {
	Product
	CategoryName string `json:"category_name" db:"category_name"`
}
