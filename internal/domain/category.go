package domain

// Category represents a named grouping of products.
// The products that belong to a category are looked up by category_id at query
// time and are never embedded here.
type Category struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
