package model

import "time"

// Product is a catalog entry. Category holds a category *name*, not an id;
// it is resolved against the categories collection at render time only.
type Product struct {
	ID        string     `json:"id"`
	Barcode   string     `json:"barcode"`
	Name      string     `json:"name"`
	Category  *string    `json:"category"` // Nullable
	Price     float64    `json:"price"`
	Cost      float64    `json:"cost"`
	Stock     int        `json:"stock"`
	Unit      string     `json:"unit"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// CategoryName returns the category name or "" when unset.
func (p *Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return *p.Category
}
