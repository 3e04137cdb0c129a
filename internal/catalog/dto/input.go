package dto

type CreateProductInput struct {
	Barcode  string
	Name     string
	Category string // Category name; empty means uncategorized
	Price    float64
	Cost     float64
	Stock    int
	Unit     string
}

type UpdateProductInput struct {
	ID       string
	Barcode  string
	Name     string
	Category string
	Price    float64
	Cost     float64
	Stock    int
	Unit     string
}

// ImportRow is one row supplied by the spreadsheet-parsing collaborator.
// Barcode is the natural key: rows matching an existing product update it
// in place, others create a new product.
type ImportRow struct {
	Barcode  string  `json:"barcode"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Cost     float64 `json:"cost"`
	Stock    int     `json:"stock"`
	Unit     string  `json:"unit"`
}
