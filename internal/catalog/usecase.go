package catalog

import (
	"context"

	"petstore-pos/internal/catalog/dto"
	"petstore-pos/internal/model"
)

type UseCase interface {
	AddProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	GetProductByBarcode(ctx context.Context, barcode string) (*model.Product, error)
	GetAllProducts(ctx context.Context) ([]model.Product, error)
	SearchProducts(ctx context.Context, query string) ([]model.Product, error)
	LowStockProducts(ctx context.Context, threshold int) ([]model.Product, error)

	// ImportProducts upserts partial product rows by barcode, creating
	// unseen categories on the fly. Bad rows are skipped, not fatal.
	ImportProducts(ctx context.Context, rows []dto.ImportRow) (*dto.ImportReport, error)

	AddCategory(ctx context.Context, name string) (*model.Category, error)
	GetAllCategories(ctx context.Context) ([]model.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}
