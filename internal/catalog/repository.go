package catalog

import (
	"context"

	"petstore-pos/internal/model"
)

// ProductRepository persists products. Save is insert-or-replace by id;
// existence checks belong to callers. Finds return (nil, nil) on absence.
type ProductRepository interface {
	Save(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindByBarcode(ctx context.Context, barcode string) (*model.Product, error)
	FindAll(ctx context.Context) ([]model.Product, error)
	Delete(ctx context.Context, id string) error
}

// CategoryRepository persists categories. Name is a soft reference target
// for Product.Category; no uniqueness is enforced at the store level.
type CategoryRepository interface {
	Save(ctx context.Context, c *model.Category) error
	FindByID(ctx context.Context, id string) (*model.Category, error)
	FindByName(ctx context.Context, name string) (*model.Category, error)
	FindAll(ctx context.Context) ([]model.Category, error)
	Delete(ctx context.Context, id string) error
}
