package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"petstore-pos/internal/model"
	"petstore-pos/internal/store"
)

// ProductRepository stores products as documents in the record store.
type ProductRepository struct {
	Store *store.Store
}

func NewProductRepository(st *store.Store) *ProductRepository {
	return &ProductRepository{Store: st}
}

func (r *ProductRepository) Save(ctx context.Context, p *model.Product) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal product: %w", err)
	}
	return r.Store.Put(ctx, store.Products, p.ID, doc)
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	doc, err := r.Store.Get(ctx, store.Products, id)
	if err != nil || doc == nil {
		return nil, err
	}
	return unmarshalProduct(doc)
}

func (r *ProductRepository) FindByBarcode(ctx context.Context, barcode string) (*model.Product, error) {
	doc, err := r.Store.GetByIndex(ctx, store.Products, "barcode", barcode)
	if err != nil || doc == nil {
		return nil, err
	}
	return unmarshalProduct(doc)
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]model.Product, error) {
	docs, err := r.Store.GetAll(ctx, store.Products)
	if err != nil {
		return nil, err
	}
	products := make([]model.Product, 0, len(docs))
	for _, doc := range docs {
		p, err := unmarshalProduct(doc)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	return r.Store.Delete(ctx, store.Products, id)
}

func unmarshalProduct(doc []byte) (*model.Product, error) {
	var p model.Product
	if err := json.Unmarshal(doc, &p); err != nil {
		return nil, fmt.Errorf("unmarshal product: %w", err)
	}
	return &p, nil
}

// CategoryRepository stores categories as documents in the record store.
type CategoryRepository struct {
	Store *store.Store
}

func NewCategoryRepository(st *store.Store) *CategoryRepository {
	return &CategoryRepository{Store: st}
}

func (r *CategoryRepository) Save(ctx context.Context, c *model.Category) error {
	doc, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal category: %w", err)
	}
	return r.Store.Put(ctx, store.Categories, c.ID, doc)
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*model.Category, error) {
	doc, err := r.Store.Get(ctx, store.Categories, id)
	if err != nil || doc == nil {
		return nil, err
	}
	return unmarshalCategory(doc)
}

// FindByName scans the collection; categories have no secondary index and
// the collection is small.
func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*model.Category, error) {
	all, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].Name == name {
			return &all[i], nil
		}
	}
	return nil, nil
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]model.Category, error) {
	docs, err := r.Store.GetAll(ctx, store.Categories)
	if err != nil {
		return nil, err
	}
	categories := make([]model.Category, 0, len(docs))
	for _, doc := range docs {
		c, err := unmarshalCategory(doc)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *c)
	}
	return categories, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	return r.Store.Delete(ctx, store.Categories, id)
}

func unmarshalCategory(doc []byte) (*model.Category, error) {
	var c model.Category
	if err := json.Unmarshal(doc, &c); err != nil {
		return nil, fmt.Errorf("unmarshal category: %w", err)
	}
	return &c, nil
}
