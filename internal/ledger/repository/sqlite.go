package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"petstore-pos/internal/model"
	"petstore-pos/internal/store"
)

// orderSequence is the persisted counter backing order numbers.
const orderSequence = "order_number"

// OrderRepository stores orders as documents in the record store.
type OrderRepository struct {
	Store *store.Store
}

func NewOrderRepository(st *store.Store) *OrderRepository {
	return &OrderRepository{Store: st}
}

func (r *OrderRepository) Save(ctx context.Context, o *model.Order) error {
	doc, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}
	return r.Store.Put(ctx, store.Orders, o.ID, doc)
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	doc, err := r.Store.Get(ctx, store.Orders, id)
	if err != nil || doc == nil {
		return nil, err
	}
	return unmarshalOrder(doc)
}

func (r *OrderRepository) FindByNumber(ctx context.Context, number string) (*model.Order, error) {
	doc, err := r.Store.GetByIndex(ctx, store.Orders, "orderNumber", number)
	if err != nil || doc == nil {
		return nil, err
	}
	return unmarshalOrder(doc)
}

func (r *OrderRepository) FindAll(ctx context.Context) ([]model.Order, error) {
	docs, err := r.Store.GetAll(ctx, store.Orders)
	if err != nil {
		return nil, err
	}
	orders := make([]model.Order, 0, len(docs))
	for _, doc := range docs {
		o, err := unmarshalOrder(doc)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, nil
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	return r.Store.Delete(ctx, store.Orders, id)
}

func (r *OrderRepository) NextSequence(ctx context.Context) (int64, error) {
	return r.Store.NextSequence(ctx, orderSequence)
}

func (r *OrderRepository) PeekSequence(ctx context.Context) (int64, bool, error) {
	return r.Store.PeekSequence(ctx, orderSequence)
}

func (r *OrderRepository) SetSequence(ctx context.Context, value int64) error {
	return r.Store.SetSequence(ctx, orderSequence, value)
}

func unmarshalOrder(doc []byte) (*model.Order, error) {
	var o model.Order
	if err := json.Unmarshal(doc, &o); err != nil {
		return nil, fmt.Errorf("unmarshal order: %w", err)
	}
	return &o, nil
}
