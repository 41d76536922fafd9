package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	domain "github.com/aq2208/oms-api/internal/entity"
)

const idemScope = "orders"

type CreateOrderInput struct {
	CustomerID     int64
	OrderDate      string
	Address        string
	Items          []ItemInput
	IdempotencyKey string // optional; empty disables the idempotency path
}

type CreateOrder struct {
	orders    OrderRepo
	customers CustomerRepo
	products  ProductRepo
	idem      IdempotencyStore
	now       func() time.Time
}

func NewCreateOrder(orders OrderRepo, customers CustomerRepo, products ProductRepo, idem IdempotencyStore) *CreateOrder {
	return &CreateOrder{
		orders:    orders,
		customers: customers,
		products:  products,
		idem:      idem,
		now:       time.Now,
	}
}

func (uc *CreateOrder) Execute(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	// Fast path: idempotency recall. A store failure surfaces as-is; it must
	// never be mistaken for a duplicate request.
	if in.IdempotencyKey != "" {
		id, ok, err := uc.idem.Recall(ctx, idemScope, in.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if ok {
			orderID, err := strconv.ParseInt(id, 10, 64)
			if err != nil {
				return nil, ErrDuplicate
			}
			return uc.orders.GetByID(ctx, orderID)
		}
	}

	orderDate, err := ParseOrderDate(in.OrderDate)
	if err != nil {
		return nil, err
	}
	if ferr := validateOrderDate(orderDate, uc.now()); ferr != nil {
		return nil, ferr
	}

	if _, err := uc.customers.GetByID(ctx, in.CustomerID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, FieldErrors{"customer": fmt.Sprintf("Customer %d not found.", in.CustomerID)}
		}
		return nil, err
	}

	products, err := resolveProducts(ctx, uc.products, in.Items)
	if err != nil {
		return nil, err
	}
	if ferr := validateOrderItems(in.Items, products, true); ferr != nil {
		return nil, ferr
	}

	// Lock only after validation passed, so a rejected request does not burn
	// the caller's key.
	if in.IdempotencyKey != "" {
		ok, err := uc.idem.TryLock(ctx, idemScope, in.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrDuplicate
		}
	}

	o := &domain.Order{
		CustomerID: in.CustomerID,
		OrderDate:  orderDate,
		Address:    in.Address,
		Items:      toOrderItems(in.Items),
	}
	if err := uc.orders.Create(ctx, o, newOrderEvent(RKOrderCreated)); err != nil {
		// Nothing was persisted; release the key so a retry can go through
		// instead of hitting a duplicate for the whole lock TTL.
		if in.IdempotencyKey != "" {
			_ = uc.idem.Unlock(ctx, idemScope, in.IdempotencyKey)
		}
		return nil, err
	}

	if in.IdempotencyKey != "" {
		_ = uc.idem.Remember(ctx, idemScope, in.IdempotencyKey, strconv.FormatInt(o.ID, 10))
	}
	return o, nil
}

func toOrderItems(items []ItemInput) []domain.OrderItem {
	out := make([]domain.OrderItem, len(items))
	for i, it := range items {
		out[i] = domain.OrderItem{ProductID: it.ProductID, Quantity: it.Quantity}
	}
	return out
}

// resolveProducts loads every referenced product, rejecting unknown ids with
// a field error on the item list.
func resolveProducts(ctx context.Context, repo ProductRepo, items []ItemInput) (map[int64]domain.Product, error) {
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	products, err := repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if _, ok := products[it.ProductID]; !ok {
			return nil, FieldErrors{"order_item": fmt.Sprintf("Product %d not found.", it.ProductID)}
		}
	}
	return products, nil
}
