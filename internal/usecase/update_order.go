package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/aq2208/oms-api/internal/entity"
)

// UpdateOrderInput carries a partial update: nil fields keep their prior
// values. A non-nil Items fully replaces the existing item set (an empty
// slice clears it); nil leaves the items untouched.
type UpdateOrderInput struct {
	OrderID    int64
	CustomerID *int64
	OrderDate  *string
	Address    *string
	Items      *[]ItemInput
}

type UpdateOrder struct {
	orders    OrderRepo
	customers CustomerRepo
	products  ProductRepo
	cache     OrderCache
	now       func() time.Time
}

func NewUpdateOrder(orders OrderRepo, customers CustomerRepo, products ProductRepo, cache OrderCache) *UpdateOrder {
	return &UpdateOrder{
		orders:    orders,
		customers: customers,
		products:  products,
		cache:     cache,
		now:       time.Now,
	}
}

func (uc *UpdateOrder) Execute(ctx context.Context, in UpdateOrderInput) (*domain.Order, error) {
	o, err := uc.orders.GetByID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}

	if in.OrderDate != nil {
		orderDate, err := ParseOrderDate(*in.OrderDate)
		if err != nil {
			return nil, err
		}
		if ferr := validateOrderDate(orderDate, uc.now()); ferr != nil {
			return nil, ferr
		}
		o.OrderDate = orderDate
	}

	if in.CustomerID != nil {
		if _, err := uc.customers.GetByID(ctx, *in.CustomerID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, FieldErrors{"customer": fmt.Sprintf("Customer %d not found.", *in.CustomerID)}
			}
			return nil, err
		}
		o.CustomerID = *in.CustomerID
	}

	if in.Address != nil {
		o.Address = *in.Address
	}

	replaceItems := in.Items != nil
	if replaceItems {
		products, err := resolveProducts(ctx, uc.products, *in.Items)
		if err != nil {
			return nil, err
		}
		if ferr := validateOrderItems(*in.Items, products, false); ferr != nil {
			return nil, ferr
		}
		o.Items = toOrderItems(*in.Items)
	}

	if err := uc.orders.Update(ctx, o, replaceItems, newOrderEvent(RKOrderUpdated)); err != nil {
		return nil, err
	}
	if uc.cache != nil {
		_ = uc.cache.Invalidate(ctx, o.ID)
	}

	return uc.orders.GetByID(ctx, o.ID)
}
