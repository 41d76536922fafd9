package usecase

import "context"

type DeleteCustomer struct {
	customers CustomerRepo
	orders    OrderRepo
	cache     OrderCache
}

func NewDeleteCustomer(customers CustomerRepo, orders OrderRepo, cache OrderCache) *DeleteCustomer {
	return &DeleteCustomer{customers: customers, orders: orders, cache: cache}
}

// Execute removes the customer; the store cascades to their orders and items.
// Cached bodies of the cascaded orders are invalidated so a read after the
// delete cannot serve a vanished order.
func (uc *DeleteCustomer) Execute(ctx context.Context, customerID int64) error {
	orderIDs, err := uc.orders.IDsForCustomer(ctx, customerID)
	if err != nil {
		return err
	}
	if err := uc.customers.Delete(ctx, customerID); err != nil {
		return err
	}
	if uc.cache != nil {
		for _, id := range orderIDs {
			_ = uc.cache.Invalidate(ctx, id)
		}
	}
	return nil
}
