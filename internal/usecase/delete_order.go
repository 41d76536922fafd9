package usecase

import "context"

type DeleteOrder struct {
	orders OrderRepo
	cache  OrderCache
}

func NewDeleteOrder(orders OrderRepo, cache OrderCache) *DeleteOrder {
	return &DeleteOrder{orders: orders, cache: cache}
}

// Execute removes the order; the store cascades to its items.
func (uc *DeleteOrder) Execute(ctx context.Context, orderID int64) error {
	if err := uc.orders.Delete(ctx, orderID, newOrderEvent(RKOrderDeleted)); err != nil {
		return err
	}
	if uc.cache != nil {
		_ = uc.cache.Invalidate(ctx, orderID)
	}
	return nil
}
