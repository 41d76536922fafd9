package usecase

import "context"

type DeleteProduct struct {
	products ProductRepo
	orders   OrderRepo
	cache    OrderCache
}

func NewDeleteProduct(products ProductRepo, orders OrderRepo, cache OrderCache) *DeleteProduct {
	return &DeleteProduct{products: products, orders: orders, cache: cache}
}

// Execute removes the product; the store cascades to order items referencing
// it. Orders that held such an item get their cached bodies invalidated, so
// reads reflect the shrunken item set immediately.
func (uc *DeleteProduct) Execute(ctx context.Context, productID int64) error {
	orderIDs, err := uc.orders.IDsForProduct(ctx, productID)
	if err != nil {
		return err
	}
	if err := uc.products.Delete(ctx, productID); err != nil {
		return err
	}
	if uc.cache != nil {
		for _, id := range orderIDs {
			_ = uc.cache.Invalidate(ctx, id)
		}
	}
	return nil
}
