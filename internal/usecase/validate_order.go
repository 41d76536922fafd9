package usecase

import (
	"fmt"
	"time"

	domain "github.com/aq2208/oms-api/internal/entity"
	"github.com/shopspring/decimal"
)

// ItemInput is one proposed (product, quantity) line, in request order.
type ItemInput struct {
	ProductID int64
	Quantity  int
}

func validateOrderDate(orderDate, now time.Time) FieldErrors {
	if beforeDay(orderDate, now) {
		return FieldErrors{"order_date": "Order date cannot be in the past."}
	}
	return nil
}

// validateOrderItems enforces the item-list rules in a single pass over the
// input order: on create the list must be non-empty; a product may appear at
// most once (the first recurrence rejects, before the weight total is ever
// compared); the exact-decimal weight total must not exceed 150kg, boundary
// inclusive.
func validateOrderItems(items []ItemInput, products map[int64]domain.Product, creating bool) FieldErrors {
	if creating && len(items) == 0 {
		return FieldErrors{"order_item": "At least one product is required."}
	}

	total := decimal.Zero
	seen := make(map[int64]bool, len(items))
	for _, it := range items {
		p := products[it.ProductID]
		if seen[p.ID] {
			return FieldErrors{"order_item": fmt.Sprintf(
				"Product '%s' appears multiple times. Please consolidate quantities.", p.Name)}
		}
		seen[p.ID] = true
		total = total.Add(p.Weight.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	if total.GreaterThan(domain.MaxOrderWeight) {
		return FieldErrors{"order_item": fmt.Sprintf(
			"Total order weight (%skg) exceeds the limit of 150kg.", total)}
	}
	return nil
}
