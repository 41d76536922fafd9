package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MaxOrderWeight is the per-order cap on summed item weight, in kg.
var MaxOrderWeight = decimal.NewFromInt(150)

type Order struct {
	ID          int64
	OrderNumber string
	CustomerID  int64
	OrderDate   time.Time // date-only, midnight
	Address     string
	CreatedAt   time.Time
	Items       []OrderItem
}

type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Quantity  int
}

// FormatOrderNumber renders the human-facing order number for a sequence
// value: "ORD" + the value zero-padded to at least 5 digits. Past 99999 the
// number widens rather than truncating.
func FormatOrderNumber(seq int64) string {
	return fmt.Sprintf("ORD%05d", seq)
}

// TotalWeight sums product weight times quantity over the order's items,
// looking weights up by product id. Exact decimal arithmetic, no floats.
func (o *Order) TotalWeight(weights map[int64]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(weights[it.ProductID].Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}
