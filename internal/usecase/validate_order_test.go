package usecase

import (
	"testing"
	"time"

	domain "github.com/aq2208/oms-api/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func weighted(id int64, name, weight string) domain.Product {
	return domain.Product{ID: id, Name: name, Weight: decimal.RequireFromString(weight)}
}

func TestValidateOrderDate(t *testing.T) {
	now := time.Date(2030, 6, 15, 13, 45, 0, 0, time.Local)

	assert.Nil(t, validateOrderDate(time.Date(2030, 6, 15, 0, 0, 0, 0, time.UTC), now), "today is accepted")
	assert.Nil(t, validateOrderDate(time.Date(2030, 6, 16, 0, 0, 0, 0, time.UTC), now))

	ferr := validateOrderDate(time.Date(2030, 6, 14, 0, 0, 0, 0, time.UTC), now)
	assert.Equal(t, FieldErrors{"order_date": "Order date cannot be in the past."}, ferr)
}

func TestValidateOrderItemsEmpty(t *testing.T) {
	products := map[int64]domain.Product{}

	ferr := validateOrderItems(nil, products, true)
	assert.Equal(t, FieldErrors{"order_item": "At least one product is required."}, ferr)

	// updates may omit the list entirely; an absent list never reaches the
	// validator, and an explicit empty one is a legal full clear
	assert.Nil(t, validateOrderItems(nil, products, false))
}

func TestValidateOrderItemsDuplicateProduct(t *testing.T) {
	products := map[int64]domain.Product{
		1: weighted(1, "Apple Crate", "10"),
		2: weighted(2, "Bananas", "5"),
	}
	items := []ItemInput{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
		{ProductID: 1, Quantity: 3},
	}
	ferr := validateOrderItems(items, products, true)
	assert.Equal(t, FieldErrors{
		"order_item": "Product 'Apple Crate' appears multiple times. Please consolidate quantities.",
	}, ferr)
}

func TestValidateOrderItemsWeightLimit(t *testing.T) {
	products := map[int64]domain.Product{1: weighted(1, "Bricks", "20")}

	// 20 * 8 = 160 > 150
	ferr := validateOrderItems([]ItemInput{{ProductID: 1, Quantity: 8}}, products, true)
	assert.Equal(t, FieldErrors{
		"order_item": "Total order weight (160kg) exceeds the limit of 150kg.",
	}, ferr)

	// exactly 150 is accepted, boundary inclusive
	products150 := map[int64]domain.Product{1: weighted(1, "Bricks", "15")}
	assert.Nil(t, validateOrderItems([]ItemInput{{ProductID: 1, Quantity: 10}}, products150, true))
}

func TestValidateOrderItemsExactDecimalBoundary(t *testing.T) {
	// 0.1 * 1500 = 150 exactly; binary floats would land just over
	products := map[int64]domain.Product{1: weighted(1, "Washers", "0.1")}
	assert.Nil(t, validateOrderItems([]ItemInput{{ProductID: 1, Quantity: 1500}}, products, true))
}

func TestDuplicateWinsOverWeightLimit(t *testing.T) {
	// payload violates both rules; the duplicate is detected first, scanning
	// in input order, and the weight message is never reached
	products := map[int64]domain.Product{1: weighted(1, "Anvil", "25")}
	items := []ItemInput{
		{ProductID: 1, Quantity: 5},
		{ProductID: 1, Quantity: 5},
	}
	ferr := validateOrderItems(items, products, true)
	assert.Equal(t, FieldErrors{
		"order_item": "Product 'Anvil' appears multiple times. Please consolidate quantities.",
	}, ferr)
}
