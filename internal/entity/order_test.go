package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatOrderNumber(t *testing.T) {
	assert.Equal(t, "ORD00001", FormatOrderNumber(1))
	assert.Equal(t, "ORD00042", FormatOrderNumber(42))
	assert.Equal(t, "ORD99999", FormatOrderNumber(99999))
	// past five digits the number widens instead of truncating
	assert.Equal(t, "ORD100000", FormatOrderNumber(100000))
}

func TestTotalWeightExactDecimal(t *testing.T) {
	o := &Order{Items: []OrderItem{
		{ProductID: 1, Quantity: 3},
		{ProductID: 2, Quantity: 2},
	}}
	weights := map[int64]decimal.Decimal{
		1: decimal.RequireFromString("0.1"), // floats would drift here
		2: decimal.RequireFromString("24.95"),
	}
	assert.True(t, o.TotalWeight(weights).Equal(decimal.RequireFromString("50.2")))
}

func TestProductValidate(t *testing.T) {
	cases := []struct {
		weight string
		want   error
	}{
		{"0", ErrWeightNotPositive},
		{"-1", ErrWeightNotPositive},
		{"0.01", nil},
		{"25", nil},
		{"25.01", ErrWeightTooHeavy},
	}
	for _, tc := range cases {
		p := &Product{Name: "x", Weight: decimal.RequireFromString(tc.weight)}
		assert.ErrorIs(t, p.Validate(), tc.want, "weight %s", tc.weight)
	}
}
