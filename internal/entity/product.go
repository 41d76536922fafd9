package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Product weight bounds in kg: (0, 25].
var MaxProductWeight = decimal.NewFromInt(25)

var (
	ErrWeightNotPositive = errors.New("weight must be positive")
	ErrWeightTooHeavy    = errors.New("weight cannot exceed 25kg")
)

type Product struct {
	ID     int64
	Name   string
	Weight decimal.Decimal
}

func (p *Product) Validate() error {
	if !p.Weight.IsPositive() {
		return ErrWeightNotPositive
	}
	if p.Weight.GreaterThan(MaxProductWeight) {
		return ErrWeightTooHeavy
	}
	return nil
}
