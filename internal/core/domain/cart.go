package domain

import "github.com/shopspring/decimal"

type CartItem struct {
	ProductID string
	Name      string
	Type      ProductType
	Price     decimal.Decimal
	Color     string
	Quantity  int
	ImageURL  string
}

// LineTotal returns price multiplied by quantity.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type CartSummary struct {
	Items    []CartItem
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}
