package domain

import "github.com/shopspring/decimal"

// OrderRequest carries the contact fields submitted at checkout.
type OrderRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Address string `json:"address" validate:"required"`
}

// OrderSummary is what gets rendered into the order email.
type OrderSummary struct {
	Name    string
	Email   string
	Address string
	Items   []Product
	Total   decimal.Decimal
}

// Total sums item prices with decimal arithmetic. An empty cart totals zero.
func Total(items []Product) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(decimal.NewFromFloat(item.Price))
	}
	return total
}
