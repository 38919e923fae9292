package model

import "github.com/shopspring/decimal"

// PriceComparison groups same-named items across marts, cheapest first.
type PriceComparison struct {
	Name   string       `json:"name"`
	Prices []PriceEntry `json:"prices"`
}

// PriceEntry is one observed price within a comparison.
type PriceEntry struct {
	MartName string          `json:"martName"`
	Price    decimal.Decimal `json:"price"`
	Date     string          `json:"date"`
}

// Best returns the cheapest entry. Comparisons always hold at least two entries.
func (c PriceComparison) Best() PriceEntry {
	return c.Prices[0]
}
