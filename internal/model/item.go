package model

import (
	"github.com/shopspring/decimal"
)

// MaxPinned is the maximum number of items that can be pinned at once.
const MaxPinned = 20

func init() {
	// Prices are JSON numbers, both in the API and in stored state.
	decimal.MarshalJSONWithoutQuotes = true
}

// DateLayout is the format of InventoryItem.Date.
const DateLayout = "2006-01-02"

// InventoryItem is one recorded price observation at a mart.
type InventoryItem struct {
	ID       int64           `json:"id"`
	MartID   int64           `json:"martId"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Unit     string          `json:"unit"`
	IsPinned bool            `json:"isPinned"`
	Date     string          `json:"date"`
}

// AnalysisResult is a product proposed by image analysis, pending acceptance.
type AnalysisResult struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Unit  string          `json:"unit"`
}

// PinnedCount returns the number of pinned items.
func PinnedCount(items []InventoryItem) int {
	n := 0
	for _, it := range items {
		if it.IsPinned {
			n++
		}
	}
	return n
}
