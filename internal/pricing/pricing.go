// Package pricing derives the favourites list and cross-mart price
// comparisons from an inventory snapshot. Every function is pure: results
// are recomputed from the arguments on each call and nothing is cached.
package pricing

import (
	"slices"
	"strings"

	"github.com/erazemk/cenik/internal/model"
)

// SummaryComparisons is the number of comparisons shown in the summary.
const SummaryComparisons = 5

// NormalizeName returns the grouping key for an item name.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// FrequentItems returns pinned items in inventory order, at most model.MaxPinned.
func FrequentItems(inventory []model.InventoryItem) []model.InventoryItem {
	pinned := []model.InventoryItem{}
	for _, it := range inventory {
		if !it.IsPinned {
			continue
		}
		pinned = append(pinned, it)
		if len(pinned) == model.MaxPinned {
			break
		}
	}
	return pinned
}

// Compare groups inventory items by normalised name and returns one
// comparison per group with two or more items. Groups are ordered by first
// occurrence; prices within a group are sorted ascending, ties keeping
// inventory order.
func Compare(inventory []model.InventoryItem, marts []model.Mart) []model.PriceComparison {
	var order []string
	groups := make(map[string][]model.InventoryItem)
	for _, it := range inventory {
		key := NormalizeName(it.Name)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], it)
	}

	comparisons := []model.PriceComparison{}
	for _, key := range order {
		items := groups[key]
		if len(items) < 2 {
			continue
		}

		prices := make([]model.PriceEntry, 0, len(items))
		for _, it := range items {
			prices = append(prices, model.PriceEntry{
				MartName: model.MartName(marts, it.MartID, model.UnknownMartName),
				Price:    it.Price,
				Date:     it.Date,
			})
		}
		slices.SortStableFunc(prices, func(a, b model.PriceEntry) int {
			return a.Price.Cmp(b.Price)
		})

		comparisons = append(comparisons, model.PriceComparison{
			Name:   items[0].Name,
			Prices: prices,
		})
	}
	return comparisons
}

// Favourite is a pinned item with its mart name resolved.
type Favourite struct {
	model.InventoryItem
	MartName string `json:"martName"`
}

// Highlight is a comparison together with its cheapest entry.
type Highlight struct {
	model.PriceComparison
	Best model.PriceEntry `json:"best"`
}

// Summary is the dashboard view.
type Summary struct {
	Favourites  []Favourite `json:"favourites"`
	Comparisons []Highlight `json:"comparisons"`
}

// Summarize builds the dashboard: all favourites and the first
// SummaryComparisons comparisons. Favourites whose mart is gone are labelled
// with defaultMart.
func Summarize(inventory []model.InventoryItem, marts []model.Mart, defaultMart string) Summary {
	s := Summary{
		Favourites:  []Favourite{},
		Comparisons: []Highlight{},
	}
	for _, it := range FrequentItems(inventory) {
		s.Favourites = append(s.Favourites, Favourite{
			InventoryItem: it,
			MartName:      model.MartName(marts, it.MartID, defaultMart),
		})
	}

	comparisons := Compare(inventory, marts)
	if len(comparisons) > SummaryComparisons {
		comparisons = comparisons[:SummaryComparisons]
	}
	for _, c := range comparisons {
		s.Comparisons = append(s.Comparisons, Highlight{PriceComparison: c, Best: c.Best()})
	}
	return s
}

// Filter returns the items held at martID (all marts if martID is 0) whose
// name contains search, ignoring case.
func Filter(inventory []model.InventoryItem, martID int64, search string) []model.InventoryItem {
	needle := strings.ToLower(search)
	out := []model.InventoryItem{}
	for _, it := range inventory {
		if martID != 0 && it.MartID != martID {
			continue
		}
		if !strings.Contains(strings.ToLower(it.Name), needle) {
			continue
		}
		out = append(out, it)
	}
	return out
}
