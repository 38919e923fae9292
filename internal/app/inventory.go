package app

import (
	"context"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/erazemk/cenik/internal/model"
	"github.com/erazemk/cenik/internal/pricing"
)

// Inventory returns all recorded items, newest first.
func (a *App) Inventory() []model.InventoryItem {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.inventory)
}

// ListInventory returns items at martID (0 for all marts) whose name
// contains search, ignoring case.
func (a *App) ListInventory(martID int64, search string) []model.InventoryItem {
	a.mu.Lock()
	defer a.mu.Unlock()
	return pricing.Filter(a.inventory, martID, search)
}

// AddInventoryItem records a price at a mart. A zero martID selects the
// first mart. The item gets a new ID, today's date and starts unpinned.
func (a *App) AddInventoryItem(ctx context.Context, martID int64, name string, price decimal.Decimal, unit string) (*model.InventoryItem, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.addItemLocked(ctx, martID, name, price, unit)
}

func (a *App) addItemLocked(ctx context.Context, martID int64, name string, price decimal.Decimal, unit string) (*model.InventoryItem, error) {
	// Stored as typed; comparisons normalise names themselves.
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if price.IsNegative() {
		return nil, ErrInvalidPrice
	}
	target, err := a.targetMart(martID)
	if err != nil {
		return nil, err
	}

	item := model.InventoryItem{
		ID:     a.ids.Next(),
		MartID: target,
		Name:   name,
		Price:  price,
		Unit:   strings.TrimSpace(unit),
		Date:   a.now().Format(model.DateLayout),
	}

	inventory := make([]model.InventoryItem, 0, len(a.inventory)+1)
	inventory = append(inventory, item)
	inventory = append(inventory, a.inventory...)
	if err := a.saveJSON(ctx, KeyInventory, inventory); err != nil {
		return nil, err
	}
	a.inventory = inventory

	a.log.Info("item added", "item_id", item.ID, "mart_id", item.MartID, "name", item.Name, "price", item.Price.String())
	return &item, nil
}

// RemoveInventoryItem deletes an item. Removing an unknown ID does nothing.
func (a *App) RemoveInventoryItem(ctx context.Context, id int64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	i := a.indexOf(id)
	if i < 0 {
		return nil
	}

	inventory := slices.Delete(slices.Clone(a.inventory), i, i+1)
	if err := a.saveJSON(ctx, KeyInventory, inventory); err != nil {
		return err
	}
	a.inventory = inventory

	a.log.Info("item removed", "item_id", id)
	return nil
}

// TogglePin flips an item's pinned flag. Pinning fails with ErrPinLimit
// when model.MaxPinned items are already pinned; unpinning always succeeds.
func (a *App) TogglePin(ctx context.Context, id int64) (*model.InventoryItem, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	i := a.indexOf(id)
	if i < 0 {
		return nil, ErrItemNotFound
	}
	if !a.inventory[i].IsPinned && model.PinnedCount(a.inventory) >= model.MaxPinned {
		a.log.Warn("pin refused, limit reached", "item_id", id, "limit", model.MaxPinned)
		return nil, ErrPinLimit
	}

	inventory := slices.Clone(a.inventory)
	inventory[i].IsPinned = !inventory[i].IsPinned
	if err := a.saveJSON(ctx, KeyInventory, inventory); err != nil {
		return nil, err
	}
	a.inventory = inventory

	item := inventory[i]
	a.log.Info("item pin toggled", "item_id", id, "pinned", item.IsPinned)
	return &item, nil
}

// FrequentItems returns the pinned items.
func (a *App) FrequentItems() []model.InventoryItem {
	a.mu.Lock()
	defer a.mu.Unlock()
	return pricing.FrequentItems(a.inventory)
}

// PriceComparison returns every cross-mart comparison.
func (a *App) PriceComparison() []model.PriceComparison {
	a.mu.Lock()
	defer a.mu.Unlock()
	return pricing.Compare(a.inventory, a.marts)
}

// Summary returns the dashboard view.
func (a *App) Summary() pricing.Summary {
	a.mu.Lock()
	defer a.mu.Unlock()
	return pricing.Summarize(a.inventory, a.marts, a.defaultMart)
}

func (a *App) indexOf(id int64) int {
	return slices.IndexFunc(a.inventory, func(it model.InventoryItem) bool { return it.ID == id })
}
