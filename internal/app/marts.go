package app

import (
	"context"
	"slices"
	"strings"

	"github.com/erazemk/cenik/internal/model"
)

// Marts returns all marts in creation order.
func (a *App) Marts() []model.Mart {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.marts)
}

// AddMart creates a mart. Names are trimmed; blank names are refused.
func (a *App) AddMart(ctx context.Context, name string) (*model.Mart, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	mart := model.Mart{ID: a.ids.Next(), Name: name}
	marts := append(slices.Clone(a.marts), mart)
	if err := a.saveJSON(ctx, KeyMarts, marts); err != nil {
		return nil, err
	}
	a.marts = marts

	a.log.Info("mart added", "mart_id", mart.ID, "name", mart.Name)
	return &mart, nil
}

// targetMart resolves the mart an item is recorded against. Zero selects
// the first mart. Must be called with a.mu held.
func (a *App) targetMart(martID int64) (int64, error) {
	if martID == 0 {
		if len(a.marts) == 0 {
			return 0, ErrMartNotFound
		}
		return a.marts[0].ID, nil
	}
	if !model.HasMart(a.marts, martID) {
		return 0, ErrMartNotFound
	}
	return martID, nil
}
