// Package app owns the price ledger: marts, recorded prices, favourites,
// settings and pending image-analysis sessions. Every mutation is written
// through to the key-value store before it becomes visible.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/cenik/internal/analysis"
	"github.com/erazemk/cenik/internal/ids"
	"github.com/erazemk/cenik/internal/model"
)

// Store keys.
const (
	KeyTheme      = "mm_theme"
	KeyMarts      = "mm_local_marts"
	KeyInventory  = "mm_local_inventory"
	KeyCredential = "mm_api_key"
)

// KeyValueStore persists string values under string keys.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// Options configures an App. Store, Analyzer and IDs are required.
type Options struct {
	Store    KeyValueStore
	Analyzer analysis.Analyzer
	IDs      ids.Generator

	// DefaultMartName names the mart created on first run and after a reset.
	DefaultMartName string
	// EnvCredential is used for analysis when no API key is saved.
	EnvCredential string
	// AnalysisTimeout bounds each analysis call. Zero means 60s.
	AnalysisTimeout time.Duration

	Now    func() time.Time
	Logger *slog.Logger
}

// App is the single owner of the ledger state.
type App struct {
	store       KeyValueStore
	analyzer    analysis.Analyzer
	ids         ids.Generator
	defaultMart string
	envCred     string
	timeout     time.Duration
	now         func() time.Time
	log         *slog.Logger

	mu         sync.Mutex
	marts      []model.Mart
	inventory  []model.InventoryItem
	theme      model.Theme
	credential string
	sessions   map[uuid.UUID]*session
}

// New loads the ledger from the store. Missing entries get first-run defaults.
func New(ctx context.Context, opts Options) (*App, error) {
	a := &App{
		store:       opts.Store,
		analyzer:    opts.Analyzer,
		ids:         opts.IDs,
		defaultMart: opts.DefaultMartName,
		envCred:     opts.EnvCredential,
		timeout:     opts.AnalysisTimeout,
		now:         opts.Now,
		log:         opts.Logger,
		sessions:    make(map[uuid.UUID]*session),
	}
	if a.store == nil || a.analyzer == nil || a.ids == nil {
		return nil, fmt.Errorf("store, analyzer and id generator are required")
	}
	if a.defaultMart == "" {
		a.defaultMart = "Default"
	}
	if a.timeout <= 0 {
		a.timeout = 60 * time.Second
	}
	if a.now == nil {
		a.now = time.Now
	}
	if a.log == nil {
		a.log = slog.Default()
	}

	if err := a.load(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *App) defaults() {
	a.marts = []model.Mart{{ID: model.DefaultMartID, Name: a.defaultMart}}
	a.inventory = []model.InventoryItem{}
	a.theme = model.DefaultTheme
	a.credential = ""
}

func (a *App) load(ctx context.Context) error {
	a.defaults()

	if ok, err := a.loadJSON(ctx, KeyMarts, &a.marts); err != nil {
		return err
	} else if ok && a.marts == nil {
		a.marts = []model.Mart{}
	}
	if ok, err := a.loadJSON(ctx, KeyInventory, &a.inventory); err != nil {
		return err
	} else if ok && a.inventory == nil {
		a.inventory = []model.InventoryItem{}
	}

	theme, ok, err := a.store.Get(ctx, KeyTheme)
	if err != nil {
		return fmt.Errorf("loading theme: %w", err)
	}
	if ok && model.Theme(theme).Valid() {
		a.theme = model.Theme(theme)
	}

	cred, _, err := a.store.Get(ctx, KeyCredential)
	if err != nil {
		return fmt.Errorf("loading API key: %w", err)
	}
	a.credential = cred

	a.log.Info("ledger loaded", "marts", len(a.marts), "items", len(a.inventory))
	return nil
}

func (a *App) loadJSON(ctx context.Context, key string, target any) (bool, error) {
	raw, ok, err := a.store.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("loading %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		return false, fmt.Errorf("decoding %s: %w", key, err)
	}
	return true, nil
}

func (a *App) saveJSON(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := a.store.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}

// ResetAllData deletes everything: marts return to the single default,
// inventory is emptied, the API key and theme are removed and pending
// analysis sessions are dropped. Callers must confirm with the user first.
func (a *App) ResetAllData(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.store.Clear(ctx); err != nil {
		return fmt.Errorf("resetting data: %w", err)
	}
	a.defaults()
	clear(a.sessions)

	a.log.Warn("all data reset")
	return nil
}
