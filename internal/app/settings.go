package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/erazemk/cenik/internal/model"
)

// Theme returns the UI theme preference.
func (a *App) Theme() model.Theme {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.theme
}

// SetTheme stores the UI theme preference.
func (a *App) SetTheme(ctx context.Context, theme model.Theme) error {
	if !theme.Valid() {
		return ErrInvalidTheme
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	return a.setThemeLocked(ctx, theme)
}

// ToggleTheme switches between dark and light and returns the new theme.
func (a *App) ToggleTheme(ctx context.Context) (model.Theme, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	theme := a.theme.Toggle()
	if err := a.setThemeLocked(ctx, theme); err != nil {
		return "", err
	}
	return theme, nil
}

func (a *App) setThemeLocked(ctx context.Context, theme model.Theme) error {
	if err := a.store.Set(ctx, KeyTheme, string(theme)); err != nil {
		return fmt.Errorf("saving theme: %w", err)
	}
	a.theme = theme
	return nil
}

// HasCredential reports whether an API key is saved.
func (a *App) HasCredential() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.credential != ""
}

// SaveCredential stores an API key for image analysis.
func (a *App) SaveCredential(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrEmptyCredential
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.store.Set(ctx, KeyCredential, key); err != nil {
		return fmt.Errorf("saving API key: %w", err)
	}
	a.credential = key

	a.log.Info("API key saved")
	return nil
}

// ClearCredential removes the saved API key. Callers must confirm with the
// user first.
func (a *App) ClearCredential(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.store.Remove(ctx, KeyCredential); err != nil {
		return fmt.Errorf("removing API key: %w", err)
	}
	a.credential = ""

	a.log.Info("API key removed")
	return nil
}

// activeCredential is the saved key, falling back to the environment.
// Must be called with a.mu held.
func (a *App) activeCredential() string {
	if a.credential != "" {
		return a.credential
	}
	return a.envCred
}
