package api

import (
	"net/http"

	"github.com/erazemk/cenik/internal/app"
)

// NewRouter creates the API router with all endpoints registered.
// The API is meant for a single local user and has no authentication.
func NewRouter(a *app.App) http.Handler {
	mux := http.NewServeMux()

	marts := &MartsHandler{App: a}
	inventory := &InventoryHandler{App: a}
	reports := &ReportsHandler{App: a}
	settings := &SettingsHandler{App: a}
	analysis := &AnalysisHandler{App: a}

	// Marts.
	mux.HandleFunc("GET /api/marts", marts.List)
	mux.HandleFunc("POST /api/marts", marts.Create)

	// Inventory.
	mux.HandleFunc("GET /api/inventory", inventory.List)
	mux.HandleFunc("POST /api/inventory", inventory.Create)
	mux.HandleFunc("DELETE /api/inventory/{id}", inventory.Delete)
	mux.HandleFunc("POST /api/inventory/{id}/pin", inventory.TogglePin)

	// Derived views.
	mux.HandleFunc("GET /api/summary", reports.Summary)
	mux.HandleFunc("GET /api/favourites", reports.Favourites)
	mux.HandleFunc("GET /api/comparisons", reports.Comparisons)

	// Settings.
	mux.HandleFunc("GET /api/settings", settings.Get)
	mux.HandleFunc("PUT /api/settings/theme", settings.SetTheme)
	mux.HandleFunc("POST /api/settings/theme/toggle", settings.ToggleTheme)
	mux.HandleFunc("PUT /api/settings/credential", settings.SaveCredential)
	mux.HandleFunc("DELETE /api/settings/credential", settings.ClearCredential)
	mux.HandleFunc("POST /api/reset", settings.Reset)

	// Image analysis sessions.
	mux.HandleFunc("POST /api/analysis", analysis.Open)
	mux.HandleFunc("GET /api/analysis/{id}", analysis.Get)
	mux.HandleFunc("DELETE /api/analysis/{id}", analysis.Dismiss)
	mux.HandleFunc("POST /api/analysis/{id}/image", analysis.Upload)
	mux.HandleFunc("POST /api/analysis/{id}/accept", analysis.Accept)
	mux.HandleFunc("DELETE /api/analysis/{id}/results/{index}", analysis.Discard)

	return mux
}
