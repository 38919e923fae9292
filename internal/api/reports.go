package api

import (
	"net/http"

	"github.com/erazemk/cenik/internal/app"
)

// ReportsHandler serves the derived views.
type ReportsHandler struct {
	App *app.App
}

// Summary handles GET /api/summary.
func (h *ReportsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.App.Summary())
}

// Favourites handles GET /api/favourites.
func (h *ReportsHandler) Favourites(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.App.FrequentItems())
}

// Comparisons handles GET /api/comparisons.
func (h *ReportsHandler) Comparisons(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.App.PriceComparison())
}
