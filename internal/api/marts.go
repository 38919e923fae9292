package api

import (
	"net/http"

	"github.com/erazemk/cenik/internal/app"
)

// MartsHandler handles mart endpoints.
type MartsHandler struct {
	App *app.App
}

type createMartRequest struct {
	Name string `json:"name"`
}

// List handles GET /api/marts.
func (h *MartsHandler) List(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.App.Marts())
}

// Create handles POST /api/marts.
func (h *MartsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createMartRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	mart, err := h.App.AddMart(r.Context(), req.Name)
	if err != nil {
		appError(w, err, "failed to add mart")
		return
	}

	jsonResponse(w, http.StatusCreated, mart)
}
