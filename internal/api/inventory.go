package api

import (
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/erazemk/cenik/internal/app"
)

// InventoryHandler handles inventory endpoints.
type InventoryHandler struct {
	App *app.App
}

type createItemRequest struct {
	MartID int64            `json:"martId"`
	Name   string           `json:"name"`
	Price  *decimal.Decimal `json:"price"`
	Unit   string           `json:"unit"`
}

// List handles GET /api/inventory. Optional query parameters: mart (mart
// ID) and q (name search).
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	var martID int64
	if s := r.URL.Query().Get("mart"); s != "" && s != "all" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid mart id")
			return
		}
		martID = id
	}

	jsonResponse(w, http.StatusOK, h.App.ListInventory(martID, r.URL.Query().Get("q")))
}

// Create handles POST /api/inventory.
func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Price == nil {
		jsonError(w, http.StatusBadRequest, "price required")
		return
	}

	item, err := h.App.AddInventoryItem(r.Context(), req.MartID, req.Name, *req.Price, req.Unit)
	if err != nil {
		appError(w, err, "failed to add item")
		return
	}

	jsonResponse(w, http.StatusCreated, item)
}

// Delete handles DELETE /api/inventory/{id}.
func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := h.App.RemoveInventoryItem(r.Context(), id); err != nil {
		appError(w, err, "failed to remove item")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "item removed"})
}

// TogglePin handles POST /api/inventory/{id}/pin.
func (h *InventoryHandler) TogglePin(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := h.App.TogglePin(r.Context(), id)
	if err != nil {
		appError(w, err, "failed to pin item")
		return
	}

	jsonResponse(w, http.StatusOK, item)
}
