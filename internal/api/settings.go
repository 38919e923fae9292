package api

import (
	"net/http"

	"github.com/erazemk/cenik/internal/app"
	"github.com/erazemk/cenik/internal/model"
)

// SettingsHandler handles theme, API key and reset endpoints.
type SettingsHandler struct {
	App *app.App
}

type settingsResponse struct {
	Theme         model.Theme `json:"theme"`
	HasCredential bool        `json:"hasCredential"`
}

type themeRequest struct {
	Theme model.Theme `json:"theme"`
}

type credentialRequest struct {
	Key string `json:"key"`
}

// Get handles GET /api/settings. The API key itself is never returned.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, settingsResponse{
		Theme:         h.App.Theme(),
		HasCredential: h.App.HasCredential(),
	})
}

// SetTheme handles PUT /api/settings/theme.
func (h *SettingsHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.App.SetTheme(r.Context(), req.Theme); err != nil {
		appError(w, err, "failed to save theme")
		return
	}

	jsonResponse(w, http.StatusOK, themeRequest{Theme: req.Theme})
}

// ToggleTheme handles POST /api/settings/theme/toggle.
func (h *SettingsHandler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := h.App.ToggleTheme(r.Context())
	if err != nil {
		appError(w, err, "failed to save theme")
		return
	}

	jsonResponse(w, http.StatusOK, themeRequest{Theme: theme})
}

// SaveCredential handles PUT /api/settings/credential.
func (h *SettingsHandler) SaveCredential(w http.ResponseWriter, r *http.Request) {
	var req credentialRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.App.SaveCredential(r.Context(), req.Key); err != nil {
		appError(w, err, "failed to save API key")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "API key saved"})
}

// ClearCredential handles DELETE /api/settings/credential?confirm=true.
func (h *SettingsHandler) ClearCredential(w http.ResponseWriter, r *http.Request) {
	if !confirmed(w, r) {
		return
	}

	if err := h.App.ClearCredential(r.Context()); err != nil {
		appError(w, err, "failed to remove API key")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "API key removed"})
}

// Reset handles POST /api/reset?confirm=true.
func (h *SettingsHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if !confirmed(w, r) {
		return
	}

	if err := h.App.ResetAllData(r.Context()); err != nil {
		appError(w, err, "failed to reset data")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "all data reset"})
}
