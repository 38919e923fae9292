package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/erazemk/cenik/internal/app"
	"github.com/erazemk/cenik/internal/imaging"
	"github.com/erazemk/cenik/internal/model"
)

// AnalysisHandler handles image analysis sessions.
type AnalysisHandler struct {
	App *app.App
}

type sessionResponse struct {
	ID      uuid.UUID              `json:"id"`
	Results []model.AnalysisResult `json:"results"`
}

type acceptRequest struct {
	Index  int   `json:"index"`
	MartID int64 `json:"martId"`
}

func sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid session id")
		return uuid.Nil, false
	}
	return id, true
}

// Open handles POST /api/analysis.
func (h *AnalysisHandler) Open(w http.ResponseWriter, r *http.Request) {
	id := h.App.OpenSession()
	jsonResponse(w, http.StatusCreated, sessionResponse{ID: id, Results: []model.AnalysisResult{}})
}

// Get handles GET /api/analysis/{id}.
func (h *AnalysisHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	results, err := h.App.SessionResults(id)
	if err != nil {
		appError(w, err, "failed to get session")
		return
	}

	jsonResponse(w, http.StatusOK, sessionResponse{ID: id, Results: results})
}

// Dismiss handles DELETE /api/analysis/{id}.
func (h *AnalysisHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	h.App.DismissSession(id)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "session dismissed"})
}

// Upload handles POST /api/analysis/{id}/image with a multipart "image" file.
func (h *AnalysisHandler) Upload(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	// Leave room for multipart framing around the image itself.
	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(imaging.MaxUploadBytes); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	photo, err := imaging.Prepare(file)
	if err != nil {
		if errors.Is(err, imaging.ErrTooLarge) {
			jsonError(w, http.StatusRequestEntityTooLarge, "image must be at most 5 MB")
			return
		}
		slog.Warn("rejected analysis image", "error", err)
		jsonError(w, http.StatusBadRequest, "image must be JPEG or PNG")
		return
	}

	slog.Info("analysis image prepared", "session", id, "width", photo.Width, "height", photo.Height, "bytes", len(photo.Data))

	results, err := h.App.AnalyzeInSession(r.Context(), id, photo.Data, photo.MIME)
	if err != nil {
		appError(w, err, "failed to analyse image")
		return
	}

	jsonResponse(w, http.StatusOK, sessionResponse{ID: id, Results: results})
}

// Accept handles POST /api/analysis/{id}/accept.
func (h *AnalysisHandler) Accept(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	var req acceptRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.App.AcceptResult(r.Context(), id, req.Index, req.MartID)
	if err != nil {
		appError(w, err, "failed to record result")
		return
	}

	jsonResponse(w, http.StatusCreated, item)
}

// Discard handles DELETE /api/analysis/{id}/results/{index}.
func (h *AnalysisHandler) Discard(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid result index")
		return
	}

	if err := h.App.DiscardResult(id, index); err != nil {
		appError(w, err, "failed to discard result")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "result discarded"})
}
