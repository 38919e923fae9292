package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/erazemk/cenik/internal/app"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("encoding response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

// appError maps controller errors to HTTP responses. Unknown errors are
// logged and reported with the fallback message.
func appError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, app.ErrEmptyName),
		errors.Is(err, app.ErrInvalidPrice),
		errors.Is(err, app.ErrEmptyCredential),
		errors.Is(err, app.ErrInvalidTheme):
		jsonError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, app.ErrMartNotFound),
		errors.Is(err, app.ErrItemNotFound),
		errors.Is(err, app.ErrSessionNotFound),
		errors.Is(err, app.ErrResultNotFound):
		jsonError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, app.ErrPinLimit),
		errors.Is(err, app.ErrAnalysisBusy):
		jsonError(w, http.StatusConflict, err.Error())
	case errors.Is(err, app.ErrNoCredential):
		jsonError(w, http.StatusBadGateway, "register an API key in settings first")
	case errors.Is(err, app.ErrAnalysisFailed):
		jsonError(w, http.StatusBadGateway, app.ErrAnalysisFailed.Error())
	default:
		slog.Error(fallback, "error", err)
		jsonError(w, http.StatusInternalServerError, fallback)
	}
}

// confirmed reports whether a destructive request carries ?confirm=true.
// If not, it writes a 428 response.
func confirmed(w http.ResponseWriter, r *http.Request) bool {
	ok, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	if !ok {
		jsonError(w, http.StatusPreconditionRequired, "confirmation required, repeat with ?confirm=true")
	}
	return ok
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}
