package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/teamfolio/teamfolio-go/internal/model"
)

const maxJSONBody = 1 << 20 // 1MB

// Projections applied by each user-returning route.
const (
	registerProjection = model.ProjectionFull
	meProjection       = model.ProjectionFull
	userByIDProjection = model.ProjectionFull
	editProjection     = model.ProjectionFull
	listProjection     = model.ProjectionPublic
)

// decodeJSON reads a capped JSON body into v. On failure it has already
// written the error response and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return false
	}
	return true
}

// internalError logs err and answers with a generic 500 body.
func internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	slog.ErrorContext(r.Context(), msg,
		"error", err,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", w.Header().Get("X-Request-ID"),
	)
	writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func errorResponse(msg string) map[string]string {
	return map[string]string{"error": msg}
}
