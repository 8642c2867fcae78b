package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/daykeep/daykeep/internal/apperr"
)

type errorBody struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeError translates business-rule violations into 422 responses with
// the error's title and description; anything else is an internal fault,
// logged and hidden behind a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if be, ok := apperr.AsBusiness(err); ok {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{
			Title:       be.Title,
			Description: be.Description,
		})
		return
	}

	slog.Error("request failed", "error", err, "method", r.Method, "path", r.URL.Path)
	writeJSON(w, http.StatusInternalServerError, errorBody{Title: "Internal server error"})
}
