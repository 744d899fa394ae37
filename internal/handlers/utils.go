package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/siteforge/apiserver/internal/schema"
)

// MessageResponse is the generic success body.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreatedResponse is the success body for submissions that persist a
// record.
type CreatedResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// ErrorResponse is the generic failure body. Errors carries the
// structured field-level detail for schema violations and is omitted
// otherwise.
type ErrorResponse struct {
	Message string              `json:"message"`
	Errors  []schema.FieldError `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Message: message})
}

// Healthz reports liveness.
func Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
