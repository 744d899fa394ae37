package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/siteforge/apiserver/internal/logging"
	"github.com/siteforge/apiserver/internal/schema"
	"github.com/siteforge/apiserver/internal/services"
)

// SiteConfigHandler accepts canonical site-config documents.
type SiteConfigHandler struct {
	siteConfigService *services.SiteConfigService
	log               logging.Logger
}

// NewSiteConfigHandler constructs a handler with the provided dependencies.
func NewSiteConfigHandler(siteConfigService *services.SiteConfigService, log logging.Logger) *SiteConfigHandler {
	return &SiteConfigHandler{siteConfigService: siteConfigService, log: log}
}

// SiteConfigRouter registers site-config routes on the given router.
func SiteConfigRouter(r chi.Router, siteConfigService *services.SiteConfigService, log logging.Logger) {
	handler := NewSiteConfigHandler(siteConfigService, log)

	r.Post("/site-config", handler.Submit)
}

// Submit validates the posted document against the schema and appends
// it to the site-config collection.
func (h *SiteConfigHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var doc map[string]any
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if doc == nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	id, err := h.siteConfigService.Submit(r.Context(), doc)
	if err != nil {
		var ve *schema.ValidationError
		if errors.As(err, &ve) {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{
				Message: "site configuration failed validation",
				Errors:  ve.Fields,
			})
			return
		}
		h.log.Error(r.Context(), "site config submission failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save site configuration")
		return
	}

	writeJSON(w, http.StatusCreated, CreatedResponse{
		Message: "site configuration saved",
		ID:      id,
	})
}
