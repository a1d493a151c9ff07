package persona

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mohamedfarez/ai-twin/backend/internal/model/persona"
	"github.com/mohamedfarez/ai-twin/backend/pkg/utils"
)

// Handler lists the persona variants the engine can run as.
type Handler struct {
	personas persona.Store
}

// New creates the persona handler.
func New(personas persona.Store) *Handler {
	return &Handler{personas: personas}
}

// RegisterRoutes mounts the persona endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/personas", h.handleListPersonas)
}

func (h *Handler) handleListPersonas(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.personas.List())
}
