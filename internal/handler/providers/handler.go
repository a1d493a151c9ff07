package providers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mohamedfarez/ai-twin/backend/internal/service/llm"
	"github.com/mohamedfarez/ai-twin/backend/pkg/utils"
)

// Handler reports orchestrator provider health.
type Handler struct {
	orchestrator *llm.Orchestrator
}

// New creates the providers handler.
func New(orchestrator *llm.Orchestrator) *Handler {
	return &Handler{orchestrator: orchestrator}
}

// RegisterRoutes mounts the status endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/providers", h.handleStatus)
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.orchestrator.Status())
}
