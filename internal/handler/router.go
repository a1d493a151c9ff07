package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/mohamedfarez/ai-twin/backend/internal/engine"
	chatHandler "github.com/mohamedfarez/ai-twin/backend/internal/handler/chat"
	personaHandler "github.com/mohamedfarez/ai-twin/backend/internal/handler/persona"
	providersHandler "github.com/mohamedfarez/ai-twin/backend/internal/handler/providers"
	streamHandler "github.com/mohamedfarez/ai-twin/backend/internal/handler/stream"
	"github.com/mohamedfarez/ai-twin/backend/internal/middleware"
	personaModel "github.com/mohamedfarez/ai-twin/backend/internal/model/persona"
	"github.com/mohamedfarez/ai-twin/backend/internal/service/llm"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(personas personaModel.Store, sessions *engine.Store, orchestrator *llm.Orchestrator) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS)

	r.Route("/api", func(api chi.Router) {
		chatHandler.New(sessions).RegisterRoutes(api)
		chatHandler.NewSocket(sessions).RegisterRoutes(api)
		streamHandler.New(sessions).RegisterRoutes(api)
		providersHandler.New(orchestrator).RegisterRoutes(api)
		personaHandler.New(personas).RegisterRoutes(api)
	})

	return r
}
