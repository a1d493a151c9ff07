package stream

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mohamedfarez/ai-twin/backend/internal/engine"
	"github.com/mohamedfarez/ai-twin/backend/pkg/utils"
)

// Handler streams chat replies over Server-Sent Events.
type Handler struct {
	sessions *engine.Store
}

// New creates the stream handler.
func New(sessions *engine.Store) *Handler {
	return &Handler{sessions: sessions}
}

// RegisterRoutes mounts the streaming endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/chat/stream", h.handleStream)
}

// Event is one SSE frame.
type Event struct {
	Event           string `json:"event"`
	Content         string `json:"content,omitempty"`
	SessionID       string `json:"sessionId,omitempty"`
	EngagementScore int    `json:"engagementScore,omitempty"`
	CurrentStage    int    `json:"currentStage,omitempty"`
	Finished        bool   `json:"finished,omitempty"`
}

func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")
	message := r.URL.Query().Get("message")
	if sessionID == "" || message == "" {
		utils.RespondError(w, http.StatusBadRequest, "sessionId and message query parameters are required")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	utils.SetupSSEHeaders(w)
	utils.SendSSEChunk(w, flusher, Event{Event: "start", SessionID: sessionID})

	session := h.sessions.GetOrCreate(sessionID)
	reply := session.ProcessMessageStream(r.Context(), message, func(delta string) {
		utils.SendSSEChunk(w, flusher, Event{Event: "delta", SessionID: sessionID, Content: delta})
	})

	state := session.Context()
	utils.SendSSEChunk(w, flusher, Event{
		Event:           "message",
		SessionID:       sessionID,
		Content:         reply,
		EngagementScore: state.EngagementScore,
		CurrentStage:    state.CurrentStage,
	})
	utils.SendSSEChunk(w, flusher, Event{Event: "end", SessionID: sessionID, Finished: true})

	log.Printf("[stream] completed response for session=%s", sessionID)
}
