package chat

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mohamedfarez/ai-twin/backend/internal/engine"
	chatModel "github.com/mohamedfarez/ai-twin/backend/internal/model/chat"
	"github.com/mohamedfarez/ai-twin/backend/pkg/utils"
)

// Handler exposes the chat engine over HTTP.
type Handler struct {
	sessions *engine.Store
}

// New creates the chat handler.
func New(sessions *engine.Store) *Handler {
	return &Handler{sessions: sessions}
}

// RegisterRoutes mounts the chat endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handlePostMessage)
	r.Get("/chat", h.handleGetTranscript)
}

type postRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

type postResponse struct {
	Response        string                `json:"response"`
	EngagementScore int                   `json:"engagementScore"`
	CurrentStage    int                   `json:"currentStage"`
	UserProfile     chatModel.UserProfile `json:"userProfile"`
	SessionID       string                `json:"sessionId"`
}

func (h *Handler) handlePostMessage(w http.ResponseWriter, r *http.Request) {
	var payload postRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.Message == "" || payload.SessionID == "" {
		utils.RespondError(w, http.StatusBadRequest, "message and sessionId are required")
		return
	}

	session := h.sessions.GetOrCreate(payload.SessionID)
	reply := session.ProcessMessage(r.Context(), payload.Message)
	state := session.Context()

	utils.RespondJSON(w, http.StatusOK, postResponse{
		Response:        reply,
		EngagementScore: state.EngagementScore,
		CurrentStage:    state.CurrentStage,
		UserProfile:     state.UserProfile,
		SessionID:       state.SessionID,
	})
}

type transcriptResponse struct {
	Messages        []chatModel.Message   `json:"messages"`
	EngagementScore int                   `json:"engagementScore"`
	CurrentStage    int                   `json:"currentStage"`
	UserProfile     chatModel.UserProfile `json:"userProfile"`
}

func (h *Handler) handleGetTranscript(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		utils.RespondError(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	session, ok := h.sessions.Lookup(sessionID)
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "session not found")
		return
	}

	state := session.Context()
	utils.RespondJSON(w, http.StatusOK, transcriptResponse{
		Messages:        state.Messages,
		EngagementScore: state.EngagementScore,
		CurrentStage:    state.CurrentStage,
		UserProfile:     state.UserProfile,
	})
}
