package chat

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/mohamedfarez/ai-twin/backend/internal/engine"
	"github.com/mohamedfarez/ai-twin/backend/pkg/utils"
)

// SocketHandler carries chat turns over a WebSocket, sharing sessions with
// the REST surface.
type SocketHandler struct {
	sessions *engine.Store
	upgrader websocket.Upgrader
}

// NewSocket creates the WebSocket chat handler.
func NewSocket(sessions *engine.Store) *SocketHandler {
	return &SocketHandler{
		sessions: sessions,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes mounts the WebSocket endpoint.
func (h *SocketHandler) RegisterRoutes(r chi.Router) {
	r.Get("/chat/ws", h.handleSocket)
}

type socketFrame struct {
	Message string `json:"message"`
}

type socketReply struct {
	Response        string `json:"response"`
	EngagementScore int    `json:"engagementScore"`
	CurrentStage    int    `json:"currentStage"`
	Error           string `json:"error,omitempty"`
}

func (h *SocketHandler) handleSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		utils.RespondError(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed for session=%s: %v", sessionID, err)
		return
	}
	defer conn.Close()

	log.Printf("[ws] connected session=%s", sessionID)
	session := h.sessions.GetOrCreate(sessionID)

	for {
		var frame socketFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] read failed for session=%s: %v", sessionID, err)
			}
			return
		}

		if frame.Message == "" {
			if err := conn.WriteJSON(socketReply{Error: "message is required"}); err != nil {
				return
			}
			continue
		}

		reply := session.ProcessMessage(r.Context(), frame.Message)
		state := session.Context()

		if err := conn.WriteJSON(socketReply{
			Response:        reply,
			EngagementScore: state.EngagementScore,
			CurrentStage:    state.CurrentStage,
		}); err != nil {
			log.Printf("[ws] write failed for session=%s: %v", sessionID, err)
			return
		}
	}
}
