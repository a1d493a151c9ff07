package chat

import "time"

// Message roles as they appear on the wire.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Metadata records how the engine classified the turn that produced a message.
type Metadata struct {
	Stage           int    `json:"stage,omitempty"`
	Intent          string `json:"intent,omitempty"`
	Sentiment       string `json:"sentiment,omitempty"`
	EngagementScore int    `json:"engagementScore,omitempty"`
	Provider        string `json:"provider,omitempty"`
}

// Message is one immutable conversation turn. Messages are append-only and
// insertion order equals chronological order.
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"timestamp"`
	Metadata  *Metadata `json:"metadata,omitempty"`
}
