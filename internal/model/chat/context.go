package chat

// UserProfile accumulates what the visitor reveals about themselves over a
// session. Interests and technical challenges keep duplicates; the lists
// record every observation, not a deduplicated set.
type UserProfile struct {
	Industry            string   `json:"industry,omitempty"`
	Interests           []string `json:"interests,omitempty"`
	TechnicalChallenges []string `json:"technicalChallenges,omitempty"`
}

// Context is the full state of one conversation session. It is owned by
// exactly one engine.Session and mutated only through ProcessMessage.
type Context struct {
	Messages        []Message   `json:"messages"`
	CurrentStage    int         `json:"currentStage"`
	UserProfile     UserProfile `json:"userProfile"`
	EngagementScore int         `json:"engagementScore"`
	SessionID       string      `json:"sessionId"`
}

// Clone returns a deep copy safe to hand to callers while the session keeps
// mutating the original.
func (c Context) Clone() Context {
	out := c
	out.Messages = append([]Message(nil), c.Messages...)
	out.UserProfile.Interests = append([]string(nil), c.UserProfile.Interests...)
	out.UserProfile.TechnicalChallenges = append([]string(nil), c.UserProfile.TechnicalChallenges...)
	return out
}
