package engine

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"

	"github.com/mohamedfarez/ai-twin/backend/internal/analysis/intent"
	"github.com/mohamedfarez/ai-twin/backend/internal/fallback"
	"github.com/mohamedfarez/ai-twin/backend/internal/model/chat"
	"github.com/mohamedfarez/ai-twin/backend/internal/model/persona"
	"github.com/mohamedfarez/ai-twin/backend/internal/prompt"
	"github.com/mohamedfarez/ai-twin/backend/internal/service/llm"
)

// FallbackProvider is the provider name recorded when templated replies
// served the turn.
const FallbackProvider = "fallback"

// Generator is the slice of the orchestrator the session needs. Tests inject
// stubs through it.
type Generator interface {
	Generate(ctx context.Context, req *llm.Request, preferred int) (*llm.Response, int, error)
	Stream(ctx context.Context, req *llm.Request, preferred int) (*schema.StreamReader[*schema.Message], string, int, error)
}

// Session is the stateful per-visitor aggregate: message history, stage,
// profile accumulator and engagement score. All mutation flows through
// ProcessMessage / ProcessMessageStream.
//
// The mutex only provides memory safety for concurrent messages on the same
// session id, an accepted edge case; ordering between such messages is not
// defined.
type Session struct {
	mu sync.Mutex

	state     chat.Context
	persona   persona.Persona
	analyzer  *intent.Analyzer
	composer  *prompt.Composer
	responder *fallback.Responder
	llm       Generator

	// preferred is the sticky provider index: a successful call keeps
	// serving this session until that provider fails.
	preferred int
}

// NewSession starts a fresh conversation at stage 1 with score 0.
func NewSession(sessionID string, p persona.Persona, gen Generator) *Session {
	return &Session{
		state: chat.Context{
			Messages:     make([]chat.Message, 0, 16),
			CurrentStage: 1,
			SessionID:    sessionID,
		},
		persona:   p,
		analyzer:  intent.New(p.Analysis),
		composer:  prompt.NewComposer(p),
		responder: fallback.New(p),
		llm:       gen,
	}
}

// ProcessMessage runs one full turn and returns the reply text. Internal
// failures never surface: total provider exhaustion is absorbed by the
// fallback responder.
func (s *Session) ProcessMessage(ctx context.Context, text string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, in := s.beginTurn(text)

	var (
		reply    string
		provider string
	)
	resp, idx, err := s.llm.Generate(ctx, &llm.Request{Messages: s.composer.Compose(in)}, s.preferred)
	if err != nil {
		if !errors.Is(err, llm.ErrAllProvidersFailed) {
			log.Printf("[engine] unexpected generation error for session=%s: %v", s.state.SessionID, err)
		}
		reply = s.responder.Reply(res, s.state.CurrentStage, !hasAssistant(in.History))
		provider = FallbackProvider
	} else {
		reply = resp.Content
		provider = resp.Provider
		s.preferred = idx
	}

	s.finishTurn(reply, provider, res)
	return reply
}

// ProcessMessageStream is ProcessMessage for the SSE surface: deltas are
// delivered through onDelta as they arrive and the final reply is returned.
// On total provider failure the templated reply arrives as a single delta.
func (s *Session) ProcessMessageStream(ctx context.Context, text string, onDelta func(string)) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, in := s.beginTurn(text)

	stream, provider, idx, err := s.llm.Stream(ctx, &llm.Request{Messages: s.composer.Compose(in)}, s.preferred)
	if err == nil {
		if reply, streamErr := drain(stream, onDelta); streamErr == nil {
			s.preferred = idx
			s.finishTurn(reply, provider, res)
			return reply
		} else {
			log.Printf("[engine] stream aborted for session=%s: %v", s.state.SessionID, streamErr)
		}
	}

	reply := s.responder.Reply(res, s.state.CurrentStage, !hasAssistant(in.History))
	onDelta(reply)
	s.finishTurn(reply, FallbackProvider, res)
	return reply
}

// Context returns a deep copy of the conversation state.
func (s *Session) Context() chat.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// EngagementScore returns the current bounded score.
func (s *Session) EngagementScore() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.EngagementScore
}

// beginTurn appends the user message, classifies it and updates profile,
// score and stage. Callers hold s.mu.
func (s *Session) beginTurn(text string) (intent.Result, prompt.Input) {
	history := append([]chat.Message(nil), s.state.Messages...)
	s.append(chat.RoleUser, text, nil)

	res := s.analyzer.Analyze(text)
	s.mergeProfile(res)
	s.state.EngagementScore = UpdateScore(s.state.EngagementScore, res)
	s.advanceStage(res)

	return res, prompt.Input{
		Stage:       s.state.CurrentStage,
		Score:       s.state.EngagementScore,
		Interests:   s.state.UserProfile.Interests,
		History:     history,
		Analysis:    res,
		UserMessage: text,
	}
}

// finishTurn appends the assistant reply with full turn metadata.
func (s *Session) finishTurn(reply, provider string, res intent.Result) {
	s.append(chat.RoleAssistant, reply, &chat.Metadata{
		Stage:           s.state.CurrentStage,
		Intent:          res.Intent,
		Sentiment:       string(res.Sentiment),
		EngagementScore: s.state.EngagementScore,
		Provider:        provider,
	})
}

func (s *Session) append(role, content string, meta *chat.Metadata) {
	s.state.Messages = append(s.state.Messages, chat.Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
		Metadata:  meta,
	})
}

// mergeProfile folds newly observed keywords and objections into the user
// profile. Duplicates accumulate on purpose.
func (s *Session) mergeProfile(res intent.Result) {
	// Healthcare outranks education within one message; a later message can
	// still reassign the industry.
	hasHealthcare, hasEducation := false, false
	for _, kw := range res.Keywords {
		switch kw {
		case "healthcare":
			hasHealthcare = true
		case "education":
			hasEducation = true
		}
	}
	switch {
	case hasHealthcare:
		s.state.UserProfile.Industry = "healthcare"
	case hasEducation:
		s.state.UserProfile.Industry = "education"
	}
	s.state.UserProfile.Interests = append(s.state.UserProfile.Interests, res.Keywords...)
	s.state.UserProfile.TechnicalChallenges = append(s.state.UserProfile.TechnicalChallenges, res.Objections...)
}

// advanceStage keeps the visible stage monotonically non-decreasing. A
// collaboration request jumps straight to 5; otherwise accumulated score and
// message count pull the stage up to at most 4.
func (s *Session) advanceStage(res intent.Result) {
	if res.Intent == intent.CollaborationRequest {
		s.state.CurrentStage = 5
		return
	}
	if implicit := s.implicitStage(); implicit > s.state.CurrentStage {
		s.state.CurrentStage = implicit
	}
}

func (s *Session) implicitStage() int {
	users := 0
	for _, m := range s.state.Messages {
		if m.Role == chat.RoleUser {
			users++
		}
	}
	score := s.state.EngagementScore

	switch {
	case users >= 5 && score >= 50:
		return 4
	case users >= 3 && score >= 25:
		return 3
	case users >= 2:
		return 2
	default:
		return 1
	}
}

func hasAssistant(history []chat.Message) bool {
	for _, m := range history {
		if m.Role == chat.RoleAssistant {
			return true
		}
	}
	return false
}

// drain consumes a provider stream, forwarding deltas and concatenating the
// final reply.
func drain(stream *schema.StreamReader[*schema.Message], onDelta func(string)) (string, error) {
	defer stream.Close()

	chunks := make([]*schema.Message, 0, 8)
	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		if chunk == nil {
			continue
		}
		chunks = append(chunks, chunk)
		if chunk.Content != "" && onDelta != nil {
			onDelta(chunk.Content)
		}
	}

	if len(chunks) == 0 {
		return "", errors.New("empty stream")
	}
	full, err := schema.ConcatMessages(chunks)
	if err != nil {
		return "", err
	}
	return full.Content, nil
}
