package engine_test

import (
	"context"
	"strings"
	"testing"

	"github.com/cloudwego/eino/schema"

	"github.com/mohamedfarez/ai-twin/backend/internal/engine"
	"github.com/mohamedfarez/ai-twin/backend/internal/model/chat"
	"github.com/mohamedfarez/ai-twin/backend/internal/model/persona"
	"github.com/mohamedfarez/ai-twin/backend/internal/service/llm"
)

// stubGenerator satisfies engine.Generator without touching any provider.
type stubGenerator struct {
	content   string
	provider  string
	idx       int
	err       error
	preferred []int
	chunks    []string
}

func (g *stubGenerator) Generate(_ context.Context, _ *llm.Request, preferred int) (*llm.Response, int, error) {
	g.preferred = append(g.preferred, preferred)
	if g.err != nil {
		return nil, preferred, g.err
	}
	return &llm.Response{Content: g.content, Provider: g.provider}, g.idx, nil
}

func (g *stubGenerator) Stream(_ context.Context, _ *llm.Request, preferred int) (*schema.StreamReader[*schema.Message], string, int, error) {
	g.preferred = append(g.preferred, preferred)
	if g.err != nil {
		return nil, "", preferred, g.err
	}
	sr, sw := schema.Pipe[*schema.Message](len(g.chunks))
	go func() {
		defer sw.Close()
		for _, c := range g.chunks {
			sw.Send(schema.AssistantMessage(c, nil), nil)
		}
	}()
	return sr, g.provider, g.idx, nil
}

func newTestSession(gen engine.Generator) *engine.Session {
	return engine.NewSession("test-session", persona.Professional(), gen)
}

func TestProcessMessageRecordsBothTurns(t *testing.T) {
	gen := &stubGenerator{content: "Happy to help.", provider: "openai"}
	s := newTestSession(gen)

	reply := s.ProcessMessage(context.Background(), "Tell me about your work")
	if reply != "Happy to help." {
		t.Fatalf("unexpected reply %q", reply)
	}

	state := s.Context()
	if len(state.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(state.Messages))
	}
	if state.Messages[0].Role != chat.RoleUser || state.Messages[1].Role != chat.RoleAssistant {
		t.Fatalf("unexpected roles %s/%s", state.Messages[0].Role, state.Messages[1].Role)
	}
	meta := state.Messages[1].Metadata
	if meta == nil || meta.Provider != "openai" {
		t.Fatalf("expected openai provider metadata, got %+v", meta)
	}
}

func TestProcessMessageFallsBackWhenProvidersExhausted(t *testing.T) {
	s := newTestSession(&stubGenerator{err: llm.ErrAllProvidersFailed})

	reply := s.ProcessMessage(context.Background(), "hello")
	if reply == "" {
		t.Fatal("fallback reply must never be empty")
	}

	state := s.Context()
	meta := state.Messages[len(state.Messages)-1].Metadata
	if meta == nil || meta.Provider != engine.FallbackProvider {
		t.Fatalf("expected fallback provider metadata, got %+v", meta)
	}
}

func TestCollaborationRequestJumpsToStageFive(t *testing.T) {
	s := newTestSession(&stubGenerator{content: "sure", provider: "openai"})

	s.ProcessMessage(context.Background(), "hi")
	s.ProcessMessage(context.Background(), "I would love to collaborate with you")

	state := s.Context()
	if state.CurrentStage != 5 {
		t.Fatalf("expected stage 5, got %d", state.CurrentStage)
	}
	if state.EngagementScore < 30 {
		t.Fatalf("expected collaboration bonus in score, got %d", state.EngagementScore)
	}
}

func TestCollaboratingInflectionTriggersStageFive(t *testing.T) {
	s := newTestSession(&stubGenerator{content: "sure", provider: "openai"})

	before := s.EngagementScore()
	s.ProcessMessage(context.Background(), "I'd like to discuss collaborating on a project")

	state := s.Context()
	if state.CurrentStage != 5 {
		t.Fatalf("expected stage 5, got %d", state.CurrentStage)
	}
	if gain := state.EngagementScore - before; gain < 30 {
		t.Fatalf("expected score gain >= 30, got %d", gain)
	}
}

func TestIndustryFollowsLatestMessage(t *testing.T) {
	s := newTestSession(&stubGenerator{content: "ok", provider: "openai"})

	s.ProcessMessage(context.Background(), "we build chatbots for healthcare")
	if industry := s.Context().UserProfile.Industry; industry != "healthcare" {
		t.Fatalf("expected healthcare, got %q", industry)
	}

	s.ProcessMessage(context.Background(), "we have since moved into education")
	if industry := s.Context().UserProfile.Industry; industry != "education" {
		t.Fatalf("later education message should reassign industry, got %q", industry)
	}

	// Healthcare outranks education when one message mentions both.
	s.ProcessMessage(context.Background(), "serving both education and healthcare clients now")
	if industry := s.Context().UserProfile.Industry; industry != "healthcare" {
		t.Fatalf("healthcare should win within one message, got %q", industry)
	}
}

func TestStageNeverDecreases(t *testing.T) {
	s := newTestSession(&stubGenerator{content: "ok", provider: "openai"})

	prev := 1
	for _, msg := range []string{
		"hello",
		"this is great, love the machine learning work",
		"awesome, how does the nlp part work?",
		"let's collaborate on a project",
		"just thinking out loud",
		"hmm",
	} {
		s.ProcessMessage(context.Background(), msg)
		stage := s.Context().CurrentStage
		if stage < prev {
			t.Fatalf("stage dropped from %d to %d after %q", prev, stage, msg)
		}
		prev = stage
	}
	if prev != 5 {
		t.Fatalf("expected conversation to end at stage 5, got %d", prev)
	}
}

func TestEngagementScoreStaysBounded(t *testing.T) {
	s := newTestSession(&stubGenerator{content: "ok", provider: "openai"})

	for i := 0; i < 5; i++ {
		s.ProcessMessage(context.Background(), "no, that is way too expensive for us")
	}
	if score := s.EngagementScore(); score < 0 {
		t.Fatalf("score underflow: %d", score)
	}

	for i := 0; i < 10; i++ {
		s.ProcessMessage(context.Background(), "excellent, let's collaborate, love it")
	}
	if score := s.EngagementScore(); score > 100 {
		t.Fatalf("score overflow: %d", score)
	}
}

func TestPreferredProviderSticks(t *testing.T) {
	gen := &stubGenerator{content: "ok", provider: "gemini", idx: 2}
	s := newTestSession(gen)

	s.ProcessMessage(context.Background(), "hello")
	s.ProcessMessage(context.Background(), "another question")

	if len(gen.preferred) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(gen.preferred))
	}
	if gen.preferred[0] != 0 {
		t.Fatalf("first call should start at index 0, got %d", gen.preferred[0])
	}
	if gen.preferred[1] != 2 {
		t.Fatalf("second call should prefer index 2, got %d", gen.preferred[1])
	}
}

func TestProcessMessageStreamForwardsDeltas(t *testing.T) {
	gen := &stubGenerator{provider: "openai", chunks: []string{"Hello ", "there", "!"}}
	s := newTestSession(gen)

	var deltas []string
	reply := s.ProcessMessageStream(context.Background(), "hi", func(d string) {
		deltas = append(deltas, d)
	})

	if reply != "Hello there!" {
		t.Fatalf("unexpected assembled reply %q", reply)
	}
	if strings.Join(deltas, "") != reply {
		t.Fatalf("deltas %v do not assemble into %q", deltas, reply)
	}
}

func TestProcessMessageStreamFallbackIsSingleDelta(t *testing.T) {
	s := newTestSession(&stubGenerator{err: llm.ErrAllProvidersFailed})

	var deltas []string
	reply := s.ProcessMessageStream(context.Background(), "hi", func(d string) {
		deltas = append(deltas, d)
	})

	if reply == "" {
		t.Fatal("fallback reply must never be empty")
	}
	if len(deltas) != 1 || deltas[0] != reply {
		t.Fatalf("expected single delta equal to reply, got %v", deltas)
	}
}
