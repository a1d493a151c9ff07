package fallback_test

import (
	"strings"
	"testing"

	"github.com/mohamedfarez/ai-twin/backend/internal/analysis/intent"
	"github.com/mohamedfarez/ai-twin/backend/internal/fallback"
	"github.com/mohamedfarez/ai-twin/backend/internal/model/persona"
)

func contains(pool []string, s string) bool {
	for _, candidate := range pool {
		if candidate == s {
			return true
		}
	}
	return false
}

func TestReplyObjectionTakesPriorityOverIntent(t *testing.T) {
	p := persona.Professional()
	r := fallback.New(p)

	reply := r.Reply(intent.Result{
		Intent:     intent.DemoRequest,
		Objections: []string{persona.BudgetConcerns},
	}, 2, false)

	if !contains(p.ConcernResponses[persona.BudgetConcerns], reply) {
		t.Fatalf("expected a budget concern response, got %q", reply)
	}
}

func TestReplyUsesIntentPool(t *testing.T) {
	p := persona.Professional()
	r := fallback.New(p)

	reply := r.Reply(intent.Result{Intent: intent.BudgetInquiry}, 2, false)
	if !contains(p.IntentReplies[intent.BudgetInquiry], reply) {
		t.Fatalf("expected the budget template, got %q", reply)
	}
}

func TestReplyCollaborationIncludesContact(t *testing.T) {
	r := fallback.New(persona.Professional())

	reply := r.Reply(intent.Result{Intent: intent.CollaborationRequest}, 5, false)
	if !strings.Contains(reply, "mohamedhfares5@gmail.com") {
		t.Fatalf("collaboration reply should carry contact details, got %q", reply)
	}
}

func TestReplyExperienceNamesEmployers(t *testing.T) {
	r := fallback.New(persona.Professional())

	reply := r.Reply(intent.Result{Intent: intent.ExperienceInquiry}, 3, false)
	if !strings.Contains(reply, "Hive Tech") {
		t.Fatalf("experience reply should name employers, got %q", reply)
	}
}

func TestReplyFirstInteractionGreets(t *testing.T) {
	p := persona.Professional()
	r := fallback.New(p)

	reply := r.Reply(intent.Result{Intent: intent.GeneralInquiry}, 1, true)
	if !contains(p.Greetings, reply) {
		t.Fatalf("expected a greeting, got %q", reply)
	}
}

func TestReplyNeverEmpty(t *testing.T) {
	r := fallback.New(persona.Personal())

	intents := []string{
		intent.GeneralInquiry, intent.BudgetInquiry, intent.DemoRequest,
		intent.ExperienceInquiry, intent.CollaborationRequest, intent.TechnicalInquiry,
		persona.FootballChat, persona.ReadingChat, persona.AstronomyChat, persona.PoetryChat,
		"unknown_intent",
	}
	for _, in := range intents {
		for stage := 1; stage <= 5; stage++ {
			if reply := r.Reply(intent.Result{Intent: in}, stage, stage == 1); reply == "" {
				t.Fatalf("empty reply for intent=%s stage=%d", in, stage)
			}
		}
	}
}

func TestReplyUnknownObjectionUsesDefault(t *testing.T) {
	r := fallback.New(persona.Professional())

	reply := r.Reply(intent.Result{Objections: []string{"uncatalogued"}}, 2, false)
	if reply == "" {
		t.Fatal("unknown objections must still produce a reply")
	}
}
