package intent_test

import (
	"testing"

	"github.com/mohamedfarez/ai-twin/backend/internal/analysis/intent"
	"github.com/mohamedfarez/ai-twin/backend/internal/model/persona"
)

func professionalAnalyzer() *intent.Analyzer {
	return intent.New(persona.Professional().Analysis)
}

func TestAnalyzeBudgetIntent(t *testing.T) {
	a := professionalAnalyzer()

	for _, msg := range []string{
		"What is your price?",
		"How much does it cost?",
		"We have a limited budget",
	} {
		res := a.Analyze(msg)
		if res.Intent != intent.BudgetInquiry {
			t.Fatalf("message %q: expected budget_inquiry, got %s", msg, res.Intent)
		}
	}
}

func TestAnalyzeCollaborationStemForms(t *testing.T) {
	a := professionalAnalyzer()

	// The rule keyword is a stem, so all inflections of "collaborate" match.
	for _, msg := range []string{
		"I'd like to discuss collaborating on a project",
		"let's collaborate",
		"open to a collaboration?",
	} {
		res := a.Analyze(msg)
		if res.Intent != intent.CollaborationRequest {
			t.Fatalf("message %q: expected collaboration_request, got %s", msg, res.Intent)
		}
		if res.Bonus != 30 {
			t.Fatalf("message %q: expected bonus 30, got %d", msg, res.Bonus)
		}
	}
}

func TestAnalyzeUnmatchedYieldsGeneralInquiry(t *testing.T) {
	res := professionalAnalyzer().Analyze("hello there")
	if res.Intent != intent.GeneralInquiry {
		t.Fatalf("expected general_inquiry, got %s", res.Intent)
	}
	if res.Bonus != 0 {
		t.Fatalf("expected no bonus, got %d", res.Bonus)
	}
}

func TestAnalyzePositiveSentimentWinsOverNegative(t *testing.T) {
	// "great" is positive, "expensive" is negative; positive takes priority.
	res := professionalAnalyzer().Analyze("This looks great but expensive")
	if res.Sentiment != intent.Positive {
		t.Fatalf("expected positive sentiment, got %s", res.Sentiment)
	}
}

func TestAnalyzeNegativeSentiment(t *testing.T) {
	res := professionalAnalyzer().Analyze("that is too expensive for us")
	if res.Sentiment != intent.Negative {
		t.Fatalf("expected negative sentiment, got %s", res.Sentiment)
	}
}

func TestAnalyzeNeutralSentiment(t *testing.T) {
	res := professionalAnalyzer().Analyze("tell me more")
	if res.Sentiment != intent.Neutral {
		t.Fatalf("expected neutral sentiment, got %s", res.Sentiment)
	}
}

func TestAnalyzeMultipleObjections(t *testing.T) {
	res := professionalAnalyzer().Analyze("It sounds expensive and we already have a current system")

	want := map[string]bool{persona.BudgetConcerns: false, persona.ExistingSolution: false}
	for _, cat := range res.Objections {
		if _, ok := want[cat]; ok {
			want[cat] = true
		}
	}
	for cat, seen := range want {
		if !seen {
			t.Fatalf("expected objection %s in %v", cat, res.Objections)
		}
	}
}

func TestAnalyzeKeywordExtraction(t *testing.T) {
	res := professionalAnalyzer().Analyze("We use machine learning and Python in healthcare")

	found := make(map[string]bool)
	for _, kw := range res.Keywords {
		found[kw] = true
	}
	for _, want := range []string{"machine learning", "python", "healthcare"} {
		if !found[want] {
			t.Fatalf("expected keyword %q in %v", want, res.Keywords)
		}
	}
}

func TestPersonalTopicsCheckedBeforeProfessional(t *testing.T) {
	a := intent.New(persona.Personal().Analysis)

	// "match" triggers football_chat; "how" would have matched the generic
	// technical rule had the personal topic not come first.
	res := a.Analyze("how did you watch the Real Madrid match?")
	if res.Intent != persona.FootballChat {
		t.Fatalf("expected football_chat, got %s", res.Intent)
	}
	if res.Bonus != 25 {
		t.Fatalf("expected bonus 25, got %d", res.Bonus)
	}
}

func TestFirstMatchingRuleWins(t *testing.T) {
	a := intent.New(intent.Config{
		Rules: []intent.Rule{
			{Intent: "first", Keywords: []string{"alpha"}},
			{Intent: "second", Keywords: []string{"alpha", "beta"}},
		},
	})

	if res := a.Analyze("alpha beta"); res.Intent != "first" {
		t.Fatalf("expected first rule to win, got %s", res.Intent)
	}
}
