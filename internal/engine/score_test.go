package engine_test

import (
	"testing"

	"github.com/mohamedfarez/ai-twin/backend/internal/analysis/intent"
	"github.com/mohamedfarez/ai-twin/backend/internal/engine"
)

func TestUpdateScoreSentiment(t *testing.T) {
	if got := engine.UpdateScore(50, intent.Result{Sentiment: intent.Positive}); got != 60 {
		t.Fatalf("positive: expected 60, got %d", got)
	}
	if got := engine.UpdateScore(50, intent.Result{Sentiment: intent.Negative}); got != 45 {
		t.Fatalf("negative: expected 45, got %d", got)
	}
	if got := engine.UpdateScore(50, intent.Result{Sentiment: intent.Neutral}); got != 50 {
		t.Fatalf("neutral: expected 50, got %d", got)
	}
}

func TestUpdateScoreBonusIsAdditive(t *testing.T) {
	res := intent.Result{Sentiment: intent.Positive, Intent: intent.CollaborationRequest, Bonus: 30}
	if got := engine.UpdateScore(0, res); got != 40 {
		t.Fatalf("expected 40 (+10 sentiment +30 bonus), got %d", got)
	}
}

func TestUpdateScoreSaturates(t *testing.T) {
	if got := engine.UpdateScore(95, intent.Result{Sentiment: intent.Positive, Bonus: 30}); got != 100 {
		t.Fatalf("expected clamp to 100, got %d", got)
	}
	if got := engine.UpdateScore(2, intent.Result{Sentiment: intent.Negative}); got != 0 {
		t.Fatalf("expected clamp to 0, got %d", got)
	}
}
