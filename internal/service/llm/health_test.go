package llm

import (
	"testing"
	"time"
)

func TestHealthMarkAndExpire(t *testing.T) {
	h := NewHealth(time.Minute)
	clock := fixedClock(h, time.Now())

	if !h.Available("openai") {
		t.Fatal("unmarked provider should be available")
	}

	h.MarkFailed("openai")
	if h.Available("openai") {
		t.Fatal("marked provider should be cooling")
	}

	*clock = clock.Add(59 * time.Second)
	if h.Available("openai") {
		t.Fatal("provider should still be cooling inside the window")
	}

	*clock = clock.Add(2 * time.Second)
	if !h.Available("openai") {
		t.Fatal("provider should recover after the window")
	}
}

func TestHealthReset(t *testing.T) {
	h := NewHealth(time.Minute)
	h.MarkFailed("openai")
	h.MarkFailed("gemini")

	h.Reset()
	if !h.Available("openai") || !h.Available("gemini") {
		t.Fatal("reset should clear all marks")
	}
}

func TestCoolingUntilDeadline(t *testing.T) {
	h := NewHealth(time.Minute)
	start := time.Now()
	clock := fixedClock(h, start)

	h.MarkFailed("ark")
	until, cooling := h.CoolingUntil("ark")
	if !cooling {
		t.Fatal("expected cooling state")
	}
	if want := start.Add(time.Minute); !until.Equal(want) {
		t.Fatalf("expected deadline %v, got %v", want, until)
	}

	*clock = clock.Add(2 * time.Minute)
	if _, cooling := h.CoolingUntil("ark"); cooling {
		t.Fatal("expired mark should not report cooling")
	}
}
