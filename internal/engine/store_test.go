package engine

import (
	"testing"
	"time"

	"github.com/mohamedfarez/ai-twin/backend/internal/model/persona"
)

func newStoreForTest(ttl time.Duration) *Store {
	s := NewStore(ttl, func(sessionID string) *Session {
		return NewSession(sessionID, persona.Personal(), nil)
	})
	return s
}

func TestGetOrCreateReturnsSameSession(t *testing.T) {
	s := newStoreForTest(time.Minute)
	defer s.Close()

	first := s.GetOrCreate("abc")
	second := s.GetOrCreate("abc")
	if first != second {
		t.Fatal("expected a single session instance per id")
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 session, got %d", s.Len())
	}
}

func TestLookupDoesNotCreate(t *testing.T) {
	s := newStoreForTest(time.Minute)
	defer s.Close()

	if _, ok := s.Lookup("missing"); ok {
		t.Fatal("lookup must not create sessions")
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty store, got %d", s.Len())
	}
}

func TestSweepEvictsIdleSessions(t *testing.T) {
	s := newStoreForTest(30 * time.Minute)
	defer s.Close()

	s.GetOrCreate("stale")
	s.GetOrCreate("fresh")

	s.mu.Lock()
	s.sessions["stale"].lastSeen = time.Now().Add(-31 * time.Minute)
	s.mu.Unlock()

	if n := s.sweep(time.Now()); n != 1 {
		t.Fatalf("expected 1 eviction, got %d", n)
	}
	if _, ok := s.Lookup("stale"); ok {
		t.Fatal("stale session should be gone")
	}
	if _, ok := s.Lookup("fresh"); !ok {
		t.Fatal("fresh session should survive")
	}
}

func TestLookupRefreshesIdleClock(t *testing.T) {
	s := newStoreForTest(30 * time.Minute)
	defer s.Close()

	s.GetOrCreate("busy")
	s.mu.Lock()
	s.sessions["busy"].lastSeen = time.Now().Add(-29 * time.Minute)
	s.mu.Unlock()

	// A read within the TTL window restarts the idle clock.
	if _, ok := s.Lookup("busy"); !ok {
		t.Fatal("session should still be live")
	}
	if n := s.sweep(time.Now().Add(2 * time.Minute)); n != 0 {
		t.Fatalf("refreshed session was evicted (%d)", n)
	}
}
