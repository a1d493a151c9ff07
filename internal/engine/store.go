package engine

import (
	"log"
	"sync"
	"time"
)

// Store maps session ids to live sessions with idle-based eviction. It is an
// explicit collaborator constructed at startup and injected into the HTTP
// handlers; a background janitor sweeps idle sessions until Close is called.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*storeEntry

	ttl     time.Duration
	factory func(sessionID string) *Session

	done      chan struct{}
	closeOnce sync.Once
}

type storeEntry struct {
	session  *Session
	lastSeen time.Time
}

// DefaultTTL matches the serverless original: sessions idle for 30 minutes
// are evicted.
const DefaultTTL = 30 * time.Minute

const sweepInterval = 5 * time.Minute

// NewStore builds a session store. The factory creates a session the first
// time an id is seen; ttl <= 0 falls back to DefaultTTL.
func NewStore(ttl time.Duration, factory func(sessionID string) *Session) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &Store{
		sessions: make(map[string]*storeEntry),
		ttl:      ttl,
		factory:  factory,
		done:     make(chan struct{}),
	}
	go s.janitor()
	return s
}

// GetOrCreate returns the session for an id, creating it on first sight.
// At most one session ever exists per id.
func (s *Store) GetOrCreate(sessionID string) *Session {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.sessions[sessionID]; ok {
		entry.lastSeen = now
		return entry.session
	}

	session := s.factory(sessionID)
	s.sessions[sessionID] = &storeEntry{session: session, lastSeen: now}
	return session
}

// Lookup returns an existing session without creating one. A hit refreshes
// the idle clock.
func (s *Store) Lookup(sessionID string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[sessionID]
	if !ok {
		return nil, false
	}
	entry.lastSeen = time.Now()
	return entry.session, true
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close stops the janitor. Sessions are process-memory-resident; there is
// nothing to flush.
func (s *Store) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

func (s *Store) janitor() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			if n := s.sweep(time.Now()); n > 0 {
				log.Printf("[engine] evicted %d idle session(s)", n)
			}
		}
	}
}

// sweep evicts sessions idle for at least the TTL and reports how many went.
func (s *Store) sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, entry := range s.sessions {
		if now.Sub(entry.lastSeen) >= s.ttl {
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}
