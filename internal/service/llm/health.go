package llm

import (
	"sync"
	"time"
)

// DefaultCooldown is how long a failed provider stays out of rotation.
// Transient and permanent failures share the one window; a failed provider
// that is still broken simply fails again on its next attempt.
const DefaultCooldown = 60 * time.Second

// Health is the process-wide provider failure table. It is an optimization
// hint, not a lock: concurrent orchestration calls may race on it, and that
// is tolerated. Constructed explicitly and injected so tests get isolated
// instances.
type Health struct {
	mu          sync.Mutex
	failedUntil map[string]time.Time
	cooldown    time.Duration
	now         func() time.Time
}

// NewHealth builds a failure table with the given cool-down window.
func NewHealth(cooldown time.Duration) *Health {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Health{
		failedUntil: make(map[string]time.Time),
		cooldown:    cooldown,
		now:         time.Now,
	}
}

// MarkFailed puts a provider into cool-down until now+window.
func (h *Health) MarkFailed(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.failedUntil[name] = h.now().Add(h.cooldown)
}

// Available reports whether a provider may be attempted.
func (h *Health) Available(name string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	until, ok := h.failedUntil[name]
	if !ok {
		return true
	}
	if h.now().Before(until) {
		return false
	}
	delete(h.failedUntil, name)
	return true
}

// Reset clears every failure mark. Called after any successful completion on
// the optimistic assumption that a working provider stays working.
func (h *Health) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.failedUntil = make(map[string]time.Time)
}

// CoolingUntil exposes the cool-down deadline for status reporting.
func (h *Health) CoolingUntil(name string) (time.Time, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	until, ok := h.failedUntil[name]
	if !ok || !h.now().Before(until) {
		return time.Time{}, false
	}
	return until, true
}
