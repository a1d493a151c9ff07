package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"
)

// ErrAllProvidersFailed signals total exhaustion: every candidate provider
// was either cooling down or failed its single attempt. Callers absorb this
// with the fallback responder; it never reaches the HTTP layer.
var ErrAllProvidersFailed = errors.New("all llm providers failed")

// Orchestrator walks the provider list with sticky preference and cool-down
// failover. Each provider gets exactly one attempt per call.
type Orchestrator struct {
	providers []Provider
	health    *Health
}

// NewOrchestrator wires the ordered provider list to a failure table. Both
// are injected so tests can isolate them.
func NewOrchestrator(providers []Provider, health *Health) *Orchestrator {
	return &Orchestrator{providers: providers, health: health}
}

// Generate tries providers starting at the preferred index, wrapping around
// and skipping any provider in cool-down. It returns the normalized response
// and the index that served it, so callers can stay sticky on that provider.
func (o *Orchestrator) Generate(ctx context.Context, req *Request, preferred int) (*Response, int, error) {
	var lastErr error

	for attempt := 0; attempt < len(o.providers); attempt++ {
		idx := (preferred + attempt) % len(o.providers)
		p := o.providers[idx]

		if !o.health.Available(p.Name()) {
			continue
		}

		resp, err := p.Generate(ctx, req)
		if err == nil {
			o.health.Reset()
			log.Printf("[llm] served by %s", p.Name())
			return resp, idx, nil
		}

		lastErr = err
		o.health.MarkFailed(p.Name())
		log.Printf("[llm] provider %s failed (%s): %v", p.Name(), failureClass(err), err)
	}

	if lastErr == nil {
		lastErr = errors.New("no provider available")
	}
	return nil, preferred, fmt.Errorf("%w: %v", ErrAllProvidersFailed, lastErr)
}

// Stream is Generate's streaming twin with identical selection semantics.
// A provider that errors before producing its stream is marked failed and
// the next candidate is tried.
func (o *Orchestrator) Stream(ctx context.Context, req *Request, preferred int) (*schema.StreamReader[*schema.Message], string, int, error) {
	var lastErr error

	for attempt := 0; attempt < len(o.providers); attempt++ {
		idx := (preferred + attempt) % len(o.providers)
		p := o.providers[idx]

		if !o.health.Available(p.Name()) {
			continue
		}

		stream, err := p.Stream(ctx, req)
		if err == nil {
			o.health.Reset()
			return stream, p.Name(), idx, nil
		}

		lastErr = err
		o.health.MarkFailed(p.Name())
		log.Printf("[llm] provider %s stream failed (%s): %v", p.Name(), failureClass(err), err)
	}

	if lastErr == nil {
		lastErr = errors.New("no provider available")
	}
	return nil, "", preferred, fmt.Errorf("%w: %v", ErrAllProvidersFailed, lastErr)
}

// ProviderStatus is the operator-facing view of one provider.
type ProviderStatus struct {
	Name         string     `json:"name"`
	Status       string     `json:"status"`
	CoolingUntil *time.Time `json:"coolingUntil,omitempty"`
}

// Status snapshots the failure table for the providers endpoint.
func (o *Orchestrator) Status() []ProviderStatus {
	out := make([]ProviderStatus, 0, len(o.providers))
	for _, p := range o.providers {
		st := ProviderStatus{Name: p.Name(), Status: "active"}
		if until, cooling := o.health.CoolingUntil(p.Name()); cooling {
			st.Status = "cooling"
			st.CoolingUntil = &until
		}
		out = append(out, st)
	}
	return out
}

// failureClass tags an error as transient (rate limit, timeout, gateway
// errors) or permanent for the logs. Both classes share the same cool-down.
func failureClass(err error) string {
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"rate limit", "timeout", "deadline exceeded", "502", "503"} {
		if strings.Contains(msg, marker) {
			return "transient"
		}
	}
	return "permanent"
}
