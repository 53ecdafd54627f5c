package audit

import (
	"context"
	"sync"
)

// Publisher forwards packaged envelopes to an external event bus. Emission
// failures are the caller's to handle; packaging never depends on them.
type Publisher interface {
	Publish(ctx context.Context, envelope Envelope) error
}

// MemoryPublisher collects envelopes in memory. Used in tests and as the
// local-dev sink when no broker is configured.
type MemoryPublisher struct {
	mu        sync.Mutex
	envelopes []Envelope
}

// NewMemoryPublisher constructs an empty in-memory sink.
func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{}
}

func (p *MemoryPublisher) Publish(_ context.Context, envelope Envelope) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.envelopes = append(p.envelopes, envelope)
	return nil
}

// Envelopes returns a copy of everything published so far.
func (p *MemoryPublisher) Envelopes() []Envelope {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Envelope, len(p.envelopes))
	copy(out, p.envelopes)
	return out
}
