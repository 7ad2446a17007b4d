// Package projection builds the local transcript from delivered envelopes.
// Handles ordering only: envelopes are kept exactly as delivered.
// Does not emit envelopes or interact with UI directly.
package projection

import (
	"chat-relay/domain"
	"context"
	"slices"
	"sync"

	"github.com/samber/lo"
)

// Transcript holds what one display has shown, in delivery order.
type Transcript struct {
	mu        sync.RWMutex
	Owner     string
	envelopes []domain.Envelope
}

func NewTranscript(owner string) *Transcript {
	return &Transcript{Owner: owner}
}

func (t *Transcript) Consume(_ context.Context, envelope domain.Envelope) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.envelopes = append(t.envelopes, envelope)
	return nil
}

func (t *Transcript) Envelopes() []domain.Envelope {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.envelopes)
}

// Lines renders the transcript without color markup.
func (t *Transcript) Lines() []string {
	return lo.Map(t.Envelopes(), func(e domain.Envelope, _ int) string { return e.Line() })
}

func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.envelopes)
}
