package workers

import (
	"chat-relay/contract"
	"chat-relay/domain"
	"context"
	"log/slog"
	"sync"
	"time"
)

type subscription struct {
	id   uint64
	sink contract.EnvelopeSink
}

// DeliveryFanout hands every delivered envelope to each subscribed sink.
//
// Sinks are called one after the other, in delivery order, each bounded by
// sinkTimeout. A failing sink is logged and skipped for that envelope only.
type DeliveryFanout struct {
	mu          sync.RWMutex
	log         *slog.Logger
	delivered   <-chan domain.Envelope
	subs        []subscription
	nextID      uint64
	sinkTimeout time.Duration
}

func NewDeliveryFanout(log *slog.Logger, delivered <-chan domain.Envelope, sinkTimeout time.Duration) *DeliveryFanout {
	return &DeliveryFanout{log: log, delivered: delivered, sinkTimeout: sinkTimeout}
}

// Subscribe adds a sink and returns the function removing it.
func (w *DeliveryFanout) Subscribe(sink contract.EnvelopeSink) (unsubscribe func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextID++
	id := w.nextID
	w.subs = append(w.subs, subscription{id: id, sink: sink})
	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		for i, s := range w.subs {
			if s.id == id {
				w.subs = append(w.subs[:i:i], w.subs[i+1:]...)
				return
			}
		}
	}
}

func (w *DeliveryFanout) Run(ctx context.Context) error {
	for {
		select {
		case envelope := <-w.delivered:
			w.Fanout(ctx, envelope)
		case <-ctx.Done():
			w.log.Debug("Context done, stopping delivery fanout")
			return nil
		}
	}
}

// Fanout One sink after the other for each envelope
func (w *DeliveryFanout) Fanout(ctx context.Context, envelope domain.Envelope) {
	w.mu.RLock()
	subs := w.subs
	w.mu.RUnlock()

	for _, s := range subs {
		w.consume(ctx, s.sink, envelope)
	}
}

func (w *DeliveryFanout) consume(ctx context.Context, sink contract.EnvelopeSink, envelope domain.Envelope) {
	if w.sinkTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.sinkTimeout)
		defer cancel()
	}
	if err := sink.Consume(ctx, envelope); err != nil {
		w.log.Warn("Sink failed to consume envelope", "sender", envelope.SenderName, "error", err)
	}
}
