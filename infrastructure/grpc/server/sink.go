package server

import (
	"chat-relay/domain"
	"context"
)

// StreamSink buffers the envelopes of one Watch stream.
type StreamSink struct {
	Envelopes chan domain.Envelope
}

func NewStreamSink(bufferSize int) *StreamSink {
	return &StreamSink{Envelopes: make(chan domain.Envelope, bufferSize)}
}

// Consume is called by the delivery fanout.
// A full buffer drops the envelope rather than stall every other display.
func (s *StreamSink) Consume(ctx context.Context, envelope domain.Envelope) error {
	select {
	case s.Envelopes <- envelope:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
