package server

import (
	"chat-relay/contract"
	"chat-relay/errors"
	"chat-relay/infrastructure/grpc/adminpb"
	"context"
	"log/slog"

	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

type AdminServer struct {
	log                  *slog.Logger
	node                 contract.RelayNode
	connectionBufferSize int
}

func NewAdminServer(log *slog.Logger, node contract.RelayNode, connectionBufferSize int) *AdminServer {
	return &AdminServer{log: log, node: node, connectionBufferSize: connectionBufferSize}
}

// ListSessions returns the sessions registered on the authoritative node.
func (s *AdminServer) ListSessions(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	sessions, err := s.node.Sessions(ctx)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	values := make([]*structpb.Value, 0, len(sessions))
	for _, session := range sessions {
		st, err := adminpb.SessionToStruct(session)
		if err != nil {
			return nil, errors.MapToGRPCError(err)
		}
		values = append(values, structpb.NewStructValue(st))
	}
	return &structpb.ListValue{Values: values}, nil
}

// Watch streams every envelope the node delivers from now on.
// It blocks until the client goes away.
func (s *AdminServer) Watch(_ *emptypb.Empty, stream adminpb.AdminService_WatchServer) error {
	sink := NewStreamSink(s.connectionBufferSize)
	unsubscribe := s.node.Subscribe(sink)
	defer unsubscribe()

	for {
		select {
		case <-stream.Context().Done():
			s.log.Debug("Watcher disconnected")
			return nil
		case envelope := <-sink.Envelopes:
			st, err := adminpb.EnvelopeToStruct(envelope)
			if err != nil {
				s.log.Warn("Envelope not convertible", "sender", envelope.SenderName, "error", err)
				continue
			}
			if err := stream.Send(st); err != nil {
				s.log.Error("failed to push envelope to stream", "sender", envelope.SenderName, "error", err)
				return err
			}
		}
	}
}
