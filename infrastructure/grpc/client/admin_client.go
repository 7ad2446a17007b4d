package client

import (
	"chat-relay/domain"
	"chat-relay/infrastructure/grpc/adminpb"
	"context"
	stderrors "errors"
	"io"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

// AdminClient reads a running relay through its admin service.
type AdminClient struct {
	Client adminpb.AdminServiceClient
}

func NewAdminClient(conn grpc.ClientConnInterface) *AdminClient {
	return &AdminClient{Client: adminpb.NewAdminServiceClient(conn)}
}

func (c *AdminClient) ListSessions(ctx context.Context) ([]domain.Session, error) {
	list, err := c.Client.ListSessions(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, err
	}
	sessions := make([]domain.Session, 0, len(list.GetValues()))
	for _, v := range list.GetValues() {
		session, err := adminpb.SessionFromStruct(v.GetStructValue())
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

// Watch calls fn for every delivered envelope until ctx is done or the server ends the stream.
func (c *AdminClient) Watch(ctx context.Context, fn func(domain.Envelope)) error {
	stream, err := c.Client.Watch(ctx, &emptypb.Empty{})
	if err != nil {
		return err
	}
	for {
		st, err := stream.Recv()
		if stderrors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		envelope, err := adminpb.EnvelopeFromStruct(st)
		if err != nil {
			continue
		}
		fn(envelope)
	}
}
