// Package adminpb describes the chatrelay.admin.v1.AdminService.
//
// The service only carries protobuf well-known types, so it is declared by
// hand instead of generated: ListSessions answers a ListValue of session
// structs, Watch streams one Struct per delivered envelope.
package adminpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName                              = "chatrelay.admin.v1.AdminService"
	AdminService_ListSessions_FullMethodName = "/chatrelay.admin.v1.AdminService/ListSessions"
	AdminService_Watch_FullMethodName        = "/chatrelay.admin.v1.AdminService/Watch"
)

type AdminService_WatchServer = grpc.ServerStreamingServer[structpb.Struct]

type AdminService_WatchClient = grpc.ServerStreamingClient[structpb.Struct]

// AdminServiceServer is implemented by the relay's admin surface.
type AdminServiceServer interface {
	ListSessions(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	Watch(*emptypb.Empty, AdminService_WatchServer) error
}

func RegisterAdminServiceServer(s grpc.ServiceRegistrar, srv AdminServiceServer) {
	s.RegisterService(&AdminService_ServiceDesc, srv)
}

func _AdminService_ListSessions_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AdminServiceServer).ListSessions(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: AdminService_ListSessions_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AdminServiceServer).ListSessions(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _AdminService_Watch_Handler(srv any, stream grpc.ServerStream) error {
	m := new(emptypb.Empty)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(AdminServiceServer).Watch(m, &grpc.GenericServerStream[emptypb.Empty, structpb.Struct]{ServerStream: stream})
}

var AdminService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AdminServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListSessions",
			Handler:    _AdminService_ListSessions_Handler,
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Watch",
			Handler:       _AdminService_Watch_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "chatrelay/admin/v1/admin.proto",
}

type AdminServiceClient interface {
	ListSessions(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.ListValue, error)
	Watch(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (AdminService_WatchClient, error)
}

type adminServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAdminServiceClient(cc grpc.ClientConnInterface) AdminServiceClient {
	return &adminServiceClient{cc}
}

func (c *adminServiceClient) ListSessions(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, AdminService_ListSessions_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *adminServiceClient) Watch(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (AdminService_WatchClient, error) {
	stream, err := c.cc.NewStream(ctx, &AdminService_ServiceDesc.Streams[0], AdminService_Watch_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[emptypb.Empty, structpb.Struct]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}
