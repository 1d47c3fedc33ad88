package console

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Service and method names on the wire.
const (
	ServiceName         = "pawfeeder.v1.Console"
	SubmitFullMethod    = "/" + ServiceName + "/Submit"
	StatusFullMethod    = "/" + ServiceName + "/Status"
	OperatorMetadataKey = "x-pawfeeder-operator"
)

// ConsoleServer is the server API for the Console service.
type ConsoleServer interface {
	Submit(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error)
	Status(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
}

// ServiceDesc describes the Console service for grpc.Server registration.
//
//nolint:gochecknoglobals // grpc keeps a pointer to the descriptor.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ConsoleServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Submit",
			Handler:    submitHandler,
		},
		{
			MethodName: "Status",
			Handler:    statusHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "pawfeeder/v1/console.proto",
}

// Register attaches srv to the gRPC registrar.
func Register(registrar grpc.ServiceRegistrar, srv ConsoleServer) {
	registrar.RegisterService(&ServiceDesc, srv)
}

func submitHandler(
	srv any,
	ctx context.Context, //nolint:revive // Signature is fixed by grpc.MethodHandler.
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(ConsoleServer).Submit(ctx, in)
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: SubmitFullMethod,
	}

	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ConsoleServer).Submit(ctx, req.(*wrapperspb.StringValue))
	}

	return interceptor(ctx, in, info, handler)
}

func statusHandler(
	srv any,
	ctx context.Context, //nolint:revive // Signature is fixed by grpc.MethodHandler.
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(ConsoleServer).Status(ctx, in)
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: StatusFullMethod,
	}

	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ConsoleServer).Status(ctx, req.(*emptypb.Empty))
	}

	return interceptor(ctx, in, info, handler)
}
