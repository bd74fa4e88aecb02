package grpcrand

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// RandomnessStateServer is the server API for the RandomnessState gRPC
// service.
//
// We intentionally use protobuf well-known wrapper types so this package
// does not require a protoc/codegen toolchain. Submit carries a
// wire-encoded signed update envelope; State carries a wire-encoded inner
// state payload.
//
// Proto definition: randstate.proto.
type RandomnessStateServer interface {
	Submit(context.Context, *wrapperspb.BytesValue) (*wrapperspb.UInt64Value, error)
	State(context.Context, *wrapperspb.UInt64Value) (*wrapperspb.BytesValue, error)
}

// UnimplementedRandomnessStateServer can be embedded to have forward compatible implementations.
type UnimplementedRandomnessStateServer struct{}

func (UnimplementedRandomnessStateServer) Submit(context.Context, *wrapperspb.BytesValue) (*wrapperspb.UInt64Value, error) {
	return nil, status.Error(codes.Unimplemented, "method Submit not implemented")
}
func (UnimplementedRandomnessStateServer) State(context.Context, *wrapperspb.UInt64Value) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method State not implemented")
}

// RegisterRandomnessStateServer registers the RandomnessState service on a gRPC server.
func RegisterRandomnessStateServer(s grpc.ServiceRegistrar, srv RandomnessStateServer) {
	s.RegisterService(&RandomnessState_ServiceDesc, srv)
}

// RandomnessStateClient is the client API for the RandomnessState gRPC service.
type RandomnessStateClient interface {
	Submit(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.UInt64Value, error)
	State(ctx context.Context, in *wrapperspb.UInt64Value, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
}

type randomnessStateClient struct{ cc grpc.ClientConnInterface }

func NewRandomnessStateClient(cc grpc.ClientConnInterface) RandomnessStateClient {
	return &randomnessStateClient{cc: cc}
}

func (c *randomnessStateClient) Submit(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.UInt64Value, error) {
	out := new(wrapperspb.UInt64Value)
	err := c.cc.Invoke(ctx, "/xdao.randstate.v1.RandomnessState/Submit", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *randomnessStateClient) State(ctx context.Context, in *wrapperspb.UInt64Value, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	err := c.cc.Invoke(ctx, "/xdao.randstate.v1.RandomnessState/State", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func _RandomnessState_Submit_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RandomnessStateServer).Submit(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/xdao.randstate.v1.RandomnessState/Submit"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RandomnessStateServer).Submit(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _RandomnessState_State_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.UInt64Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RandomnessStateServer).State(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/xdao.randstate.v1.RandomnessState/State"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RandomnessStateServer).State(ctx, req.(*wrapperspb.UInt64Value))
	}
	return interceptor(ctx, in, info, handler)
}

// RandomnessState_ServiceDesc is the grpc.ServiceDesc for RandomnessState service.
var RandomnessState_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "xdao.randstate.v1.RandomnessState",
	HandlerType: (*RandomnessStateServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Submit", Handler: _RandomnessState_Submit_Handler},
		{MethodName: "State", Handler: _RandomnessState_State_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "randstate.proto",
}
