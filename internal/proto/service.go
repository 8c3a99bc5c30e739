// Package adminpb declares the adminvote.v1.AdminService gRPC service.
// Requests and responses are protobuf well-known types, so the package only
// carries the service descriptor, the server interface and the client stub.
package adminpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "adminvote.v1.AdminService"

const (
	AdminService_Ping_FullMethodName      = "/" + ServiceName + "/Ping"
	AdminService_Register_FullMethodName  = "/" + ServiceName + "/Register"
	AdminService_Login_FullMethodName     = "/" + ServiceName + "/Login"
	AdminService_IsGranted_FullMethodName = "/" + ServiceName + "/IsGranted"
	AdminService_ListUsers_FullMethodName = "/" + ServiceName + "/ListUsers"
)

// AdminServiceServer is the server API for AdminService.
type AdminServiceServer interface {
	// Ping answers "OK".
	Ping(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
	// Register takes {"username", "password"} and returns {"id", "username"}.
	Register(context.Context, *structpb.Struct) (*structpb.Struct, error)
	// Login takes {"username", "password"} and returns an access token.
	Login(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error)
	// IsGranted reports whether the caller is granted the attribute.
	IsGranted(context.Context, *wrapperspb.StringValue) (*wrapperspb.BoolValue, error)
	// ListUsers returns {"users": [{"id", "username"}, ...]}.
	ListUsers(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// UnimplementedAdminServiceServer can be embedded for forward compatibility.
type UnimplementedAdminServiceServer struct{}

func (UnimplementedAdminServiceServer) Ping(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedAdminServiceServer) Register(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method Register not implemented")
}
func (UnimplementedAdminServiceServer) Login(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedAdminServiceServer) IsGranted(context.Context, *wrapperspb.StringValue) (*wrapperspb.BoolValue, error) {
	return nil, status.Error(codes.Unimplemented, "method IsGranted not implemented")
}
func (UnimplementedAdminServiceServer) ListUsers(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method ListUsers not implemented")
}

func RegisterAdminServiceServer(s grpc.ServiceRegistrar, srv AdminServiceServer) {
	s.RegisterService(&AdminService_ServiceDesc, srv)
}

// unaryHandler adapts a typed method into a grpc.MethodDesc handler.
func unaryHandler[Req any, Resp any](fullMethod string, call func(AdminServiceServer, context.Context, *Req) (*Resp, error)) func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AdminServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(AdminServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var AdminService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AdminServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Ping",
			Handler:    unaryHandler(AdminService_Ping_FullMethodName, AdminServiceServer.Ping),
		},
		{
			MethodName: "Register",
			Handler:    unaryHandler(AdminService_Register_FullMethodName, AdminServiceServer.Register),
		},
		{
			MethodName: "Login",
			Handler:    unaryHandler(AdminService_Login_FullMethodName, AdminServiceServer.Login),
		},
		{
			MethodName: "IsGranted",
			Handler:    unaryHandler(AdminService_IsGranted_FullMethodName, AdminServiceServer.IsGranted),
		},
		{
			MethodName: "ListUsers",
			Handler:    unaryHandler(AdminService_ListUsers_FullMethodName, AdminServiceServer.ListUsers),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "adminvote/v1/admin.proto",
}

// AdminServiceClient is the client API for AdminService.
type AdminServiceClient interface {
	Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	Register(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Login(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	IsGranted(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error)
	ListUsers(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type adminServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAdminServiceClient(cc grpc.ClientConnInterface) AdminServiceClient {
	return &adminServiceClient{cc}
}

func (c *adminServiceClient) Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, AdminService_Ping_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *adminServiceClient) Register(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, AdminService_Register_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *adminServiceClient) Login(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, AdminService_Login_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *adminServiceClient) IsGranted(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error) {
	out := new(wrapperspb.BoolValue)
	if err := c.cc.Invoke(ctx, AdminService_IsGranted_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *adminServiceClient) ListUsers(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, AdminService_ListUsers_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
