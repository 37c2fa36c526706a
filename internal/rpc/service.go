// Package rpc defines the gophauth.v1.CredentialService gRPC contract: its
// messages, service descriptor, JSON codec and a typed client.
//
// Messages travel as JSON, not protobuf. Every call must select the codec
// with grpc.CallContentSubtype(CodecName), which puts
// "application/grpc+json" on the wire; CredentialServiceClient does this
// for each method. Protobuf-only tools such as grpcurl cannot call the
// service because there is no .proto descriptor or reflection to encode
// against.
package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "gophauth.v1.CredentialService"

// Full method names.
const (
	RegisterFullMethod           = "/" + ServiceName + "/Register"
	LoginFullMethod              = "/" + ServiceName + "/Login"
	BiometricLoginFullMethod     = "/" + ServiceName + "/BiometricLogin"
	EnrollBiometricKeyFullMethod = "/" + ServiceName + "/EnrollBiometricKey"
	HealthCheckFullMethod        = "/" + ServiceName + "/HealthCheck"
)

// CredentialServiceServer is implemented by the transport adapter.
type CredentialServiceServer interface {
	Register(context.Context, *RegisterRequest) (*UserResponse, error)
	Login(context.Context, *LoginRequest) (*TokenResponse, error)
	BiometricLogin(context.Context, *BiometricLoginRequest) (*TokenResponse, error)
	EnrollBiometricKey(context.Context, *EnrollBiometricKeyRequest) (*UserResponse, error)
	HealthCheck(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
}

// RegisterCredentialServiceServer attaches srv to s.
func RegisterCredentialServiceServer(s grpc.ServiceRegistrar, srv CredentialServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CredentialServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unaryHandler(RegisterFullMethod, CredentialServiceServer.Register)},
		{MethodName: "Login", Handler: unaryHandler(LoginFullMethod, CredentialServiceServer.Login)},
		{MethodName: "BiometricLogin", Handler: unaryHandler(BiometricLoginFullMethod, CredentialServiceServer.BiometricLogin)},
		{MethodName: "EnrollBiometricKey", Handler: unaryHandler(EnrollBiometricKeyFullMethod, CredentialServiceServer.EnrollBiometricKey)},
		{MethodName: "HealthCheck", Handler: unaryHandler(HealthCheckFullMethod, CredentialServiceServer.HealthCheck)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gophauth/v1/credentials",
}

// unaryHandler adapts a typed server method to grpc.MethodHandler, running
// it through the server's interceptor chain when one is installed.
func unaryHandler[Req, Resp any](fullMethod string, call func(CredentialServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CredentialServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(CredentialServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}
