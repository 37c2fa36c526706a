package client

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/rpc"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// credentialAPI is the subset of rpc.CredentialServiceClient used here.
type credentialAPI interface {
	Register(ctx context.Context, in *rpc.RegisterRequest, opts ...grpc.CallOption) (*rpc.UserResponse, error)
	Login(ctx context.Context, in *rpc.LoginRequest, opts ...grpc.CallOption) (*rpc.TokenResponse, error)
	BiometricLogin(ctx context.Context, in *rpc.BiometricLoginRequest, opts ...grpc.CallOption) (*rpc.TokenResponse, error)
	EnrollBiometricKey(ctx context.Context, in *rpc.EnrollBiometricKeyRequest, opts ...grpc.CallOption) (*rpc.UserResponse, error)
	HealthCheck(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
}

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn
	client      credentialAPI
}

var _ Client = (*GRPCClient)(nil)

func withRequestID(ctx context.Context) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	if len(md.Get(common.RequestIDHeaderName)) > 0 {
		return ctx
	}
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.RequestIDHeaderName, uuid.NewString())

	return metadata.NewOutgoingContext(ctx, md)
}

func requestIDInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	return invoker(withRequestID(ctx), method, req, reply, cc, opts...)
}

func NewGophAuthClientService(endpointURL string, timeout time.Duration) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}
	err := c.InitGRPCClient()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {

	conn, err := grpc.NewClient(s.endpointURL, grpc.WithTransportCredentials(insecure.NewCredentials()), grpc.WithUnaryInterceptor(requestIDInterceptor))
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = rpc.NewCredentialServiceClient(conn)
	return nil
}

func (s *GRPCClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *GRPCClient) Register(ctx context.Context, email, password string) (*rpc.UserResponse, error) {

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Register(ctx, &rpc.RegisterRequest{Email: email, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}

	return resp, nil
}

func (s *GRPCClient) Login(ctx context.Context, email, password string) (string, error) {

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Login(ctx, &rpc.LoginRequest{Email: email, Password: password})
	if err != nil {
		return "", s.mapError(err)
	}

	return resp.AccessToken, nil
}

func (s *GRPCClient) BiometricLogin(ctx context.Context, biometricKey string) (string, error) {

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.BiometricLogin(ctx, &rpc.BiometricLoginRequest{BiometricKey: biometricKey})
	if err != nil {
		return "", s.mapError(err)
	}

	return resp.AccessToken, nil
}

func (s *GRPCClient) EnrollBiometricKey(ctx context.Context, email, password, biometricKey string) (*rpc.UserResponse, error) {

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	req := &rpc.EnrollBiometricKeyRequest{Email: email, Password: password, BiometricKey: biometricKey}
	resp, err := s.client.EnrollBiometricKey(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}

	return resp, nil
}

// HealthCheck returns the server's liveness marker.
func (s *GRPCClient) HealthCheck(ctx context.Context) (string, error) {

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.HealthCheck(ctx, &emptypb.Empty{})
	if err != nil {
		return "", s.mapError(err)
	}

	if resp.GetValue() != common.HealthCheckMessage {
		return "", ErrUnavailable
	}

	return resp.GetValue(), nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.AlreadyExists:
		return ErrAlreadyExists
	case codes.InvalidArgument:
		return ErrInvalidInput
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
