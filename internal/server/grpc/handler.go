package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/rpc"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// handler adapts CredentialService to the rpc contract.
type handler struct {
	credentials CredentialService
	logger      logging.Logger
}

var _ rpc.CredentialServiceServer = (*handler)(nil)

func (h *handler) Register(ctx context.Context, req *rpc.RegisterRequest) (*rpc.UserResponse, error) {

	if req.Email == "" || req.Password == "" {
		return nil, status.Error(codes.InvalidArgument, "email and password are required")
	}

	identity, err := h.credentials.Register(ctx, req.Email, req.Password)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}

	return toUserResponse(identity), nil
}

func (h *handler) Login(ctx context.Context, req *rpc.LoginRequest) (*rpc.TokenResponse, error) {

	token, err := h.credentials.PasswordLogin(ctx, req.Email, req.Password)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}

	return &rpc.TokenResponse{AccessToken: token}, nil
}

func (h *handler) BiometricLogin(ctx context.Context, req *rpc.BiometricLoginRequest) (*rpc.TokenResponse, error) {

	token, err := h.credentials.BiometricLogin(ctx, req.BiometricKey)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}

	return &rpc.TokenResponse{AccessToken: token}, nil
}

func (h *handler) EnrollBiometricKey(ctx context.Context, req *rpc.EnrollBiometricKeyRequest) (*rpc.UserResponse, error) {

	if req.Email == "" || req.Password == "" || req.BiometricKey == "" {
		return nil, status.Error(codes.InvalidArgument, "email, password and biometric key are required")
	}

	identity, err := h.credentials.EnrollBiometricKey(ctx, req.Email, req.Password, req.BiometricKey)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}

	return toUserResponse(identity), nil
}

func (h *handler) HealthCheck(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return wrapperspb.String(common.HealthCheckMessage), nil
}

// toStatus maps service failures onto gRPC codes. Infrastructure faults are
// logged here and reported without their cause.
func (h *handler) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request cancelled")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	case errors.Is(err, common.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrDuplicateEmail):
		return status.Error(codes.AlreadyExists, common.ErrDuplicateEmail.Error())
	case errors.Is(err, common.ErrDuplicateBiometricKey):
		return status.Error(codes.AlreadyExists, common.ErrDuplicateBiometricKey.Error())
	case errors.Is(err, common.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, common.ErrInvalidCredentials.Error())
	case errors.Is(err, common.ErrInvalidBiometricKey):
		return status.Error(codes.Unauthenticated, common.ErrInvalidBiometricKey.Error())
	case errors.Is(err, common.ErrStorageUnavailable):
		h.logger.Error(ctx, "storage failure", "request_id", RequestIDFromContext(ctx), "error", err)
		return status.Error(codes.Unavailable, common.ErrStorageUnavailable.Error())
	default:
		h.logger.Error(ctx, "internal failure", "request_id", RequestIDFromContext(ctx), "error", err)
		return status.Error(codes.Internal, common.ErrorInternal.Error())
	}
}

func toUserResponse(i *models.Identity) *rpc.UserResponse {
	return &rpc.UserResponse{
		ID:           i.ID,
		Email:        i.Email,
		BiometricKey: i.BiometricKey,
		CreatedAt:    i.CreatedAt,
	}
}
