package client

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/rpc"
)

// Client is the CLI's view of the credential service.
type Client interface {
	Close() error
	Register(ctx context.Context, email, password string) (*rpc.UserResponse, error)
	Login(ctx context.Context, email, password string) (string, error)
	BiometricLogin(ctx context.Context, biometricKey string) (string, error)
	EnrollBiometricKey(ctx context.Context, email, password, biometricKey string) (*rpc.UserResponse, error)
	HealthCheck(ctx context.Context) (string, error)
}
