// Package server initializes and runs the credential service: it resolves
// the signing key, opens storage, wires the credential service into the
// gRPC transport and shuts everything down on SIGINT/SIGTERM/SIGQUIT.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/cryptox"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/dmitrijs2005/gophauth/internal/server/keysource"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
	"github.com/dmitrijs2005/gophauth/internal/server/telemetry"

	gs "github.com/dmitrijs2005/gophauth/internal/server/grpc"
)

const serviceName = "gophauth"

// shutdownTimeout bounds how long flushing traces may take on exit.
const shutdownTimeout = 5 * time.Second

type App struct {
	config          *config.Config
	logger          logging.Logger
	store           *repomanager.Store
	credentials     *services.CredentialService
	shutdownTracing telemetry.ShutdownFunc
}

// NewApp builds every dependency of the server. Resources acquired before a
// failure are released before returning.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	return newApp(ctx, c, os.Stdout)
}

func newApp(ctx context.Context, c *config.Config, logOutput io.Writer) (app *App, err error) {

	logger, err := logging.NewJSONLogger(logOutput, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	shutdownTracing, err := telemetry.Setup(ctx, serviceName, c.OTLPEndpoint)
	if err != nil {
		return nil, fmt.Errorf("telemetry init error: %w", err)
	}
	defer func() {
		if err != nil {
			_ = shutdownTracing(context.Background())
		}
	}()

	secret, err := keysource.Resolve(ctx, c.SecretKey, keysource.S3Settings{
		Bucket:       c.S3Bucket,
		ObjectKey:    c.SecretKeyObject,
		Region:       c.S3Region,
		BaseEndpoint: c.S3BaseEndpoint,
		User:         c.S3RootUser,
		Password:     c.S3RootPassword,
	})
	if err != nil {
		return nil, fmt.Errorf("signing key error: %w", err)
	}

	hasher, err := cryptox.NewPasswordHasher(c.PasswordHashAlgorithm, c.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("password hasher error: %w", err)
	}

	store, err := repomanager.Open(ctx, c.StorageDriver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	defer func() {
		if err != nil {
			_ = store.Close()
		}
	}()

	issuer := auth.NewTokenIssuer(secret, c.AccessTokenValidityDuration)

	cs, err := services.NewCredentialService(store.Users(), hasher, issuer, logger)
	if err != nil {
		return nil, fmt.Errorf("service init error: %w", err)
	}

	return &App{
		config:          c,
		logger:          logger,
		store:           store,
		credentials:     cs,
		shutdownTracing: shutdownTracing,
	}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) error {

	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.credentials)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return err
	}

	return nil
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// releases storage and flushes traces.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.StorageDriver)

	app.initSignalHandler(ctx, cancelFunc)

	var (
		wg        sync.WaitGroup
		serverErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		serverErr = app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	return errors.Join(serverErr, app.close())
}

func (app *App) close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	app.logger.Info(ctx, "Stopping app...")

	var errs []error
	if err := app.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("db close error: %w", err))
	}
	if err := app.shutdownTracing(ctx); err != nil {
		errs = append(errs, fmt.Errorf("telemetry shutdown error: %w", err))
	}
	return errors.Join(errs...)
}
