package cli

import (
	"bufio"
	"context"
	"errors"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/client/config"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config      *config.Config
	client      client.Client
	accessToken string
	userName    string
	reader      *bufio.Reader

	// mode is written by the status watcher and by command handlers.
	modeMu sync.Mutex
	mode   Mode
}

func NewApp(c *config.Config) (*App, error) {

	apiClient, err := client.NewGophAuthClientService(c.ServerEndpointAddr, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	return &App{config: c, client: apiClient, reader: bufio.NewReader(os.Stdin)}, nil
}

func (app *App) setMode(mode Mode) {
	app.modeMu.Lock()
	defer app.modeMu.Unlock()

	if app.mode != mode {
		app.mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

// Mode reports the last observed connectivity state.
func (app *App) Mode() Mode {
	app.modeMu.Lock()
	defer app.modeMu.Unlock()
	return app.mode
}

// trackAvailability flips the app offline when err reports the server as
// unreachable and online after any answered call.
func (app *App) trackAvailability(err error) {
	if errors.Is(err, client.ErrUnavailable) {
		app.setMode(ModeOffline)
		return
	}
	app.setMode(ModeOnline)
}

func (a *App) Run(ctx context.Context) {
	defer a.client.Close()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.accessToken != ""
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_, err := a.client.HealthCheck(ctx)
			a.trackAvailability(err)

		case <-ctx.Done():
			return
		}
	}
}
