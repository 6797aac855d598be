// Package cli implements the interactive terminal client: a REPL that wires
// the acquisition controller, the server API, and the local history store.
package cli

import (
	"bufio"
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	_ "modernc.org/sqlite"

	"github.com/rajanimaurya/internship-recommender/internal/client/acquire"
	"github.com/rajanimaurya/internship-recommender/internal/client/api"
	"github.com/rajanimaurya/internship-recommender/internal/client/camera"
	"github.com/rajanimaurya/internship-recommender/internal/client/config"
	"github.com/rajanimaurya/internship-recommender/internal/client/repositories/history"
	"github.com/rajanimaurya/internship-recommender/internal/client/services"
	"github.com/rajanimaurya/internship-recommender/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config     *config.Config
	apiClient  *api.Client
	controller *acquire.Controller
	analyzer   *services.AnalyzerService
	userName   string
	Mode       Mode
	reader     *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	db, err := history.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	apiClient := api.New(c.ServerEndpointAddr, c.RequestTimeout)
	controller := acquire.New(camera.TestPattern{})
	analyzer := services.NewAnalyzerService(controller, apiClient, history.NewSQLiteRepository(db), logger)

	return &App{
		config:     c,
		apiClient:  apiClient,
		controller: controller,
		analyzer:   analyzer,
		reader:     bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) Run(ctx context.Context) {
	defer a.controller.CloseCamera()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.apiClient.IsLoggedIn()
}

// StartOnlineStatusWatcher probes server liveness on an interval and flips
// the displayed mode accordingly.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.apiClient.Ping(pingCtx)
			cancel()

			if err != nil {
				if a.Mode == ModeOnline {
					a.setMode(ModeOffline)
				}
			} else {
				if a.Mode != ModeOnline {
					a.setMode(ModeOnline)
				}
			}

		case <-ctx.Done():
			return
		}
	}
}
