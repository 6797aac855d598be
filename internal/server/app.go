// Package server initializes and runs the recommendation server.
// It wires configuration, the database, object storage, portal scraping,
// the matching services and the HTTP API, and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/rajanimaurya/internship-recommender/internal/logging"
	"github.com/rajanimaurya/internship-recommender/internal/match"
	"github.com/rajanimaurya/internship-recommender/internal/scraper"
	"github.com/rajanimaurya/internship-recommender/internal/server/config"
	"github.com/rajanimaurya/internship-recommender/internal/server/httpapi"
	"github.com/rajanimaurya/internship-recommender/internal/server/repositories/repomanager"
	"github.com/rajanimaurya/internship-recommender/internal/server/services"
)

type App struct {
	config            *config.Config
	logger            logging.Logger
	db                *sql.DB
	publisher         services.EventPublisher
	userService       *services.UserService
	internshipService *services.InternshipService
	recommendService  *services.RecommendService
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	var explainer match.Explainer = match.TemplateExplainer{}
	if cfg.GeminiAPIKey != "" {
		ge, err := match.NewGeminiExplainer(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Warn(ctx, "gemini explainer unavailable, using templates", "error", err.Error())
		} else {
			explainer = ge
		}
	}

	var publisher services.EventPublisher = services.NopPublisher{}
	if cfg.AMQPURL != "" {
		p, err := services.NewAMQPPublisher(cfg.AMQPURL, logger)
		if err != nil {
			logger.Warn(ctx, "amqp unavailable, allocation events disabled", "error", err.Error())
		} else {
			publisher = p
		}
	}

	storage := services.NewStorageService(cfg)
	matcher := match.New(match.WithThreshold(cfg.AllocationThreshold))
	sc := scraper.New(scraper.Default(), nil, logger)

	us := services.NewUserService(db, m, cfg)
	is := services.NewInternshipService(db, m, sc, logger)
	rs := services.NewRecommendService(db, m, storage, matcher, explainer, publisher, logger)

	return &App{
		config:            cfg,
		logger:            logger,
		db:                db,
		publisher:         publisher,
		userService:       us,
		internshipService: is,
		recommendService:  rs,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(
		app.config.EndpointAddrHTTP,
		[]byte(app.config.SecretKey),
		app.userService,
		app.internshipService,
		app.recommendService,
		app.logger,
	)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.internshipService.RunPeriodicSeed(ctx, app.config.ScrapeInterval)
	}()

	wg.Wait()

	if err := app.publisher.Close(); err != nil {
		app.logger.Warn(ctx, "event publisher close failed", "error", err.Error())
	}
	if err := app.db.Close(); err != nil {
		app.logger.Warn(ctx, "db close failed", "error", err.Error())
	}
}
