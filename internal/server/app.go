// Package server initializes and runs the portal server. It selects the
// storage backends, seeds the demo dataset for the in-memory backend,
// handles graceful shutdown, and starts the HTTP API.
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

	"github.com/dmitrijs2005/memberhub/internal/logging"
	"github.com/dmitrijs2005/memberhub/internal/server/blob"
	"github.com/dmitrijs2005/memberhub/internal/server/config"
	"github.com/dmitrijs2005/memberhub/internal/server/httpapi"
	"github.com/dmitrijs2005/memberhub/internal/server/repositories/members"
	"github.com/dmitrijs2005/memberhub/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/memberhub/internal/server/services"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type App struct {
	config           *config.Config
	logger           logging.Logger
	db               *sql.DB
	authService      *services.AuthService
	uploadService    *services.UploadService
	directoryService *services.DirectoryService
}

func NewApp(c *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	ctx := context.Background()

	db, rm, err := initRepositories(ctx, c)
	if err != nil {
		return nil, err
	}

	blobs, err := initBlobStore(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("blob store init error: %w", err)
	}

	as := services.NewAuthService(db, rm, c)
	us := services.NewUploadService(db, rm, blobs, c)
	ds := services.NewDirectoryService(db, rm)

	return &App{
		config:           c,
		logger:           logger,
		db:               db,
		authService:      as,
		uploadService:    us,
		directoryService: ds,
	}, nil
}

// initRepositories selects the storage backend: an empty DSN means the
// in-memory mock backend seeded with the demo dataset, anything else is
// PostgreSQL with migrations applied on startup.
func initRepositories(ctx context.Context, c *config.Config) (*sql.DB, repomanager.RepositoryManager, error) {
	if c.DatabaseDSN == "" {
		rm := repomanager.NewInMemoryRepositoryManager()

		hash, err := services.HashPassword(c.DemoPassword)
		if err != nil {
			return nil, nil, fmt.Errorf("demo seed error: %w", err)
		}
		if err := members.SeedDemo(ctx, rm.Members(nil), hash); err != nil {
			return nil, nil, fmt.Errorf("demo seed error: %w", err)
		}
		return nil, rm, nil
	}

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, nil, fmt.Errorf("migration error: %w", err)
	}
	return db, rm, nil
}

func initBlobStore(ctx context.Context, c *config.Config) (blob.Store, error) {
	switch c.StorageBackend {
	case config.StorageS3:
		return blob.NewS3Store(ctx, blob.S3Config{
			RootUser:     c.S3RootUser,
			RootPassword: c.S3RootPassword,
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
		})
	case config.StorageMemory:
		return blob.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", c.StorageBackend)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := httpapi.NewHTTPServer(app.config, app.logger, app.authService, app.uploadService, app.directoryService)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	} else {

		if err := s.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...",
		"addr", app.config.EndpointAddr,
		"db", app.config.DatabaseDSN != "",
		"storage", app.config.StorageBackend)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, err.Error())
		}
	}
}
