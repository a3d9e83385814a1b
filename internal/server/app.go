// Package server wires the Blogly application together: storage, services,
// views and the HTTP transport. It also owns startup and graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/blogly/internal/dbx"
	"github.com/dmitrijs2005/blogly/internal/logging"
	"github.com/dmitrijs2005/blogly/internal/server/config"
	"github.com/dmitrijs2005/blogly/internal/server/flash"
	"github.com/dmitrijs2005/blogly/internal/server/repositories/memory"
	"github.com/dmitrijs2005/blogly/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/blogly/internal/server/services"
	"github.com/dmitrijs2005/blogly/internal/server/views"
	"github.com/dmitrijs2005/blogly/internal/server/web"
)

// MemoryDSN selects the in-process store instead of PostgreSQL.
const MemoryDSN = "memory://"

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	handler http.Handler
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)

	var (
		tx dbx.Transactor
		rm repomanager.RepositoryManager
		db *sql.DB
	)

	if c.DatabaseDSN == MemoryDSN {
		store := memory.NewStore()
		tx, rm = store, store
		logger.Warn(ctx, "Using in-memory storage, data will not survive a restart")
	} else {
		var err error
		db, err = repomanager.OpenPostgres(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}

		pm := repomanager.NewPostgresRepositoryManager()
		if err := pm.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migration error: %w", err)
		}
		tx, rm = dbx.NewSQLTransactor(db), pm
	}

	renderer, err := views.NewTemplateRenderer()
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, fmt.Errorf("views init error: %w", err)
	}

	h := web.NewHandler(
		services.NewUserService(tx, rm),
		services.NewPostService(tx, rm),
		services.NewTagService(tx, rm),
		renderer,
		flash.NewStore(c.SecretKey, c.FlashTTL),
		logger,
	)

	return &App{config: c, logger: logger, db: db, handler: web.NewRouter(h)}, nil
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
	s := web.NewHTTPServer(app.config.EndpointAddrHTTP, app.config.ShutdownTimeout, app.logger, app.handler)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// releases the database.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

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
			app.logger.Error(ctx, "error closing database", "error", err)
		}
	}

	app.logger.Info(ctx, "App stopped")
}
