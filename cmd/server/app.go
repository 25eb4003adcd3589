package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/kanban-api/internal/config"
	"github.com/phrazzld/kanban-api/internal/events"
	"github.com/phrazzld/kanban-api/internal/platform/memory"
	"github.com/phrazzld/kanban-api/internal/platform/sqlstore"
	"github.com/phrazzld/kanban-api/internal/service"
	"github.com/phrazzld/kanban-api/internal/service/auth"
	"github.com/phrazzld/kanban-api/internal/store"
)

// application holds the shared dependencies of the server and releases them
// on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore  store.UserStore
	boardStore store.BoardStore
	taskStore  store.TaskStore

	tokenService auth.TokenService
	userService  service.UserService
	boardService service.BoardService
	taskService  service.TaskService

	eventEmitter events.EventEmitter

	// ping backs the health check.
	ping func(ctx context.Context) error
	now  func() time.Time
}

// newApplication opens the configured store and wires services on top of it.
// A missing or short JWT secret fails here, before any request is served.
func newApplication(ctx context.Context, cfg *config.Config, log *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: log,
		now:    time.Now,
	}

	var err error
	app.tokenService, err = auth.NewTokenService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	log.Info("token service initialized", "token_lifetime_hours", cfg.Auth.TokenLifetimeHours)

	if err := app.openStores(ctx); err != nil {
		return nil, err
	}

	emitter := events.NewInMemoryEventEmitter(log)
	emitter.RegisterHandler(events.NewAuditLogHandler(log))
	app.eventEmitter = emitter

	app.userService = service.NewUserService(app.userStore, auth.NewBcryptHasher(cfg.Auth.BcryptCost), log)
	app.boardService = service.NewBoardService(app.boardStore, app.eventEmitter, log)
	app.taskService = service.NewTaskService(app.taskStore, app.boardStore, app.eventEmitter, log)

	log.Info("application initialized", "database_driver", cfg.Database.Driver)
	return app, nil
}

func (app *application) openStores(ctx context.Context) error {
	dbCfg := app.config.Database

	if !dbCfg.UsesSQL() {
		mem := memory.NewDB()
		app.userStore = memory.NewUserStore(mem, app.logger)
		app.boardStore = memory.NewBoardStore(mem, app.logger)
		app.taskStore = memory.NewTaskStore(mem, app.logger)
		app.ping = func(context.Context) error { return mem.Ping() }
		app.logger.Warn("using in-memory store; data is lost on restart")
		return nil
	}

	db, err := sqlstore.Open(ctx, dbCfg.Driver, dbCfg.URL, dbCfg.MaxOpenConns)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	app.db = db

	if dbCfg.AutoMigrate {
		if err := sqlstore.Migrate(ctx, db, dbCfg.Driver, "up", app.logger); err != nil {
			_ = db.Close()
			app.db = nil
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
	}

	app.userStore = sqlstore.NewUserStore(db, app.logger)
	app.boardStore = sqlstore.NewBoardStore(db, app.logger)
	app.taskStore = sqlstore.NewTaskStore(db, app.logger)
	app.ping = db.PingContext
	return nil
}

// Run serves HTTP until ctx is canceled.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}
	app.logger.Info("application shutdown completed")
}
