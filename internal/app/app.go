package app

import (
	"database/sql"
	"log/slog"

	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/events"
	"github.com/thenoetrevino/tablero/internal/scope"
	boardservice "github.com/thenoetrevino/tablero/internal/services/board"
	columnservice "github.com/thenoetrevino/tablero/internal/services/column"
	taskservice "github.com/thenoetrevino/tablero/internal/services/task"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	store       *database.Store
	eventClient events.EventPublisher
	ownedBus    *events.Bus // created by New, closed by Close
	logger      *slog.Logger

	// Service layer (business logic)
	BoardService  boardservice.Service
	ColumnService columnservice.Service
	TaskService   taskservice.Service
}

// New creates a new App with all services initialized.
// Without WithEventPublisher the App creates and owns an in-process Bus.
func New(db *sql.DB, opts ...Option) *App {
	cfg := &appConfig{
		resolver: scope.NewSQLResolver(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	a := &App{
		store:  database.NewStore(db),
		logger: cfg.logger,
	}

	if cfg.eventClient != nil {
		a.eventClient = cfg.eventClient
	} else {
		a.ownedBus = events.NewBus()
		a.eventClient = a.ownedBus
	}

	a.BoardService = boardservice.NewService(a.store, cfg.resolver, a.eventClient)
	a.ColumnService = columnservice.NewService(a.store, cfg.resolver, a.eventClient)
	a.TaskService = taskservice.NewService(a.store, cfg.resolver, a.eventClient)

	a.logger.Debug("app initialized", "owned_bus", a.ownedBus != nil)
	return a
}

// Store returns the unit-of-work runner shared by the services
func (a *App) Store() *database.Store {
	return a.store
}

// Events returns the bus the App created, or nil when an external publisher was supplied
func (a *App) Events() *events.Bus {
	return a.ownedBus
}

// Logger returns the application logger
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Close releases resources owned by the App. The database handle belongs to
// the caller and is left open.
func (a *App) Close() error {
	if a.ownedBus != nil {
		snap := a.ownedBus.Metrics().Snapshot()
		a.logger.Debug("closing event bus",
			"published", snap.Published,
			"delivered", snap.Delivered,
			"dropped", snap.Dropped)
		return a.ownedBus.Close()
	}
	return nil
}
