package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/thenoetrevino/tablero/internal/app"
	"github.com/thenoetrevino/tablero/internal/config"
	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/events"
	"github.com/thenoetrevino/tablero/internal/logging"
	"github.com/thenoetrevino/tablero/internal/user"
)

// CLI represents the CLI application context
type CLI struct {
	App    *app.App // Application container with services
	Config *config.Config

	ctx       context.Context // carries the caller id
	db        *sql.DB
	logCloser io.Closer
	unwatch   func()
}

// NewCLI loads configuration, opens the database and authenticates the
// caller as the current system user.
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logCloser, err := logging.Init(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	db, err := database.InitDB(ctx, cfg)
	if err != nil {
		_ = logCloser.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	username := user.GetCurrentUsername()
	caller, err := database.NewRepository(db).EnsureUser(ctx, username)
	if err != nil {
		_ = db.Close()
		_ = logCloser.Close()
		return nil, fmt.Errorf("failed to resolve user %q: %w", username, err)
	}

	InitStyles(cfg.ColorScheme)

	application := app.New(db, app.WithLogger(logging.Logger))
	c := &CLI{
		App:       application,
		Config:    cfg,
		ctx:       user.WithCallerID(ctx, caller.ID),
		db:        db,
		logCloser: logCloser,
	}
	c.unwatch = watchEvents(application.Events())

	slog.Debug("cli initialized", "user", username, "user_id", caller.ID, "db", cfg.DatabasePath())
	return c, nil
}

// Context returns the context commands should pass to services
func (c *CLI) Context() context.Context {
	return c.ctx
}

// Close cleans up CLI resources. A CLI borrowed from a context owns nothing.
func (c *CLI) Close() error {
	if c.db == nil {
		return nil
	}
	if c.unwatch != nil {
		c.unwatch()
	}
	var errs []error
	errs = append(errs, c.App.Close())
	errs = append(errs, c.db.Close())
	if c.logCloser != nil {
		errs = append(errs, c.logCloser.Close())
	}
	return errors.Join(errs...)
}

// watchEvents logs every event the command's mutations publish
func watchEvents(bus *events.Bus) func() {
	if bus == nil {
		return func() {}
	}
	ch, cancel := bus.Subscribe(events.AllBoards)
	go func() {
		for ev := range ch {
			slog.Debug("event",
				"type", ev.Type,
				"board_id", ev.BoardID,
				"container_id", ev.ContainerID,
				"kind", ev.Kind,
				"op_id", ev.OpID,
				"seq", ev.SequenceID)
		}
	}()
	return cancel
}
