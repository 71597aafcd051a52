package database

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/thenoetrevino/tablero/internal/models"
)

// Store runs units of work against the database.
type Store struct {
	db *sql.DB
}

// NewStore wraps an open database handle
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// DB returns the underlying handle
func (s *Store) DB() *sql.DB {
	return s.db
}

// UnitOfWork is one transaction. Everything read or written through it
// commits together or not at all.
type UnitOfWork struct {
	*Repository
	tx   *sql.Tx
	OpID string
}

// Querier returns the transaction for collaborators that run their own queries
func (u *UnitOfWork) Querier() Querier {
	return u.tx
}

// WithinUnitOfWork runs fn inside a transaction tagged with a fresh operation
// id. fn's error rolls the transaction back and is returned unchanged.
func (s *Store) WithinUnitOfWork(ctx context.Context, op string, fn func(ctx context.Context, uow *UnitOfWork) error) error {
	opID := uuid.NewString()
	logger := slog.With("op", op, "op_id", opID)
	start := time.Now()

	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		return fn(ctx, &UnitOfWork{
			Repository: NewRepository(tx),
			tx:         tx,
			OpID:       opID,
		})
	})

	elapsed := time.Since(start)
	switch {
	case err == nil:
		logger.Debug("unit of work committed", "duration", elapsed)
	case errors.Is(err, models.ErrConflict):
		logger.Warn("unit of work rolled back", "duration", elapsed, "error", err)
	default:
		logger.Debug("unit of work rolled back", "duration", elapsed, "error", err)
	}

	return err
}
