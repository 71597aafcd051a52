package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/events"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/ordering"
	"github.com/thenoetrevino/tablero/internal/scope"
	"github.com/thenoetrevino/tablero/internal/types"
	"github.com/thenoetrevino/tablero/internal/user"
)

const publishAttempts = 3

// Service defines all board-related business operations
type Service interface {
	// Read operations
	ListBoards(ctx context.Context) ([]*models.Board, error)
	GetBoard(ctx context.Context, id int) (*models.Board, error)
	CheckBoardIntegrity(ctx context.Context, id int) (*IntegrityReport, error)

	// Write operations
	CreateBoard(ctx context.Context, req CreateBoardRequest) (*models.Board, error)
	DeleteBoard(ctx context.Context, id int) error
}

// CreateBoardRequest encapsulates data for creating a board
type CreateBoardRequest struct {
	Name string
	// Columns are appended in the given order
	Columns []string
}

// IntegrityReport lists every sibling set of a board whose orders are not 0..N-1
type IntegrityReport struct {
	BoardID    int         `json:"board_id"`
	Checked    int         `json:"checked"`
	Violations []Violation `json:"violations"`
}

// OK reports whether every sibling set is dense
func (r *IntegrityReport) OK() bool {
	return len(r.Violations) == 0
}

// Violation names one non-dense sibling set and the orders found in it
type Violation struct {
	Kind     string `json:"kind"`
	ParentID int    `json:"parent_id"`
	Orders   []int  `json:"orders"`
}

// service implements Service interface
type service struct {
	store       *database.Store
	resolver    scope.Resolver
	eventClient events.EventPublisher
}

// NewService creates a new board service
func NewService(store *database.Store, resolver scope.Resolver, eventClient events.EventPublisher) Service {
	return &service{
		store:       store,
		resolver:    resolver,
		eventClient: eventClient,
	}
}

// ListBoards returns the caller's boards, oldest first
func (s *service) ListBoards(ctx context.Context) ([]*models.Board, error) {
	callerID, err := user.CallerID(ctx)
	if err != nil {
		return nil, err
	}

	var boards []*models.Board
	err = s.store.WithinUnitOfWork(ctx, "list_boards", func(ctx context.Context, uow *database.UnitOfWork) error {
		boards, err = uow.ListBoardsByOwner(ctx, callerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return boards, nil
}

// GetBoard returns one of the caller's boards
func (s *service) GetBoard(ctx context.Context, id int) (*models.Board, error) {
	callerID, err := user.CallerID(ctx)
	if err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, ErrInvalidBoardID
	}

	var board *models.Board
	err = s.store.WithinUnitOfWork(ctx, "get_board", func(ctx context.Context, uow *database.UnitOfWork) error {
		board, err = s.resolver.ResolveBoard(ctx, uow.Querier(), callerID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return board, nil
}

// CreateBoard creates a board owned by the caller, with optional initial columns
func (s *service) CreateBoard(ctx context.Context, req CreateBoardRequest) (*models.Board, error) {
	callerID, err := user.CallerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateCreateBoard(req); err != nil {
		return nil, err
	}

	var (
		board *models.Board
		opID  string
	)
	err = s.store.WithinUnitOfWork(ctx, "create_board", func(ctx context.Context, uow *database.UnitOfWork) error {
		opID = uow.OpID
		board, err = uow.CreateBoard(ctx, callerID, req.Name)
		if err != nil {
			return err
		}
		if len(req.Columns) == 0 {
			return nil
		}

		columns, err := database.LoadContainer[types.BoardID, types.ColumnID](ctx, uow, database.ColumnSiblings, types.BoardID(board.ID))
		if err != nil {
			return err
		}
		for _, name := range req.Columns {
			column, err := uow.InsertColumn(ctx, board.ID, name, -1)
			if err != nil {
				return err
			}
			if _, err := columns.Append(types.ColumnID(column.ID)); err != nil {
				return err
			}
		}
		if err := database.SaveContainer(ctx, uow, database.ColumnSiblings, columns); err != nil {
			return err
		}
		board.OrderVersion = columns.Version + 1
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("board created", "op_id", opID, "caller", callerID, "board_id", board.ID, "columns", len(req.Columns))
	return board, nil
}

// DeleteBoard deletes one of the caller's boards with all of its columns and tasks
func (s *service) DeleteBoard(ctx context.Context, id int) error {
	callerID, err := user.CallerID(ctx)
	if err != nil {
		return err
	}
	if id <= 0 {
		return ErrInvalidBoardID
	}

	var opID string
	err = s.store.WithinUnitOfWork(ctx, "delete_board", func(ctx context.Context, uow *database.UnitOfWork) error {
		opID = uow.OpID
		board, err := s.resolver.ResolveBoard(ctx, uow.Querier(), callerID, id)
		if err != nil {
			return err
		}
		return uow.DeleteBoard(ctx, board.ID)
	})
	if err != nil {
		return err
	}

	slog.Info("board deleted", "op_id", opID, "caller", callerID, "board_id", id)
	_ = events.PublishWithRetry(s.eventClient, events.Event{
		Type:        events.EventBoardDeleted,
		BoardID:     id,
		ContainerID: id,
		Kind:        models.KindBoard,
		OpID:        opID,
	}, publishAttempts)
	return nil
}

// CheckBoardIntegrity reads every sibling set of a board and reports the ones
// that are not densely ordered
func (s *service) CheckBoardIntegrity(ctx context.Context, id int) (*IntegrityReport, error) {
	callerID, err := user.CallerID(ctx)
	if err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, ErrInvalidBoardID
	}

	report := &IntegrityReport{BoardID: id}
	err = s.store.WithinUnitOfWork(ctx, "check_board", func(ctx context.Context, uow *database.UnitOfWork) error {
		board, err := s.resolver.ResolveBoard(ctx, uow.Querier(), callerID, id)
		if err != nil {
			return err
		}

		columns, err := database.LoadContainer[types.BoardID, types.ColumnID](ctx, uow, database.ColumnSiblings, types.BoardID(board.ID))
		if err != nil {
			return err
		}
		report.check(models.KindColumn, board.ID, columns.Container)

		for _, columnID := range columns.IDs() {
			tasks, err := database.LoadContainer[types.ColumnID, types.TaskID](ctx, uow, database.TaskSiblings, columnID)
			if err != nil {
				return err
			}
			report.check(models.KindTask, columnID.ToInt(), tasks.Container)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !report.OK() {
		slog.Warn("board ordering is not dense", "board_id", id, "violations", len(report.Violations))
	}
	return report, nil
}

// check records a violation when c is not dense
func (r *IntegrityReport) check(kind string, parentID int, c interface {
	CheckDense() error
}) {
	r.Checked++
	err := c.CheckDense()
	if err == nil {
		return
	}

	v := Violation{Kind: kind, ParentID: parentID}
	var colErr *ordering.DensityError[types.ColumnID]
	var taskErr *ordering.DensityError[types.TaskID]
	switch {
	case errors.As(err, &colErr):
		for _, s := range colErr.Siblings {
			v.Orders = append(v.Orders, s.Order)
		}
	case errors.As(err, &taskErr):
		for _, s := range taskErr.Siblings {
			v.Orders = append(v.Orders, s.Order)
		}
	}
	r.Violations = append(r.Violations, v)
}

// validateCreateBoard validates a CreateBoardRequest
func validateCreateBoard(req CreateBoardRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return ErrEmptyName
	}
	if len(req.Name) > models.MaxBoardNameLength {
		return ErrNameTooLong
	}
	for i, name := range req.Columns {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("column %d: %w", i+1, ErrEmptyColumnName)
		}
		if len(name) > models.MaxColumnNameLength {
			return fmt.Errorf("column %d: %w", i+1, ErrColumnNameLimit)
		}
	}
	return nil
}
