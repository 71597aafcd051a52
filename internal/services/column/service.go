package column

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/events"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/scope"
	"github.com/thenoetrevino/tablero/internal/types"
	"github.com/thenoetrevino/tablero/internal/user"
)

const publishAttempts = 3

// Service defines all column-related business operations
type Service interface {
	// Read operations
	ListColumns(ctx context.Context, boardID int) (*ColumnList, error)

	// Write operations
	AppendColumn(ctx context.Context, req AppendColumnRequest) (*models.Column, error)
	RenameColumn(ctx context.Context, id int, name string) error
	RemoveColumn(ctx context.Context, id int) error
	ReorderColumns(ctx context.Context, req ReorderColumnsRequest) (*ColumnList, error)
}

// AppendColumnRequest encapsulates data for creating a column at the end of a board
type AppendColumnRequest struct {
	BoardID int
	Name    string
}

// ReorderColumnsRequest carries the complete new order of a board's columns
type ReorderColumnsRequest struct {
	BoardID   int
	ColumnIDs []int
	// ExpectedVersion, when set, must match the board's current order version
	ExpectedVersion *int
}

// ColumnList is a board's columns in order, with the version they were read at
type ColumnList struct {
	BoardID int              `json:"board_id"`
	Version int              `json:"version"`
	Columns []*models.Column `json:"columns"`
}

type columnSet = database.LoadedContainer[types.BoardID, types.ColumnID]

// service implements Service interface
type service struct {
	store       *database.Store
	resolver    scope.Resolver
	eventClient events.EventPublisher
}

// NewService creates a new column service
func NewService(store *database.Store, resolver scope.Resolver, eventClient events.EventPublisher) Service {
	return &service{
		store:       store,
		resolver:    resolver,
		eventClient: eventClient,
	}
}

// ListColumns returns the caller's board columns sorted by order
func (s *service) ListColumns(ctx context.Context, boardID int) (*ColumnList, error) {
	callerID, err := user.CallerID(ctx)
	if err != nil {
		return nil, err
	}
	if boardID <= 0 {
		return nil, ErrInvalidBoardID
	}

	var list *ColumnList
	err = s.store.WithinUnitOfWork(ctx, "list_columns", func(ctx context.Context, uow *database.UnitOfWork) error {
		board, err := s.resolver.ResolveBoard(ctx, uow.Querier(), callerID, boardID)
		if err != nil {
			return err
		}
		columns, err := uow.ListColumnsByBoard(ctx, board.ID)
		if err != nil {
			return err
		}
		list = &ColumnList{BoardID: board.ID, Version: board.OrderVersion, Columns: columns}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// AppendColumn creates a column after the board's last column
func (s *service) AppendColumn(ctx context.Context, req AppendColumnRequest) (*models.Column, error) {
	callerID, err := user.CallerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateAppendColumn(req); err != nil {
		return nil, err
	}

	var (
		created *models.Column
		opID    string
	)
	err = s.store.WithinUnitOfWork(ctx, "append_column", func(ctx context.Context, uow *database.UnitOfWork) error {
		opID = uow.OpID
		board, err := s.resolver.ResolveBoard(ctx, uow.Querier(), callerID, req.BoardID)
		if err != nil {
			return err
		}

		siblings, err := database.LoadContainer[types.BoardID, types.ColumnID](ctx, uow, database.ColumnSiblings, types.BoardID(board.ID))
		if err != nil {
			return err
		}

		// Inserted unplaced; SaveContainer writes the real position
		created, err = uow.InsertColumn(ctx, board.ID, req.Name, -1)
		if err != nil {
			return err
		}
		order, err := siblings.Append(types.ColumnID(created.ID))
		if err != nil {
			return err
		}
		created.Order = order

		return database.SaveContainer(ctx, uow, database.ColumnSiblings, siblings)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("column appended", "op_id", opID, "caller", callerID, "board_id", created.BoardID, "column_id", created.ID, "order", created.Order)
	s.publishColumnEvent(created.BoardID, opID)
	return created, nil
}

// RenameColumn changes a column's name. Ordering is unaffected.
func (s *service) RenameColumn(ctx context.Context, id int, name string) error {
	callerID, err := user.CallerID(ctx)
	if err != nil {
		return err
	}
	if id <= 0 {
		return ErrInvalidColumnID
	}
	if err := validateName(name); err != nil {
		return err
	}

	return s.store.WithinUnitOfWork(ctx, "rename_column", func(ctx context.Context, uow *database.UnitOfWork) error {
		column, err := s.resolver.ResolveColumn(ctx, uow.Querier(), callerID, id)
		if err != nil {
			return err
		}
		return uow.RenameColumn(ctx, column.ID, name)
	})
}

// RemoveColumn deletes a column together with its tasks and closes the gap
// it leaves among the board's columns
func (s *service) RemoveColumn(ctx context.Context, id int) error {
	callerID, err := user.CallerID(ctx)
	if err != nil {
		return err
	}
	if id <= 0 {
		return ErrInvalidColumnID
	}

	var (
		boardID int
		opID    string
	)
	err = s.store.WithinUnitOfWork(ctx, "remove_column", func(ctx context.Context, uow *database.UnitOfWork) error {
		opID = uow.OpID
		column, err := s.resolver.ResolveColumn(ctx, uow.Querier(), callerID, id)
		if err != nil {
			return err
		}
		boardID = column.BoardID

		siblings, err := database.LoadContainer[types.BoardID, types.ColumnID](ctx, uow, database.ColumnSiblings, types.BoardID(column.BoardID))
		if err != nil {
			return err
		}
		if err := siblings.RemoveAndCompact(types.ColumnID(column.ID)); err != nil {
			return err
		}
		if err := uow.DeleteColumn(ctx, column.ID); err != nil {
			return err
		}
		return database.SaveContainer(ctx, uow, database.ColumnSiblings, siblings)
	})
	if err != nil {
		return err
	}

	slog.Info("column removed", "op_id", opID, "caller", callerID, "board_id", boardID, "column_id", id)
	s.publishColumnEvent(boardID, opID)
	return nil
}

// ReorderColumns replaces the order of every column on a board. The submitted
// ids must be exactly the board's columns; otherwise nothing changes.
func (s *service) ReorderColumns(ctx context.Context, req ReorderColumnsRequest) (*ColumnList, error) {
	callerID, err := user.CallerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateReorderColumns(req); err != nil {
		return nil, err
	}

	var (
		list *ColumnList
		opID string
	)
	err = s.store.WithinUnitOfWork(ctx, "reorder_columns", func(ctx context.Context, uow *database.UnitOfWork) error {
		opID = uow.OpID
		board, err := s.resolver.ResolveBoard(ctx, uow.Querier(), callerID, req.BoardID)
		if err != nil {
			return err
		}

		siblings, err := database.LoadContainer[types.BoardID, types.ColumnID](ctx, uow, database.ColumnSiblings, types.BoardID(board.ID))
		if err != nil {
			return err
		}
		if err := database.CheckExpectedVersion(database.ColumnSiblings, siblings, req.ExpectedVersion); err != nil {
			return err
		}
		if err := siblings.ReplaceOrder(types.ColumnIDs(req.ColumnIDs)); err != nil {
			return err
		}
		if err := database.SaveContainer(ctx, uow, database.ColumnSiblings, siblings); err != nil {
			return err
		}

		list, err = s.readList(ctx, uow, board.ID, siblings)
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.Info("columns reordered", "op_id", opID, "caller", callerID, "board_id", req.BoardID, "version", list.Version)
	s.publishColumnEvent(req.BoardID, opID)
	return list, nil
}

func (s *service) readList(ctx context.Context, uow *database.UnitOfWork, boardID int, saved *columnSet) (*ColumnList, error) {
	columns, err := uow.ListColumnsByBoard(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}
	return &ColumnList{BoardID: boardID, Version: saved.Version + 1, Columns: columns}, nil
}

// validateAppendColumn validates an AppendColumnRequest
func validateAppendColumn(req AppendColumnRequest) error {
	if req.BoardID <= 0 {
		return ErrInvalidBoardID
	}
	return validateName(req.Name)
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if len(name) > models.MaxColumnNameLength {
		return ErrNameTooLong
	}
	return nil
}

// validateReorderColumns validates a ReorderColumnsRequest
func validateReorderColumns(req ReorderColumnsRequest) error {
	if req.BoardID <= 0 {
		return ErrInvalidBoardID
	}
	if req.ExpectedVersion != nil && *req.ExpectedVersion < 0 {
		return ErrInvalidVersion
	}
	return nil
}

// publishColumnEvent announces a committed change to a board's column order
func (s *service) publishColumnEvent(boardID int, opID string) {
	_ = events.PublishWithRetry(s.eventClient, events.Event{
		Type:        events.EventOrderChanged,
		BoardID:     boardID,
		ContainerID: boardID,
		Kind:        models.KindColumn,
		OpID:        opID,
	}, publishAttempts)
}
