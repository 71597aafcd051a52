package task

import (
	"context"
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

// Service defines all task-related business operations
type Service interface {
	// Read operations
	ListTasks(ctx context.Context, req ListTasksRequest) (*TaskList, error)

	// Write operations
	AppendTask(ctx context.Context, req AppendTaskRequest) (*models.Task, error)
	RemoveTask(ctx context.Context, taskID int) error
	ReorderTasks(ctx context.Context, req ReorderTasksRequest) (*TaskList, error)
	MoveTask(ctx context.Context, req MoveTaskRequest) (*models.Task, error)
	ArchiveTask(ctx context.Context, taskID int) error
	RestoreTask(ctx context.Context, taskID int) (*models.Task, error)
}

// ListTasksRequest selects the tasks of one column
type ListTasksRequest struct {
	ColumnID        int
	IncludeArchived bool
}

// AppendTaskRequest encapsulates data for creating a task at the end of a column
type AppendTaskRequest struct {
	ColumnID    int
	Title       string
	Description string
}

// ReorderTasksRequest carries the complete new order of a column's active tasks
type ReorderTasksRequest struct {
	ColumnID int
	TaskIDs  []int
	// ExpectedVersion, when set, must match the column's current order version
	ExpectedVersion *int
}

// MoveTaskRequest relocates a task within its column or to another column of
// the same board. TargetOrder past the end places the task last.
type MoveTaskRequest struct {
	TaskID         int
	TargetColumnID int
	TargetOrder    int
	// ExpectedVersion, when set, must match the target column's order version
	ExpectedVersion *int
}

// TaskList is a column's tasks in order, with the version they were read at
type TaskList struct {
	ColumnID int            `json:"column_id"`
	BoardID  int            `json:"board_id"`
	Version  int            `json:"version"`
	Tasks    []*models.Task `json:"tasks"`
}

type taskSet = database.LoadedContainer[types.ColumnID, types.TaskID]

// service implements Service interface
type service struct {
	store       *database.Store
	resolver    scope.Resolver
	eventClient events.EventPublisher
}

// NewService creates a new task service
func NewService(store *database.Store, resolver scope.Resolver, eventClient events.EventPublisher) Service {
	return &service{
		store:       store,
		resolver:    resolver,
		eventClient: eventClient,
	}
}

// ListTasks returns a column's active tasks sorted by order, optionally
// followed by its archived tasks
func (s *service) ListTasks(ctx context.Context, req ListTasksRequest) (*TaskList, error) {
	callerID, err := user.CallerID(ctx)
	if err != nil {
		return nil, err
	}
	if req.ColumnID <= 0 {
		return nil, ErrInvalidColumnID
	}

	var list *TaskList
	err = s.store.WithinUnitOfWork(ctx, "list_tasks", func(ctx context.Context, uow *database.UnitOfWork) error {
		column, err := s.resolver.ResolveColumn(ctx, uow.Querier(), callerID, req.ColumnID)
		if err != nil {
			return err
		}
		tasks, err := uow.ListTasksByColumn(ctx, column.ID, req.IncludeArchived)
		if err != nil {
			return err
		}
		list = &TaskList{ColumnID: column.ID, BoardID: column.BoardID, Version: column.OrderVersion, Tasks: tasks}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// AppendTask creates a task after the column's last active task
func (s *service) AppendTask(ctx context.Context, req AppendTaskRequest) (*models.Task, error) {
	callerID, err := user.CallerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateAppendTask(req); err != nil {
		return nil, err
	}

	var (
		created *models.Task
		opID    string
	)
	err = s.store.WithinUnitOfWork(ctx, "append_task", func(ctx context.Context, uow *database.UnitOfWork) error {
		opID = uow.OpID
		column, err := s.resolver.ResolveColumn(ctx, uow.Querier(), callerID, req.ColumnID)
		if err != nil {
			return err
		}

		siblings, err := s.loadTasks(ctx, uow, column.ID)
		if err != nil {
			return err
		}

		// Inserted unplaced; SaveContainer writes the real position
		created, err = uow.InsertTask(ctx, column.ID, req.Title, req.Description, -1)
		if err != nil {
			return err
		}
		order, err := siblings.Append(types.TaskID(created.ID))
		if err != nil {
			return err
		}
		created.Order = order

		return database.SaveContainer(ctx, uow, database.TaskSiblings, siblings)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("task appended", "op_id", opID, "caller", callerID, "column_id", created.ColumnID, "task_id", created.ID, "order", created.Order)
	s.publishTaskEvent(created.BoardID, created.ColumnID, opID)
	return created, nil
}

// RemoveTask deletes a task. Active tasks leave a gap that is closed by
// shifting later siblings down; archived tasks are outside the ordering and
// are simply deleted.
func (s *service) RemoveTask(ctx context.Context, taskID int) error {
	callerID, err := user.CallerID(ctx)
	if err != nil {
		return err
	}
	if taskID <= 0 {
		return ErrInvalidTaskID
	}

	var (
		removed *models.Task
		opID    string
	)
	err = s.store.WithinUnitOfWork(ctx, "remove_task", func(ctx context.Context, uow *database.UnitOfWork) error {
		opID = uow.OpID
		removed, err = s.resolver.ResolveTask(ctx, uow.Querier(), callerID, taskID)
		if err != nil {
			return err
		}

		if removed.Archived {
			return uow.DeleteTask(ctx, removed.ID)
		}

		siblings, err := s.loadTasks(ctx, uow, removed.ColumnID)
		if err != nil {
			return err
		}
		if err := siblings.RemoveAndCompact(types.TaskID(removed.ID)); err != nil {
			return err
		}
		if err := uow.DeleteTask(ctx, removed.ID); err != nil {
			return err
		}
		return database.SaveContainer(ctx, uow, database.TaskSiblings, siblings)
	})
	if err != nil {
		return err
	}

	slog.Info("task removed", "op_id", opID, "caller", callerID, "column_id", removed.ColumnID, "task_id", removed.ID, "archived", removed.Archived)
	if !removed.Archived {
		s.publishTaskEvent(removed.BoardID, removed.ColumnID, opID)
	}
	return nil
}

// ReorderTasks replaces the order of every active task in a column. The
// submitted ids must be exactly the column's active tasks; otherwise nothing
// changes.
func (s *service) ReorderTasks(ctx context.Context, req ReorderTasksRequest) (*TaskList, error) {
	callerID, err := user.CallerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateReorderTasks(req); err != nil {
		return nil, err
	}

	var (
		list *TaskList
		opID string
	)
	err = s.store.WithinUnitOfWork(ctx, "reorder_tasks", func(ctx context.Context, uow *database.UnitOfWork) error {
		opID = uow.OpID
		column, err := s.resolver.ResolveColumn(ctx, uow.Querier(), callerID, req.ColumnID)
		if err != nil {
			return err
		}

		siblings, err := s.loadTasks(ctx, uow, column.ID)
		if err != nil {
			return err
		}
		if err := database.CheckExpectedVersion(database.TaskSiblings, siblings, req.ExpectedVersion); err != nil {
			return err
		}
		if err := siblings.ReplaceOrder(types.TaskIDs(req.TaskIDs)); err != nil {
			return err
		}
		if err := database.SaveContainer(ctx, uow, database.TaskSiblings, siblings); err != nil {
			return err
		}

		tasks, err := uow.ListTasksByColumn(ctx, column.ID, false)
		if err != nil {
			return fmt.Errorf("failed to read tasks: %w", err)
		}
		list = &TaskList{ColumnID: column.ID, BoardID: column.BoardID, Version: siblings.Version + 1, Tasks: tasks}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("tasks reordered", "op_id", opID, "caller", callerID, "column_id", list.ColumnID, "version", list.Version)
	s.publishTaskEvent(list.BoardID, list.ColumnID, opID)
	return list, nil
}

// MoveTask places an active task at TargetOrder in TargetColumnID, which may
// be its current column. Both columns end up densely ordered.
func (s *service) MoveTask(ctx context.Context, req MoveTaskRequest) (*models.Task, error) {
	callerID, err := user.CallerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateMoveTask(req); err != nil {
		return nil, err
	}

	var (
		moved    *models.Task
		sourceID int
		opID     string
	)
	err = s.store.WithinUnitOfWork(ctx, "move_task", func(ctx context.Context, uow *database.UnitOfWork) error {
		opID = uow.OpID
		task, err := s.resolver.ResolveTask(ctx, uow.Querier(), callerID, req.TaskID)
		if err != nil {
			return err
		}
		if task.Archived {
			return ErrTaskArchived
		}
		target, err := s.resolver.ResolveColumn(ctx, uow.Querier(), callerID, req.TargetColumnID)
		if err != nil {
			return err
		}
		if target.BoardID != task.BoardID {
			return &models.CrossBoardMoveError{
				TaskID:        task.ID,
				SourceBoardID: task.BoardID,
				TargetBoardID: target.BoardID,
			}
		}
		sourceID = task.ColumnID

		src, err := s.loadTasks(ctx, uow, task.ColumnID)
		if err != nil {
			return err
		}
		dst := src
		if target.ID != task.ColumnID {
			dst, err = s.loadTasks(ctx, uow, target.ID)
			if err != nil {
				return err
			}
		}
		if err := database.CheckExpectedVersion(database.TaskSiblings, dst, req.ExpectedVersion); err != nil {
			return err
		}

		if _, err := ordering.Move(src.Container, dst.Container, types.TaskID(task.ID), req.TargetOrder); err != nil {
			return err
		}

		if dst != src {
			if err := database.SaveContainer(ctx, uow, database.TaskSiblings, src); err != nil {
				return err
			}
		}
		if err := database.SaveContainer(ctx, uow, database.TaskSiblings, dst); err != nil {
			return err
		}

		moved, err = uow.GetTask(ctx, task.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.Info("task moved", "op_id", opID, "caller", callerID, "task_id", moved.ID,
		"from_column", sourceID, "to_column", moved.ColumnID, "order", moved.Order)
	if sourceID != moved.ColumnID {
		s.publishTaskEvent(moved.BoardID, sourceID, opID)
	}
	s.publishTaskEvent(moved.BoardID, moved.ColumnID, opID)
	return moved, nil
}

// ArchiveTask takes an active task out of its column's ordering, closing the
// gap it leaves. The task keeps its row and its stale position.
func (s *service) ArchiveTask(ctx context.Context, taskID int) error {
	callerID, err := user.CallerID(ctx)
	if err != nil {
		return err
	}
	if taskID <= 0 {
		return ErrInvalidTaskID
	}

	var (
		archived *models.Task
		opID     string
	)
	err = s.store.WithinUnitOfWork(ctx, "archive_task", func(ctx context.Context, uow *database.UnitOfWork) error {
		opID = uow.OpID
		archived, err = s.resolver.ResolveTask(ctx, uow.Querier(), callerID, taskID)
		if err != nil {
			return err
		}
		if archived.Archived {
			return ErrTaskArchived
		}

		siblings, err := s.loadTasks(ctx, uow, archived.ColumnID)
		if err != nil {
			return err
		}
		if err := siblings.RemoveAndCompact(types.TaskID(archived.ID)); err != nil {
			return err
		}
		if err := uow.SetTaskArchived(ctx, archived.ID, true); err != nil {
			return err
		}
		return database.SaveContainer(ctx, uow, database.TaskSiblings, siblings)
	})
	if err != nil {
		return err
	}

	slog.Info("task archived", "op_id", opID, "caller", callerID, "column_id", archived.ColumnID, "task_id", archived.ID)
	s.publishTaskEvent(archived.BoardID, archived.ColumnID, opID)
	return nil
}

// RestoreTask brings an archived task back as the last active task of its column
func (s *service) RestoreTask(ctx context.Context, taskID int) (*models.Task, error) {
	callerID, err := user.CallerID(ctx)
	if err != nil {
		return nil, err
	}
	if taskID <= 0 {
		return nil, ErrInvalidTaskID
	}

	var (
		restored *models.Task
		opID     string
	)
	err = s.store.WithinUnitOfWork(ctx, "restore_task", func(ctx context.Context, uow *database.UnitOfWork) error {
		opID = uow.OpID
		task, err := s.resolver.ResolveTask(ctx, uow.Querier(), callerID, taskID)
		if err != nil {
			return err
		}
		if !task.Archived {
			return ErrTaskNotArchived
		}

		siblings, err := s.loadTasks(ctx, uow, task.ColumnID)
		if err != nil {
			return err
		}
		if _, err := siblings.Append(types.TaskID(task.ID)); err != nil {
			return err
		}
		if err := uow.SetTaskArchived(ctx, task.ID, false); err != nil {
			return err
		}
		if err := database.SaveContainer(ctx, uow, database.TaskSiblings, siblings); err != nil {
			return err
		}

		restored, err = uow.GetTask(ctx, task.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.Info("task restored", "op_id", opID, "caller", callerID, "column_id", restored.ColumnID, "task_id", restored.ID, "order", restored.Order)
	s.publishTaskEvent(restored.BoardID, restored.ColumnID, opID)
	return restored, nil
}

func (s *service) loadTasks(ctx context.Context, uow *database.UnitOfWork, columnID int) (*taskSet, error) {
	return database.LoadContainer[types.ColumnID, types.TaskID](ctx, uow, database.TaskSiblings, types.ColumnID(columnID))
}

// validateAppendTask validates an AppendTaskRequest
func validateAppendTask(req AppendTaskRequest) error {
	if req.ColumnID <= 0 {
		return ErrInvalidColumnID
	}
	if strings.TrimSpace(req.Title) == "" {
		return ErrEmptyTitle
	}
	if len(req.Title) > models.MaxTaskTitleLength {
		return ErrTitleTooLong
	}
	if len(req.Description) > models.MaxTaskDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}

// validateReorderTasks validates a ReorderTasksRequest
func validateReorderTasks(req ReorderTasksRequest) error {
	if req.ColumnID <= 0 {
		return ErrInvalidColumnID
	}
	if req.ExpectedVersion != nil && *req.ExpectedVersion < 0 {
		return ErrInvalidVersion
	}
	return nil
}

// validateMoveTask validates a MoveTaskRequest
func validateMoveTask(req MoveTaskRequest) error {
	if req.TaskID <= 0 {
		return ErrInvalidTaskID
	}
	if req.TargetColumnID <= 0 {
		return ErrInvalidColumnID
	}
	if req.TargetOrder < 0 {
		return ErrInvalidPosition
	}
	if req.ExpectedVersion != nil && *req.ExpectedVersion < 0 {
		return ErrInvalidVersion
	}
	return nil
}

// publishTaskEvent announces a committed change to a column's task order
func (s *service) publishTaskEvent(boardID, columnID int, opID string) {
	_ = events.PublishWithRetry(s.eventClient, events.Event{
		Type:        events.EventOrderChanged,
		BoardID:     boardID,
		ContainerID: columnID,
		Kind:        models.KindTask,
		OpID:        opID,
	}, publishAttempts)
}
