package task

import (
	"context"
	"database/sql"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/events"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/scope"
	"github.com/thenoetrevino/tablero/internal/testutil"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

type recordingPublisher struct {
	events []events.Event
}

func (p *recordingPublisher) SendEvent(event events.Event) error {
	p.events = append(p.events, event)
	return nil
}

type fixture struct {
	db      *sql.DB
	svc     Service
	events  *recordingPublisher
	ctx     context.Context
	aliceID int
	bobID   int
	boardID int
	columns []int
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db := testutil.SetupTestDB(t)
	pub := &recordingPublisher{}
	alice := testutil.CreateTestUser(t, db, "alice")
	board := testutil.CreateTestBoard(t, db, alice, "Work")

	return &fixture{
		db:      db,
		svc:     NewService(database.NewStore(db), scope.NewSQLResolver(), pub),
		events:  pub,
		ctx:     testutil.CallerContext(alice),
		aliceID: alice,
		bobID:   testutil.CreateTestUser(t, db, "bob"),
		boardID: board,
		columns: testutil.CreateTestColumns(t, db, board, "Todo", "Doing", "Done"),
	}
}

func intPtr(v int) *int {
	return &v
}

func (f *fixture) version(t *testing.T, columnID int) int {
	t.Helper()
	list, err := f.svc.ListTasks(f.ctx, ListTasksRequest{ColumnID: columnID})
	require.NoError(t, err)
	return list.Version
}

// ============================================================================
// APPEND
// ============================================================================

func TestAppendTask_AssignsNextOrder(t *testing.T) {
	f := setup(t)
	col := f.columns[0]

	var ids []int
	for i, title := range []string{"A", "B", "C"} {
		task, err := f.svc.AppendTask(f.ctx, AppendTaskRequest{ColumnID: col, Title: title})
		require.NoError(t, err)
		assert.Equal(t, i, task.Order)
		assert.Equal(t, f.boardID, task.BoardID)
		ids = append(ids, task.ID)
	}

	assert.Equal(t, ids, testutil.TaskIDsInOrder(t, f.db, col))
	testutil.AssertDenseTasks(t, f.db, col)
	assert.Equal(t, 3, f.version(t, col))

	require.Len(t, f.events.events, 3)
	assert.Equal(t, col, f.events.events[0].ContainerID)
	assert.Equal(t, models.KindTask, f.events.events[0].Kind)
}

func TestAppendTask_IgnoresArchivedOrders(t *testing.T) {
	f := setup(t)
	col := f.columns[0]
	ids := testutil.CreateTestTasks(t, f.db, col, "A", "B")
	require.NoError(t, f.svc.ArchiveTask(f.ctx, ids[1]))

	task, err := f.svc.AppendTask(f.ctx, AppendTaskRequest{ColumnID: col, Title: "C"})
	require.NoError(t, err)
	assert.Equal(t, 1, task.Order)
}

func TestAppendTask_Validation(t *testing.T) {
	f := setup(t)

	tests := []struct {
		name    string
		req     AppendTaskRequest
		wantErr error
	}{
		{"empty title", AppendTaskRequest{ColumnID: f.columns[0], Title: ""}, ErrEmptyTitle},
		{"title too long", AppendTaskRequest{ColumnID: f.columns[0], Title: string(make([]byte, 256))}, ErrTitleTooLong},
		{"description too long", AppendTaskRequest{ColumnID: f.columns[0], Title: "ok", Description: string(make([]byte, 10001))}, ErrDescriptionTooLong},
		{"missing column", AppendTaskRequest{Title: "ok"}, ErrInvalidColumnID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.AppendTask(f.ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAppendTask_ForeignColumn(t *testing.T) {
	f := setup(t)

	_, err := f.svc.AppendTask(testutil.CallerContext(f.bobID), AppendTaskRequest{ColumnID: f.columns[0], Title: "Sneaky"})
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Empty(t, testutil.TaskIDsInOrder(t, f.db, f.columns[0]))
}

// ============================================================================
// REMOVE
// ============================================================================

func TestRemoveTask_CompactsSiblings(t *testing.T) {
	f := setup(t)
	col := f.columns[0]
	ids := testutil.CreateTestTasks(t, f.db, col, "A", "B", "C", "D")

	require.NoError(t, f.svc.RemoveTask(f.ctx, ids[1]))

	assert.Equal(t, []int{ids[0], ids[2], ids[3]}, testutil.TaskIDsInOrder(t, f.db, col))
	testutil.AssertDenseTasks(t, f.db, col)

	err := f.svc.RemoveTask(f.ctx, ids[1])
	assert.ErrorIs(t, err, models.ErrNotFound, "removing twice is an error")
}

func TestRemoveTask_Archived(t *testing.T) {
	f := setup(t)
	col := f.columns[0]
	ids := testutil.CreateTestTasks(t, f.db, col, "A", "B")
	require.NoError(t, f.svc.ArchiveTask(f.ctx, ids[0]))
	version := f.version(t, col)

	require.NoError(t, f.svc.RemoveTask(f.ctx, ids[0]))

	assert.Equal(t, []int{ids[1]}, testutil.TaskIDsInOrder(t, f.db, col))
	assert.Equal(t, version, f.version(t, col), "deleting an archived task leaves the ordering alone")
}

func TestRemoveTask_ForeignTask(t *testing.T) {
	f := setup(t)
	ids := testutil.CreateTestTasks(t, f.db, f.columns[0], "A")

	err := f.svc.RemoveTask(testutil.CallerContext(f.bobID), ids[0])
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Equal(t, ids, testutil.TaskIDsInOrder(t, f.db, f.columns[0]))
}

// ============================================================================
// REORDER
// ============================================================================

func TestReorderTasks_TotalOrNothing(t *testing.T) {
	f := setup(t)
	col := f.columns[0]
	ids := testutil.CreateTestTasks(t, f.db, col, "A", "B", "C")
	other := testutil.CreateTestTasks(t, f.db, f.columns[1], "X")

	tests := []struct {
		name    string
		ids     []int
		wantErr error
	}{
		{"task from another column", []int{ids[0], ids[1], other[0]}, models.ErrInvalidReorderReferences},
		{"missing task", []int{ids[0], ids[1]}, models.ErrIncompleteReorder},
		{"duplicate task", []int{ids[0], ids[0], ids[1]}, models.ErrInvalidReorderReferences},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.ReorderTasks(f.ctx, ReorderTasksRequest{ColumnID: col, TaskIDs: tt.ids})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, ids, testutil.TaskIDsInOrder(t, f.db, col))
		})
	}

	list, err := f.svc.ReorderTasks(f.ctx, ReorderTasksRequest{ColumnID: col, TaskIDs: []int{ids[2], ids[0], ids[1]}, ExpectedVersion: intPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Version)
	assert.Equal(t, []int{ids[2], ids[0], ids[1]}, testutil.TaskIDsInOrder(t, f.db, col))
}

func TestReorderTasks_ArchivedTaskIsForeign(t *testing.T) {
	f := setup(t)
	col := f.columns[0]
	ids := testutil.CreateTestTasks(t, f.db, col, "A", "B")
	require.NoError(t, f.svc.ArchiveTask(f.ctx, ids[0]))

	_, err := f.svc.ReorderTasks(f.ctx, ReorderTasksRequest{ColumnID: col, TaskIDs: []int{ids[1], ids[0]}})
	assert.ErrorIs(t, err, models.ErrInvalidReorderReferences)
}

func TestReorderTasks_StaleVersion(t *testing.T) {
	f := setup(t)
	col := f.columns[0]
	ids := testutil.CreateTestTasks(t, f.db, col, "A", "B")

	_, err := f.svc.AppendTask(f.ctx, AppendTaskRequest{ColumnID: col, Title: "C"})
	require.NoError(t, err)

	_, err = f.svc.ReorderTasks(f.ctx, ReorderTasksRequest{ColumnID: col, TaskIDs: ids, ExpectedVersion: intPtr(0)})
	assert.ErrorIs(t, err, models.ErrConflict)

	var conflict *models.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, models.KindColumn, conflict.Kind)
	assert.Equal(t, 1, conflict.Actual)
}

// ============================================================================
// MOVE
// ============================================================================

func TestMoveTask_WithinColumn(t *testing.T) {
	f := setup(t)
	col := f.columns[0]
	ids := testutil.CreateTestTasks(t, f.db, col, "A", "B", "C", "D")

	moved, err := f.svc.MoveTask(f.ctx, MoveTaskRequest{TaskID: ids[3], TargetColumnID: col, TargetOrder: 0})
	require.NoError(t, err)

	assert.Equal(t, 0, moved.Order)
	assert.Equal(t, []int{ids[3], ids[0], ids[1], ids[2]}, testutil.TaskIDsInOrder(t, f.db, col))
	testutil.AssertDenseTasks(t, f.db, col)
	assert.Equal(t, 1, f.version(t, col))
	assert.Len(t, f.events.events, 1)
}

func TestMoveTask_DownWithinColumn(t *testing.T) {
	f := setup(t)
	col := f.columns[0]
	ids := testutil.CreateTestTasks(t, f.db, col, "A", "B", "C", "D")

	moved, err := f.svc.MoveTask(f.ctx, MoveTaskRequest{TaskID: ids[0], TargetColumnID: col, TargetOrder: 2})
	require.NoError(t, err)

	assert.Equal(t, 2, moved.Order)
	assert.Equal(t, []int{ids[1], ids[2], ids[0], ids[3]}, testutil.TaskIDsInOrder(t, f.db, col))
	testutil.AssertDenseTasks(t, f.db, col)
}

func TestMoveTask_AcrossColumns(t *testing.T) {
	f := setup(t)
	src, dst := f.columns[0], f.columns[1]
	abc := testutil.CreateTestTasks(t, f.db, src, "A", "B", "C")
	xy := testutil.CreateTestTasks(t, f.db, dst, "X", "Y")

	moved, err := f.svc.MoveTask(f.ctx, MoveTaskRequest{TaskID: abc[1], TargetColumnID: dst, TargetOrder: 1})
	require.NoError(t, err)

	assert.Equal(t, dst, moved.ColumnID)
	assert.Equal(t, 1, moved.Order)
	assert.Equal(t, []int{abc[0], abc[2]}, testutil.TaskIDsInOrder(t, f.db, src))
	assert.Equal(t, []int{xy[0], abc[1], xy[1]}, testutil.TaskIDsInOrder(t, f.db, dst))
	testutil.AssertDenseTasks(t, f.db, src)
	testutil.AssertDenseTasks(t, f.db, dst)

	assert.Equal(t, 1, f.version(t, src))
	assert.Equal(t, 1, f.version(t, dst))
	require.Len(t, f.events.events, 2)
	assert.Equal(t, src, f.events.events[0].ContainerID)
	assert.Equal(t, dst, f.events.events[1].ContainerID)
	assert.Equal(t, f.events.events[0].OpID, f.events.events[1].OpID)
}

func TestMoveTask_BeyondEndClamps(t *testing.T) {
	f := setup(t)
	src, dst := f.columns[0], f.columns[1]
	a := testutil.CreateTestTasks(t, f.db, src, "A")
	xy := testutil.CreateTestTasks(t, f.db, dst, "X", "Y")

	moved, err := f.svc.MoveTask(f.ctx, MoveTaskRequest{TaskID: a[0], TargetColumnID: dst, TargetOrder: 50})
	require.NoError(t, err)
	assert.Equal(t, 2, moved.Order)
	assert.Equal(t, []int{xy[0], xy[1], a[0]}, testutil.TaskIDsInOrder(t, f.db, dst))
	assert.Empty(t, testutil.TaskIDsInOrder(t, f.db, src))
}

func TestMoveTask_CrossBoardRejected(t *testing.T) {
	f := setup(t)
	ids := testutil.CreateTestTasks(t, f.db, f.columns[0], "A", "B")
	otherBoard := testutil.CreateTestBoard(t, f.db, f.aliceID, "Personal")
	otherCols := testutil.CreateTestColumns(t, f.db, otherBoard, "Inbox")

	_, err := f.svc.MoveTask(f.ctx, MoveTaskRequest{TaskID: ids[0], TargetColumnID: otherCols[0], TargetOrder: 0})
	assert.ErrorIs(t, err, models.ErrCrossBoardMove)

	var cross *models.CrossBoardMoveError
	require.True(t, errors.As(err, &cross))
	assert.Equal(t, f.boardID, cross.SourceBoardID)
	assert.Equal(t, otherBoard, cross.TargetBoardID)

	assert.Equal(t, ids, testutil.TaskIDsInOrder(t, f.db, f.columns[0]))
	assert.Empty(t, testutil.TaskIDsInOrder(t, f.db, otherCols[0]))
	assert.Equal(t, 0, f.version(t, f.columns[0]))
}

func TestMoveTask_ForeignTargetColumnIsNotFound(t *testing.T) {
	f := setup(t)
	ids := testutil.CreateTestTasks(t, f.db, f.columns[0], "A")
	bobBoard := testutil.CreateTestBoard(t, f.db, f.bobID, "Bob's")
	bobCols := testutil.CreateTestColumns(t, f.db, bobBoard, "Todo")

	_, err := f.svc.MoveTask(f.ctx, MoveTaskRequest{TaskID: ids[0], TargetColumnID: bobCols[0]})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestMoveTask_Preconditions(t *testing.T) {
	f := setup(t)
	ids := testutil.CreateTestTasks(t, f.db, f.columns[0], "A", "B")
	require.NoError(t, f.svc.ArchiveTask(f.ctx, ids[1]))

	_, err := f.svc.MoveTask(f.ctx, MoveTaskRequest{TaskID: ids[0], TargetColumnID: f.columns[1], TargetOrder: -1})
	assert.ErrorIs(t, err, ErrInvalidPosition)

	_, err = f.svc.MoveTask(f.ctx, MoveTaskRequest{TaskID: ids[1], TargetColumnID: f.columns[1]})
	assert.ErrorIs(t, err, ErrTaskArchived)

	_, err = f.svc.MoveTask(f.ctx, MoveTaskRequest{TaskID: ids[0], TargetColumnID: f.columns[1], ExpectedVersion: intPtr(4)})
	assert.ErrorIs(t, err, models.ErrConflict)
	assert.Equal(t, []int{ids[0]}, testutil.TaskIDsInOrder(t, f.db, f.columns[0]))

	_, err = f.svc.MoveTask(context.Background(), MoveTaskRequest{TaskID: ids[0], TargetColumnID: f.columns[1]})
	assert.ErrorIs(t, err, models.ErrUnauthenticated)
}

// ============================================================================
// ARCHIVE / RESTORE
// ============================================================================

func TestArchiveAndRestore(t *testing.T) {
	f := setup(t)
	col := f.columns[0]
	ids := testutil.CreateTestTasks(t, f.db, col, "A", "B", "C")

	require.NoError(t, f.svc.ArchiveTask(f.ctx, ids[0]))
	assert.Equal(t, []int{ids[1], ids[2]}, testutil.TaskIDsInOrder(t, f.db, col))
	testutil.AssertDenseTasks(t, f.db, col)
	assert.ErrorIs(t, f.svc.ArchiveTask(f.ctx, ids[0]), ErrTaskArchived)

	list, err := f.svc.ListTasks(f.ctx, ListTasksRequest{ColumnID: col, IncludeArchived: true})
	require.NoError(t, err)
	require.Len(t, list.Tasks, 3)
	assert.True(t, list.Tasks[2].Archived)

	restored, err := f.svc.RestoreTask(f.ctx, ids[0])
	require.NoError(t, err)
	assert.False(t, restored.Archived)
	assert.Equal(t, 2, restored.Order, "restored tasks rejoin at the end")
	assert.Equal(t, []int{ids[1], ids[2], ids[0]}, testutil.TaskIDsInOrder(t, f.db, col))
	testutil.AssertDenseTasks(t, f.db, col)

	_, err = f.svc.RestoreTask(f.ctx, ids[0])
	assert.ErrorIs(t, err, ErrTaskNotArchived)
}

// ============================================================================
// DENSITY UNDER RANDOM OPERATIONS
// ============================================================================

func TestRandomOperationsKeepColumnsDense(t *testing.T) {
	f := setup(t)
	rng := rand.New(rand.NewPCG(7, 11))

	live := map[int]int{} // task id -> column id
	archived := map[int]bool{}
	pick := func() (int, bool) {
		if len(live) == 0 {
			return 0, false
		}
		n := rng.IntN(len(live))
		for id := range live {
			if n == 0 {
				return id, true
			}
			n--
		}
		return 0, false
	}

	for step := 0; step < 200; step++ {
		col := f.columns[rng.IntN(len(f.columns))]

		switch op := rng.IntN(6); {
		case op == 0 || len(live) < 2:
			task, err := f.svc.AppendTask(f.ctx, AppendTaskRequest{ColumnID: col, Title: "t"})
			require.NoError(t, err)
			live[task.ID] = col
		case op == 1:
			id, _ := pick()
			require.NoError(t, f.svc.RemoveTask(f.ctx, id))
			delete(live, id)
			delete(archived, id)
		case op == 2:
			id, _ := pick()
			moved, err := f.svc.MoveTask(f.ctx, MoveTaskRequest{TaskID: id, TargetColumnID: col, TargetOrder: rng.IntN(6)})
			if errors.Is(err, ErrTaskArchived) {
				continue
			}
			require.NoError(t, err)
			live[id] = moved.ColumnID
		case op == 3:
			current := testutil.TaskIDsInOrder(t, f.db, col)
			rng.Shuffle(len(current), func(i, j int) { current[i], current[j] = current[j], current[i] })
			_, err := f.svc.ReorderTasks(f.ctx, ReorderTasksRequest{ColumnID: col, TaskIDs: current})
			require.NoError(t, err)
		case op == 4:
			id, _ := pick()
			if archived[id] {
				_, err := f.svc.RestoreTask(f.ctx, id)
				require.NoError(t, err)
				delete(archived, id)
			} else {
				require.NoError(t, f.svc.ArchiveTask(f.ctx, id))
				archived[id] = true
			}
		default:
			_, err := f.svc.ListTasks(f.ctx, ListTasksRequest{ColumnID: col})
			require.NoError(t, err)
		}

		for _, c := range f.columns {
			testutil.AssertDenseTasks(t, f.db, c)
		}
	}
}
