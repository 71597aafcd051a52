package column

import (
	"context"
	"database/sql"
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
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db := testutil.SetupTestDB(t)
	pub := &recordingPublisher{}
	alice := testutil.CreateTestUser(t, db, "alice")

	return &fixture{
		db:      db,
		svc:     NewService(database.NewStore(db), scope.NewSQLResolver(), pub),
		events:  pub,
		ctx:     testutil.CallerContext(alice),
		aliceID: alice,
		bobID:   testutil.CreateTestUser(t, db, "bob"),
		boardID: testutil.CreateTestBoard(t, db, alice, "Work"),
	}
}

func intPtr(v int) *int {
	return &v
}

// ============================================================================
// APPEND
// ============================================================================

func TestAppendColumn_AssignsNextOrder(t *testing.T) {
	f := setup(t)

	first, err := f.svc.AppendColumn(f.ctx, AppendColumnRequest{BoardID: f.boardID, Name: "Todo"})
	require.NoError(t, err)
	second, err := f.svc.AppendColumn(f.ctx, AppendColumnRequest{BoardID: f.boardID, Name: "Doing"})
	require.NoError(t, err)
	third, err := f.svc.AppendColumn(f.ctx, AppendColumnRequest{BoardID: f.boardID, Name: "Done"})
	require.NoError(t, err)

	assert.Equal(t, 0, first.Order)
	assert.Equal(t, 1, second.Order)
	assert.Equal(t, 2, third.Order)
	assert.Equal(t, []int{first.ID, second.ID, third.ID}, testutil.ColumnIDsInOrder(t, f.db, f.boardID))
	testutil.AssertDenseColumns(t, f.db, f.boardID)

	require.Len(t, f.events.events, 3)
	ev := f.events.events[2]
	assert.Equal(t, events.EventOrderChanged, ev.Type)
	assert.Equal(t, f.boardID, ev.BoardID)
	assert.Equal(t, models.KindColumn, ev.Kind)
	assert.NotEmpty(t, ev.OpID)
}

func TestAppendColumn_Validation(t *testing.T) {
	f := setup(t)

	tests := []struct {
		name    string
		req     AppendColumnRequest
		wantErr error
	}{
		{"empty name", AppendColumnRequest{BoardID: f.boardID, Name: "  "}, ErrEmptyName},
		{"name too long", AppendColumnRequest{BoardID: f.boardID, Name: string(make([]byte, 51))}, ErrNameTooLong},
		{"missing board", AppendColumnRequest{Name: "Todo"}, ErrInvalidBoardID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.AppendColumn(f.ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.Empty(t, f.events.events)
}

func TestAppendColumn_ForeignBoardIsNotFound(t *testing.T) {
	f := setup(t)

	_, err := f.svc.AppendColumn(testutil.CallerContext(f.bobID), AppendColumnRequest{BoardID: f.boardID, Name: "Sneaky"})
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Empty(t, testutil.ColumnIDsInOrder(t, f.db, f.boardID))
}

func TestAppendColumn_Unauthenticated(t *testing.T) {
	f := setup(t)

	_, err := f.svc.AppendColumn(context.Background(), AppendColumnRequest{BoardID: f.boardID, Name: "Todo"})
	assert.ErrorIs(t, err, models.ErrUnauthenticated)
}

// ============================================================================
// REMOVE
// ============================================================================

func TestRemoveColumn_CompactsSiblings(t *testing.T) {
	f := setup(t)
	ids := testutil.CreateTestColumns(t, f.db, f.boardID, "A", "B", "C", "D")
	tasks := testutil.CreateTestTasks(t, f.db, ids[1], "in B")

	require.NoError(t, f.svc.RemoveColumn(f.ctx, ids[1]))

	assert.Equal(t, []int{ids[0], ids[2], ids[3]}, testutil.ColumnIDsInOrder(t, f.db, f.boardID))
	testutil.AssertDenseColumns(t, f.db, f.boardID)

	_, err := database.NewRepository(f.db).GetTask(context.Background(), tasks[0])
	assert.ErrorIs(t, err, models.ErrNotFound, "tasks are deleted with their column")
}

func TestRemoveColumn_Twice(t *testing.T) {
	f := setup(t)
	ids := testutil.CreateTestColumns(t, f.db, f.boardID, "A", "B")

	require.NoError(t, f.svc.RemoveColumn(f.ctx, ids[0]))
	err := f.svc.RemoveColumn(f.ctx, ids[0])
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Equal(t, []int{ids[1]}, testutil.ColumnIDsInOrder(t, f.db, f.boardID))
}

func TestRemoveColumn_ForeignColumn(t *testing.T) {
	f := setup(t)
	ids := testutil.CreateTestColumns(t, f.db, f.boardID, "A")

	err := f.svc.RemoveColumn(testutil.CallerContext(f.bobID), ids[0])
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Equal(t, ids, testutil.ColumnIDsInOrder(t, f.db, f.boardID))
}

// ============================================================================
// REORDER
// ============================================================================

func TestReorderColumns_Permutation(t *testing.T) {
	f := setup(t)
	ids := testutil.CreateTestColumns(t, f.db, f.boardID, "A", "B", "C")

	list, err := f.svc.ReorderColumns(f.ctx, ReorderColumnsRequest{
		BoardID:   f.boardID,
		ColumnIDs: []int{ids[2], ids[0], ids[1]},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, list.Version)
	require.Len(t, list.Columns, 3)
	assert.Equal(t, ids[2], list.Columns[0].ID)
	assert.Equal(t, 0, list.Columns[0].Order)
	assert.Equal(t, []int{ids[2], ids[0], ids[1]}, testutil.ColumnIDsInOrder(t, f.db, f.boardID))
}

func TestReorderColumns_TotalOrNothing(t *testing.T) {
	f := setup(t)
	ids := testutil.CreateTestColumns(t, f.db, f.boardID, "A", "B", "C")
	otherBoard := testutil.CreateTestBoard(t, f.db, f.aliceID, "Other")
	foreign := testutil.CreateTestColumns(t, f.db, otherBoard, "X")

	tests := []struct {
		name    string
		ids     []int
		wantErr error
	}{
		{"column from another board", []int{ids[2], ids[1], foreign[0]}, models.ErrInvalidReorderReferences},
		{"extra column", []int{ids[2], ids[1], ids[0], foreign[0]}, models.ErrInvalidReorderReferences},
		{"missing column", []int{ids[2], ids[1]}, models.ErrIncompleteReorder},
		{"duplicate column", []int{ids[2], ids[2], ids[1]}, models.ErrInvalidReorderReferences},
		{"empty", nil, models.ErrIncompleteReorder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.ReorderColumns(f.ctx, ReorderColumnsRequest{BoardID: f.boardID, ColumnIDs: tt.ids})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, ids, testutil.ColumnIDsInOrder(t, f.db, f.boardID))
		})
	}

	list, err := f.svc.ListColumns(f.ctx, f.boardID)
	require.NoError(t, err)
	assert.Equal(t, 0, list.Version, "failed reorders do not bump the version")
	assert.Empty(t, f.events.events)
}

func TestReorderColumns_StaleExpectedVersion(t *testing.T) {
	f := setup(t)
	ids := testutil.CreateTestColumns(t, f.db, f.boardID, "A", "B")

	list, err := f.svc.ListColumns(f.ctx, f.boardID)
	require.NoError(t, err)
	version := list.Version

	// Another client reorders first
	_, err = f.svc.ReorderColumns(f.ctx, ReorderColumnsRequest{BoardID: f.boardID, ColumnIDs: []int{ids[1], ids[0]}, ExpectedVersion: intPtr(version)})
	require.NoError(t, err)

	_, err = f.svc.ReorderColumns(f.ctx, ReorderColumnsRequest{BoardID: f.boardID, ColumnIDs: []int{ids[0], ids[1]}, ExpectedVersion: intPtr(version)})
	assert.ErrorIs(t, err, models.ErrConflict)
	assert.Equal(t, []int{ids[1], ids[0]}, testutil.ColumnIDsInOrder(t, f.db, f.boardID))
}

func TestReorderColumns_NegativeExpectedVersion(t *testing.T) {
	f := setup(t)

	_, err := f.svc.ReorderColumns(f.ctx, ReorderColumnsRequest{BoardID: f.boardID, ExpectedVersion: intPtr(-1)})
	assert.ErrorIs(t, err, ErrInvalidVersion)
}

// ============================================================================
// READ / RENAME
// ============================================================================

func TestListColumns_ForeignBoard(t *testing.T) {
	f := setup(t)

	_, err := f.svc.ListColumns(testutil.CallerContext(f.bobID), f.boardID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestRenameColumn(t *testing.T) {
	f := setup(t)
	ids := testutil.CreateTestColumns(t, f.db, f.boardID, "A", "B")

	require.NoError(t, f.svc.RenameColumn(f.ctx, ids[1], "Review"))

	list, err := f.svc.ListColumns(f.ctx, f.boardID)
	require.NoError(t, err)
	assert.Equal(t, "Review", list.Columns[1].Name)
	assert.Equal(t, 0, list.Version, "renames do not touch the order")

	assert.ErrorIs(t, f.svc.RenameColumn(f.ctx, ids[0], ""), ErrEmptyName)
	assert.ErrorIs(t, f.svc.RenameColumn(testutil.CallerContext(f.bobID), ids[0], "Mine"), models.ErrNotFound)
}
