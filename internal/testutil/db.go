package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/user"
)

// SetupTestDB creates an in-memory database with the full schema.
// The database is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(context.Background(), database.InMemoryDSN())
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// DBFixture groups a test database with two tenants
type DBFixture struct {
	DB    *sql.DB
	Alice int
	Bob   int
}

// CallerContext returns a background context authenticated as userID
func CallerContext(userID int) context.Context {
	return user.WithCallerID(context.Background(), userID)
}

// CreateTestUser creates (or fetches) a user and returns its id
func CreateTestUser(t *testing.T, db *sql.DB, username string) int {
	t.Helper()
	u, err := database.NewRepository(db).EnsureUser(context.Background(), username)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return u.ID
}

// CreateTestBoard creates an empty board and returns its id
func CreateTestBoard(t *testing.T, db *sql.DB, ownerID int, name string) int {
	t.Helper()
	b, err := database.NewRepository(db).CreateBoard(context.Background(), ownerID, name)
	if err != nil {
		t.Fatalf("Failed to create test board: %v", err)
	}
	return b.ID
}

// CreateTestColumns creates densely ordered columns on a board, in the given order
func CreateTestColumns(t *testing.T, db *sql.DB, boardID int, names ...string) []int {
	t.Helper()
	repo := database.NewRepository(db)
	ids := make([]int, len(names))
	for i, name := range names {
		c, err := repo.InsertColumn(context.Background(), boardID, name, i)
		if err != nil {
			t.Fatalf("Failed to create test column: %v", err)
		}
		ids[i] = c.ID
	}
	return ids
}

// CreateTestTasks creates densely ordered tasks in a column, in the given order
func CreateTestTasks(t *testing.T, db *sql.DB, columnID int, titles ...string) []int {
	t.Helper()
	repo := database.NewRepository(db)
	ids := make([]int, len(titles))
	for i, title := range titles {
		task, err := repo.InsertTask(context.Background(), columnID, title, "", i)
		if err != nil {
			t.Fatalf("Failed to create test task: %v", err)
		}
		ids[i] = task.ID
	}
	return ids
}

// ColumnIDsInOrder returns the ids of a board's columns sorted by position
func ColumnIDsInOrder(t *testing.T, db *sql.DB, boardID int) []int {
	t.Helper()
	return queryIDs(t, db, `SELECT id FROM columns WHERE board_id = ? ORDER BY position, id`, boardID)
}

// TaskIDsInOrder returns the ids of a column's active tasks sorted by position
func TaskIDsInOrder(t *testing.T, db *sql.DB, columnID int) []int {
	t.Helper()
	return queryIDs(t, db, `SELECT id FROM tasks WHERE column_id = ? AND archived = 0 ORDER BY position, id`, columnID)
}

// AssertDenseColumns fails the test unless a board's column positions are exactly 0..N-1
func AssertDenseColumns(t *testing.T, db *sql.DB, boardID int) {
	t.Helper()
	assertDense(t, queryIDs(t, db, `SELECT position FROM columns WHERE board_id = ? ORDER BY position`, boardID), "board", boardID)
}

// AssertDenseTasks fails the test unless a column's active task positions are exactly 0..N-1
func AssertDenseTasks(t *testing.T, db *sql.DB, columnID int) {
	t.Helper()
	assertDense(t, queryIDs(t, db, `SELECT position FROM tasks WHERE column_id = ? AND archived = 0 ORDER BY position`, columnID), "column", columnID)
}

func assertDense(t *testing.T, positions []int, kind string, id int) {
	t.Helper()
	for i, p := range positions {
		if p != i {
			t.Fatalf("%s %d positions are not dense: %v", kind, id, positions)
		}
	}
}

func queryIDs(t *testing.T, db *sql.DB, query string, arg int) []int {
	t.Helper()
	rows, err := db.Query(query, arg)
	if err != nil {
		t.Fatalf("Failed to query: %v", err)
	}
	defer rows.Close()

	out := []int{}
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			t.Fatalf("Failed to scan: %v", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("Failed to iterate rows: %v", err)
	}
	return out
}
