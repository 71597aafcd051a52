package cli

import (
	"context"
	"database/sql"
	"testing"

	"github.com/thenoetrevino/tablero/internal/app"
	"github.com/thenoetrevino/tablero/internal/testutil"
)

// Env is an in-memory database and App with an authenticated caller
type Env struct {
	DB     *sql.DB
	App    *app.App
	UserID int
	Ctx    context.Context // authenticated as UserID
}

// SetupCLITest creates an in-memory DB, an App over it and a user named alice.
// This function is only for CLI tests and is isolated in a separate package
// to avoid import cycles when service tests import testutil
func SetupCLITest(t *testing.T) *Env {
	t.Helper()
	db := testutil.SetupTestDB(t)

	appInstance := app.New(db)
	t.Cleanup(func() { _ = appInstance.Close() })

	alice := testutil.CreateTestUser(t, db, "alice")
	return &Env{
		DB:     db,
		App:    appInstance,
		UserID: alice,
		Ctx:    testutil.CallerContext(alice),
	}
}

// CreateTestBoard creates a board owned by the env's user with the given columns
// and returns the board id and the column ids in order
func (e *Env) CreateTestBoard(t *testing.T, name string, columns ...string) (int, []int) {
	t.Helper()
	boardID := testutil.CreateTestBoard(t, e.DB, e.UserID, name)
	return boardID, testutil.CreateTestColumns(t, e.DB, boardID, columns...)
}

// CreateTestTasks wraps testutil.CreateTestTasks
func (e *Env) CreateTestTasks(t *testing.T, columnID int, titles ...string) []int {
	t.Helper()
	return testutil.CreateTestTasks(t, e.DB, columnID, titles...)
}
