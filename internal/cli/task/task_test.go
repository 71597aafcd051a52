package task

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/testutil"
	clitest "github.com/thenoetrevino/tablero/internal/testutil/cli"
)

func joinIDs(ids ...int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

func errorCode(t *testing.T, stdout string) any {
	t.Helper()
	return clitest.ParseJSON(t, stdout)["error"].(map[string]any)["code"]
}

func TestCreateTask_Integration(t *testing.T) {
	env := clitest.SetupCLITest(t)
	_, cols := env.CreateTestBoard(t, "Work", "Todo")
	existing := env.CreateTestTasks(t, cols[0], "A", "B")

	out, err := env.Run(t, CreateCmd(), "--column", fmt.Sprint(cols[0]), "--title", "C", "--description", "third", "--json")
	require.NoError(t, err)

	task := clitest.ParseJSON(t, out.Stdout)["data"].(map[string]any)["task"].(map[string]any)
	assert.Equal(t, "C", task["title"])
	assert.Equal(t, "third", task["description"])
	assert.Equal(t, float64(2), task["order"])
	assert.Equal(t, false, task["archived"])

	ids := testutil.TaskIDsInOrder(t, env.DB, cols[0])
	assert.Equal(t, existing, ids[:2])
	testutil.AssertDenseTasks(t, env.DB, cols[0])

	t.Run("empty title", func(t *testing.T) {
		out, err := env.Run(t, CreateCmd(), "--column", fmt.Sprint(cols[0]), "--title", "  ", "--json")
		require.Error(t, err)
		assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, out.Stdout))
	})

	t.Run("missing column", func(t *testing.T) {
		out, err := env.Run(t, CreateCmd(), "--column", "9999", "--title", "X", "--json")
		require.Error(t, err)
		assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))
		assert.Equal(t, "COLUMN_NOT_FOUND", errorCode(t, out.Stdout))
	})
}

func TestListTasks_Integration(t *testing.T) {
	env := clitest.SetupCLITest(t)
	_, cols := env.CreateTestBoard(t, "Work", "Todo")
	ids := env.CreateTestTasks(t, cols[0], "A", "B", "C")

	_, err := env.Run(t, ArchiveCmd(), "--id", fmt.Sprint(ids[1]))
	require.NoError(t, err)

	out, err := env.Run(t, ListCmd(), "--column", fmt.Sprint(cols[0]), "--quiet")
	require.NoError(t, err)
	assert.Equal(t, []string{fmt.Sprint(ids[0]), fmt.Sprint(ids[2])}, clitest.QuietIDs(t, out.Stdout))

	out, err = env.Run(t, ListCmd(), "--column", fmt.Sprint(cols[0]), "--archived", "--json")
	require.NoError(t, err)
	tasks := clitest.ParseJSON(t, out.Stdout)["data"].(map[string]any)["tasks"].([]any)
	require.Len(t, tasks, 3)
	last := tasks[2].(map[string]any)
	assert.Equal(t, "B", last["title"])
	assert.Equal(t, true, last["archived"])
	assert.Nil(t, last["order"])

	out, err = env.Run(t, ListCmd(), "--column", fmt.Sprint(cols[0]), "--archived")
	require.NoError(t, err)
	assert.Contains(t, out.Stdout, "archived")
}

func TestReorderTasks_Integration(t *testing.T) {
	env := clitest.SetupCLITest(t)
	_, cols := env.CreateTestBoard(t, "Work", "Todo")
	ids := env.CreateTestTasks(t, cols[0], "A", "B", "C", "D")

	out, err := env.Run(t, ReorderCmd(), "--column", fmt.Sprint(cols[0]), "--order", joinIDs(ids[3], ids[0], ids[1], ids[2]), "--quiet")
	require.NoError(t, err)
	assert.Equal(t, []string{fmt.Sprint(ids[3]), fmt.Sprint(ids[0]), fmt.Sprint(ids[1]), fmt.Sprint(ids[2])}, clitest.QuietIDs(t, out.Stdout))
	assert.Equal(t, []int{ids[3], ids[0], ids[1], ids[2]}, testutil.TaskIDsInOrder(t, env.DB, cols[0]))

	t.Run("duplicate id", func(t *testing.T) {
		out, err := env.Run(t, ReorderCmd(), "--column", fmt.Sprint(cols[0]), "--order", joinIDs(ids[0], ids[0], ids[1], ids[2]), "--json")
		require.Error(t, err)
		assert.Equal(t, "INVALID_REORDER", errorCode(t, out.Stdout))
		assert.Equal(t, []int{ids[3], ids[0], ids[1], ids[2]}, testutil.TaskIDsInOrder(t, env.DB, cols[0]))
	})

	t.Run("stale version", func(t *testing.T) {
		_, err := env.Run(t, ReorderCmd(), "--column", fmt.Sprint(cols[0]), "--order", joinIDs(ids...), "--expected-version", "0", "--json")
		require.Error(t, err)
		assert.Equal(t, cli.ExitConflict, cli.ExitCode(err))
	})
}

func TestMoveTask_Integration(t *testing.T) {
	env := clitest.SetupCLITest(t)
	_, cols := env.CreateTestBoard(t, "Work", "Todo", "Done")
	todo := env.CreateTestTasks(t, cols[0], "A", "B", "C")
	done := env.CreateTestTasks(t, cols[1], "X", "Y")

	out, err := env.Run(t, MoveCmd(), "--id", fmt.Sprint(todo[1]), "--column", fmt.Sprint(cols[1]), "--order", "1", "--json")
	require.NoError(t, err)
	task := clitest.ParseJSON(t, out.Stdout)["data"].(map[string]any)["task"].(map[string]any)
	assert.Equal(t, float64(cols[1]), task["column_id"])
	assert.Equal(t, float64(1), task["order"])

	assert.Equal(t, []int{todo[0], todo[2]}, testutil.TaskIDsInOrder(t, env.DB, cols[0]))
	assert.Equal(t, []int{done[0], todo[1], done[1]}, testutil.TaskIDsInOrder(t, env.DB, cols[1]))

	t.Run("past the end clamps", func(t *testing.T) {
		_, err := env.Run(t, MoveCmd(), "--id", fmt.Sprint(todo[0]), "--column", fmt.Sprint(cols[0]), "--order", "50")
		require.NoError(t, err)
		assert.Equal(t, []int{todo[2], todo[0]}, testutil.TaskIDsInOrder(t, env.DB, cols[0]))
	})

	t.Run("negative order", func(t *testing.T) {
		_, err := env.Run(t, MoveCmd(), "--id", fmt.Sprint(todo[0]), "--column", fmt.Sprint(cols[0]), "--order", "-1", "--json")
		require.Error(t, err)
		assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))
	})

	t.Run("other board", func(t *testing.T) {
		_, other := env.CreateTestBoard(t, "Home", "Inbox")
		out, err := env.Run(t, MoveCmd(), "--id", fmt.Sprint(todo[0]), "--column", fmt.Sprint(other[0]), "--json")
		require.Error(t, err)
		assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))
		assert.Equal(t, "CROSS_BOARD_MOVE", errorCode(t, out.Stdout))
	})

	testutil.AssertDenseTasks(t, env.DB, cols[0])
	testutil.AssertDenseTasks(t, env.DB, cols[1])
}

func TestArchiveRestore_Integration(t *testing.T) {
	env := clitest.SetupCLITest(t)
	_, cols := env.CreateTestBoard(t, "Work", "Todo")
	ids := env.CreateTestTasks(t, cols[0], "A", "B", "C")

	out, err := env.Run(t, ArchiveCmd(), "--id", fmt.Sprint(ids[0]))
	require.NoError(t, err)
	assert.Contains(t, out.Stdout, "archived")
	assert.Equal(t, []int{ids[1], ids[2]}, testutil.TaskIDsInOrder(t, env.DB, cols[0]))

	_, err = env.Run(t, ArchiveCmd(), "--id", fmt.Sprint(ids[0]), "--json")
	require.Error(t, err)
	assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))

	out, err = env.Run(t, RestoreCmd(), "--id", fmt.Sprint(ids[0]), "--json")
	require.NoError(t, err)
	task := clitest.ParseJSON(t, out.Stdout)["data"].(map[string]any)["task"].(map[string]any)
	assert.Equal(t, float64(2), task["order"])
	assert.Equal(t, []int{ids[1], ids[2], ids[0]}, testutil.TaskIDsInOrder(t, env.DB, cols[0]))

	_, err = env.Run(t, RestoreCmd(), "--id", fmt.Sprint(ids[0]), "--json")
	require.Error(t, err)
	assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))
}

func TestDeleteTask_Integration(t *testing.T) {
	env := clitest.SetupCLITest(t)
	_, cols := env.CreateTestBoard(t, "Work", "Todo")
	ids := env.CreateTestTasks(t, cols[0], "A", "B", "C")

	out, err := env.Run(t, DeleteCmd(), "--id", fmt.Sprint(ids[0]), "--force")
	require.NoError(t, err)
	assert.Contains(t, out.Stdout, "deleted successfully")
	assert.Equal(t, []int{ids[1], ids[2]}, testutil.TaskIDsInOrder(t, env.DB, cols[0]))
	testutil.AssertDenseTasks(t, env.DB, cols[0])

	bob := testutil.CreateTestUser(t, env.DB, "bob")
	_, err = clitest.ExecuteCLICommand(t, testutil.CallerContext(bob), env.App, DeleteCmd(),
		[]string{"--id", fmt.Sprint(ids[1]), "--json"}, "")
	require.Error(t, err)
	assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))
	assert.Equal(t, []int{ids[1], ids[2]}, testutil.TaskIDsInOrder(t, env.DB, cols[0]))
}
