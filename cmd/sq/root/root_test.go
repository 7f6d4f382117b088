package root

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempDB(t *testing.T) {
	t.Helper()
	t.Setenv("SIDEQUEST_DB_PATH", filepath.Join(t.TempDir(), "sq.db"))
	t.Setenv("SIDEQUEST_LOG_LEVEL", "error")
	t.Setenv("SIDEQUEST_LOG_FORMAT", "text")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	require.NoError(t, err, "sq %v", args)
	return out
}

func taskIDByTitle(t *testing.T, title string) string {
	t.Helper()
	s, err := openService(context.Background(), io.Discard)
	require.NoError(t, err)
	defer s.close()
	for _, task := range s.svc.Tasks() {
		if task.Title == title {
			return task.ID
		}
	}
	t.Fatalf("task %q not found", title)
	return ""
}

func TestArgumentValidation(t *testing.T) {
	useTempDB(t)

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"add"}, "title is required"},
		{[]string{"sub", "abc"}, "title is required"},
		{[]string{"sub"}, "parent_id is required"},
		{[]string{"do"}, "id is required"},
		{[]string{"do", "a", "b"}, "too many arguments"},
		{[]string{"rm"}, "id is required"},
		{[]string{"add", "x", "--size", "huge"}, "invalid size"},
		{[]string{"add", "x", "-p", "7"}, "invalid priority"},
		{[]string{"add", "x", "--due", "tomorrow"}, "invalid due date"},
		{[]string{"list", "-f", "someday"}, "invalid filter"},
		{[]string{"edit", "abc"}, "nothing to change"},
		{[]string{"history", "-n", "0"}, "limit must be positive"},
		{[]string{"reset"}, "refusing to reset without --yes"},
	}
	for _, tt := range tests {
		_, err := run(t, tt.args...)
		require.Error(t, err, "sq %v", tt.args)
		assert.Contains(t, err.Error(), tt.want, "sq %v", tt.args)
	}
}

func TestAddListAndComplete(t *testing.T) {
	useTempDB(t)

	out := mustRun(t, "add", "Write report", "-s", "small", "-p", "3", "-t", "learning")
	assert.Contains(t, out, "Added")
	assert.Contains(t, out, "Write report")
	assert.Contains(t, out, "(21 pts)")

	id := taskIDByTitle(t, "Write report")

	out = mustRun(t, "list")
	assert.Contains(t, out, "Write report")

	out = mustRun(t, "do", id[:8])
	assert.Contains(t, out, "Completed")
	assert.Contains(t, out, "INT exp")

	out = mustRun(t, "list", "-f", "completed")
	assert.Contains(t, out, "Write report")
	out = mustRun(t, "list", "-f", "active")
	assert.Contains(t, out, "(empty)")

	out = mustRun(t, "status")
	assert.Contains(t, out, "Player Status")
	assert.Contains(t, out, "First Task")

	out = mustRun(t, "history", "-n", "5")
	assert.Contains(t, out, "complete")
	assert.Contains(t, out, "Write report")
}

func TestProjectCommands(t *testing.T) {
	useTempDB(t)

	mustRun(t, "add", "Renovate", "--size", "large")
	proj := taskIDByTitle(t, "Renovate")

	mustRun(t, "sub", proj, "Paint walls")
	mustRun(t, "sub", proj, "Fix door")
	out := mustRun(t, "sub", proj, "New floor")
	assert.Contains(t, out, "Decomposition bonus")

	out = mustRun(t, "list", "-f", "projects")
	assert.Contains(t, out, "0/3")
	assert.Contains(t, out, "Paint walls")

	_, err := run(t, "do", proj)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unfinished subtasks")

	out = mustRun(t, "demote", proj)
	assert.Contains(t, out, "Demoted")
	out = mustRun(t, "promote", proj)
	assert.Contains(t, out, "Promoted")

	mustRun(t, "edit", proj, "--title", "Renovate kitchen", "--clear-due")
	assert.NotEmpty(t, taskIDByTitle(t, "Renovate kitchen"))

	out = mustRun(t, "rm", taskIDByTitle(t, "Fix door"), "--abandon")
	assert.Contains(t, out, "-8 MP")
	out = mustRun(t, "rm", proj)
	assert.Contains(t, out, "Deleted")

	out = mustRun(t, "sweep")
	assert.Contains(t, out, "Nothing overdue.")

	out = mustRun(t, "reset", "--yes")
	assert.Contains(t, out, "level 1")
}
