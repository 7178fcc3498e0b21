package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sparc/database"
	"sparc/pkg/entry"
	"sparc/pkg/entry/repositoryImp"
	"sparc/pkg/entry/serviceImp"
	"sparc/pkg/export"
	"sparc/pkg/task"
)

func seedDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cli.db")
	db, err := database.OpenSQLite(path)
	require.NoError(t, err)
	s := serviceImp.New(repositoryImp.New(db))
	for _, in := range []entry.Fields{
		{Task: task.Meetings, Minutes: 30, Comment: "committee"},
		{Task: task.Emails, Minutes: 10, Comment: "inbox"},
		{Task: task.Emails, Minutes: 20, Comment: "committee follow-up"},
	} {
		_, err := s.Create(context.Background(), "u1", entry.Input{Fields: in})
		require.NoError(t, err)
	}
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestExportCommand(t *testing.T) {
	path := seedDB(t)

	out, err := run(t, "export", "--db", path, "--uid", "u1", "--q", "committee", "--sort", "minutes", "--dir", "asc", "-o", "-")
	require.NoError(t, err)
	rows, err := export.ReadCSV(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "20", rows[1][3])
	assert.Equal(t, "30", rows[2][3])

	out, err = run(t, "export", "--db", path, "--uid", "u1", "--task", "email", "-o", "-")
	require.NoError(t, err)
	rows, err = export.ReadCSV(strings.NewReader(out))
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestExportCommandErrors(t *testing.T) {
	path := seedDB(t)

	_, err := run(t, "export", "--db", path, "--uid", "u1", "--task", "juggling")
	assert.ErrorContains(t, err, "unknown task")

	_, err = run(t, "export", "--db", path, "--uid", "u1", "--format", "pdf")
	assert.Error(t, err)

	_, err = run(t, "export", "--db", path)
	assert.Error(t, err)
}

func TestMigrateCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.db")
	_, err := run(t, "migrate", "--db", path)
	require.NoError(t, err)
}
