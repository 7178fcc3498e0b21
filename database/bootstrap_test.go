package database_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sparc/database"
	"sparc/entities"
	"sparc/pkg/task"
)

func TestMigrateRewritesLegacyTaskCodes(t *testing.T) {
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "sparc.db"))
	require.NoError(t, err)

	rows := []entities.TimeEntry{
		{ID: "a", UserID: "u1", Task: "paf", Minutes: 10, OccurredOn: entities.DateOf(2026, 10, 1)},
		{ID: "b", UserID: "u1", Task: "Administrative – Emails", Minutes: 5, OccurredOn: entities.DateOf(2026, 10, 1)},
		{ID: "c", UserID: "u1", Task: task.Meetings, Minutes: 30, OccurredOn: entities.DateOf(2026, 10, 1)},
		{ID: "d", UserID: "u1", Task: "mystery", Minutes: 30, OccurredOn: entities.DateOf(2026, 10, 1)},
	}
	require.NoError(t, db.Create(&rows).Error)
	require.NoError(t, db.Delete(&entities.TimeEntry{}, "id = ?", "b").Error)

	require.NoError(t, database.Migrate(db))

	var got []entities.TimeEntry
	require.NoError(t, db.Unscoped().Order("id").Find(&got).Error)
	require.Len(t, got, 4)
	assert.Equal(t, task.ProspectiveAudit, got[0].Task)
	assert.Equal(t, task.Emails, got[1].Task)
	assert.Equal(t, task.Meetings, got[2].Task)
	assert.Equal(t, "mystery", got[3].Task, "unknown values are left for manual review")
}
