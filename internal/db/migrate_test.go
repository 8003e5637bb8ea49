package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// A second run must be a no-op.
	err := Migrate(db)
	require.NoError(t, err)

	// Third time for good measure.
	err = Migrate(db)
	require.NoError(t, err)
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"projects", "schedule_entries", "schedule_alerts", "reference_durations"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_projects_short_id",
		"idx_schedule_entries_project",
		"idx_schedule_alerts_entry",
		"idx_schedule_alerts_project",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	err := db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk)
	require.NoError(t, err)
	assert.Equal(t, 1, fk, "foreign keys should be enabled")
}

func TestMigrate_WALModeRequested(t *testing.T) {
	// In-memory SQLite uses "memory" journal mode; WAL only applies to file DBs.
	db := openTestDB(t)

	var mode string
	err := db.QueryRow(`PRAGMA journal_mode`).Scan(&mode)
	require.NoError(t, err)
	assert.Equal(t, "memory", mode)
}

func TestOpenDB_FileUsesWAL(t *testing.T) {
	path := t.TempDir() + "/nested/chantier.db"
	db, err := OpenDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func insertProject(t *testing.T, db *sql.DB, id string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO projects (id, short_id, name, created_at, updated_at)
		VALUES (?, ?, 'Maison', '2025-05-01T00:00:00Z', '2025-05-01T00:00:00Z')`, id, "")
	require.NoError(t, err)
}

func TestMigrate_ScheduleEntryConstraints(t *testing.T) {
	db := openTestDB(t)
	insertProject(t, db, "p1")

	insert := func(id, step, status string, estimated int, actual any) error {
		_, err := db.Exec(`INSERT INTO schedule_entries (id, project_id, step_id, estimated_days, actual_days, status, created_at, updated_at)
			VALUES (?, 'p1', ?, ?, ?, ?, '2025-05-01T00:00:00Z', '2025-05-01T00:00:00Z')`,
			id, step, estimated, actual, status)
		return err
	}

	require.NoError(t, insert("e1", "gypse", "scheduled", 8, nil))
	assert.Error(t, insert("e2", "gypse", "scheduled", 8, nil), "(project, step) is unique")
	assert.Error(t, insert("e3", "peinture", "done", 5, nil), "unknown status")
	assert.Error(t, insert("e4", "armoires", "scheduled", 0, nil), "zero duration")
	assert.Error(t, insert("e5", "comptoirs", "completed", 1, nil), "completed needs actual days")
	assert.NoError(t, insert("e6", "comptoirs", "completed", 1, 2))
}

func TestMigrate_CascadeDeletes(t *testing.T) {
	db := openTestDB(t)
	insertProject(t, db, "p1")

	_, err := db.Exec(`INSERT INTO schedule_entries (id, project_id, step_id, estimated_days, created_at, updated_at)
		VALUES ('e1', 'p1', 'gypse', 8, '2025-05-01T00:00:00Z', '2025-05-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO schedule_alerts (id, project_id, entry_id, type, trigger_date, created_at)
		VALUES ('a1', 'p1', 'e1', 'supplier_call', '2025-06-01', '2025-05-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM schedule_entries WHERE id = 'e1'`)
	require.NoError(t, err)
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM schedule_alerts`).Scan(&n))
	assert.Equal(t, 0, n, "alerts follow their entry")

	_, err = db.Exec(`INSERT INTO schedule_entries (id, project_id, step_id, estimated_days, created_at, updated_at)
		VALUES ('e2', 'p1', 'gypse', 8, '2025-05-01T00:00:00Z', '2025-05-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`DELETE FROM projects WHERE id = 'p1'`)
	require.NoError(t, err)
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM schedule_entries`).Scan(&n))
	assert.Equal(t, 0, n, "entries follow their project")
}
