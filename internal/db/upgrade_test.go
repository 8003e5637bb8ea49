package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMigrate_UpgradePath_LegacyEntries simulates a database created before
// schedule entries carried a version counter and a catalog position.
// Verifies that rows survive, new columns get defaults and positions are
// backfilled in start-date order.
func TestMigrate_UpgradePath_LegacyEntries(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`PRAGMA foreign_keys = ON`)
	require.NoError(t, err)

	legacyStatements := []string{
		`CREATE TABLE projects (
			id                TEXT PRIMARY KEY,
			short_id          TEXT NOT NULL DEFAULT '',
			name              TEXT NOT NULL,
			square_footage    REAL,
			current_stage     TEXT NOT NULL DEFAULT '',
			target_start_date TEXT,
			created_at        TEXT NOT NULL,
			updated_at        TEXT NOT NULL
		)`,
		`CREATE TABLE schedule_entries (
			id                        TEXT PRIMARY KEY,
			project_id                TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
			step_id                   TEXT NOT NULL,
			trade                     TEXT NOT NULL DEFAULT '',
			trade_color               TEXT NOT NULL DEFAULT '',
			estimated_days            INTEGER NOT NULL,
			actual_days               INTEGER,
			start_date                TEXT,
			end_date                  TEXT,
			status                    TEXT NOT NULL DEFAULT 'pending',
			is_manual_date            INTEGER NOT NULL DEFAULT 0,
			supplier_lead_days        INTEGER NOT NULL DEFAULT 0,
			fabrication_lead_days     INTEGER NOT NULL DEFAULT 0,
			measurement_required      INTEGER NOT NULL DEFAULT 0,
			measurement_after_step_id TEXT NOT NULL DEFAULT '',
			measurement_notes         TEXT NOT NULL DEFAULT '',
			notes                     TEXT NOT NULL DEFAULT '',
			created_at                TEXT NOT NULL,
			updated_at                TEXT NOT NULL,
			UNIQUE(project_id, step_id)
		)`,
		`INSERT INTO projects (id, name, created_at, updated_at) VALUES ('p1', 'Maison', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`,
		`INSERT INTO schedule_entries (id, project_id, step_id, estimated_days, start_date, status, created_at, updated_at)
			VALUES ('e-late', 'p1', 'gypse', 8, '2025-08-27', 'scheduled', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`,
		`INSERT INTO schedule_entries (id, project_id, step_id, estimated_days, start_date, status, created_at, updated_at)
			VALUES ('e-early', 'p1', 'excavation', 3, '2025-06-02', 'scheduled', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`,
		`INSERT INTO schedule_entries (id, project_id, step_id, estimated_days, status, created_at, updated_at)
			VALUES ('e-pending', 'p1', 'toiture', 4, 'pending', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`,
	}
	for _, stmt := range legacyStatements {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	require.NoError(t, Migrate(db))

	positions := map[string]int{}
	rows, err := db.Query(`SELECT id, position, version FROM schedule_entries`)
	require.NoError(t, err)
	defer rows.Close()
	for rows.Next() {
		var id string
		var pos, version int
		require.NoError(t, rows.Scan(&id, &pos, &version))
		positions[id] = pos
		assert.Equal(t, 1, version, "entry %s", id)
	}
	require.NoError(t, rows.Err())

	assert.Equal(t, map[string]int{"e-early": 1, "e-late": 2, "e-pending": 3}, positions)

	// Re-running is a no-op.
	require.NoError(t, Migrate(db))
}
