package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillEntryPositions(db); err != nil {
		return fmt.Errorf("backfilling entry positions: %w", err)
	}
	return nil
}

// migrateBackfillEntryPositions gives entries written before the position
// column existed a stable order: by start date, then creation time.
func migrateBackfillEntryPositions(db *sql.DB) error {
	ctx := context.Background()

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schedule_entries WHERE position = 0`).Scan(&count); err != nil {
		return fmt.Errorf("checking schedule_entries position: %w", err)
	}
	if count == 0 {
		return nil // nothing to backfill
	}

	query := `UPDATE schedule_entries
		SET position = (
			SELECT COUNT(*) FROM schedule_entries AS o
			WHERE o.project_id = schedule_entries.project_id
			  AND (COALESCE(o.start_date, '9999-12-31'), o.created_at, o.id)
			   <= (COALESCE(schedule_entries.start_date, '9999-12-31'), schedule_entries.created_at, schedule_entries.id)
		)
		WHERE position = 0`
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("updating positions: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id                TEXT PRIMARY KEY,
		short_id          TEXT NOT NULL DEFAULT '',
		name              TEXT NOT NULL,
		square_footage    REAL CHECK(square_footage IS NULL OR square_footage > 0),
		current_stage     TEXT NOT NULL DEFAULT '',
		target_start_date TEXT,
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_projects_short_id ON projects(short_id) WHERE short_id != ''`,

	`CREATE TABLE IF NOT EXISTS schedule_entries (
		id                        TEXT PRIMARY KEY,
		project_id                TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		step_id                   TEXT NOT NULL,
		position                  INTEGER NOT NULL DEFAULT 0,
		trade                     TEXT NOT NULL DEFAULT '',
		trade_color               TEXT NOT NULL DEFAULT '',
		estimated_days            INTEGER NOT NULL CHECK(estimated_days >= 1),
		actual_days               INTEGER CHECK(actual_days IS NULL OR actual_days >= 1),
		start_date                TEXT,
		end_date                  TEXT,
		status                    TEXT NOT NULL DEFAULT 'pending'
		                          CHECK(status IN ('pending','scheduled','in_progress','completed')),
		is_manual_date            INTEGER NOT NULL DEFAULT 0,
		supplier_lead_days        INTEGER NOT NULL DEFAULT 0 CHECK(supplier_lead_days >= 0),
		fabrication_lead_days     INTEGER NOT NULL DEFAULT 0 CHECK(fabrication_lead_days >= 0),
		measurement_required      INTEGER NOT NULL DEFAULT 0,
		measurement_after_step_id TEXT NOT NULL DEFAULT '',
		measurement_notes         TEXT NOT NULL DEFAULT '',
		notes                     TEXT NOT NULL DEFAULT '',
		version                   INTEGER NOT NULL DEFAULT 1,
		created_at                TEXT NOT NULL,
		updated_at                TEXT NOT NULL,
		UNIQUE(project_id, step_id),
		CHECK(status != 'completed' OR actual_days IS NOT NULL)
	)`,

	// Columns added after the first release. Re-runs hit "duplicate column name".
	`ALTER TABLE schedule_entries ADD COLUMN version INTEGER NOT NULL DEFAULT 1`,
	`ALTER TABLE schedule_entries ADD COLUMN position INTEGER NOT NULL DEFAULT 0`,

	`CREATE INDEX IF NOT EXISTS idx_schedule_entries_project ON schedule_entries(project_id, position)`,

	`CREATE TABLE IF NOT EXISTS schedule_alerts (
		id           TEXT PRIMARY KEY,
		project_id   TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		entry_id     TEXT NOT NULL REFERENCES schedule_entries(id) ON DELETE CASCADE,
		type         TEXT NOT NULL
		             CHECK(type IN ('supplier_call','fabrication_start','contact_subcontractor')),
		trigger_date TEXT NOT NULL,
		message      TEXT NOT NULL DEFAULT '',
		dismissed    INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_schedule_alerts_entry ON schedule_alerts(entry_id)`,
	`CREATE INDEX IF NOT EXISTS idx_schedule_alerts_project ON schedule_alerts(project_id, trigger_date)`,

	`CREATE TABLE IF NOT EXISTS reference_durations (
		step_id             TEXT PRIMARY KEY,
		base_days           INTEGER NOT NULL CHECK(base_days >= 1),
		base_square_footage REAL CHECK(base_square_footage IS NULL OR base_square_footage > 0),
		min_days            INTEGER CHECK(min_days IS NULL OR min_days >= 1),
		max_days            INTEGER CHECK(max_days IS NULL OR max_days >= 1),
		scaling_factor      REAL CHECK(scaling_factor IS NULL OR scaling_factor >= 0),
		notes               TEXT NOT NULL DEFAULT '',
		updated_at          TEXT NOT NULL
	)`,
}
