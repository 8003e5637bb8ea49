package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/chantier/internal/db"
	"github.com/alexanderramin/chantier/internal/domain"
)

// SQLiteScheduleEntryRepo implements ScheduleEntryRepo using a SQLite database.
type SQLiteScheduleEntryRepo struct {
	db db.DBTX
}

// NewSQLiteScheduleEntryRepo creates a new SQLiteScheduleEntryRepo.
func NewSQLiteScheduleEntryRepo(conn db.DBTX) *SQLiteScheduleEntryRepo {
	return &SQLiteScheduleEntryRepo{db: conn}
}

const entryColumns = `id, project_id, step_id, position, trade, trade_color,
	estimated_days, actual_days, start_date, end_date, status, is_manual_date,
	supplier_lead_days, fabrication_lead_days,
	measurement_required, measurement_after_step_id, measurement_notes,
	notes, version, created_at, updated_at`

// UpsertMany inserts new entries and overwrites existing (project_id, step_id)
// rows. An existing row keeps its id; its version is bumped.
func (r *SQLiteScheduleEntryRepo) UpsertMany(ctx context.Context, entries []*domain.ScheduleEntry) error {
	query := `INSERT INTO schedule_entries (` + entryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(project_id, step_id) DO UPDATE SET
			position = excluded.position,
			trade = excluded.trade,
			trade_color = excluded.trade_color,
			estimated_days = excluded.estimated_days,
			actual_days = excluded.actual_days,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			status = excluded.status,
			is_manual_date = excluded.is_manual_date,
			supplier_lead_days = excluded.supplier_lead_days,
			fabrication_lead_days = excluded.fabrication_lead_days,
			measurement_required = excluded.measurement_required,
			measurement_after_step_id = excluded.measurement_after_step_id,
			measurement_notes = excluded.measurement_notes,
			notes = excluded.notes,
			version = schedule_entries.version + 1,
			updated_at = excluded.updated_at`
	for _, e := range entries {
		version := e.Version
		if version < 1 {
			version = 1
		}
		_, err := r.db.ExecContext(ctx, query,
			e.ID,
			e.ProjectID,
			e.StepID,
			e.Position,
			e.Trade,
			e.TradeColor,
			e.EstimatedDays,
			nullableIntToValue(e.ActualDays),
			nullableTimeToString(e.StartDate, dateLayout),
			nullableTimeToString(e.EndDate, dateLayout),
			string(e.Status),
			boolToInt(e.IsManualDate),
			e.SupplierLeadDays,
			e.FabricationLeadDays,
			boolToInt(e.MeasurementRequired),
			e.MeasurementAfterStepID,
			e.MeasurementNotes,
			e.Notes,
			version,
			timestamp(e.CreatedAt),
			timestamp(e.UpdatedAt),
		)
		if err != nil {
			return fmt.Errorf("upserting schedule entry %s: %w", e.StepID, err)
		}
	}
	return nil
}

// Update writes e only if the stored version still equals e.Version.
// On success e.Version is advanced to the stored value.
func (r *SQLiteScheduleEntryRepo) Update(ctx context.Context, e *domain.ScheduleEntry) error {
	query := `UPDATE schedule_entries SET
			position = ?, trade = ?, trade_color = ?,
			estimated_days = ?, actual_days = ?, start_date = ?, end_date = ?,
			status = ?, is_manual_date = ?,
			supplier_lead_days = ?, fabrication_lead_days = ?,
			measurement_required = ?, measurement_after_step_id = ?, measurement_notes = ?,
			notes = ?, version = version + 1, updated_at = ?
		WHERE id = ? AND version = ?`
	res, err := r.db.ExecContext(ctx, query,
		e.Position,
		e.Trade,
		e.TradeColor,
		e.EstimatedDays,
		nullableIntToValue(e.ActualDays),
		nullableTimeToString(e.StartDate, dateLayout),
		nullableTimeToString(e.EndDate, dateLayout),
		string(e.Status),
		boolToInt(e.IsManualDate),
		e.SupplierLeadDays,
		e.FabricationLeadDays,
		boolToInt(e.MeasurementRequired),
		e.MeasurementAfterStepID,
		e.MeasurementNotes,
		e.Notes,
		timestamp(e.UpdatedAt),
		e.ID,
		e.Version,
	)
	if err != nil {
		return fmt.Errorf("updating schedule entry %s: %w", e.StepID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		var exists int
		err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schedule_entries WHERE id = ?`, e.ID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("checking schedule entry %s: %w", e.StepID, err)
		}
		if exists == 0 {
			return fmt.Errorf("schedule entry %s: %w", e.StepID, ErrNotFound)
		}
		return fmt.Errorf("schedule entry %s at version %d: %w", e.StepID, e.Version, ErrStaleWrite)
	}
	e.Version++
	return nil
}

func (r *SQLiteScheduleEntryRepo) GetByID(ctx context.Context, id string) (*domain.ScheduleEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM schedule_entries WHERE id = ?`
	return scanEntry(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteScheduleEntryRepo) GetByStep(ctx context.Context, projectID, stepID string) (*domain.ScheduleEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM schedule_entries WHERE project_id = ? AND step_id = ?`
	return scanEntry(r.db.QueryRowContext(ctx, query, projectID, stepID))
}

// ListByProject returns entries in catalog order. Unpositioned rows sort last.
func (r *SQLiteScheduleEntryRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.ScheduleEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM schedule_entries
		WHERE project_id = ?
		ORDER BY CASE WHEN position = 0 THEN 1 ELSE 0 END, position, step_id`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing schedule entries: %w", err)
	}
	defer rows.Close()

	var entries []*domain.ScheduleEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating schedule entries: %w", err)
	}
	return entries, nil
}

// Delete removes one entry. Its alerts go with it through ON DELETE CASCADE.
func (r *SQLiteScheduleEntryRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM schedule_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting schedule entry: %w", err)
	}
	return requireAffected(res, "schedule entry "+id)
}

func scanEntry(row scanner) (*domain.ScheduleEntry, error) {
	var e domain.ScheduleEntry
	var status, createdAtStr, updatedAtStr string
	var actualDays sql.NullInt64
	var startStr, endStr sql.NullString
	var manual, measurement int

	err := row.Scan(
		&e.ID, &e.ProjectID, &e.StepID, &e.Position, &e.Trade, &e.TradeColor,
		&e.EstimatedDays, &actualDays, &startStr, &endStr, &status, &manual,
		&e.SupplierLeadDays, &e.FabricationLeadDays,
		&measurement, &e.MeasurementAfterStepID, &e.MeasurementNotes,
		&e.Notes, &e.Version, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("schedule entry: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning schedule entry: %w", err)
	}

	e.Status = domain.EntryStatus(status)
	e.ActualDays = intPtrFromNull(actualDays)
	e.StartDate = parseNullableTime(startStr, dateLayout)
	e.EndDate = parseNullableTime(endStr, dateLayout)
	e.IsManualDate = intToBool(manual)
	e.MeasurementRequired = intToBool(measurement)

	var parseErr error
	e.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	e.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &e, nil
}
