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

// SQLiteAlertRepo implements AlertRepo using a SQLite database.
type SQLiteAlertRepo struct {
	db db.DBTX
}

// NewSQLiteAlertRepo creates a new SQLiteAlertRepo.
func NewSQLiteAlertRepo(conn db.DBTX) *SQLiteAlertRepo {
	return &SQLiteAlertRepo{db: conn}
}

const alertColumns = `id, project_id, entry_id, type, trigger_date, message, dismissed, created_at`

func (r *SQLiteAlertRepo) InsertMany(ctx context.Context, alerts []domain.ScheduleAlert) error {
	query := `INSERT INTO schedule_alerts (` + alertColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	for _, a := range alerts {
		_, err := r.db.ExecContext(ctx, query,
			a.ID,
			a.ProjectID,
			a.EntryID,
			string(a.Type),
			a.TriggerDate.Format(dateLayout),
			a.Message,
			boolToInt(a.Dismissed),
			timestamp(a.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("inserting alert: %w", err)
		}
	}
	return nil
}

func (r *SQLiteAlertRepo) GetByID(ctx context.Context, id string) (*domain.ScheduleAlert, error) {
	query := `SELECT ` + alertColumns + ` FROM schedule_alerts WHERE id = ?`
	a, err := scanAlert(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListByProject returns alerts ordered by trigger date. Dismissed alerts are
// only included when asked for.
func (r *SQLiteAlertRepo) ListByProject(ctx context.Context, projectID string, includeDismissed bool) ([]domain.ScheduleAlert, error) {
	query := `SELECT ` + alertColumns + ` FROM schedule_alerts WHERE project_id = ?`
	if !includeDismissed {
		query += ` AND dismissed = 0`
	}
	query += ` ORDER BY trigger_date, type, id`
	return r.list(ctx, query, projectID)
}

func (r *SQLiteAlertRepo) ListByEntries(ctx context.Context, entryIDs []string) ([]domain.ScheduleAlert, error) {
	if len(entryIDs) == 0 {
		return nil, nil
	}
	args := make([]any, len(entryIDs))
	for i, id := range entryIDs {
		args[i] = id
	}
	query := `SELECT ` + alertColumns + ` FROM schedule_alerts
		WHERE entry_id IN (` + placeholders(len(entryIDs)) + `)
		ORDER BY trigger_date, type, id`
	return r.list(ctx, query, args...)
}

func (r *SQLiteAlertRepo) Dismiss(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE schedule_alerts SET dismissed = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("dismissing alert: %w", err)
	}
	return requireAffected(res, "alert "+id)
}

func (r *SQLiteAlertRepo) DeleteMany(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	query := `DELETE FROM schedule_alerts WHERE id IN (` + placeholders(len(ids)) + `)`
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("deleting alerts: %w", err)
	}
	return nil
}

func (r *SQLiteAlertRepo) list(ctx context.Context, query string, args ...any) ([]domain.ScheduleAlert, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing alerts: %w", err)
	}
	defer rows.Close()

	var alerts []domain.ScheduleAlert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating alerts: %w", err)
	}
	return alerts, nil
}

func scanAlert(row scanner) (domain.ScheduleAlert, error) {
	var a domain.ScheduleAlert
	var typ, triggerStr, createdAtStr string
	var dismissed int

	err := row.Scan(&a.ID, &a.ProjectID, &a.EntryID, &typ, &triggerStr, &a.Message, &dismissed, &createdAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return a, fmt.Errorf("alert: %w", ErrNotFound)
		}
		return a, fmt.Errorf("scanning alert: %w", err)
	}
	a.Type = domain.AlertType(typ)
	a.Dismissed = intToBool(dismissed)

	var parseErr error
	a.TriggerDate, parseErr = time.Parse(dateLayout, triggerStr)
	if parseErr != nil {
		return a, fmt.Errorf("parsing trigger_date: %w", parseErr)
	}
	a.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return a, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	return a, nil
}
