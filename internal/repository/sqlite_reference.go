package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/chantier/internal/db"
	"github.com/alexanderramin/chantier/internal/domain"
)

// SQLiteReferenceDurationRepo implements ReferenceDurationRepo using a SQLite database.
type SQLiteReferenceDurationRepo struct {
	db db.DBTX
}

// NewSQLiteReferenceDurationRepo creates a new SQLiteReferenceDurationRepo.
func NewSQLiteReferenceDurationRepo(conn db.DBTX) *SQLiteReferenceDurationRepo {
	return &SQLiteReferenceDurationRepo{db: conn}
}

func (r *SQLiteReferenceDurationRepo) List(ctx context.Context) ([]domain.ReferenceDuration, error) {
	query := `SELECT step_id, base_days, base_square_footage, min_days, max_days, scaling_factor, notes
		FROM reference_durations ORDER BY step_id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing reference durations: %w", err)
	}
	defer rows.Close()

	var refs []domain.ReferenceDuration
	for rows.Next() {
		var ref domain.ReferenceDuration
		var baseSqft, scaling sql.NullFloat64
		var minDays, maxDays sql.NullInt64
		if err := rows.Scan(&ref.StepID, &ref.BaseDays, &baseSqft, &minDays, &maxDays, &scaling, &ref.Notes); err != nil {
			return nil, fmt.Errorf("scanning reference duration: %w", err)
		}
		ref.BaseSquareFootage = floatPtrFromNull(baseSqft)
		ref.MinDays = intPtrFromNull(minDays)
		ref.MaxDays = intPtrFromNull(maxDays)
		ref.ScalingFactor = floatPtrFromNull(scaling)
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reference durations: %w", err)
	}
	return refs, nil
}

func (r *SQLiteReferenceDurationRepo) Upsert(ctx context.Context, ref *domain.ReferenceDuration) error {
	query := `INSERT OR REPLACE INTO reference_durations
		(step_id, base_days, base_square_footage, min_days, max_days, scaling_factor, notes, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		ref.StepID,
		ref.BaseDays,
		nullableFloatToValue(ref.BaseSquareFootage),
		nullableIntToValue(ref.MinDays),
		nullableIntToValue(ref.MaxDays),
		nullableFloatToValue(ref.ScalingFactor),
		ref.Notes,
		nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("upserting reference duration %s: %w", ref.StepID, err)
	}
	return nil
}

func (r *SQLiteReferenceDurationRepo) Delete(ctx context.Context, stepID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reference_durations WHERE step_id = ?`, stepID)
	if err != nil {
		return fmt.Errorf("deleting reference duration: %w", err)
	}
	return requireAffected(res, "reference duration "+stepID)
}
