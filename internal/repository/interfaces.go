package repository

import (
	"context"

	"github.com/alexanderramin/chantier/internal/domain"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type ScheduleEntryRepo interface {
	// UpsertMany writes entries keyed by (project_id, step_id). Re-running
	// with the same entries never creates duplicates.
	UpsertMany(ctx context.Context, entries []*domain.ScheduleEntry) error
	// Update writes one entry if its version is unchanged since it was read.
	Update(ctx context.Context, e *domain.ScheduleEntry) error
	GetByID(ctx context.Context, id string) (*domain.ScheduleEntry, error)
	GetByStep(ctx context.Context, projectID, stepID string) (*domain.ScheduleEntry, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.ScheduleEntry, error)
	Delete(ctx context.Context, id string) error
}

type AlertRepo interface {
	InsertMany(ctx context.Context, alerts []domain.ScheduleAlert) error
	GetByID(ctx context.Context, id string) (*domain.ScheduleAlert, error)
	ListByProject(ctx context.Context, projectID string, includeDismissed bool) ([]domain.ScheduleAlert, error)
	ListByEntries(ctx context.Context, entryIDs []string) ([]domain.ScheduleAlert, error)
	Dismiss(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) error
}

type ReferenceDurationRepo interface {
	List(ctx context.Context) ([]domain.ReferenceDuration, error)
	Upsert(ctx context.Context, r *domain.ReferenceDuration) error
	Delete(ctx context.Context, stepID string) error
}
