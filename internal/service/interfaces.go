package service

import (
	"context"
	"time"

	"github.com/alexanderramin/chantier/internal/app"
	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/alexanderramin/chantier/internal/scheduler"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	// Get resolves a project by ID or short ID.
	Get(ctx context.Context, ref string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	// Delete removes the project with its entries and alerts. Without force
	// a project that still has a schedule is refused.
	Delete(ctx context.Context, ref string, force bool) error
}

type ScheduleService interface {
	app.GenerateScheduleUseCase
	app.RecalculateUseCase
	List(ctx context.Context, projectRef string) ([]*domain.ScheduleEntry, error)
	Conflicts(ctx context.Context, projectRef string) ([]scheduler.Conflict, []scheduler.Warning, error)
	AddEntry(ctx context.Context, req app.StepRequest) (*domain.ScheduleEntry, error)
	RemoveEntry(ctx context.Context, req app.StepRequest) error
}

type AlertService interface {
	app.AlertUseCase
}

type EstimateService interface {
	app.EstimateUseCase
	PreparationStart(target time.Time, stage string) (time.Time, error)
	EndDate(start time.Time, businessDays int) (time.Time, error)
}

type ReferenceService interface {
	List(ctx context.Context) ([]domain.ReferenceDuration, error)
	Set(ctx context.Context, ref *domain.ReferenceDuration) error
	Delete(ctx context.Context, stepID string) error
	// Import loads a YAML or JSON reference file and upserts every row in
	// one transaction. It returns the number of rows written.
	Import(ctx context.Context, path string) (int, error)
}
