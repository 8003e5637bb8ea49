package app

import (
	"context"

	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/alexanderramin/chantier/internal/scheduler"
)

type GenerateScheduleUseCase interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

type RecalculateUseCase interface {
	Complete(ctx context.Context, req CompleteRequest) (*RecalcResponse, error)
	Uncomplete(ctx context.Context, req StepRequest) (*RecalcResponse, error)
	EditDates(ctx context.Context, req EditRequest) (*RecalcResponse, error)
	Lock(ctx context.Context, req StepRequest) (*RecalcResponse, error)
	Unlock(ctx context.Context, req StepRequest) (*RecalcResponse, error)
	Reset(ctx context.Context, req StepRequest) (*RecalcResponse, error)
}

type EstimateUseCase interface {
	EstimateDuration(ctx context.Context, req EstimateRequest) (*scheduler.DurationEstimate, error)
}

type AlertUseCase interface {
	ListAlerts(ctx context.Context, projectRef string, includeDismissed bool) ([]domain.ScheduleAlert, error)
	Dismiss(ctx context.Context, alertID string) error
}
