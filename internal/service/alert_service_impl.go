package service

import (
	"context"
	"time"

	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/alexanderramin/chantier/internal/repository"
)

type alertService struct {
	projects repository.ProjectRepo
	alerts   repository.AlertRepo
	observer UseCaseObserver
}

func NewAlertService(projects repository.ProjectRepo, alerts repository.AlertRepo, observers ...UseCaseObserver) AlertService {
	return &alertService{projects: projects, alerts: alerts, observer: useCaseObserverOrNoop(observers)}
}

func (s *alertService) ListAlerts(ctx context.Context, projectRef string, includeDismissed bool) ([]domain.ScheduleAlert, error) {
	p, err := resolveProject(ctx, s.projects, projectRef)
	if err != nil {
		return nil, classify("listing alerts", err)
	}
	alerts, err := s.alerts.ListByProject(ctx, p.ID, includeDismissed)
	if err != nil {
		return nil, classify("listing alerts", err)
	}
	return alerts, nil
}

// Dismiss hides an alert. Dismissed alerts survive every later regeneration.
func (s *alertService) Dismiss(ctx context.Context, alertID string) (err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, "alert-dismiss", startedAt, map[string]any{"alert_id": alertID}, &err)
	return classify("dismissing alert", s.alerts.Dismiss(ctx, alertID))
}
