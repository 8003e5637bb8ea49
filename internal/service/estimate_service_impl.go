package service

import (
	"context"
	"time"

	"github.com/alexanderramin/chantier/internal/app"
	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/alexanderramin/chantier/internal/repository"
	"github.com/alexanderramin/chantier/internal/scheduler"
	"golang.org/x/sync/errgroup"
)

type estimateService struct {
	engine     *scheduler.Engine
	projects   repository.ProjectRepo
	references repository.ReferenceDurationRepo
}

func NewEstimateService(engine *scheduler.Engine, projects repository.ProjectRepo, references repository.ReferenceDurationRepo) EstimateService {
	return &estimateService{engine: engine, projects: projects, references: references}
}

// EstimateDuration sums step durations from the requested stage. With a
// project the durations are prorated by its size; the project and the
// reference table are read concurrently.
func (s *estimateService) EstimateDuration(ctx context.Context, req app.EstimateRequest) (*scheduler.DurationEstimate, error) {
	stage := ""
	if req.Stage != nil {
		stage = *req.Stage
	}
	if req.ProjectRef == "" {
		est, err := s.engine.TotalDuration(stage)
		if err != nil {
			return nil, classify("estimating duration", err)
		}
		return &est, nil
	}

	var project *domain.Project
	var refs []domain.ReferenceDuration
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := resolveProject(gctx, s.projects, req.ProjectRef)
		project = p
		return err
	})
	g.Go(func() error {
		r, err := s.references.List(gctx)
		refs = r
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, classify("estimating duration", err)
	}

	if req.Stage == nil {
		stage = project.CurrentStage
	}
	est, err := s.engine.TotalDurationWithProrata(stage, project.SquareFootage, refs)
	if err != nil {
		return nil, classify("estimating duration", err)
	}
	return &est, nil
}

func (s *estimateService) PreparationStart(target time.Time, stage string) (time.Time, error) {
	d, err := s.engine.PreparationStartDate(target, stage)
	return d, classify("preparation start", err)
}

func (s *estimateService) EndDate(start time.Time, businessDays int) (time.Time, error) {
	if businessDays < 0 {
		return time.Time{}, invalidInput("business days must be >= 0, got %d", businessDays)
	}
	return scheduler.CalculateEndDate(start, businessDays), nil
}
