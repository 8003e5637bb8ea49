package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/alexanderramin/chantier/internal/repository"
	"github.com/google/uuid"
)

// resolveNow returns the request's clock override or the current UTC time.
func resolveNow(now *time.Time) time.Time {
	if now != nil {
		return now.UTC()
	}
	return time.Now().UTC()
}

// resolveProject finds a project by ID, then by short ID.
func resolveProject(ctx context.Context, projects repository.ProjectRepo, ref string) (*domain.Project, error) {
	if ref == "" {
		return nil, invalidInput("project is required")
	}
	p, err := projects.GetByID(ctx, ref)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	p, err = projects.GetByShortID(ctx, ref)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("project %q: %w", ref, repository.ErrNotFound)
		}
		return nil, err
	}
	return p, nil
}

// stampNew gives an unsaved entry its identity.
func stampNew(e *domain.ScheduleEntry, now time.Time) {
	e.ID = uuid.New().String()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.Version = 1
}
