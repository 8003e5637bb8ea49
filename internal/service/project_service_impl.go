package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/chantier/internal/catalog"
	"github.com/alexanderramin/chantier/internal/db"
	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/alexanderramin/chantier/internal/repository"
	"github.com/google/uuid"
)

type projectService struct {
	projects repository.ProjectRepo
	cat      *catalog.Catalog
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewProjectService(projects repository.ProjectRepo, cat *catalog.Catalog, uow db.UnitOfWork, observers ...UseCaseObserver) ProjectService {
	return &projectService{
		projects: projects,
		cat:      cat,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *projectService) validate(p *domain.Project) error {
	if strings.TrimSpace(p.Name) == "" {
		return invalidInput("project name is required")
	}
	if err := p.ValidateShortID(); err != nil {
		return invalidInput("%v", err)
	}
	if err := p.ValidateSquareFootage(); err != nil {
		return invalidInput("%v", err)
	}
	if p.CurrentStage != "" {
		if _, err := s.cat.Lookup(p.CurrentStage); err != nil {
			return classify("current stage", err)
		}
	}
	return nil
}

func (s *projectService) Create(ctx context.Context, p *domain.Project) (err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, "project-create", startedAt, map[string]any{"short_id": p.ShortID}, &err)

	if err := s.validate(p); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	return classify("creating project", s.projects.Create(ctx, p))
}

func (s *projectService) Get(ctx context.Context, ref string) (*domain.Project, error) {
	p, err := resolveProject(ctx, s.projects, ref)
	return p, classify("loading project", err)
}

func (s *projectService) List(ctx context.Context) ([]*domain.Project, error) {
	list, err := s.projects.List(ctx)
	return list, classify("listing projects", err)
}

func (s *projectService) Update(ctx context.Context, p *domain.Project) (err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, "project-update", startedAt, map[string]any{"project_id": p.ID}, &err)

	if err := s.validate(p); err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()
	return classify("updating project", s.projects.Update(ctx, p))
}

func (s *projectService) Delete(ctx context.Context, ref string, force bool) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"project": ref, "force": force}
	defer observe(ctx, s.observer, "project-delete", startedAt, fields, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		projects := repository.NewSQLiteProjectRepo(tx)
		p, err := resolveProject(ctx, projects, ref)
		if err != nil {
			return err
		}
		if !force {
			entries, err := repository.NewSQLiteScheduleEntryRepo(tx).ListByProject(ctx, p.ID)
			if err != nil {
				return err
			}
			if len(entries) > 0 {
				return invalidInput("project %s has %d schedule entries (use --force to delete anyway)",
					p.DisplayID(), len(entries))
			}
		}
		return projects.Delete(ctx, p.ID)
	})
	return classify("deleting project", err)
}
