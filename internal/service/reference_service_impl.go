package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/chantier/internal/catalog"
	"github.com/alexanderramin/chantier/internal/db"
	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/alexanderramin/chantier/internal/repository"
)

type referenceService struct {
	cat        *catalog.Catalog
	references repository.ReferenceDurationRepo
	uow        db.UnitOfWork
	observer   UseCaseObserver
}

func NewReferenceService(cat *catalog.Catalog, references repository.ReferenceDurationRepo, uow db.UnitOfWork, observers ...UseCaseObserver) ReferenceService {
	return &referenceService{
		cat:        cat,
		references: references,
		uow:        uow,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *referenceService) List(ctx context.Context) ([]domain.ReferenceDuration, error) {
	refs, err := s.references.List(ctx)
	return refs, classify("listing reference durations", err)
}

func (s *referenceService) Set(ctx context.Context, ref *domain.ReferenceDuration) (err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, "reference-set", startedAt, map[string]any{"step": ref.StepID}, &err)

	if _, err := s.cat.Lookup(ref.StepID); err != nil {
		return classify("setting reference duration", err)
	}
	if err := ref.Validate(); err != nil {
		return invalidInput("%v", err)
	}
	return classify("setting reference duration", s.references.Upsert(ctx, ref))
}

func (s *referenceService) Delete(ctx context.Context, stepID string) error {
	return classify("deleting reference duration", s.references.Delete(ctx, stepID))
}

func (s *referenceService) Import(ctx context.Context, path string) (n int, err error) {
	startedAt := time.Now()
	fields := map[string]any{"path": path}
	defer observe(ctx, s.observer, "reference-import", startedAt, fields, &err)

	refs, err := s.cat.LoadReferences(path)
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownStep) {
			return 0, classify("importing reference durations", err)
		}
		return 0, invalidInput("importing reference durations: %v", err)
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteReferenceDurationRepo(tx)
		for i := range refs {
			if err := repo.Upsert(ctx, &refs[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, classify("importing reference durations", err)
	}
	fields["rows"] = len(refs)
	return len(refs), nil
}
