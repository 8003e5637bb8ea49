package service

import (
	"context"
	"time"

	"github.com/alexanderramin/chantier/internal/app"
	"github.com/alexanderramin/chantier/internal/db"
	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/alexanderramin/chantier/internal/repository"
	"github.com/alexanderramin/chantier/internal/scheduler"
	"github.com/google/uuid"
)

type scheduleService struct {
	engine   *scheduler.Engine
	projects repository.ProjectRepo
	entries  repository.ScheduleEntryRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewScheduleService(
	engine *scheduler.Engine,
	projects repository.ProjectRepo,
	entries repository.ScheduleEntryRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ScheduleService {
	return &scheduleService{
		engine:   engine,
		projects: projects,
		entries:  entries,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

// txRepos are the repositories of one transaction.
type txRepos struct {
	projects   *repository.SQLiteProjectRepo
	entries    *repository.SQLiteScheduleEntryRepo
	alerts     *repository.SQLiteAlertRepo
	references *repository.SQLiteReferenceDurationRepo
}

func newTxRepos(tx db.DBTX) txRepos {
	return txRepos{
		projects:   repository.NewSQLiteProjectRepo(tx),
		entries:    repository.NewSQLiteScheduleEntryRepo(tx),
		alerts:     repository.NewSQLiteAlertRepo(tx),
		references: repository.NewSQLiteReferenceDurationRepo(tx),
	}
}

func (s *scheduleService) Generate(ctx context.Context, req app.GenerateRequest) (resp *app.GenerateResponse, err error) {
	startedAt := time.Now()
	now := resolveNow(req.Now)
	fields := map[string]any{"project": req.ProjectRef}
	defer observe(ctx, s.observer, "schedule-generate", startedAt, fields, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := newTxRepos(tx)
		p, err := resolveProject(ctx, r.projects, req.ProjectRef)
		if err != nil {
			return err
		}

		projectChanged := false
		if req.Stage != nil && *req.Stage != p.CurrentStage {
			p.CurrentStage = *req.Stage
			projectChanged = true
		}
		if req.TargetStart != nil {
			t := *req.TargetStart
			p.TargetStartDate = &t
			projectChanged = true
		}

		existing, err := r.entries.ListByProject(ctx, p.ID)
		if err != nil {
			return err
		}
		refs, err := r.references.List(ctx)
		if err != nil {
			return err
		}

		res, err := s.engine.Generate(scheduler.GenerateInput{
			ProjectID:     p.ID,
			SquareFootage: p.SquareFootage,
			CurrentStage:  p.CurrentStage,
			TargetStart:   p.TargetStartDate,
			Today:         now,
			Existing:      existing,
			References:    refs,
		})
		if err != nil {
			return err
		}

		for _, e := range res.Entries {
			if e.ID == "" {
				stampNew(e, now)
			}
			e.UpdatedAt = now
		}
		if err := r.entries.UpsertMany(ctx, res.Entries); err != nil {
			return err
		}
		if projectChanged {
			p.UpdatedAt = now
			if err := r.projects.Update(ctx, p); err != nil {
				return err
			}
		}

		// Re-read so alerts reference the ids and versions actually stored.
		stored, err := r.entries.ListByProject(ctx, p.ID)
		if err != nil {
			return err
		}
		created, removed, err := s.syncAlerts(ctx, r.alerts, stored, now)
		if err != nil {
			return err
		}

		fields["entries"] = len(res.Entries)
		fields["delayed"] = res.Warning != nil
		resp = &app.GenerateResponse{
			Project:           p,
			Entries:           stored,
			EarliestStart:     res.EarliestStart,
			ConstructionStart: res.ConstructionStart,
			Warning:           res.Warning,
			LockWarnings:      res.LockWarnings,
			AlertsCreated:     created,
			AlertsRemoved:     removed,
		}
		return nil
	})
	if err != nil {
		return nil, classify("generating schedule", err)
	}
	return resp, nil
}

func (s *scheduleService) Complete(ctx context.Context, req app.CompleteRequest) (*app.RecalcResponse, error) {
	return s.recalc(ctx, "schedule-complete", req.StepRequest, func(snap scheduler.Snapshot) (*scheduler.Outcome, error) {
		return s.engine.Complete(snap, req.StepID, req.ActualDays)
	})
}

func (s *scheduleService) Uncomplete(ctx context.Context, req app.StepRequest) (*app.RecalcResponse, error) {
	return s.recalc(ctx, "schedule-uncomplete", req, func(snap scheduler.Snapshot) (*scheduler.Outcome, error) {
		return s.engine.Uncomplete(snap, req.StepID)
	})
}

func (s *scheduleService) EditDates(ctx context.Context, req app.EditRequest) (*app.RecalcResponse, error) {
	edit := scheduler.ManualEdit{Start: req.Start, End: req.End, Days: req.Days}
	return s.recalc(ctx, "schedule-edit", req.StepRequest, func(snap scheduler.Snapshot) (*scheduler.Outcome, error) {
		return s.engine.EditDates(snap, req.StepID, edit)
	})
}

func (s *scheduleService) Lock(ctx context.Context, req app.StepRequest) (*app.RecalcResponse, error) {
	return s.recalc(ctx, "schedule-lock", req, func(snap scheduler.Snapshot) (*scheduler.Outcome, error) {
		return s.engine.Lock(snap, req.StepID)
	})
}

func (s *scheduleService) Unlock(ctx context.Context, req app.StepRequest) (*app.RecalcResponse, error) {
	return s.recalc(ctx, "schedule-unlock", req, func(snap scheduler.Snapshot) (*scheduler.Outcome, error) {
		return s.engine.Unlock(snap, req.StepID)
	})
}

func (s *scheduleService) Reset(ctx context.Context, req app.StepRequest) (*app.RecalcResponse, error) {
	return s.recalc(ctx, "schedule-reset", req, func(snap scheduler.Snapshot) (*scheduler.Outcome, error) {
		return s.engine.Reset(snap, req.StepID)
	})
}

// recalc runs one read, compute, write cycle inside a single transaction.
// Existing entries are written with compare-and-swap so a concurrent session
// that wrote first makes this one fail with a stale-write error.
func (s *scheduleService) recalc(
	ctx context.Context,
	name string,
	req app.StepRequest,
	run func(scheduler.Snapshot) (*scheduler.Outcome, error),
) (resp *app.RecalcResponse, err error) {
	startedAt := time.Now()
	now := resolveNow(req.Now)
	fields := map[string]any{"project": req.ProjectRef, "step": req.StepID}
	defer observe(ctx, s.observer, name, startedAt, fields, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := newTxRepos(tx)
		p, err := resolveProject(ctx, r.projects, req.ProjectRef)
		if err != nil {
			return err
		}
		entries, err := r.entries.ListByProject(ctx, p.ID)
		if err != nil {
			return err
		}
		refs, err := r.references.List(ctx)
		if err != nil {
			return err
		}

		out, err := run(scheduler.Snapshot{
			ProjectID:     p.ID,
			Entries:       entries,
			SquareFootage: p.SquareFootage,
			References:    refs,
			TargetStart:   p.TargetStartDate,
			Now:           now,
		})
		if err != nil {
			return err
		}

		for _, e := range out.Changed {
			e.UpdatedAt = now
			if e.ID == "" {
				stampNew(e, now)
				if err := r.entries.UpsertMany(ctx, []*domain.ScheduleEntry{e}); err != nil {
					return err
				}
				continue
			}
			if err := r.entries.Update(ctx, e); err != nil {
				return err
			}
		}

		created, removed, err := s.syncAlerts(ctx, r.alerts, out.Changed, now)
		if err != nil {
			return err
		}

		fields["changed"] = len(out.Changed)
		fields["days_ahead"] = out.DaysAhead
		resp = &app.RecalcResponse{
			Entry:         out.Entry,
			Created:       out.Created,
			Changed:       out.Changed,
			DaysAhead:     out.DaysAhead,
			Warnings:      out.Warnings,
			Conflicts:     out.Conflicts,
			AlertsCreated: created,
			AlertsRemoved: removed,
		}
		return nil
	})
	if err != nil {
		return nil, classify(name, err)
	}
	return resp, nil
}

// syncAlerts brings the stored alerts of the given entries in line with
// their current dates and lead times.
func (s *scheduleService) syncAlerts(ctx context.Context, alerts repository.AlertRepo, entries []*domain.ScheduleEntry, now time.Time) (created, removed int, err error) {
	if len(entries) == 0 {
		return 0, 0, nil
	}
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	existing, err := alerts.ListByEntries(ctx, ids)
	if err != nil {
		return 0, 0, err
	}

	plan := s.engine.ReconcileAlerts(entries, existing, now)
	if err := alerts.DeleteMany(ctx, plan.Delete); err != nil {
		return 0, 0, err
	}
	for i := range plan.Insert {
		plan.Insert[i].ID = uuid.New().String()
		plan.Insert[i].CreatedAt = now
	}
	if err := alerts.InsertMany(ctx, plan.Insert); err != nil {
		return 0, 0, err
	}
	return len(plan.Insert), len(plan.Delete), nil
}

func (s *scheduleService) List(ctx context.Context, projectRef string) ([]*domain.ScheduleEntry, error) {
	p, err := resolveProject(ctx, s.projects, projectRef)
	if err != nil {
		return nil, classify("listing schedule", err)
	}
	entries, err := s.entries.ListByProject(ctx, p.ID)
	if err != nil {
		return nil, classify("listing schedule", err)
	}
	scheduler.SortEntries(entries)
	return entries, nil
}

// Conflicts reports days where several trades work at once, plus the
// warnings of locked entries that disagree with the automatic rules.
func (s *scheduleService) Conflicts(ctx context.Context, projectRef string) ([]scheduler.Conflict, []scheduler.Warning, error) {
	entries, err := s.List(ctx, projectRef)
	if err != nil {
		return nil, nil, err
	}
	return scheduler.DetectConflicts(entries), scheduler.LockWarnings(s.engine.Catalog(), entries), nil
}

func (s *scheduleService) AddEntry(ctx context.Context, req app.StepRequest) (entry *domain.ScheduleEntry, err error) {
	startedAt := time.Now()
	now := resolveNow(req.Now)
	defer observe(ctx, s.observer, "schedule-add", startedAt,
		map[string]any{"project": req.ProjectRef, "step": req.StepID}, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := newTxRepos(tx)
		p, err := resolveProject(ctx, r.projects, req.ProjectRef)
		if err != nil {
			return err
		}
		entries, err := r.entries.ListByProject(ctx, p.ID)
		if err != nil {
			return err
		}
		refs, err := r.references.List(ctx)
		if err != nil {
			return err
		}
		e, err := s.engine.Add(scheduler.Snapshot{
			ProjectID:     p.ID,
			Entries:       entries,
			SquareFootage: p.SquareFootage,
			References:    refs,
			TargetStart:   p.TargetStartDate,
			Now:           now,
		}, req.StepID)
		if err != nil {
			return err
		}
		stampNew(e, now)
		e.UpdatedAt = now
		if err := r.entries.UpsertMany(ctx, []*domain.ScheduleEntry{e}); err != nil {
			return err
		}
		entry = e
		return nil
	})
	if err != nil {
		return nil, classify("adding entry", err)
	}
	return entry, nil
}

// RemoveEntry deletes one entry on explicit user request. Its alerts are
// removed with it; no other entry moves.
func (s *scheduleService) RemoveEntry(ctx context.Context, req app.StepRequest) (err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, "schedule-remove", startedAt,
		map[string]any{"project": req.ProjectRef, "step": req.StepID}, &err)

	if _, err := s.engine.Catalog().Lookup(req.StepID); err != nil {
		return classify("removing entry", err)
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := newTxRepos(tx)
		p, err := resolveProject(ctx, r.projects, req.ProjectRef)
		if err != nil {
			return err
		}
		e, err := r.entries.GetByStep(ctx, p.ID, req.StepID)
		if err != nil {
			return err
		}
		return r.entries.Delete(ctx, e.ID)
	})
	return classify("removing entry", err)
}
