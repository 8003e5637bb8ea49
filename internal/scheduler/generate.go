package scheduler

import (
	"fmt"
	"time"

	"github.com/alexanderramin/chantier/internal/calendar"
	"github.com/alexanderramin/chantier/internal/catalog"
	"github.com/alexanderramin/chantier/internal/domain"
)

type GenerateInput struct {
	ProjectID     string
	SquareFootage *float64
	// CurrentStage skips every step before it; empty schedules all steps.
	CurrentStage string
	// TargetStart is the desired first day of construction; nil means as
	// early as possible.
	TargetStart *time.Time
	Today       time.Time
	Existing    []*domain.ScheduleEntry
	References  []domain.ReferenceDuration
}

// StartWarning explains why construction cannot start on the requested day.
type StartWarning struct {
	RequestedStart    time.Time
	ActualStart       time.Time
	DelayBusinessDays int
	DelayCalendarDays int
	Message           string
}

type GenerateResult struct {
	// Entries holds one entry per scheduled step in catalog order. New
	// entries have an empty ID.
	Entries           []*domain.ScheduleEntry
	EarliestStart     time.Time
	ConstructionStart time.Time
	Warning           *StartWarning
	LockWarnings      []Warning
}

// Generate builds the schedule: preparation steps consecutively from today,
// then construction steps from the target start (or the earliest feasible
// day after preparation). Existing completed or locked entries keep their
// dates; every other existing entry is re-placed, so running Generate twice
// with the same input yields the same dates.
func (en *Engine) Generate(in GenerateInput) (*GenerateResult, error) {
	steps, err := en.cat.StepsFrom(in.CurrentStage)
	if err != nil {
		return nil, err
	}
	today := calendar.Day(in.Today)
	durations := NewDurations(en.cat, in.References, in.SquareFootage)

	existing := make(map[string]*domain.ScheduleEntry, len(in.Existing))
	for _, e := range in.Existing {
		existing[e.StepID] = e.Clone()
	}

	entryFor := func(step domain.ConstructionStep) (*domain.ScheduleEntry, error) {
		e, ok := existing[step.ID]
		if !ok {
			e = &domain.ScheduleEntry{
				ProjectID: in.ProjectID,
				StepID:    step.ID,
				Status:    domain.EntryPending,
			}
		}
		applyStepMetadata(en.cat, e)
		if !e.IsAnchored() {
			d, err := durations.For(step.ID)
			if err != nil {
				return nil, err
			}
			e.EstimatedDays = d
		}
		return e, nil
	}

	prep, construction := catalog.Partition(steps)
	result := &GenerateResult{}
	f := newFold(en.cat, today)
	f.startAt(calendar.NextBusinessDay(today))

	// Steps before the current stage are not placed, but their ends still
	// bound the minimum-delay floors of the steps that are.
	placed := make(map[string]bool, len(steps))
	for _, step := range steps {
		placed[step.ID] = true
	}
	for _, e := range in.Existing {
		if !placed[e.StepID] {
			f.note(e)
		}
	}

	for _, step := range prep {
		e, err := entryFor(step)
		if err != nil {
			return nil, err
		}
		f.visit(e)
		result.Entries = append(result.Entries, e)
	}

	earliest := f.cursor
	actual := earliest
	if in.TargetStart != nil {
		requested := calendar.Day(*in.TargetStart)
		desired := calendar.NextBusinessDay(requested)
		if desired.Before(earliest) {
			result.Warning = startWarning(requested, earliest)
		} else {
			actual = desired
		}
	}
	result.EarliestStart = earliest
	result.ConstructionStart = actual
	f.startAt(actual)

	for _, step := range construction {
		e, err := entryFor(step)
		if err != nil {
			return nil, err
		}
		f.visit(e)
		result.Entries = append(result.Entries, e)
	}

	result.LockWarnings = LockWarnings(en.cat, result.Entries)
	return result, nil
}

func startWarning(requested, actual time.Time) *StartWarning {
	bd := calendar.BusinessDaysBetween(requested, actual)
	cd := calendar.CalendarDaysBetween(requested, actual)
	return &StartWarning{
		RequestedStart:    requested,
		ActualStart:       actual,
		DelayBusinessDays: bd,
		DelayCalendarDays: cd,
		Message: fmt.Sprintf(
			"target start %s is not feasible: construction pushed %d business day(s) (%d calendar days) to %s",
			calendar.Format(requested), bd, cd, calendar.Format(actual)),
	}
}
