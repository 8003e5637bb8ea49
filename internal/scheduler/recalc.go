package scheduler

import (
	"fmt"
	"time"

	"github.com/alexanderramin/chantier/internal/calendar"
	"github.com/alexanderramin/chantier/internal/domain"
)

// Snapshot is the state one recalculation reads: every entry of a project
// plus what is needed to resolve durations.
type Snapshot struct {
	ProjectID     string
	Entries       []*domain.ScheduleEntry
	SquareFootage *float64
	References    []domain.ReferenceDuration
	// TargetStart is the project's desired first day of construction.
	// Recalculation never moves construction entries before it.
	TargetStart *time.Time
	Now         time.Time
}

// Outcome is the complete plan produced by one recalculation.
type Outcome struct {
	Entry *domain.ScheduleEntry
	// Created is true when Entry was synthesized by the operation.
	Created bool
	// Changed holds every entry whose dates, status, lock or duration moved,
	// in catalog order.
	Changed []*domain.ScheduleEntry
	// All is the full recalculated entry set in catalog order.
	All []*domain.ScheduleEntry
	// DaysAhead is the signed business-day delta of a completion; positive
	// means the step finished early.
	DaysAhead int
	Warnings  []Warning
	Conflicts []Conflict
}

// ManualEdit carries a user date edit. At least one field must be set;
// End and Days are mutually exclusive since End is converted to a duration.
type ManualEdit struct {
	Start *time.Time
	End   *time.Time
	Days  *int
}

type workingSet struct {
	entries []*domain.ScheduleEntry
	before  map[string]*domain.ScheduleEntry
}

func newWorkingSet(entries []*domain.ScheduleEntry) *workingSet {
	w := &workingSet{before: make(map[string]*domain.ScheduleEntry, len(entries))}
	for _, e := range entries {
		w.entries = append(w.entries, e.Clone())
		w.before[e.StepID] = e.Clone()
	}
	SortEntries(w.entries)
	return w
}

func (w *workingSet) find(stepID string) (*domain.ScheduleEntry, int) {
	for i, e := range w.entries {
		if e.StepID == stepID {
			return e, i
		}
	}
	return nil, -1
}

func (w *workingSet) insert(e *domain.ScheduleEntry) int {
	w.entries = append(w.entries, e)
	SortEntries(w.entries)
	_, i := w.find(e.StepID)
	return i
}

func (w *workingSet) changed() []*domain.ScheduleEntry {
	var out []*domain.ScheduleEntry
	for _, e := range w.entries {
		old, ok := w.before[e.StepID]
		if !ok || entryDiffers(old, e) {
			out = append(out, e)
		}
	}
	return out
}

func entryDiffers(a, b *domain.ScheduleEntry) bool {
	return !sameDate(a.StartDate, b.StartDate) ||
		!sameDate(a.EndDate, b.EndDate) ||
		a.Status != b.Status ||
		a.IsManualDate != b.IsManualDate ||
		a.EstimatedDays != b.EstimatedDays ||
		domain.ValueOr(-1, a.ActualDays) != domain.ValueOr(-1, b.ActualDays)
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func (en *Engine) finish(w *workingSet, out *Outcome) *Outcome {
	out.Changed = w.changed()
	out.All = w.entries
	out.Warnings = LockWarnings(en.cat, w.entries)
	out.Conflicts = DetectConflicts(w.entries)
	return out
}

func (en *Engine) lookup(w *workingSet, stepID string) (*domain.ScheduleEntry, int, error) {
	if _, err := en.cat.Lookup(stepID); err != nil {
		return nil, -1, err
	}
	e, i := w.find(stepID)
	if e == nil {
		return nil, -1, fmt.Errorf("%w: step %s", ErrEntryNotFound, stepID)
	}
	return e, i, nil
}

// Complete marks a step completed with its real duration (the estimate when
// actualDays is nil). When the real end differs from the planned end, every
// later entry that is neither locked nor completed moves by the same number
// of business days, floored by minimum-delay rules and the target start. A
// step without an entry gets one synthesized that ends today.
func (en *Engine) Complete(s Snapshot, stepID string, actualDays *int) (*Outcome, error) {
	if _, err := en.cat.Lookup(stepID); err != nil {
		return nil, err
	}
	if actualDays != nil && *actualDays < 1 {
		return nil, fmt.Errorf("%w: actual days must be >= 1, got %d", ErrInvalidInput, *actualDays)
	}

	w := newWorkingSet(s.Entries)
	today := calendar.Day(s.Now)
	out := &Outcome{}

	e, idx := w.find(stepID)
	if e == nil {
		e = &domain.ScheduleEntry{ProjectID: s.ProjectID, StepID: stepID, Status: domain.EntryScheduled}
		applyStepMetadata(en.cat, e)
		d, err := NewDurations(en.cat, s.References, s.SquareFootage).For(stepID)
		if err != nil {
			return nil, err
		}
		e.EstimatedDays = d
		e.CreatedAt = s.Now
		idx = w.insert(e)
		out.Created = true
	}
	if e.IsCompleted() {
		return nil, fmt.Errorf("%w: step %s is already completed", ErrInvalidTransition, stepID)
	}

	actual := domain.ValueOr(e.EstimatedDays, actualDays)
	var plannedEnd *time.Time
	if e.EndDate != nil {
		pe := *e.EndDate
		plannedEnd = &pe
	}
	if e.StartDate == nil {
		start := calendar.SubtractBusinessDays(today, actual)
		e.StartDate = &start
	}
	newEnd := calendar.AddBusinessDays(*e.StartDate, actual)
	if err := e.MarkCompleted(actual, newEnd, s.Now); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	}
	out.Entry = e

	if plannedEnd != nil {
		out.DaysAhead = calendar.BusinessDaysBetween(newEnd, *plannedEnd)
		newFold(en.cat, today).withTarget(s.TargetStart).shift(w.entries, idx, -out.DaysAhead)
	}
	return en.finish(w, out), nil
}

// Uncomplete reverts a completed step to scheduled, drops its actual
// duration and replays consecutive placement from that step onwards.
func (en *Engine) Uncomplete(s Snapshot, stepID string) (*Outcome, error) {
	w := newWorkingSet(s.Entries)
	e, idx, err := en.lookup(w, stepID)
	if err != nil {
		return nil, err
	}
	if err := e.Uncomplete(s.Now); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	}
	newFold(en.cat, s.Now).withTarget(s.TargetStart).replay(w.entries, idx)
	return en.finish(w, &Outcome{Entry: e}), nil
}

// EditDates pins an entry to user supplied dates and sets its lock. Other
// entries are not moved; disagreements come back as warnings and conflicts.
func (en *Engine) EditDates(s Snapshot, stepID string, edit ManualEdit) (*Outcome, error) {
	if edit.Start == nil && edit.End == nil && edit.Days == nil {
		return nil, fmt.Errorf("%w: nothing to change", ErrInvalidInput)
	}
	if edit.End != nil && edit.Days != nil {
		return nil, fmt.Errorf("%w: give either an end date or a duration, not both", ErrInvalidInput)
	}
	if edit.Days != nil && *edit.Days < 1 {
		return nil, fmt.Errorf("%w: duration must be >= 1, got %d", ErrInvalidInput, *edit.Days)
	}

	w := newWorkingSet(s.Entries)
	e, _, err := en.lookup(w, stepID)
	if err != nil {
		return nil, err
	}
	if e.IsCompleted() {
		return nil, fmt.Errorf("%w: step %s is completed; uncomplete it before editing dates", ErrInvalidTransition, stepID)
	}

	days := domain.ValueOr(e.EstimatedDays, edit.Days)
	var start time.Time
	switch {
	case edit.Start != nil:
		start = calendar.Day(*edit.Start)
	case e.StartDate != nil:
		start = *e.StartDate
	case edit.End != nil:
		start = calendar.SubtractBusinessDays(*edit.End, days)
	default:
		return nil, fmt.Errorf("%w: step %s has no start date; a start date is required", ErrInvalidInput, stepID)
	}
	if edit.End != nil {
		days = calendar.BusinessDaysBetween(start, *edit.End)
		if days < 1 {
			return nil, fmt.Errorf("%w: end %s must be at least one business day after start %s",
				ErrInvalidInput, calendar.Format(*edit.End), calendar.Format(start))
		}
	}

	e.EstimatedDays = days
	e.SetManualDates(start, calendar.AddBusinessDays(start, e.EffectiveDays()), s.Now)
	return en.finish(w, &Outcome{Entry: e}), nil
}

// Lock protects an entry's current dates. Nothing is recalculated.
func (en *Engine) Lock(s Snapshot, stepID string) (*Outcome, error) {
	w := newWorkingSet(s.Entries)
	e, _, err := en.lookup(w, stepID)
	if err != nil {
		return nil, err
	}
	if err := e.Lock(s.Now); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	}
	return en.finish(w, &Outcome{Entry: e}), nil
}

// Unlock makes an entry movable again. Its dates stay put until the next
// recalculation event.
func (en *Engine) Unlock(s Snapshot, stepID string) (*Outcome, error) {
	w := newWorkingSet(s.Entries)
	e, _, err := en.lookup(w, stepID)
	if err != nil {
		return nil, err
	}
	e.Unlock(s.Now)
	return en.finish(w, &Outcome{Entry: e}), nil
}

// Reset clears an entry's dates and lock, then replays consecutive
// placement from that step so it lands where the automatic rules put it.
func (en *Engine) Reset(s Snapshot, stepID string) (*Outcome, error) {
	w := newWorkingSet(s.Entries)
	e, idx, err := en.lookup(w, stepID)
	if err != nil {
		return nil, err
	}
	if err := e.ResetToCalculated(s.Now); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	}
	newFold(en.cat, s.Now).withTarget(s.TargetStart).replay(w.entries, idx)
	return en.finish(w, &Outcome{Entry: e}), nil
}

// Add creates a pending entry without dates for a step the project does not
// have yet. The next recalculation that reaches it places it.
func (en *Engine) Add(s Snapshot, stepID string) (*domain.ScheduleEntry, error) {
	if _, err := en.cat.Lookup(stepID); err != nil {
		return nil, err
	}
	w := newWorkingSet(s.Entries)
	if e, _ := w.find(stepID); e != nil {
		return nil, fmt.Errorf("%w: step %s is already in the schedule", ErrInvalidInput, stepID)
	}
	d, err := NewDurations(en.cat, s.References, s.SquareFootage).For(stepID)
	if err != nil {
		return nil, err
	}
	e := &domain.ScheduleEntry{
		ProjectID:     s.ProjectID,
		StepID:        stepID,
		Status:        domain.EntryPending,
		EstimatedDays: d,
		CreatedAt:     s.Now,
		UpdatedAt:     s.Now,
	}
	applyStepMetadata(en.cat, e)
	return e, nil
}
