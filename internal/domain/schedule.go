package domain

import (
	"fmt"
	"time"
)

// ScheduleEntry is the per-project, per-step scheduled record.
// EndDate is always derived from StartDate and EffectiveDays.
type ScheduleEntry struct {
	ID         string
	ProjectID  string
	StepID     string
	Position   int
	Trade      string
	TradeColor string

	EstimatedDays int
	ActualDays    *int

	StartDate    *time.Time
	EndDate      *time.Time
	Status       EntryStatus
	IsManualDate bool

	SupplierLeadDays    int
	FabricationLeadDays int

	MeasurementRequired    bool
	MeasurementAfterStepID string
	MeasurementNotes       string

	Notes string

	// Version is bumped on every persisted write; stale writers are rejected.
	Version int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectiveDays is the duration the end date is computed from.
func (e *ScheduleEntry) EffectiveDays() int {
	return ValueOr(e.EstimatedDays, e.ActualDays)
}

func (e *ScheduleEntry) IsCompleted() bool {
	return e.Status == EntryCompleted
}

// IsAnchored reports whether automatic recalculation must keep this entry's dates.
func (e *ScheduleEntry) IsAnchored() bool {
	return e.IsManualDate || e.IsCompleted()
}

func (e *ScheduleEntry) HasDates() bool {
	return e.StartDate != nil && e.EndDate != nil
}

// Place sets automatically computed dates on a non-completed entry and
// derives its status: in_progress when it starts today (or already started
// and is still running), scheduled otherwise.
func (e *ScheduleEntry) Place(start, end, today time.Time) {
	s, en := start, end
	e.StartDate = &s
	e.EndDate = &en
	if e.IsCompleted() {
		return
	}
	switch {
	case start.Equal(today):
		e.Status = EntryInProgress
	case e.Status == EntryInProgress && !start.After(today):
		// keeps running
	default:
		e.Status = EntryScheduled
	}
}

// SetManualDates pins the entry to user supplied dates.
func (e *ScheduleEntry) SetManualDates(start, end time.Time, now time.Time) {
	s, en := start, end
	e.StartDate = &s
	e.EndDate = &en
	e.IsManualDate = true
	if e.Status == EntryPending {
		e.Status = EntryScheduled
	}
	e.UpdatedAt = now
}

// MarkCompleted records the real duration and completion-driven end date.
func (e *ScheduleEntry) MarkCompleted(actualDays int, end time.Time, now time.Time) error {
	if e.StartDate == nil {
		return fmt.Errorf("cannot complete step %s: entry has no start date", e.StepID)
	}
	if actualDays < 1 {
		return fmt.Errorf("cannot complete step %s: actual days must be >= 1, got %d", e.StepID, actualDays)
	}
	d := actualDays
	en := end
	e.ActualDays = &d
	e.EndDate = &en
	e.Status = EntryCompleted
	e.UpdatedAt = now
	return nil
}

// Uncomplete reverses a completion. Only completed entries can be reverted.
func (e *ScheduleEntry) Uncomplete(now time.Time) error {
	if e.Status != EntryCompleted {
		return fmt.Errorf("cannot uncomplete step %s: status is %s", e.StepID, e.Status)
	}
	e.Status = EntryScheduled
	e.ActualDays = nil
	e.UpdatedAt = now
	return nil
}

// Lock protects the current dates from automatic recalculation.
func (e *ScheduleEntry) Lock(now time.Time) error {
	if e.StartDate == nil {
		return fmt.Errorf("cannot lock step %s: entry has no start date", e.StepID)
	}
	e.IsManualDate = true
	e.UpdatedAt = now
	return nil
}

// Unlock makes the entry eligible for the next cascade without moving it.
func (e *ScheduleEntry) Unlock(now time.Time) {
	e.IsManualDate = false
	e.UpdatedAt = now
}

// ResetToCalculated clears dates and the lock so the next pass places the
// step purely by the automatic rules.
func (e *ScheduleEntry) ResetToCalculated(now time.Time) error {
	if e.IsCompleted() {
		return fmt.Errorf("cannot reset step %s: step is completed", e.StepID)
	}
	e.StartDate = nil
	e.EndDate = nil
	e.IsManualDate = false
	e.Status = EntryPending
	e.UpdatedAt = now
	return nil
}

// Clone returns a deep copy so snapshots can be diffed after a cascade.
func (e *ScheduleEntry) Clone() *ScheduleEntry {
	c := *e
	if e.ActualDays != nil {
		v := *e.ActualDays
		c.ActualDays = &v
	}
	if e.StartDate != nil {
		v := *e.StartDate
		c.StartDate = &v
	}
	if e.EndDate != nil {
		v := *e.EndDate
		c.EndDate = &v
	}
	return &c
}
