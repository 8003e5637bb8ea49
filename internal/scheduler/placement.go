package scheduler

import (
	"time"

	"github.com/alexanderramin/chantier/internal/calendar"
	"github.com/alexanderramin/chantier/internal/catalog"
	"github.com/alexanderramin/chantier/internal/domain"
)

// fold carries consecutive-placement state across entries in catalog order:
// the earliest start for the next automatically placed entry and the end
// date of every step seen so far (for minimum-delay lookups).
type fold struct {
	cat    *catalog.Catalog
	today  time.Time
	ends   map[string]time.Time
	cursor time.Time
	primed bool
	// buildStart is the first business day construction may begin on when
	// the project has a target start. Preparation steps ignore it.
	buildStart *time.Time
}

func newFold(cat *catalog.Catalog, today time.Time) *fold {
	return &fold{cat: cat, today: calendar.Day(today), ends: make(map[string]time.Time)}
}

// withTarget makes construction steps start no earlier than target, rolled
// forward to a business day. A nil target removes the floor.
func (f *fold) withTarget(target *time.Time) *fold {
	if target == nil {
		f.buildStart = nil
		return f
	}
	d := calendar.NextBusinessDay(calendar.Day(*target))
	f.buildStart = &d
	return f
}

// note records the end of a step outside the placed range so minimum-delay
// rules can see it. The cursor is left alone.
func (f *fold) note(e *domain.ScheduleEntry) {
	if e.EndDate != nil {
		f.ends[e.StepID] = *e.EndDate
	}
}

// floor raises start to the step's minimum-delay floor and, for
// construction steps, to the target start.
func (f *fold) floor(stepID string, start time.Time) time.Time {
	if floor, _, ok := minDelayFloor(f.cat, stepID, f.ends); ok {
		start = calendar.MaxDate(start, floor)
	}
	if f.buildStart != nil && !f.cat.IsPreparation(stepID) {
		start = calendar.MaxDate(start, *f.buildStart)
	}
	return start
}

func (f *fold) beforeTarget(stepID string, start time.Time) bool {
	return f.buildStart != nil && !f.cat.IsPreparation(stepID) && start.Before(*f.buildStart)
}

// startAt forces the cursor, e.g. to the construction start date.
func (f *fold) startAt(d time.Time) {
	f.cursor = calendar.Day(d)
	f.primed = true
}

// record notes a step's end. The cursor never moves backwards, so an entry
// pinned early does not pull its successors before earlier work.
func (f *fold) record(stepID string, end time.Time) {
	f.ends[stepID] = end
	next := calendar.AddBusinessDays(end, 1)
	if !f.primed || next.After(f.cursor) {
		f.cursor = next
		f.primed = true
	}
}

// recordExisting notes an entry that is outside the recalculated range.
func (f *fold) recordExisting(e *domain.ScheduleEntry) {
	if e.EndDate != nil {
		f.record(e.StepID, *e.EndDate)
	}
}

// visit places a movable entry or keeps an anchored one.
func (f *fold) visit(e *domain.ScheduleEntry) {
	if e.IsAnchored() && e.StartDate != nil {
		f.keep(e)
		return
	}
	f.place(e)
}

// keep leaves an anchored entry's start alone. A locked entry's end is
// re-derived from its duration; a completed entry keeps its real end.
func (f *fold) keep(e *domain.ScheduleEntry) {
	if !e.IsCompleted() || e.EndDate == nil {
		end := calendar.AddBusinessDays(*e.StartDate, e.EffectiveDays())
		e.EndDate = &end
	}
	f.record(e.StepID, *e.EndDate)
}

// place puts an entry at the cursor, raised to its floor.
func (f *fold) place(e *domain.ScheduleEntry) {
	if !f.primed {
		f.startAt(calendar.NextBusinessDay(f.today))
	}
	f.placeAt(e, f.floor(e.StepID, f.cursor))
}

func (f *fold) placeAt(e *domain.ScheduleEntry, start time.Time) {
	end := calendar.AddBusinessDays(start, e.EffectiveDays())
	e.Place(start, end, f.today)
	f.record(e.StepID, end)
}

// replay re-runs consecutive placement from index from onwards. Entries
// before from only feed the cursor. When nothing precedes from, the first
// entry keeps its current start (or today when it has none). Construction
// entries never land before the target start.
func (f *fold) replay(entries []*domain.ScheduleEntry, from int) {
	for i, e := range entries {
		if i < from {
			f.recordExisting(e)
			continue
		}
		if !f.primed {
			seed := calendar.NextBusinessDay(f.today)
			if e.StartDate != nil {
				seed = *e.StartDate
			}
			f.startAt(seed)
		}
		f.visit(e)
	}
}

// shift moves every movable entry after index from by delta business days,
// floored by minimum-delay rules recomputed against the new upstream ends.
// Entries without dates are placed consecutively. Once an entry would land
// before the target start, it and everything after it are placed
// consecutively from the target instead, so the construction block stays
// where generation put it.
func (f *fold) shift(entries []*domain.ScheduleEntry, from, delta int) {
	consecutive := false
	for i, e := range entries {
		if i <= from {
			f.recordExisting(e)
			continue
		}
		switch {
		case e.IsAnchored() && e.StartDate != nil:
			f.keep(e)
		case e.StartDate == nil:
			f.place(e)
		default:
			start := calendar.AddBusinessDays(*e.StartDate, delta)
			if f.beforeTarget(e.StepID, start) {
				consecutive = true
			}
			if consecutive {
				f.place(e)
				continue
			}
			f.placeAt(e, f.floor(e.StepID, start))
		}
	}
}
