package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/chantier/internal/calendar"
	"github.com/alexanderramin/chantier/internal/catalog"
	"github.com/alexanderramin/chantier/internal/domain"
)

// Conflict is a business day on which two or more entries of the same trade
// are active.
type Conflict struct {
	Date   time.Time
	Trades []string
}

// DetectConflicts computes same-trade overlaps from entry state alone.
// Intervals are inclusive of both start and end; weekends are ignored.
func DetectConflicts(entries []*domain.ScheduleEntry) []Conflict {
	active := make(map[time.Time]map[string]int)
	for _, e := range entries {
		if !e.HasDates() {
			continue
		}
		for d := calendar.Day(*e.StartDate); !d.After(calendar.Day(*e.EndDate)); d = d.AddDate(0, 0, 1) {
			if calendar.IsWeekend(d) {
				continue
			}
			if active[d] == nil {
				active[d] = make(map[string]int)
			}
			active[d][e.Trade]++
		}
	}

	var conflicts []Conflict
	for d, trades := range active {
		var clashing []string
		for trade, n := range trades {
			if n >= 2 {
				clashing = append(clashing, trade)
			}
		}
		if len(clashing) == 0 {
			continue
		}
		sort.Strings(clashing)
		conflicts = append(conflicts, Conflict{Date: d, Trades: clashing})
	}
	sort.Slice(conflicts, func(i, j int) bool { return conflicts[i].Date.Before(conflicts[j].Date) })
	return conflicts
}

type WarningKind string

const (
	WarningOverlap       WarningKind = "overlap"
	WarningCureViolation WarningKind = "cure_violation"
	WarningGap           WarningKind = "gap"
)

// Warning reports a manually locked entry that disagrees with the automatic
// rules. Locked dates always win; the disagreement is surfaced, not fixed.
type Warning struct {
	Kind          WarningKind
	StepID        string
	RelatedStepID string
	Start         time.Time
	Expected      time.Time
	// BusinessDays is the size of the overlap, violation or gap.
	BusinessDays int
	Message      string
}

// LockWarnings walks entries in catalog order and reports every locked,
// non-completed entry that starts before its predecessor ends, before a
// minimum-delay floor, or leaves idle business days behind it.
func LockWarnings(cat *catalog.Catalog, entries []*domain.ScheduleEntry) []Warning {
	var warnings []Warning
	ends := make(map[string]time.Time)
	var cursor time.Time
	var prevStep string
	primed := false

	for _, e := range entries {
		if !e.HasDates() {
			continue
		}
		start := calendar.Day(*e.StartDate)
		if e.IsManualDate && !e.IsCompleted() && primed {
			expected := cursor
			flagged := false
			if start.Before(cursor) {
				n := calendar.BusinessDaysBetween(start, cursor)
				warnings = append(warnings, Warning{
					Kind: WarningOverlap, StepID: e.StepID, RelatedStepID: prevStep,
					Start: start, Expected: cursor, BusinessDays: n,
					Message: fmt.Sprintf("%s is locked to start %s, %d business day(s) before %s is finished",
						e.StepID, calendar.Format(start), n, prevStep),
				})
				flagged = true
			}
			if floor, rule, ok := minDelayFloor(cat, e.StepID, ends); ok {
				if start.Before(floor) {
					n := calendar.BusinessDaysBetween(start, floor)
					warnings = append(warnings, Warning{
						Kind: WarningCureViolation, StepID: e.StepID, RelatedStepID: rule.AfterStep,
						Start: start, Expected: floor, BusinessDays: n,
						Message: fmt.Sprintf("%s is locked to start %s but must wait %d calendar days after %s (%s): earliest %s",
							e.StepID, calendar.Format(start), rule.DelayCalendarDays, rule.AfterStep,
							domain.CoalesceStr(rule.Reason, "minimum delay"), calendar.Format(floor)),
					})
					flagged = true
				}
				expected = calendar.MaxDate(expected, floor)
			}
			if !flagged && start.After(expected) {
				if n := calendar.BusinessDaysBetween(expected, start); n > 0 {
					warnings = append(warnings, Warning{
						Kind: WarningGap, StepID: e.StepID, RelatedStepID: prevStep,
						Start: start, Expected: expected, BusinessDays: n,
						Message: fmt.Sprintf("%s is locked to start %s, leaving %d idle business day(s) after %s",
							e.StepID, calendar.Format(start), n, prevStep),
					})
				}
			}
		}

		ends[e.StepID] = *e.EndDate
		next := calendar.AddBusinessDays(*e.EndDate, 1)
		if !primed || next.After(cursor) {
			cursor = next
			prevStep = e.StepID
			primed = true
		}
	}
	return warnings
}
