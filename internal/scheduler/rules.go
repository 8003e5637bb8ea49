package scheduler

import (
	"time"

	"github.com/alexanderramin/chantier/internal/calendar"
	"github.com/alexanderramin/chantier/internal/catalog"
	"github.com/alexanderramin/chantier/internal/domain"
)

// minDelayFloor returns the earliest start allowed by the step's
// minimum-delay rule. The delay is counted in calendar days from the
// referenced step's end, then rolled forward to a business day. ok is false
// when no rule applies or the referenced end is unknown.
func minDelayFloor(cat *catalog.Catalog, stepID string, ends map[string]time.Time) (floor time.Time, rule catalog.MinDelayRule, ok bool) {
	rule, ok = cat.MinDelay(stepID)
	if !ok {
		return time.Time{}, rule, false
	}
	end, known := ends[rule.AfterStep]
	if !known {
		return time.Time{}, rule, false
	}
	return calendar.NextBusinessDay(calendar.AddCalendarDays(end, rule.DelayCalendarDays)), rule, true
}

// applyStepMetadata copies catalog-derived attributes onto an entry: trade,
// lead days and measurement requirement. Dates are untouched.
func applyStepMetadata(cat *catalog.Catalog, e *domain.ScheduleEntry) {
	e.Position = cat.Position(e.StepID)
	e.Trade, e.TradeColor = cat.Trade(e.StepID)
	e.SupplierLeadDays = cat.SupplierLeadDays(e.StepID)
	e.FabricationLeadDays = cat.FabricationLeadDays(e.StepID)
	if m, ok := cat.Measurement(e.StepID); ok {
		e.MeasurementRequired = true
		e.MeasurementAfterStepID = m.AfterStep
		e.MeasurementNotes = m.Notes
	} else {
		e.MeasurementRequired = false
		e.MeasurementAfterStepID = ""
		e.MeasurementNotes = ""
	}
}
