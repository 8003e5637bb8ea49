package scheduler

import (
	"fmt"
	"time"

	"github.com/alexanderramin/chantier/internal/calendar"
	"github.com/alexanderramin/chantier/internal/domain"
)

// AlertPlan is the minimal change that brings stored alerts in line with
// the entries they were derived from.
type AlertPlan struct {
	Insert []domain.ScheduleAlert
	// Delete holds IDs of stale, non-dismissed alerts.
	Delete []string
}

// deriveAll returns every alert the entries call for, past triggers
// included. Completed entries need no reminders.
func (en *Engine) deriveAll(entries []*domain.ScheduleEntry) []domain.ScheduleAlert {
	var alerts []domain.ScheduleAlert
	for _, e := range entries {
		if e.StartDate == nil || e.IsCompleted() {
			continue
		}
		title := e.StepID
		if step, err := en.cat.Lookup(e.StepID); err == nil {
			title = step.Title
		}
		start := calendar.Format(*e.StartDate)

		add := func(t domain.AlertType, lead int, msg string) {
			if lead <= 0 {
				return
			}
			alerts = append(alerts, domain.ScheduleAlert{
				ProjectID:   e.ProjectID,
				EntryID:     e.ID,
				Type:        t,
				TriggerDate: calendar.AddCalendarDays(*e.StartDate, -lead),
				Message:     msg,
			})
		}
		add(domain.AlertSupplierCall, e.SupplierLeadDays,
			fmt.Sprintf("Call suppliers for %s (starts %s, %d days lead)", title, start, e.SupplierLeadDays))
		add(domain.AlertFabricationStart, e.FabricationLeadDays,
			fmt.Sprintf("Start fabrication for %s (starts %s, %d days lead)", title, start, e.FabricationLeadDays))
		contact := en.cat.ContactLeadDays(e.StepID)
		add(domain.AlertContactSubcontractor, contact,
			fmt.Sprintf("Contact the %s subcontractor for %s (starts %s)", e.Trade, title, start))
	}
	return alerts
}

// DeriveAlerts returns the alerts due today or later for the entries.
func (en *Engine) DeriveAlerts(entries []*domain.ScheduleEntry, today time.Time) []domain.ScheduleAlert {
	today = calendar.Day(today)
	var out []domain.ScheduleAlert
	for _, a := range en.deriveAll(entries) {
		if !a.TriggerDate.Before(today) {
			out = append(out, a)
		}
	}
	return out
}

// ReconcileAlerts diffs the stored alerts of the given entries against the
// derived ones. Dismissed alerts are never touched. A stored alert whose
// (entry, type, trigger) is still wanted is kept as is, so unchanged alerts
// are not duplicated; only future-dated missing alerts are inserted.
func (en *Engine) ReconcileAlerts(entries []*domain.ScheduleEntry, existing []domain.ScheduleAlert, today time.Time) AlertPlan {
	today = calendar.Day(today)
	wanted := en.deriveAll(entries)

	var plan AlertPlan
	for i := range existing {
		ex := &existing[i]
		if ex.Dismissed {
			continue
		}
		if !containsTrigger(wanted, ex) {
			plan.Delete = append(plan.Delete, ex.ID)
		}
	}
	for i := range wanted {
		w := &wanted[i]
		if w.TriggerDate.Before(today) || containsTrigger(existing, w) {
			continue
		}
		plan.Insert = append(plan.Insert, *w)
	}
	return plan
}

func containsTrigger(alerts []domain.ScheduleAlert, a *domain.ScheduleAlert) bool {
	for i := range alerts {
		if alerts[i].SameTrigger(a) {
			return true
		}
	}
	return false
}
