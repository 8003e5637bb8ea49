package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/chantier/internal/app"
	"github.com/alexanderramin/chantier/internal/calendar"
	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/alexanderramin/chantier/internal/scheduler"
)

// FormatSchedule renders entries in the order given.
func FormatSchedule(entries []*domain.ScheduleEntry) string {
	headers := []string{"STEP", "TRADE", "START", "END", "DAYS", "STATUS", ""}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		days := fmt.Sprintf("%d", e.EffectiveDays())
		if e.ActualDays != nil && *e.ActualDays != e.EstimatedDays {
			days = fmt.Sprintf("%d %s", *e.ActualDays, Dim(fmt.Sprintf("(est %d)", e.EstimatedDays)))
		}
		rows = append(rows, []string{
			e.StepID,
			TradeSwatch(e.Trade, e.TradeColor),
			FormatDate(e.StartDate),
			FormatDate(e.EndDate),
			days,
			StatusPill(e.Status),
			LockMark(e.IsManualDate),
		})
	}
	return RenderTable(headers, rows)
}

// FormatGenerate renders the outcome of a schedule generation.
func FormatGenerate(resp *app.GenerateResponse) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Schedule %s", resp.Project.DisplayID())))
	b.WriteString("\n")
	b.WriteString(FormatSchedule(resp.Entries))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Construction starts %s\n", Bold(calendar.Format(resp.ConstructionStart))))
	if resp.Warning != nil {
		b.WriteString(StyleYellow.Render("! "+resp.Warning.Message) + "\n")
	}
	b.WriteString(formatWarnings(resp.LockWarnings))
	b.WriteString(alertSummary(resp.AlertsCreated, resp.AlertsRemoved))
	return b.String()
}

// FormatRecalc renders the entries a recalculation moved.
func FormatRecalc(verb string, resp *app.RecalcResponse) string {
	var b strings.Builder
	if resp.Entry != nil {
		b.WriteString(fmt.Sprintf("%s %s", verb, Bold(resp.Entry.StepID)))
		if resp.Created {
			b.WriteString(Dim(" (entry created)"))
		}
		b.WriteString("\n")
	}
	switch {
	case resp.DaysAhead > 0:
		b.WriteString(StyleGreen.Render(DayCount(resp.DaysAhead)+" ahead of schedule") + "\n")
	case resp.DaysAhead < 0:
		b.WriteString(StyleRed.Render(DayCount(-resp.DaysAhead)+" behind schedule") + "\n")
	}
	if len(resp.Changed) > 0 {
		b.WriteString(fmt.Sprintf("%d entries updated\n", len(resp.Changed)))
		b.WriteString(FormatSchedule(resp.Changed))
	}
	b.WriteString(formatWarnings(resp.Warnings))
	if len(resp.Conflicts) > 0 {
		b.WriteString(FormatConflicts(resp.Conflicts, nil))
	}
	b.WriteString(alertSummary(resp.AlertsCreated, resp.AlertsRemoved))
	return b.String()
}

// FormatConflicts renders same-trade overlap days and lock warnings.
func FormatConflicts(conflicts []scheduler.Conflict, warnings []scheduler.Warning) string {
	if len(conflicts) == 0 && len(warnings) == 0 {
		return StyleGreen.Render("No conflicts.") + "\n"
	}
	var b strings.Builder
	if len(conflicts) > 0 {
		rows := make([][]string, 0, len(conflicts))
		for _, c := range conflicts {
			rows = append(rows, []string{calendar.Format(c.Date), strings.Join(c.Trades, ", ")})
		}
		b.WriteString(RenderTable([]string{"DATE", "TRADES DOUBLE-BOOKED"}, rows))
	}
	b.WriteString(formatWarnings(warnings))
	return b.String()
}

func formatWarnings(warnings []scheduler.Warning) string {
	var b strings.Builder
	for _, w := range warnings {
		b.WriteString(StyleYellow.Render(fmt.Sprintf("! [%s] %s", w.Kind, w.Message)) + "\n")
	}
	return b.String()
}

func alertSummary(created, removed int) string {
	if created == 0 && removed == 0 {
		return ""
	}
	return Dim(fmt.Sprintf("alerts: +%d -%d", created, removed)) + "\n"
}
