package formatter

import (
	"time"

	"github.com/alexanderramin/chantier/internal/calendar"
	"github.com/alexanderramin/chantier/internal/domain"
)

// FormatAlerts renders alerts with their trigger date relative to today.
// stepOf maps entry ids to step ids.
func FormatAlerts(alerts []domain.ScheduleAlert, stepOf map[string]string, today time.Time) string {
	headers := []string{"ID", "DATE", "TYPE", "STEP", "MESSAGE"}
	rows := make([][]string, 0, len(alerts))
	for _, a := range alerts {
		date := calendar.Format(a.TriggerDate)
		switch days := calendar.CalendarDaysBetween(calendar.Day(today), a.TriggerDate); {
		case a.Dismissed:
			date = Dim(date)
		case days <= 0:
			date = StyleRed.Render(date)
		case days <= 7:
			date = StyleYellow.Render(date)
		}
		rows = append(rows, []string{
			TruncID(a.ID),
			date,
			alertTypeLabel(a.Type),
			stepOf[a.EntryID],
			a.Message,
		})
	}
	return RenderTable(headers, rows)
}

func alertTypeLabel(t domain.AlertType) string {
	switch t {
	case domain.AlertSupplierCall:
		return "supplier"
	case domain.AlertFabricationStart:
		return "fabrication"
	case domain.AlertContactSubcontractor:
		return "contact"
	default:
		return string(t)
	}
}
