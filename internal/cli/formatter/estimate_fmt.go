package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/alexanderramin/chantier/internal/scheduler"
)

// FormatEstimate renders a duration estimate in business days.
func FormatEstimate(est *scheduler.DurationEstimate) string {
	lines := []string{
		kv("Preparation", DayCount(est.PreparationDays)),
		kv("Construction", DayCount(est.ConstructionDays)),
		kv("Total", Bold(DayCount(est.TotalDays))),
	}
	if est.IsProrated && est.SquareFootage != nil {
		lines = append(lines, Dim(fmt.Sprintf("prorated for %.0f pi²", *est.SquareFootage)))
	}
	return strings.Join(lines, "\n") + "\n"
}

// FormatReferences renders the reference duration table.
func FormatReferences(refs []domain.ReferenceDuration) string {
	headers := []string{"STEP", "BASE", "BASE SQFT", "MIN", "MAX", "SCALING", "NOTES"}
	rows := make([][]string, 0, len(refs))
	for _, r := range refs {
		rows = append(rows, []string{
			r.StepID,
			fmt.Sprintf("%d", r.BaseDays),
			fmt.Sprintf("%.0f", r.ResolvedBaseSquareFootage()),
			fmt.Sprintf("%d", r.ResolvedMinDays()),
			fmt.Sprintf("%d", r.ResolvedMaxDays()),
			fmt.Sprintf("%.2f", r.ResolvedScalingFactor()),
			r.Notes,
		})
	}
	return RenderTable(headers, rows)
}

// CatalogRow is one line of the step catalog listing.
type CatalogRow struct {
	Step       domain.ConstructionStep
	Trade      string
	TradeColor string
}

// FormatCatalog renders the construction step catalog.
func FormatCatalog(rows []CatalogRow) string {
	headers := []string{"#", "STEP", "PHASE", "TRADE", "DAYS", "TITLE"}
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			fmt.Sprintf("%d", r.Step.Position),
			r.Step.ID,
			string(r.Step.Phase),
			TradeSwatch(r.Trade, r.TradeColor),
			fmt.Sprintf("%d", r.Step.DefaultDays),
			r.Step.Title,
		})
	}
	return RenderTable(headers, out)
}
