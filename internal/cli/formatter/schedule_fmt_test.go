package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/chantier/internal/app"
	"github.com/alexanderramin/chantier/internal/calendar"
	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/alexanderramin/chantier/internal/scheduler"
	"github.com/alexanderramin/chantier/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	d, err := calendar.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestFormatSchedule(t *testing.T) {
	entries := []*domain.ScheduleEntry{
		testutil.NewTestEntry("p", "excavation", testutil.WithDates(day("2025-06-02"), day("2025-06-05")), testutil.WithCompleted(2)),
		testutil.NewTestEntry("p", "fondation", testutil.WithDates(day("2025-06-06"), day("2025-06-13")), testutil.WithManualDate()),
		testutil.NewTestEntry("p", "structure"),
	}

	out := FormatSchedule(entries)
	assert.Contains(t, out, "STEP")
	assert.Contains(t, out, "excavation")
	assert.Contains(t, out, "2025-06-13")
	assert.Contains(t, out, "(est 5)")
	assert.Contains(t, out, "done")
	assert.Contains(t, out, "locked")
	assert.Contains(t, out, "pending")
	assert.Contains(t, out, "--", "undated entry shows a placeholder")
}

func TestFormatGenerate_ShowsDelayWarning(t *testing.T) {
	p := testutil.NewTestProject("Maison", testutil.WithShortID("MAI01"))
	resp := &app.GenerateResponse{
		Project:           p,
		ConstructionStart: day("2025-08-04"),
		Warning:           &scheduler.StartWarning{Message: "target 2025-06-02 is not reachable; construction starts 2025-08-04"},
		AlertsCreated:     12,
	}

	out := FormatGenerate(resp)
	assert.Contains(t, out, "MAI01")
	assert.Contains(t, out, "2025-08-04")
	assert.Contains(t, out, "not reachable")
	assert.Contains(t, out, "alerts: +12 -0")
}

func TestFormatRecalc(t *testing.T) {
	exc := testutil.NewTestEntry("p", "excavation", testutil.WithCompleted(1))
	resp := &app.RecalcResponse{
		Entry:     exc,
		Created:   true,
		Changed:   []*domain.ScheduleEntry{exc},
		DaysAhead: 2,
	}
	out := FormatRecalc("Completed", resp)
	assert.Contains(t, out, "Completed")
	assert.Contains(t, out, "entry created")
	assert.Contains(t, out, "2 days ahead")
	assert.Contains(t, out, "1 entries updated")

	resp.DaysAhead = -1
	resp.Created = false
	out = FormatRecalc("Completed", resp)
	assert.Contains(t, out, "1 day behind")
	assert.NotContains(t, out, "entry created")
}

func TestFormatConflicts(t *testing.T) {
	assert.Contains(t, FormatConflicts(nil, nil), "No conflicts.")

	out := FormatConflicts(
		[]scheduler.Conflict{{Date: day("2025-08-05"), Trades: []string{"plomberie"}}},
		[]scheduler.Warning{{Kind: scheduler.WarningGap, StepID: "toiture", Message: "toiture leaves a 3 business day gap"}},
	)
	assert.Contains(t, out, "2025-08-05")
	assert.Contains(t, out, "plomberie")
	assert.Contains(t, out, "[gap]")
}

func TestFormatAlerts(t *testing.T) {
	a := testutil.NewTestAlert("p", "e-1", domain.AlertFabricationStart, day("2025-06-19"))
	a.Message = "Lancer la fabrication: structure"
	out := FormatAlerts([]domain.ScheduleAlert{a}, map[string]string{"e-1": "structure"}, day("2025-05-01"))
	assert.Contains(t, out, "2025-06-19")
	assert.Contains(t, out, "fabrication")
	assert.Contains(t, out, "structure")
	assert.Contains(t, out, "Lancer la fabrication")
}
