package scheduler

import (
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/chantier/internal/calendar"
	"github.com/alexanderramin/chantier/internal/catalog"
	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, err := calendar.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func dayPtr(s string) *time.Time {
	d := day(s)
	return &d
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func fmtDate(t *time.Time) string {
	if t == nil {
		return "<nil>"
	}
	return calendar.Format(*t)
}

func entryFor(t *testing.T, entries []*domain.ScheduleEntry, stepID string) *domain.ScheduleEntry {
	t.Helper()
	for _, e := range entries {
		if e.StepID == stepID {
			return e
		}
	}
	require.FailNow(t, "missing entry", "step %s", stepID)
	return nil
}

// generated returns the default construction schedule starting 2025-06-02,
// generated on 2025-05-01, with IDs assigned as a store would.
func generated(t *testing.T, en *Engine) []*domain.ScheduleEntry {
	t.Helper()
	res, err := en.Generate(GenerateInput{
		ProjectID:    "p-1",
		CurrentStage: "excavation",
		TargetStart:  dayPtr("2025-06-02"),
		Today:        day("2025-05-01"),
	})
	require.NoError(t, err)
	for i, e := range res.Entries {
		e.ID = fmt.Sprintf("e-%02d", i)
	}
	return res.Entries
}

func snapshot(entries []*domain.ScheduleEntry, now string) Snapshot {
	return Snapshot{ProjectID: "p-1", Entries: entries, Now: day(now)}
}

func defaultEngine() *Engine {
	return NewEngine(catalog.Default())
}
