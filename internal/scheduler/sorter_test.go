package scheduler

import (
	"testing"

	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/alexanderramin/chantier/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func stepIDs(entries []*domain.ScheduleEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.StepID
	}
	return out
}

func TestSortEntries_CatalogPositionFirst(t *testing.T) {
	entries := []*domain.ScheduleEntry{
		testutil.NewTestEntry("p", "toiture", testutil.WithPosition(8)),
		testutil.NewTestEntry("p", "excavation", testutil.WithPosition(5)),
		testutil.NewTestEntry("p", "structure", testutil.WithPosition(7)),
	}
	SortEntries(entries)
	assert.Equal(t, []string{"excavation", "structure", "toiture"}, stepIDs(entries))
}

func TestSortEntries_UnpositionedLastByStepID(t *testing.T) {
	entries := []*domain.ScheduleEntry{
		testutil.NewTestEntry("p", "zz-custom"),
		testutil.NewTestEntry("p", "gypse", testutil.WithPosition(14)),
		testutil.NewTestEntry("p", "aa-custom"),
		testutil.NewTestEntry("p", "permis", testutil.WithPosition(2)),
	}
	SortEntries(entries)
	assert.Equal(t, []string{"permis", "gypse", "aa-custom", "zz-custom"}, stepIDs(entries))
}

func TestSortEntries_SamePositionTieBreaksOnStepID(t *testing.T) {
	entries := []*domain.ScheduleEntry{
		testutil.NewTestEntry("p", "b", testutil.WithPosition(3)),
		testutil.NewTestEntry("p", "a", testutil.WithPosition(3)),
	}
	SortEntries(entries)
	assert.Equal(t, []string{"a", "b"}, stepIDs(entries))
}
