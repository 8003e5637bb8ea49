package scheduler

import (
	"sort"

	"github.com/alexanderramin/chantier/internal/domain"
)

// SortEntries orders entries by the deterministic canonical rules:
// 1. Catalog position: ascending (unknown positions last)
// 2. Step ID: lexical ascending
func SortEntries(entries []*domain.ScheduleEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]

		// 1. Catalog position (0 = not in catalog, sorts last)
		if (a.Position == 0) != (b.Position == 0) {
			return a.Position != 0
		}
		if a.Position != b.Position {
			return a.Position < b.Position
		}

		// 2. Step ID (lexical)
		return a.StepID < b.StepID
	})
}
