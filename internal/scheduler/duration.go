package scheduler

import (
	"math"

	"github.com/alexanderramin/chantier/internal/catalog"
	"github.com/alexanderramin/chantier/internal/domain"
)

// ResolveDuration prorates a step's duration by project size.
// Without a reference row or a known size it returns defaultDays.
// Formula: clamp(round(base * (1 + (sqft/baseSqft - 1) * scaling)), min, max)
// Rounding is to the nearest integer, halves away from zero.
func ResolveDuration(defaultDays int, squareFootage *float64, ref *domain.ReferenceDuration) int {
	if ref == nil || squareFootage == nil || *squareFootage <= 0 {
		return defaultDays
	}

	ratio := *squareFootage / ref.ResolvedBaseSquareFootage()
	adjusted := int(math.Round(float64(ref.BaseDays) * (1 + (ratio-1)*ref.ResolvedScalingFactor())))

	lo, hi := ref.ResolvedMinDays(), ref.ResolvedMaxDays()
	if adjusted < lo {
		adjusted = lo
	}
	if adjusted > hi {
		adjusted = hi
	}
	return adjusted
}

// Durations resolves step durations for one project.
type Durations struct {
	cat           *catalog.Catalog
	refs          map[string]*domain.ReferenceDuration
	squareFootage *float64
}

func NewDurations(cat *catalog.Catalog, refs []domain.ReferenceDuration, squareFootage *float64) *Durations {
	m := make(map[string]*domain.ReferenceDuration, len(refs))
	for i := range refs {
		m[refs[i].StepID] = &refs[i]
	}
	return &Durations{cat: cat, refs: m, squareFootage: squareFootage}
}

// For returns the duration of a step in business days.
func (d *Durations) For(stepID string) (int, error) {
	def, err := d.cat.DefaultDays(stepID)
	if err != nil {
		return 0, err
	}
	return ResolveDuration(def, d.squareFootage, d.refs[stepID]), nil
}

// Prorated reports whether For(stepID) comes from a reference row rather
// than the static default.
func (d *Durations) Prorated(stepID string) bool {
	return d.squareFootage != nil && *d.squareFootage > 0 && d.refs[stepID] != nil
}
