package domain

import "fmt"

// DefaultBaseSquareFootage is the project size reference durations are
// expressed against when a row leaves it unset.
const DefaultBaseSquareFootage = 2000.0

// ReferenceDuration is a configurable per-step duration used to prorate
// a step by project size. Optional fields resolve through the Resolved*
// methods, never through ad hoc fallbacks in callers.
type ReferenceDuration struct {
	StepID            string
	BaseDays          int
	BaseSquareFootage *float64
	MinDays           *int
	MaxDays           *int
	ScalingFactor     *float64
	Notes             string
}

func (r *ReferenceDuration) ResolvedBaseSquareFootage() float64 {
	if r.BaseSquareFootage == nil || *r.BaseSquareFootage <= 0 {
		return DefaultBaseSquareFootage
	}
	return *r.BaseSquareFootage
}

func (r *ReferenceDuration) ResolvedScalingFactor() float64 {
	return ValueOr(1.0, r.ScalingFactor)
}

func (r *ReferenceDuration) ResolvedMinDays() int {
	return ValueOr(1, r.MinDays)
}

func (r *ReferenceDuration) ResolvedMaxDays() int {
	return ValueOr(3*r.BaseDays, r.MaxDays)
}

// Validate checks the row so that proration can always honor
// ResolvedMinDays <= result <= ResolvedMaxDays.
func (r *ReferenceDuration) Validate() error {
	if r.StepID == "" {
		return fmt.Errorf("reference duration: step id is required")
	}
	if r.BaseDays < 1 {
		return fmt.Errorf("reference duration %s: base days must be >= 1, got %d", r.StepID, r.BaseDays)
	}
	if r.ScalingFactor != nil && *r.ScalingFactor < 0 {
		return fmt.Errorf("reference duration %s: scaling factor must be >= 0", r.StepID)
	}
	if r.ResolvedMinDays() < 1 {
		return fmt.Errorf("reference duration %s: min days must be >= 1", r.StepID)
	}
	if r.ResolvedMinDays() > r.ResolvedMaxDays() {
		return fmt.Errorf("reference duration %s: min days %d exceeds max days %d",
			r.StepID, r.ResolvedMinDays(), r.ResolvedMaxDays())
	}
	return nil
}
