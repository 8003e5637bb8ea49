package scheduler

import (
	"time"

	"github.com/alexanderramin/chantier/internal/calendar"
	"github.com/alexanderramin/chantier/internal/catalog"
	"github.com/alexanderramin/chantier/internal/domain"
)

type DurationEstimate struct {
	PreparationDays  int
	ConstructionDays int
	TotalDays        int
	SquareFootage    *float64
	IsProrated       bool
}

// CalculateEndDate is the end of a step of businessDays starting on start.
func CalculateEndDate(start time.Time, businessDays int) time.Time {
	return calendar.AddBusinessDays(start, businessDays)
}

// TotalDuration sums the static default durations of the steps remaining
// from stage.
func (en *Engine) TotalDuration(stage string) (DurationEstimate, error) {
	return en.TotalDurationWithProrata(stage, nil, nil)
}

// TotalDurationWithProrata sums durations resolved against the project size.
// IsProrated is true when at least one step used a reference row.
func (en *Engine) TotalDurationWithProrata(stage string, squareFootage *float64, refs []domain.ReferenceDuration) (DurationEstimate, error) {
	steps, err := en.cat.StepsFrom(stage)
	if err != nil {
		return DurationEstimate{}, err
	}
	durations := NewDurations(en.cat, refs, squareFootage)

	est := DurationEstimate{SquareFootage: squareFootage}
	for _, s := range steps {
		d, err := durations.For(s.ID)
		if err != nil {
			return DurationEstimate{}, err
		}
		if s.IsPreparation() {
			est.PreparationDays += d
		} else {
			est.ConstructionDays += d
		}
		if durations.Prorated(s.ID) {
			est.IsProrated = true
		}
	}
	est.TotalDays = est.PreparationDays + est.ConstructionDays
	return est, nil
}

// PreparationStartDate is the latest day preparation can begin so that
// construction starts on target. Each preparation step is followed by one
// business day before the next step, as in Generate.
func (en *Engine) PreparationStartDate(target time.Time, stage string) (time.Time, error) {
	steps, err := en.cat.StepsFrom(stage)
	if err != nil {
		return time.Time{}, err
	}
	prep, _ := catalog.Partition(steps)
	target = calendar.NextBusinessDay(target)
	if len(prep) == 0 {
		return target, nil
	}
	span := len(prep)
	for _, s := range prep {
		span += s.DefaultDays
	}
	return calendar.SubtractBusinessDays(target, span), nil
}
