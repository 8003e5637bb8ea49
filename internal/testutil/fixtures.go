package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/google/uuid"
)

var testShortIDCounter atomic.Int64

// Project options
type ProjectOption func(*domain.Project)

func WithShortID(id string) ProjectOption {
	return func(p *domain.Project) {
		p.ShortID = id
	}
}

func WithSquareFootage(sqft float64) ProjectOption {
	return func(p *domain.Project) {
		p.SquareFootage = &sqft
	}
}

func WithStage(stepID string) ProjectOption {
	return func(p *domain.Project) {
		p.CurrentStage = stepID
	}
}

func WithTargetStart(d time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.TargetStartDate = &d
	}
}

func defaultShortID(name string) string {
	upper := strings.ToUpper(name)
	var letters []byte
	for i := 0; i < len(upper) && len(letters) < 3; i++ {
		if upper[i] >= 'A' && upper[i] <= 'Z' {
			letters = append(letters, upper[i])
		}
	}
	for len(letters) < 3 {
		letters = append(letters, 'X')
	}
	n := testShortIDCounter.Add(1)
	return fmt.Sprintf("%s%02d", string(letters), n)
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC().Truncate(time.Second)
	p := &domain.Project{
		ID:        uuid.New().String(),
		ShortID:   defaultShortID(name),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ScheduleEntry options
type EntryOption func(*domain.ScheduleEntry)

// WithDates places the entry on [start, end] and marks it scheduled.
func WithDates(start, end time.Time) EntryOption {
	return func(e *domain.ScheduleEntry) {
		e.StartDate = &start
		e.EndDate = &end
		if e.Status == domain.EntryPending {
			e.Status = domain.EntryScheduled
		}
	}
}

func WithEstimatedDays(d int) EntryOption {
	return func(e *domain.ScheduleEntry) {
		e.EstimatedDays = d
	}
}

func WithCompleted(actualDays int) EntryOption {
	return func(e *domain.ScheduleEntry) {
		e.ActualDays = &actualDays
		e.Status = domain.EntryCompleted
	}
}

func WithManualDate() EntryOption {
	return func(e *domain.ScheduleEntry) {
		e.IsManualDate = true
	}
}

func WithPosition(pos int) EntryOption {
	return func(e *domain.ScheduleEntry) {
		e.Position = pos
	}
}

func WithLeadDays(supplier, fabrication int) EntryOption {
	return func(e *domain.ScheduleEntry) {
		e.SupplierLeadDays = supplier
		e.FabricationLeadDays = fabrication
	}
}

func NewTestEntry(projectID, stepID string, opts ...EntryOption) *domain.ScheduleEntry {
	now := time.Now().UTC().Truncate(time.Second)
	e := &domain.ScheduleEntry{
		ID:            uuid.New().String(),
		ProjectID:     projectID,
		StepID:        stepID,
		Trade:         domain.TradeOther,
		EstimatedDays: 5,
		Status:        domain.EntryPending,
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func NewTestAlert(projectID, entryID string, typ domain.AlertType, trigger time.Time) domain.ScheduleAlert {
	return domain.ScheduleAlert{
		ID:          uuid.New().String(),
		ProjectID:   projectID,
		EntryID:     entryID,
		Type:        typ,
		TriggerDate: trigger,
		Message:     fmt.Sprintf("%s alert", typ),
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
}
