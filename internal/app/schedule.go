package app

import (
	"time"

	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/alexanderramin/chantier/internal/scheduler"
)

// GenerateRequest asks for a full schedule of one project. ProjectRef is a
// project ID or short ID.
type GenerateRequest struct {
	ProjectRef string
	// TargetStart overrides the project's stored target start when set.
	TargetStart *time.Time
	// Stage overrides the project's current stage when set.
	Stage *string
	Now   *time.Time
}

type GenerateResponse struct {
	Project           *domain.Project
	Entries           []*domain.ScheduleEntry
	EarliestStart     time.Time
	ConstructionStart time.Time
	Warning           *scheduler.StartWarning
	LockWarnings      []scheduler.Warning
	AlertsCreated     int
	AlertsRemoved     int
}

// StepRequest targets one step of one project.
type StepRequest struct {
	ProjectRef string
	StepID     string
	Now        *time.Time
}

type CompleteRequest struct {
	StepRequest
	// ActualDays defaults to the entry's estimate.
	ActualDays *int
}

type EditRequest struct {
	StepRequest
	Start *time.Time
	End   *time.Time
	Days  *int
}

// RecalcResponse reports what one recalculation changed.
type RecalcResponse struct {
	Entry         *domain.ScheduleEntry
	Created       bool
	Changed       []*domain.ScheduleEntry
	DaysAhead     int
	Warnings      []scheduler.Warning
	Conflicts     []scheduler.Conflict
	AlertsCreated int
	AlertsRemoved int
}

// EstimateRequest sizes a project without touching its schedule. When
// ProjectRef is set, the project's size and stage are used unless Stage
// overrides the stage.
type EstimateRequest struct {
	ProjectRef string
	Stage      *string
}
