package domain

import "time"

// ScheduleAlert is a reminder derived from an entry's lead-time fields.
type ScheduleAlert struct {
	ID          string
	ProjectID   string
	EntryID     string
	Type        AlertType
	TriggerDate time.Time
	Message     string
	Dismissed   bool
	CreatedAt   time.Time
}

// SameTrigger reports whether two alerts fire for the same reason on the same day.
func (a *ScheduleAlert) SameTrigger(other *ScheduleAlert) bool {
	return a.EntryID == other.EntryID &&
		a.Type == other.Type &&
		a.TriggerDate.Equal(other.TriggerDate)
}
