package domain

// ConstructionStep is an immutable entry of the static step catalog.
type ConstructionStep struct {
	ID          string
	Title       string
	Position    int
	Phase       Phase
	DefaultDays int
	Tasks       []string
}

func (s ConstructionStep) IsPreparation() bool {
	return s.Phase == PhasePreparation
}
