package domain

type EntryStatus string

const (
	EntryPending    EntryStatus = "pending"
	EntryScheduled  EntryStatus = "scheduled"
	EntryInProgress EntryStatus = "in_progress"
	EntryCompleted  EntryStatus = "completed"
)

// ValidEntryStatuses is the canonical set of accepted schedule entry statuses.
var ValidEntryStatuses = map[EntryStatus]bool{
	EntryPending: true, EntryScheduled: true, EntryInProgress: true, EntryCompleted: true,
}

type AlertType string

const (
	AlertSupplierCall         AlertType = "supplier_call"
	AlertFabricationStart     AlertType = "fabrication_start"
	AlertContactSubcontractor AlertType = "contact_subcontractor"
)

type Phase string

const (
	PhasePreparation Phase = "preparation"
	PhaseStructure   Phase = "gros_oeuvre"
	PhaseMechanical  Phase = "mecanique"
	PhaseFinishing   Phase = "finition"
	PhaseExterior    Phase = "exterieur"
)

// ValidPhases is the canonical set of accepted step phases.
var ValidPhases = map[string]bool{
	"preparation": true, "gros_oeuvre": true, "mecanique": true,
	"finition": true, "exterieur": true,
}

// TradeOther is the catch-all trade for steps without a mapped subcontractor.
const TradeOther = "autre"
