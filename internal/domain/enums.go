package domain

type SubtaskSource string

const (
	SourceRecommended SubtaskSource = "recommended"
	SourceCustom      SubtaskSource = "custom"
)

type PlanStatus string

const (
	// PlanSynced means the plan's entries were written to the calendar
	// through the backend.
	PlanSynced PlanStatus = "synced"

	// PlanPendingSync means the plan was committed locally but the
	// calendar write-back failed or was skipped.
	PlanPendingSync PlanStatus = "pending_sync"
)

// ValidPlanStatuses is the canonical set of accepted plan status strings.
var ValidPlanStatuses = map[string]bool{
	"synced": true, "pending_sync": true,
}
