package domain

// Subtask is a unit of work inside one task, with a minute-denominated
// estimate. Recommended subtasks come from the Aquila backend suggestion
// endpoint; custom ones are entered by the user in the wizard.
type Subtask struct {
	ID           string
	Title        string
	EstimatedMin int
	Source       SubtaskSource

	// Selected marks the subtask as part of the to-schedule set; only
	// selected subtasks count toward the total estimate and enter the
	// planning step.
	Selected bool

	// Scheduled is set once the user has confirmed a slot for the
	// subtask during planning.
	Scheduled bool
}
