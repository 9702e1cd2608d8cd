package cli

import "github.com/aquilahq/aquila/internal/schedule"

// SharedState is passed to every view so they can reach the services
// and the wizard's scheduling session.
type SharedState struct {
	App     *App
	Session *schedule.Session

	Width  int
	Height int
}
