package cli

import (
	"github.com/aquilahq/aquila/internal/schedule"
	"github.com/aquilahq/aquila/internal/service"
	"github.com/spf13/cobra"
)

// App holds the service dependencies used by CLI commands.
type App struct {
	Plans  service.PlanService
	Window schedule.Window

	// IsInteractive reports whether stdin is a terminal. The plan
	// command uses it to choose between the wizard and a batch report.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "aquila" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "aquila",
		Short: "Schedule study tasks into free calendar slots",
	}

	root.AddCommand(
		newPlanCmd(app),
		newSlotsCmd(app),
		newHistoryCmd(app),
	)

	return root
}
