package cli

import (
	"context"
	"fmt"

	"github.com/aquilahq/aquila/internal/cli/formatter"
	"github.com/aquilahq/aquila/internal/schedule"
	"github.com/spf13/cobra"
)

func newSlotsCmd(app *App) *cobra.Command {
	var dayStr string
	var durationMin int

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Show free and busy slots for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := resolveDay(dayStr)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("duration") && durationMin <= 0 {
				return fmt.Errorf("--duration must be a positive number of minutes")
			}

			ctx := context.Background()
			av, err := app.Plans.Availability(ctx, day)
			if err != nil {
				return fmt.Errorf("load availability: %w", err)
			}
			plans, err := app.Plans.PlansForDay(ctx, day)
			if err != nil {
				return fmt.Errorf("load plans: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatDayReport(av, plans))

			if durationMin > 0 {
				placements := schedule.ValidPlacements(av.Slots, durationMin, app.Window)
				fmt.Fprint(out, formatter.FormatPlacements(durationMin, placements))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dayStr, "day", "", "Day to inspect, YYYY-MM-DD (default today)")
	cmd.Flags().IntVar(&durationMin, "duration", 0, "Also list start times that fit a task of this many minutes")

	return cmd
}
