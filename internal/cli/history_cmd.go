package cli

import (
	"context"
	"fmt"

	"github.com/aquilahq/aquila/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently committed plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := app.Plans.History(context.Background(), limit)
			if err != nil {
				return fmt.Errorf("load history: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistory(plans))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of plans to show")

	return cmd
}
