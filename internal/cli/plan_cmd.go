package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/aquilahq/aquila/internal/cli/formatter"
	"github.com/aquilahq/aquila/internal/schedule"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	var courseName string
	var dayStr string

	cmd := &cobra.Command{
		Use:   "plan <task>",
		Short: "Break a task into subtasks and schedule them into free slots",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := resolveDay(dayStr)
			if err != nil {
				return err
			}

			session := schedule.NewSession(args[0], courseName, day, app.Window)

			if app.IsInteractive != nil && app.IsInteractive() {
				p := tea.NewProgram(newAppModel(app, session), tea.WithAltScreen())
				_, err := p.Run()
				return err
			}
			return runPlanBatch(cmd, app, session)
		},
	}

	cmd.Flags().StringVar(&courseName, "course", "", "Course the task belongs to (required)")
	cmd.Flags().StringVar(&dayStr, "day", "", "Day to plan for, YYYY-MM-DD (default today)")
	_ = cmd.MarkFlagRequired("course")

	return cmd
}

// runPlanBatch is the non-interactive path: fetch suggestions and the
// day's grid, pair them first-come-first-served, and print the result.
// Nothing is committed; the wizard is the only path that writes plans.
func runPlanBatch(cmd *cobra.Command, app *App, session *schedule.Session) error {
	ctx := context.Background()

	stopSpinner := formatter.StartSpinner("Breaking the task into subtasks...")
	subtasks, err := app.Plans.SuggestSubtasks(ctx, session.TaskName, session.CourseName)
	stopSpinner()
	if err != nil {
		// Suggestions are best effort. Report the failure and keep
		// going so the free-slot grid still prints.
		fmt.Fprintf(cmd.ErrOrStderr(), "%s\n",
			formatter.StyleYellow.Render("Subtask suggestions unavailable: "+err.Error()))
		subtasks = nil
	}

	stopSpinner = formatter.StartSpinner("Checking the day's calendar...")
	av, err := app.Plans.Availability(ctx, session.Day())
	stopSpinner()
	if err != nil {
		return fmt.Errorf("load availability: %w", err)
	}

	recs := schedule.RecommendAssignments(subtasks, av.Slots)
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRecommendations(session.TaskName, recs))
	if av.SkippedEvents > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n",
			formatter.StyleYellow.Render(fmt.Sprintf("%d calendar events had no usable times and were ignored.", av.SkippedEvents)))
	}
	return nil
}

// resolveDay parses a YYYY-MM-DD flag value, defaulting to today.
func resolveDay(value string) (time.Time, error) {
	if value == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}
	day, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --day %q, expected YYYY-MM-DD", value)
	}
	return day, nil
}
