package formatter

import (
	"fmt"
	"strings"

	"github.com/aquilahq/aquila/internal/contract"
	"github.com/aquilahq/aquila/internal/domain"
)

// FormatRecommendations renders the batch recommendation report: each
// subtask with its first-fit slot, tight fits and misses called out.
func FormatRecommendations(taskName string, recs []contract.Recommendation) string {
	var b strings.Builder

	b.WriteString(Header("Suggested schedule for " + taskName))
	b.WriteString("\n")

	if len(recs) == 0 {
		b.WriteString("  " + Dim("No subtasks to schedule.") + "\n")
		return b.String()
	}

	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		slot := StyleRed.Render("no free slot")
		note := ""
		if r.Slot != nil {
			slot = StyleGreen.Render(ClockRange(r.Slot.Start, r.Slot.End))
			if r.TightFit {
				note = StyleYellow.Render("tight fit")
			}
		}
		rows = append(rows, []string{r.Title, FormatMinutes(r.EstimatedMin), slot, note})
	}
	b.WriteString(RenderTable([]string{"Subtask", "Est", "Slot", ""}, rows))

	return b.String()
}

// FormatCommitResult renders the outcome of a plan commit.
func FormatCommitResult(res *contract.CommitResult) string {
	if res.Status == domain.PlanSynced {
		return fmt.Sprintf("%s Plan %s committed, %d event(s) written to the calendar.\n",
			StyleGreen.Render("✔"), TruncID(res.PlanID), res.SyncedEvents)
	}
	return fmt.Sprintf("%s Plan %s saved locally, but the calendar write-back failed.\n  %s\n",
		StyleYellow.Render("!"), TruncID(res.PlanID),
		Dim("It will show as pending sync in the history."))
}

// FormatHistory renders the recent committed plans, newest first.
func FormatHistory(plans []*domain.Plan) string {
	var b strings.Builder

	b.WriteString(Header("Plan history"))
	b.WriteString("\n")

	if len(plans) == 0 {
		b.WriteString("  " + Dim("No plans committed yet.") + "\n")
		return b.String()
	}

	for _, p := range plans {
		b.WriteString(fmt.Sprintf("  %s  %s\n", Dim(p.Day.Format("2006-01-02")), Dim("committed "+p.CreatedAt.Format("Jan 2 15:04"))))
		b.WriteString(formatPlanLines(p))
		b.WriteString("\n")
	}
	return b.String()
}
