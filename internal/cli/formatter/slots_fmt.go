package formatter

import (
	"fmt"
	"strings"

	"github.com/aquilahq/aquila/internal/contract"
	"github.com/aquilahq/aquila/internal/domain"
)

// FormatDayReport renders the slot grid for one day together with any
// plans already committed for it.
func FormatDayReport(av *contract.Availability, plans []*domain.Plan) string {
	var b strings.Builder

	b.WriteString(Header("Slots for " + HumanDate(av.Day)))
	b.WriteString("\n")

	free := 0
	freeMin := 0
	for _, s := range av.Slots {
		marker := StyleRed.Render("busy")
		if s.Available {
			marker = StyleGreen.Render("free")
			free++
			freeMin += s.Minutes()
		}
		b.WriteString(fmt.Sprintf("  %s  %s\n", ClockRange(s.Start, s.End), marker))
	}

	b.WriteString(fmt.Sprintf("\n  %s free of %d slots (%s)\n",
		Bold(fmt.Sprintf("%d", free)), len(av.Slots), FormatMinutes(freeMin)))

	if av.SkippedEvents > 0 {
		b.WriteString("  " + StyleYellow.Render(fmt.Sprintf(
			"%d calendar item(s) skipped: missing start or end time", av.SkippedEvents)) + "\n")
	}

	if len(plans) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Committed plans"))
		b.WriteString("\n")
		for _, p := range plans {
			b.WriteString(formatPlanLines(p))
		}
	}

	return b.String()
}

// FormatPlacements renders the start options that fit a task of the
// given duration on the day's grid.
func FormatPlacements(durationMin int, placements []contract.Placement) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(Header(fmt.Sprintf("Placements for %s", FormatMinutes(durationMin))))
	b.WriteString("\n")

	if len(placements) == 0 {
		b.WriteString("  " + StyleRed.Render("No contiguous free run fits this duration.") + "\n")
		return b.String()
	}
	for _, p := range placements {
		b.WriteString("  " + StyleGreen.Render(ClockRange(p.Start, p.End)) + "\n")
	}
	return b.String()
}

// formatPlanLines renders one plan with its entries, indented.
func formatPlanLines(p *domain.Plan) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("  %s %s %s  %s\n",
		TruncID(p.ID),
		Bold(p.TaskName),
		Dim("("+p.CourseName+")"),
		SyncPill(p.Status)))
	for _, e := range p.Entries {
		b.WriteString(fmt.Sprintf("    %s  %s %s %s\n",
			ClockRange(e.SlotStart, e.SlotEnd),
			e.Title,
			Dim(FormatMinutes(e.EstimatedMin)),
			SourceBadge(e.Source)))
	}
	return b.String()
}
