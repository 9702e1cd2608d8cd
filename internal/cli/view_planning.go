package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aquilahq/aquila/internal/cli/formatter"
	"github.com/aquilahq/aquila/internal/contract"
	"github.com/aquilahq/aquila/internal/domain"
	"github.com/aquilahq/aquila/internal/schedule"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// availabilityLoadedMsg carries the slot grid for one fetch generation.
// Stale generations (the user changed the day mid-flight) are dropped.
type availabilityLoadedMsg struct {
	gen int
	av  *contract.Availability
	err error
}

type dayChangedMsg struct {
	day time.Time
}

type commitDoneMsg struct {
	result *contract.CommitResult
	err    error
}

// planningView walks the selected subtasks one at a time, offering the
// valid placements on the day's grid. Once every subtask has a slot it
// shows the summary and commits on confirmation.
type planningView struct {
	state   *SharedState
	gen     int
	loading bool
	warning string
	notice  string
	skipped int
	cursor  int

	committing bool
	result     *contract.CommitResult
	commitErr  error
}

func newPlanningView(state *SharedState) *planningView {
	return &planningView{state: state, loading: true}
}

func (v *planningView) ID() ViewID    { return ViewPlanning }
func (v *planningView) Title() string { return "Slots" }

func (v *planningView) ShortHelp() []key.Binding {
	if v.state.Session.Step() == schedule.StepDone {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "commit plan")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "assign slot")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "change day")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

func (v *planningView) Init() tea.Cmd {
	return v.loadAvailability(v.gen)
}

func (v *planningView) loadAvailability(gen int) tea.Cmd {
	app := v.state.App
	day := v.state.Session.Day()
	return func() tea.Msg {
		av, err := app.Plans.Availability(context.Background(), day)
		return availabilityLoadedMsg{gen: gen, av: av, err: err}
	}
}

func (v *planningView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	session := v.state.Session

	switch msg := msg.(type) {
	case availabilityLoadedMsg:
		if msg.gen != v.gen {
			return v, nil
		}
		v.loading = false
		if msg.err != nil {
			v.warning = "Could not load the day's calendar: " + msg.err.Error()
			return v, nil
		}
		v.warning = ""
		v.skipped = msg.av.SkippedEvents
		session.SetSlots(msg.av.Slots)
		v.cursor = 0
		return v, nil

	case dayChangedMsg:
		session.SetDay(msg.day)
		v.gen++
		v.loading = true
		return v, v.loadAvailability(v.gen)

	case commitDoneMsg:
		v.committing = false
		v.result = msg.result
		v.commitErr = msg.err
		return v, nil

	case tea.KeyMsg:
		v.notice = ""

		if v.result != nil || v.commitErr != nil {
			return v, requestQuit()
		}
		if v.loading || v.committing {
			return v, nil
		}

		if session.Step() == schedule.StepDone {
			if msg.String() == "enter" {
				return v, v.commit()
			}
			return v, nil
		}

		placements := session.CurrentPlacements()
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(placements)-1 {
				v.cursor++
			}
		case "d":
			return v, pushView(newDayPickerForm(v.state))
		case "enter":
			if len(placements) == 0 {
				v.notice = "No free slot fits this subtask. Change the day or go back."
				return v, nil
			}
			if err := session.AssignCurrent(placements[v.cursor]); err != nil {
				v.notice = err.Error()
				return v, nil
			}
			v.cursor = 0
		}
	}
	return v, nil
}

func (v *planningView) commit() tea.Cmd {
	session := v.state.Session
	app := v.state.App

	if err := session.Submit(); err != nil {
		v.notice = err.Error()
		return nil
	}
	v.committing = true

	req := contract.CommitRequest{
		TaskName:   session.TaskName,
		CourseName: session.CourseName,
		Day:        session.Day(),
	}
	for _, a := range session.Assignments() {
		req.Entries = append(req.Entries, domain.PlanEntry{
			Title:        a.Subtask.Title,
			EstimatedMin: a.Subtask.EstimatedMin,
			Source:       a.Subtask.Source,
			SlotStart:    a.Placement.Start,
			SlotEnd:      a.Placement.End,
		})
	}

	return func() tea.Msg {
		result, err := app.Plans.Commit(context.Background(), req)
		return commitDoneMsg{result: result, err: err}
	}
}

func (v *planningView) View() string {
	session := v.state.Session

	switch {
	case v.committing:
		return "\n  " + formatter.Dim("Saving the plan...")
	case v.commitErr != nil:
		return "\n  " + formatter.StyleRed.Render("Commit failed: "+v.commitErr.Error()) +
			"\n\n  " + formatter.Dim("Press any key to exit.") + "\n"
	case v.result != nil:
		return "\n" + formatter.FormatCommitResult(v.result) +
			"\n  " + formatter.Dim("Press any key to exit.") + "\n"
	case v.loading:
		return "\n  " + formatter.Dim("Loading free slots for "+formatter.HumanDate(session.Day())+"...")
	}

	var b strings.Builder
	b.WriteString("\n  " + formatter.Bold(formatter.HumanDate(session.Day())) + "\n")
	if v.warning != "" {
		b.WriteString("  " + formatter.StyleYellow.Render(v.warning) + "\n")
	}
	if v.skipped > 0 {
		b.WriteString("  " + formatter.StyleYellow.Render(
			fmt.Sprintf("%d calendar events had no usable times and were ignored.", v.skipped)) + "\n")
	}
	b.WriteString("\n")

	if session.Step() == schedule.StepDone {
		v.renderSummary(&b)
		return b.String()
	}

	current := session.Current()
	if current == nil {
		b.WriteString("  " + formatter.Dim("Nothing left to schedule.") + "\n")
		return b.String()
	}

	done := len(session.Assignments())
	total := done + remainingCount(session)
	b.WriteString(fmt.Sprintf("  Scheduling %s %s  %s\n\n",
		formatter.Bold(current.Title),
		formatter.Dim("("+formatter.FormatMinutes(current.EstimatedMin)+")"),
		formatter.Dim(fmt.Sprintf("%d of %d", done+1, total))))

	placements := session.CurrentPlacements()
	if len(placements) == 0 {
		b.WriteString("  " + formatter.StyleRed.Render("No free slot fits this subtask.") + "\n")
		b.WriteString("  " + formatter.Dim("Press 'd' to pick another day, or esc to reselect subtasks.") + "\n")
	}
	for i, p := range placements {
		cursor := "  "
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
		}
		b.WriteString(fmt.Sprintf("%s%s\n", cursor, formatter.ClockRange(p.Start, p.End)))
	}

	if v.notice != "" {
		b.WriteString("\n  " + formatter.StyleYellow.Render(v.notice) + "\n")
	}
	return b.String()
}

func (v *planningView) renderSummary(b *strings.Builder) {
	session := v.state.Session
	b.WriteString("  " + formatter.Bold("All subtasks placed") + "\n\n")
	for _, a := range session.Assignments() {
		b.WriteString(fmt.Sprintf("  %s  %s %s\n",
			formatter.ClockRange(a.Placement.Start, a.Placement.End),
			a.Subtask.Title,
			formatter.Dim(formatter.FormatMinutes(a.Subtask.EstimatedMin))))
	}
	b.WriteString("\n  " + formatter.StyleGreen.Render("Press enter to commit the plan.") + "\n")
}

func remainingCount(s *schedule.Session) int {
	n := 0
	for _, st := range s.Queue.Items() {
		if st.Selected && !st.Scheduled {
			n++
		}
	}
	return n
}

// newDayPickerForm builds the change-day form. The new date takes
// effect through dayChangedMsg so the planning view can invalidate any
// in-flight availability fetch.
func newDayPickerForm(state *SharedState) View {
	var result string
	form := wizardPickDay(state.Session.Day(), &result)

	done := func() tea.Cmd {
		return func() tea.Msg {
			if result == "" {
				return nil
			}
			day, err := time.ParseInLocation("2006-01-02", result, state.Session.Day().Location())
			if err != nil {
				return nil
			}
			return dayChangedMsg{day: day}
		}
	}

	return newWizardView(state, "Change day", form, done)
}
