package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/aquilahq/aquila/internal/cli/formatter"
	"github.com/aquilahq/aquila/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// suggestionsLoadedMsg carries the backend's subtask suggestions.
type suggestionsLoadedMsg struct {
	subtasks []domain.Subtask
	err      error
}

// estimationView is the first wizard step: pick which subtasks to
// schedule. Suggested subtasks arrive unselected; custom ones are
// selected on entry.
type estimationView struct {
	state   *SharedState
	cursor  int
	loading bool
	warning string
	notice  string
}

func newEstimationView(state *SharedState) *estimationView {
	return &estimationView{state: state, loading: true}
}

func (v *estimationView) ID() ViewID    { return ViewEstimation }
func (v *estimationView) Title() string { return "Subtasks" }

func (v *estimationView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("space"), key.WithHelp("space", "toggle")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add custom")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete custom")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "continue")),
	}
}

func (v *estimationView) Init() tea.Cmd {
	return v.loadSuggestions()
}

func (v *estimationView) loadSuggestions() tea.Cmd {
	app := v.state.App
	session := v.state.Session
	return func() tea.Msg {
		subtasks, err := app.Plans.SuggestSubtasks(context.Background(), session.TaskName, session.CourseName)
		return suggestionsLoadedMsg{subtasks: subtasks, err: err}
	}
}

func (v *estimationView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	session := v.state.Session

	switch msg := msg.(type) {
	case suggestionsLoadedMsg:
		v.loading = false
		if msg.err != nil {
			// Degrade to manual entry; the wizard stays usable.
			v.warning = "Suggestions unavailable. Add subtasks manually with 'a'."
			return v, nil
		}
		for _, st := range msg.subtasks {
			session.Queue.AddRecommended(st.Title, st.EstimatedMin)
		}
		return v, nil

	case tea.KeyMsg:
		v.notice = ""
		items := session.Queue.Items()

		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(items)-1 {
				v.cursor++
			}
		case " ":
			if v.cursor < len(items) {
				if err := session.Queue.Toggle(items[v.cursor].ID); err != nil {
					v.notice = err.Error()
				}
			}
		case "a":
			return v, pushView(newCustomSubtaskForm(v.state))
		case "d":
			if v.cursor < len(items) {
				if err := session.Queue.RemoveCustom(items[v.cursor].ID); err != nil {
					v.notice = "Only custom subtasks can be removed."
				} else if v.cursor >= session.Queue.Len() && v.cursor > 0 {
					v.cursor--
				}
			}
		case "enter":
			if len(session.Queue.Selected()) == 0 {
				v.notice = "Select at least one subtask first."
				return v, nil
			}
			session.ContinueToPlanning()
			return v, pushView(newPlanningView(v.state))
		}
	}
	return v, nil
}

func (v *estimationView) View() string {
	session := v.state.Session

	if v.loading {
		return "\n  " + formatter.Dim("Asking for subtask suggestions...")
	}

	var b strings.Builder
	b.WriteString("\n  " + formatter.Bold(session.TaskName) +
		"  " + formatter.Dim("("+session.CourseName+")") + "\n\n")

	if v.warning != "" {
		b.WriteString("  " + formatter.StyleYellow.Render(v.warning) + "\n\n")
	}

	items := session.Queue.Items()
	if len(items) == 0 {
		b.WriteString("  " + formatter.Dim("No subtasks yet. Press 'a' to add one.") + "\n")
	}

	for i, st := range items {
		cursor := "  "
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
		}
		check := formatter.Dim("[ ]")
		if st.Selected {
			check = formatter.StyleGreen.Render("[x]")
		}
		b.WriteString(fmt.Sprintf("%s%s %s  %s %s\n",
			cursor, check, st.Title,
			formatter.Dim(formatter.FormatMinutes(st.EstimatedMin)),
			formatter.SourceBadge(st.Source)))
	}

	b.WriteString(fmt.Sprintf("\n  %s selected, %s total\n",
		formatter.Bold(strconv.Itoa(len(session.Queue.Selected()))),
		formatter.Bold(formatter.FormatMinutes(session.Queue.TotalEstimatedMin()))))

	if v.notice != "" {
		b.WriteString("  " + formatter.StyleYellow.Render(v.notice) + "\n")
	}

	return b.String()
}

// newCustomSubtaskForm builds the add-custom-subtask form. The title is
// recorded on the queue before the duration, so a cancelled duration
// still leaves a well-formed entry pending its estimate.
func newCustomSubtaskForm(state *SharedState) View {
	var title, minutes string

	form := wizardCustomSubtask(&title, &minutes)

	done := func() tea.Cmd {
		return func() tea.Msg {
			// Validation already rejected empty titles and bad minutes.
			session := state.Session
			if _, err := session.Queue.AddCustom(title); err != nil {
				return nil
			}
			min, _ := strconv.Atoi(minutes)
			_ = session.Queue.SetLastCustomDuration(min)
			return nil
		}
	}

	return newWizardView(state, "Add subtask", form, done)
}
