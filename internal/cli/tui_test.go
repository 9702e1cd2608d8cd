package cli

import (
	"context"
	"testing"
	"time"

	"github.com/aquilahq/aquila/internal/backend"
	"github.com/aquilahq/aquila/internal/domain"
	"github.com/aquilahq/aquila/internal/schedule"
	"github.com/aquilahq/aquila/internal/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newWizardDriver boots the plan wizard against a stub backend and
// drains the initial suggestion fetch.
func newWizardDriver(t *testing.T, app *App) (*teatest.Driver, *schedule.Session) {
	t.Helper()
	session := schedule.NewSession("Essay draft", "History 101", testDay(), app.Window)
	d := teatest.New(t, newAppModel(app, session), teatest.WithSize(100, 40))
	d.DrainInit()
	return d, session
}

func wizardStub() *stubBackend {
	return &stubBackend{
		suggestions: []backend.SubtaskSuggestion{
			{Title: "Outline", EstimatedTime: 30},
			{Title: "Write intro", EstimatedTime: 60},
		},
	}
}

func TestWizard_StartsWithSuggestions(t *testing.T) {
	app := testApp(t, wizardStub())
	d, session := newWizardDriver(t, app)

	require.Equal(t, 2, session.Queue.Len())
	assert.Contains(t, d.View(), "Outline")
	assert.Contains(t, d.View(), "Write intro")
	assert.Contains(t, d.View(), "Subtasks")
}

func TestWizard_SuggestionFailureDegradesToManualEntry(t *testing.T) {
	app := testApp(t, &stubBackend{suggestErr: backend.ErrUnavailable})
	d, session := newWizardDriver(t, app)

	assert.Equal(t, 0, session.Queue.Len())
	assert.Contains(t, d.View(), "Suggestions unavailable")
}

func TestWizard_ToggleAndContinueToPlanning(t *testing.T) {
	app := testApp(t, wizardStub())
	d, session := newWizardDriver(t, app)

	d.PressKey(' ') // select Outline
	require.Len(t, session.Queue.Selected(), 1)

	d.PressEnter()
	require.Equal(t, schedule.StepPlanning, session.Step())
	// Availability fetch completed synchronously; grid is installed.
	require.Len(t, session.Slots(), 16)
	assert.Contains(t, d.View(), "Scheduling")
	assert.Contains(t, d.View(), "Outline")
	assert.Contains(t, d.View(), "09:00")
}

func TestWizard_ContinueWithoutSelectionIsBlocked(t *testing.T) {
	app := testApp(t, wizardStub())
	d, session := newWizardDriver(t, app)

	d.PressEnter()
	assert.Equal(t, schedule.StepEstimation, session.Step())
	assert.Contains(t, d.View(), "Select at least one subtask")
}

func TestWizard_AssignCommitAndPersist(t *testing.T) {
	stub := wizardStub()
	app := testApp(t, stub)
	d, session := newWizardDriver(t, app)

	d.PressKey(' ')
	d.PressEnter() // to planning
	d.PressEnter() // assign first placement to Outline
	require.Equal(t, schedule.StepDone, session.Step())
	assert.Contains(t, d.View(), "All subtasks placed")

	d.PressEnter() // commit
	require.Equal(t, schedule.StepSubmitted, session.Step())
	assert.Contains(t, d.View(), "committed")
	require.Len(t, stub.syncedWith, 1)

	plans, err := app.Plans.History(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "Essay draft", plans[0].TaskName)
	assert.Equal(t, domain.PlanSynced, plans[0].Status)
	require.Len(t, plans[0].Entries, 1)
	assert.Equal(t, "Outline", plans[0].Entries[0].Title)

	// Any key after the confirmation leaves the wizard.
	d.PressEnter()
	assert.True(t, d.Quitting)
}

func TestWizard_SyncFailureShowsPendingSync(t *testing.T) {
	stub := wizardStub()
	stub.syncErr = backend.ErrUnavailable
	app := testApp(t, stub)
	d, _ := newWizardDriver(t, app)

	d.PressKey(' ')
	d.PressEnter()
	d.PressEnter()
	d.PressEnter() // commit

	assert.Contains(t, d.View(), "saved locally")

	plans, err := app.Plans.History(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, domain.PlanPendingSync, plans[0].Status)
}

func TestWizard_EscFromPlanningReturnsToEstimation(t *testing.T) {
	app := testApp(t, wizardStub())
	d, session := newWizardDriver(t, app)

	d.PressKey(' ')
	d.PressEnter()
	require.Equal(t, schedule.StepPlanning, session.Step())

	d.PressEsc()
	assert.Equal(t, schedule.StepEstimation, session.Step())
	assert.Contains(t, d.View(), "selected")
}

func TestWizard_EscAtRootQuits(t *testing.T) {
	app := testApp(t, wizardStub())
	d, _ := newWizardDriver(t, app)

	d.PressEsc()
	assert.True(t, d.Quitting)
}

func TestWizard_CtrlCQuits(t *testing.T) {
	app := testApp(t, wizardStub())
	d, _ := newWizardDriver(t, app)

	d.PressCtrlC()
	assert.True(t, d.Quitting)
}

func TestWizard_CustomSubtaskFormOpensAndApplies(t *testing.T) {
	app := testApp(t, wizardStub())
	d, session := newWizardDriver(t, app)

	d.PressKey('a')
	assert.Contains(t, d.View(), "Subtask")

	// Fill the form through its keyboard path: title, then minutes.
	d.Type("Flashcards")
	d.PressEnter()
	d.Type("25")
	d.PressEnter()

	items := session.Queue.Items()
	require.Len(t, items, 3)
	custom := items[2]
	assert.Equal(t, "Flashcards", custom.Title)
	assert.Equal(t, 25, custom.EstimatedMin)
	assert.Equal(t, domain.SourceCustom, custom.Source)
	assert.True(t, custom.Selected)
}

func TestWizard_EscCancelsCustomSubtaskForm(t *testing.T) {
	app := testApp(t, wizardStub())
	d, session := newWizardDriver(t, app)

	d.PressKey('a')
	d.Type("Abandoned")
	d.PressEsc()

	assert.Equal(t, 2, session.Queue.Len())
	assert.Equal(t, schedule.StepEstimation, session.Step())
}

func TestWizard_ChangeDayRefetchesAvailability(t *testing.T) {
	day := testDay()
	stub := wizardStub()
	stub.events = []domain.Event{
		{Summary: "Lecture", Start: day.Add(9 * time.Hour), End: day.Add(17 * time.Hour)},
	}
	app := testApp(t, stub)
	d, session := newWizardDriver(t, app)

	d.PressKey(' ')
	d.PressEnter()
	assert.Contains(t, d.View(), "No free slot fits this subtask")

	// Free up the calendar and move to the next day.
	stub.events = nil
	d.PressKey('d')
	d.Type("2026-04-21")
	d.PressEnter()

	assert.Equal(t, "2026-04-21", session.Day().Format("2006-01-02"))
	assert.Contains(t, d.View(), "09:00")
}
