package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/aquilahq/aquila/internal/backend"
	"github.com/aquilahq/aquila/internal/contract"
	"github.com/aquilahq/aquila/internal/db"
	"github.com/aquilahq/aquila/internal/domain"
	"github.com/aquilahq/aquila/internal/repository"
	"github.com/aquilahq/aquila/internal/schedule"
	"github.com/aquilahq/aquila/internal/service"
	"github.com/aquilahq/aquila/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubBackend is a scriptable backend.Client for CLI tests.
type stubBackend struct {
	suggestions []backend.SubtaskSuggestion
	suggestErr  error

	events    []domain.Event
	skipped   int
	eventsErr error

	syncErr    error
	syncedWith []backend.EventWrite
}

func (b *stubBackend) SuggestSubtasks(ctx context.Context, taskName, courseName string) ([]backend.SubtaskSuggestion, error) {
	return b.suggestions, b.suggestErr
}

func (b *stubBackend) DayEvents(ctx context.Context, day time.Time) ([]domain.Event, int, error) {
	return b.events, b.skipped, b.eventsErr
}

func (b *stubBackend) SyncPlan(ctx context.Context, calendarID string, events []backend.EventWrite) (int, error) {
	if b.syncErr != nil {
		return 0, b.syncErr
	}
	b.syncedWith = events
	return len(events), nil
}

// testApp wires a full App over an in-memory DB and a stub backend.
func testApp(t *testing.T, stub *stubBackend) *App {
	t.Helper()
	database := testutil.NewTestDB(t)

	planRepo := repository.NewSQLitePlanRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)
	window := schedule.DefaultWindow()

	return &App{
		Plans:         service.NewPlanService(stub, planRepo, uow, window, "primary"),
		Window:        window,
		IsInteractive: func() bool { return false },
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func testDay() time.Time {
	return time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC)
}

// commitPlan pushes one two-entry plan through the service so the
// reporting commands have data.
func commitPlan(t *testing.T, app *App) *contract.CommitResult {
	t.Helper()
	day := testDay()
	res, err := app.Plans.Commit(context.Background(), contract.CommitRequest{
		TaskName:   "Essay draft",
		CourseName: "History 101",
		Day:        day,
		Entries: []domain.PlanEntry{
			{
				Title:        "Outline",
				EstimatedMin: 30,
				Source:       domain.SourceRecommended,
				SlotStart:    day.Add(9 * time.Hour),
				SlotEnd:      day.Add(9*time.Hour + 30*time.Minute),
			},
			{
				Title:        "Write intro",
				EstimatedMin: 60,
				Source:       domain.SourceCustom,
				SlotStart:    day.Add(10 * time.Hour),
				SlotEnd:      day.Add(11 * time.Hour),
			},
		},
	})
	require.NoError(t, err)
	return res
}

// --- plan command ---

func TestPlanCmd_RequiresTaskArgument(t *testing.T) {
	app := testApp(t, &stubBackend{})

	_, err := executeCmd(t, app, "plan", "--course", "History")
	require.Error(t, err)
}

func TestPlanCmd_RequiresCourseFlag(t *testing.T) {
	app := testApp(t, &stubBackend{})

	_, err := executeCmd(t, app, "plan", "Essay draft")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "course")
}

func TestPlanCmd_RejectsMalformedDay(t *testing.T) {
	app := testApp(t, &stubBackend{})

	_, err := executeCmd(t, app, "plan", "Essay", "--course", "History", "--day", "20-04-2026")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --day")
}

func TestPlanCmd_BatchPrintsRecommendations(t *testing.T) {
	stub := &stubBackend{
		suggestions: []backend.SubtaskSuggestion{
			{Title: "Outline", EstimatedTime: 30},
			{Title: "Write intro", EstimatedTime: 60},
		},
	}
	app := testApp(t, stub)

	output, err := executeCmd(t, app, "plan",
		"Essay draft", "--course", "History 101", "--day", "2026-04-20")
	require.NoError(t, err)

	assert.Contains(t, output, "Essay draft")
	assert.Contains(t, output, "Outline")
	assert.Contains(t, output, "Write intro")
	// Batch mode never persists anything.
	plans, err := app.Plans.PlansForDay(context.Background(), testDay())
	require.NoError(t, err)
	assert.Empty(t, plans)
}

func TestPlanCmd_BatchReportsSkippedEvents(t *testing.T) {
	stub := &stubBackend{
		suggestions: []backend.SubtaskSuggestion{{Title: "Outline", EstimatedTime: 30}},
		skipped:     2,
	}
	app := testApp(t, stub)

	output, err := executeCmd(t, app, "plan",
		"Essay", "--course", "History", "--day", "2026-04-20")
	require.NoError(t, err)
	assert.Contains(t, output, "2 calendar events")
}

func TestPlanCmd_BatchDegradesWhenSuggestionsFail(t *testing.T) {
	stub := &stubBackend{suggestErr: backend.ErrUnavailable}
	app := testApp(t, stub)

	output, err := executeCmd(t, app, "plan",
		"Essay", "--course", "History", "--day", "2026-04-20")
	require.NoError(t, err)
	assert.Contains(t, output, "Subtask suggestions unavailable")
	assert.Contains(t, output, "No subtasks to schedule")
}

// --- slots command ---

func TestSlotsCmd_ShowsGridAndCommittedPlans(t *testing.T) {
	day := testDay()
	stub := &stubBackend{
		events: []domain.Event{
			{Summary: "Lecture", Start: day.Add(10 * time.Hour), End: day.Add(11 * time.Hour)},
		},
	}
	app := testApp(t, stub)
	commitPlan(t, app)

	output, err := executeCmd(t, app, "slots", "--day", "2026-04-20")
	require.NoError(t, err)

	assert.Contains(t, output, "09:00")
	assert.Contains(t, output, "free")
	assert.Contains(t, output, "busy")
	assert.Contains(t, output, "Essay draft")
}

func TestSlotsCmd_DurationListsPlacements(t *testing.T) {
	day := testDay()
	stub := &stubBackend{
		events: []domain.Event{
			// Only 09:00-10:00 stays free for a one-hour task.
			{Summary: "Seminar", Start: day.Add(10 * time.Hour), End: day.Add(17 * time.Hour)},
		},
	}
	app := testApp(t, stub)

	output, err := executeCmd(t, app, "slots", "--day", "2026-04-20", "--duration", "60")
	require.NoError(t, err)
	assert.Contains(t, output, "Placements for 1h")
	assert.Contains(t, output, "09:00–10:00")
	assert.NotContains(t, output, "09:30–10:30")
}

func TestSlotsCmd_RejectsNonPositiveDuration(t *testing.T) {
	app := testApp(t, &stubBackend{})

	_, err := executeCmd(t, app, "slots", "--day", "2026-04-20", "--duration", "-5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duration")
}

func TestSlotsCmd_BackendError(t *testing.T) {
	app := testApp(t, &stubBackend{eventsErr: backend.ErrUnavailable})

	_, err := executeCmd(t, app, "slots", "--day", "2026-04-20")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load availability")
}

// --- history command ---

func TestHistoryCmd_Empty(t *testing.T) {
	app := testApp(t, &stubBackend{})

	output, err := executeCmd(t, app, "history")
	require.NoError(t, err)
	assert.Contains(t, output, "No plans")
}

func TestHistoryCmd_ListsCommittedPlans(t *testing.T) {
	app := testApp(t, &stubBackend{})
	res := commitPlan(t, app)

	output, err := executeCmd(t, app, "history")
	require.NoError(t, err)
	assert.Contains(t, output, "Essay draft")
	assert.Contains(t, output, "History 101")
	assert.Contains(t, output, res.PlanID[:8])
}
