package schedule

import (
	"testing"
	"time"

	"github.com/aquilahq/aquila/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDay = time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC)

func at(t *testing.T, hour, min int) time.Time {
	t.Helper()
	return time.Date(2026, 4, 20, hour, min, 0, 0, time.UTC)
}

func TestBuildDayGrid_CoversWindowWithoutGaps(t *testing.T) {
	grid := BuildDayGrid(testDay, DefaultWindow(), nil)

	require.Len(t, grid, 16)
	assert.Equal(t, at(t, 9, 0), grid[0].Start)
	assert.Equal(t, at(t, 17, 0), grid[15].End)

	for i, slot := range grid {
		assert.Equal(t, 30, slot.Minutes(), "slot %d width", i)
		assert.True(t, slot.Available, "slot %d should be free with no events", i)
		if i > 0 {
			assert.Equal(t, grid[i-1].End, slot.Start, "gap before slot %d", i)
		}
	}
}

func TestBuildDayGrid_EventOverlapMarksSlots(t *testing.T) {
	// [10:00, 10:45) blocks the 10:00 and 10:30 slots and nothing else.
	events := []domain.Event{
		{Summary: "Lecture", Start: at(t, 10, 0), End: at(t, 10, 45)},
	}

	grid := BuildDayGrid(testDay, DefaultWindow(), events)
	require.Len(t, grid, 16)

	for i, slot := range grid {
		switch i {
		case 2, 3: // 10:00–10:30, 10:30–11:00
			assert.False(t, slot.Available, "slot %d overlaps the event", i)
		default:
			assert.True(t, slot.Available, "slot %d does not overlap", i)
		}
	}
}

func TestBuildDayGrid_TouchingBoundariesStayAvailable(t *testing.T) {
	// End-exclusive semantics: an event ending exactly at a slot start
	// does not block that slot, and vice versa.
	events := []domain.Event{
		{Start: at(t, 9, 0), End: at(t, 9, 30)},
		{Start: at(t, 16, 30), End: at(t, 17, 0)},
	}

	grid := BuildDayGrid(testDay, DefaultWindow(), events)

	assert.False(t, grid[0].Available)
	assert.True(t, grid[1].Available, "09:30 slot starts where the event ends")
	assert.True(t, grid[14].Available, "16:00 slot ends where the event starts")
	assert.False(t, grid[15].Available)
}

func TestBuildDayGrid_EventSpanningWholeWindow(t *testing.T) {
	events := []domain.Event{
		{Start: at(t, 8, 0), End: at(t, 18, 0)},
	}

	grid := BuildDayGrid(testDay, DefaultWindow(), events)

	for i, slot := range grid {
		assert.False(t, slot.Available, "slot %d", i)
	}
}

func TestBuildDayGrid_Deterministic(t *testing.T) {
	events := []domain.Event{
		{Start: at(t, 11, 15), End: at(t, 12, 10)},
	}

	first := BuildDayGrid(testDay, DefaultWindow(), events)
	second := BuildDayGrid(testDay, DefaultWindow(), events)

	assert.Equal(t, first, second)
}

func TestWindowValidate(t *testing.T) {
	tests := []struct {
		name    string
		window  Window
		wantErr bool
	}{
		{"default", DefaultWindow(), false},
		{"zero slot width", Window{StartMin: 540, EndMin: 1020, SlotMin: 0}, true},
		{"end before start", Window{StartMin: 1020, EndMin: 540, SlotMin: 30}, true},
		{"uneven division", Window{StartMin: 540, EndMin: 1020, SlotMin: 45}, true},
		{"past midnight", Window{StartMin: 1380, EndMin: 1500, SlotMin: 30}, true},
		{"hour slots", Window{StartMin: 480, EndMin: 960, SlotMin: 60}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.window.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
