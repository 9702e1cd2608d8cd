package formatter

import (
	"testing"
	"time"

	"github.com/aquilahq/aquila/internal/contract"
	"github.com/aquilahq/aquila/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatRecommendations_TightFitAndMiss(t *testing.T) {
	day := reportDay()
	fitted := slot(day, 9, 0, true)
	recs := []contract.Recommendation{
		{Title: "Outline", EstimatedMin: 30, Slot: &fitted},
		{Title: "Deep read", EstimatedMin: 45, Slot: &fitted, TightFit: true},
		{Title: "Write up", EstimatedMin: 60, Slot: nil},
	}

	out := FormatRecommendations("Essay draft", recs)
	assert.Contains(t, out, "Essay draft")
	assert.Contains(t, out, "09:00–09:30")
	assert.Contains(t, out, "tight fit")
	assert.Contains(t, out, "no free slot")
}

func TestFormatRecommendations_Empty(t *testing.T) {
	out := FormatRecommendations("Essay", nil)
	assert.Contains(t, out, "No subtasks to schedule")
}

func TestFormatCommitResult(t *testing.T) {
	synced := FormatCommitResult(&contract.CommitResult{
		PlanID: "abcdef1234567890", Status: domain.PlanSynced, SyncedEvents: 3,
	})
	assert.Contains(t, synced, "3 event(s)")

	pending := FormatCommitResult(&contract.CommitResult{
		PlanID: "abcdef1234567890", Status: domain.PlanPendingSync,
	})
	assert.Contains(t, pending, "pending sync")
}

func TestFormatHistory(t *testing.T) {
	day := reportDay()
	plans := []*domain.Plan{{
		ID:         "1111111111111111",
		TaskName:   "Lab report",
		CourseName: "Chemistry",
		Day:        day,
		Status:     domain.PlanSynced,
		CreatedAt:  day.Add(18 * time.Hour),
		Entries: []domain.PlanEntry{{
			Title:        "Results section",
			EstimatedMin: 60,
			Source:       domain.SourceCustom,
			SlotStart:    day.Add(10 * time.Hour),
			SlotEnd:      day.Add(11 * time.Hour),
		}},
	}}

	out := FormatHistory(plans)
	assert.Contains(t, out, "2026-04-20")
	assert.Contains(t, out, "Lab report")
	assert.Contains(t, out, "Results section")
	assert.Contains(t, out, "custom")

	assert.Contains(t, FormatHistory(nil), "No plans committed yet")
}
