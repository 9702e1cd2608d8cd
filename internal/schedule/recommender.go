package schedule

import (
	"github.com/aquilahq/aquila/internal/contract"
	"github.com/aquilahq/aquila/internal/domain"
)

// RecommendAssignments walks the subtasks in queue order and pairs each
// with the next available slot on the grid. A single cursor is carried
// through the fold, so no slot is handed out twice and the cursor never
// rewinds; once the grid is exhausted the remaining subtasks get a nil
// slot. First-come-first-served only — no duration matching. Slots
// shorter than the estimate are flagged TightFit instead.
func RecommendAssignments(subtasks []domain.Subtask, slots []domain.TimeSlot) []contract.Recommendation {
	recs := make([]contract.Recommendation, 0, len(subtasks))

	cursor := 0
	for _, st := range subtasks {
		rec := contract.Recommendation{
			SubtaskID:    st.ID,
			Title:        st.Title,
			EstimatedMin: st.EstimatedMin,
		}

		for cursor < len(slots) && !slots[cursor].Available {
			cursor++
		}
		if cursor < len(slots) {
			slot := slots[cursor]
			rec.Slot = &slot
			rec.TightFit = st.EstimatedMin > slot.Minutes()
			cursor++
		}

		recs = append(recs, rec)
	}
	return recs
}
