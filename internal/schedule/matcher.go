package schedule

import (
	"time"

	"github.com/aquilahq/aquila/internal/contract"
	"github.com/aquilahq/aquila/internal/domain"
)

// ValidPlacements returns every start position on the grid whose
// contiguous run of available slots covers durationMin, in start-time
// order. A duration is rounded up to whole slots, so a 45-minute
// subtask consumes two 30-minute slots and its placement end reflects
// that. An empty result means the day has no opening for the duration.
func ValidPlacements(slots []domain.TimeSlot, durationMin int, w Window) []contract.Placement {
	if durationMin <= 0 || len(slots) == 0 {
		return nil
	}

	slotsNeeded := (durationMin + w.SlotMin - 1) / w.SlotMin

	var placements []contract.Placement
	for i := range slots {
		// The duration must finish inside the window.
		offsetMin := i * w.SlotMin
		if offsetMin+durationMin > w.TotalMin() {
			break
		}
		if i+slotsNeeded > len(slots) {
			break
		}

		fits := true
		for j := i; j < i+slotsNeeded; j++ {
			if !slots[j].Available {
				fits = false
				break
			}
		}
		if !fits {
			continue
		}

		placements = append(placements, contract.Placement{
			Start: slots[i].Start,
			End:   slots[i].Start.Add(time.Duration(slotsNeeded*w.SlotMin) * time.Minute),
		})
	}
	return placements
}
