package rules

import (
	"time"

	"github.com/edsr/vigilo/internal/model"
)

// MicturitionDetector flags situations long enough that a bathroom visit
// would be expected but none happened. The rule models a single-occupant
// household; with several persons it cannot attribute the absence of a
// visit and stays silent.
type MicturitionDetector struct{}

// NewMicturitionDetector creates the per-situation bathroom detector.
func NewMicturitionDetector() *MicturitionDetector {
	return &MicturitionDetector{}
}

func (d *MicturitionDetector) Name() string { return "micturition" }

func (d *MicturitionDetector) Detect(in Input) []model.Finding {
	if len(in.Persons) != 1 {
		return nil
	}
	events := in.Situation.Events()
	if situationSpan(events) <= BathroomCheckSpan {
		return nil
	}
	if countBathroomMoves(events) > 0 {
		return nil
	}
	return []model.Finding{
		newFinding(model.IrregularMicturition, in.Situation.First().Position(), in.Persons[0]),
	}
}

// situationSpan is the total elapsed time of a situation's events.
func situationSpan(events []model.Event) time.Duration {
	return elapsedBefore(events, len(events))
}

// countBathroomMoves counts person moves into bathroom zones.
func countBathroomMoves(events []model.Event) int {
	n := 0
	for _, ev := range events {
		if move, ok := ev.(*model.MoveEvent); ok && zoneIs(move.Zone, "bathroom") {
			n++
		}
	}
	return n
}
