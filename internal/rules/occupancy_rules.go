package rules

import (
	"time"

	"github.com/edsr/vigilo/internal/model"
)

// SedentarismDetector flags a person staying in the bedroom past the
// ceiling during daytime.
type SedentarismDetector struct{}

// NewSedentarismDetector creates the sedentarism detector.
func NewSedentarismDetector() *SedentarismDetector {
	return &SedentarismDetector{}
}

func (d *SedentarismDetector) Name() string { return "sedentarism" }

// Detect measures, for each move into the bedroom, the time until the same
// person's next move (or the situation's end). The stay is flagged only if
// it starts in daytime and stays within the daytime window; a long evening
// stay in the bedroom is ordinary sleep.
func (d *SedentarismDetector) Detect(in Input) []model.Finding {
	events := in.Situation.Events()
	var findings []model.Finding

	for i, ev := range events {
		move, ok := ev.(*model.MoveEvent)
		if !ok || !zoneIs(move.Zone, "bedroom") {
			continue
		}
		duration := stayDuration(events, i, move.Executer())
		if duration <= BedroomMaxStay {
			continue
		}
		start := in.ClockAt(i)
		if isDaytime(start) && start.Duration()+duration < nightStart {
			findings = append(findings, newFinding(model.NotOutOfRoom, move.Position(), move.Executer()))
		}
	}
	return findings
}

// AccidentDetector flags suspiciously long stays in rooms where immobility
// suggests an accident rather than rest: bathroom, kitchen, living room and
// hallway, each with its own ceiling.
type AccidentDetector struct{}

// NewAccidentDetector creates the accident detector.
func NewAccidentDetector() *AccidentDetector {
	return &AccidentDetector{}
}

func (d *AccidentDetector) Name() string { return "possible-accident" }

var accidentRooms = []struct {
	room    string
	ceiling time.Duration
	kind    model.FindingKind
}{
	{"bathroom", BathroomMaxStay, model.AccidentBathroom},
	{"kitchen", KitchenMaxStay, model.AccidentKitchen},
	{"livingroom", LivingRoomMaxStay, model.AccidentLivingRoom},
	{"hallway", HallwayMaxStay, model.AccidentHallway},
}

func (d *AccidentDetector) Detect(in Input) []model.Finding {
	events := in.Situation.Events()
	var findings []model.Finding

	for i, ev := range events {
		move, ok := ev.(*model.MoveEvent)
		if !ok {
			continue
		}
		for _, r := range accidentRooms {
			if !zoneIs(move.Zone, r.room) {
				continue
			}
			if stayDuration(events, i, move.Executer()) > r.ceiling {
				findings = append(findings, newFinding(r.kind, move.Position(), move.Executer()))
			}
			break
		}
	}
	return findings
}

// stayDuration measures the elapsed time from the move at index i until the
// same person's next move, or the end of the situation if they never move
// again.
func stayDuration(events []model.Event, i int, person *model.Person) time.Duration {
	for j := i + 1; j < len(events); j++ {
		if next, ok := events[j].(*model.MoveEvent); ok && next.Executer() == person {
			return elapsedBetween(events, i, j)
		}
	}
	return elapsedAfter(events, i)
}

// WanderingDetector flags prolonged presence-sensor activity in the
// late-night window.
type WanderingDetector struct{}

// NewWanderingDetector creates the wandering detector.
func NewWanderingDetector() *WanderingDetector {
	return &WanderingDetector{}
}

func (d *WanderingDetector) Name() string { return "wandering" }

func (d *WanderingDetector) Detect(in Input) []model.Finding {
	events := in.Situation.Events()
	var findings []model.Finding

	for i, ev := range events {
		on, ok := ev.(*model.PropertyChangeEvent)
		if !ok || classify(on.Device) != classPresence {
			continue
		}
		if !isPresenceProperty(on.Changed.Property) || !boolValue(on.Changed.Value) {
			continue
		}
		if !isLateNight(in.ClockAt(i)) {
			continue
		}

		duration := elapsedAfter(events, i)
		if off := findPresenceOff(events, i, on.Device); off >= 0 {
			duration = elapsedBetween(events, i, off)
		}
		if duration > WanderingMaxActive {
			findings = append(findings, newFinding(model.WanderingWrongTime, on.Position(), on.Executer()))
		}
	}
	return findings
}

// findPresenceOff returns the index of the sensor's first deactivation after
// index i, or -1.
func findPresenceOff(events []model.Event, i int, dev *model.Device) int {
	for j := i + 1; j < len(events); j++ {
		pc, ok := events[j].(*model.PropertyChangeEvent)
		if !ok || pc.Device != dev {
			continue
		}
		if isPresenceProperty(pc.Changed.Property) && !boolValue(pc.Changed.Value) {
			return j
		}
	}
	return -1
}
