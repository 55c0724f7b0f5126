package rules

import (
	"github.com/edsr/vigilo/internal/model"
)

// MainDoorDetector flags the main door staying open past its ceiling. Only
// the door located in the configured main-door zone is considered.
type MainDoorDetector struct{}

// NewMainDoorDetector creates the main-door detector.
func NewMainDoorDetector() *MainDoorDetector {
	return &MainDoorDetector{}
}

func (d *MainDoorDetector) Name() string { return "main-door" }

func (d *MainDoorDetector) Detect(in Input) []model.Finding {
	if in.MainDoor == "" {
		return nil
	}
	events := in.Situation.Events()
	var findings []model.Finding

	for i, ev := range events {
		open, ok := ev.(*model.PropertyChangeEvent)
		if !ok || !isOpenedProperty(open.Changed.Property) || !boolValue(open.Changed.Value) {
			continue
		}
		if classify(open.Device) != classDoor {
			continue
		}
		zone := open.Device.ZoneAt(open.Position())
		if zone == nil || zone.Name != in.MainDoor {
			continue
		}

		duration := elapsedAfter(events, i)
		if close := findDoorClose(events, i, open.Device); close >= 0 {
			duration = elapsedBetween(events, i, close)
		}
		if duration > MainDoorMaxOpen {
			findings = append(findings, newFinding(model.MainDoorLeftOpen, open.Position(), open.Executer()))
		}
	}
	return findings
}

// findDoorClose returns the index of the first close for the door after
// index i, or -1.
func findDoorClose(events []model.Event, i int, dev *model.Device) int {
	for j := i + 1; j < len(events); j++ {
		pc, ok := events[j].(*model.PropertyChangeEvent)
		if !ok || pc.Device != dev {
			continue
		}
		if isOpenedProperty(pc.Changed.Property) && !boolValue(pc.Changed.Value) {
			return j
		}
	}
	return -1
}
