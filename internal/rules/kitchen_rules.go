package rules

import (
	"strings"
	"time"

	"github.com/edsr/vigilo/internal/model"
)

// KitchenAbandonDetector flags cooking left unattended. A kitchen
// temperature rise stands in for a burner being turned on; the rise's actor
// is then tracked through their zone moves until the temperature falls
// again. Time spent out of the kitchen while the temperature stays up counts
// against the ceiling, across multiple departures.
type KitchenAbandonDetector struct{}

// NewKitchenAbandonDetector creates the kitchen-abandonment detector.
func NewKitchenAbandonDetector() *KitchenAbandonDetector {
	return &KitchenAbandonDetector{}
}

func (d *KitchenAbandonDetector) Name() string { return "kitchen-abandon" }

func (d *KitchenAbandonDetector) Detect(in Input) []model.Finding {
	events := in.Situation.Events()
	temps := kitchenTemperatures(events)
	if len(temps) < 2 {
		return nil
	}

	var findings []model.Finding
	for k := 1; k < len(temps); k++ {
		if temps[k].value <= temps[k-1].value {
			continue
		}
		rise := temps[k]
		cook := events[rise.idx].Executer()
		if cook == nil {
			continue
		}

		// The burner is considered off again at the first later decrease.
		end := len(events)
		run := rise.value
		for _, t := range temps[k+1:] {
			if t.value < run {
				end = t.idx
				break
			}
			run = t.value
		}

		if awayDuration(events, rise.idx, end, cook) > KitchenAbandonMax {
			findings = append(findings, newFinding(model.AbandoningKitchen, events[rise.idx].Position(), cook))
		}
	}
	return findings
}

type tempSample struct {
	idx   int
	value float64
}

// kitchenTemperatures collects the kitchen Temperature variable changes of a
// situation in order.
func kitchenTemperatures(events []model.Event) []tempSample {
	var temps []tempSample
	for i, ev := range events {
		vc, ok := ev.(*model.VarChangeEvent)
		if !ok || !zoneIs(vc.Change.Zone, "kitchen") {
			continue
		}
		if !strings.EqualFold(vc.Change.Variable, "Temperature") {
			continue
		}
		if v, ok := floatValue(vc.Change.Value); ok {
			temps = append(temps, tempSample{idx: i, value: v})
		}
	}
	return temps
}

// awayDuration sums the elapsed time between indices start and end during
// which the person was outside the kitchen. The person is assumed to be in
// the kitchen at the start (they just changed its temperature).
func awayDuration(events []model.Event, start, end int, person *model.Person) time.Duration {
	inKitchen := true
	var away time.Duration
	for k := start + 1; k < end && k < len(events); k++ {
		switch ev := events[k].(type) {
		case *model.MoveEvent:
			if ev.Executer() == person {
				inKitchen = zoneIs(ev.Zone, "kitchen")
			}
		case *model.TimeEvent:
			if !inKitchen {
				away += ev.Value
			}
		}
	}
	return away
}
