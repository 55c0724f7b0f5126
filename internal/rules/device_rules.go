package rules

import (
	"time"

	"github.com/edsr/vigilo/internal/model"
)

// DeviceLeftOnDetector flags lights, heaters and coolers that stay on past
// their ceiling, and lights switched on during the night window.
type DeviceLeftOnDetector struct{}

// NewDeviceLeftOnDetector creates the left-on detector.
func NewDeviceLeftOnDetector() *DeviceLeftOnDetector {
	return &DeviceLeftOnDetector{}
}

func (d *DeviceLeftOnDetector) Name() string { return "device-left-on" }

// Detect pairs each power-on with its closing power-off inside the same
// situation. A device never switched off accrues time until the situation
// ends. Comparison against the ceiling is strict: staying on for exactly the
// ceiling duration is acceptable.
func (d *DeviceLeftOnDetector) Detect(in Input) []model.Finding {
	events := in.Situation.Events()
	var findings []model.Finding

	for i, ev := range events {
		on, ok := ev.(*model.PropertyChangeEvent)
		if !ok || !isPowerProperty(on.Changed.Property) || !boolValue(on.Changed.Value) {
			continue
		}

		var ceiling time.Duration
		var kind model.FindingKind
		switch classify(on.Device) {
		case classLight:
			ceiling, kind = LightMaxOn, model.LightExceededMaxOn
		case classHeater:
			ceiling, kind = ClimateMaxOn, model.HeaterExceededMaxOn
		case classCooler:
			ceiling, kind = ClimateMaxOn, model.CoolerExceededMaxOn
		default:
			continue
		}

		if classify(on.Device) == classLight && isNight(in.ClockAt(i)) {
			findings = append(findings, newFinding(model.LightsWrongTime, on.Position(), on.Executer()))
		}

		duration := elapsedAfter(events, i)
		if off := findPowerOff(events, i, on.Device); off >= 0 {
			duration = elapsedBetween(events, i, off)
		}
		if duration > ceiling {
			findings = append(findings, newFinding(kind, on.Position(), on.Executer()))
		}
	}
	return findings
}

// findPowerOff returns the index of the first power-off for the device after
// index i, or -1.
func findPowerOff(events []model.Event, i int, dev *model.Device) int {
	for j := i + 1; j < len(events); j++ {
		pc, ok := events[j].(*model.PropertyChangeEvent)
		if !ok || pc.Device != dev {
			continue
		}
		if isPowerProperty(pc.Changed.Property) && !boolValue(pc.Changed.Value) {
			return j
		}
	}
	return -1
}

// ClimateMisuseDetector flags heaters turned on in already-warm zones and
// coolers turned on in already-cold zones, regardless of how long they run.
type ClimateMisuseDetector struct{}

// NewClimateMisuseDetector creates the climate-misuse detector.
func NewClimateMisuseDetector() *ClimateMisuseDetector {
	return &ClimateMisuseDetector{}
}

func (d *ClimateMisuseDetector) Name() string { return "climate-misuse" }

func (d *ClimateMisuseDetector) Detect(in Input) []model.Finding {
	var findings []model.Finding
	for _, ev := range in.Situation.Events() {
		on, ok := ev.(*model.PropertyChangeEvent)
		if !ok || !isPowerProperty(on.Changed.Property) || !boolValue(on.Changed.Value) {
			continue
		}
		zone := on.Device.ZoneAt(on.Position())
		if zone == nil {
			continue
		}
		temp, ok := floatValue(zone.Variables["Temperature"])
		if !ok {
			continue
		}
		switch classify(on.Device) {
		case classHeater:
			if temp >= HeaterComfortKelvin {
				findings = append(findings, newFinding(model.HeaterNotNeeded, on.Position(), on.Executer()))
			}
		case classCooler:
			if temp <= CoolerComfortKelvin {
				findings = append(findings, newFinding(model.CoolerNotNeeded, on.Position(), on.Executer()))
			}
		}
	}
	return findings
}
