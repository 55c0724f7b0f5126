package rules

import (
	"github.com/edsr/vigilo/internal/model"
)

// SensorThresholdDetector flags direct property-value violations on safety
// sensors: gas concentrations, flood sensors and sirens. These rules have no
// temporal component.
type SensorThresholdDetector struct{}

// NewSensorThresholdDetector creates the threshold detector.
func NewSensorThresholdDetector() *SensorThresholdDetector {
	return &SensorThresholdDetector{}
}

func (d *SensorThresholdDetector) Name() string { return "sensor-threshold" }

func (d *SensorThresholdDetector) Detect(in Input) []model.Finding {
	var findings []model.Finding
	for _, ev := range in.Situation.Events() {
		pc, ok := ev.(*model.PropertyChangeEvent)
		if !ok {
			continue
		}
		switch classify(pc.Device) {
		case classCOSensor:
			// Threshold comparisons are inclusive.
			if v, ok := floatValue(pc.Changed.Value); ok && v >= COThreshold {
				findings = append(findings, newFinding(model.HighCO, pc.Position(), pc.Executer()))
			}
		case classCO2Sensor:
			if v, ok := floatValue(pc.Changed.Value); ok && v >= CO2Threshold {
				findings = append(findings, newFinding(model.HighCO2, pc.Position(), pc.Executer()))
			}
		case classFlood:
			if boolValue(pc.Changed.Value) {
				findings = append(findings, newFinding(model.FloodSensorProblem, pc.Position(), pc.Executer()))
			}
		case classSiren:
			if boolValue(pc.Changed.Value) {
				findings = append(findings, newFinding(model.SirenRinging, pc.Position(), pc.Executer()))
			}
		}
	}
	return findings
}
