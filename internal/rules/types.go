// Package rules evaluates the anomaly-detection rule battery over situation
// timelines. Detectors are pure functions of their input; the engine may run
// them concurrently across situations.
package rules

import (
	"strconv"
	"strings"
	"time"

	"github.com/edsr/vigilo/internal/behavior"
	"github.com/edsr/vigilo/internal/model"
	"github.com/google/uuid"
)

// Input provides one situation plus the temporal context a detector needs.
type Input struct {
	// Situation is the event run under analysis.
	Situation *model.Situation
	// Index is the situation's ordinal within the simulation.
	Index int
	// StartOffset is the simulation time already elapsed when the
	// situation begins.
	StartOffset time.Duration
	// Clock is the simulation's start time of day.
	Clock behavior.Clock
	// MainDoor is the normalized name of the configured main-door zone.
	MainDoor string
	// Persons are all occupants of the simulation.
	Persons []*model.Person
}

// ClockAt returns the clock-of-day at the event with the given index in the
// situation: start clock plus everything elapsed before it.
func (in Input) ClockAt(idx int) behavior.Clock {
	events := in.Situation.Events()
	return in.Clock.At(in.StartOffset + elapsedBefore(events, idx))
}

// Detector is one anomaly rule evaluated per situation.
type Detector interface {
	// Name identifies the detector in logs and metrics.
	Name() string
	// Detect scans the situation and returns zero or more findings.
	Detect(in Input) []model.Finding
}

// newFinding constructs a finding occurrence.
func newFinding(kind model.FindingKind, pos int, exec *model.Person) model.Finding {
	return model.Finding{
		UID:      uuid.NewString(),
		Position: pos,
		Executer: exec,
		Kind:     kind,
	}
}

// elapsedBefore sums the Time events strictly before index idx.
func elapsedBefore(events []model.Event, idx int) time.Duration {
	var total time.Duration
	for i := 0; i < idx && i < len(events); i++ {
		if t, ok := events[i].(*model.TimeEvent); ok {
			total += t.Value
		}
	}
	return total
}

// elapsedBetween sums the Time events strictly between indices i and j.
func elapsedBetween(events []model.Event, i, j int) time.Duration {
	var total time.Duration
	for k := i + 1; k < j && k < len(events); k++ {
		if t, ok := events[k].(*model.TimeEvent); ok {
			total += t.Value
		}
	}
	return total
}

// elapsedAfter sums the Time events strictly after index i, to the end of
// the situation.
func elapsedAfter(events []model.Event, i int) time.Duration {
	return elapsedBetween(events, i, len(events))
}

// isNight reports whether the clock falls in the 20:00:00-05:59:59 window.
func isNight(c behavior.Clock) bool {
	d := c.Duration()
	return d >= nightStart || d < nightEnd
}

// isLateNight reports whether the clock falls in the 00:00:00-05:59:59
// window.
func isLateNight(c behavior.Clock) bool {
	return c.Duration() < nightEnd
}

// isDaytime reports whether the clock falls in the 06:00:00-19:59:59 window.
func isDaytime(c behavior.Clock) bool {
	d := c.Duration()
	return d >= nightEnd && d < nightStart
}

// deviceClass buckets devices by their simulator type name.
type deviceClass int

const (
	classOther deviceClass = iota
	classLight
	classHeater
	classCooler
	classCOSensor
	classCO2Sensor
	classFlood
	classSiren
	classPresence
	classDoor
)

// classify maps a device type name to its class. Matching is permissive on
// the type string (iCasa uses names like "iCasa.BinaryLight",
// "iCasa.CO2GasSensor", "iCasa.DoorWindowSensor").
func classify(d *model.Device) deviceClass {
	t := behavior.Normalize(d.TypeName)
	switch {
	case strings.Contains(t, "co2") || strings.Contains(t, "carbondioxide"):
		return classCO2Sensor
	case strings.Contains(t, "cogas") || strings.Contains(t, "carbonmonoxide"):
		return classCOSensor
	case strings.Contains(t, "light"):
		return classLight
	case strings.Contains(t, "heater"):
		return classHeater
	case strings.Contains(t, "cooler"):
		return classCooler
	case strings.Contains(t, "flood"):
		return classFlood
	case strings.Contains(t, "siren"):
		return classSiren
	case strings.Contains(t, "presence"):
		return classPresence
	case strings.Contains(t, "door"):
		return classDoor
	}
	return classOther
}

// boolValue parses a device property value as a boolean; unparseable values
// are false.
func boolValue(v string) bool {
	b, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(v)))
	return err == nil && b
}

// floatValue parses a device property or zone variable value as a float.
func floatValue(v string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	return f, err == nil
}

// isPowerProperty reports whether a property change toggles a device on or
// off.
func isPowerProperty(prop string) bool {
	return strings.Contains(behavior.Normalize(prop), "powerstatus")
}

// isOpenedProperty reports whether a property change opens or closes a door
// or window sensor.
func isOpenedProperty(prop string) bool {
	return strings.Contains(behavior.Normalize(prop), "opened")
}

// isPresenceProperty reports whether a property change senses presence.
func isPresenceProperty(prop string) bool {
	return strings.Contains(behavior.Normalize(prop), "sensedpresence")
}

// zoneIs reports whether a zone's normalized name contains the given room
// label ("bedroom1" still counts as a bedroom).
func zoneIs(z *model.Zone, room string) bool {
	return z != nil && strings.Contains(z.Name, room)
}
