package rules

import (
	"time"

	"github.com/edsr/vigilo/internal/behavior"
	"github.com/edsr/vigilo/internal/model"
)

// Test world builders. Events are constructed directly rather than through
// the parser so each detector test states exactly the timeline it needs.

func testZone(name string, vars map[string]string) *model.Zone {
	if vars == nil {
		vars = map[string]string{}
	}
	return &model.Zone{Name: behavior.Normalize(name), Variables: vars}
}

func testDevice(name, typeName string, z *model.Zone) *model.Device {
	d := &model.Device{Name: name, TypeName: typeName}
	if z != nil {
		d.Placements = []model.Placement{{Order: 0, Zone: z}}
	}
	return d
}

func testPerson(name string) *model.Person {
	return &model.Person{Name: name, TypeName: "grandfather"}
}

func propEvent(pos int, dev *model.Device, prop, value string, exec *model.Person) model.Event {
	return &model.PropertyChangeEvent{
		EventMeta: model.EventMeta{Pos: pos, Exec: exec},
		Device:    dev,
		Changed:   model.PropertyChange{Property: prop, Value: value},
	}
}

func moveEvent(pos int, p *model.Person, z *model.Zone) model.Event {
	return &model.MoveEvent{EventMeta: model.EventMeta{Pos: pos, Exec: p}, Zone: z}
}

func varEvent(pos int, z *model.Zone, variable, value string, exec *model.Person) model.Event {
	return &model.VarChangeEvent{
		EventMeta: model.EventMeta{Pos: pos, Exec: exec},
		Change:    model.VarChange{Variable: variable, Value: value, Zone: z},
	}
}

func timeEvent(pos int, d time.Duration) model.Event {
	unit := model.UnitSeconds
	switch {
	case d >= time.Hour:
		unit = model.UnitHours
	case d >= time.Minute:
		unit = model.UnitMinutes
	}
	return &model.TimeEvent{EventMeta: model.EventMeta{Pos: pos}, Unit: unit, Value: d, Label: "delay"}
}

// testInput wraps events into a single-situation input starting at the
// given clock.
func testInput(clock time.Duration, persons []*model.Person, events ...model.Event) Input {
	return Input{
		Situation: model.NewSituation(events),
		Clock:     behavior.Clock(clock),
		MainDoor:  "hallway",
		Persons:   persons,
	}
}

func kinds(findings []model.Finding) []model.FindingKind {
	var out []model.FindingKind
	for _, f := range findings {
		out = append(out, f.Kind)
	}
	return out
}
