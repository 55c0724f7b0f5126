package model

import (
	"sort"
	"time"
)

// TimeUnit is the unit of a delay record.
type TimeUnit string

const (
	UnitSeconds TimeUnit = "s"
	UnitMinutes TimeUnit = "m"
	UnitHours   TimeUnit = "h"
)

// Event is the closed set of timeline event variants. The concrete types are
// PlainEvent, MoveEvent, VarChangeEvent, PropertyChangeEvent and TimeEvent;
// detectors switch exhaustively over them. Events are immutable once the
// timeline is assembled.
type Event interface {
	// Position is the event's record order in the original document.
	Position() int
	// Executer is the person inferred to be responsible, or nil when
	// causality could not be established.
	Executer() *Person

	isEvent()
}

// EventMeta carries the fields common to all event variants.
type EventMeta struct {
	Pos  int
	Exec *Person
}

func (m EventMeta) Position() int     { return m.Pos }
func (m EventMeta) Executer() *Person { return m.Exec }

// PlainEvent is an event with no variant-specific payload beyond its source
// record tag (device moves, device faults).
type PlainEvent struct {
	EventMeta
	Tag string
}

// MoveEvent is a person moving into a zone.
type MoveEvent struct {
	EventMeta
	Zone *Zone
}

// VarChange describes a zone-variable mutation.
type VarChange struct {
	Variable string
	Value    string
	Zone     *Zone
}

// VarChangeEvent is a zone-variable edit.
type VarChangeEvent struct {
	EventMeta
	Change VarChange
}

// PropertyChange describes a device-property mutation.
type PropertyChange struct {
	Property string
	Value    string
}

// PropertyChangeEvent is a device-property edit.
type PropertyChangeEvent struct {
	EventMeta
	Device  *Device
	Changed PropertyChange
}

// TimeEvent is a synthesized elapsed-time marker from a delay record.
// A TimeEvent with UnitSeconds and a zero Value is a situation boundary.
type TimeEvent struct {
	EventMeta
	Unit  TimeUnit
	Value time.Duration
	Label string
}

func (*PlainEvent) isEvent()          {}
func (*MoveEvent) isEvent()           {}
func (*VarChangeEvent) isEvent()      {}
func (*PropertyChangeEvent) isEvent() {}
func (*TimeEvent) isEvent()           {}

// IsBoundary reports whether the event terminates a situation.
func (t *TimeEvent) IsBoundary() bool {
	return t.Unit == UnitSeconds && t.Value == 0
}

// SortEvents orders events ascending by position. The sort is stable; record
// orders are unique in practice, so ties keep their original relative order.
func SortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Position() < events[j].Position()
	})
}
