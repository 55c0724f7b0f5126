// Package model holds the immutable in-memory world model built from a
// behavior script: zones, devices, persons, the typed event timeline and the
// situations cut from it. Everything here is constructed once by the
// entity/causality/timeline packages and consumed read-only by the rule
// engine and the aggregator.
package model

// Placement records that an entity was moved into a zone at a given record
// order. The placement with the largest order at or before a position is the
// authoritative location at that position.
type Placement struct {
	Order int
	Zone  *Zone
}

// Zone is a simulator zone with its variable state.
// Name is normalized (lower-cased, spaces stripped) and unique.
// Variables holds the last written value per variable name.
type Zone struct {
	Order     int
	Name      string
	Variables map[string]string
}

// DeviceEvent is one raw mutation record attached to a device, excluding
// zone moves. Property and Value are empty for non-property records.
type DeviceEvent struct {
	Order    int
	Tag      string
	Property string
	Value    string
}

// Device is a simulator device with its full mutation history.
type Device struct {
	Order      int
	Name       string
	TypeName   string
	Events     []DeviceEvent
	Placements []Placement
}

// ZoneAt returns the zone the device occupies at the given record order: the
// most recent placement at or before order. Returns nil if the device had no
// placement yet.
func (d *Device) ZoneAt(order int) *Zone {
	var z *Zone
	for _, p := range d.Placements {
		if p.Order > order {
			break
		}
		z = p.Zone
	}
	return z
}

// Person is a simulated occupant.
type Person struct {
	Name       string
	TypeName   string
	Placements []Placement
}

// ZoneAt returns the zone the person occupies at the given record order, or
// nil if the person has not moved anywhere yet.
func (p *Person) ZoneAt(order int) *Zone {
	var z *Zone
	for _, pl := range p.Placements {
		if pl.Order > order {
			break
		}
		z = pl.Zone
	}
	return z
}
