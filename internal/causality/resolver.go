package causality

import (
	"github.com/edsr/vigilo/internal/behavior"
	"github.com/edsr/vigilo/internal/entity"
	"github.com/edsr/vigilo/internal/logging"
	"github.com/edsr/vigilo/internal/model"
)

// Resolver infers the acting person behind implicit world-state mutations.
// Resolution never fails: a record either yields an event with a definite
// executer, an event with no executer, or no event at all (setup records).
type Resolver struct {
	doc    *behavior.Document
	set    *entity.Set
	idx    *Index
	logger *logging.Logger

	// NearestFaultActor selects the most recent person-move into the
	// faulted device's zone instead of the historical earliest-move
	// behavior. Off by default to preserve the legacy selection.
	NearestFaultActor bool
}

// NewResolver creates a resolver over a parsed document and its world model.
func NewResolver(doc *behavior.Document, set *entity.Set) *Resolver {
	return &Resolver{
		doc:    doc,
		set:    set,
		idx:    NewIndex(doc.Records),
		logger: logging.GetLogger("causality.resolver"),
	}
}

// Resolve walks the record stream and produces the non-delay events of the
// timeline. With no persons in the simulation there is no causality to
// resolve and no events are produced.
func (r *Resolver) Resolve() []model.Event {
	if len(r.set.Persons) == 0 {
		r.logger.Debug("no persons in simulation, skipping causality resolution")
		return nil
	}

	var events []model.Event
	for i := range r.doc.Records {
		rec := &r.doc.Records[i]
		var ev model.Event
		switch rec.Tag {
		case behavior.TagMoveDeviceZone:
			ev = r.resolveDeviceMove(rec)
		case behavior.TagModifyZoneVar:
			ev = r.resolveZoneVarChange(rec)
		case behavior.TagSetDeviceProperty:
			ev = r.resolvePropertyChange(rec)
		case behavior.TagFaultDevice:
			ev = r.resolveFault(rec)
		case behavior.TagMovePersonZone:
			ev = r.resolvePersonMove(rec)
		}
		if ev != nil {
			events = append(events, ev)
		}
	}
	r.logger.Debug("resolved %d events from %d records", len(events), len(r.doc.Records))
	return events
}

// resolveDeviceMove handles move-device-zone. Only a move immediately after
// a person movement counts as behavior; the placement right after
// create-device is setup and produces no event.
func (r *Resolver) resolveDeviceMove(rec *behavior.Record) model.Event {
	prev := r.idx.Prev(rec.Order)
	if prev == nil || prev.Tag != behavior.TagMovePersonZone {
		return nil
	}
	p := r.set.Person(prev.Attr("personId"))
	if p == nil {
		return nil
	}
	return &model.PlainEvent{
		EventMeta: model.EventMeta{Pos: rec.Order, Exec: p},
		Tag:       rec.Tag,
	}
}

// resolveZoneVarChange handles modify-zone-variable. Priority order: person
// moved right before; person moved, then a device; otherwise the last known
// occupant of the zone; otherwise no actor.
func (r *Resolver) resolveZoneVarChange(rec *behavior.Record) model.Event {
	zone := r.set.Zone(rec.Attr("zoneId"))
	if zone == nil {
		return nil
	}
	prev := r.idx.Prev(rec.Order)
	if prev == nil || prev.Tag == behavior.TagAddZoneVariable {
		// Initial variable setup, not behavior.
		return nil
	}

	var exec *model.Person
	prev2 := r.idx.PrevN(rec.Order, 2)
	switch {
	case prev.Tag == behavior.TagMovePersonZone:
		exec = r.set.Person(prev.Attr("personId"))
	case prev.Tag == behavior.TagMoveDeviceZone && prev2 != nil && prev2.Tag == behavior.TagMovePersonZone:
		exec = r.set.Person(prev2.Attr("personId"))
	default:
		// Fall back to the last person who entered this zone.
		if m := r.idx.LastPersonMoveInto(zone.Name, rec.Order); m != nil {
			exec = r.set.Person(m.Attr("personId"))
		}
	}

	return &model.VarChangeEvent{
		EventMeta: model.EventMeta{Pos: rec.Order, Exec: exec},
		Change: model.VarChange{
			Variable: rec.Attr("variable"),
			Value:    rec.Attr("value"),
			Zone:     zone,
		},
	}
}

// resolvePropertyChange handles set-device-property. Property writes during
// device setup (right after creation, or after creation-then-placement) are
// configuration, not behavior, and produce no event.
func (r *Resolver) resolvePropertyChange(rec *behavior.Record) model.Event {
	dev := r.set.Device(rec.Attr("deviceId"))
	if dev == nil {
		return nil
	}
	prev := r.idx.Prev(rec.Order)
	prev2 := r.idx.PrevN(rec.Order, 2)
	if prev != nil && prev.Tag == behavior.TagCreateDevice {
		return nil
	}
	if prev != nil && prev.Tag == behavior.TagMoveDeviceZone &&
		prev2 != nil && prev2.Tag == behavior.TagCreateDevice {
		return nil
	}

	var exec *model.Person
	if len(r.set.Persons) == 1 {
		// A single occupant is the only possible actor.
		exec = r.set.Persons[0]
	} else if zone := dev.ZoneAt(rec.Order); zone != nil {
		if m := r.idx.LastPersonMoveInto(zone.Name, rec.Order); m != nil {
			exec = r.set.Person(m.Attr("personId"))
		}
	}

	return &model.PropertyChangeEvent{
		EventMeta: model.EventMeta{Pos: rec.Order, Exec: exec},
		Device:    dev,
		Changed: model.PropertyChange{
			Property: rec.Attr("property"),
			Value:    rec.Attr("value"),
		},
	}
}

// resolveFault handles fault-device. The actor is picked among persons who
// moved into the device's zone before the fault. The legacy selection takes
// the move with the smallest order value; NearestFaultActor switches to the
// most recent one. A fault in a zone nobody entered is a natural fault with
// no actor; a device that was never placed produces no event.
func (r *Resolver) resolveFault(rec *behavior.Record) model.Event {
	placement := r.idx.LastDeviceMove(rec.Attr("deviceId"), rec.Order)
	if placement == nil {
		return nil
	}
	zone := r.set.Zone(placement.Attr("zoneId"))
	if zone == nil {
		return nil
	}

	var move *behavior.Record
	if r.NearestFaultActor {
		move = r.idx.LastPersonMoveInto(zone.Name, rec.Order)
	} else {
		move = r.idx.FirstPersonMoveInto(zone.Name, rec.Order)
	}

	var exec *model.Person
	if move != nil {
		exec = r.set.Person(move.Attr("personId"))
	}
	return &model.PlainEvent{
		EventMeta: model.EventMeta{Pos: rec.Order, Exec: exec},
		Tag:       rec.Tag,
	}
}

// resolvePersonMove handles move-person-zone, which names its actor
// explicitly.
func (r *Resolver) resolvePersonMove(rec *behavior.Record) model.Event {
	p := r.set.Person(rec.Attr("personId"))
	if p == nil {
		return nil
	}
	zone := r.set.Zone(rec.Attr("zoneId"))
	if zone == nil {
		return nil
	}
	return &model.MoveEvent{
		EventMeta: model.EventMeta{Pos: rec.Order, Exec: p},
		Zone:      zone,
	}
}
