// Package entity builds the typed Zone/Device/Person world model from the
// raw record stream. Building is a pure read of the stream: each creation
// record is completed by scanning the whole document for its matching
// mutation records.
package entity

import (
	"github.com/edsr/vigilo/internal/behavior"
	"github.com/edsr/vigilo/internal/logging"
	"github.com/edsr/vigilo/internal/model"
)

// Set is the fully built world model. Lookup maps are keyed by normalized
// identifier for zones and devices, raw identifier for persons.
type Set struct {
	Zones   []*model.Zone
	Devices []*model.Device
	Persons []*model.Person

	zonesByName   map[string]*model.Zone
	devicesByName map[string]*model.Device
	personsByName map[string]*model.Person
}

// Zone resolves a zone by id, tolerating case and spacing differences.
func (s *Set) Zone(id string) *model.Zone {
	return s.zonesByName[behavior.Normalize(id)]
}

// Device resolves a device by id, tolerating case and spacing differences.
func (s *Set) Device(id string) *model.Device {
	return s.devicesByName[behavior.Normalize(id)]
}

// Person resolves a person by id.
func (s *Set) Person(id string) *model.Person {
	return s.personsByName[id]
}

// Build constructs the world model from a parsed document. A creation record
// missing required attributes is a fatal input-format error.
func Build(doc *behavior.Document) (*Set, error) {
	logger := logging.GetLogger("entity.builder")

	set := &Set{
		zonesByName:   make(map[string]*model.Zone),
		devicesByName: make(map[string]*model.Device),
		personsByName: make(map[string]*model.Person),
	}

	// Zones first: device and person placements resolve against them even
	// when the zone's creation record appears later in the document.
	for i := range doc.Records {
		rec := &doc.Records[i]
		switch rec.Tag {
		case behavior.TagCreateZone:
			if err := rec.RequireAttrs("id"); err != nil {
				return nil, err
			}
			z := buildZone(doc, rec)
			set.Zones = append(set.Zones, z)
			set.zonesByName[z.Name] = z
		case behavior.TagDelay:
			if err := rec.RequireAttrs("unit", "value"); err != nil {
				return nil, err
			}
		}
	}

	for i := range doc.Records {
		rec := &doc.Records[i]
		switch rec.Tag {
		case behavior.TagCreateDevice:
			if err := rec.RequireAttrs("id", "type"); err != nil {
				return nil, err
			}
			d := buildDevice(doc, rec, set)
			set.Devices = append(set.Devices, d)
			set.devicesByName[behavior.Normalize(d.Name)] = d

		case behavior.TagCreatePerson:
			if err := rec.RequireAttrs("id", "type"); err != nil {
				return nil, err
			}
			p := buildPerson(doc, rec, set)
			set.Persons = append(set.Persons, p)
			set.personsByName[p.Name] = p
		}
	}

	logger.DebugWithFields("world model built",
		logging.Field("zones", len(set.Zones)),
		logging.Field("devices", len(set.Devices)),
		logging.Field("persons", len(set.Persons)),
	)
	return set, nil
}

// buildZone collects the variable history of one zone. add-zone-variable
// declares a variable, modify-zone-variable writes it; writes apply in
// record order, last write wins.
func buildZone(doc *behavior.Document, rec *behavior.Record) *model.Zone {
	name := behavior.Normalize(rec.Attr("id"))
	z := &model.Zone{
		Order:     rec.Order,
		Name:      name,
		Variables: make(map[string]string),
	}
	for i := range doc.Records {
		r := &doc.Records[i]
		switch r.Tag {
		case behavior.TagAddZoneVariable:
			if behavior.Normalize(r.Attr("zoneId")) == name {
				if _, ok := z.Variables[r.Attr("variable")]; !ok {
					z.Variables[r.Attr("variable")] = ""
				}
			}
		case behavior.TagModifyZoneVar:
			if behavior.Normalize(r.Attr("zoneId")) == name {
				z.Variables[r.Attr("variable")] = r.Attr("value")
			}
		}
	}
	return z
}

// buildDevice collects a device's placements and its mutation records.
// Zone moves become placements; every other record naming the device joins
// its event history.
func buildDevice(doc *behavior.Document, rec *behavior.Record, set *Set) *model.Device {
	id := rec.Attr("id")
	norm := behavior.Normalize(id)
	d := &model.Device{
		Order:    rec.Order,
		Name:     id,
		TypeName: rec.Attr("type"),
	}
	for i := range doc.Records {
		r := &doc.Records[i]
		if behavior.Normalize(r.Attr("deviceId")) != norm {
			continue
		}
		if r.Tag == behavior.TagMoveDeviceZone {
			if z := set.Zone(r.Attr("zoneId")); z != nil {
				d.Placements = append(d.Placements, model.Placement{Order: r.Order, Zone: z})
			}
			continue
		}
		ev := model.DeviceEvent{Order: r.Order, Tag: r.Tag}
		if r.Tag == behavior.TagSetDeviceProperty {
			ev.Property = r.Attr("property")
			ev.Value = r.Attr("value")
		}
		d.Events = append(d.Events, ev)
	}
	return d
}

// buildPerson collects a person's zone placements.
func buildPerson(doc *behavior.Document, rec *behavior.Record, set *Set) *model.Person {
	id := rec.Attr("id")
	p := &model.Person{
		Name:     id,
		TypeName: rec.Attr("type"),
	}
	for i := range doc.Records {
		r := &doc.Records[i]
		if r.Tag != behavior.TagMovePersonZone || r.Attr("personId") != id {
			continue
		}
		if z := set.Zone(r.Attr("zoneId")); z != nil {
			p.Placements = append(p.Placements, model.Placement{Order: r.Order, Zone: z})
		}
	}
	return p
}
