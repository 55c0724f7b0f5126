// Package timeline assembles the resolved events and the synthesized delay
// events into one chronologically ordered sequence, then cuts it into
// situations at zero-duration boundary markers.
package timeline

import (
	"fmt"
	"strconv"
	"time"

	"github.com/edsr/vigilo/internal/behavior"
	"github.com/edsr/vigilo/internal/logging"
	"github.com/edsr/vigilo/internal/model"
)

// Assemble converts delay records into Time events, merges them with the
// resolved events and returns the position-sorted timeline. A delay inherits
// its executer from the closest preceding non-delay event; a delay with
// nothing before it has no actor.
func Assemble(doc *behavior.Document, resolved []model.Event) ([]model.Event, error) {
	logger := logging.GetLogger("timeline.assembler")

	events := make([]model.Event, 0, len(resolved))
	events = append(events, resolved...)

	for i := range doc.Records {
		rec := &doc.Records[i]
		if rec.Tag != behavior.TagDelay {
			continue
		}
		unit, value, err := delayDuration(rec)
		if err != nil {
			return nil, err
		}
		events = append(events, &model.TimeEvent{
			EventMeta: model.EventMeta{
				Pos:  rec.Order,
				Exec: closestPrecedingExecuter(resolved, rec.Order),
			},
			Unit:  unit,
			Value: value,
			Label: rec.Tag,
		})
	}

	model.SortEvents(events)
	logger.Debug("assembled timeline of %d events", len(events))
	return events, nil
}

// closestPrecedingExecuter returns the executer of the non-delay event with
// the largest position strictly before order, or nil.
func closestPrecedingExecuter(resolved []model.Event, order int) *model.Person {
	var closest model.Event
	for _, ev := range resolved {
		if ev.Position() >= order {
			continue
		}
		if closest == nil || ev.Position() > closest.Position() {
			closest = ev
		}
	}
	if closest == nil {
		return nil
	}
	return closest.Executer()
}

// delayDuration normalizes a delay record's unit and value into a duration.
func delayDuration(rec *behavior.Record) (model.TimeUnit, time.Duration, error) {
	value, err := strconv.Atoi(rec.Attr("value"))
	if err != nil || value < 0 {
		return "", 0, &behavior.FormatError{
			Tag:   rec.Tag,
			Order: rec.Order,
			Msg:   fmt.Sprintf("invalid delay value %q", rec.Attr("value")),
		}
	}
	switch model.TimeUnit(rec.Attr("unit")) {
	case model.UnitSeconds:
		return model.UnitSeconds, time.Duration(value) * time.Second, nil
	case model.UnitMinutes:
		return model.UnitMinutes, time.Duration(value) * time.Minute, nil
	case model.UnitHours:
		return model.UnitHours, time.Duration(value) * time.Hour, nil
	default:
		return "", 0, &behavior.FormatError{
			Tag:   rec.Tag,
			Order: rec.Order,
			Msg:   fmt.Sprintf("invalid delay unit %q", rec.Attr("unit")),
		}
	}
}
