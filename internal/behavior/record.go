// Package behavior reads iCasa behavior scripts (.bhv) into an ordered
// sequence of tagged records. The record order assigned here is the single
// source of truth for every before/after comparison downstream.
package behavior

import (
	"fmt"
	"strings"
)

// Record tags understood by the pipeline. Unknown tags are kept in the
// stream (they still consume an order slot) but produce no entities.
const (
	TagCreateZone        = "create-zone"
	TagAddZoneVariable   = "add-zone-variable"
	TagModifyZoneVar     = "modify-zone-variable"
	TagCreateDevice      = "create-device"
	TagMoveDeviceZone    = "move-device-zone"
	TagSetDeviceProperty = "set-device-property"
	TagFaultDevice       = "fault-device"
	TagCreatePerson      = "create-person"
	TagMovePersonZone    = "move-person-zone"
	TagDelay             = "delay"
)

// Record is one raw tagged entry from the behavior script.
type Record struct {
	// Tag is the element name of the record.
	Tag string
	// Attrs maps attribute names to their raw string values.
	Attrs map[string]string
	// Order is the record's zero-based position among all top-level
	// records, assigned once in document order.
	Order int
}

// Attr returns the named attribute value, or "" when absent.
func (r *Record) Attr(name string) string {
	return r.Attrs[name]
}

// RequireAttrs returns a FormatError naming the first missing attribute.
// Creation records with missing required attributes are an input-contract
// violation and abort the run.
func (r *Record) RequireAttrs(names ...string) error {
	for _, n := range names {
		if _, ok := r.Attrs[n]; !ok {
			return &FormatError{
				Tag:   r.Tag,
				Order: r.Order,
				Msg:   fmt.Sprintf("missing required attribute %q", n),
			}
		}
	}
	return nil
}

// FormatError reports a malformed record in the input document.
type FormatError struct {
	Tag   string
	Order int
	Msg   string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("record %d (%s): %s", e.Order, e.Tag, e.Msg)
}

// Normalize case-folds an identifier and strips spaces, so that authoring
// inconsistencies like "Kitchen " and "kitchen" resolve to the same entity.
func Normalize(id string) string {
	return strings.ReplaceAll(strings.ToLower(id), " ", "")
}
