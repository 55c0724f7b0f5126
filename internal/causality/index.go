// Package causality assigns an executing person to records that mutate
// world state implicitly, using nearest-preceding-record heuristics over the
// raw stream.
package causality

import (
	"github.com/edsr/vigilo/internal/behavior"
	lru "github.com/hashicorp/golang-lru/v2"
)

// occupantKey memoizes occupant queries per (zone, position).
type occupantKey struct {
	zone  string
	order int
}

const occupantCacheSize = 4096

// Index provides nearest-before queries over the record stream without
// rescanning the whole document per lookup. Records are bucketed by tag in
// order; repeated occupant lookups are memoized in an LRU cache.
type Index struct {
	records []behavior.Record
	byTag   map[string][]*behavior.Record

	occupants *lru.Cache[occupantKey, int]
}

// NewIndex builds the tag index for a record stream.
func NewIndex(records []behavior.Record) *Index {
	idx := &Index{
		records: records,
		byTag:   make(map[string][]*behavior.Record),
	}
	for i := range records {
		r := &records[i]
		idx.byTag[r.Tag] = append(idx.byTag[r.Tag], r)
	}
	// Cache creation only fails for a non-positive size.
	idx.occupants, _ = lru.New[occupantKey, int](occupantCacheSize)
	return idx
}

// Prev returns the record immediately preceding the given order, or nil at
// the start of the document. Record numbering is contiguous, so this is a
// direct lookup.
func (idx *Index) Prev(order int) *behavior.Record {
	if order <= 0 || order > len(idx.records) {
		return nil
	}
	return &idx.records[order-1]
}

// PrevN returns the record n positions before the given order, or nil.
func (idx *Index) PrevN(order, n int) *behavior.Record {
	return idx.Prev(order - n + 1)
}

// LastPersonMoveInto returns the most recent move-person-zone record into
// the named zone strictly before the given order, or nil. The zone name is
// compared normalized. Results are memoized.
func (idx *Index) LastPersonMoveInto(zone string, order int) *behavior.Record {
	zone = behavior.Normalize(zone)
	key := occupantKey{zone: zone, order: order}
	if cached, ok := idx.occupants.Get(key); ok {
		if cached < 0 {
			return nil
		}
		return &idx.records[cached]
	}

	moves := idx.byTag[behavior.TagMovePersonZone]
	found := -1
	for i := len(moves) - 1; i >= 0; i-- {
		m := moves[i]
		if m.Order >= order {
			continue
		}
		if behavior.Normalize(m.Attr("zoneId")) == zone {
			found = m.Order
			break
		}
	}
	idx.occupants.Add(key, found)
	if found < 0 {
		return nil
	}
	return &idx.records[found]
}

// FirstPersonMoveInto returns the earliest move-person-zone record into the
// named zone strictly before the given order, or nil.
func (idx *Index) FirstPersonMoveInto(zone string, order int) *behavior.Record {
	zone = behavior.Normalize(zone)
	for _, m := range idx.byTag[behavior.TagMovePersonZone] {
		if m.Order >= order {
			break
		}
		if behavior.Normalize(m.Attr("zoneId")) == zone {
			return m
		}
	}
	return nil
}

// LastDeviceMove returns the most recent move-device-zone record for the
// device strictly before the given order, or nil.
func (idx *Index) LastDeviceMove(deviceID string, order int) *behavior.Record {
	dev := behavior.Normalize(deviceID)
	moves := idx.byTag[behavior.TagMoveDeviceZone]
	for i := len(moves) - 1; i >= 0; i-- {
		m := moves[i]
		if m.Order >= order {
			continue
		}
		if behavior.Normalize(m.Attr("deviceId")) == dev {
			return m
		}
	}
	return nil
}
