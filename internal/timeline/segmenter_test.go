package timeline

import (
	"testing"
	"time"

	"github.com/edsr/vigilo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plain(pos int) model.Event {
	return &model.PlainEvent{EventMeta: model.EventMeta{Pos: pos}, Tag: "event"}
}

func delay(pos int, d time.Duration) model.Event {
	unit := model.UnitSeconds
	switch {
	case d >= time.Hour:
		unit = model.UnitHours
	case d >= time.Minute:
		unit = model.UnitMinutes
	}
	return &model.TimeEvent{EventMeta: model.EventMeta{Pos: pos}, Unit: unit, Value: d, Label: "delay"}
}

func marker(pos int) model.Event {
	return &model.TimeEvent{EventMeta: model.EventMeta{Pos: pos}, Unit: model.UnitSeconds, Value: 0, Label: "delay"}
}

func TestSegmentPartitionsAtMarkers(t *testing.T) {
	events := []model.Event{
		plain(0), delay(1, time.Hour), plain(2),
		marker(3),
		plain(4), plain(5),
		marker(6),
	}

	situations := Segment(events)
	require.Len(t, situations, 2)

	assert.Equal(t, 3, situations[0].Len())
	assert.Equal(t, 2, situations[1].Len())

	// Every non-marker event lands in exactly one situation.
	seen := map[int]int{}
	for _, s := range situations {
		for _, ev := range s.Events() {
			seen[ev.Position()]++
		}
	}
	assert.Equal(t, map[int]int{0: 1, 1: 1, 2: 1, 4: 1, 5: 1}, seen)
}

func TestSegmentDropsTrailingEventsAfterFinalMarker(t *testing.T) {
	events := []model.Event{
		plain(0),
		marker(1),
		plain(2), plain(3),
	}

	situations := Segment(events)
	require.Len(t, situations, 1)
	assert.Equal(t, 1, situations[0].Len())
	assert.Equal(t, 0, situations[0].First().Position())
}

func TestSegmentConsecutiveMarkersYieldNoEmptySituations(t *testing.T) {
	events := []model.Event{
		marker(0), marker(1),
		plain(2),
		marker(3),
	}

	situations := Segment(events)
	require.Len(t, situations, 1)
	assert.Equal(t, 2, situations[0].First().Position())
}

func TestSegmentNoMarkersIsOneSituation(t *testing.T) {
	events := []model.Event{plain(0), delay(1, 30*time.Minute), plain(2)}

	situations := Segment(events)
	require.Len(t, situations, 1)
	assert.Equal(t, 3, situations[0].Len())
}

func TestSegmentEmptyTimeline(t *testing.T) {
	assert.Empty(t, Segment(nil))
}

func TestSingleEventSituation(t *testing.T) {
	events := []model.Event{plain(0), marker(1)}

	situations := Segment(events)
	require.Len(t, situations, 1)
	s := situations[0]
	assert.Equal(t, 1, s.Len())
	assert.Same(t, s.First(), s.Last())
	assert.Empty(t, s.Middle())
}

func TestElapsedAndOffsets(t *testing.T) {
	events := []model.Event{
		plain(0), delay(1, time.Hour), plain(2), delay(3, 30*time.Minute),
		marker(4),
		delay(5, 2*time.Hour),
		marker(6),
	}

	situations := Segment(events)
	require.Len(t, situations, 2)

	assert.Equal(t, 90*time.Minute, Elapsed(situations[0].Events()))
	assert.Equal(t, 2*time.Hour, Elapsed(situations[1].Events()))

	offsets := StartOffsets(situations)
	require.Len(t, offsets, 2)
	assert.Equal(t, time.Duration(0), offsets[0])
	assert.Equal(t, 90*time.Minute, offsets[1])

	assert.Equal(t, 210*time.Minute, TotalElapsed(situations))
}
