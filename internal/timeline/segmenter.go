package timeline

import (
	"time"

	"github.com/edsr/vigilo/internal/logging"
	"github.com/edsr/vigilo/internal/model"
)

// Segment splits the sorted timeline into situations at every zero-second
// Time event. Markers belong to no situation. Events after the final marker
// are dropped, matching the source behavior (a script is expected to close
// its last situation with a marker).
func Segment(events []model.Event) []*model.Situation {
	logger := logging.GetLogger("timeline.segmenter")

	var marks []int
	for i, ev := range events {
		if t, ok := ev.(*model.TimeEvent); ok && t.IsBoundary() {
			marks = append(marks, i)
		}
	}

	// A script with no markers at all is one single situation.
	if len(marks) == 0 {
		if s := model.NewSituation(events); s != nil {
			return []*model.Situation{s}
		}
		return nil
	}

	var situations []*model.Situation
	start := 0
	for _, m := range marks {
		if s := model.NewSituation(events[start:m]); s != nil {
			situations = append(situations, s)
		}
		start = m + 1
	}
	if dropped := len(events) - start; len(marks) > 0 && dropped > 0 {
		logger.Warn("dropping %d events after the final situation marker", dropped)
	}

	logger.Debug("segmented %d events into %d situations", len(events), len(situations))
	return situations
}

// Elapsed sums the durations of all Time events in an event run.
func Elapsed(events []model.Event) time.Duration {
	var total time.Duration
	for _, ev := range events {
		if t, ok := ev.(*model.TimeEvent); ok {
			total += t.Value
		}
	}
	return total
}

// StartOffsets returns, for each situation, the total simulation time
// elapsed before its first event: the sum of all preceding situations'
// durations. Boundary markers are zero-length, so dropping them does not
// shift the offsets.
func StartOffsets(situations []*model.Situation) []time.Duration {
	offsets := make([]time.Duration, len(situations))
	var total time.Duration
	for i, s := range situations {
		offsets[i] = total
		total += Elapsed(s.Events())
	}
	return offsets
}

// TotalElapsed sums the elapsed time across all situations.
func TotalElapsed(situations []*model.Situation) time.Duration {
	var total time.Duration
	for _, s := range situations {
		total += Elapsed(s.Events())
	}
	return total
}
