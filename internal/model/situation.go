package model

// Situation is a maximal contiguous run of events between two zero-second
// boundary markers. The markers themselves belong to no situation.
type Situation struct {
	events []Event
}

// NewSituation wraps a non-empty contiguous event slice. A single-event
// slice is a degenerate situation where First and Last coincide; this keeps
// segmentation a total partition of the timeline.
func NewSituation(events []Event) *Situation {
	if len(events) == 0 {
		return nil
	}
	return &Situation{events: events}
}

// First returns the opening event of the situation.
func (s *Situation) First() Event { return s.events[0] }

// Last returns the closing event of the situation.
func (s *Situation) Last() Event { return s.events[len(s.events)-1] }

// Middle returns the events strictly between First and Last.
func (s *Situation) Middle() []Event {
	if len(s.events) < 2 {
		return nil
	}
	return s.events[1 : len(s.events)-1]
}

// Events returns the full ordered event run of the situation.
func (s *Situation) Events() []Event { return s.events }

// Len returns the number of events in the situation.
func (s *Situation) Len() int { return len(s.events) }
