package rules

import (
	"context"
	"time"

	"github.com/edsr/vigilo/internal/behavior"
	"github.com/edsr/vigilo/internal/logging"
	"github.com/edsr/vigilo/internal/metrics"
	"github.com/edsr/vigilo/internal/model"
	"github.com/edsr/vigilo/internal/timeline"
	"golang.org/x/sync/errgroup"
)

// Engine runs the full detector battery over every situation and the
// whole-simulation habit rules over the complete timeline. Detectors are
// pure and situation-scoped, so situations are evaluated concurrently;
// findings are collected per situation and merged in order.
type Engine struct {
	clock    behavior.Clock
	mainDoor string
	battery  []Detector
	metrics  *metrics.Metrics
	logger   *logging.Logger
}

// Result carries the engine's findings together with the whole-run totals
// folded out of the situations.
type Result struct {
	Findings       []model.Finding
	TotalElapsed   time.Duration
	BathroomVisits int
	Situations     int
}

// Option configures an Engine.
type Option func(*Engine)

// WithMetrics attaches pipeline metrics to the engine.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// New creates an engine with the standard detector battery. mainDoorZone
// names the zone whose door is the dwelling's entrance.
func New(clock behavior.Clock, mainDoorZone string, opts ...Option) *Engine {
	e := &Engine{
		clock:    clock,
		mainDoor: behavior.Normalize(mainDoorZone),
		battery: []Detector{
			NewDeviceLeftOnDetector(),
			NewClimateMisuseDetector(),
			NewSensorThresholdDetector(),
			NewMainDoorDetector(),
			NewSedentarismDetector(),
			NewAccidentDetector(),
			NewKitchenAbandonDetector(),
			NewWanderingDetector(),
			NewMicturitionDetector(),
		},
		logger: logging.GetLogger("rules.engine"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate runs the battery over all situations, then the whole-simulation
// rules, and returns the merged findings and run totals.
func (e *Engine) Evaluate(ctx context.Context, events []model.Event, situations []*model.Situation, persons []*model.Person) (*Result, error) {
	offsets := timeline.StartOffsets(situations)
	perSituation := make([][]model.Finding, len(situations))

	g, _ := errgroup.WithContext(ctx)
	for i, s := range situations {
		in := Input{
			Situation:   s,
			Index:       i,
			StartOffset: offsets[i],
			Clock:       e.clock,
			MainDoor:    e.mainDoor,
			Persons:     persons,
		}
		g.Go(func() error {
			perSituation[in.Index] = e.evaluateSituation(in)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{
		TotalElapsed: timeline.TotalElapsed(situations),
		Situations:   len(situations),
	}
	for _, s := range situations {
		result.BathroomVisits += countBathroomMoves(s.Events())
	}
	for _, findings := range perSituation {
		result.Findings = append(result.Findings, findings...)
	}

	result.Findings = append(result.Findings, e.evaluateWholeRun(events, result, persons)...)

	for _, f := range result.Findings {
		e.metrics.FindingRecorded(string(f.Kind))
	}
	e.logger.InfoWithFields("rule evaluation complete",
		logging.Field("situations", len(situations)),
		logging.Field("findings", len(result.Findings)),
		logging.Field("elapsed", result.TotalElapsed),
	)
	return result, nil
}

// evaluateSituation runs every detector of the battery over one situation.
func (e *Engine) evaluateSituation(in Input) []model.Finding {
	var findings []model.Finding
	for _, det := range e.battery {
		started := time.Now()
		found := det.Detect(in)
		e.metrics.ObserveDetector(det.Name(), time.Since(started).Seconds())
		if len(found) > 0 {
			e.logger.DebugWithFields("detector produced findings",
				logging.Field("detector", det.Name()),
				logging.Field("situation", in.Index),
				logging.Field("count", len(found)),
			)
		}
		findings = append(findings, found...)
	}
	return findings
}

// evaluateWholeRun applies the habit rules that reason over the entire
// simulation. They model a single-occupant household (see the detector
// docs); in a multi-person simulation they stay silent.
func (e *Engine) evaluateWholeRun(events []model.Event, result *Result, persons []*model.Person) []model.Finding {
	if result.TotalElapsed <= LongRunThreshold || len(persons) != 1 {
		return nil
	}
	occupant := persons[0]
	lastPos := 0
	if len(events) > 0 {
		lastPos = events[len(events)-1].Position()
	}

	var findings []model.Finding

	// Bathroom visit frequency over the whole run.
	days := result.TotalElapsed.Hours() / 24
	expected := float64(ExpectedBathroomPerDay) * days
	tolerance := float64(BathroomTolerancePerDay) * days
	visits := float64(result.BathroomVisits)
	if visits < expected-tolerance || visits > expected+tolerance {
		findings = append(findings, newFinding(model.IrregularMicturition, lastPos, occupant))
	}

	// Wardrobe use: a bedroom door opened with no person movement right
	// before it reads as opening the wardrobe.
	if e.countWardrobeOpens(events) < int(result.TotalElapsed/behavior.Day) {
		findings = append(findings, newFinding(model.NotChangingClothes, lastPos, occupant))
	}

	// Leaving the house at all.
	if e.countMainDoorOpens(events) == 0 {
		findings = append(findings, newFinding(model.NeverGoingOut, lastPos, occupant))
	}

	return findings
}

// countWardrobeOpens counts bedroom door-open events whose immediately
// preceding timeline event is not a person move.
func (e *Engine) countWardrobeOpens(events []model.Event) int {
	n := 0
	for i, ev := range events {
		open, ok := ev.(*model.PropertyChangeEvent)
		if !ok || classify(open.Device) != classDoor {
			continue
		}
		if !isOpenedProperty(open.Changed.Property) || !boolValue(open.Changed.Value) {
			continue
		}
		if !zoneIs(open.Device.ZoneAt(open.Position()), "bedroom") {
			continue
		}
		if i > 0 {
			if _, isMove := events[i-1].(*model.MoveEvent); isMove {
				continue
			}
		}
		n++
	}
	return n
}

// countMainDoorOpens counts open events on the main door across the whole
// timeline.
func (e *Engine) countMainDoorOpens(events []model.Event) int {
	if e.mainDoor == "" {
		return 0
	}
	n := 0
	for _, ev := range events {
		open, ok := ev.(*model.PropertyChangeEvent)
		if !ok || classify(open.Device) != classDoor {
			continue
		}
		if !isOpenedProperty(open.Changed.Property) || !boolValue(open.Changed.Value) {
			continue
		}
		zone := open.Device.ZoneAt(open.Position())
		if zone != nil && zone.Name == e.mainDoor {
			n++
		}
	}
	return n
}
