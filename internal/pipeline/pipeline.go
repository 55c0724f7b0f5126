package pipeline

import (
	"context"
	"fmt"

	"github.com/edsr/vigilo/internal/aggir"
	"github.com/edsr/vigilo/internal/behavior"
	"github.com/edsr/vigilo/internal/causality"
	"github.com/edsr/vigilo/internal/config"
	"github.com/edsr/vigilo/internal/entity"
	"github.com/edsr/vigilo/internal/logging"
	"github.com/edsr/vigilo/internal/metrics"
	"github.com/edsr/vigilo/internal/model"
	"github.com/edsr/vigilo/internal/report"
	"github.com/edsr/vigilo/internal/rules"
	"github.com/edsr/vigilo/internal/timeline"
)

// Pipeline runs the full analysis chain over a behavior log: parse,
// entity construction, causality resolution, timeline assembly,
// segmentation, rule evaluation and dependency aggregation.
type Pipeline struct {
	cfg     *config.Config
	metrics *metrics.Metrics
	logger  *logging.Logger
}

// New creates a pipeline. metrics may be nil when collection is disabled.
func New(cfg *config.Config, m *metrics.Metrics) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		metrics: m,
		logger:  logging.GetLogger("pipeline"),
	}
}

// Run analyzes the behavior file at path and builds the final report.
func (p *Pipeline) Run(ctx context.Context, path string) (*report.Report, error) {
	doc, err := behavior.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("parsing behavior file: %w", err)
	}
	p.logger.Info("parsed %d records from %s", len(doc.Records), path)
	for i := range doc.Records {
		p.metrics.RecordParsed(doc.Records[i].Tag)
	}

	set, err := entity.Build(doc)
	if err != nil {
		return nil, fmt.Errorf("building entities: %w", err)
	}
	p.logger.Debug("built %d zones, %d devices, %d persons",
		len(set.Zones), len(set.Devices), len(set.Persons))

	resolver := causality.NewResolver(doc, set)
	resolver.NearestFaultActor = p.cfg.FaultActor == "nearest"
	resolved := resolver.Resolve()

	events, err := timeline.Assemble(doc, resolved)
	if err != nil {
		return nil, fmt.Errorf("assembling timeline: %w", err)
	}
	for _, ev := range events {
		p.metrics.EventAssembled(eventVariant(ev))
	}

	situations := timeline.Segment(events)
	for range situations {
		p.metrics.SituationSegmented()
	}
	p.logger.Info("assembled %d events into %d situations", len(events), len(situations))

	engine := rules.New(doc.StartClock, p.cfg.MainDoorZone, rules.WithMetrics(p.metrics))
	result, err := engine.Evaluate(ctx, events, situations, set.Persons)
	if err != nil {
		return nil, fmt.Errorf("evaluating rules: %w", err)
	}
	p.logger.Info("recorded %d findings over %s of simulated time",
		len(result.Findings), result.TotalElapsed)

	profiles, err := aggir.Aggregate(result.Findings, set.Persons)
	if err != nil {
		return nil, fmt.Errorf("aggregating dependency profiles: %w", err)
	}

	rep := report.Build(set.Persons, result, profiles, len(doc.Records))
	rep.StartClock = doc.StartClock.String()
	rep.StartDate = doc.StartDate
	return rep, nil
}

func eventVariant(ev model.Event) string {
	switch ev.(type) {
	case *model.PlainEvent:
		return "plain"
	case *model.MoveEvent:
		return "move"
	case *model.VarChangeEvent:
		return "var_change"
	case *model.PropertyChangeEvent:
		return "property_change"
	case *model.TimeEvent:
		return "time"
	default:
		return "unknown"
	}
}
