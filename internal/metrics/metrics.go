// Package metrics instruments the analysis pipeline with Prometheus
// collectors on a private registry. A batch run has no scrape endpoint; the
// gathered families are rendered in text exposition format on demand.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Metrics bundles the pipeline's collectors. A nil *Metrics is a valid
// no-op receiver so instrumentation can be left unwired in tests.
type Metrics struct {
	registry *prometheus.Registry

	recordsParsed    *prometheus.CounterVec
	eventsAssembled  *prometheus.CounterVec
	situationsTotal  prometheus.Counter
	findingsTotal    *prometheus.CounterVec
	detectorDuration *prometheus.HistogramVec
}

// New creates a metrics bundle with its own registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		recordsParsed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vigilo_records_parsed_total",
			Help: "Raw records read from the behavior script, by tag.",
		}, []string{"tag"}),
		eventsAssembled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vigilo_events_assembled_total",
			Help: "Timeline events assembled, by variant.",
		}, []string{"variant"}),
		situationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vigilo_situations_total",
			Help: "Situations segmented from the timeline.",
		}),
		findingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vigilo_findings_total",
			Help: "Findings produced by the rule engine, by kind.",
		}, []string{"kind"}),
		detectorDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vigilo_detector_duration_seconds",
			Help:    "Wall time spent per detector per situation.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"detector"}),
	}
	m.registry.MustRegister(
		m.recordsParsed,
		m.eventsAssembled,
		m.situationsTotal,
		m.findingsTotal,
		m.detectorDuration,
	)
	return m
}

// RecordParsed counts one raw record.
func (m *Metrics) RecordParsed(tag string) {
	if m == nil {
		return
	}
	m.recordsParsed.WithLabelValues(tag).Inc()
}

// EventAssembled counts one timeline event.
func (m *Metrics) EventAssembled(variant string) {
	if m == nil {
		return
	}
	m.eventsAssembled.WithLabelValues(variant).Inc()
}

// SituationSegmented counts one situation.
func (m *Metrics) SituationSegmented() {
	if m == nil {
		return
	}
	m.situationsTotal.Inc()
}

// FindingRecorded counts one finding by kind.
func (m *Metrics) FindingRecorded(kind string) {
	if m == nil {
		return
	}
	m.findingsTotal.WithLabelValues(kind).Inc()
}

// ObserveDetector records one detector evaluation's wall time in seconds.
func (m *Metrics) ObserveDetector(detector string, seconds float64) {
	if m == nil {
		return
	}
	m.detectorDuration.WithLabelValues(detector).Observe(seconds)
}

// WriteTo renders all gathered metric families in text exposition format.
func (m *Metrics) WriteTo(w io.Writer) error {
	if m == nil {
		return nil
	}
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encoding metric family %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
