package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/agbru/beaconfix/internal/aggregator"
	"github.com/agbru/beaconfix/internal/beacon"
	apperrors "github.com/agbru/beaconfix/internal/errors"
)

// Namespace prefixes every metric exported by the service.
const Namespace = "beaconfix"

// Outcome labels of resolved rounds.
const (
	OutcomeResolved   = "resolved"
	OutcomeIncomplete = "incomplete"
	OutcomeUnsolvable = "unsolvable"
	OutcomeNoMessage  = "no_message"
	OutcomeError      = "error"
)

// RoundMetrics records aggregator events as Prometheus metrics. It is both
// an aggregator.Observer and a prometheus.Collector, so one value is handed
// to the aggregator and registered with the exporter.
type RoundMetrics struct {
	opened   prometheus.Counter
	readings *prometheus.CounterVec
	sealed   *prometheus.CounterVec
	resolved *prometheus.CounterVec
	duration prometheus.Histogram
	pending  prometheus.Gauge
}

var (
	_ aggregator.Observer  = (*RoundMetrics)(nil)
	_ prometheus.Collector = (*RoundMetrics)(nil)
)

// NewRoundMetrics creates an unregistered set of round metrics.
func NewRoundMetrics() *RoundMetrics {
	return &RoundMetrics{
		opened: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "rounds_opened_total",
			Help:      "Number of split rounds opened.",
		}),
		readings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "readings_total",
			Help:      "Split readings submitted, by beacon and result.",
		}, []string{"beacon", "result"}),
		sealed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "rounds_sealed_total",
			Help:      "Rounds sealed, by trigger.",
		}, []string{"trigger"}),
		resolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "rounds_resolved_total",
			Help:      "Rounds resolved, by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "round_duration_seconds",
			Help:      "Time from the first reading of a round to its shared outcome.",
			Buckets:   []float64{.001, .01, .1, .5, 1, 2.5, 5, 10, 30},
		}),
		pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "round_pending_readings",
			Help:      "Readings held by the live round.",
		}),
	}
}

// Describe implements prometheus.Collector.
func (m *RoundMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.opened.Describe(ch)
	m.readings.Describe(ch)
	m.sealed.Describe(ch)
	m.resolved.Describe(ch)
	m.duration.Describe(ch)
	m.pending.Describe(ch)
}

// Collect implements prometheus.Collector.
func (m *RoundMetrics) Collect(ch chan<- prometheus.Metric) {
	m.opened.Collect(ch)
	m.readings.Collect(ch)
	m.sealed.Collect(ch)
	m.resolved.Collect(ch)
	m.duration.Collect(ch)
	m.pending.Collect(ch)
}

// RoundOpened implements aggregator.Observer.
func (m *RoundMetrics) RoundOpened(string) {
	m.opened.Inc()
	m.pending.Set(0)
}

// ReadingAccepted implements aggregator.Observer.
func (m *RoundMetrics) ReadingAccepted(_ string, id beacon.ID, count int) {
	m.readings.WithLabelValues(id.String(), "accepted").Inc()
	m.pending.Set(float64(count))
}

// ReadingRejected implements aggregator.Observer.
func (m *RoundMetrics) ReadingRejected(id beacon.ID, err error) {
	result := "rejected"
	var capacityErr apperrors.CapacityError
	switch {
	case errors.As(err, &capacityErr):
		result = "capacity"
	case errors.Is(err, apperrors.ErrClosed):
		result = "closed"
	}
	m.readings.WithLabelValues(id.String(), result).Inc()
}

// RoundSealed implements aggregator.Observer.
func (m *RoundMetrics) RoundSealed(_ string, trigger aggregator.SealTrigger, _ int) {
	m.sealed.WithLabelValues(trigger.String()).Inc()
}

// RoundResolved implements aggregator.Observer.
func (m *RoundMetrics) RoundResolved(_ string, err error, elapsed time.Duration) {
	m.resolved.WithLabelValues(OutcomeLabel(err)).Inc()
	m.duration.Observe(elapsed.Seconds())
	m.pending.Set(0)
}

// OutcomeLabel classifies a round result for the outcome label.
func OutcomeLabel(err error) string {
	var (
		validationErr apperrors.ValidationError
		unsolvableErr apperrors.UnsolvableError
		noMessageErr  apperrors.NoMessageError
	)
	switch {
	case err == nil:
		return OutcomeResolved
	case errors.As(err, &validationErr):
		return OutcomeIncomplete
	case errors.As(err, &unsolvableErr):
		return OutcomeUnsolvable
	case errors.As(err, &noMessageErr):
		return OutcomeNoMessage
	default:
		return OutcomeError
	}
}
