package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/vesselops/fueleu/core/metrics"
)

// PromSink records compliance activity in Prometheus metrics.
type PromSink struct {
	computations *prometheus.CounterVec
	scores       *prometheus.HistogramVec
	poolBalance  *prometheus.GaugeVec
	telemetry    *prometheus.CounterVec
}

// NewPromSink registers compliance metrics on the default Prometheus
// registerer. The metrics server is started separately.
func NewPromSink() (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global one.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	computations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "compliance_computations_total",
		Help: "Total number of per-vessel compliance computations",
	}, []string{"status", "year"})
	scores := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "compliance_score",
		Help:    "Distribution of vessel compliance scores",
		Buckets: prometheus.LinearBuckets(0, 10, 11),
	}, []string{"year"})
	poolBalance := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "pool_compliance_balance_tco2e",
		Help: "Net compliance balance of the last computed pool summary",
	}, []string{"year"})
	telemetry := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "telemetry_messages_total",
		Help: "Fuel telemetry messages received",
	}, []string{"accepted"})

	for i, c := range []prometheus.Collector{computations, scores, poolBalance, telemetry} {
		if err := reg.Register(c); err != nil {
			if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
				switch i {
				case 0:
					computations = are.ExistingCollector.(*prometheus.CounterVec)
				case 1:
					scores = are.ExistingCollector.(*prometheus.HistogramVec)
				case 2:
					poolBalance = are.ExistingCollector.(*prometheus.GaugeVec)
				case 3:
					telemetry = are.ExistingCollector.(*prometheus.CounterVec)
				}
			} else {
				return nil, err
			}
		}
	}

	return &PromSink{
		computations: computations,
		scores:       scores,
		poolBalance:  poolBalance,
		telemetry:    telemetry,
	}, nil
}

// RecordCompliance increments the computation counter and observes the score.
func (s *PromSink) RecordCompliance(ev coremetrics.ComplianceEvent) error {
	year := strconv.Itoa(ev.Result.Year)
	s.computations.WithLabelValues(string(ev.Result.Status), year).Inc()
	s.scores.WithLabelValues(year).Observe(ev.Result.Score)
	return nil
}

// RecordPool sets the pool balance gauge.
func (s *PromSink) RecordPool(ev coremetrics.PoolEvent) error {
	s.poolBalance.WithLabelValues(strconv.Itoa(ev.Summary.Year)).Set(ev.Summary.TotalComplianceBalance)
	return nil
}

// RecordTelemetry counts telemetry messages by acceptance.
func (s *PromSink) RecordTelemetry(ev coremetrics.TelemetryEvent) error {
	accepted := "false"
	if ev.Accepted {
		accepted = "true"
	}
	s.telemetry.WithLabelValues(accepted).Inc()
	return nil
}
