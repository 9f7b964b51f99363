package metrics

import coremetrics "github.com/vesselops/fueleu/core/metrics"

// MultiSink fans events out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordCompliance forwards the event to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordCompliance(ev coremetrics.ComplianceEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordCompliance(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordPool forwards pool summaries.
func (m *MultiSink) RecordPool(ev coremetrics.PoolEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordPool(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordTelemetry forwards telemetry events.
func (m *MultiSink) RecordTelemetry(ev coremetrics.TelemetryEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordTelemetry(ev); err != nil {
			return err
		}
	}
	return nil
}
