package metrics

import (
	"time"

	"github.com/vesselops/fueleu/core/compliance"
)

// ComplianceEvent is emitted for every per-vessel compliance computation.
type ComplianceEvent struct {
	Result compliance.VesselResult
	Time   time.Time
}

// PoolEvent is emitted when a pool summary has been computed.
type PoolEvent struct {
	Summary compliance.PoolSummary
	Time    time.Time
}

// TelemetryEvent records a fuel telemetry message applied to the registry.
type TelemetryEvent struct {
	VesselID string
	Accepted bool
	Time     time.Time
}

// Sink records compliance activity for observability purposes.
// Implementations must be safe for concurrent use.
type Sink interface {
	RecordCompliance(ev ComplianceEvent) error
	RecordPool(ev PoolEvent) error
	RecordTelemetry(ev TelemetryEvent) error
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) RecordCompliance(ComplianceEvent) error { return nil }
func (NopSink) RecordPool(PoolEvent) error             { return nil }
func (NopSink) RecordTelemetry(TelemetryEvent) error   { return nil }
