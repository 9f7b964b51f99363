package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/vesselops/fueleu/core/compliance"
	coremetrics "github.com/vesselops/fueleu/core/metrics"
)

func TestPromSink_RecordCompliance(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	ev := coremetrics.ComplianceEvent{
		Result: compliance.VesselResult{
			Year:   2025,
			Score:  72.5,
			Status: compliance.StatusNonCompliant,
		},
		Time: time.Now(),
	}
	require.NoError(t, sink.RecordCompliance(ev))

	ps := sink.(*PromSink)
	got := testutil.ToFloat64(ps.computations.WithLabelValues("non-compliant", "2025"))
	require.Equal(t, float64(1), got)
}

func TestPromSink_RecordPool(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	ev := coremetrics.PoolEvent{
		Summary: compliance.PoolSummary{Year: 2030, TotalComplianceBalance: -12.5},
	}
	require.NoError(t, sink.RecordPool(ev))

	ps := sink.(*PromSink)
	got := testutil.ToFloat64(ps.poolBalance.WithLabelValues("2030"))
	require.Equal(t, -12.5, got)
}

func TestPromSink_DoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)
	// Registering on the same registry again must reuse the collectors.
	_, err = NewPromSinkWithRegistry(reg)
	require.NoError(t, err)
}

func TestMultiSink_FanOut(t *testing.T) {
	reg := prometheus.NewRegistry()
	prom, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)
	multi := NewMultiSink(coremetrics.NopSink{}, prom)

	ev := coremetrics.TelemetryEvent{VesselID: "v1", Accepted: true, Time: time.Now()}
	require.NoError(t, multi.RecordTelemetry(ev))

	ps := prom.(*PromSink)
	got := testutil.ToFloat64(ps.telemetry.WithLabelValues("true"))
	require.Equal(t, float64(1), got)
}
