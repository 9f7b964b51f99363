package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/vesselops/fueleu/core/logger"
	coremetrics "github.com/vesselops/fueleu/core/metrics"
	infralog "github.com/vesselops/fueleu/infra/logger"
)

// InfluxSink writes compliance events to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a sink for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	client := influxdb2.NewClientWithOptions(url, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      infralog.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a
// NopSink when the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.Sink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordCompliance writes the vessel result as a point.
func (s *InfluxSink) RecordCompliance(ev coremetrics.ComplianceEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	r := ev.Result
	p := write.NewPointWithMeasurement("vessel_compliance").
		AddTag("vessel_id", r.ID).
		AddTag("pool", r.Pool).
		AddTag("year", strconv.Itoa(r.Year)).
		AddTag("status", string(r.Status)).
		AddField("ghg_intensity", r.GHGIntensity).
		AddField("target_intensity", r.TargetIntensity).
		AddField("compliance_balance", r.ComplianceBalance).
		AddField("potential_penalty", r.PotentialPenalty).
		AddField("score", r.Score).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordPool writes the pool summary as a point.
func (s *InfluxSink) RecordPool(ev coremetrics.PoolEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	sum := ev.Summary
	p := write.NewPointWithMeasurement("pool_compliance").
		AddTag("year", strconv.Itoa(sum.Year)).
		AddTag("compliant", strconv.FormatBool(sum.PoolCompliant)).
		AddField("vessel_count", sum.VesselCount).
		AddField("average_intensity", sum.PoolAverageIntensity).
		AddField("total_balance", sum.TotalComplianceBalance).
		AddField("total_deficit", sum.TotalDeficit).
		AddField("total_surplus", sum.TotalSurplus).
		AddField("pool_penalty", sum.PoolPotentialPenalty).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordTelemetry writes a telemetry acceptance point.
func (s *InfluxSink) RecordTelemetry(ev coremetrics.TelemetryEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("fuel_telemetry").
		AddTag("vessel_id", ev.VesselID).
		AddTag("accepted", strconv.FormatBool(ev.Accepted)).
		AddField("count", 1).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close shuts down the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }
