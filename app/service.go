package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	apicompliance "github.com/vesselops/fueleu/api/compliance"
	apivessels "github.com/vesselops/fueleu/api/vessels"
	"github.com/vesselops/fueleu/config"
	corecompliance "github.com/vesselops/fueleu/core/compliance"
	coremetrics "github.com/vesselops/fueleu/core/metrics"
	"github.com/vesselops/fueleu/core/model"
	coremon "github.com/vesselops/fueleu/core/monitoring"
	"github.com/vesselops/fueleu/core/registry"
	"github.com/vesselops/fueleu/infra/logger"
	"github.com/vesselops/fueleu/infra/metrics"
	"github.com/vesselops/fueleu/infra/monitoring"
	"github.com/vesselops/fueleu/infra/mqtt"
	infraregistry "github.com/vesselops/fueleu/infra/registry"
	"github.com/vesselops/fueleu/internal/eventbus"
)

// Service wires the compliance engine, vessel registry, telemetry intake
// and the HTTP API together.
type Service struct {
	Engine   *corecompliance.Engine
	Store    registry.Store
	log      logger.Logger
	monitor  coremon.Monitor
	sink     coremetrics.Sink
	events   apicompliance.Buses
	listener *mqtt.TelemetryListener
	telemBus *eventbus.Bus[coremetrics.TelemetryEvent]
	httpAddr string
	promPort string
	promOn   bool
	closers  []func() error
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	zerolog.SetGlobalLevel(cfg.Logging.ZerologLevel())
	log := logger.New("service")

	scheme, err := cfg.Scheme.Scheme()
	if err != nil {
		return nil, fmt.Errorf("scheme: %w", err)
	}
	engine, err := corecompliance.New(scheme)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	store, closer, err := newStore(cfg.Registry)
	if err != nil {
		return nil, fmt.Errorf("registry: %w", err)
	}

	monitor, err := monitoring.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		return nil, fmt.Errorf("sentry: %w", err)
	}

	sink, err := newSink(cfg.Metrics)
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}

	svc := &Service{
		Engine:  engine,
		Store:   store,
		log:     log,
		monitor: monitor,
		sink:    sink,
		events: apicompliance.Buses{
			Compliance: eventbus.New[coremetrics.ComplianceEvent](),
			Pool:       eventbus.New[coremetrics.PoolEvent](),
		},
		telemBus: eventbus.New[coremetrics.TelemetryEvent](),
		httpAddr: cfg.HTTP.Addr,
		promPort: cfg.Metrics.PrometheusPort,
		promOn:   cfg.Metrics.PrometheusEnabled,
	}
	if closer != nil {
		svc.closers = append(svc.closers, closer)
	}

	if cfg.MQTT.Enabled {
		listener, err := mqtt.NewTelemetryListener(cfg.MQTT, svc.handleTelemetry)
		if err != nil {
			return nil, fmt.Errorf("telemetry listener: %w", err)
		}
		svc.listener = listener
	}
	return svc, nil
}

func newStore(cfg config.RegistryConfig) (registry.Store, func() error, error) {
	switch cfg.Backend {
	case "sqlite":
		store, err := infraregistry.NewSQLiteStore(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return registry.NewMemoryStore(), nil, nil
	}
}

func newSink(cfg coremetrics.Config) (coremetrics.Sink, error) {
	var sinks []coremetrics.Sink
	if cfg.PrometheusEnabled {
		sink, err := metrics.NewPromSink()
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.InfluxURL, cfg.InfluxToken, cfg.InfluxOrg, cfg.InfluxBucket))
	}
	switch len(sinks) {
	case 0:
		return coremetrics.NopSink{}, nil
	case 1:
		return sinks[0], nil
	default:
		return metrics.NewMultiSink(sinks...), nil
	}
}

// handleTelemetry upserts the reported figures into the registry. Reports
// that fail validation are counted and dropped.
func (s *Service) handleTelemetry(msg mqtt.TelemetryMessage) {
	v := model.Vessel{
		ID:                msg.VesselID,
		FuelConsumptionMJ: msg.FuelConsumptionMJ,
		GHGIntensity:      msg.GHGIntensity,
	}
	accepted := true
	if existing, err := s.Store.Get(msg.VesselID); err == nil {
		existing.FuelConsumptionMJ = msg.FuelConsumptionMJ
		existing.GHGIntensity = msg.GHGIntensity
		err = s.Store.Update(existing)
		accepted = err == nil
	} else if errors.Is(err, registry.ErrNotFound) {
		if err := s.Store.Add(v); err != nil {
			s.log.Warnf("telemetry rejected for %s: %v", msg.VesselID, err)
			accepted = false
		}
	} else {
		s.log.Errorf("telemetry lookup for %s: %v", msg.VesselID, err)
		s.monitor.CaptureException(err, map[string]string{"vessel_id": msg.VesselID})
		accepted = false
	}
	s.telemBus.Publish(coremetrics.TelemetryEvent{VesselID: msg.VesselID, Accepted: accepted, Time: time.Now()})
}

// Handler assembles the HTTP API routes.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	vesselsHandler := apivessels.NewHandler(s.Store)
	mux.Handle("/api/vessels", vesselsHandler)
	mux.Handle("/api/vessels/", vesselsHandler)
	mux.Handle("/api/compliance/", apicompliance.NewHandler(s.Store, s.Engine, s.events))
	return mux
}

// Run starts the service and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	go s.recordEvents(ctx)

	if s.promOn {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:              s.httpAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("http api listening on %s", s.httpAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// recordEvents drains the event buses into the metrics sink.
func (s *Service) recordEvents(ctx context.Context) {
	compliance := s.events.Compliance.Subscribe()
	pool := s.events.Pool.Subscribe()
	telemetry := s.telemBus.Subscribe()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-compliance:
			if err := s.sink.RecordCompliance(ev); err != nil {
				s.log.Warnf("record compliance: %v", err)
			}
		case ev := <-pool:
			if err := s.sink.RecordPool(ev); err != nil {
				s.log.Warnf("record pool: %v", err)
			}
		case ev := <-telemetry:
			if err := s.sink.RecordTelemetry(ev); err != nil {
				s.log.Warnf("record telemetry: %v", err)
			}
		}
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	var firstErr error
	if s.listener != nil {
		if err := s.listener.Close(); err != nil {
			firstErr = err
		}
	}
	s.events.Compliance.Close()
	s.events.Pool.Close()
	s.telemBus.Close()
	for _, closer := range s.closers {
		if err := closer(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if closable, ok := s.sink.(interface{ Close() }); ok {
		closable.Close()
	}
	s.monitor.Flush(2 * time.Second)
	return firstErr
}
