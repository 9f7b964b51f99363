package mqtt

import (
	"encoding/json"
	"fmt"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/vesselops/fueleu/infra/logger"
)

// TelemetryPublisher publishes vessel fuel reports, used by the fleet
// simulator and by operator tooling.
type TelemetryPublisher struct {
	cli paho.Client
	qos byte
	log logger.Logger
}

// NewTelemetryPublisher connects to the broker for publishing.
func NewTelemetryPublisher(cfg Config) (*TelemetryPublisher, error) {
	cfg.SetDefaults()
	opts, err := NewClientOptions(cfg)
	if err != nil {
		return nil, err
	}
	log := logger.New("mqtt-publisher")
	cli, err := connect(opts, log)
	if err != nil {
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}
	return &TelemetryPublisher{cli: cli, qos: cfg.QoS, log: log}, nil
}

// Publish sends the message on the vessel's telemetry topic.
func (p *TelemetryPublisher) Publish(m TelemetryMessage) error {
	payload, err := json.Marshal(m)
	if err != nil {
		return err
	}
	topic := fmt.Sprintf("fleet/%s/telemetry", m.VesselID)
	token := p.cli.Publish(topic, p.qos, false, payload)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// Close disconnects from the broker.
func (p *TelemetryPublisher) Close() error {
	p.cli.Disconnect(250)
	return nil
}
