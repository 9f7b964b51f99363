package mqtt

import (
	"encoding/json"
	"fmt"
	"strings"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/vesselops/fueleu/infra/logger"
)

// TelemetryMessage is the payload vessels publish after a voyage: the
// cumulative energy used and the resulting well-to-wake intensity.
type TelemetryMessage struct {
	VesselID          string  `json:"vessel_id"`
	FuelConsumptionMJ float64 `json:"fuel_consumption_mj"`
	GHGIntensity      float64 `json:"ghg_intensity"`
	Timestamp         int64   `json:"timestamp"`
}

// TelemetryHandler consumes decoded telemetry messages.
type TelemetryHandler func(TelemetryMessage)

// TelemetryListener subscribes to the fleet telemetry topic and forwards
// decoded messages to the handler.
type TelemetryListener struct {
	cli   paho.Client
	topic string
	log   logger.Logger
}

// NewTelemetryListener connects to the broker and subscribes to the
// telemetry topic. Messages that fail to decode are logged and dropped.
func NewTelemetryListener(cfg Config, handler TelemetryHandler) (*TelemetryListener, error) {
	cfg.SetDefaults()
	opts, err := NewClientOptions(cfg)
	if err != nil {
		return nil, err
	}

	log := logger.New("mqtt-telemetry")
	l := &TelemetryListener{topic: cfg.TelemetryTopic, log: log}

	onMessage := func(_ paho.Client, msg paho.Message) {
		var m TelemetryMessage
		if err := json.Unmarshal(msg.Payload(), &m); err != nil {
			log.Errorf("invalid telemetry on %s: %v", msg.Topic(), err)
			return
		}
		if m.VesselID == "" {
			m.VesselID = vesselIDFromTopic(msg.Topic())
		}
		handler(m)
	}
	opts.OnConnect = func(c paho.Client) {
		log.Infof("MQTT connected")
		if token := c.Subscribe(cfg.TelemetryTopic, cfg.QoS, onMessage); token.Wait() && token.Error() != nil {
			log.Errorf("subscribe error: %v", token.Error())
		}
	}

	cli, err := connect(opts, log)
	if err != nil {
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}
	l.cli = cli
	return l, nil
}

// Close disconnects from the broker.
func (l *TelemetryListener) Close() error {
	l.cli.Disconnect(250)
	return nil
}

// vesselIDFromTopic extracts the vessel segment of "fleet/<id>/telemetry".
func vesselIDFromTopic(topic string) string {
	parts := strings.Split(topic, "/")
	if len(parts) >= 2 {
		return parts[1]
	}
	return ""
}
