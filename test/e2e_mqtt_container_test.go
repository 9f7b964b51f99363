package test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/vesselops/fueleu/core/model"
	"github.com/vesselops/fueleu/core/registry"
	"github.com/vesselops/fueleu/infra/mqtt"
)

func waitForMQTTReady(broker string, timeout time.Duration) error {
	opts := paho.NewClientOptions().AddBroker(broker).SetClientID("probe")
	deadline := time.Now().Add(timeout)
	var lastErr error
	for time.Now().Before(deadline) {
		cli := paho.NewClient(opts)
		token := cli.Connect()
		token.Wait()
		if token.Error() == nil {
			cli.Disconnect(100)
			return nil
		}
		lastErr = token.Error()
		time.Sleep(100 * time.Millisecond)
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("timeout waiting for broker")
	}
	return lastErr
}

func startMosquitto(ctx context.Context, t *testing.T) (tc.Container, string) {
	t.Helper()
	conf := `listener 1883
allow_anonymous true
persistence false
log_dest stdout
log_type error
log_type warning
`
	dir := t.TempDir()
	path := filepath.Join(dir, "mosquitto.conf")
	if err := os.WriteFile(path, []byte(conf), 0644); err != nil {
		t.Fatalf("write conf: %v", err)
	}

	req := tc.ContainerRequest{
		Image:        "eclipse-mosquitto:2.0",
		ExposedPorts: []string{"1883/tcp"},
		WaitingFor:   wait.ForListeningPort("1883/tcp"),
		Files: []tc.ContainerFile{
			{
				HostFilePath:      path,
				ContainerFilePath: "/mosquitto/config/mosquitto.conf",
				FileMode:          0644,
			},
		},
	}
	cont, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("container start: %v", err)
	}
	host, err := cont.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := cont.MappedPort(ctx, "1883")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	broker := fmt.Sprintf("tcp://%s:%s", host, port.Port())
	if err := waitForMQTTReady(broker, 5*time.Second); err != nil {
		t.Skip("Mosquitto not ready after retries")
	}
	return cont, broker
}

func TestTelemetryRoundTrip(t *testing.T) {
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker not installed")
	}
	ctx := context.Background()
	cont, broker := startMosquitto(ctx, t)
	defer func() {
		if err := cont.Terminate(ctx); err != nil {
			t.Logf("terminate: %v", err)
		}
	}()

	store := registry.NewMemoryStore()
	received := make(chan mqtt.TelemetryMessage, 1)

	listenCfg := mqtt.Config{Broker: broker, ClientID: "e2e-listener"}
	listenCfg.SetDefaults()
	listener, err := mqtt.NewTelemetryListener(listenCfg, func(msg mqtt.TelemetryMessage) {
		_ = store.Add(model.Vessel{
			ID:                msg.VesselID,
			FuelConsumptionMJ: msg.FuelConsumptionMJ,
			GHGIntensity:      msg.GHGIntensity,
		})
		received <- msg
	})
	if err != nil {
		t.Fatalf("listener: %v", err)
	}
	defer func() {
		if err := listener.Close(); err != nil {
			t.Logf("listener close: %v", err)
		}
	}()

	pubCfg := mqtt.Config{Broker: broker, ClientID: "e2e-publisher"}
	pubCfg.SetDefaults()
	pub, err := mqtt.NewTelemetryPublisher(pubCfg)
	if err != nil {
		t.Fatalf("publisher: %v", err)
	}
	defer func() {
		if err := pub.Close(); err != nil {
			t.Logf("publisher close: %v", err)
		}
	}()

	msg := mqtt.TelemetryMessage{
		VesselID:          "e2e-v1",
		FuelConsumptionMJ: 45000,
		GHGIntensity:      89.25,
		Timestamp:         time.Now().Unix(),
	}
	if err := pub.Publish(msg); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case got := <-received:
		if got.VesselID != "e2e-v1" || got.GHGIntensity != 89.25 {
			t.Fatalf("unexpected message %#v", got)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("telemetry not delivered")
	}

	v, err := store.Get("e2e-v1")
	if err != nil {
		t.Fatalf("vessel not stored: %v", err)
	}
	if v.FuelConsumptionMJ != 45000 {
		t.Fatalf("stored fuel: %v", v.FuelConsumptionMJ)
	}
}
