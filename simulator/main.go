package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/vesselops/fueleu/infra/mqtt"
)

func main() {
	broker := flag.String("broker", "tcp://localhost:1883", "MQTT broker URL")
	count := flag.Int("vessels", 5, "number of simulated vessels")
	interval := flag.Duration("interval", 5*time.Second, "report interval")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := mqtt.Config{Broker: *broker}
	cfg.SetDefaults()
	pub, err := mqtt.NewTelemetryPublisher(cfg)
	if err != nil {
		log.Fatalf("publisher: %v", err)
	}
	defer pub.Close()

	fleet := NewFleet(*count)
	log.Printf("simulating %d vessels every %s", *count, *interval)

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, v := range fleet {
				msg := v.Next()
				if err := pub.Publish(msg); err != nil {
					log.Printf("publish %s: %v", msg.VesselID, err)
				}
			}
		}
	}
}
