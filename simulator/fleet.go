package main

import (
	"math/rand"
	"time"

	"github.com/vesselops/fueleu/infra/mqtt"
)

var rng = rand.New(rand.NewSource(time.Now().UnixNano()))

// SimVessel drifts around a baseline intensity and accumulates fuel burn
// between reports.
type SimVessel struct {
	ID                string
	BaseIntensity     float64
	IntensityJitter   float64
	FuelPerReportMJ   float64
	fuelConsumptionMJ float64
}

// Next produces the vessel's next telemetry report.
func (v *SimVessel) Next() mqtt.TelemetryMessage {
	v.fuelConsumptionMJ += v.FuelPerReportMJ * (0.9 + 0.2*rng.Float64())
	intensity := v.BaseIntensity + v.IntensityJitter*(2*rng.Float64()-1)
	return mqtt.TelemetryMessage{
		VesselID:          v.ID,
		FuelConsumptionMJ: v.fuelConsumptionMJ,
		GHGIntensity:      intensity,
		Timestamp:         time.Now().Unix(),
	}
}

// NewFleet builds n simulated vessels spread across compliant and
// non-compliant baselines.
func NewFleet(n int) []*SimVessel {
	fleet := make([]*SimVessel, n)
	for i := range fleet {
		base := 86.0 + rng.Float64()*10 // straddles the 2025 target
		fleet[i] = &SimVessel{
			ID:              vesselID(i),
			BaseIntensity:   base,
			IntensityJitter: 0.5,
			FuelPerReportMJ: 500 + rng.Float64()*2000,
		}
	}
	return fleet
}

func vesselID(i int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	return "sim-" + string(letters[i%len(letters)]) + string(rune('0'+i/len(letters)%10))
}
