package analytics

import (
	"math"
	"testing"

	"github.com/vesselops/fueleu/core/compliance"
	"github.com/vesselops/fueleu/core/model"
)

func TestFleet_WeightedMean(t *testing.T) {
	vessels := []model.Vessel{
		{ID: "a", FuelConsumptionMJ: 1e6, GHGIntensity: 95},
		{ID: "b", FuelConsumptionMJ: 1000, GHGIntensity: 80},
	}
	s := Fleet(vessels)
	want := (1e6*95 + 1000*80) / (1e6 + 1000)
	if math.Abs(s.MeanIntensity-want) > 1e-9 {
		t.Fatalf("mean: got %v want %v", s.MeanIntensity, want)
	}
	if s.MinIntensity != 80 || s.MaxIntensity != 95 {
		t.Fatalf("bounds: %v..%v", s.MinIntensity, s.MaxIntensity)
	}
	if s.VesselCount != 2 {
		t.Fatalf("count: %d", s.VesselCount)
	}
}

func TestFleet_Empty(t *testing.T) {
	s := Fleet(nil)
	if s.VesselCount != 0 || s.MeanIntensity != 0 {
		t.Fatalf("empty fleet: %+v", s)
	}
}

func TestBalanceOutlook(t *testing.T) {
	points := []compliance.PoolSummary{
		{Year: 2025, TotalComplianceBalance: 10},
		{Year: 2026, TotalComplianceBalance: 6},
		{Year: 2027, TotalComplianceBalance: 2},
		{Year: 2028, TotalComplianceBalance: -2},
	}
	o := BalanceOutlook(points)
	if math.Abs(o.Slope+4) > 1e-9 {
		t.Fatalf("slope: got %v want -4", o.Slope)
	}
	if o.FirstDeficitYear != 2028 {
		t.Fatalf("first deficit year: got %d", o.FirstDeficitYear)
	}
}

func TestBalanceOutlook_TooFewPoints(t *testing.T) {
	o := BalanceOutlook([]compliance.PoolSummary{{Year: 2025, TotalComplianceBalance: 1}})
	if o.Slope != 0 {
		t.Fatalf("slope: got %v", o.Slope)
	}
	if o.FirstDeficitYear != 0 {
		t.Fatalf("first deficit year: got %d", o.FirstDeficitYear)
	}
}
