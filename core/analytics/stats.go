package analytics

import (
	"gonum.org/v1/gonum/stat"

	"github.com/vesselops/fueleu/core/compliance"
	"github.com/vesselops/fueleu/core/model"
)

// FleetStats summarizes the intensity distribution of a vessel set.
type FleetStats struct {
	VesselCount int `json:"vessel_count"`
	// MeanIntensity is fuel-weighted, consistent with pool aggregation.
	MeanIntensity   float64 `json:"mean_intensity"`
	IntensityStdDev float64 `json:"intensity_std_dev"`
	TotalEnergyMJ   float64 `json:"total_energy_mj"`
	MinIntensity    float64 `json:"min_intensity"`
	MaxIntensity    float64 `json:"max_intensity"`
}

// Fleet computes fuel-weighted intensity statistics over the vessels.
func Fleet(vessels []model.Vessel) FleetStats {
	if len(vessels) == 0 {
		return FleetStats{}
	}
	xs := make([]float64, len(vessels))
	ws := make([]float64, len(vessels))
	var total float64
	lo, hi := vessels[0].GHGIntensity, vessels[0].GHGIntensity
	for i, v := range vessels {
		xs[i] = v.GHGIntensity
		ws[i] = v.FuelConsumptionMJ
		total += v.FuelConsumptionMJ
		if v.GHGIntensity < lo {
			lo = v.GHGIntensity
		}
		if v.GHGIntensity > hi {
			hi = v.GHGIntensity
		}
	}
	return FleetStats{
		VesselCount:     len(vessels),
		MeanIntensity:   stat.Mean(xs, ws),
		IntensityStdDev: stat.StdDev(xs, ws),
		TotalEnergyMJ:   total,
		MinIntensity:    lo,
		MaxIntensity:    hi,
	}
}

// Outlook is a linear fit of the pool balance across trend years.
type Outlook struct {
	// Slope is the change in total compliance balance per year, in tCO2e.
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	// FirstDeficitYear is the first covered year with a negative net
	// balance, or 0 when the pool stays in surplus.
	FirstDeficitYear int `json:"first_deficit_year"`
}

// BalanceOutlook fits total compliance balance against the trend years.
// Fewer than two points yield a zero slope.
func BalanceOutlook(points []compliance.PoolSummary) Outlook {
	out := Outlook{}
	for _, p := range points {
		if p.TotalComplianceBalance < 0 {
			out.FirstDeficitYear = p.Year
			break
		}
	}
	if len(points) < 2 {
		return out
	}
	years := make([]float64, len(points))
	balances := make([]float64, len(points))
	for i, p := range points {
		years[i] = float64(p.Year)
		balances[i] = p.TotalComplianceBalance
	}
	out.Intercept, out.Slope = stat.LinearRegression(years, balances, nil, false)
	return out
}
