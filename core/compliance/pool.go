package compliance

import (
	"fmt"
	"math"

	"github.com/vesselops/fueleu/core/model"
)

// PoolCompliance aggregates the vessels into a pool summary for the year.
// An empty vessel set is not an error: the pool is vacuously compliant,
// every count and total is zero and only the target intensity is filled in.
func (e *Engine) PoolCompliance(vessels []model.Vessel, year int) (PoolSummary, error) {
	targetIntensity, err := e.scheme.targetIntensity(year)
	if err != nil {
		return PoolSummary{}, err
	}

	summary := PoolSummary{
		Year:                year,
		PoolTargetIntensity: round3(targetIntensity),
		PoolCompliant:       true,
		Vessels:             make([]VesselResult, 0, len(vessels)),
	}
	if len(vessels) == 0 {
		return summary, nil
	}

	var (
		totalFuel      float64
		totalEmissions float64
		totalBalance   float64
		totalDeficit   float64
		totalSurplus   float64
		totalPenalty   float64
	)
	for _, v := range vessels {
		r, err := e.compute(v, year)
		if err != nil {
			return PoolSummary{}, err
		}
		totalFuel += v.FuelConsumptionMJ
		totalEmissions += v.FuelConsumptionMJ * v.GHGIntensity
		totalBalance += r.balance
		totalPenalty += r.penalty
		if r.compliant {
			summary.CompliantCount++
			totalSurplus += r.balance
		} else {
			summary.NonCompliantCount++
			totalDeficit += -r.balance
		}
		summary.Vessels = append(summary.Vessels, newResult(v, year, r))
	}

	poolAverage := totalEmissions / totalFuel
	poolCompliant := totalBalance >= 0
	var poolPenalty float64
	if totalBalance < 0 {
		poolPenalty = math.Abs(totalBalance) * e.scheme.penaltyRate(year) / 1e6
	}

	summary.VesselCount = len(vessels)
	summary.ComplianceRate = round2(float64(summary.CompliantCount) / float64(len(vessels)) * 100)
	summary.PoolAverageIntensity = round3(poolAverage)
	summary.TotalEnergyConsumption = round2(totalFuel)
	summary.TotalEmissions = round2(totalEmissions)
	summary.TotalComplianceBalance = round2(totalBalance)
	summary.TotalDeficit = round2(totalDeficit)
	summary.TotalSurplus = round2(totalSurplus)
	summary.TotalPotentialPenalty = round6(totalPenalty)
	summary.PoolPotentialPenalty = round6(poolPenalty)
	summary.PoolCompliant = poolCompliant
	summary.PoolScore = round2(Score(poolAverage, targetIntensity))
	return summary, nil
}

// Trend evaluates the same vessel set against every year of the target table
// in [startYear, endYear], holding fuel and intensity figures constant. It
// shows how the tightening targets alone move the pool, not a forecast of
// vessel improvement. Years absent from the table are skipped.
func (e *Engine) Trend(vessels []model.Vessel, startYear, endYear int) ([]PoolSummary, error) {
	if startYear > endYear {
		return nil, fmt.Errorf("trend range inverted: start %d after end %d", startYear, endYear)
	}
	out := make([]PoolSummary, 0, endYear-startYear+1)
	for year := startYear; year <= endYear; year++ {
		if _, ok := e.scheme.ReductionTargets[year]; !ok {
			continue
		}
		summary, err := e.PoolCompliance(vessels, year)
		if err != nil {
			return nil, err
		}
		out = append(out, summary)
	}
	return out, nil
}
