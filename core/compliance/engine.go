package compliance

import (
	"math"

	"github.com/vesselops/fueleu/core/model"
)

// Engine computes GHG intensity compliance figures for vessels and pools.
// It holds only the scheme constants, performs no I/O and keeps no state
// between calls, so a single Engine is safe for concurrent use.
type Engine struct {
	scheme Scheme
}

// New builds an Engine from the scheme. The tables are copied so later
// mutation of the caller's maps cannot affect the engine.
func New(scheme Scheme) (*Engine, error) {
	if err := scheme.Validate(); err != nil {
		return nil, err
	}
	return &Engine{scheme: scheme.clone()}, nil
}

// NewDefault builds an Engine on the default scheme constants.
func NewDefault() *Engine {
	e, err := New(DefaultScheme())
	if err != nil {
		panic(err)
	}
	return e
}

// Scheme returns a copy of the engine's scheme constants.
func (e *Engine) Scheme() Scheme { return e.scheme.clone() }

// raw carries the unrounded per-vessel figures. Aggregation works on raw
// values only; display rounding happens once, in the exported result.
type raw struct {
	targetIntensity  float64
	deviation        float64
	deviationPercent float64
	energyDeficit    float64
	energySurplus    float64
	balance          float64
	penalty          float64
	score            float64
	compliant        bool
}

// compute runs the per-vessel arithmetic. Degenerate inputs (zero or negative
// fuel/intensity) are not rejected; NaN and Inf propagate to the caller.
func (e *Engine) compute(v model.Vessel, year int) (raw, error) {
	targetIntensity, err := e.scheme.targetIntensity(year)
	if err != nil {
		return raw{}, err
	}

	deviation := targetIntensity - v.GHGIntensity
	balance := deviation * v.FuelConsumptionMJ / 1e6
	compliant := balance >= 0

	var penalty float64
	if balance < 0 {
		penalty = math.Abs(balance) * e.scheme.penaltyRate(year) / 1e6
	}

	return raw{
		targetIntensity:  targetIntensity,
		deviation:        deviation,
		deviationPercent: deviation / targetIntensity * 100,
		energyDeficit:    math.Max(0, v.FuelConsumptionMJ*(v.GHGIntensity-targetIntensity)),
		energySurplus:    math.Max(0, v.FuelConsumptionMJ*(targetIntensity-v.GHGIntensity)),
		balance:          balance,
		penalty:          penalty,
		score:            Score(v.GHGIntensity, targetIntensity),
		compliant:        compliant,
	}, nil
}

// VesselCompliance computes the compliance record for one vessel and year.
// The year must appear in the reduction target table; otherwise an
// InvalidYearError is returned and no partial result is produced.
func (e *Engine) VesselCompliance(v model.Vessel, year int) (VesselResult, error) {
	r, err := e.compute(v, year)
	if err != nil {
		return VesselResult{}, err
	}
	return newResult(v, year, r), nil
}

// newResult applies the display rounding to the raw figures.
func newResult(v model.Vessel, year int, r raw) VesselResult {
	status := StatusCompliant
	if !r.compliant {
		status = StatusNonCompliant
	}
	return VesselResult{
		Vessel:            v,
		Year:              year,
		TargetIntensity:   round3(r.targetIntensity),
		Deviation:         round3(r.deviation),
		DeviationPercent:  round2(r.deviationPercent),
		EnergyDeficit:     round2(r.energyDeficit),
		EnergySurplus:     round2(r.energySurplus),
		ComplianceBalance: round2(r.balance),
		PotentialPenalty:  round6(r.penalty),
		Score:             round2(r.score),
		Status:            status,
	}
}

// Score rates conformance on a 0–100 scale independent of fuel volume.
// The compliant branch earns a bonus of up to 20% of the headroom ratio but
// is hard-clipped at 100, so every compliant vessel saturates at exactly
// 100. The deficit branch decreases linearly and floors at 0. Both branches
// meet at exactly 100 when actual equals target.
func Score(actual, target float64) float64 {
	if actual <= target {
		s := 100 + (target-actual)/target*20
		return math.Min(100, s)
	}
	return math.Max(0, 100-(actual-target)/target*100)
}
