package compliance

import "github.com/vesselops/fueleu/core/model"

// Status is the two-state compliance verdict. A zero balance counts as
// compliant.
type Status string

const (
	StatusCompliant    Status = "compliant"
	StatusNonCompliant Status = "non-compliant"
)

// VesselResult is the per-vessel compliance record: the source vessel plus
// the computed figures for one year. Numeric fields are rounded for display;
// aggregation never reads them back.
type VesselResult struct {
	model.Vessel

	Year int `json:"year"`
	// TargetIntensity is the intensity ceiling for the year in gCO2e/MJ.
	TargetIntensity float64 `json:"target_intensity"`
	// Deviation is target minus actual; positive means the vessel is
	// cleaner than required.
	Deviation        float64 `json:"deviation"`
	DeviationPercent float64 `json:"deviation_percent"`
	// EnergyDeficit is the excess emissions-equivalent when the vessel is
	// dirtier than the target; EnergySurplus the headroom when cleaner.
	// At most one of the two is nonzero.
	EnergyDeficit float64 `json:"energy_deficit"`
	EnergySurplus float64 `json:"energy_surplus"`
	// ComplianceBalance is the signed balance in tCO2e.
	ComplianceBalance float64 `json:"compliance_balance"`
	// PotentialPenalty is the exposure in millions of currency units if
	// the vessel were assessed on its own.
	PotentialPenalty float64 `json:"potential_penalty"`
	Score            float64 `json:"score"`
	Status           Status  `json:"status"`
}

// PoolSummary aggregates compliance over a set of vessels for one year.
type PoolSummary struct {
	Year                int     `json:"year"`
	VesselCount         int     `json:"vessel_count"`
	CompliantCount      int     `json:"compliant_count"`
	NonCompliantCount   int     `json:"non_compliant_count"`
	ComplianceRate      float64 `json:"compliance_rate"`
	PoolTargetIntensity float64 `json:"pool_target_intensity"`
	// PoolAverageIntensity is the fuel-weighted mean intensity, so a large
	// dirty vessel dominates more than a small one.
	PoolAverageIntensity   float64 `json:"pool_average_intensity"`
	TotalEnergyConsumption float64 `json:"total_energy_consumption"`
	TotalEmissions         float64 `json:"total_emissions"`
	// TotalComplianceBalance nets deficits and surpluses across the pool.
	TotalComplianceBalance float64 `json:"total_compliance_balance"`
	// TotalDeficit and TotalSurplus are the gross sides; they are not
	// derived from the signed total.
	TotalDeficit float64 `json:"total_deficit"`
	TotalSurplus float64 `json:"total_surplus"`
	// TotalPotentialPenalty sums each vessel's own penalty;
	// PoolPotentialPenalty is charged on the netted balance only. The two
	// intentionally diverge.
	TotalPotentialPenalty float64 `json:"total_potential_penalty"`
	PoolPotentialPenalty  float64 `json:"pool_potential_penalty"`
	PoolCompliant         bool    `json:"pool_compliant"`
	PoolScore             float64 `json:"pool_score"`

	Vessels []VesselResult `json:"vessels"`
}

// Severity buckets the remediation effort for a non-compliant vessel.
type Severity string

const (
	SeverityNone     Severity = "none"
	SeverityMinor    Severity = "minor"
	SeverityModerate Severity = "moderate"
	SeverityMajor    Severity = "major"
)

// Suggestion is the remediation advice for one vessel and year.
type Suggestion struct {
	VesselID  string   `json:"vessel_id"`
	Year      int      `json:"year"`
	Compliant bool     `json:"compliant"`
	Severity  Severity `json:"severity"`
	// RequiredReductionPercent is relative to the vessel's own intensity,
	// not the target.
	RequiredReductionPercent float64  `json:"required_reduction_percent"`
	TargetIntensity          float64  `json:"target_intensity"`
	Actions                  []string `json:"actions"`
}

// Assessment reports how much surplus a vessel may bank or deficit it may
// borrow, each capped by a fixed fraction of its fuel consumption.
type Assessment struct {
	VesselID          string  `json:"vessel_id"`
	Year              int     `json:"year"`
	BankingCapacity   float64 `json:"banking_capacity"`
	BorrowingCapacity float64 `json:"borrowing_capacity"`
	BankingLimit      float64 `json:"banking_limit"`
	BorrowingLimit    float64 `json:"borrowing_limit"`
}
