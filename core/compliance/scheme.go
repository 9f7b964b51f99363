package compliance

import (
	"fmt"
	"sort"
)

// Scheme holds the regulatory constants the engine computes against. It is
// treated as immutable once an Engine has been constructed from it.
type Scheme struct {
	// ReferenceIntensity is the baseline well-to-wake intensity in
	// gCO2e/MJ against which all yearly targets are computed.
	ReferenceIntensity float64 `json:"reference_intensity"`
	// ReductionTargets maps a calendar year to its fractional reduction
	// target (0 < target < 1). A year absent from the table is invalid
	// input for every operation.
	ReductionTargets map[int]float64 `json:"reduction_targets"`
	// PenaltyRates maps a year to the rate in currency units per tonne
	// CO2e of deficit. Years beyond the last entry fall back to the rate
	// of the most recent defined year.
	PenaltyRates map[int]float64 `json:"penalty_rates"`
	// BankingLimitFraction caps banked surplus at this fraction of the
	// vessel's fuel consumption.
	BankingLimitFraction float64 `json:"banking_limit_fraction"`
	// BorrowingLimitFraction caps borrowed deficit likewise.
	BorrowingLimitFraction float64 `json:"borrowing_limit_fraction"`
}

// DefaultScheme returns the scheme constants currently in force.
func DefaultScheme() Scheme {
	return Scheme{
		ReferenceIntensity: 91.16,
		ReductionTargets: map[int]float64{
			2025: 0.02,
			2026: 0.02,
			2027: 0.02,
			2028: 0.02,
			2029: 0.02,
			2030: 0.06,
			2031: 0.06,
			2032: 0.06,
		},
		PenaltyRates: map[int]float64{
			2025: 640,
			2026: 640,
			2027: 640,
			2028: 640,
			2029: 640,
			2030: 640,
		},
		BankingLimitFraction:   0.05,
		BorrowingLimitFraction: 0.05,
	}
}

// Validate checks the scheme constants.
func (s Scheme) Validate() error {
	if s.ReferenceIntensity <= 0 {
		return fmt.Errorf("reference intensity must be positive")
	}
	if len(s.ReductionTargets) == 0 {
		return fmt.Errorf("reduction target table is empty")
	}
	for year, t := range s.ReductionTargets {
		if t <= 0 || t >= 1 {
			return fmt.Errorf("reduction target for %d out of range (0,1): %v", year, t)
		}
	}
	if len(s.PenaltyRates) == 0 {
		return fmt.Errorf("penalty rate table is empty")
	}
	for year, r := range s.PenaltyRates {
		if r < 0 {
			return fmt.Errorf("penalty rate for %d is negative: %v", year, r)
		}
	}
	if s.BankingLimitFraction < 0 || s.BankingLimitFraction > 1 {
		return fmt.Errorf("banking limit fraction out of range [0,1]: %v", s.BankingLimitFraction)
	}
	if s.BorrowingLimitFraction < 0 || s.BorrowingLimitFraction > 1 {
		return fmt.Errorf("borrowing limit fraction out of range [0,1]: %v", s.BorrowingLimitFraction)
	}
	return nil
}

// Years returns the years covered by the reduction target table in
// ascending order.
func (s Scheme) Years() []int {
	years := make([]int, 0, len(s.ReductionTargets))
	for y := range s.ReductionTargets {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// targetIntensity resolves the intensity ceiling for the year.
func (s Scheme) targetIntensity(year int) (float64, error) {
	target, ok := s.ReductionTargets[year]
	if !ok {
		return 0, &InvalidYearError{Year: year}
	}
	return s.ReferenceIntensity * (1 - target), nil
}

// penaltyRate resolves the penalty rate for the year. The lookup is exact
// when the year is defined, otherwise it falls back to the most recent
// defined year before it, and finally to the earliest defined year.
func (s Scheme) penaltyRate(year int) float64 {
	if r, ok := s.PenaltyRates[year]; ok {
		return r
	}
	var before, earliest int
	haveBefore, haveAny := false, false
	for y := range s.PenaltyRates {
		if !haveAny || y < earliest {
			earliest = y
		}
		haveAny = true
		if y < year && (!haveBefore || y > before) {
			before = y
			haveBefore = true
		}
	}
	if haveBefore {
		return s.PenaltyRates[before]
	}
	return s.PenaltyRates[earliest]
}

// clone copies the scheme so an Engine cannot observe later mutation of the
// caller's maps.
func (s Scheme) clone() Scheme {
	out := s
	out.ReductionTargets = make(map[int]float64, len(s.ReductionTargets))
	for y, t := range s.ReductionTargets {
		out.ReductionTargets[y] = t
	}
	out.PenaltyRates = make(map[int]float64, len(s.PenaltyRates))
	for y, r := range s.PenaltyRates {
		out.PenaltyRates[y] = r
	}
	return out
}
