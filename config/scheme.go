package config

import (
	"fmt"
	"strconv"

	"github.com/vesselops/fueleu/core/compliance"
)

// SchemeConfig mirrors compliance.Scheme with string year keys so the
// tables survive YAML and environment round trips.
type SchemeConfig struct {
	ReferenceIntensity     float64            `json:"reference_intensity"`
	ReductionTargets       map[string]float64 `json:"reduction_targets"`
	PenaltyRates           map[string]float64 `json:"penalty_rates"`
	BankingLimitFraction   float64            `json:"banking_limit_fraction"`
	BorrowingLimitFraction float64            `json:"borrowing_limit_fraction"`
}

func (c *SchemeConfig) SetDefaults() {
	def := compliance.DefaultScheme()
	if c.ReferenceIntensity == 0 {
		c.ReferenceIntensity = def.ReferenceIntensity
	}
	if len(c.ReductionTargets) == 0 {
		c.ReductionTargets = yearKeys(def.ReductionTargets)
	}
	if len(c.PenaltyRates) == 0 {
		c.PenaltyRates = yearKeys(def.PenaltyRates)
	}
	if c.BankingLimitFraction == 0 {
		c.BankingLimitFraction = def.BankingLimitFraction
	}
	if c.BorrowingLimitFraction == 0 {
		c.BorrowingLimitFraction = def.BorrowingLimitFraction
	}
}

// Scheme converts the string-keyed tables back to a compliance.Scheme
// and validates it.
func (c *SchemeConfig) Scheme() (compliance.Scheme, error) {
	targets, err := intKeys(c.ReductionTargets)
	if err != nil {
		return compliance.Scheme{}, fmt.Errorf("scheme: reduction_targets: %w", err)
	}
	rates, err := intKeys(c.PenaltyRates)
	if err != nil {
		return compliance.Scheme{}, fmt.Errorf("scheme: penalty_rates: %w", err)
	}
	s := compliance.Scheme{
		ReferenceIntensity:     c.ReferenceIntensity,
		ReductionTargets:       targets,
		PenaltyRates:           rates,
		BankingLimitFraction:   c.BankingLimitFraction,
		BorrowingLimitFraction: c.BorrowingLimitFraction,
	}
	if err := s.Validate(); err != nil {
		return compliance.Scheme{}, err
	}
	return s, nil
}

func yearKeys(in map[int]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for y, v := range in {
		out[strconv.Itoa(y)] = v
	}
	return out
}

func intKeys(in map[string]float64) (map[int]float64, error) {
	out := make(map[int]float64, len(in))
	for k, v := range in {
		y, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("invalid year key %q", k)
		}
		out[y] = v
	}
	return out, nil
}
