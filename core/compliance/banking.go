package compliance

import (
	"math"

	"github.com/vesselops/fueleu/core/model"
)

// BankingBorrowing estimates how much surplus the vessel may bank for later
// years or deficit it may borrow against, each capped at the scheme's
// fraction of the vessel's fuel consumption. At most one of the two
// capacities is nonzero, mirroring the deficit/surplus exclusivity.
func (e *Engine) BankingBorrowing(v model.Vessel, year int) (Assessment, error) {
	r, err := e.compute(v, year)
	if err != nil {
		return Assessment{}, err
	}
	bankingLimit := v.FuelConsumptionMJ * e.scheme.BankingLimitFraction
	borrowingLimit := v.FuelConsumptionMJ * e.scheme.BorrowingLimitFraction
	return Assessment{
		VesselID:          v.ID,
		Year:              year,
		BankingCapacity:   round2(math.Min(r.energySurplus, bankingLimit)),
		BorrowingCapacity: round2(math.Min(r.energyDeficit, borrowingLimit)),
		BankingLimit:      round2(bankingLimit),
		BorrowingLimit:    round2(borrowingLimit),
	}, nil
}
