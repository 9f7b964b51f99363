package model

import "fmt"

// Vessel represents a ship enrolled in the GHG intensity scheme.
type Vessel struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	IMO   string `json:"imo"`
	Type  string `json:"type"`
	Pool  string `json:"pool"`
	Owner string `json:"owner"`

	// FuelConsumptionMJ is the energy used in the compliance year, in MJ.
	FuelConsumptionMJ float64 `json:"fuel_consumption_mj"`
	// GHGIntensity is the actual well-to-wake intensity in gCO2e/MJ.
	GHGIntensity float64 `json:"ghg_intensity"`

	// Metadata carries operator-defined fields that pass through
	// calculations untouched.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Validate checks that the vessel figures are usable for compliance
// calculation. The calculation engine itself never validates; stores call
// this before accepting a record.
func (v Vessel) Validate() error {
	if v.FuelConsumptionMJ <= 0 {
		return fmt.Errorf("fuel consumption must be positive")
	}
	if v.GHGIntensity <= 0 {
		return fmt.Errorf("ghg intensity must be positive")
	}
	return nil
}
