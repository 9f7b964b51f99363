package compliance

import (
	"fmt"

	"github.com/vesselops/fueleu/core/model"
)

// Remediation tier thresholds in percent of the vessel's own intensity.
// These and the action texts are policy constants, not derived values.
const (
	minorReductionThreshold    = 5.0
	moderateReductionThreshold = 15.0
)

var (
	maintainActions = []string{
		"Maintain current fuel mix and operational profile",
		"Monitor voyage-level intensity to preserve the surplus",
	}
	minorActions = []string{
		"Optimize voyage speed and routing to cut fuel burn",
		"Raise the biofuel blend share on selected routes",
		"Improve hull and propeller maintenance intervals",
	}
	moderateActions = []string{
		"Switch a significant share of consumption to low-carbon fuels",
		"Use shore power during port stays",
		"Install energy efficiency retrofits (waste heat recovery, air lubrication)",
	}
	majorActions = []string{
		"Plan conversion to LNG, methanol or other alternative fuel",
		"Evaluate wind-assisted propulsion retrofits",
		"Consider fleet renewal or reassignment for this vessel",
	}
)

// Suggest returns remediation advice for the vessel in the given year. A
// compliant vessel gets the maintenance suggestion; otherwise the required
// reduction relative to the vessel's own intensity picks one of three
// severity tiers.
func (e *Engine) Suggest(v model.Vessel, year int) (Suggestion, error) {
	r, err := e.compute(v, year)
	if err != nil {
		return Suggestion{}, err
	}

	s := Suggestion{
		VesselID:        v.ID,
		Year:            year,
		TargetIntensity: round3(r.targetIntensity),
	}
	if r.compliant {
		s.Compliant = true
		s.Severity = SeverityNone
		s.Actions = append([]string(nil), maintainActions...)
		return s, nil
	}

	required := (v.GHGIntensity - r.targetIntensity) / v.GHGIntensity * 100
	s.RequiredReductionPercent = round2(required)
	var actions []string
	switch {
	case required <= minorReductionThreshold:
		s.Severity = SeverityMinor
		actions = minorActions
	case required <= moderateReductionThreshold:
		s.Severity = SeverityModerate
		actions = moderateActions
	default:
		s.Severity = SeverityMajor
		actions = majorActions
	}
	s.Actions = append([]string(nil), actions...)
	s.Actions = append(s.Actions, fmt.Sprintf(
		"Reduce GHG intensity by %.2f%% to reach %.3f gCO2e/MJ",
		required, r.targetIntensity))
	return s, nil
}
