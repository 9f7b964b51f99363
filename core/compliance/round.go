package compliance

import "math"

// roundTo rounds for display only. NaN and Inf pass through unchanged so
// degenerate inputs stay representable.
func roundTo(v float64, decimals int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

func round2(v float64) float64 { return roundTo(v, 2) }
func round3(v float64) float64 { return roundTo(v, 3) }
func round6(v float64) float64 { return roundTo(v, 6) }
