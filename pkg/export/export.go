// Package export serializes compliance results for reports and API
// responses.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/vesselops/fueleu/core/compliance"
)

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteJSONResponse writes v as a JSON HTTP response body.
func WriteJSONResponse(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// WriteResultsCSV writes one row per vessel result.
func WriteResultsCSV(w io.Writer, results []compliance.VesselResult) error {
	cw := csv.NewWriter(w)
	header := []string{
		"vessel_id", "name", "year", "ghg_intensity", "target_intensity",
		"deviation", "compliance_balance", "potential_penalty", "score", "status",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{
			r.ID,
			r.Name,
			strconv.Itoa(r.Year),
			formatFloat(r.GHGIntensity),
			formatFloat(r.TargetIntensity),
			formatFloat(r.Deviation),
			formatFloat(r.ComplianceBalance),
			formatFloat(r.PotentialPenalty),
			formatFloat(r.Score),
			string(r.Status),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WritePoolCSV writes the pool summary followed by its vessel rows.
func WritePoolCSV(w io.Writer, summary compliance.PoolSummary) error {
	if _, err := fmt.Fprintf(w, "# pool year=%d vessels=%d compliant=%t average_intensity=%s balance=%s penalty=%s\n",
		summary.Year, summary.VesselCount, summary.PoolCompliant,
		formatFloat(summary.PoolAverageIntensity), formatFloat(summary.TotalComplianceBalance),
		formatFloat(summary.PoolPotentialPenalty)); err != nil {
		return err
	}
	return WriteResultsCSV(w, summary.Vessels)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
