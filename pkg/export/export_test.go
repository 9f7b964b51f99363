package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vesselops/fueleu/core/compliance"
	"github.com/vesselops/fueleu/core/model"
)

func TestWriteResultsCSV(t *testing.T) {
	engine := compliance.NewDefault()
	res, err := engine.VesselCompliance(model.Vessel{
		ID: "v1", Name: "Aurora", FuelConsumptionMJ: 45000, GHGIntensity: 89.25,
	}, 2025)
	if err != nil {
		t.Fatalf("compliance: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteResultsCSV(&buf, []compliance.VesselResult{res}); err != nil {
		t.Fatalf("csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "vessel_id,name,year") {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.Contains(lines[1], "v1,Aurora,2025") || !strings.Contains(lines[1], "compliant") {
		t.Errorf("unexpected row: %s", lines[1])
	}
}

func TestWritePoolCSV(t *testing.T) {
	engine := compliance.NewDefault()
	summary, err := engine.PoolCompliance([]model.Vessel{
		{ID: "v1", FuelConsumptionMJ: 45000, GHGIntensity: 89.25},
		{ID: "v2", FuelConsumptionMJ: 28000, GHGIntensity: 95.12},
	}, 2025)
	if err != nil {
		t.Fatalf("pool: %v", err)
	}

	var buf bytes.Buffer
	if err := WritePoolCSV(&buf, summary); err != nil {
		t.Fatalf("csv: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "# pool year=2025 vessels=2") {
		t.Errorf("unexpected summary line: %s", out)
	}
	if !strings.Contains(out, "v1") || !strings.Contains(out, "v2") {
		t.Errorf("vessel rows missing: %s", out)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, map[string]int{"year": 2025}); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !strings.Contains(buf.String(), "\"year\": 2025") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}
