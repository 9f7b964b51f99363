package compliance

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	core "github.com/vesselops/fueleu/core/compliance"
	"github.com/vesselops/fueleu/core/metrics"
	"github.com/vesselops/fueleu/core/model"
	"github.com/vesselops/fueleu/core/registry"
	"github.com/vesselops/fueleu/internal/eventbus"
)

func newHandler(t *testing.T) (http.Handler, registry.Store) {
	t.Helper()
	store := registry.NewMemoryStore()
	vessels := []model.Vessel{
		{ID: "v1", Name: "Aurora", Pool: "north", FuelConsumptionMJ: 45000, GHGIntensity: 89.25},
		{ID: "v2", Name: "Boreal", Pool: "north", FuelConsumptionMJ: 28000, GHGIntensity: 95.12},
		{ID: "v3", Name: "Cirrus", Pool: "south", FuelConsumptionMJ: 60000, GHGIntensity: 91.0},
	}
	for _, v := range vessels {
		if err := store.Add(v); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return NewHandler(store, core.NewDefault(), Buses{}), store
}

func TestVesselCompliance(t *testing.T) {
	h, _ := newHandler(t)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/compliance/vessels/v1?year=2025", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	var res core.VesselResult
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Status != core.StatusCompliant {
		t.Errorf("expected compliant, got %s", res.Status)
	}
	if res.TargetIntensity != 89.337 {
		t.Errorf("target: got %v", res.TargetIntensity)
	}
}

func TestVesselComplianceInvalidYear(t *testing.T) {
	h, _ := newHandler(t)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/compliance/vessels/v1?year=2050", nil))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status %d", rr.Code)
	}
}

func TestVesselComplianceNotFound(t *testing.T) {
	h, _ := newHandler(t)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/compliance/vessels/ghost?year=2025", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status %d", rr.Code)
	}
}

func TestSuggestions(t *testing.T) {
	h, _ := newHandler(t)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/compliance/vessels/v2/suggestions?year=2025", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	var s core.Suggestion
	if err := json.Unmarshal(rr.Body.Bytes(), &s); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s.Compliant {
		t.Error("v2 should be non-compliant")
	}
	if len(s.Actions) == 0 {
		t.Error("expected actions")
	}
}

func TestBanking(t *testing.T) {
	h, _ := newHandler(t)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/compliance/vessels/v1/banking?year=2025", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	var a core.Assessment
	if err := json.Unmarshal(rr.Body.Bytes(), &a); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if a.BankingCapacity <= 0 {
		t.Errorf("expected positive banking capacity, got %v", a.BankingCapacity)
	}
	if a.BorrowingCapacity != 0 {
		t.Errorf("compliant vessel should have no borrowing need, got %v", a.BorrowingCapacity)
	}
}

func TestPoolCompliance(t *testing.T) {
	h, _ := newHandler(t)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/compliance/pools/north?year=2025", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	var summary core.PoolSummary
	if err := json.Unmarshal(rr.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if summary.VesselCount != 2 {
		t.Errorf("expected 2 vessels, got %d", summary.VesselCount)
	}
	if summary.PoolTargetIntensity != 89.337 {
		t.Errorf("pool target: got %v", summary.PoolTargetIntensity)
	}
}

func TestPoolTrend(t *testing.T) {
	h, _ := newHandler(t)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/compliance/pools/north/trend?start=2025&end=2030", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	var points []core.PoolSummary
	if err := json.Unmarshal(rr.Body.Bytes(), &points); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(points) != 6 {
		t.Errorf("expected 6 points, got %d", len(points))
	}
}

func TestPoolTrendInverted(t *testing.T) {
	h, _ := newHandler(t)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/compliance/pools/north/trend?start=2030&end=2025", nil))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status %d", rr.Code)
	}
}

func TestComplianceEventPublished(t *testing.T) {
	store := registry.NewMemoryStore()
	if err := store.Add(model.Vessel{ID: "v1", FuelConsumptionMJ: 45000, GHGIntensity: 89.25}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	bus := eventbus.New[metrics.ComplianceEvent]()
	defer bus.Close()
	sub := bus.Subscribe()
	h := NewHandler(store, core.NewDefault(), Buses{Compliance: bus})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/compliance/vessels/v1?year=2025", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	select {
	case ev := <-sub:
		if ev.Result.ID != "v1" {
			t.Errorf("unexpected event %#v", ev)
		}
	default:
		t.Fatal("no compliance event published")
	}
}
