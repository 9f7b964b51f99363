package vessels

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vesselops/fueleu/core/model"
	"github.com/vesselops/fueleu/core/registry"
)

func seed(t *testing.T) registry.Store {
	t.Helper()
	store := registry.NewMemoryStore()
	vessels := []model.Vessel{
		{ID: "v1", Name: "Aurora", Type: "tanker", Pool: "north", Owner: "acme", FuelConsumptionMJ: 45000, GHGIntensity: 89.2},
		{ID: "v2", Name: "Boreal", Type: "container", Pool: "north", Owner: "acme", FuelConsumptionMJ: 28000, GHGIntensity: 95.1},
		{ID: "v3", Name: "Cirrus", Type: "tanker", Pool: "south", Owner: "globex", FuelConsumptionMJ: 60000, GHGIntensity: 91.0},
	}
	for _, v := range vessels {
		if err := store.Add(v); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return store
}

func TestHandler_List(t *testing.T) {
	h := NewHandler(seed(t))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/vessels", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	var out []model.Vessel
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 vessels, got %d", len(out))
	}
}

func TestHandler_ListFilter(t *testing.T) {
	h := NewHandler(seed(t))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/vessels?pool=north&type=tanker", nil))
	var out []model.Vessel
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 1 || out[0].ID != "v1" {
		t.Fatalf("unexpected filter result %#v", out)
	}
}

func TestHandler_Create(t *testing.T) {
	h := NewHandler(seed(t))
	body := `{"name":"Drift","type":"bulk","fuel_consumption_mj":10000,"ghg_intensity":90.0}`
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("POST", "/api/vessels", strings.NewReader(body)))
	if rr.Code != http.StatusCreated {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	var out model.Vessel
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.ID == "" {
		t.Fatal("expected generated id")
	}
}

func TestHandler_CreateInvalid(t *testing.T) {
	h := NewHandler(seed(t))
	body := `{"name":"Ghost","fuel_consumption_mj":-5,"ghg_intensity":90.0}`
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("POST", "/api/vessels", strings.NewReader(body)))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status %d", rr.Code)
	}
}

func TestHandler_GetNotFound(t *testing.T) {
	h := NewHandler(seed(t))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/vessels/missing", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status %d", rr.Code)
	}
}

func TestHandler_UpdateAndDelete(t *testing.T) {
	store := seed(t)
	h := NewHandler(store)

	body := `{"name":"Aurora II","type":"tanker","pool":"north","owner":"acme","fuel_consumption_mj":46000,"ghg_intensity":88.9}`
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("PUT", "/api/vessels/v1", strings.NewReader(body)))
	if rr.Code != http.StatusOK {
		t.Fatalf("update status %d: %s", rr.Code, rr.Body.String())
	}
	v, err := store.Get("v1")
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if v.Name != "Aurora II" || v.FuelConsumptionMJ != 46000 {
		t.Fatalf("update not applied: %#v", v)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("DELETE", "/api/vessels/v1", nil))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete status %d", rr.Code)
	}
	if _, err := store.Get("v1"); err == nil {
		t.Fatal("vessel still present after delete")
	}
}
