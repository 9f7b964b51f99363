package compliance

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/vesselops/fueleu/core/compliance"
	"github.com/vesselops/fueleu/core/metrics"
	"github.com/vesselops/fueleu/core/model"
	"github.com/vesselops/fueleu/core/registry"
	"github.com/vesselops/fueleu/internal/eventbus"
	"github.com/vesselops/fueleu/pkg/export"
)

// Buses carries the event streams the handler publishes assessments to.
// Nil buses are skipped, which keeps tests free of wiring.
type Buses struct {
	Compliance *eventbus.Bus[metrics.ComplianceEvent]
	Pool       *eventbus.Bus[metrics.PoolEvent]
}

// NewHandler exposes compliance assessments under /api/compliance.
func NewHandler(store registry.Store, engine *compliance.Engine, buses Buses) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/compliance/vessels/{id}", func(w http.ResponseWriter, r *http.Request) {
		v, year, ok := vesselAndYear(w, r, store)
		if !ok {
			return
		}
		res, err := engine.VesselCompliance(v, year)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		if buses.Compliance != nil {
			buses.Compliance.Publish(metrics.ComplianceEvent{Result: res, Time: time.Now()})
		}
		export.WriteJSONResponse(w, http.StatusOK, res)
	})

	mux.HandleFunc("GET /api/compliance/vessels/{id}/suggestions", func(w http.ResponseWriter, r *http.Request) {
		v, year, ok := vesselAndYear(w, r, store)
		if !ok {
			return
		}
		suggestion, err := engine.Suggest(v, year)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		export.WriteJSONResponse(w, http.StatusOK, suggestion)
	})

	mux.HandleFunc("GET /api/compliance/vessels/{id}/banking", func(w http.ResponseWriter, r *http.Request) {
		v, year, ok := vesselAndYear(w, r, store)
		if !ok {
			return
		}
		position, err := engine.BankingBorrowing(v, year)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		export.WriteJSONResponse(w, http.StatusOK, position)
	})

	mux.HandleFunc("GET /api/compliance/pools/{pool}", func(w http.ResponseWriter, r *http.Request) {
		vessels, ok := poolVessels(w, r, store)
		if !ok {
			return
		}
		year, ok := yearParam(w, r)
		if !ok {
			return
		}
		summary, err := engine.PoolCompliance(vessels, year)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		if buses.Pool != nil {
			buses.Pool.Publish(metrics.PoolEvent{Summary: summary, Time: time.Now()})
		}
		export.WriteJSONResponse(w, http.StatusOK, summary)
	})

	mux.HandleFunc("GET /api/compliance/pools/{pool}/trend", func(w http.ResponseWriter, r *http.Request) {
		vessels, ok := poolVessels(w, r, store)
		if !ok {
			return
		}
		start, err := strconv.Atoi(r.URL.Query().Get("start"))
		if err != nil {
			http.Error(w, "invalid start year", http.StatusBadRequest)
			return
		}
		end, err := strconv.Atoi(r.URL.Query().Get("end"))
		if err != nil {
			http.Error(w, "invalid end year", http.StatusBadRequest)
			return
		}
		points, err := engine.Trend(vessels, start, end)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		export.WriteJSONResponse(w, http.StatusOK, points)
	})

	return mux
}

// yearParam parses the ?year= query, defaulting to the current year.
func yearParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return time.Now().Year(), true
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		http.Error(w, "invalid year", http.StatusBadRequest)
		return 0, false
	}
	return year, true
}

func vesselAndYear(w http.ResponseWriter, r *http.Request, store registry.Store) (model.Vessel, int, bool) {
	v, err := store.Get(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
		} else {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return model.Vessel{}, 0, false
	}
	year, ok := yearParam(w, r)
	if !ok {
		return model.Vessel{}, 0, false
	}
	return v, year, true
}

func poolVessels(w http.ResponseWriter, r *http.Request, store registry.Store) ([]model.Vessel, bool) {
	vessels, err := store.List(registry.Filter{Pool: r.PathValue("pool")})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	return vessels, true
}

func writeEngineError(w http.ResponseWriter, err error) {
	if errors.Is(err, compliance.ErrInvalidYear) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
