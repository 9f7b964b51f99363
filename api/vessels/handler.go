package vessels

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/vesselops/fueleu/core/model"
	"github.com/vesselops/fueleu/core/registry"
)

// NewHandler exposes vessel CRUD under /api/vessels.
func NewHandler(store registry.Store) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/vessels", func(w http.ResponseWriter, r *http.Request) {
		f := registry.Filter{
			Pool:  r.URL.Query().Get("pool"),
			Owner: r.URL.Query().Get("owner"),
			Type:  r.URL.Query().Get("type"),
		}
		vessels, err := store.List(f)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, vessels)
	})
	mux.HandleFunc("POST /api/vessels", func(w http.ResponseWriter, r *http.Request) {
		var v model.Vessel
		if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
			http.Error(w, "invalid body: "+err.Error(), http.StatusBadRequest)
			return
		}
		if v.ID == "" {
			v.ID = uuid.NewString()
		}
		if err := store.Add(v); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusCreated, v)
	})
	mux.HandleFunc("GET /api/vessels/{id}", func(w http.ResponseWriter, r *http.Request) {
		v, err := store.Get(r.PathValue("id"))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	})
	mux.HandleFunc("PUT /api/vessels/{id}", func(w http.ResponseWriter, r *http.Request) {
		var v model.Vessel
		if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
			http.Error(w, "invalid body: "+err.Error(), http.StatusBadRequest)
			return
		}
		v.ID = r.PathValue("id")
		if err := store.Update(v); err != nil {
			if errors.Is(err, registry.ErrNotFound) {
				http.Error(w, err.Error(), http.StatusNotFound)
			} else {
				http.Error(w, err.Error(), http.StatusBadRequest)
			}
			return
		}
		writeJSON(w, http.StatusOK, v)
	})
	mux.HandleFunc("DELETE /api/vessels/{id}", func(w http.ResponseWriter, r *http.Request) {
		if err := store.Delete(r.PathValue("id")); err != nil {
			writeStoreError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, registry.ErrNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
