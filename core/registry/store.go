package registry

import (
	"errors"

	"github.com/vesselops/fueleu/core/model"
)

// ErrNotFound is returned when a vessel ID is unknown to the store.
var ErrNotFound = errors.New("vessel not found")

// Filter narrows a List call. Empty fields match everything.
type Filter struct {
	Pool  string
	Owner string
	Type  string
}

// Matches reports whether the vessel satisfies the filter.
func (f Filter) Matches(v model.Vessel) bool {
	if f.Pool != "" && v.Pool != f.Pool {
		return false
	}
	if f.Owner != "" && v.Owner != f.Owner {
		return false
	}
	if f.Type != "" && v.Type != f.Type {
		return false
	}
	return true
}

// Store is the vessel registry consumed by the compliance engine's callers.
// Implementations validate records on write; the engine never does.
type Store interface {
	Add(model.Vessel) error
	Get(id string) (model.Vessel, error)
	Update(model.Vessel) error
	Delete(id string) error
	List(Filter) ([]model.Vessel, error)
}
