package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vesselops/fueleu/core/model"
)

// MemoryStore keeps vessels in memory for testing or lightweight usage.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]model.Vessel
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string]model.Vessel{}}
}

// Add inserts the vessel after validation. The ID must be unique.
func (s *MemoryStore) Add(v model.Vessel) error {
	if v.ID == "" {
		return fmt.Errorf("vessel id is required")
	}
	if err := v.Validate(); err != nil {
		return fmt.Errorf("vessel %s: %w", v.ID, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[v.ID]; ok {
		return fmt.Errorf("vessel %s already exists", v.ID)
	}
	s.data[v.ID] = v
	return nil
}

// Get returns the vessel by ID.
func (s *MemoryStore) Get(id string) (model.Vessel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[id]
	if !ok {
		return model.Vessel{}, fmt.Errorf("vessel %s: %w", id, ErrNotFound)
	}
	return v, nil
}

// Update replaces an existing vessel record.
func (s *MemoryStore) Update(v model.Vessel) error {
	if err := v.Validate(); err != nil {
		return fmt.Errorf("vessel %s: %w", v.ID, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[v.ID]; !ok {
		return fmt.Errorf("vessel %s: %w", v.ID, ErrNotFound)
	}
	s.data[v.ID] = v
	return nil
}

// Delete removes the vessel by ID.
func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[id]; !ok {
		return fmt.Errorf("vessel %s: %w", id, ErrNotFound)
	}
	delete(s.data, id)
	return nil
}

// List returns the vessels matching the filter, ordered by ID for
// deterministic output.
func (s *MemoryStore) List(f Filter) ([]model.Vessel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]model.Vessel, 0, len(s.data))
	for _, v := range s.data {
		if f.Matches(v) {
			res = append(res, v)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}
