package cmd

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/vesselops/fueleu/config"
	"github.com/vesselops/fueleu/core/model"
	"github.com/vesselops/fueleu/core/registry"
	infraregistry "github.com/vesselops/fueleu/infra/registry"
)

// loadVessels reads the fleet either from a JSON file or from the
// configured registry backend. The file wins when both are given.
func loadVessels(cfg *config.Config, fleetPath, pool string) ([]model.Vessel, error) {
	if fleetPath != "" {
		data, err := os.ReadFile(fleetPath)
		if err != nil {
			return nil, fmt.Errorf("read fleet file: %w", err)
		}
		var vessels []model.Vessel
		if err := json.Unmarshal(data, &vessels); err != nil {
			return nil, fmt.Errorf("parse fleet file: %w", err)
		}
		if pool == "" {
			return vessels, nil
		}
		filtered := vessels[:0]
		for _, v := range vessels {
			if v.Pool == pool {
				filtered = append(filtered, v)
			}
		}
		return filtered, nil
	}

	store, closer, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	defer closer()
	return store.List(registry.Filter{Pool: pool})
}

func openStore(cfg *config.Config) (registry.Store, func(), error) {
	if cfg.Registry.Backend == "sqlite" {
		store, err := infraregistry.NewSQLiteStore(cfg.Registry.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open registry: %w", err)
		}
		return store, func() { _ = store.Close() }, nil
	}
	return registry.NewMemoryStore(), func() {}, nil
}
