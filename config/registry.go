package config

import "fmt"

// RegistryConfig selects the vessel store backend.
type RegistryConfig struct {
	Backend string `json:"backend"`
	Path    string `json:"path"`
}

func (c *RegistryConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "memory"
	}
}

func (c *RegistryConfig) Validate() error {
	switch c.Backend {
	case "memory":
		return nil
	case "sqlite":
		if c.Path == "" {
			return fmt.Errorf("registry: sqlite backend requires a path")
		}
		return nil
	default:
		return fmt.Errorf("registry: unknown backend %q", c.Backend)
	}
}
