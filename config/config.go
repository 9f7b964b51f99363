package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/vesselops/fueleu/core/metrics"
	"github.com/vesselops/fueleu/infra/monitoring"
	"github.com/vesselops/fueleu/infra/mqtt"
)

type Config struct {
	HTTP     HTTPConfig        `json:"http"`
	Logging  LoggingConfig     `json:"logging"`
	Registry RegistryConfig    `json:"registry"`
	Scheme   SchemeConfig      `json:"scheme"`
	MQTT     mqtt.Config       `json:"mqtt"`
	Metrics  metrics.Config    `json:"metrics"`
	Sentry   monitoring.Config `json:"sentry"`
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("FUELEU_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "fueleu_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.HTTP.SetDefaults()
	cfg.Logging.SetDefaults()
	cfg.Registry.SetDefaults()
	cfg.Scheme.SetDefaults()
	cfg.MQTT.SetDefaults()
	cfg.Metrics.SetDefaults()
	if err := cfg.Logging.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Registry.Validate(); err != nil {
		return nil, err
	}
	if _, err := cfg.Scheme.Scheme(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
