package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load returns the runtime tuning.
// Search order: customPath -> ./configs/dreamgate.yaml -> built-in defaults.
// A file only needs the keys it overrides; everything else keeps its default.
func Load(customPath string) (Config, error) {
	cfg := Default()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if data, err := os.ReadFile("configs/dreamgate.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Default(), fmt.Errorf("failed to parse configs/dreamgate.yaml: %w", err)
		}
	}
	return cfg, nil
}
