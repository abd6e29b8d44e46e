package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds host options. Solver inputs live in the problem file; this
// only tunes how the host runs and reports.
type Config struct {
	LogLevel     string `yaml:"logLevel"`
	MaxSolutions int    `yaml:"maxSolutions"`
	RenderDir    string `yaml:"renderDir"`
}

func defaultConfig() Config {
	return Config{
		LogLevel:     "info",
		MaxSolutions: 0, // unlimited
	}
}

func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
