package config

import (
	_ "embed"
)

//go:embed defaults/mazechase.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level: "info",
		},
		Simulation: SimulationConfig{
			TickRate: 60,
		},
		Variants: map[string]VariantConfig{
			"pacman": {
				Lives:           3,
				ExtraLifeScores: []int{10000},
				DemoMinSeconds:  20,
				StartLevel:      1,
			},
			"mspacman": {
				Lives:           3,
				ExtraLifeScores: []int{10000},
				DemoMinSeconds:  20,
				StartLevel:      1,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
