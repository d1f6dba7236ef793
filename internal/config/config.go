// Package config provides YAML-based configuration loading for the maze
// chase: log settings, simulation defaults and per-variant rule overrides.
package config

// Config is the root of mazechase.yaml.
type Config struct {
	Log        LogConfig                `yaml:"log"`
	Simulation SimulationConfig         `yaml:"simulation"`
	Variants   map[string]VariantConfig `yaml:"variants"`
}

// LogConfig selects the log level and an optional log file.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`
}

// SimulationConfig holds defaults for the tick loop.
type SimulationConfig struct {
	TickRate int   `yaml:"tick_rate"`
	Seed     int64 `yaml:"seed"` // 0 picks a time-based seed
}

// VariantConfig overrides parts of a variant's rules. Zero values keep the
// built-in rule.
type VariantConfig struct {
	Lives           int     `yaml:"lives"`
	ExtraLifeScores []int   `yaml:"extra_life_scores"`
	PacImmune       bool    `yaml:"pac_immune"`
	DemoMinSeconds  float64 `yaml:"demo_min_seconds"`
	MapPath         string  `yaml:"map"`
	StartLevel      int     `yaml:"start_level"`
}

// Variant returns the overrides for the named variant, or zero overrides.
func (c Config) Variant(name string) VariantConfig {
	if c.Variants == nil {
		return VariantConfig{}
	}
	return c.Variants[name]
}
