// Package config defines the classification run configuration and how it is
// loaded.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML file and RBR_* environment variables over the defaults.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"runtime"
)

// BonusRule awards Points to participants who contested exactly Races events.
type BonusRule struct {
	Races  int `koanf:"races" validate:"min=1"`
	Points int `koanf:"points" validate:"min=0"`
}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn error"`

	// BestOf is how many of a participant's best event results count.
	BestOf int `koanf:"best_of" validate:"min=1"`

	// Bonus lists the participation bonus per exact race count.
	Bonus []BonusRule `koanf:"bonus" validate:"unique=Races,dive"`

	// WorkerCount bounds how many events are scored in parallel.
	WorkerCount int `koanf:"worker_count" validate:"min=1"`

	// NameDistance is the largest edit distance at which two names are
	// reported as possible duplicates. Zero disables the check.
	NameDistance int `koanf:"name_distance" validate:"min=0,max=10"`

	// StrictNames aborts the run when a name appears twice in one event
	// instead of warning.
	StrictNames bool `koanf:"strict_names"`

	// OutputFormat selects the standings writer: text, csv, xlsx or yaml.
	OutputFormat string `koanf:"output_format" validate:"oneof=text csv xlsx yaml"`

	// MetricsFile, when set, receives the run's metrics in the Prometheus
	// text format.
	MetricsFile string `koanf:"metrics_file"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel: "info",
		BestOf:   3,
		Bonus: []BonusRule{
			{Races: 4, Points: 15},
			{Races: 5, Points: 30},
		},
		WorkerCount:  runtime.NumCPU(),
		NameDistance: 1,
		OutputFormat: "text",
	}
}

// BonusTable returns the bonus rules keyed by race count.
func (c *Config) BonusTable() map[int]int {
	out := make(map[int]int, len(c.Bonus))
	for _, r := range c.Bonus {
		out[r.Races] = r.Points
	}
	return out
}
