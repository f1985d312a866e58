// Package config defines process configuration and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file, and environment variables.
// - External errors are wrapped via this package's error kinds.
package config

import "runtime"

// Config contains process configuration for the regatta CLI.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// SnapshotPath points at the snapshot file (JSON or YAML) holding
	// events, entries, races, and finishes.
	SnapshotPath string `koanf:"snapshot_path"`

	// EventID selects the event to score. Empty means score every event
	// in the snapshot.
	EventID string `koanf:"event_id"`

	// DivisionID restricts the ranked entries to one division. Empty means
	// the overall result.
	DivisionID string `koanf:"division_id"`

	// OutputPath is where the result table is written; "-" means stdout.
	OutputPath string `koanf:"output_path"`

	// WorkerCount bounds concurrent event computations in batch mode.
	WorkerCount int `koanf:"worker_count"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:    "info",
		OutputPath:  "-",
		WorkerCount: runtime.NumCPU(),
	}
}
