package engine

import "github.com/arikiri/imagedup/pkg/api"

// Config tunes an Engine's concurrency and logging behavior.
type Config struct {
	// NumWorkers bounds how many images are fingerprinted concurrently.
	NumWorkers int `yaml:"num_workers"`
	// LogLevel is a logrus level name ("debug", "info", "warn", "error").
	LogLevel string `yaml:"log_level"`
	// LogFilePath, if set, additionally writes log output to this file.
	LogFilePath string `yaml:"log_file_path"`
}

// DefaultConfig returns a Config suitable for interactive use on a typical
// workstation.
func DefaultConfig() Config {
	return Config{
		NumWorkers: api.DefaultNumWorkers,
		LogLevel:   "info",
	}
}

// HighPerformanceConfig widens the worker pool for large batch runs on
// machines with cores to spare.
func HighPerformanceConfig() Config {
	cfg := DefaultConfig()
	cfg.NumWorkers = api.DefaultNumWorkers * 4
	return cfg
}

// QuietConfig suppresses informational logging, leaving only warnings and
// errors — useful when the engine is driven from a script.
func QuietConfig() Config {
	cfg := DefaultConfig()
	cfg.LogLevel = "warn"
	return cfg
}
