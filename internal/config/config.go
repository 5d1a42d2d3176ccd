// Package config defines process configuration structures and loading
// hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Default artifact file names, matching the names the tool has always
// written so existing operator scripts keep working.
const (
	defaultLogsFile     = "logs.txt"
	defaultBaselineFile = "baseline.txt"
	defaultStatsFile    = "baseline_statistics.txt"
	defaultLiveLogsFile = "live_logs.txt"
)

const defaultThresholdMultiplier = 2.0

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogsFile is where the historical batch artifact is written.
	LogsFile string `koanf:"logs_file"`

	// BaselineFile is where the accumulated-series artifact is written.
	BaselineFile string `koanf:"baseline_file"`

	// StatsFile is where the computed baseline statistics are written;
	// the alert loop reloads them from there.
	StatsFile string `koanf:"stats_file"`

	// LiveLogsFile is where each live cycle's batch artifact is written.
	LiveLogsFile string `koanf:"live_logs_file"`

	// ThresholdMultiplier scales the sum of event weights into the
	// alerting threshold.
	ThresholdMultiplier float64 `koanf:"threshold_multiplier"`

	// RandomSeed fixes the sampling source when non-zero; zero means
	// time-seeded.
	RandomSeed int64 `koanf:"random_seed"`

	// MetricsAddr is the optional Prometheus listen address, e.g.
	// ":9090". Empty disables the endpoint.
	MetricsAddr string `koanf:"metrics_addr"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		LogsFile:            defaultLogsFile,
		BaselineFile:        defaultBaselineFile,
		StatsFile:           defaultStatsFile,
		LiveLogsFile:        defaultLiveLogsFile,
		ThresholdMultiplier: defaultThresholdMultiplier,
		RandomSeed:          0,
		MetricsAddr:         "",
	}
}
