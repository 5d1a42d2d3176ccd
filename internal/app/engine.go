// Package app wires the pipeline stages together and drives the
// interactive alert loop.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/michellecs268/driftwatch/internal/adapters/artifact"
	"github.com/michellecs268/driftwatch/internal/domain/aggregate"
	"github.com/michellecs268/driftwatch/internal/domain/baseline"
	"github.com/michellecs268/driftwatch/internal/domain/model"
	"github.com/michellecs268/driftwatch/internal/domain/synth"
	"github.com/michellecs268/driftwatch/pkg/logger"
	"github.com/michellecs268/driftwatch/pkg/metrics"
)

// Default artifact locations; overridable through options.
const (
	defaultLogsFile     = "logs.txt"
	defaultBaselineFile = "baseline.txt"
	defaultStatsFile    = "baseline_statistics.txt"
	defaultLiveLogsFile = "live_logs.txt"

	defaultThresholdMultiplier = 2.0
)

// StatsLoader loads a statistics map from a named source. The alert
// loop uses it to resolve operator-supplied file names; tests inject
// in-memory loaders.
type StatsLoader func(name string) (map[string]model.EventStatistic, error)

// Engine owns the catalog, the fixed baseline, and the artifact
// plumbing for both the historical pass and the live alert cycles.
type Engine struct {
	catalog  *model.Catalog
	weights  map[string]int
	baseline map[string]model.EventStatistic

	synthesizer *synth.Synthesizer
	multiplier  float64

	logsFile     string
	baselineFile string
	statsFile    string
	liveLogsFile string

	in        io.Reader
	out       io.Writer
	loadStats StatsLoader
	log       logger.Logger
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithSynthesizer sets the value synthesizer.
func WithSynthesizer(s *synth.Synthesizer) Option {
	return func(e *Engine) {
		if s != nil {
			e.synthesizer = s
		}
	}
}

// WithThresholdMultiplier scales the sum of weights into the alert
// threshold.
func WithThresholdMultiplier(m float64) Option {
	return func(e *Engine) {
		if m > 0 {
			e.multiplier = m
		}
	}
}

// WithArtifactFiles sets the four artifact paths.
func WithArtifactFiles(logs, baselineFile, stats, liveLogs string) Option {
	return func(e *Engine) {
		if logs != "" {
			e.logsFile = logs
		}
		if baselineFile != "" {
			e.baselineFile = baselineFile
		}
		if stats != "" {
			e.statsFile = stats
		}
		if liveLogs != "" {
			e.liveLogsFile = liveLogs
		}
	}
}

// WithInput sets the operator input source.
func WithInput(r io.Reader) Option {
	return func(e *Engine) {
		if r != nil {
			e.in = r
		}
	}
}

// WithOutput sets the operator-facing output sink.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) {
		if w != nil {
			e.out = w
		}
	}
}

// WithStatsLoader sets the statistics source resolver.
func WithStatsLoader(l StatsLoader) Option {
	return func(e *Engine) {
		if l != nil {
			e.loadStats = l
		}
	}
}

// WithLogger sets a custom logger for the engine.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// New creates an Engine for the given catalog.
func New(catalog *model.Catalog, opts ...Option) *Engine {
	e := &Engine{
		catalog:      catalog,
		weights:      catalog.Weights(),
		synthesizer:  synth.New(),
		multiplier:   defaultThresholdMultiplier,
		logsFile:     defaultLogsFile,
		baselineFile: defaultBaselineFile,
		statsFile:    defaultStatsFile,
		liveLogsFile: defaultLiveLogsFile,
		in:           os.Stdin,
		out:          os.Stdout,
		loadStats:    artifact.LoadStats,
		log:          logger.Get(),
	}
	for _, opt := range opts {
		opt(e)
	}
	metrics.SetCatalogSize(catalog.Len())
	return e
}

// Baseline returns the fixed baseline statistics, once established.
func (e *Engine) Baseline() map[string]model.EventStatistic {
	return e.baseline
}

// EstablishBaseline runs the historical pass: synthesize days of
// telemetry from the startup statistics, persist the log and baseline
// artifacts, reduce the series to per-event statistics, persist those,
// and reload them as the fixed baseline for all later cycles. The
// reload goes through the statistics source parser so the artifact is
// proven consumable.
func (e *Engine) EstablishBaseline(ctx context.Context, stats map[string]model.EventStatistic, days int) error {
	if err := e.catalog.MatchStats(stats); err != nil {
		return err
	}

	fmt.Fprintln(e.out, "Generating events...")
	batch, err := e.synthesizer.GenerateBatch(ctx, e.catalog, stats, days)
	if err != nil {
		return fmt.Errorf("generate historical batch: %w", err)
	}
	metrics.RecordBatch(days, e.catalog.Len())
	fmt.Fprintf(e.out, "Generated %d days of events!\n\n", days)

	fmt.Fprintln(e.out, "Generating Logs File...")
	if err := artifact.WriteLogBatch(e.logsFile, batch); err != nil {
		return err
	}
	fmt.Fprintf(e.out, "Event logs written successfully to %s!\n\n", e.logsFile)

	fmt.Fprintln(e.out, "Accumulating daily totals...")
	acc, err := e.accumulateFile(e.logsFile)
	if err != nil {
		return err
	}
	fmt.Fprintln(e.out, "Calculations Complete!")

	printBanner(e.out, "Analysis Engine")

	fmt.Fprintln(e.out, "Generating Data File...")
	if err := artifact.WriteBaseline(e.baselineFile, acc, e.catalog.Names()); err != nil {
		return err
	}
	fmt.Fprintf(e.out, "Data successfully written to %s!\n\n", e.baselineFile)

	fmt.Fprintln(e.out, "Calculating statistics...")
	computed, missing := baseline.Compute(acc)
	for _, name := range missing {
		e.log.Warn(ctx, "missing data for event", logger.String("event", name))
		fmt.Fprintf(e.out, "Warning: Missing data for event '%s'.\n", name)
	}
	if err := artifact.WriteStats(e.statsFile, e.catalog.Names(), computed, missing); err != nil {
		return err
	}
	fmt.Fprintf(e.out, "Statistics successfully written to %s...\n", e.statsFile)

	loaded, err := e.loadStats(e.statsFile)
	if err != nil {
		return fmt.Errorf("reload baseline statistics: %w", err)
	}
	e.baseline = loaded

	e.log.Info(ctx, "baseline established",
		logger.Int("days", days),
		logger.Int("events", e.catalog.Len()),
		logger.Int("missing", len(missing)))
	return nil
}

// accumulateFile replays a persisted log artifact into a series.
func (e *Engine) accumulateFile(path string) (*model.AccumulatedSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log artifact: %w", err)
	}
	defer f.Close()

	acc, err := aggregate.Accumulate(f)
	if err != nil {
		return nil, fmt.Errorf("accumulate %s: %w", path, err)
	}
	return acc, nil
}
