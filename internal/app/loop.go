package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/michellecs268/driftwatch/internal/adapters/artifact"
	"github.com/michellecs268/driftwatch/internal/domain/model"
	"github.com/michellecs268/driftwatch/internal/domain/scoring"
	"github.com/michellecs268/driftwatch/pkg/logger"
	"github.com/michellecs268/driftwatch/pkg/metrics"
)

// state identifies a position in the alert loop.
type state int

const (
	stateAwaitStatsFile state = iota
	stateAwaitDayCount
	stateGenerateAndScore
	stateReportCycle
	stateTerminated
)

const quitSentinel = "q"

// Run drives the alert loop until the operator quits, input ends, or
// ctx is cancelled. Recoverable failures (unreadable stats source,
// bad day count, mid-cycle consistency errors) return control to the
// stats prompt without touching the established baseline.
func (e *Engine) Run(ctx context.Context) error {
	if e.baseline == nil {
		return ErrNoBaseline
	}

	lines := readLines(ctx, e.in)

	var (
		liveStats map[string]model.EventStatistic
		days      int
		scores    []float64
	)

	st := stateAwaitStatsFile
	for st != stateTerminated {
		switch st {
		case stateAwaitStatsFile:
			fmt.Fprint(e.out, "Enter the new stats file for live data analysis (or 'q' to quit): ")
			line, ok := nextLine(ctx, lines)
			if !ok || strings.EqualFold(line, quitSentinel) {
				st = stateTerminated
				continue
			}
			stats, err := e.loadStats(line)
			if err != nil {
				fmt.Fprintf(e.out, "Error: could not load statistics from %q: %v\n", line, err)
				e.log.Warn(ctx, "stats source rejected", logger.String("source", line), logger.Error(err))
				continue
			}
			fmt.Fprintln(e.out, "Loading new statistics...")
			liveStats = stats
			st = stateAwaitDayCount

		case stateAwaitDayCount:
			fmt.Fprint(e.out, "Enter the number of days for live data generation: ")
			line, ok := nextLine(ctx, lines)
			if !ok {
				st = stateTerminated
				continue
			}
			n, err := strconv.Atoi(line)
			if err != nil || n < 1 {
				fmt.Fprintln(e.out, "Error: Expected a positive integer for number of days")
				continue
			}
			days = n
			st = stateGenerateAndScore

		case stateGenerateAndScore:
			s, err := e.runCycle(ctx, liveStats, days)
			if err != nil {
				if ctx.Err() != nil {
					st = stateTerminated
					continue
				}
				fmt.Fprintf(e.out, "Error: cycle aborted: %v\n", err)
				e.log.Warn(ctx, "alert cycle aborted", logger.Error(err))
				metrics.RecordCycleFailure()
				st = stateAwaitStatsFile
				continue
			}
			scores = s
			st = stateReportCycle

		case stateReportCycle:
			e.report(scores)
			metrics.RecordCycle()
			st = stateAwaitStatsFile
		}
	}

	e.log.Info(ctx, "alert loop terminated")
	return nil
}

// runCycle synthesizes one live batch, persists and replays it, and
// scores every day against the fixed baseline.
func (e *Engine) runCycle(ctx context.Context, liveStats map[string]model.EventStatistic, days int) ([]float64, error) {
	cycleID := uuid.NewString()
	started := time.Now()

	fmt.Fprintf(e.out, "Generating live data for %d days...\n", days)
	batch, err := e.synthesizer.GenerateBatch(ctx, e.catalog, liveStats, days)
	if err != nil {
		return nil, err
	}
	metrics.RecordBatch(days, e.catalog.Len())

	if err := artifact.WriteLogBatch(e.liveLogsFile, batch); err != nil {
		return nil, err
	}

	fmt.Fprintln(e.out, "Accumulating live events...")
	acc, err := e.accumulateFile(e.liveLogsFile)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(e.out, "\nCalculating anomaly scores for live data...")
	scores, err := scoring.DailyScores(acc, e.baseline, e.weights)
	if err != nil {
		return nil, err
	}

	metrics.ObserveScoringDuration(time.Since(started))
	e.log.Info(ctx, "live cycle scored",
		logger.String("cycle_id", cycleID),
		logger.Int("days", days),
		logger.Float64("duration_ms", float64(time.Since(started).Milliseconds())))
	return scores, nil
}

// report prints the per-day OK/ALERT verdicts for one cycle.
func (e *Engine) report(scores []float64) {
	threshold := scoring.Threshold(e.weights, e.multiplier)

	fmt.Fprintln(e.out)
	fmt.Fprintln(e.out, bannerRule)
	fmt.Fprintln(e.out, "Daily Reports")
	fmt.Fprintf(e.out, "Anomaly Detection Threshold: %v\n", threshold)
	fmt.Fprintln(e.out, bannerRule)

	alerts := 0
	for i, score := range scores {
		if score >= threshold {
			alerts++
			fmt.Fprintf(e.out, "Day %d: ALERT - Anomaly Score = %v\n", i+1, score)
		} else {
			fmt.Fprintf(e.out, "Day %d: OK - Anomaly Score = %v\n", i+1, score)
		}
	}
	fmt.Fprintln(e.out, bannerRule)

	metrics.RecordScores(len(scores), alerts)
}

// readLines pumps trimmed input lines into a channel so blocking reads
// can race ctx cancellation. The channel closes on EOF or read error.
func readLines(ctx context.Context, r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- strings.TrimSpace(scanner.Text()):
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}

// nextLine returns the next operator line, or false on EOF or
// cancellation.
func nextLine(ctx context.Context, lines <-chan string) (string, bool) {
	select {
	case <-ctx.Done():
		return "", false
	case line, ok := <-lines:
		return line, ok
	}
}
