// Package scoring computes weighted-deviation anomaly scores for days
// of accumulated telemetry against a fixed baseline.
package scoring

import (
	"fmt"
	"math"
	"sort"

	"github.com/michellecs268/driftwatch/internal/domain/model"
)

// Scoring constants.
const (
	defaultWeight = 1
	decimalFactor = 100
)

// DailyScores computes one anomaly score per day in acc. A day's score
// is the sum over events of |observed - baseline mean| / baseline
// stddev, weighted by the event's alerting weight (default 1 for
// events absent from weights), rounded to two decimals. An event whose
// baseline stddev is zero contributes nothing. Every event in acc must
// have a baseline entry, and its series must cover every counted day.
func DailyScores(acc *model.AccumulatedSeries, base map[string]model.EventStatistic, weights map[string]int) ([]float64, error) {
	// Stable event order so failures surface deterministically.
	names := make([]string, 0, len(acc.Series))
	for name := range acc.Series {
		names = append(names, name)
	}
	sort.Strings(names)

	scores := make([]float64, 0, acc.Days)
	for day := 0; day < acc.Days; day++ {
		var score float64
		for _, name := range names {
			values := acc.Series[name]
			if day >= len(values) {
				return nil, fmt.Errorf("%w: event %q has %d values for %d days", ErrSeriesGap, name, len(values), acc.Days)
			}
			st, ok := base[name]
			if !ok {
				return nil, fmt.Errorf("%w: event %q", ErrMissingBaseline, name)
			}

			var deviation float64
			if st.StdDev > 0 {
				deviation = math.Abs(values[day]-st.Mean) / st.StdDev
			}

			weight, ok := weights[name]
			if !ok {
				weight = defaultWeight
			}
			score += deviation * float64(weight)
		}
		scores = append(scores, round2(score))
	}

	return scores, nil
}

// Threshold returns the alerting cutoff: multiplier times the sum of
// all event weights. It is a pure function of its inputs, so repeated
// cycles over the same weights see the same cutoff.
func Threshold(weights map[string]int, multiplier float64) float64 {
	var sum int
	for _, w := range weights {
		sum += w
	}
	return multiplier * float64(sum)
}

func round2(v float64) float64 {
	return math.Round(v*decimalFactor) / decimalFactor
}
