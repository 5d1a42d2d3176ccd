// Package baseline reduces accumulated event series to per-event
// (mean, stddev) statistics.
package baseline

import (
	"math"
	"sort"

	"github.com/michellecs268/driftwatch/internal/domain/model"
)

const decimalFactor = 100

// Compute reduces each event's series to its arithmetic mean and
// Bessel-corrected sample standard deviation, both rounded to two
// decimals. A single observation yields stddev 0. Events with no
// observations are excluded from the map and returned in missing,
// sorted for stable reporting; the caller decides how loudly to flag
// them.
func Compute(acc *model.AccumulatedSeries) (stats map[string]model.EventStatistic, missing []string) {
	stats = make(map[string]model.EventStatistic, len(acc.Series))

	for name, values := range acc.Series {
		if len(values) == 0 {
			missing = append(missing, name)
			continue
		}
		mean, stddev := meanStdDev(values)
		stats[name] = model.EventStatistic{
			Name:   name,
			Mean:   round2(mean),
			StdDev: round2(stddev),
		}
	}

	sort.Strings(missing)
	return stats, missing
}

// meanStdDev returns the sample mean and the Bessel-corrected sample
// standard deviation (divisor n-1), or 0 when n == 1.
func meanStdDev(values []float64) (mean, stddev float64) {
	n := float64(len(values))
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / n

	if len(values) < 2 {
		return mean, 0
	}

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return mean, math.Sqrt(sq / (n - 1))
}

func round2(v float64) float64 {
	return math.Round(v*decimalFactor) / decimalFactor
}
