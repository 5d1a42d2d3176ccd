// Package synth draws synthetic telemetry from bounded normal
// distributions and assembles it into daily log batches.
package synth

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/michellecs268/driftwatch/internal/domain/model"
)

// Sampling constants.
const (
	decimalFactor = 100 // two decimal places
	// Keeps the uniform draw away from 0 and 1 so the inverse CDF
	// stays finite when a truncation bound sits many stddevs out.
	probEpsilon = 1e-12
)

// Option applies a configuration option to the Synthesizer.
type Option func(*Synthesizer)

// WithSeed fixes the random source for deterministic output.
func WithSeed(seed int64) Option {
	return func(s *Synthesizer) {
		s.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // deterministic seed for reproducible runs
	}
}

// Synthesizer draws values from a normal distribution truncated to an
// event's declared bounds.
type Synthesizer struct {
	rng *rand.Rand
}

// New creates a Synthesizer. Without WithSeed the source is time-seeded.
func New(opts ...Option) *Synthesizer {
	s := &Synthesizer{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // statistical simulation, not crypto
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate draws one value for one event on one day. The draw comes
// from a normal(mean, stddev) restricted to [min, max] via inverse-CDF
// sampling over the truncated support, so it stays cheap even when the
// bounds sit far from the mean. Discrete results are truncated toward
// zero and clamped back into the integer range inside the bounds;
// continuous results are rounded to two decimals.
func (s *Synthesizer) Generate(kind model.Kind, minValue, maxValue, mean, stddev float64) (float64, error) {
	if !kind.Valid() {
		return 0, fmt.Errorf("%w: %q, expected 'C' for continuous or 'D' for discrete", ErrInvalidEventKind, string(kind))
	}
	if stddev < 0 {
		return 0, fmt.Errorf("%w: negative stddev %v", ErrOutOfBoundsBaseline, stddev)
	}

	var value float64
	if stddev == 0 {
		// Point mass at the mean.
		if mean < minValue || mean > maxValue {
			return 0, fmt.Errorf("%w: mean %v outside [%v, %v] with zero stddev", ErrOutOfBoundsBaseline, mean, minValue, maxValue)
		}
		value = mean
	} else {
		value = s.sampleTruncated(minValue, maxValue, mean, stddev)
	}

	if kind == model.Discrete {
		return clampDiscrete(math.Trunc(value), minValue, maxValue), nil
	}
	return round2(value), nil
}

// sampleTruncated draws from normal(mean, stddev) restricted to
// [lo, hi] by inverting the CDF over the truncated support.
func (s *Synthesizer) sampleTruncated(lo, hi, mean, stddev float64) float64 {
	a := stdNormalCDF((lo - mean) / stddev)
	b := stdNormalCDF((hi - mean) / stddev)

	u := a + s.rng.Float64()*(b-a)
	u = math.Max(probEpsilon, math.Min(1-probEpsilon, u))

	v := mean + stddev*math.Sqrt2*math.Erfinv(2*u-1)

	// Floating-point slack at extreme bounds.
	return math.Max(lo, math.Min(hi, v))
}

// stdNormalCDF is Phi, the standard normal CDF.
func stdNormalCDF(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}

// clampDiscrete keeps a truncated draw on an integer inside [lo, hi].
// Truncation toward zero can step outside the bounds when they are not
// themselves integral, e.g. trunc(5.4) = 5 with lo = 5.2.
func clampDiscrete(v, lo, hi float64) float64 {
	return math.Max(math.Ceil(lo), math.Min(math.Floor(hi), v))
}

func round2(v float64) float64 {
	return math.Round(v*decimalFactor) / decimalFactor
}
