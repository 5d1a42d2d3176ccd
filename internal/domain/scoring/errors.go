package scoring

import "errors"

// Sentinel kinds for scoring errors.
var (
	ErrMissingBaseline = errors.New("missing baseline entry")
	ErrSeriesGap       = errors.New("series shorter than day count")
)
