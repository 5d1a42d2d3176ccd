package synth

import "errors"

// Sentinel kinds for synthesis errors.
var (
	ErrInvalidEventKind    = errors.New("invalid event kind")
	ErrOutOfBoundsBaseline = errors.New("degenerate distribution outside event bounds")
	ErrMissingStatistic    = errors.New("missing statistics entry")
)
