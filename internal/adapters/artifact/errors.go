package artifact

import "errors"

// Sentinel kinds for artifact source errors.
var (
	ErrMalformedSource = errors.New("malformed source record")
	ErrCountMismatch   = errors.New("record count does not match header")
)
