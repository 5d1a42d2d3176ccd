package aggregate

import "errors"

// ErrMalformedLog marks a log line whose value does not parse.
var ErrMalformedLog = errors.New("malformed log line")
