package model

import "errors"

// Sentinel error kinds for catalog and definition validation. These
// allow errors.Is/As from callers.
var (
	ErrInvalidDefinition = errors.New("invalid event definition")
	ErrInvalidEventKind  = errors.New("invalid event kind")
	ErrDuplicateEvent    = errors.New("duplicate event name")
	ErrStatMismatch      = errors.New("catalog and statistics do not match")
)
