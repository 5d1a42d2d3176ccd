package app

import "errors"

// ErrNoBaseline marks an alert loop started before the baseline pass.
var ErrNoBaseline = errors.New("baseline not established")
