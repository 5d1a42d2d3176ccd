// Package model contains domain values passed between pipeline stages.
package model

import (
	"fmt"
	"math"
)

// Kind classifies an event's value domain.
type Kind string

// Recognized event kinds. The single-letter forms match the catalog
// source format.
const (
	Continuous Kind = "C"
	Discrete   Kind = "D"
)

// Valid reports whether k is a recognized kind.
func (k Kind) Valid() bool {
	return k == Continuous || k == Discrete
}

// EventDefinition describes one tracked event: its value domain, the
// bounds every synthesized value must respect, and the weight its
// deviations carry in the daily anomaly score.
type EventDefinition struct {
	Name   string
	Kind   Kind
	Min    float64
	Max    float64
	Weight int
}

// Validate checks the definition invariants.
func (d EventDefinition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: empty event name", ErrInvalidDefinition)
	}
	if !d.Kind.Valid() {
		return fmt.Errorf("%w: event %q has kind %q, expected C or D", ErrInvalidEventKind, d.Name, string(d.Kind))
	}
	if d.Min >= d.Max {
		return fmt.Errorf("%w: event %q has min %v >= max %v", ErrInvalidDefinition, d.Name, d.Min, d.Max)
	}
	if d.Weight < 1 {
		return fmt.Errorf("%w: event %q has non-positive weight %d", ErrInvalidDefinition, d.Name, d.Weight)
	}
	// A discrete event needs at least one integer inside its bounds,
	// or the post-sampling integer cast has nowhere to land.
	if d.Kind == Discrete && math.Ceil(d.Min) > math.Floor(d.Max) {
		return fmt.Errorf("%w: discrete event %q has no integer in [%v, %v]", ErrInvalidDefinition, d.Name, d.Min, d.Max)
	}
	return nil
}

// EventStatistic is a (mean, stddev) pair for one event. A map of these
// keyed by event name serves both as the fixed baseline and as the
// per-cycle live generation parameters.
type EventStatistic struct {
	Name   string
	Mean   float64
	StdDev float64
}

// Observation is one generated value for one event on one day.
type Observation struct {
	Name  string
	Value float64
}

// DailyLog holds all observations for a single simulated day, in
// catalog order.
type DailyLog []Observation

// LogBatch is an ordered run of daily logs; day number is the 1-based
// position in the slice.
type LogBatch []DailyLog

// AccumulatedSeries is the per-event time series rebuilt from a log
// stream, plus the number of day markers encountered.
type AccumulatedSeries struct {
	Series map[string][]float64
	Days   int
}
