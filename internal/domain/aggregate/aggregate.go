// Package aggregate replays a daily log stream into per-event time
// series.
package aggregate

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/michellecs268/driftwatch/internal/domain/model"
)

const dayMarkerPrefix = "Day:"

// Accumulate consumes the log artifact representation: a "Day:<n>"
// marker per day followed by "event:value" lines, with blank lines
// between days. Each marker bumps the day counter; each value line is
// appended to that event's series, created on first sight. Series are
// aligned with day order as encountered, so an event absent from a
// day's block leaves a gap the scorer detects, not a zero.
func Accumulate(r io.Reader) (*model.AccumulatedSeries, error) {
	acc := &model.AccumulatedSeries{Series: make(map[string][]float64)}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, dayMarkerPrefix) {
			acc.Days++
			continue
		}

		name, raw, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrMalformedLog, line)
		}
		acc.Series[name] = append(acc.Series[name], value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log stream: %w", err)
	}

	return acc, nil
}

// FromBatch builds the accumulated series directly from an in-memory
// batch, bypassing the artifact round trip.
func FromBatch(batch model.LogBatch) *model.AccumulatedSeries {
	acc := &model.AccumulatedSeries{
		Series: make(map[string][]float64),
		Days:   len(batch),
	}
	for _, daily := range batch {
		for _, obs := range daily {
			acc.Series[obs.Name] = append(acc.Series[obs.Name], obs.Value)
		}
	}
	return acc
}
