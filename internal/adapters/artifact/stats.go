package artifact

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/michellecs268/driftwatch/internal/domain/model"
)

// Stats record field positions after splitting on ':'.
const (
	statFieldMean = iota + 1
	statFieldStdDev
)

const missingDataMarker = "Data missing"

// LoadStats reads a statistics source file.
func LoadStats(path string) (map[string]model.EventStatistic, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open statistics source: %w", err)
	}
	defer f.Close()
	return ParseStats(f)
}

// ParseStats reads a statistics source: an integer count header, then
// one "name:mean:stddev" record per non-empty line. Omitted mean or
// stddev defaults to 0.0; a trailing colon is tolerated, so the
// computed-statistics artifact reloads as a source.
func ParseStats(r io.Reader) (map[string]model.EventStatistic, error) {
	records, err := readRecords(r)
	if err != nil {
		return nil, err
	}

	stats := make(map[string]model.EventStatistic, len(records))
	for _, fields := range records {
		name := fields[fieldName]
		mean, err := floatField(fields, statFieldMean, 0)
		if err != nil {
			return nil, fmt.Errorf("%w: event %q: %v", ErrMalformedSource, name, err)
		}
		stddev, err := floatField(fields, statFieldStdDev, 0)
		if err != nil {
			return nil, fmt.Errorf("%w: event %q: %v", ErrMalformedSource, name, err)
		}
		stats[name] = model.EventStatistic{Name: name, Mean: mean, StdDev: stddev}
	}

	return stats, nil
}

// WriteStats persists computed statistics so they can be reloaded as a
// statistics source. Events with data are written first, in the given
// order, so the count header matches the loadable records; events that
// had no observations follow as "Data missing" rows past the counted
// region.
func WriteStats(path string, order []string, stats map[string]model.EventStatistic, missing []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create statistics artifact: %w", err)
	}
	defer f.Close()

	if err := EncodeStats(f, order, stats, missing); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close statistics artifact: %w", err)
	}
	return nil
}

// EncodeStats writes the computed-statistics representation to w.
func EncodeStats(w io.Writer, order []string, stats map[string]model.EventStatistic, missing []string) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%d\n", len(stats))
	for _, name := range order {
		st, ok := stats[name]
		if !ok {
			continue
		}
		fmt.Fprintf(bw, "%s:%s:%s:\n", name, formatValue(st.Mean), formatValue(st.StdDev))
	}
	for _, name := range missing {
		fmt.Fprintf(bw, "%s:%s:%s:\n", name, missingDataMarker, missingDataMarker)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write statistics artifact: %w", err)
	}
	return nil
}

// formatValue renders a float without trailing zero noise, matching
// the hand-editable sources the tool consumes.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
