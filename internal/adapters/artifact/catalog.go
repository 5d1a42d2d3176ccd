// Package artifact reads and writes the textual catalog, statistics,
// log, and baseline artifacts the pipeline exchanges with the operator
// and with its own later phases.
package artifact

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/michellecs268/driftwatch/internal/domain/model"
)

// Catalog record field positions after splitting on ':'.
const (
	fieldName = iota
	fieldKind
	fieldMin
	fieldMax
	fieldWeight
)

// LoadCatalog reads an event catalog source file.
func LoadCatalog(path string) (*model.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog source: %w", err)
	}
	defer f.Close()
	return ParseCatalog(f)
}

// ParseCatalog reads a catalog source: an integer count header, then
// one "name:kind:min:max:weight" record per non-empty line. Omitted
// min/max default to 0.0 and omitted weight to 1.
func ParseCatalog(r io.Reader) (*model.Catalog, error) {
	records, err := readRecords(r)
	if err != nil {
		return nil, err
	}

	defs := make([]model.EventDefinition, 0, len(records))
	for _, fields := range records {
		minValue, err := floatField(fields, fieldMin, 0)
		if err != nil {
			return nil, fmt.Errorf("%w: event %q: %v", ErrMalformedSource, fields[fieldName], err)
		}
		maxValue, err := floatField(fields, fieldMax, 0)
		if err != nil {
			return nil, fmt.Errorf("%w: event %q: %v", ErrMalformedSource, fields[fieldName], err)
		}
		weight, err := intField(fields, fieldWeight, 1)
		if err != nil {
			return nil, fmt.Errorf("%w: event %q: %v", ErrMalformedSource, fields[fieldName], err)
		}

		defs = append(defs, model.EventDefinition{
			Name:   fields[fieldName],
			Kind:   model.Kind(stringField(fields, fieldKind)),
			Min:    minValue,
			Max:    maxValue,
			Weight: weight,
		})
	}

	return model.NewCatalog(defs)
}

// readRecords consumes the count header and the subsequent colon-split
// records, enforcing that exactly count non-empty records are present.
func readRecords(r io.Reader) ([][]string, error) {
	scanner := bufio.NewScanner(r)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read source: %w", err)
		}
		return nil, fmt.Errorf("%w: empty source", ErrMalformedSource)
	}
	count, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return nil, fmt.Errorf("%w: first line should be an integer record count", ErrMalformedSource)
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: negative record count %d", ErrMalformedSource, count)
	}

	records := make([][]string, 0, count)
	for len(records) < count && scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, ":")
		if fields[fieldName] == "" {
			return nil, fmt.Errorf("%w: record %q has no name", ErrMalformedSource, line)
		}
		records = append(records, fields)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	if len(records) != count {
		return nil, fmt.Errorf("%w: expected %d records, found %d", ErrCountMismatch, count, len(records))
	}

	return records, nil
}

func stringField(fields []string, i int) string {
	if i >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[i])
}

func floatField(fields []string, i int, def float64) (float64, error) {
	s := stringField(fields, i)
	if s == "" {
		return def, nil
	}
	return strconv.ParseFloat(s, 64)
}

func intField(fields []string, i int, def int) (int, error) {
	s := stringField(fields, i)
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}
