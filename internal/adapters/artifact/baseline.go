package artifact

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/michellecs268/driftwatch/internal/domain/model"
)

// WriteBaseline persists the accumulated series as the baseline
// artifact. Events are written in the given order, skipping names with
// no series, followed by the day-count trailer.
func WriteBaseline(path string, acc *model.AccumulatedSeries, order []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create baseline artifact: %w", err)
	}
	defer f.Close()

	if err := EncodeBaseline(f, acc, order); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close baseline artifact: %w", err)
	}
	return nil
}

// EncodeBaseline writes the baseline representation to w.
func EncodeBaseline(w io.Writer, acc *model.AccumulatedSeries, order []string) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "Total Statistics")
	fmt.Fprintln(bw, "===========")
	for _, name := range order {
		values, ok := acc.Series[name]
		if !ok {
			continue
		}
		rendered := make([]string, len(values))
		for i, v := range values {
			rendered[i] = formatValue(v)
		}
		fmt.Fprintf(bw, "%s: %s\n", name, strings.Join(rendered, ", "))
	}
	fmt.Fprintf(bw, "Day:%d\n", acc.Days)

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write baseline artifact: %w", err)
	}
	return nil
}
