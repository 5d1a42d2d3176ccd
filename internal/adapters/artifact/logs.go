package artifact

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/michellecs268/driftwatch/internal/domain/model"
)

// WriteLogBatch persists a batch as the daily log artifact, fully
// overwriting any previous run's file.
func WriteLogBatch(path string, batch model.LogBatch) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create log artifact: %w", err)
	}
	defer f.Close()

	if err := EncodeLogBatch(f, batch); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close log artifact: %w", err)
	}
	return nil
}

// EncodeLogBatch writes the log representation: a "Day:<n>" marker,
// one "event:value" line per observation, and a blank separator after
// each day.
func EncodeLogBatch(w io.Writer, batch model.LogBatch) error {
	bw := bufio.NewWriter(w)

	for i, daily := range batch {
		fmt.Fprintf(bw, "Day:%d\n", i+1)
		for _, obs := range daily {
			fmt.Fprintf(bw, "%s:%s\n", obs.Name, formatValue(obs.Value))
		}
		fmt.Fprintln(bw)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write log artifact: %w", err)
	}
	return nil
}
