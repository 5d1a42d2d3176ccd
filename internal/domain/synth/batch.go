package synth

import (
	"context"
	"fmt"

	"github.com/michellecs268/driftwatch/internal/domain/model"
)

// GenerateBatch synthesizes days of telemetry for every event in the
// catalog, drawing each event's generation parameters from stats. The
// output preserves catalog order within each day. Every catalog event
// must have a matching statistics entry.
func (s *Synthesizer) GenerateBatch(ctx context.Context, catalog *model.Catalog, stats map[string]model.EventStatistic, days int) (model.LogBatch, error) {
	if days < 1 {
		return nil, fmt.Errorf("day count must be positive, got %d", days)
	}

	names := catalog.Names()
	batch := make(model.LogBatch, 0, days)

	for day := 1; day <= days; day++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("generation cancelled on day %d: %w", day, ctx.Err())
		default:
		}

		daily := make(model.DailyLog, 0, len(names))
		for _, name := range names {
			def, _ := catalog.Get(name)
			st, ok := stats[name]
			if !ok {
				return nil, fmt.Errorf("%w: event %q", ErrMissingStatistic, name)
			}

			value, err := s.Generate(def.Kind, def.Min, def.Max, st.Mean, st.StdDev)
			if err != nil {
				return nil, fmt.Errorf("generate event %q on day %d: %w", name, day, err)
			}
			daily = append(daily, model.Observation{Name: name, Value: value})
		}
		batch = append(batch, daily)
	}

	return batch, nil
}
