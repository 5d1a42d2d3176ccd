package model

import "fmt"

// Catalog is the immutable, ordered set of event definitions for a run.
// Iteration order is insertion order, which downstream batch generation
// and artifact writers preserve.
type Catalog struct {
	order []string
	defs  map[string]EventDefinition
}

// NewCatalog validates the definitions and builds a catalog preserving
// their order.
func NewCatalog(defs []EventDefinition) (*Catalog, error) {
	c := &Catalog{
		order: make([]string, 0, len(defs)),
		defs:  make(map[string]EventDefinition, len(defs)),
	}
	for _, d := range defs {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.defs[d.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateEvent, d.Name)
		}
		c.order = append(c.order, d.Name)
		c.defs[d.Name] = d
	}
	return c, nil
}

// Names returns the event names in insertion order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Get returns the definition for name.
func (c *Catalog) Get(name string) (EventDefinition, bool) {
	d, ok := c.defs[name]
	return d, ok
}

// Len returns the number of events in the catalog.
func (c *Catalog) Len() int {
	return len(c.order)
}

// Weights returns a fresh name-to-weight map for the anomaly scorer.
func (c *Catalog) Weights() map[string]int {
	w := make(map[string]int, len(c.defs))
	for name, d := range c.defs {
		w[name] = d.Weight
	}
	return w
}

// MatchStats verifies the 1:1 correspondence between catalog names and
// a statistics map: same count, and every catalog event present.
func (c *Catalog) MatchStats(stats map[string]EventStatistic) error {
	if len(stats) != len(c.order) {
		return fmt.Errorf("%w: catalog has %d events, statistics has %d", ErrStatMismatch, len(c.order), len(stats))
	}
	for _, name := range c.order {
		if _, ok := stats[name]; !ok {
			return fmt.Errorf("%w: no statistics for event %q", ErrStatMismatch, name)
		}
	}
	return nil
}
