package stats

import (
	"hash/fnv"
	"sync"
)

// Context aggregates per-quantifier statistics and run-wide event
// counters across one Explore/Check run.
type Context struct {
	mu          sync.Mutex
	quantifiers map[string]*Collector
	events      map[string]int
}

// NewContext returns an empty statistics context.
func NewContext() *Context {
	return &Context{quantifiers: map[string]*Collector{}, events: map[string]int{}}
}

// Collector returns (creating if needed) the named quantifier's
// collector, seeded deterministically from its name.
func (c *Context) Collector(name string) *Collector {
	c.mu.Lock()
	defer c.mu.Unlock()
	col, ok := c.quantifiers[name]
	if !ok {
		col = NewCollector(256, seedFromName(name))
		c.quantifiers[name] = col
	}
	return col
}

// Observe folds an index observation into the named quantifier's
// collector.
func (c *Context) Observe(name string, index float64) {
	c.Collector(name).Observe(index)
}

// RecordEvent increments a named run-wide counter (e.g. "discarded",
// "shrink-step", "budget-exhausted").
func (c *Context) RecordEvent(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events[name]++
}

// Events returns a snapshot of every recorded event counter.
func (c *Context) Events() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]int, len(c.events))
	for k, v := range c.events {
		out[k] = v
	}
	return out
}

// Snapshot returns a per-quantifier Summary snapshot.
func (c *Context) Snapshot() map[string]Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]Summary, len(c.quantifiers))
	for k, col := range c.quantifiers {
		out[k] = col.Summary()
	}
	return out
}

func seedFromName(name string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return h.Sum32()
}
