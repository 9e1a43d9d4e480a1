// Package stats implements the statistics context: per-quantifier
// online mean/variance (Welford's algorithm) plus a reservoir sample
// for approximate quantiles, and run-wide event counters. A *Context is
// passed explicitly through explorer/check call signatures
// rather than kept goroutine-local, so independent concurrent Check
// calls never share state.
//
// No teacher analogue exists (lucaskalb-rapidx reports no statistics at
// all); this package follows spec.md §4.8 directly, using only
// stdlib numerics (Welford's algorithm and reservoir sampling are
// textbook streaming-statistics techniques with no natural third-party
// library in the example pack — gonum/stat appears only as reference
// material under other_examples/, never as an importable dependency).
package stats

import (
	"sort"

	"github.com/rapidx-dev/rapidx/internal/prng"
)

// Collector accumulates one quantifier's observed index values (each in
// [0,1), typically from Arbitrary.CalculateIndex).
type Collector struct {
	count     int
	mean      float64
	m2        float64
	reservoir []float64
	capacity  int
	rng       *prng.Prng
}

// NewCollector builds a Collector with the given reservoir capacity,
// seeded deterministically so repeated runs over the same data produce
// the same quantile estimates.
func NewCollector(capacity int, seed uint32) *Collector {
	if capacity <= 0 {
		capacity = 256
	}
	return &Collector{capacity: capacity, rng: prng.New(seed)}
}

// Observe folds x into the running mean/variance and reservoir sample.
func (c *Collector) Observe(x float64) {
	c.count++
	delta := x - c.mean
	c.mean += delta / float64(c.count)
	c.m2 += delta * (x - c.mean)

	if len(c.reservoir) < c.capacity {
		c.reservoir = append(c.reservoir, x)
		return
	}
	j := c.rng.IntN(c.count)
	if j < c.capacity {
		c.reservoir[j] = x
	}
}

func (c *Collector) Count() int { return c.count }

func (c *Collector) Mean() float64 { return c.mean }

func (c *Collector) Variance() float64 {
	if c.count < 2 {
		return 0
	}
	return c.m2 / float64(c.count-1)
}

// Quantile returns an approximate quantile (q in [0,1]) from the
// reservoir sample.
func (c *Collector) Quantile(q float64) float64 {
	if len(c.reservoir) == 0 {
		return 0
	}
	sorted := append([]float64(nil), c.reservoir...)
	sort.Float64s(sorted)
	idx := int(q * float64(len(sorted)-1))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// Summary is a point-in-time snapshot of a Collector.
type Summary struct {
	Count    int
	Mean     float64
	Variance float64
	P50      float64
	P90      float64
	P99      float64
}

func (c *Collector) Summary() Summary {
	return Summary{
		Count:    c.Count(),
		Mean:     c.Mean(),
		Variance: c.Variance(),
		P50:      c.Quantile(0.5),
		P90:      c.Quantile(0.9),
		P99:      c.Quantile(0.99),
	}
}
