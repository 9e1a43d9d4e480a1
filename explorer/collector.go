package explorer

import "github.com/rapidx-dev/rapidx/scenario"

// runCollector accumulates classifier, label, collect, and coverage
// observations across every evaluated leaf in one Explore call.
type runCollector struct {
	labelCounts map[string]int
	collected   []any

	coverHits  map[string]int
	coverTotal map[string]int
	coverMin   map[string]float64

	coverTableHits  map[string]map[string]int
	coverTableTotal map[string]int
	coverTableMin   map[string]float64
}

func newRunCollector() *runCollector {
	return &runCollector{
		labelCounts:     map[string]int{},
		coverHits:       map[string]int{},
		coverTotal:      map[string]int{},
		coverMin:        map[string]float64{},
		coverTableHits:  map[string]map[string]int{},
		coverTableTotal: map[string]int{},
		coverTableMin:   map[string]float64{},
	}
}

func (c *runCollector) addLabel(label string) { c.labelCounts[label]++ }

func (c *runCollector) addCollected(v any) { c.collected = append(c.collected, v) }

func (c *runCollector) addCover(label string, minimum float64, hit bool) {
	c.coverTotal[label]++
	c.coverMin[label] = minimum
	if hit {
		c.coverHits[label]++
	}
}

func (c *runCollector) addCoverTable(name string, minimum float64, categories map[string]func(*scenario.BoundTestCase) bool, cur *scenario.BoundTestCase) {
	c.coverTableTotal[name]++
	c.coverTableMin[name] = minimum
	if c.coverTableHits[name] == nil {
		c.coverTableHits[name] = map[string]int{}
	}
	for cat, pred := range categories {
		if pred(cur) {
			c.coverTableHits[name][cat]++
		}
	}
}

func (c *runCollector) coverResults() map[string]CoverResult {
	if len(c.coverTotal) == 0 {
		return nil
	}
	out := make(map[string]CoverResult, len(c.coverTotal))
	for label, total := range c.coverTotal {
		out[label] = CoverResult{Hits: c.coverHits[label], Total: total, Minimum: c.coverMin[label]}
	}
	return out
}

func (c *runCollector) coverTableResults() map[string]map[string]CoverResult {
	if len(c.coverTableTotal) == 0 {
		return nil
	}
	out := make(map[string]map[string]CoverResult, len(c.coverTableTotal))
	for name, total := range c.coverTableTotal {
		cats := make(map[string]CoverResult, len(c.coverTableHits[name]))
		for cat, hits := range c.coverTableHits[name] {
			cats[cat] = CoverResult{Hits: hits, Total: total, Minimum: c.coverTableMin[name]}
		}
		out[name] = cats
	}
	return out
}
