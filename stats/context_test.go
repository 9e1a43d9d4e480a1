package stats_test

import (
	"testing"

	"github.com/rapidx-dev/rapidx/stats"
)

func TestCollectorTracksMeanAndCount(t *testing.T) {
	c := stats.NewCollector(64, 1)
	for _, x := range []float64{0.1, 0.2, 0.3, 0.4} {
		c.Observe(x)
	}
	if c.Count() != 4 {
		t.Fatalf("expected count 4, got %d", c.Count())
	}
	if mean := c.Mean(); mean < 0.2 || mean > 0.3 {
		t.Fatalf("expected mean near 0.25, got %v", mean)
	}
}

func TestContextIsolatesCollectorsByName(t *testing.T) {
	ctx := stats.NewContext()
	ctx.Observe("x", 0.1)
	ctx.Observe("x", 0.9)
	ctx.Observe("y", 0.5)

	snap := ctx.Snapshot()
	if snap["x"].Count != 2 {
		t.Fatalf("expected 2 observations for x, got %d", snap["x"].Count)
	}
	if snap["y"].Count != 1 {
		t.Fatalf("expected 1 observation for y, got %d", snap["y"].Count)
	}
}

func TestContextEventsAreCountedPerName(t *testing.T) {
	ctx := stats.NewContext()
	ctx.RecordEvent("discarded")
	ctx.RecordEvent("discarded")
	ctx.RecordEvent("shrink-step")

	events := ctx.Events()
	if events["discarded"] != 2 {
		t.Fatalf("expected 2 discarded events, got %d", events["discarded"])
	}
	if events["shrink-step"] != 1 {
		t.Fatalf("expected 1 shrink-step event, got %d", events["shrink-step"])
	}
}

func TestCollectorSeededDeterministically(t *testing.T) {
	a := stats.NewCollector(4, 42)
	b := stats.NewCollector(4, 42)
	for i := 0; i < 20; i++ {
		x := float64(i) / 20
		a.Observe(x)
		b.Observe(x)
	}
	if a.Quantile(0.5) != b.Quantile(0.5) {
		t.Fatalf("two collectors seeded identically diverged: %v vs %v", a.Quantile(0.5), b.Quantile(0.5))
	}
}
