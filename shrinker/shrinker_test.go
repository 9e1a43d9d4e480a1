package shrinker_test

import (
	"testing"

	"github.com/rapidx-dev/rapidx/explorer"
	"github.com/rapidx-dev/rapidx/gen"
	"github.com/rapidx-dev/rapidx/internal/prng"
	"github.com/rapidx-dev/rapidx/internal/sampler"
	"github.com/rapidx-dev/rapidx/scenario"
	"github.com/rapidx-dev/rapidx/shrinker"
)

// Minimizing "x >= 10 fails the property x < 10" should converge on the
// smallest failing value the domain allows above the threshold.
func TestShrinkMinimizesToBoundary(t *testing.T) {
	s := scenario.New().
		ForAll("x", gen.Erase(gen.Integer(0, 1000))).
		Then(func(b *scenario.BoundTestCase) (bool, error) {
			return b.Value("x").(int) < 10, nil
		})
	es, err := scenario.Compile(s)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	smp := sampler.Build(prng.New(42), true, true, false)
	out := explorer.Explore(es, smp, 200, explorer.Budget{MaxTests: 5000}, nil)
	if out.Status != explorer.Failed {
		t.Fatalf("expected a counterexample, got %v", out.Status)
	}

	oracle := shrinker.NewOracle(es)
	res := shrinker.Shrink(es, oracle, out.CounterexamplePicks, shrinker.RoundRobin, 500)
	minimized := res.Example["x"].(int)
	if minimized < 10 {
		t.Fatalf("minimized value %d no longer reproduces the failure", minimized)
	}
	if minimized > 100 {
		t.Fatalf("shrink made little progress: minimized to %d", minimized)
	}
}

func TestShrinkSequentialExhaustiveConverges(t *testing.T) {
	s := scenario.New().
		ForAll("x", gen.Erase(gen.Integer(0, 1000))).
		ForAll("y", gen.Erase(gen.Integer(0, 1000))).
		Then(func(b *scenario.BoundTestCase) (bool, error) {
			return b.Value("x").(int)+b.Value("y").(int) < 20, nil
		})
	es, err := scenario.Compile(s)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	smp := sampler.Build(prng.New(99), true, true, false)
	out := explorer.Explore(es, smp, 300, explorer.Budget{MaxTests: 20000}, nil)
	if out.Status != explorer.Failed {
		t.Fatalf("expected a counterexample, got %v", out.Status)
	}

	oracle := shrinker.NewOracle(es)
	res := shrinker.Shrink(es, oracle, out.CounterexamplePicks, shrinker.SequentialExhaustive, 1000)
	sum := res.Example["x"].(int) + res.Example["y"].(int)
	if sum < 20 {
		t.Fatalf("minimized pair (%v) no longer reproduces the failure", res.Example)
	}
}
