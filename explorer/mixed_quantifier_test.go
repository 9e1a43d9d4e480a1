package explorer_test

import (
	"testing"

	"github.com/rapidx-dev/rapidx/explorer"
	"github.com/rapidx-dev/rapidx/gen"
	"github.com/rapidx-dev/rapidx/internal/prng"
	"github.com/rapidx-dev/rapidx/internal/sampler"
	"github.com/rapidx-dev/rapidx/scenario"
)

func compile(t *testing.T, s *scenario.Scenario) scenario.ExecutableScenario {
	t.Helper()
	es, err := scenario.Compile(s)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	return es
}

// A plain ∀ over a property that always holds passes with TestsRun == n.
func TestForAllAlwaysHolds(t *testing.T) {
	s := scenario.New().
		ForAll("x", gen.Erase(gen.Integer(0, 10))).
		Then(func(b *scenario.BoundTestCase) (bool, error) {
			return b.Value("x").(int) >= 0, nil
		})
	es := compile(t, s)
	smp := sampler.Build(prng.New(1), true, true, false)
	out := explorer.Explore(es, smp, 20, explorer.Budget{MaxTests: 1000}, nil)
	if out.Status != explorer.Passed {
		t.Fatalf("expected Passed, got %v (counterexample %v)", out.Status, out.Counterexample)
	}
}

// A ∀ over a property that fails for negative inputs finds a
// counterexample once the domain includes negatives.
func TestForAllFindsCounterexample(t *testing.T) {
	s := scenario.New().
		ForAll("x", gen.Erase(gen.Integer(-5, 5))).
		Then(func(b *scenario.BoundTestCase) (bool, error) {
			return b.Value("x").(int) >= 0, nil
		})
	es := compile(t, s)
	smp := sampler.Build(prng.New(7), true, true, false)
	out := explorer.Explore(es, smp, 50, explorer.Budget{MaxTests: 1000}, nil)
	if out.Status != explorer.Failed {
		t.Fatalf("expected Failed, got %v", out.Status)
	}
	if out.Counterexample["x"].(int) >= 0 {
		t.Fatalf("counterexample %v does not actually violate the property", out.Counterexample)
	}
}

// S1-style mixed nesting: ForAll("x") Exists("y", ...) — an inner ∃
// without a witness for a given outer x must not itself produce a
// counterexample; it renders that branch of the outer ∀ inconclusive,
// and the overall run is only inconclusive if NO outer sample ever finds
// an inner witness.
func TestMixedNestingInnerExistsExhaustionIsInconclusiveNotFailure(t *testing.T) {
	s := scenario.New().
		ForAll("x", gen.Erase(gen.Integer(0, 3))).
		Exists("y", gen.Erase(gen.Integer(100, 103))).
		Then(func(b *scenario.BoundTestCase) (bool, error) {
			x := b.Value("x").(int)
			y := b.Value("y").(int)
			return x+100 == y, nil
		})
	es := compile(t, s)
	smp := sampler.Build(prng.New(3), true, true, false)
	out := explorer.Explore(es, smp, 10, explorer.Budget{MaxTests: 1000}, nil)
	if out.Status != explorer.Passed {
		t.Fatalf("expected Passed (some x has a matching y), got %v", out.Status)
	}
}

// When no outer sample ever finds an inner witness, the whole run is
// Inconclusive, not Failed — the ∃-exhaustion policy never manufactures
// a counterexample on its own.
func TestMixedNestingAllInconclusiveYieldsInconclusive(t *testing.T) {
	s := scenario.New().
		ForAll("x", gen.Erase(gen.Integer(0, 3))).
		Exists("y", gen.Erase(gen.Integer(100, 103))).
		Then(func(b *scenario.BoundTestCase) (bool, error) {
			x := b.Value("x").(int)
			y := b.Value("y").(int)
			return x+1000 == y, nil // never true
		})
	es := compile(t, s)
	smp := sampler.Build(prng.New(5), true, true, false)
	out := explorer.Explore(es, smp, 10, explorer.Budget{MaxTests: 1000}, nil)
	if out.Status != explorer.Inconclusive {
		t.Fatalf("expected Inconclusive, got %v", out.Status)
	}
}

// A top-level ∃ with no witness is a genuine failure, not inconclusive.
func TestTopLevelExistsWithoutWitnessFails(t *testing.T) {
	s := scenario.New().
		Exists("x", gen.Erase(gen.Integer(0, 3))).
		Then(func(b *scenario.BoundTestCase) (bool, error) {
			return b.Value("x").(int) > 1000, nil
		})
	es := compile(t, s)
	smp := sampler.Build(prng.New(9), true, true, false)
	out := explorer.Explore(es, smp, 10, explorer.Budget{MaxTests: 1000}, nil)
	if out.Status != explorer.Failed {
		t.Fatalf("expected Failed, got %v", out.Status)
	}
}

// A When step calling scenario.Pre discards the branch (counted in
// Discarded) without affecting the overall pass/fail verdict when other
// samples still hold.
func TestPreconditionDiscardsBranch(t *testing.T) {
	s := scenario.New().
		ForAll("x", gen.Erase(gen.Integer(0, 20))).
		When(func(b *scenario.BoundTestCase) error {
			scenario.Pre(b.Value("x").(int)%2 == 0)
			return nil
		}).
		Then(func(b *scenario.BoundTestCase) (bool, error) {
			return b.Value("x").(int)%2 == 0, nil
		})
	es := compile(t, s)
	smp := sampler.Build(prng.New(11), true, true, false)
	out := explorer.Explore(es, smp, 30, explorer.Budget{MaxTests: 1000}, nil)
	if out.Status != explorer.Passed {
		t.Fatalf("expected Passed, got %v", out.Status)
	}
	if out.Discarded == 0 {
		t.Fatalf("expected some odd draws to be discarded")
	}
}

// Classify labels are tallied across every evaluated leaf.
func TestClassifyTalliesLabels(t *testing.T) {
	s := scenario.New().
		ForAll("x", gen.Erase(gen.Integer(0, 9))).
		Classify(func(b *scenario.BoundTestCase) bool { return b.Value("x").(int)%2 == 0 }, "even").
		Then(func(b *scenario.BoundTestCase) (bool, error) { return true, nil })
	es := compile(t, s)
	smp := sampler.Build(prng.New(13), true, true, false)
	out := explorer.Explore(es, smp, 40, explorer.Budget{MaxTests: 1000}, nil)
	if out.Status != explorer.Passed {
		t.Fatalf("expected Passed, got %v", out.Status)
	}
	if out.LabelCounts["even"] == 0 {
		t.Fatalf("expected some branches labeled %q", "even")
	}
}
