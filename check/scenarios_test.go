package check_test

import (
	"testing"

	"github.com/rapidx-dev/rapidx/check"
	"github.com/rapidx-dev/rapidx/config"
	"github.com/rapidx-dev/rapidx/gen"
	"github.com/rapidx-dev/rapidx/quick"
	"github.com/rapidx-dev/rapidx/scenario"
)

// These mirror the seven concrete scenarios documented as the engine's
// worked examples: S1-S6 exercise the ∀/∃ duality and shrinking, S7
// exercises classification. Field names follow this package's Result
// (Passed/Witness/Counterexample/Shrunk) rather than a generic
// Satisfiable/Example pair, since distinguishing a ∀'s counterexample
// from an ∃'s witness is more precise than folding both into one field.

func TestScenarioS1ForallExistsIsSatisfiable(t *testing.T) {
	sc := scenario.New().
		ForAll("a", gen.Erase(gen.Integer(-10, 10))).
		Exists("b", gen.Erase(gen.Integer(-10, 10))).
		Then(func(b *scenario.BoundTestCase) (bool, error) {
			return b.Value("a").(int)+b.Value("b").(int) == 0, nil
		})

	res, err := check.Check(sc, config.NewStrategy().WithSampleSize(400))
	if err != nil {
		t.Fatalf("Check returned an error: %v", err)
	}
	if !res.Passed {
		t.Fatalf("expected satisfiable, got failure: %v", res.Err)
	}
}

func TestScenarioS2ExistsIdentityElementIsOne(t *testing.T) {
	sc := scenario.New().
		Exists("b", gen.Erase(gen.Integer(-10, 10))).
		ForAll("a", gen.Erase(gen.Integer(-1_000_000, 1_000_000))).
		Then(func(bound *scenario.BoundTestCase) (bool, error) {
			a, b := bound.Value("a").(int), bound.Value("b").(int)
			return a*b == a && b*a == a, nil
		})

	res, err := check.Check(sc, config.NewStrategy().WithSampleSize(900))
	if err != nil {
		t.Fatalf("Check returned an error: %v", err)
	}
	if !res.Passed {
		t.Fatalf("expected satisfiable, got failure: %v", res.Err)
	}
	quick.Equal(t, res.Witness["b"], 1)
}

func TestScenarioS3ExistsAdditiveIdentityIsZero(t *testing.T) {
	sc := scenario.New().
		Exists("b", gen.Erase(gen.Integer(-10, 10))).
		ForAll("a", gen.Erase(gen.Integer(-1_000_000, 1_000_000))).
		Then(func(bound *scenario.BoundTestCase) (bool, error) {
			a, b := bound.Value("a").(int), bound.Value("b").(int)
			return a+b == a, nil
		})

	res, err := check.Check(sc, config.NewStrategy().WithSampleSize(900))
	if err != nil {
		t.Fatalf("Check returned an error: %v", err)
	}
	if !res.Passed {
		t.Fatalf("expected satisfiable, got failure: %v", res.Err)
	}
	quick.Equal(t, res.Witness["b"], 0)
}

func TestScenarioS4SubtractionIsNotCommutative(t *testing.T) {
	sc := scenario.New().
		ForAll("a", gen.Erase(gen.Integer(-100, 100))).
		ForAll("b", gen.Erase(gen.Integer(-100, 100))).
		Then(func(bound *scenario.BoundTestCase) (bool, error) {
			a, b := bound.Value("a").(int), bound.Value("b").(int)
			return a-b == b-a, nil
		})

	res, err := check.Check(sc, config.NewStrategy().WithSampleSize(300))
	if err != nil {
		t.Fatalf("Check returned an error: %v", err)
	}
	if res.Passed {
		t.Fatalf("expected unsatisfiable (a-b == b-a only when a == b)")
	}
	if res.Shrunk == nil {
		t.Fatalf("expected the counterexample to have been shrunk")
	}
}

func TestScenarioS5ExistsWitnessShrinksToZero(t *testing.T) {
	sc := scenario.New().
		Exists("a", gen.Erase(gen.Integer(-1_000_000, 1_000_000))).
		Then(func(bound *scenario.BoundTestCase) (bool, error) {
			a := bound.Value("a").(int)
			return a+1000 > a, nil
		})

	res, err := check.Check(sc, config.NewStrategy().WithSampleSize(200))
	if err != nil {
		t.Fatalf("Check returned an error: %v", err)
	}
	if !res.Passed {
		t.Fatalf("expected satisfiable, got failure: %v", res.Err)
	}
	if res.Shrunk == nil {
		t.Fatalf("expected the witness to have been shrunk")
	}
	quick.Equal(t, res.Witness["a"], 0)
}

func TestScenarioS6NestedExistsNeverFindsAWitness(t *testing.T) {
	sc := scenario.New().
		ForAll("a", gen.Erase(gen.Integer(5, 10))).
		Exists("b", gen.Erase(gen.Integer(1, 2))).
		Then(func(bound *scenario.BoundTestCase) (bool, error) {
			return bound.Value("a").(int)+bound.Value("b").(int) == 0, nil
		})

	res, err := check.Check(sc, config.NewStrategy().WithSampleSize(60))
	if err != nil {
		t.Fatalf("Check returned an error: %v", err)
	}
	if res.Passed {
		t.Fatalf("expected unsatisfiable: a+b >= 6 for every a in [5,10], b in [1,2]")
	}
}

func TestScenarioS7ClassificationSplitsRoughlyEvenly(t *testing.T) {
	sc := scenario.New().
		ForAll("x", gen.Erase(gen.Integer(0, 1))).
		Label(func(bound *scenario.BoundTestCase) string {
			if bound.Value("x").(int) == 0 {
				return "zero"
			}
			return "one"
		}).
		Then(func(bound *scenario.BoundTestCase) (bool, error) {
			x := bound.Value("x").(int)
			return x >= 0 && x <= 1, nil
		})

	strat := config.NewStrategy().WithSampleSize(100)
	strat.Dedup = false // a 2-value domain would otherwise exhaust after 2 draws
	res, err := check.Check(sc, strat)
	if err != nil {
		t.Fatalf("Check returned an error: %v", err)
	}
	if !res.Passed {
		t.Fatalf("expected satisfiable, got failure: %v", res.Err)
	}
	zero, one := res.Statistics.LabelCounts["zero"], res.Statistics.LabelCounts["one"]
	quick.Equal(t, zero+one, 100)
	ratio := float64(zero) / 100
	if diff := ratio - 0.5; diff < -0.15 || diff > 0.15 {
		t.Fatalf("expected zero/100 within 0.15 of 0.5 on a uniform PRNG, got %v (zero=%d, one=%d)", ratio, zero, one)
	}
}
