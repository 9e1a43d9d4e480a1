package check_test

import (
	"testing"

	"github.com/rapidx-dev/rapidx/check"
	"github.com/rapidx-dev/rapidx/config"
	"github.com/rapidx-dev/rapidx/gen"
	"github.com/rapidx-dev/rapidx/quick"
	"github.com/rapidx-dev/rapidx/scenario"
)

func TestCheckPassesForAHoldingProperty(t *testing.T) {
	sc := scenario.New().
		ForAll("x", gen.Erase(gen.Integer(0, 100))).
		Then(func(b *scenario.BoundTestCase) (bool, error) {
			return b.Value("x").(int) >= 0, nil
		})

	strat := config.NewStrategy().WithSampleSize(50)
	res, err := check.Check(sc, strat)
	if err != nil {
		t.Fatalf("Check returned an error: %v", err)
	}
	if !res.Passed {
		t.Fatalf("expected Passed, got failure: %v", res.Err)
	}
	quick.Equal(t, res.Discarded, 0)
}

func TestCheckShrinksAFailingProperty(t *testing.T) {
	sc := scenario.New().
		ForAll("x", gen.Erase(gen.Integer(0, 1000))).
		Then(func(b *scenario.BoundTestCase) (bool, error) {
			return b.Value("x").(int) < 10, nil
		})

	strat := config.NewStrategy().WithSampleSize(300)
	res, err := check.Check(sc, strat)
	if err != nil {
		t.Fatalf("Check returned an error: %v", err)
	}
	if res.Passed {
		t.Fatalf("expected a counterexample")
	}
	if res.Shrunk == nil {
		t.Fatalf("expected shrinking to have run")
	}
	minimized := res.Shrunk.Minimized["x"].(int)
	if minimized < 10 {
		t.Fatalf("minimized value %d no longer reproduces the failure", minimized)
	}
	original := res.Shrunk.Original["x"].(int)
	quick.Equal(t, original, res.Counterexample["x"])
}

func TestCheckWithConfidenceHonorsCustomThreshold(t *testing.T) {
	sc := scenario.New().
		ForAll("x", gen.Erase(gen.Integer(0, 10))).
		Then(func(b *scenario.BoundTestCase) (bool, error) {
			return true, nil
		})

	res, err := check.CheckWithConfidence(sc, 0.5, config.NewStrategy().WithSampleSize(20))
	if err != nil {
		t.Fatalf("CheckWithConfidence returned an error: %v", err)
	}
	if !res.Passed {
		t.Fatalf("expected Passed")
	}
	if res.Statistics.Confidence.Confidence <= 0 {
		t.Fatalf("expected a positive confidence value, got %v", res.Statistics.Confidence.Confidence)
	}
}

func TestResultAsTestingTFailsOnCounterexample(t *testing.T) {
	sc := scenario.New().
		ForAll("x", gen.Erase(gen.Integer(-5, 5))).
		Then(func(b *scenario.BoundTestCase) (bool, error) {
			return b.Value("x").(int) >= 0, nil
		})
	res, err := check.Check(sc, config.NewStrategy().WithSampleSize(50))
	if err != nil {
		t.Fatalf("Check returned an error: %v", err)
	}
	ft := &fakeT{}
	res.AsTestingT(ft)
	if res.Passed == ft.failed {
		t.Fatalf("fakeT.failed (%v) should track the inverse of res.Passed (%v)", ft.failed, res.Passed)
	}
}

type fakeT struct {
	failed  bool
	message string
}

func (f *fakeT) Helper() {}

func (f *fakeT) Fatalf(format string, args ...any) {
	f.failed = true
}
