package confidence_test

import (
	"math"
	"testing"

	"github.com/rapidx-dev/rapidx/confidence"
)

func TestRegularizedIncompleteBetaBoundaryValues(t *testing.T) {
	if got := confidence.RegularizedIncompleteBeta(0, 2, 3); got != 0 {
		t.Fatalf("I_0(2,3) = %v, want 0", got)
	}
	if got := confidence.RegularizedIncompleteBeta(1, 2, 3); got != 1 {
		t.Fatalf("I_1(2,3) = %v, want 1", got)
	}
}

func TestRegularizedIncompleteBetaSymmetricMidpoint(t *testing.T) {
	got := confidence.RegularizedIncompleteBeta(0.5, 5, 5)
	if math.Abs(got-0.5) > 1e-6 {
		t.Fatalf("I_0.5(5,5) = %v, want ~0.5 by symmetry", got)
	}
}

func TestConfidenceIncreasesWithMoreSuccesses(t *testing.T) {
	low := confidence.Confidence(10, 0, 0.9)
	high := confidence.Confidence(1000, 0, 0.9)
	if !(high > low) {
		t.Fatalf("confidence should increase with more observations: low=%v high=%v", low, high)
	}
}

func TestWilsonIntervalContainsObservedRate(t *testing.T) {
	lo, hi := confidence.WilsonInterval(950, 1000, 1.96)
	p := 0.95
	if lo > p || hi < p {
		t.Fatalf("Wilson interval [%v,%v] does not bracket observed rate %v", lo, hi, p)
	}
}

func TestEvaluateStopsOnceConfident(t *testing.T) {
	d := confidence.Evaluate(10000, 1, 0.99, 0.999)
	if !d.ShouldStop {
		t.Fatalf("expected ShouldStop with overwhelming evidence, got %+v", d)
	}
}
