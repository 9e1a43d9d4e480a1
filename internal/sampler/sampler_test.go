package sampler_test

import (
	"testing"

	"github.com/rapidx-dev/rapidx/gen"
	"github.com/rapidx-dev/rapidx/internal/prng"
	"github.com/rapidx-dev/rapidx/internal/sampler"
)

func TestRandomSamplerReturnsRequestedCount(t *testing.T) {
	s := sampler.NewRandomSampler(prng.New(1))
	picks, exhausted := s.Sample(gen.Erase(gen.Integer(0, 1000)), 20)
	if len(picks) != 20 {
		t.Fatalf("expected 20 picks, got %d", len(picks))
	}
	if exhausted {
		t.Fatalf("a wide domain should not report exhaustion")
	}
}

func TestDedupSamplerProducesDistinctValues(t *testing.T) {
	inner := sampler.NewRandomSampler(prng.New(2))
	s := sampler.NewDedupSampler(inner)
	picks, _ := s.Sample(gen.Erase(gen.Integer(0, 5)), 6)
	seen := map[any]struct{}{}
	for _, p := range picks {
		if _, dup := seen[p.Value]; dup {
			t.Fatalf("DedupSampler returned a duplicate value: %v", p.Value)
		}
		seen[p.Value] = struct{}{}
	}
}

func TestDedupSamplerReportsExhaustionAgainstASmallDomain(t *testing.T) {
	inner := sampler.NewRandomSampler(prng.New(3))
	s := sampler.NewDedupSampler(inner)
	_, exhausted := s.Sample(gen.Erase(gen.Integer(0, 2)), 10)
	if !exhausted {
		t.Fatalf("expected exhaustion: only 3 distinct values exist in [0,2] but 10 were requested")
	}
}

func TestBiasedSamplerReservesCornerCasesFirst(t *testing.T) {
	inner := sampler.NewRandomSampler(prng.New(4))
	s := sampler.NewBiasedSampler(inner)
	a := gen.Erase(gen.Integer(-5, 5))
	picks, _ := s.Sample(a, 3)
	if len(picks) != 3 {
		t.Fatalf("expected 3 picks, got %d", len(picks))
	}
	corners := map[any]struct{}{-5: {}, 5: {}, 0: {}}
	for _, p := range picks {
		if _, ok := corners[p.Value]; !ok {
			t.Fatalf("expected an early corner-case slot, got non-corner value %v", p.Value)
		}
	}
}

func TestCachedSamplerReturnsSameSliceOnRepeatCalls(t *testing.T) {
	inner := sampler.NewRandomSampler(prng.New(5))
	s := sampler.NewCachedSampler(inner)
	a := gen.Erase(gen.Integer(0, 1000))
	first, _ := s.Sample(a, 10)
	second, _ := s.Sample(a, 10)
	if len(first) != len(second) {
		t.Fatalf("cached sample length changed between calls: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Value != second[i].Value {
			t.Fatalf("cached sample differed at index %d: %v vs %v", i, first[i].Value, second[i].Value)
		}
	}
}

func TestBuildComposesEveryRequestedLayer(t *testing.T) {
	s := sampler.Build(prng.New(6), true, true, true)
	picks, _ := s.Sample(gen.Erase(gen.Integer(0, 1000)), 15)
	if len(picks) != 15 {
		t.Fatalf("expected 15 picks from the fully composed pipeline, got %d", len(picks))
	}
}
