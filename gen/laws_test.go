package gen_test

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/rapidx-dev/rapidx/gen"
	"github.com/rapidx-dev/rapidx/internal/prng"
)

// These tests exercise the arbitrary algebra's closure laws using a
// second, independent property-based engine (pgregory.net/rapid) as the
// meta-test driver — the same "test the generator with a generator"
// structure dshills-dungo's synthesis_test.go uses for its own
// synthesis-parameter sweeps.

func smallIntArbitraries() []gen.Arbitrary[int] {
	return []gen.Arbitrary[int]{
		gen.Integer(0, 5),
		gen.Integer(-10, 10),
		gen.Integer(100, 100),
	}
}

func TestSampleValidity(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := uint32(rapid.Uint64().Draw(rt, "seed"))
		n := rapid.IntRange(1, 30).Draw(rt, "n")
		r := prng.New(seed)
		for _, a := range smallIntArbitraries() {
			for _, p := range a.Sample(r, n) {
				if !a.CanGenerate(p) {
					rt.Fatalf("sample %v not accepted by CanGenerate", p.Value)
				}
			}
		}
	})
}

func TestSizeBound(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := uint32(rapid.Uint64().Draw(rt, "seed"))
		n := rapid.IntRange(1, 50).Draw(rt, "n")
		r := prng.New(seed)
		for _, a := range smallIntArbitraries() {
			picks := a.Sample(r, n)
			bound := n
			if sz := a.Size(); sz.Kind == gen.SizeExact && sz.Value < bound {
				bound = sz.Value
			}
			if len(picks) > bound {
				rt.Fatalf("sample returned %d picks, bound is %d", len(picks), bound)
			}
		}
	})
}

func TestSampleUniqueIsPairwiseDistinct(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := uint32(rapid.Uint64().Draw(rt, "seed"))
		n := rapid.IntRange(1, 8).Draw(rt, "n")
		r := prng.New(seed)
		a := gen.Integer(0, 100)
		picks := a.SampleUnique(r, n, nil)
		seen := map[int]struct{}{}
		for _, p := range picks {
			if _, ok := seen[p.Value]; ok {
				rt.Fatalf("duplicate unique pick %d", p.Value)
			}
			seen[p.Value] = struct{}{}
		}
	})
}

func TestCornerCasesAreValid(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		lo := rapid.IntRange(-50, 0).Draw(rt, "lo")
		hi := rapid.IntRange(1, 50).Draw(rt, "hi")
		a := gen.Integer(lo, hi)
		for _, p := range a.CornerCases() {
			if !a.CanGenerate(p) {
				rt.Fatalf("corner case %d rejected by CanGenerate", p.Value)
			}
		}
	})
}

func TestShrinkTerminates(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		lo := rapid.IntRange(-100, 0).Draw(rt, "lo")
		hi := rapid.IntRange(1, 100).Draw(rt, "hi")
		seed := uint32(rapid.Uint64().Draw(rt, "seed"))
		a := gen.Integer(lo, hi)
		r := prng.New(seed)
		start := a.Sample(r, 1)
		if len(start) == 0 {
			return
		}
		cur := start[0]
		steps := 0
		for steps < 10_000 {
			next := a.Shrink(cur)
			if gen.IsNoArbitrary(next) {
				return
			}
			cands := next.CornerCases()
			if len(cands) == 0 {
				return
			}
			cur = cands[0]
			steps++
		}
		rt.Fatalf("shrink did not terminate within %d steps", steps)
	})
}

func TestMapFunctoriality(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := uint32(rapid.Uint64().Draw(rt, "seed"))
		n := rapid.IntRange(1, 20).Draw(rt, "n")
		r := prng.New(seed)
		base := gen.Integer(0, 1000)
		doubled := gen.Map(base, func(v int) int { return v * 2 })
		for _, p := range doubled.Sample(r, n) {
			if p.Value%2 != 0 {
				rt.Fatalf("mapped value %d is not even", p.Value)
			}
		}
	})
}

func TestFilterSoundness(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := uint32(rapid.Uint64().Draw(rt, "seed"))
		n := rapid.IntRange(1, 20).Draw(rt, "n")
		r := prng.New(seed)
		evens := gen.Filter(gen.Integer(0, 1000), func(v int) bool { return v%2 == 0 }, 2000)
		for _, p := range evens.Sample(r, n) {
			if p.Value%2 != 0 {
				rt.Fatalf("filtered value %d violates predicate", p.Value)
			}
		}
	})
}

func TestNoArbitraryAbsorption(t *testing.T) {
	none := gen.NoArbitrary[int]()
	mapped := gen.Map(none, func(v int) int { return v + 1 })
	if mapped.Size().Value != 0 {
		t.Fatalf("Map(NoArbitrary) should report size 0, got %d", mapped.Size().Value)
	}
	if len(mapped.Sample(prng.New(1), 10)) != 0 {
		t.Fatalf("Map(NoArbitrary) should never sample")
	}
	filtered := gen.Filter(none, func(v int) bool { return true }, 10)
	if len(filtered.Sample(prng.New(1), 10)) != 0 {
		t.Fatalf("Filter(NoArbitrary) should never sample")
	}
}

func TestArraySizeBound(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := uint32(rapid.Uint64().Draw(rt, "seed"))
		minLen := rapid.IntRange(0, 3).Draw(rt, "minLen")
		maxLen := minLen + rapid.IntRange(0, 4).Draw(rt, "span")
		n := rapid.IntRange(1, 20).Draw(rt, "n")
		r := prng.New(seed)
		a := gen.Array(gen.Boolean(), minLen, maxLen)
		for _, p := range a.Sample(r, n) {
			if len(p.Value) < minLen || len(p.Value) > maxLen {
				rt.Fatalf("array length %d out of [%d,%d]", len(p.Value), minLen, maxLen)
			}
		}
	})
}

func TestSetIsSubsetOfDomain(t *testing.T) {
	domain := []string{"a", "b", "c", "d", "e"}
	rapid.Check(t, func(rt *rapid.T) {
		seed := uint32(rapid.Uint64().Draw(rt, "seed"))
		n := rapid.IntRange(1, 20).Draw(rt, "n")
		r := prng.New(seed)
		a := gen.Set(domain, 0, len(domain))
		for _, p := range a.Sample(r, n) {
			seenIdx := map[string]int{}
			for _, v := range p.Value {
				seenIdx[v]++
				found := false
				for _, d := range domain {
					if d == v {
						found = true
						break
					}
				}
				if !found {
					rt.Fatalf("set element %q not in domain", v)
				}
			}
			for v, count := range seenIdx {
				if count > 1 {
					rt.Fatalf("set element %q repeated", v)
				}
			}
		}
	})
}
