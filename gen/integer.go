package gen

import "github.com/rapidx-dev/rapidx/internal/prng"

// Integer generates integers uniformly in [min, max] (inclusive). Corner
// cases are {min, max, 0 if in range}. Shrinking walks towards 0 (or the
// bound closest to 0 when 0 is out of range) via direct-target, bisection,
// and unit-step candidates, then the two bounds — the same heuristic
// ladder as the teacher's gen/int.go intShrinkInit, translated from a
// stateful queue closure into a pure neighbor-set function.
func Integer(min, max int) Arbitrary[int] {
	if min > max {
		min, max = max, min
	}
	target := integerShrinkTarget(min, max)
	return newCoreArbitrary(core[int]{
		generate: func(r *prng.Prng) int { return r.IntRange(min, max) },
		corners:  func() []int { return integerCornerCases(min, max) },
		size:     Exact(max - min + 1),
		canGen:   func(v int) bool { return v >= min && v <= max },
		neighbors: func(base int) []int {
			return integerNeighbors(base, min, max, target)
		},
		isShrunken: func(cand, origin int) bool {
			return cand != origin && integerDistance(cand, target) < integerDistance(origin, target)
		},
		indexFn: func(p Pick[int], precision int) float64 {
			return quantizeRange(float64(p.Value), float64(min), float64(max), precision)
		},
	})
}

// IntegerRange is an alias of Integer kept for readability at call sites
// that want to emphasize both bounds are explicit.
func IntegerRange(min, max int) Arbitrary[int] { return Integer(min, max) }

func integerCornerCases(min, max int) []int {
	out := []int{min, max}
	if min <= 0 && 0 <= max && min != 0 && max != 0 {
		out = append(out, 0)
	}
	return dedupInts(out)
}

func dedupInts(in []int) []int {
	seen := make(map[int]struct{}, len(in))
	out := in[:0:0]
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func integerShrinkTarget(min, max int) int {
	if min <= 0 && 0 <= max {
		return 0
	}
	if min > 0 {
		return min
	}
	return max
}

func integerDistance(v, target int) int {
	d := v - target
	if d < 0 {
		return -d
	}
	return d
}

// integerNeighbors enumerates the candidate ladder for base towards
// target, clamped to [min,max]: direct target, a short bisection series,
// a unit step, and the two bounds.
func integerNeighbors(base, min, max, target int) []int {
	if base == target {
		return nil
	}
	out := make([]int, 0, 12)
	push := func(v int) {
		if v < min || v > max {
			return
		}
		out = append(out, v)
	}
	push(target)
	series := integerMidpoint(base, target)
	if series != base {
		push(series)
	}
	for i := 0; i < 8 && series != target; i++ {
		series = integerMidpoint(series, target)
		if series != base {
			push(series)
		}
	}
	if step := integerStep(base, target); step != base {
		push(step)
	}
	push(min)
	push(max)
	return dedupInts(out)
}

func integerMidpoint(a, b int) int {
	if a == b {
		return a
	}
	d := b - a
	step := d / 2
	if step == 0 {
		if d > 0 {
			step = 1
		} else {
			step = -1
		}
	}
	return a + step
}

func integerStep(a, b int) int {
	if a == b {
		return a
	}
	if b > a {
		return a + 1
	}
	return a - 1
}

// quantizeRange maps v linearly from [lo,hi] into [0,1), then buckets it
// at the requested precision (number of buckets); precision <= 0 means no
// bucketing (raw fraction).
func quantizeRange(v, lo, hi float64, precision int) float64 {
	if hi <= lo {
		return 0
	}
	frac := (v - lo) / (hi - lo)
	if frac < 0 {
		frac = 0
	}
	if frac >= 1 {
		frac = 0.999999999
	}
	if precision <= 0 {
		return frac
	}
	bucket := float64(int(frac * float64(precision)))
	return bucket / float64(precision)
}
