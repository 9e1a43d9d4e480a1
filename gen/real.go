package gen

import (
	"math"

	"github.com/rapidx-dev/rapidx/internal/prng"
)

// Real generates quantized floats uniformly in [min, max], rounded to
// precision decimal digits. Corner cases are {min, max, 0 if in range}.
// Shrinking walks towards 0 (or the bound closest to 0) the same way
// Integer does, quantized to the same precision at each step — the
// floating-point analogue of the teacher's gen/float64.go
// float64ShrinkInit target/bisection/step ladder.
func Real(min, max float64, precision int) Arbitrary[float64] {
	if min > max {
		min, max = max, min
	}
	if precision < 0 {
		precision = 0
	}
	step := quantumStep(precision)
	target := realShrinkTarget(min, max)
	return newCoreArbitrary(core[float64]{
		generate: func(r *prng.Prng) float64 {
			v := min + r.Next()*(max-min)
			return quantize(v, precision)
		},
		corners: func() []float64 { return realCornerCases(min, max, precision) },
		size:    realSize(min, max, step),
		canGen: func(v float64) bool {
			return v >= min-step/2 && v <= max+step/2
		},
		neighbors: func(base float64) []float64 {
			return realNeighbors(base, min, max, target, step)
		},
		isShrunken: func(cand, origin float64) bool {
			return cand != origin && math.Abs(cand-target) < math.Abs(origin-target)
		},
		indexFn: func(p Pick[float64], precision int) float64 {
			return quantizeRange(p.Value, min, max, precision)
		},
	})
}

// RealRange is an alias of Real kept for readability at call sites that
// want to emphasize both bounds are explicit.
func RealRange(min, max float64, precision int) Arbitrary[float64] { return Real(min, max, precision) }

func quantumStep(precision int) float64 {
	return math.Pow(10, -float64(precision))
}

func quantize(v float64, precision int) float64 {
	scale := math.Pow(10, float64(precision))
	return math.Round(v*scale) / scale
}

func realSize(min, max, step float64) Size {
	count := int((max-min)/step) + 1
	if count < 1 {
		count = 1
	}
	// Quantized reals are, in general, too fine-grained to claim an
	// exact enumerable domain the way Integer can; report Estimated so
	// downstream combinators treat Real's cardinality as approximate.
	return Estimated(count, count, count)
}

func realCornerCases(min, max float64, precision int) []float64 {
	out := []float64{quantize(min, precision), quantize(max, precision)}
	if min <= 0 && 0 <= max {
		out = append(out, 0)
	}
	return dedupFloats(out)
}

func dedupFloats(in []float64) []float64 {
	seen := make(map[float64]struct{}, len(in))
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

func realShrinkTarget(min, max float64) float64 {
	if min <= 0 && 0 <= max {
		return 0
	}
	if math.Abs(min) < math.Abs(max) {
		return min
	}
	return max
}

func realNeighbors(base, min, max, target, step float64) []float64 {
	if base == target {
		return nil
	}
	out := make([]float64, 0, 12)
	push := func(v float64) {
		if v < min || v > max {
			return
		}
		out = append(out, v)
	}
	push(target)
	series := base + (target-base)/2
	if series != base {
		push(series)
	}
	for i := 0; i < 8 && series != target; i++ {
		series = series + (target-series)/2
		if series != base {
			push(series)
		}
	}
	if base > target {
		push(base - step)
	} else {
		push(base + step)
	}
	push(min)
	push(max)
	return dedupFloats(out)
}
