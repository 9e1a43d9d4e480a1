package gen

import "github.com/rapidx-dev/rapidx/internal/prng"

// enumerated is a small, explicitly-listed arbitrary: the domain is
// exactly the given values. It is what Shrink(towards) returns — the
// "shrink space" around a pick is a finite, concrete candidate list, and
// sampling it uniformly is how the explorer/shrinker draw the next
// shrink candidates.
type enumerated[A any] struct {
	values     []A
	neighbors  func(base A) []A
	isShrunken func(cand, origin A) bool
	canGen     func(A) bool
}

func newEnumerated[A any](values []A, neighbors func(A) []A, isShrunken func(A, A) bool, canGen func(A) bool) Arbitrary[A] {
	return &enumerated[A]{values: values, neighbors: neighbors, isShrunken: isShrunken, canGen: canGen}
}

func (e *enumerated[A]) pick(r *prng.Prng) A {
	return e.values[r.IntN(len(e.values))]
}

func (e *enumerated[A]) Sample(r *prng.Prng, n int) []Pick[A] {
	return sampleN(r, n, e.Size(), e.pick)
}

func (e *enumerated[A]) SampleWithBias(r *prng.Prng, n int) []Pick[A] {
	return sampleWithBiasN(r, n, e.Size(), e.values, e.pick)
}

func (e *enumerated[A]) SampleUnique(r *prng.Prng, n int, exclude []A) []Pick[A] {
	return sampleUniqueN(r, n, e.Size(), exclude, e.pick)
}

func (e *enumerated[A]) CornerCases() []Pick[A] {
	out := make([]Pick[A], len(e.values))
	for i, v := range e.values {
		out[i] = NewPick(v)
	}
	return out
}

func (e *enumerated[A]) Size() Size { return Exact(len(e.values)) }

func (e *enumerated[A]) CanGenerate(pick Pick[A]) bool {
	if e.canGen != nil && !e.canGen(pick.Value) {
		return false
	}
	key := valueKey(pick.Value)
	for _, v := range e.values {
		if valueKey(v) == key {
			return true
		}
	}
	return false
}

func (e *enumerated[A]) Shrink(towards Pick[A]) Arbitrary[A] {
	if e.neighbors == nil {
		return NoArbitrary[A]()
	}
	cands := e.neighbors(towards.Value)
	filtered := cands[:0:0]
	for _, cand := range cands {
		if e.isShrunken == nil || e.isShrunken(cand, towards.Value) {
			filtered = append(filtered, cand)
		}
	}
	if len(filtered) == 0 {
		return NoArbitrary[A]()
	}
	return newEnumerated(filtered, e.neighbors, e.isShrunken, e.canGen)
}

func (e *enumerated[A]) CalculateIndex(pick Pick[A], precision int) float64 {
	return genericIndex(pick, precision)
}

func (e *enumerated[A]) CalculateCoverage(seen []Pick[A], precision int) float64 {
	return genericCoverage(seen, e.Size(), precision)
}
