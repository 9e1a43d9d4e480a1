package gen

import "github.com/rapidx-dev/rapidx/internal/prng"

// erased adapts a typed Arbitrary[A] into an Arbitrary[any], boxing every
// value so quantifiers over different concrete types can live side by
// side in one scenario — scenario.Builder.ForAll/Exists bind against
// Arbitrary[any], never a type parameter of their own, since a Builder's
// quantifier list is heterogeneous and decided at scenario-construction
// time, not compile time.
type erased[A any] struct {
	inner Arbitrary[A]
}

// Erase boxes a typed arbitrary as Arbitrary[any].
func Erase[A any](a Arbitrary[A]) Arbitrary[any] {
	return &erased[A]{inner: a}
}

func boxPick[A any](p Pick[A]) Pick[any] {
	var pre *any
	if p.PreMapValue != nil {
		v := any(*p.PreMapValue)
		pre = &v
	}
	return Pick[any]{Value: p.Value, Original: p.Original, PreMapValue: pre}
}

func boxPicks[A any](ps []Pick[A]) []Pick[any] {
	out := make([]Pick[any], len(ps))
	for i, p := range ps {
		out[i] = boxPick(p)
	}
	return out
}

func unboxValue[A any](v any) A {
	if v == nil {
		var zero A
		return zero
	}
	return v.(A)
}

func unboxPick[A any](p Pick[any]) Pick[A] {
	return Pick[A]{Value: unboxValue[A](p.Value), Original: unboxValue[A](p.Original)}
}

func (e *erased[A]) Sample(r *prng.Prng, n int) []Pick[any] {
	return boxPicks(e.inner.Sample(r, n))
}

func (e *erased[A]) SampleWithBias(r *prng.Prng, n int) []Pick[any] {
	return boxPicks(e.inner.SampleWithBias(r, n))
}

func (e *erased[A]) SampleUnique(r *prng.Prng, n int, exclude []any) []Pick[any] {
	ex := make([]A, len(exclude))
	for i, v := range exclude {
		ex[i] = unboxValue[A](v)
	}
	return boxPicks(e.inner.SampleUnique(r, n, ex))
}

func (e *erased[A]) CornerCases() []Pick[any] { return boxPicks(e.inner.CornerCases()) }

func (e *erased[A]) Size() Size { return e.inner.Size() }

func (e *erased[A]) CanGenerate(pick Pick[any]) bool {
	return e.inner.CanGenerate(unboxPick[A](pick))
}

func (e *erased[A]) Shrink(towards Pick[any]) Arbitrary[any] {
	inner := e.inner.Shrink(unboxPick[A](towards))
	if IsNoArbitrary(inner) {
		return NoArbitrary[any]()
	}
	return &erased[A]{inner: inner}
}

func (e *erased[A]) CalculateIndex(pick Pick[any], precision int) float64 {
	return e.inner.CalculateIndex(unboxPick[A](pick), precision)
}

func (e *erased[A]) CalculateCoverage(seen []Pick[any], precision int) float64 {
	typed := make([]Pick[A], len(seen))
	for i, p := range seen {
		typed[i] = unboxPick[A](p)
	}
	return e.inner.CalculateCoverage(typed, precision)
}
