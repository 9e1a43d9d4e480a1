package gen

import "github.com/rapidx-dev/rapidx/internal/prng"

// noArbitrary is the terminal empty arbitrary: it produces no samples, no
// corner cases, and absorbs Map/Filter/Chain. It is what Shrink returns
// once a value's neighbor set is exhausted, giving the shrink-termination
// law (spec §4.3) a concrete fixed point, and what the explorer binds an
// "impossible" quantifier to (spec §7, Impossible arbitrary).
type noArbitrary[A any] struct{}

// NoArbitrary returns the terminal empty arbitrary for A.
func NoArbitrary[A any]() Arbitrary[A] { return noArbitrary[A]{} }

func (noArbitrary[A]) Sample(*prng.Prng, int) []Pick[A]                 { return nil }
func (noArbitrary[A]) SampleWithBias(*prng.Prng, int) []Pick[A]         { return nil }
func (noArbitrary[A]) SampleUnique(*prng.Prng, int, []A) []Pick[A]      { return nil }
func (noArbitrary[A]) CornerCases() []Pick[A]                           { return nil }
func (noArbitrary[A]) Size() Size                                      { return Exact(0) }
func (noArbitrary[A]) CanGenerate(Pick[A]) bool                        { return false }
func (noArbitrary[A]) Shrink(Pick[A]) Arbitrary[A]                     { return NoArbitrary[A]() }
func (noArbitrary[A]) CalculateIndex(Pick[A], int) float64             { return 0 }
func (noArbitrary[A]) CalculateCoverage([]Pick[A], int) float64        { return 0 }

// IsNoArbitrary reports whether a is the terminal empty arbitrary,
// letting the explorer detect an impossible quantifier binding without
// relying on a type assertion at every call site.
func IsNoArbitrary[A any](a Arbitrary[A]) bool {
	_, ok := a.(noArbitrary[A])
	return ok
}
