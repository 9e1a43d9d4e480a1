// Package gen implements the arbitrary algebra: a typed value-generator
// contract with sampling, corner cases, shrinking, and size reporting,
// plus the built-in generators and combinators (map, filter, chain,
// union, tuple, record, array, set, constant).
//
// It is the direct descendant of the teacher package of the same name in
// github.com/lucaskalb/rapidx, generalized from a flat Generator[T]/
// Shrinker[T] closure pair into the richer Arbitrary[A] capability set
// (corner cases, size, index/coverage) the scenario/explorer/shrinker
// packages are built against.
package gen

import (
	"fmt"

	"github.com/rapidx-dev/rapidx/internal/prng"
)

// Pick is an arbitrary's output unit: the visible sample Value, the
// pre-transformation Original (used for shrinking and indexing), and an
// optional PreMapValue tracing one Map step back.
type Pick[A any] struct {
	Value       A
	Original    A
	PreMapValue *A
}

// NewPick builds a Pick whose Value and Original coincide, the case for
// every primitive arbitrary's direct samples.
func NewPick[A any](v A) Pick[A] {
	return Pick[A]{Value: v, Original: v}
}

// SizeKind discriminates the two Size variants.
type SizeKind int

const (
	// SizeExact means Value is the arbitrary's exact domain cardinality.
	SizeExact SizeKind = iota
	// SizeEstimated means Value is a point estimate bracketed by [Lo,Hi].
	SizeEstimated
)

// Size reports an arbitrary's domain cardinality, either exactly or as a
// credible interval. Invariant: Value >= 0; for SizeEstimated,
// Lo <= Value <= Hi.
type Size struct {
	Kind  SizeKind
	Value int
	Lo    int
	Hi    int
}

// Exact builds an exact Size.
func Exact(n int) Size { return Size{Kind: SizeExact, Value: n, Lo: n, Hi: n} }

// Estimated builds an estimated Size with a credible interval.
func Estimated(value, lo, hi int) Size {
	if lo > value {
		lo = value
	}
	if hi < value {
		hi = value
	}
	return Size{Kind: SizeEstimated, Value: value, Lo: lo, Hi: hi}
}

// Downgrade returns an Estimated Size carrying the same point value as s,
// used whenever a combinator (filter, chain) can no longer guarantee an
// exact count.
func (s Size) Downgrade() Size {
	if s.Kind == SizeEstimated {
		return s
	}
	return Estimated(s.Value, s.Value, s.Value)
}

// combineSizeProduct multiplies two component sizes (tuple/record/array
// composition), downgrading to Estimated if either input is.
func combineSizeProduct(a, b Size) Size {
	v := a.Value * b.Value
	if a.Kind == SizeEstimated || b.Kind == SizeEstimated {
		return Estimated(v, a.Lo*b.Lo, a.Hi*b.Hi)
	}
	return Exact(v)
}

// combineSizeSum adds two component sizes (union composition), downgrading
// to Estimated if either input is.
func combineSizeSum(a, b Size) Size {
	v := a.Value + b.Value
	if a.Kind == SizeEstimated || b.Kind == SizeEstimated {
		return Estimated(v, a.Lo+b.Lo, a.Hi+b.Hi)
	}
	return Exact(v)
}

// Arbitrary is the abstract generator contract every built-in and derived
// value producer satisfies. Map/Filter/Chain are free functions (see
// comb.go) rather than interface methods, since Go does not allow a
// generic method to introduce a type parameter distinct from its
// receiver's — the same shape the teacher package already uses for
// gen.Map/gen.Filter/gen.Bind.
type Arbitrary[A any] interface {
	// Sample returns up to n picks, produced by repeated generation.
	Sample(r *prng.Prng, n int) []Pick[A]
	// SampleWithBias reserves the first slots for CornerCases (in
	// declared order), then fills the remainder via Sample.
	SampleWithBias(r *prng.Prng, n int) []Pick[A]
	// SampleUnique returns up to n pairwise-distinct picks, none equal
	// (by formatted value) to any value in exclude.
	SampleUnique(r *prng.Prng, n int, exclude []A) []Pick[A]
	// CornerCases returns the arbitrary's pre-declared canonical values.
	CornerCases() []Pick[A]
	// Size reports the arbitrary's domain cardinality.
	Size() Size
	// CanGenerate reports whether pick could have been produced by this
	// arbitrary's generation process.
	CanGenerate(pick Pick[A]) bool
	// Shrink returns an arbitrary over candidates strictly smaller than
	// towards, by this arbitrary's own shrink order.
	Shrink(towards Pick[A]) Arbitrary[A]
	// CalculateIndex maps pick into [0,1) at the given precision, for
	// statistics/coverage bucketing.
	CalculateIndex(pick Pick[A], precision int) float64
	// CalculateCoverage reports the fraction of the domain touched by
	// seen, at the given precision.
	CalculateCoverage(seen []Pick[A], precision int) float64
}

// valueKey formats a value into a comparable key for dedup purposes. This
// mirrors the teacher's gen/slice.go `sig` helper, generalized to any
// type via %#v.
func valueKey[A any](v A) string { return fmt.Sprintf("%#v", v) }
