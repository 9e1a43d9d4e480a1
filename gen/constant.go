package gen

import "github.com/rapidx-dev/rapidx/internal/prng"

// Constant always produces v; it has size 1 and never shrinks, matching
// the teacher's gen.Const in gen/comb.go.
func Constant[A any](v A) Arbitrary[A] {
	return newCoreArbitrary(core[A]{
		generate: func(*prng.Prng) A { return v },
		corners:  func() []A { return []A{v} },
		size:     Exact(1),
		canGen:   func(candidate A) bool { return valueKey(candidate) == valueKey(v) },
	})
}
