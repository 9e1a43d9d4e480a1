package gen

import "github.com/rapidx-dev/rapidx/internal/prng"

// Boolean generates true/false uniformly. Corner cases are {false, true};
// shrinking prefers false (the smaller counterexample by convention, same
// heuristic as the teacher's gen/bool.go), then reaches NoArbitrary.
func Boolean() Arbitrary[bool] {
	return newCoreArbitrary(core[bool]{
		generate: func(r *prng.Prng) bool { return r.Bool() },
		corners:  func() []bool { return []bool{false, true} },
		size:     Exact(2),
		neighbors: func(base bool) []bool {
			if base {
				return []bool{false}
			}
			return nil
		},
		isShrunken: func(cand, origin bool) bool { return cand != origin && !cand },
		indexFn: func(p Pick[bool], precision int) float64 {
			if p.Value {
				return 1
			}
			return 0
		},
	})
}
