package gen

import "github.com/rapidx-dev/rapidx/internal/prng"

// core is the shared implementation backing every primitive and
// structural arbitrary in this package. Concrete constructors (Integer,
// Real, Boolean, Array, Set, Tuple, Record, Union, ...) build one of
// these and return it as an Arbitrary[A]; only the generation, corner
// case, size, and shrink-neighbor functions vary per type.
//
// This plays the role the teacher's GenFunc closure plays in
// github.com/lucaskalb/rapidx/gen/types.go, generalized with corner
// cases, size, and index/coverage reporting.
type core[A any] struct {
	generate   func(r *prng.Prng) A
	corners    func() []A
	size       Size
	canGen     func(A) bool
	neighbors  func(base A) []A
	isShrunken func(cand, origin A) bool
	indexFn    func(pick Pick[A], precision int) float64
}

// newCoreArbitrary wraps a core definition as an Arbitrary[A].
func newCoreArbitrary[A any](c core[A]) Arbitrary[A] {
	if c.canGen == nil {
		c.canGen = func(A) bool { return true }
	}
	if c.neighbors == nil {
		c.neighbors = func(A) []A { return nil }
	}
	if c.isShrunken == nil {
		c.isShrunken = func(cand, origin A) bool { return valueKey(cand) != valueKey(origin) }
	}
	return &c
}

func (c *core[A]) Sample(r *prng.Prng, n int) []Pick[A] {
	return sampleN(r, n, c.size, c.generate)
}

func (c *core[A]) SampleWithBias(r *prng.Prng, n int) []Pick[A] {
	return sampleWithBiasN(r, n, c.size, c.corners(), c.generate)
}

func (c *core[A]) SampleUnique(r *prng.Prng, n int, exclude []A) []Pick[A] {
	return sampleUniqueN(r, n, c.size, exclude, c.generate)
}

func (c *core[A]) CornerCases() []Pick[A] {
	vals := c.corners()
	out := make([]Pick[A], len(vals))
	for i, v := range vals {
		out[i] = NewPick(v)
	}
	return out
}

func (c *core[A]) Size() Size { return c.size }

func (c *core[A]) CanGenerate(pick Pick[A]) bool { return c.canGen(pick.Value) }

func (c *core[A]) Shrink(towards Pick[A]) Arbitrary[A] {
	cands := c.neighbors(towards.Value)
	filtered := cands[:0:0]
	for _, cand := range cands {
		if c.isShrunken(cand, towards.Value) {
			filtered = append(filtered, cand)
		}
	}
	if len(filtered) == 0 {
		return NoArbitrary[A]()
	}
	return newEnumerated(filtered, c.neighbors, c.isShrunken, c.canGen)
}

func (c *core[A]) CalculateIndex(pick Pick[A], precision int) float64 {
	if c.indexFn != nil {
		return c.indexFn(pick, precision)
	}
	return genericIndex(pick, precision)
}

func (c *core[A]) CalculateCoverage(seen []Pick[A], precision int) float64 {
	return genericCoverage(seen, c.size, precision)
}

// genericIndex buckets a pick into [0,1) using its formatted key's hash,
// for arbitraries that do not define a meaningful ordering (strings,
// composite records, domain types). Integer/Real override this with a
// position-in-range calculation (see integer.go, real.go).
func genericIndex[A any](pick Pick[A], precision int) float64 {
	if precision <= 0 {
		precision = 1
	}
	h := fnv32(valueKey(pick.Value))
	buckets := uint32(precision)
	if buckets == 0 {
		buckets = 1
	}
	return float64(h%buckets) / float64(buckets)
}

// genericCoverage reports the fraction of distinct values seen relative
// to the arbitrary's domain size, capped at 1.
func genericCoverage[A any](seen []Pick[A], sz Size, precision int) float64 {
	if sz.Value <= 0 {
		return 0
	}
	distinct := make(map[string]struct{}, len(seen))
	for _, p := range seen {
		distinct[valueKey(p.Value)] = struct{}{}
	}
	cov := float64(len(distinct)) / float64(sz.Value)
	if cov > 1 {
		cov = 1
	}
	return cov
}

func fnv32(s string) uint32 {
	const (
		offset32 = 2166136261
		prime32  = 16777619
	)
	h := uint32(offset32)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= prime32
	}
	return h
}

// sampleN draws up to n picks by repeated generation, deduplicating
// internally and capping the returned count at min(n, size.Value) when
// size is exact — this is what keeps the "size bound" law
// (|sample(n)| <= min(n, size.value)) true for small finite domains
// (Boolean, Constant, small Integer ranges) while behaving as plain
// repeated generation for large/unbounded domains, matching the
// "Random" base layer described for the sampler pipeline.
func sampleN[A any](r *prng.Prng, n int, sz Size, generate func(*prng.Prng) A) []Pick[A] {
	if n <= 0 {
		return nil
	}
	target := n
	if sz.Kind == SizeExact && sz.Value < target {
		target = sz.Value
	}
	if target <= 0 {
		return nil
	}
	out := make([]Pick[A], 0, target)
	seen := make(map[string]struct{}, target)
	maxAttempts := target * 50
	if maxAttempts < 200 {
		maxAttempts = 200
	}
	dedupe := sz.Kind == SizeExact && sz.Value <= target*4
	for attempts := 0; len(out) < target && attempts < maxAttempts; attempts++ {
		v := generate(r)
		if dedupe {
			k := valueKey(v)
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
		}
		out = append(out, NewPick(v))
	}
	return out
}

// sampleWithBiasN reserves the first min(n, |corners|) slots for the
// declared corner cases (deduplicated against each other), then fills
// the remainder via sampleN.
func sampleWithBiasN[A any](r *prng.Prng, n int, sz Size, corners []A, generate func(*prng.Prng) A) []Pick[A] {
	if n <= 0 {
		return nil
	}
	out := make([]Pick[A], 0, n)
	seen := make(map[string]struct{}, n)
	for _, c := range corners {
		if len(out) >= n {
			break
		}
		k := valueKey(c)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, NewPick(c))
	}
	remaining := n - len(out)
	if remaining <= 0 {
		return out
	}
	rest := sampleN(r, remaining, sz, generate)
	for _, p := range rest {
		k := valueKey(p.Value)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, p)
	}
	return out
}

// sampleUniqueN draws up to n picks, pairwise distinct and distinct from
// exclude.
func sampleUniqueN[A any](r *prng.Prng, n int, sz Size, exclude []A, generate func(*prng.Prng) A) []Pick[A] {
	if n <= 0 {
		return nil
	}
	target := n
	if sz.Kind == SizeExact && sz.Value < target {
		target = sz.Value
	}
	out := make([]Pick[A], 0, target)
	seen := make(map[string]struct{}, target+len(exclude))
	for _, e := range exclude {
		seen[valueKey(e)] = struct{}{}
	}
	maxAttempts := (target + 1) * 100
	if maxAttempts < 500 {
		maxAttempts = 500
	}
	for attempts := 0; len(out) < target && attempts < maxAttempts; attempts++ {
		v := generate(r)
		k := valueKey(v)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, NewPick(v))
	}
	return out
}
