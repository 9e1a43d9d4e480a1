// Package sampler implements the layered sampling pipeline sitting
// between the arbitrary algebra and the explorer: Random at the base,
// then Dedup/Biased/Cached layers composed on top per a strategy's
// configuration. Grounded on the teacher's habit of composing
// generation behavior as closures over closures (gen.Weighted wrapping
// gen.Filter wrapping a base Generator in lucaskalb-rapidx/gen/comb.go),
// generalized here into named, independently testable decorator types.
package sampler

import (
	"fmt"

	"github.com/rapidx-dev/rapidx/gen"
	"github.com/rapidx-dev/rapidx/internal/prng"
)

// Sampler is the common interface every pipeline layer satisfies.
// Exhaustion (the domain ran dry before n picks were produced) is
// surfaced via the second return value rather than an error, since
// running out of a finite domain is an expected outcome, not a fault.
type Sampler interface {
	Sample(a gen.Arbitrary[any], n int) (picks []gen.Pick[any], exhausted bool)
}

// RandomSampler is the base layer: plain repeated generation.
type RandomSampler struct {
	R *prng.Prng
}

func NewRandomSampler(r *prng.Prng) *RandomSampler { return &RandomSampler{R: r} }

func (s *RandomSampler) Sample(a gen.Arbitrary[any], n int) ([]gen.Pick[any], bool) {
	if n <= 0 {
		return nil, false
	}
	picks := a.Sample(s.R, n)
	return picks, len(picks) < n
}

// DedupSampler removes repeated values (by formatted structural
// equality) from its inner layer's output, requesting more from the
// inner layer when duplicates shrink the batch below n.
type DedupSampler struct {
	Inner Sampler
}

func NewDedupSampler(inner Sampler) *DedupSampler { return &DedupSampler{Inner: inner} }

func (s *DedupSampler) Sample(a gen.Arbitrary[any], n int) ([]gen.Pick[any], bool) {
	if n <= 0 {
		return nil, false
	}
	seen := map[string]struct{}{}
	out := make([]gen.Pick[any], 0, n)
	exhausted := false
	// Overdraw a bounded number of rounds rather than looping forever
	// against a domain too small to fill n distinct values.
	for round := 0; round < 8 && len(out) < n && !exhausted; round++ {
		want := n - len(out)
		batch, ex := s.Inner.Sample(a, want+round*want)
		exhausted = ex
		for _, p := range batch {
			if len(out) >= n {
				break
			}
			k := fmt.Sprintf("%#v", p.Value)
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, p)
		}
		if len(batch) == 0 {
			break
		}
	}
	if len(out) < n {
		exhausted = true
	}
	return out, exhausted
}

// BiasedSampler reserves the leading slots of its output for the
// arbitrary's declared corner cases, filling the remainder from its
// inner layer — the sampling-level analogue of Arbitrary.SampleWithBias.
type BiasedSampler struct {
	Inner Sampler
}

func NewBiasedSampler(inner Sampler) *BiasedSampler { return &BiasedSampler{Inner: inner} }

func (s *BiasedSampler) Sample(a gen.Arbitrary[any], n int) ([]gen.Pick[any], bool) {
	if n <= 0 {
		return nil, false
	}
	seen := map[string]struct{}{}
	out := make([]gen.Pick[any], 0, n)
	for _, c := range a.CornerCases() {
		if len(out) >= n {
			break
		}
		k := fmt.Sprintf("%#v", c.Value)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, c)
	}
	exhausted := false
	if len(out) < n {
		rest, ex := s.Inner.Sample(a, n-len(out))
		exhausted = ex
		for _, p := range rest {
			if len(out) >= n {
				break
			}
			k := fmt.Sprintf("%#v", p.Value)
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, p)
		}
	}
	if len(out) < n {
		exhausted = true
	}
	return out, exhausted
}

// CachedSampler memoizes Sample(a, n) results keyed by the arbitrary's
// identity (its pointer address — every arbitrary built in gen is backed
// by a pointer type) plus n, so repeated explorer passes over the same
// quantifier at the same batch size (e.g. during shrinking, which
// re-samples shrunk arbitraries derived from the same lineage) avoid
// re-running generation.
type CachedSampler struct {
	Inner Sampler
	cache map[string]cacheEntry
}

type cacheEntry struct {
	picks     []gen.Pick[any]
	exhausted bool
}

func NewCachedSampler(inner Sampler) *CachedSampler {
	return &CachedSampler{Inner: inner, cache: map[string]cacheEntry{}}
}

func (s *CachedSampler) Sample(a gen.Arbitrary[any], n int) ([]gen.Pick[any], bool) {
	key := fmt.Sprintf("%p:%d", a, n)
	if e, ok := s.cache[key]; ok {
		return e.picks, e.exhausted
	}
	picks, exhausted := s.Inner.Sample(a, n)
	s.cache[key] = cacheEntry{picks: picks, exhausted: exhausted}
	return picks, exhausted
}

// Build composes the pipeline in the fixed Random -> Dedup -> Biased ->
// Cached layering order, enabling each optional layer per its flag.
func Build(r *prng.Prng, dedup, bias, cache bool) Sampler {
	var s Sampler = NewRandomSampler(r)
	if dedup {
		s = NewDedupSampler(s)
	}
	if bias {
		s = NewBiasedSampler(s)
	}
	if cache {
		s = NewCachedSampler(s)
	}
	return s
}
