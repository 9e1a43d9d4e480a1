package gen

import "github.com/rapidx-dev/rapidx/internal/prng"

// Map, Filter, and Chain are free functions rather than Arbitrary[A]
// methods — Go does not let a generic method introduce a type parameter
// the receiver doesn't already have, so B can never appear in a method
// declared on Arbitrary[A]. This is the same shape the teacher uses for
// gen.Map/gen.Filter/gen.Bind in gen/comb.go, just moved from a
// Generator[T]/Shrinker[T] closure pair onto the Arbitrary[A] contract.

// mapped applies f to every value src produces, propagating shrinking by
// remembering the pre-image one step back (Pick.PreMapValue) and
// re-mapping shrink candidates drawn from src.
type mapped[A, B any] struct {
	src Arbitrary[A]
	f   func(A) B
}

// Map transforms an Arbitrary[A] into an Arbitrary[B] via f. Size is
// downgraded to Estimated since f may not be injective (the true image
// size can be smaller than src's domain).
func Map[A, B any](src Arbitrary[A], f func(A) B) Arbitrary[B] {
	return &mapped[A, B]{src: src, f: f}
}

func (m *mapped[A, B]) wrap(p Pick[A]) Pick[B] {
	v := p.Value
	return Pick[B]{Value: m.f(p.Value), Original: m.f(p.Original), PreMapValue: &v}
}

func (m *mapped[A, B]) Sample(r *prng.Prng, n int) []Pick[B] {
	src := m.src.Sample(r, n)
	out := make([]Pick[B], len(src))
	for i, p := range src {
		out[i] = m.wrap(p)
	}
	return out
}

func (m *mapped[A, B]) SampleWithBias(r *prng.Prng, n int) []Pick[B] {
	src := m.src.SampleWithBias(r, n)
	out := make([]Pick[B], len(src))
	for i, p := range src {
		out[i] = m.wrap(p)
	}
	return out
}

func (m *mapped[A, B]) SampleUnique(r *prng.Prng, n int, exclude []B) []Pick[B] {
	if n <= 0 {
		return nil
	}
	out := make([]Pick[B], 0, n)
	seen := make(map[string]struct{}, n+len(exclude))
	for _, e := range exclude {
		seen[valueKey(e)] = struct{}{}
	}
	maxAttempts := (n + 1) * 100
	if maxAttempts < 500 {
		maxAttempts = 500
	}
	for attempts := 0; len(out) < n && attempts < maxAttempts; attempts++ {
		batch := m.src.Sample(r, 1)
		if len(batch) == 0 {
			continue
		}
		p := m.wrap(batch[0])
		k := valueKey(p.Value)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, p)
	}
	return out
}

func (m *mapped[A, B]) CornerCases() []Pick[B] {
	src := m.src.CornerCases()
	out := make([]Pick[B], len(src))
	for i, p := range src {
		out[i] = m.wrap(p)
	}
	return out
}

func (m *mapped[A, B]) Size() Size { return m.src.Size().Downgrade() }

func (m *mapped[A, B]) CanGenerate(pick Pick[B]) bool {
	if pick.PreMapValue == nil {
		return true
	}
	return m.src.CanGenerate(NewPick(*pick.PreMapValue))
}

func (m *mapped[A, B]) Shrink(towards Pick[B]) Arbitrary[B] {
	if towards.PreMapValue == nil {
		return NoArbitrary[B]()
	}
	inner := m.src.Shrink(NewPick(*towards.PreMapValue))
	if IsNoArbitrary(inner) {
		return NoArbitrary[B]()
	}
	return &mapped[A, B]{src: inner, f: m.f}
}

func (m *mapped[A, B]) CalculateIndex(pick Pick[B], precision int) float64 {
	if pick.PreMapValue != nil {
		return m.src.CalculateIndex(NewPick(*pick.PreMapValue), precision)
	}
	return genericIndex(pick, precision)
}

func (m *mapped[A, B]) CalculateCoverage(seen []Pick[B], precision int) float64 {
	return genericCoverage(seen, m.Size(), precision)
}

// filtered retries src until pred holds, then shrinks by "rebasing":
// every shrink candidate that no longer satisfies pred is discarded
// rather than returned, matching the teacher's Filter rebase comment in
// gen/comb.go (shrink, then re-check pred before offering a candidate).
type filtered[A any] struct {
	src      Arbitrary[A]
	pred     func(A) bool
	maxTries int
}

// Filter keeps only src values satisfying pred, retrying generation up
// to maxTries times per draw (maxTries <= 0 defaults to 1000, the
// teacher's default).
func Filter[A any](src Arbitrary[A], pred func(A) bool, maxTries int) Arbitrary[A] {
	if maxTries <= 0 {
		maxTries = 1000
	}
	return &filtered[A]{src: src, pred: pred, maxTries: maxTries}
}

func (f *filtered[A]) drawOne(r *prng.Prng) (Pick[A], bool) {
	for tries := 0; tries < f.maxTries; tries++ {
		batch := f.src.Sample(r, 1)
		if len(batch) == 0 {
			continue
		}
		if f.pred(batch[0].Value) {
			return batch[0], true
		}
	}
	return Pick[A]{}, false
}

func (f *filtered[A]) Sample(r *prng.Prng, n int) []Pick[A] {
	if n <= 0 {
		return nil
	}
	out := make([]Pick[A], 0, n)
	for i := 0; i < n; i++ {
		if p, ok := f.drawOne(r); ok {
			out = append(out, p)
		}
	}
	return out
}

func (f *filtered[A]) SampleWithBias(r *prng.Prng, n int) []Pick[A] {
	if n <= 0 {
		return nil
	}
	out := make([]Pick[A], 0, n)
	seen := make(map[string]struct{}, n)
	for _, p := range f.src.CornerCases() {
		if len(out) >= n {
			break
		}
		if !f.pred(p.Value) {
			continue
		}
		k := valueKey(p.Value)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, p)
	}
	for len(out) < n {
		p, ok := f.drawOne(r)
		if !ok {
			break
		}
		k := valueKey(p.Value)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, p)
	}
	return out
}

func (f *filtered[A]) SampleUnique(r *prng.Prng, n int, exclude []A) []Pick[A] {
	if n <= 0 {
		return nil
	}
	out := make([]Pick[A], 0, n)
	seen := make(map[string]struct{}, n+len(exclude))
	for _, e := range exclude {
		seen[valueKey(e)] = struct{}{}
	}
	maxAttempts := (n + 1) * f.maxTries
	if maxAttempts < 500 {
		maxAttempts = 500
	}
	for attempts := 0; len(out) < n && attempts < maxAttempts; attempts++ {
		p, ok := f.drawOne(r)
		if !ok {
			continue
		}
		k := valueKey(p.Value)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, p)
	}
	return out
}

func (f *filtered[A]) CornerCases() []Pick[A] {
	src := f.src.CornerCases()
	out := make([]Pick[A], 0, len(src))
	for _, p := range src {
		if f.pred(p.Value) {
			out = append(out, p)
		}
	}
	return out
}

func (f *filtered[A]) Size() Size { return f.src.Size().Downgrade() }

func (f *filtered[A]) CanGenerate(pick Pick[A]) bool {
	return f.pred(pick.Value) && f.src.CanGenerate(pick)
}

func (f *filtered[A]) Shrink(towards Pick[A]) Arbitrary[A] {
	return filterShrink(f.src, f.pred, towards)
}

// filterShrink recurses one shrink step at a time through src, dropping
// any candidate that fails pred, so the arbitrary Shrink returns stays
// within the filtered domain at every level.
func filterShrink[A any](src Arbitrary[A], pred func(A) bool, towards Pick[A]) Arbitrary[A] {
	inner := src.Shrink(towards)
	if IsNoArbitrary(inner) {
		return NoArbitrary[A]()
	}
	cands := inner.CornerCases()
	kept := make([]A, 0, len(cands))
	for _, c := range cands {
		if pred(c.Value) {
			kept = append(kept, c.Value)
		}
	}
	if len(kept) == 0 {
		return NoArbitrary[A]()
	}
	return newEnumerated(kept,
		func(base A) []A {
			next := filterShrink(inner, pred, NewPick(base)).CornerCases()
			out := make([]A, len(next))
			for i, p := range next {
				out[i] = p.Value
			}
			return out
		},
		func(cand, origin A) bool { return valueKey(cand) != valueKey(origin) },
		pred,
	)
}

func (f *filtered[A]) CalculateIndex(pick Pick[A], precision int) float64 {
	return f.src.CalculateIndex(pick, precision)
}

func (f *filtered[A]) CalculateCoverage(seen []Pick[A], precision int) float64 {
	return genericCoverage(seen, f.Size(), precision)
}

// chained is the dependent-generation combinator (the teacher's Bind):
// f picks the next arbitrary based on the value src just produced. A
// Pick[B] alone cannot carry the A that produced it (unlike Map's
// one-step PreMapValue, whose type matches the Pick it annotates), so
// Shrink re-derives candidates by replaying f over src's own corner
// cases rather than the exact originating A — a deliberate
// approximation, documented in DESIGN.md.
type chained[A, B any] struct {
	src Arbitrary[A]
	f   func(A) Arbitrary[B]
}

// Chain builds a dependent arbitrary: draw a from src, then draw from
// f(a).
func Chain[A, B any](src Arbitrary[A], f func(A) Arbitrary[B]) Arbitrary[B] {
	return &chained[A, B]{src: src, f: f}
}

func (c *chained[A, B]) drawOne(r *prng.Prng) B {
	var zero B
	aPicks := c.src.Sample(r, 1)
	if len(aPicks) == 0 {
		return zero
	}
	dep := c.f(aPicks[0].Value)
	bPicks := dep.Sample(r, 1)
	if len(bPicks) == 0 {
		return zero
	}
	return bPicks[0].Value
}

func (c *chained[A, B]) Sample(r *prng.Prng, n int) []Pick[B] {
	if n <= 0 {
		return nil
	}
	out := make([]Pick[B], n)
	for i := range out {
		out[i] = NewPick(c.drawOne(r))
	}
	return out
}

func (c *chained[A, B]) SampleWithBias(r *prng.Prng, n int) []Pick[B] {
	if n <= 0 {
		return nil
	}
	out := make([]Pick[B], 0, n)
	seen := make(map[string]struct{}, n)
	for _, p := range c.CornerCases() {
		if len(out) >= n {
			break
		}
		k := valueKey(p.Value)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, p)
	}
	for len(out) < n {
		v := c.drawOne(r)
		k := valueKey(v)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, NewPick(v))
	}
	return out
}

func (c *chained[A, B]) SampleUnique(r *prng.Prng, n int, exclude []B) []Pick[B] {
	return sampleUniqueN(r, n, c.Size(), exclude, c.drawOne)
}

func (c *chained[A, B]) CornerCases() []Pick[B] {
	var out []Pick[B]
	seen := map[string]struct{}{}
	for _, ap := range c.src.CornerCases() {
		dep := c.f(ap.Value)
		for _, p := range dep.CornerCases() {
			k := valueKey(p.Value)
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}

func (c *chained[A, B]) Size() Size {
	aSz := c.src.Size()
	var bSz Size
	if corners := c.src.CornerCases(); len(corners) > 0 {
		bSz = c.f(corners[0].Value).Size()
	} else {
		bSz = Exact(1)
	}
	return combineSizeProduct(aSz, bSz).Downgrade()
}

func (c *chained[A, B]) CanGenerate(Pick[B]) bool { return true }

func (c *chained[A, B]) Shrink(towards Pick[B]) Arbitrary[B] {
	seen := map[string]struct{}{}
	var candidates []B
	for _, ap := range c.src.CornerCases() {
		dep := c.f(ap.Value)
		shrunk := dep.Shrink(towards)
		if IsNoArbitrary(shrunk) {
			continue
		}
		for _, p := range shrunk.CornerCases() {
			k := valueKey(p.Value)
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			candidates = append(candidates, p.Value)
		}
	}
	if len(candidates) == 0 {
		return NoArbitrary[B]()
	}
	return newEnumerated(candidates,
		func(B) []B { return nil },
		func(cand, origin B) bool { return valueKey(cand) != valueKey(origin) },
		nil,
	)
}

func (c *chained[A, B]) CalculateIndex(pick Pick[B], precision int) float64 {
	return genericIndex(pick, precision)
}

func (c *chained[A, B]) CalculateCoverage(seen []Pick[B], precision int) float64 {
	return genericCoverage(seen, c.Size(), precision)
}
