package gen

import "github.com/rapidx-dev/rapidx/internal/prng"

// union picks one child arbitrary per draw, weighted by weight(value) —
// generalizing the teacher's gen.OneOf/gen.Weighted (gen/comb.go), which
// chooses an index up front and threads it through a stateful shrink
// closure. Here Shrink instead asks each child whether it could have
// produced towards and delegates to the (first) child that claims it,
// which is what "delegate Shrink to the producing child" means without
// per-pick mutable bookkeeping.
type union[A any] struct {
	children []Arbitrary[A]
	weight   func(A) float64
}

// Union picks uniformly among the given arbitraries.
func Union[A any](children ...Arbitrary[A]) Arbitrary[A] {
	if len(children) == 0 {
		panic("gen.Union: at least one child arbitrary is required")
	}
	return &union[A]{children: children, weight: func(A) float64 { return 1 }}
}

// WeightedUnion picks among children proportionally to weight(value),
// evaluated on a representative corner case of each child.
func WeightedUnion[A any](weight func(A) float64, children ...Arbitrary[A]) Arbitrary[A] {
	if len(children) == 0 {
		panic("gen.WeightedUnion: at least one child arbitrary is required")
	}
	return &union[A]{children: children, weight: weight}
}

func (u *union[A]) childWeight(child Arbitrary[A]) float64 {
	corners := child.CornerCases()
	if len(corners) == 0 {
		return 1
	}
	w := u.weight(corners[0].Value)
	if w <= 0 {
		return 0.0001
	}
	return w
}

func (u *union[A]) pickChild(r *prng.Prng) Arbitrary[A] {
	if len(u.children) == 1 {
		return u.children[0]
	}
	total := 0.0
	weights := make([]float64, len(u.children))
	for i, c := range u.children {
		weights[i] = u.childWeight(c)
		total += weights[i]
	}
	target := r.Next() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if target <= acc {
			return u.children[i]
		}
	}
	return u.children[len(u.children)-1]
}

func (u *union[A]) Sample(r *prng.Prng, n int) []Pick[A] {
	if n <= 0 {
		return nil
	}
	out := make([]Pick[A], 0, n)
	for i := 0; i < n; i++ {
		child := u.pickChild(r)
		p := child.Sample(r, 1)
		if len(p) == 0 {
			continue
		}
		out = append(out, p[0])
	}
	return out
}

func (u *union[A]) SampleWithBias(r *prng.Prng, n int) []Pick[A] {
	if n <= 0 {
		return nil
	}
	out := make([]Pick[A], 0, n)
	seen := make(map[string]struct{}, n)
	for _, p := range u.CornerCases() {
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
		batch := u.Sample(r, 1)
		if len(batch) == 0 {
			break
		}
		k := valueKey(batch[0].Value)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, batch[0])
	}
	return out
}

func (u *union[A]) SampleUnique(r *prng.Prng, n int, exclude []A) []Pick[A] {
	return sampleUniqueN(r, n, u.Size(), exclude, func(r *prng.Prng) A {
		child := u.pickChild(r)
		p := child.Sample(r, 1)
		if len(p) == 0 {
			var zero A
			return zero
		}
		return p[0].Value
	})
}

func (u *union[A]) CornerCases() []Pick[A] {
	var out []Pick[A]
	seen := map[string]struct{}{}
	for _, c := range u.children {
		for _, p := range c.CornerCases() {
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

func (u *union[A]) Size() Size {
	sz := u.children[0].Size()
	for _, c := range u.children[1:] {
		sz = combineSizeSum(sz, c.Size())
	}
	return sz
}

func (u *union[A]) CanGenerate(pick Pick[A]) bool {
	for _, c := range u.children {
		if c.CanGenerate(pick) {
			return true
		}
	}
	return false
}

func (u *union[A]) Shrink(towards Pick[A]) Arbitrary[A] {
	for _, c := range u.children {
		if c.CanGenerate(towards) {
			return c.Shrink(towards)
		}
	}
	// No child claims towards (possible once upstream Map/Filter obscure
	// CanGenerate) — fall back to the union of every child's shrink
	// attempt so the law "Shrink(towards) never produces towards itself"
	// still holds.
	var candidates []A
	seen := map[string]struct{}{}
	for _, c := range u.children {
		shrunk := c.Shrink(towards)
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
		return NoArbitrary[A]()
	}
	return newEnumerated(candidates,
		func(A) []A { return nil },
		func(cand, origin A) bool { return valueKey(cand) != valueKey(origin) },
		nil,
	)
}

func (u *union[A]) CalculateIndex(pick Pick[A], precision int) float64 {
	for _, c := range u.children {
		if c.CanGenerate(pick) {
			return c.CalculateIndex(pick, precision)
		}
	}
	return genericIndex(pick, precision)
}

func (u *union[A]) CalculateCoverage(seen []Pick[A], precision int) float64 {
	return genericCoverage(seen, u.Size(), precision)
}
