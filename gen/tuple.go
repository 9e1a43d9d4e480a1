package gen

import "github.com/rapidx-dev/rapidx/internal/prng"

// Pair and Triple are the value types Tuple2/Tuple3 produce — Go has no
// anonymous tuple type, so a small named product stands in for one, the
// same way the teacher reaches for a named struct wherever a test needs
// more than one generated value together.
type Pair[A, B any] struct {
	First  A
	Second B
}

type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// tuple2 is the Cartesian-product arbitrary behind Tuple2: components
// are drawn and shrunk independently, and Shrink holds one component
// fixed while offering every candidate from shrinking the other, the
// standard PBT tuple-shrink strategy.
type tuple2[A, B any] struct {
	a Arbitrary[A]
	b Arbitrary[B]
}

// Tuple2 generates pairs with independently-drawn, independently-shrunk
// components.
func Tuple2[A, B any](a Arbitrary[A], b Arbitrary[B]) Arbitrary[Pair[A, B]] {
	return &tuple2[A, B]{a: a, b: b}
}

func (t *tuple2[A, B]) draw(r *prng.Prng) Pair[A, B] {
	av := t.a.Sample(r, 1)
	bv := t.b.Sample(r, 1)
	var p Pair[A, B]
	if len(av) > 0 {
		p.First = av[0].Value
	}
	if len(bv) > 0 {
		p.Second = bv[0].Value
	}
	return p
}

func (t *tuple2[A, B]) Sample(r *prng.Prng, n int) []Pick[Pair[A, B]] {
	if n <= 0 {
		return nil
	}
	out := make([]Pick[Pair[A, B]], n)
	for i := range out {
		out[i] = NewPick(t.draw(r))
	}
	return out
}

func (t *tuple2[A, B]) SampleWithBias(r *prng.Prng, n int) []Pick[Pair[A, B]] {
	return sampleWithBiasN(r, n, t.Size(), pickValues(t.CornerCases()), t.draw)
}

func (t *tuple2[A, B]) SampleUnique(r *prng.Prng, n int, exclude []Pair[A, B]) []Pick[Pair[A, B]] {
	return sampleUniqueN(r, n, t.Size(), exclude, t.draw)
}

func (t *tuple2[A, B]) CornerCases() []Pick[Pair[A, B]] {
	var out []Pick[Pair[A, B]]
	for _, pa := range t.a.CornerCases() {
		for _, pb := range t.b.CornerCases() {
			out = append(out, NewPick(Pair[A, B]{First: pa.Value, Second: pb.Value}))
		}
	}
	return out
}

func (t *tuple2[A, B]) Size() Size { return combineSizeProduct(t.a.Size(), t.b.Size()) }

func (t *tuple2[A, B]) CanGenerate(pick Pick[Pair[A, B]]) bool {
	return t.a.CanGenerate(NewPick(pick.Value.First)) && t.b.CanGenerate(NewPick(pick.Value.Second))
}

func (t *tuple2[A, B]) Shrink(towards Pick[Pair[A, B]]) Arbitrary[Pair[A, B]] {
	candidates := tuple2Neighbors(t.a, t.b, towards.Value)
	if len(candidates) == 0 {
		return NoArbitrary[Pair[A, B]]()
	}
	return newEnumerated(candidates,
		func(base Pair[A, B]) []Pair[A, B] { return tuple2Neighbors(t.a, t.b, base) },
		func(cand, origin Pair[A, B]) bool { return valueKey(cand) != valueKey(origin) },
		func(v Pair[A, B]) bool { return t.CanGenerate(NewPick(v)) },
	)
}

func tuple2Neighbors[A, B any](a Arbitrary[A], b Arbitrary[B], base Pair[A, B]) []Pair[A, B] {
	var out []Pair[A, B]
	as := a.Shrink(NewPick(base.First))
	if !IsNoArbitrary(as) {
		for _, p := range as.CornerCases() {
			out = append(out, Pair[A, B]{First: p.Value, Second: base.Second})
		}
	}
	bs := b.Shrink(NewPick(base.Second))
	if !IsNoArbitrary(bs) {
		for _, p := range bs.CornerCases() {
			out = append(out, Pair[A, B]{First: base.First, Second: p.Value})
		}
	}
	return out
}

func (t *tuple2[A, B]) CalculateIndex(pick Pick[Pair[A, B]], precision int) float64 {
	return genericIndex(pick, precision)
}

func (t *tuple2[A, B]) CalculateCoverage(seen []Pick[Pair[A, B]], precision int) float64 {
	return genericCoverage(seen, t.Size(), precision)
}

// tuple3 extends tuple2's strategy to three independent components.
type tuple3[A, B, C any] struct {
	a Arbitrary[A]
	b Arbitrary[B]
	c Arbitrary[C]
}

// Tuple3 generates triples with independently-drawn, independently-shrunk
// components.
func Tuple3[A, B, C any](a Arbitrary[A], b Arbitrary[B], c Arbitrary[C]) Arbitrary[Triple[A, B, C]] {
	return &tuple3[A, B, C]{a: a, b: b, c: c}
}

func (t *tuple3[A, B, C]) draw(r *prng.Prng) Triple[A, B, C] {
	av := t.a.Sample(r, 1)
	bv := t.b.Sample(r, 1)
	cv := t.c.Sample(r, 1)
	var tr Triple[A, B, C]
	if len(av) > 0 {
		tr.First = av[0].Value
	}
	if len(bv) > 0 {
		tr.Second = bv[0].Value
	}
	if len(cv) > 0 {
		tr.Third = cv[0].Value
	}
	return tr
}

func (t *tuple3[A, B, C]) Sample(r *prng.Prng, n int) []Pick[Triple[A, B, C]] {
	if n <= 0 {
		return nil
	}
	out := make([]Pick[Triple[A, B, C]], n)
	for i := range out {
		out[i] = NewPick(t.draw(r))
	}
	return out
}

func (t *tuple3[A, B, C]) SampleWithBias(r *prng.Prng, n int) []Pick[Triple[A, B, C]] {
	return sampleWithBiasN(r, n, t.Size(), pickValues(t.CornerCases()), t.draw)
}

func (t *tuple3[A, B, C]) SampleUnique(r *prng.Prng, n int, exclude []Triple[A, B, C]) []Pick[Triple[A, B, C]] {
	return sampleUniqueN(r, n, t.Size(), exclude, t.draw)
}

func (t *tuple3[A, B, C]) CornerCases() []Pick[Triple[A, B, C]] {
	var out []Pick[Triple[A, B, C]]
	for _, pa := range t.a.CornerCases() {
		for _, pb := range t.b.CornerCases() {
			for _, pc := range t.c.CornerCases() {
				out = append(out, NewPick(Triple[A, B, C]{First: pa.Value, Second: pb.Value, Third: pc.Value}))
			}
		}
	}
	return out
}

func (t *tuple3[A, B, C]) Size() Size {
	return combineSizeProduct(combineSizeProduct(t.a.Size(), t.b.Size()), t.c.Size())
}

func (t *tuple3[A, B, C]) CanGenerate(pick Pick[Triple[A, B, C]]) bool {
	v := pick.Value
	return t.a.CanGenerate(NewPick(v.First)) && t.b.CanGenerate(NewPick(v.Second)) && t.c.CanGenerate(NewPick(v.Third))
}

func (t *tuple3[A, B, C]) Shrink(towards Pick[Triple[A, B, C]]) Arbitrary[Triple[A, B, C]] {
	candidates := tuple3Neighbors(t.a, t.b, t.c, towards.Value)
	if len(candidates) == 0 {
		return NoArbitrary[Triple[A, B, C]]()
	}
	return newEnumerated(candidates,
		func(base Triple[A, B, C]) []Triple[A, B, C] { return tuple3Neighbors(t.a, t.b, t.c, base) },
		func(cand, origin Triple[A, B, C]) bool { return valueKey(cand) != valueKey(origin) },
		func(v Triple[A, B, C]) bool { return t.CanGenerate(NewPick(v)) },
	)
}

func tuple3Neighbors[A, B, C any](a Arbitrary[A], b Arbitrary[B], c Arbitrary[C], base Triple[A, B, C]) []Triple[A, B, C] {
	var out []Triple[A, B, C]
	as := a.Shrink(NewPick(base.First))
	if !IsNoArbitrary(as) {
		for _, p := range as.CornerCases() {
			out = append(out, Triple[A, B, C]{First: p.Value, Second: base.Second, Third: base.Third})
		}
	}
	bs := b.Shrink(NewPick(base.Second))
	if !IsNoArbitrary(bs) {
		for _, p := range bs.CornerCases() {
			out = append(out, Triple[A, B, C]{First: base.First, Second: p.Value, Third: base.Third})
		}
	}
	cs := c.Shrink(NewPick(base.Third))
	if !IsNoArbitrary(cs) {
		for _, p := range cs.CornerCases() {
			out = append(out, Triple[A, B, C]{First: base.First, Second: base.Second, Third: p.Value})
		}
	}
	return out
}

func (t *tuple3[A, B, C]) CalculateIndex(pick Pick[Triple[A, B, C]], precision int) float64 {
	return genericIndex(pick, precision)
}

func (t *tuple3[A, B, C]) CalculateCoverage(seen []Pick[Triple[A, B, C]], precision int) float64 {
	return genericCoverage(seen, t.Size(), precision)
}

// pickValues extracts the Value field from a Pick slice, used to feed
// sampleWithBiasN's corners parameter from a CornerCases() result.
func pickValues[A any](picks []Pick[A]) []A {
	out := make([]A, len(picks))
	for i, p := range picks {
		out[i] = p.Value
	}
	return out
}
