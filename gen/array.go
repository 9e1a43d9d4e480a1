package gen

import "github.com/rapidx-dev/rapidx/internal/prng"

// Array generates []A with a uniformly chosen length in [minLen, maxLen]
// and uniform items drawn from item. Corner cases are arrays at the
// extreme lengths built from item's own corner cases, bounded to a
// handful of combinations. Shrinking first tries to reduce length (large
// blocks, then single elements, mirroring the teacher's gen/slice.go
// growNeighbors), then shrinks individual elements while holding length
// fixed.
func Array[A any](item Arbitrary[A], minLen, maxLen int) Arbitrary[[]A] {
	if minLen < 0 {
		minLen = 0
	}
	if maxLen < minLen {
		maxLen = minLen
	}

	drawOne := func(r *prng.Prng) A {
		picks := item.Sample(r, 1)
		if len(picks) == 0 {
			var zero A
			return zero
		}
		return picks[0].Value
	}

	generateLen := func(r *prng.Prng, n int) []A {
		out := make([]A, n)
		for i := range out {
			out[i] = drawOne(r)
		}
		return out
	}

	itemCorners := func() []A {
		cc := item.CornerCases()
		out := make([]A, len(cc))
		for i, p := range cc {
			out[i] = p.Value
		}
		return out
	}

	return newCoreArbitrary(core[[]A]{
		generate: func(r *prng.Prng) []A {
			n := minLen
			if maxLen > minLen {
				n += r.IntN(maxLen - minLen + 1)
			}
			return generateLen(r, n)
		},
		corners: func() [][]A {
			return arrayCornerCases(itemCorners(), minLen, maxLen)
		},
		size: arraySize(item.Size(), minLen, maxLen),
		canGen: func(v []A) bool {
			return len(v) >= minLen && len(v) <= maxLen
		},
		neighbors: func(base []A) [][]A {
			return arrayNeighbors(base, minLen, item)
		},
		isShrunken: func(cand, origin []A) bool {
			return len(cand) < len(origin) || (len(cand) == len(origin) && arraySig(cand) != arraySig(origin))
		},
	})
}

func arraySize(itemSize Size, minLen, maxLen int) Size {
	lengths := maxLen - minLen + 1
	if lengths <= 0 {
		lengths = 1
	}
	// average length as a stand-in for per-length domain size, combined
	// multiplicatively with item domain size per the product propagation
	// rule (§3); variable length already makes this an estimate.
	avgLen := (minLen + maxLen) / 2
	if avgLen < 1 {
		avgLen = 1
	}
	perLength := itemSize
	for i := 1; i < avgLen; i++ {
		perLength = combineSizeProduct(perLength, itemSize)
	}
	return combineSizeProduct(perLength, Exact(lengths)).Downgrade()
}

func arrayCornerCases[A any](itemCorners []A, minLen, maxLen int) [][]A {
	if len(itemCorners) == 0 {
		itemCorners = []A{}
	}
	var out [][]A
	for _, n := range dedupInts([]int{minLen, maxLen}) {
		if n < 0 {
			continue
		}
		arr := make([]A, n)
		for i := range arr {
			if len(itemCorners) > 0 {
				arr[i] = itemCorners[i%len(itemCorners)]
			}
		}
		out = append(out, arr)
		// bound the combinatorics: one corner array per extreme length
		// using the first few item corner cases is enough to exercise the
		// boundary without exploding into the full Cartesian product.
		if len(itemCorners) > 1 && n > 0 {
			alt := make([]A, n)
			copy(alt, arr)
			alt[0] = itemCorners[len(itemCorners)-1]
			out = append(out, alt)
		}
	}
	return out
}

func arrayNeighbors[A any](base []A, minLen int, item Arbitrary[A]) [][]A {
	var out [][]A
	l := len(base)
	if l > minLen {
		// (1) remove large blocks
		for chunk := l / 2; chunk >= 1; chunk /= 2 {
			for i := 0; i+chunk <= l && l-chunk >= minLen; i += chunk {
				out = append(out, removeRange(base, i, i+chunk))
			}
		}
		// (2) remove a single element, right to left
		for i := l - 1; i >= 0 && l-1 >= minLen; i-- {
			out = append(out, removeRange(base, i, i+1))
		}
	}
	// (3) shrink one element at a time, holding length fixed
	for i := l - 1; i >= 0; i-- {
		shrunk := item.Shrink(NewPick(base[i]))
		cands := shrunk.CornerCases()
		if len(cands) == 0 {
			continue
		}
		cand := make([]A, l)
		copy(cand, base)
		cand[i] = cands[0].Value
		out = append(out, cand)
	}
	return out
}

func removeRange[A any](base []A, i, j int) []A {
	out := make([]A, 0, len(base)-(j-i))
	out = append(out, base[:i]...)
	out = append(out, base[j:]...)
	return out
}

func arraySig[A any](s []A) string { return valueKey(s) }
