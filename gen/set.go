package gen

import (
	"math"
	"sort"

	"github.com/rapidx-dev/rapidx/internal/prng"
)

// Set generates subsets of domain with size in [minSize, maxSize],
// represented as a sorted-by-index slice of the selected elements.
// Internally each subset is addressed by a bitmask index over domain
// (bit i set means domain[i] is included); corner cases are the subsets
// at the extreme sizes. Shrinking removes elements (reducing towards the
// empty/smallest-allowed subset) before trying to shrink individual
// members via domain's own ordering.
func Set[A any](domain []A, minSize, maxSize int) Arbitrary[[]A] {
	n := len(domain)
	if minSize < 0 {
		minSize = 0
	}
	if maxSize > n {
		maxSize = n
	}
	if maxSize < minSize {
		maxSize = minSize
	}

	fromMask := func(mask uint64) []A {
		out := make([]A, 0, bitsSet(mask))
		for i := 0; i < n; i++ {
			if mask&(1<<uint(i)) != 0 {
				out = append(out, domain[i])
			}
		}
		return out
	}

	toMask := func(indices []int) uint64 {
		var mask uint64
		for _, idx := range indices {
			mask |= 1 << uint(idx)
		}
		return mask
	}

	generate := func(r *prng.Prng) []A {
		size := minSize
		if maxSize > minSize {
			size += r.IntN(maxSize - minSize + 1)
		}
		indices := randomIndices(r, n, size)
		return fromMask(toMask(indices))
	}

	return newCoreArbitrary(core[[]A]{
		generate: generate,
		corners: func() [][]A {
			return setCornerCases(domain, minSize, maxSize)
		},
		size: setSize(n, minSize, maxSize),
		canGen: func(v []A) bool {
			return len(v) >= minSize && len(v) <= maxSize && len(v) <= n
		},
		neighbors: func(base []A) [][]A {
			return setNeighbors(base, domain, minSize)
		},
		isShrunken: func(cand, origin []A) bool {
			return len(cand) < len(origin) || (len(cand) == len(origin) && valueKey(cand) != valueKey(origin))
		},
	})
}

func bitsSet(mask uint64) int {
	count := 0
	for mask != 0 {
		count += int(mask & 1)
		mask >>= 1
	}
	return count
}

func randomIndices(r *prng.Prng, n, size int) []int {
	if size > n {
		size = n
	}
	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}
	for i := 0; i < size; i++ {
		j := i + r.IntN(n-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	chosen := append([]int(nil), pool[:size]...)
	sort.Ints(chosen)
	return chosen
}

func setSize(n, minSize, maxSize int) Size {
	total := 0
	overflow := false
	for k := minSize; k <= maxSize; k++ {
		c := binomial(n, k)
		if c < 0 {
			overflow = true
			break
		}
		total += c
		if total < 0 {
			overflow = true
			break
		}
	}
	if overflow {
		return Estimated(1<<uint(min(n, 30)), 0, 1<<uint(min(n, 62)))
	}
	return Exact(total)
}

func binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	result := 1.0
	for i := 0; i < k; i++ {
		result = result * float64(n-i) / float64(i+1)
	}
	if result > math.MaxInt32 {
		return -1
	}
	return int(math.Round(result))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func setCornerCases[A any](domain []A, minSize, maxSize int) [][]A {
	var out [][]A
	for _, size := range dedupInts([]int{minSize, maxSize}) {
		if size < 0 || size > len(domain) {
			continue
		}
		out = append(out, append([]A(nil), domain[:size]...))
	}
	return out
}

func setNeighbors[A any](base []A, domain []A, minSize int) [][]A {
	var out [][]A
	l := len(base)
	if l > minSize {
		for i := l - 1; i >= 0; i-- {
			cand := make([]A, 0, l-1)
			cand = append(cand, base[:i]...)
			cand = append(cand, base[i+1:]...)
			out = append(out, cand)
		}
	}
	return out
}
