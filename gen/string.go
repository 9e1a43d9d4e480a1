package gen

import (
	"math"
	"strings"

	"github.com/rapidx-dev/rapidx/internal/prng"
)

// Common alphabets, kept verbatim from the teacher's gen/string.go (pure
// ASCII, to avoid accidental encoding surprises downstream).
const (
	AlphabetLower    = "abcdefghijklmnopqrstuvwxyz"
	AlphabetUpper    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	AlphabetAlpha    = AlphabetLower + AlphabetUpper
	AlphabetDigits   = "0123456789"
	AlphabetAlphaNum = AlphabetAlpha + AlphabetDigits
	AlphabetASCII    = AlphabetAlphaNum + " !\"#$%&'()*+,-./:;<=>?@[\\]^_{|}~"
)

// String generates strings over alphabet with length uniformly chosen in
// [minLen, maxLen]. An empty alphabet defaults to AlphabetAlphaNum.
// Shrinking first tries every shorter length down to minLen (teacher's
// growNeighbors step 1: "encurtar vários passos de uma vez"), then tames
// individual characters towards alphabet's first rune, right to left
// (step 2), translated from the teacher's stateful BFS/DFS queue into a
// pure neighbor-candidate function.
func String(alphabet string, minLen, maxLen int) Arbitrary[string] {
	if alphabet == "" {
		alphabet = AlphabetAlphaNum
	}
	if minLen < 0 {
		minLen = 0
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	return newCoreArbitrary(core[string]{
		generate: func(r *prng.Prng) string { return stringGenerate(r, alphabet, minLen, maxLen) },
		corners:  func() []string { return stringCornerCases(alphabet, minLen, maxLen) },
		size:     stringSize(len(alphabet), minLen, maxLen),
		canGen:   func(v string) bool { return stringCanGenerate(v, alphabet, minLen, maxLen) },
		neighbors: func(base string) []string {
			return stringNeighbors(base, alphabet, minLen)
		},
		isShrunken: func(cand, origin string) bool {
			return len(cand) < len(origin) || (len(cand) == len(origin) && cand != origin)
		},
	})
}

// StringAlpha, StringAlphaNum, StringDigits, and StringASCII are the
// teacher's alphabet-specific sugar, carried over unchanged in spirit.
func StringAlpha(minLen, maxLen int) Arbitrary[string]    { return String(AlphabetAlpha, minLen, maxLen) }
func StringAlphaNum(minLen, maxLen int) Arbitrary[string] { return String(AlphabetAlphaNum, minLen, maxLen) }
func StringDigits(minLen, maxLen int) Arbitrary[string]   { return String(AlphabetDigits, minLen, maxLen) }
func StringASCII(minLen, maxLen int) Arbitrary[string]    { return String(AlphabetASCII, minLen, maxLen) }

func stringGenerate(r *prng.Prng, alphabet string, minLen, maxLen int) string {
	n := minLen
	if maxLen > minLen {
		n += r.IntN(maxLen - minLen + 1)
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[r.IntN(len(alphabet))]
	}
	return string(b)
}

func stringCornerCases(alphabet string, minLen, maxLen int) []string {
	var out []string
	if minLen == 0 {
		out = append(out, "")
	}
	out = append(out, strings.Repeat(string(alphabet[0]), minLen))
	out = append(out, strings.Repeat(string(alphabet[0]), maxLen))
	return dedupStrings(out)
}

func dedupStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0:0]
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func stringSize(alphabetLen, minLen, maxLen int) Size {
	total := 0.0
	overflow := false
	for n := minLen; n <= maxLen; n++ {
		total += math.Pow(float64(alphabetLen), float64(n))
		if total > math.MaxInt32 {
			overflow = true
			break
		}
	}
	if overflow || total > math.MaxInt32 {
		return Estimated(math.MaxInt32, 0, math.MaxInt32)
	}
	return Exact(int(total))
}

func stringCanGenerate(v, alphabet string, minLen, maxLen int) bool {
	if len(v) < minLen || len(v) > maxLen {
		return false
	}
	for i := 0; i < len(v); i++ {
		if !strings.ContainsRune(alphabet, rune(v[i])) {
			return false
		}
	}
	return true
}

func stringNeighbors(base, alphabet string, minLen int) []string {
	var out []string
	seen := map[string]struct{}{base: {}}
	push := func(s string) {
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	if len(base) > minLen {
		for newLen := len(base) - 1; newLen >= minLen; newLen-- {
			push(base[:newLen])
		}
	}
	if len(base) > 0 {
		target := alphabet[0]
		bs := []byte(base)
		for i := len(bs) - 1; i >= 0; i-- {
			if bs[i] != target {
				cand := make([]byte, len(bs))
				copy(cand, bs)
				cand[i] = target
				push(string(cand))
			}
		}
	}
	return out
}
