// Package domain collects worked arbitraries over specific value
// domains, built from the generalized combinators in gen rather than a
// bespoke generate/shrink pair — CPF is kept from the teacher's
// gen/domain/cpf.go as the running example, re-expressed as
// Filter+Map over an Array of digits.
package domain

import (
	"errors"
	"strings"
	"unicode"

	"github.com/rapidx-dev/rapidx/gen"
)

// CPF generates syntactically valid Brazilian CPF numbers (root digits
// plus two check digits computed per the official algorithm); masked
// controls whether dots and a dash are inserted. Built as
// Map(Filter(Array(IntegerRange(0,9), 9, 9), not-all-same), buildCPF) —
// the predicate rules out the all-same-digit roots real CPF issuance
// never produces, and the map step appends check digits and formats.
func CPF(masked bool) gen.Arbitrary[string] {
	root := gen.Filter(gen.Array(gen.IntegerRange(0, 9), 9, 9), func(r []int) bool {
		return !allSameDigitsInt(r)
	}, 1000)
	return gen.Map(root, func(r []int) string { return buildCPF(r, masked) })
}

// CPFAny generates CPF numbers, masked or unmasked with equal
// probability — a Union over the two CPF shapes rather than the
// teacher's ad hoc coin flip inside a single Generator closure.
func CPFAny() gen.Arbitrary[string] {
	return gen.Union(CPF(true), CPF(false))
}

func buildCPF(root []int, masked bool) string {
	rb := make([]byte, 9)
	for i, d := range root {
		rb[i] = byte(d)
	}
	d1, d2 := computeCPFVerifiersDigits(rb)
	raw := make([]byte, 0, 11)
	for _, n := range rb {
		raw = append(raw, '0'+n)
	}
	raw = append(raw, '0'+d1, '0'+d2)
	cur := string(raw)
	if masked {
		cur = MaskCPF(cur)
	}
	return cur
}

func allSameDigitsInt(r []int) bool {
	if len(r) == 0 {
		return true
	}
	first := r[0]
	for _, d := range r[1:] {
		if d != first {
			return false
		}
	}
	return true
}

// ValidCPF reports whether s is a valid CPF, masked or not.
func ValidCPF(s string) bool {
	raw := UnmaskCPF(s)
	if len(raw) != 11 {
		return false
	}
	b := []byte(raw)
	if allSameBytes(b) {
		return false
	}
	d1, d2 := computeCPFVerifiers(b[:9])
	return b[9] == d1 && b[10] == d2
}

// MaskCPF formats an 11-digit raw CPF string with dots and a dash.
func MaskCPF(raw string) string {
	raw = UnmaskCPF(raw)
	if len(raw) != 11 {
		panic(errors.New("domain.MaskCPF: needs 11 digits"))
	}
	return raw[0:3] + "." + raw[3:6] + "." + raw[6:9] + "-" + raw[9:11]
}

// UnmaskCPF strips every non-digit character from s.
func UnmaskCPF(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func allSameBytes(b []byte) bool {
	if len(b) == 0 {
		return true
	}
	f := b[0]
	for _, x := range b[1:] {
		if x != f {
			return false
		}
	}
	return true
}

func computeCPFVerifiers(root []byte) (d1, d2 byte) {
	if len(root) != 9 {
		panic(errors.New("domain.computeCPFVerifiers: root len != 9"))
	}
	digits := make([]byte, 9)
	for i, b := range root {
		digits[i] = b - '0'
	}
	dd1, dd2 := computeCPFVerifiersDigits(digits)
	return '0' + dd1, '0' + dd2
}

// computeCPFVerifiersDigits runs the official weighted-sum/mod-11
// algorithm over 9 root digits (values 0-9, not ASCII) and returns the
// two check digits as values 0-9.
func computeCPFVerifiersDigits(root []byte) (d1, d2 byte) {
	sum := 0
	for i := 0; i < 9; i++ {
		sum += int(root[i]) * (10 - i)
	}
	rest := sum % 11
	if rest < 2 {
		d1 = 0
	} else {
		d1 = byte(11 - rest)
	}

	sum = 0
	for i := 0; i < 9; i++ {
		sum += int(root[i]) * (11 - i)
	}
	sum += int(d1) * 2
	rest = sum % 11
	if rest < 2 {
		d2 = 0
	} else {
		d2 = byte(11 - rest)
	}
	return
}
