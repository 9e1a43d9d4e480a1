package domain_test

import (
	"testing"

	"github.com/rapidx-dev/rapidx/gen/domain"
	"github.com/rapidx-dev/rapidx/internal/prng"
)

func TestCPFGeneratesValidDigits(t *testing.T) {
	cpf := domain.CPF(false)
	r := prng.New(123)
	for _, p := range cpf.Sample(r, 50) {
		if !domain.ValidCPF(p.Value) {
			t.Fatalf("CPF(false) produced an invalid CPF: %q", p.Value)
		}
		if len(p.Value) != 11 {
			t.Fatalf("expected 11 raw digits, got %q (len=%d)", p.Value, len(p.Value))
		}
	}
}

func TestCPFAnyGeneratesValidCPFs(t *testing.T) {
	r := prng.New(7)
	for _, p := range domain.CPFAny().Sample(r, 50) {
		if !domain.ValidCPF(p.Value) {
			t.Fatalf("CPFAny() produced an invalid CPF: %q", p.Value)
		}
	}
}

func TestMaskUnmaskRoundTrip(t *testing.T) {
	r := prng.New(9)
	for _, p := range domain.CPF(false).Sample(r, 30) {
		masked := domain.MaskCPF(p.Value)
		if domain.UnmaskCPF(masked) != p.Value {
			t.Fatalf("mask/unmask round trip broke: %q -> %q -> %q", p.Value, masked, domain.UnmaskCPF(masked))
		}
	}
}

func TestMaskedCPFIsAlsoValid(t *testing.T) {
	r := prng.New(42)
	for _, p := range domain.CPF(true).Sample(r, 30) {
		if !domain.ValidCPF(domain.UnmaskCPF(p.Value)) {
			t.Fatalf("CPF(true) produced a masked value that doesn't unmask to a valid CPF: %q", p.Value)
		}
	}
}
