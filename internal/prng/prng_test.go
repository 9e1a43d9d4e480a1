package prng

import "testing"

func TestDeterministicReplay(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 1000; i++ {
		va, vb := a.Next(), b.Next()
		if va != vb {
			t.Fatalf("sequence diverged at step %d: %v != %v", i, va, vb)
		}
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)
	same := true
	for i := 0; i < 16; i++ {
		if a.Next() != b.Next() {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("expected seeds 1 and 2 to diverge within 16 draws")
	}
}

func TestNextInUnitInterval(t *testing.T) {
	p := New(7)
	for i := 0; i < 10000; i++ {
		v := p.Next()
		if v < 0 || v >= 1 {
			t.Fatalf("Next() out of [0,1): %v", v)
		}
	}
}

func TestCloneSplitsDeterministically(t *testing.T) {
	p := New(99)
	p.Next()
	p.Next()
	c1 := p.Clone()
	c2 := p.Clone()
	for i := 0; i < 100; i++ {
		if c1.Next() != c2.Next() {
			t.Fatalf("two clones of the same state diverged at step %d", i)
		}
	}
}

func TestGeneratorFactoryOverride(t *testing.T) {
	calls := 0
	factory := func(seed uint32) func() float64 {
		return func() float64 {
			calls++
			return 0.5
		}
	}
	p := WithGeneratorFactory(5, factory)
	if p.Seed() != 5 {
		t.Fatalf("expected seed 5, got %d", p.Seed())
	}
	for i := 0; i < 3; i++ {
		if v := p.Next(); v != 0.5 {
			t.Fatalf("expected overridden stream to return 0.5, got %v", v)
		}
	}
	if calls != 3 {
		t.Fatalf("expected factory stream invoked 3 times, got %d", calls)
	}
}
