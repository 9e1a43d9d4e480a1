// Package scenario implements the scenario AST and its fluent builder:
// the declarative description of a property (quantifiers, givens,
// preconditions, classifiers, and the final predicate) that explorer and
// shrinker traverse. Grounded on the teacher's prop.ForAll call shape
// (lucaskalb-rapidx/prop/prop.go), generalized from a single ∀ driving a
// testing.T into an arbitrarily nested ∀/∃ AST with classifiers.
package scenario

import "github.com/rapidx-dev/rapidx/gen"

// QuantifierKind distinguishes universal from existential quantifiers.
type QuantifierKind int

const (
	ForAll QuantifierKind = iota
	Exists
)

func (k QuantifierKind) String() string {
	if k == Exists {
		return "exists"
	}
	return "forall"
}

// BoundTestCase is the immutable environment built up as quantifiers and
// givens are bound during traversal. Bind returns a new BoundTestCase
// sharing the receiver's bindings, so a single traversal branch can fork
// into siblings without one mutating another's view.
type BoundTestCase struct {
	values map[string]gen.Pick[any]
	order  []string
}

// NewBoundTestCase returns an empty environment.
func NewBoundTestCase() *BoundTestCase {
	return &BoundTestCase{values: map[string]gen.Pick[any]{}}
}

// Bind returns a new environment with name bound to p.
func (b *BoundTestCase) Bind(name string, p gen.Pick[any]) *BoundTestCase {
	nb := b.clone()
	if _, exists := nb.values[name]; !exists {
		nb.order = append(nb.order, name)
	}
	nb.values[name] = p
	return nb
}

func (b *BoundTestCase) clone() *BoundTestCase {
	nb := &BoundTestCase{
		values: make(map[string]gen.Pick[any], len(b.values)),
		order:  append([]string(nil), b.order...),
	}
	for k, v := range b.values {
		nb.values[k] = v
	}
	return nb
}

// Pick returns the raw Pick bound to name.
func (b *BoundTestCase) Pick(name string) (gen.Pick[any], bool) {
	p, ok := b.values[name]
	return p, ok
}

// Value returns the bound value for name, or nil if unbound.
func (b *BoundTestCase) Value(name string) any {
	return b.values[name].Value
}

// Names returns the binding names in the order they were first bound.
func (b *BoundTestCase) Names() []string {
	return append([]string(nil), b.order...)
}

// Example renders the environment as a plain name->value map, the shape
// a counterexample report hands back to the caller.
func (b *BoundTestCase) Example() map[string]any {
	out := make(map[string]any, len(b.order))
	for _, k := range b.order {
		out[k] = b.values[k].Value
	}
	return out
}

// PicksMap renders the environment as name->Pick, the shape the
// shrinker needs to re-derive shrink candidates (Example loses the
// Original/PreMapValue tracing a Pick carries).
func (b *BoundTestCase) PicksMap() map[string]gen.Pick[any] {
	out := make(map[string]gen.Pick[any], len(b.order))
	for _, k := range b.order {
		out[k] = b.values[k]
	}
	return out
}

// Node is the sealed sum type every scenario AST element implements.
type Node interface{ node() }

// QuantifierNode binds name to a fresh draw from Arbitrary on every
// traversal branch, per Kind's ∀/∃ rule.
type QuantifierNode struct {
	Name      string
	Kind      QuantifierKind
	Arbitrary gen.Arbitrary[any]
}

func (QuantifierNode) node() {}

// GivenNode binds a fixed, already-known value.
type GivenNode struct {
	Name  string
	Value any
}

func (GivenNode) node() {}

// GivenFuncNode binds a value computed from everything bound so far.
type GivenFuncNode struct {
	Name    string
	Factory func(*BoundTestCase) any
}

func (GivenFuncNode) node() {}

// WhenNode runs a side-effecting setup/precondition step. A non-nil
// error discards the current branch (if it is, or wraps, ErrPrecondition)
// or aborts the run (any other error).
type WhenNode struct {
	Fn func(*BoundTestCase) error
}

func (WhenNode) node() {}

// ThenNode evaluates the property itself.
type ThenNode struct {
	Pred func(*BoundTestCase) (bool, error)
}

func (ThenNode) node() {}

// ClassifyNode tags the current branch with Label whenever Pred holds,
// contributing to the run's label counts.
type ClassifyNode struct {
	Pred  func(*BoundTestCase) bool
	Label string
}

func (ClassifyNode) node() {}

// LabelNode tags the current branch with a computed label.
type LabelNode struct {
	Fn func(*BoundTestCase) string
}

func (LabelNode) node() {}

// CollectNode records an arbitrary computed value per branch, for
// post-run statistics (distribution of a derived quantity).
type CollectNode struct {
	Fn func(*BoundTestCase) any
}

func (CollectNode) node() {}

// CoverNode asserts that at least a target fraction of branches satisfy
// Pred, checked once the run completes.
type CoverNode struct {
	Pred    func(*BoundTestCase) bool
	Label   string
	Minimum float64
}

func (CoverNode) node() {}

// CoverTableNode partitions branches into named categories and asserts
// coverage per category, checked once the run completes.
type CoverTableNode struct {
	Name       string
	Categories map[string]func(*BoundTestCase) bool
	Minimum    float64
}

func (CoverTableNode) node() {}
