package scenario

import (
	"fmt"

	"github.com/rapidx-dev/rapidx/gen"
)

// Builder accumulates scenario Nodes under a fluent chain, exactly the
// call shape the teacher's prop.ForAll(t, gen, predicate) generalizes
// into: a sequence of binding/precondition/classifier steps terminated
// by Then, which seals the chain into an immutable *Scenario.
type Builder struct {
	nodes []Node
	names map[string]struct{}
	err   error
}

// New starts a fresh scenario builder.
func New() *Builder {
	return &Builder{names: map[string]struct{}{}}
}

func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

func (b *Builder) bindName(name string) bool {
	if _, dup := b.names[name]; dup {
		b.fail(fmt.Errorf("scenario: duplicate binding name %q", name))
		return false
	}
	b.names[name] = struct{}{}
	return true
}

// ForAll adds a universally quantified variable: the property must hold
// for every sampled value (subject to the strategy's sample size).
func (b *Builder) ForAll(name string, a gen.Arbitrary[any]) *Builder {
	if b.bindName(name) {
		b.nodes = append(b.nodes, QuantifierNode{Name: name, Kind: ForAll, Arbitrary: a})
	}
	return b
}

// Exists adds an existentially quantified variable: the property must
// hold for at least one sampled value.
func (b *Builder) Exists(name string, a gen.Arbitrary[any]) *Builder {
	if b.bindName(name) {
		b.nodes = append(b.nodes, QuantifierNode{Name: name, Kind: Exists, Arbitrary: a})
	}
	return b
}

// Given binds a fixed value under name.
func (b *Builder) Given(name string, v any) *Builder {
	if b.bindName(name) {
		b.nodes = append(b.nodes, GivenNode{Name: name, Value: v})
	}
	return b
}

// GivenFunc binds a value computed from everything bound so far.
func (b *Builder) GivenFunc(name string, factory func(*BoundTestCase) any) *Builder {
	if b.bindName(name) {
		b.nodes = append(b.nodes, GivenFuncNode{Name: name, Factory: factory})
	}
	return b
}

// When runs a setup/precondition step. Call scenario.Pre (or return
// scenario.ErrPrecondition) inside fn to discard the branch.
func (b *Builder) When(fn func(*BoundTestCase) error) *Builder {
	b.nodes = append(b.nodes, WhenNode{Fn: fn})
	return b
}

// Classify tags branches where pred holds with label.
func (b *Builder) Classify(pred func(*BoundTestCase) bool, label string) *Builder {
	b.nodes = append(b.nodes, ClassifyNode{Pred: pred, Label: label})
	return b
}

// Label tags every branch with a computed label.
func (b *Builder) Label(fn func(*BoundTestCase) string) *Builder {
	b.nodes = append(b.nodes, LabelNode{Fn: fn})
	return b
}

// Collect records a derived value per branch for post-run statistics.
func (b *Builder) Collect(fn func(*BoundTestCase) any) *Builder {
	b.nodes = append(b.nodes, CollectNode{Fn: fn})
	return b
}

// Cover asserts at least minimum (a fraction in [0,1]) of branches
// satisfy pred once the run completes.
func (b *Builder) Cover(pred func(*BoundTestCase) bool, label string, minimum float64) *Builder {
	b.nodes = append(b.nodes, CoverNode{Pred: pred, Label: label, Minimum: minimum})
	return b
}

// CoverTable partitions branches into named categories and asserts each
// category reaches minimum coverage once the run completes.
func (b *Builder) CoverTable(name string, categories map[string]func(*BoundTestCase) bool, minimum float64) *Builder {
	b.nodes = append(b.nodes, CoverTableNode{Name: name, Categories: categories, Minimum: minimum})
	return b
}

// Then seals the builder into a *Scenario with pred as its property.
// No further classifiers can be added after this call — And is the only
// way to extend a sealed Scenario, and it only ever adds more Then
// predicates (an AND of properties), never more structure.
func (b *Builder) Then(pred func(*BoundTestCase) (bool, error)) *Scenario {
	nodes := append(b.nodes, ThenNode{Pred: pred})
	return &Scenario{nodes: nodes, err: b.err}
}
