package scenario

import (
	"fmt"

	"github.com/rapidx-dev/rapidx/gen"
	"github.com/rapidx-dev/rapidx/internal/sampler"
)

// Scenario is a sealed, immutable AST: the output of Builder.Then/And,
// the input to Compile.
type Scenario struct {
	nodes []Node
	err   error
}

// And appends another Then predicate, ANDed with every predicate
// already in the scenario. It never re-opens the builder: no further
// quantifiers, givens, or classifiers can be added this way.
func (s *Scenario) And(pred func(*BoundTestCase) (bool, error)) *Scenario {
	nodes := append(append([]Node(nil), s.nodes...), ThenNode{Pred: pred})
	return &Scenario{nodes: nodes, err: s.err}
}

// Nodes exposes the raw AST for the explorer's leaf evaluation.
func (s *Scenario) Nodes() []Node { return s.nodes }

// CompiledQuantifier is a quantifier node reduced to the three
// operations the explorer and shrinker actually need: draw a batch,
// shrink a pick, and test whether a candidate is strictly smaller than
// its origin. Kept in this package (rather than explorer's) to keep the
// dependency edge one-way: explorer imports scenario, not the reverse.
type CompiledQuantifier struct {
	Name       string
	Kind       QuantifierKind
	Sample     func(s sampler.Sampler, n int) ([]gen.Pick[any], bool)
	Shrink     func(p gen.Pick[any], n int) []gen.Pick[any]
	IsShrunken func(cand, origin gen.Pick[any]) bool
	// Index reports where p falls in the arbitrary's domain, in [0,1),
	// for the statistics context's per-quantifier distribution tracking.
	Index func(p gen.Pick[any]) float64
}

// ExecutableScenario is the compiled form Explore/Shrink operate over:
// the original node list (for leaf evaluation: givens, whens, thens,
// classifiers) plus the extracted, order-preserved quantifier list (for
// traversal).
type ExecutableScenario struct {
	Nodes          []Node
	Quantifiers    []CompiledQuantifier
	HasExistential bool
}

// Compile walks a Scenario's nodes once, extracting and validating its
// quantifiers. Uniqueness of quantifier names is already enforced by
// Builder.bindName at construction time; Compile re-checks it defensively
// since a Scenario can also be hand-assembled outside a Builder.
func Compile(s *Scenario) (ExecutableScenario, error) {
	if s.err != nil {
		return ExecutableScenario{}, s.err
	}
	seen := map[string]struct{}{}
	var quantifiers []CompiledQuantifier
	hasExistential := false
	for _, n := range s.nodes {
		q, ok := n.(QuantifierNode)
		if !ok {
			continue
		}
		if _, dup := seen[q.Name]; dup {
			return ExecutableScenario{}, fmt.Errorf("scenario: duplicate quantifier name %q", q.Name)
		}
		seen[q.Name] = struct{}{}
		if q.Kind == Exists {
			hasExistential = true
		}
		quantifiers = append(quantifiers, compileQuantifier(q))
	}
	return ExecutableScenario{Nodes: s.nodes, Quantifiers: quantifiers, HasExistential: hasExistential}, nil
}

func compileQuantifier(q QuantifierNode) CompiledQuantifier {
	arb := q.Arbitrary
	return CompiledQuantifier{
		Name: q.Name,
		Kind: q.Kind,
		Sample: func(smp sampler.Sampler, n int) ([]gen.Pick[any], bool) {
			return smp.Sample(arb, n)
		},
		Shrink: func(p gen.Pick[any], n int) []gen.Pick[any] {
			next := arb.Shrink(p)
			if gen.IsNoArbitrary(next) {
				return nil
			}
			cands := next.CornerCases()
			if len(cands) > n {
				cands = cands[:n]
			}
			return cands
		},
		IsShrunken: func(cand, origin gen.Pick[any]) bool {
			return fmt.Sprintf("%#v", cand.Value) != fmt.Sprintf("%#v", origin.Value)
		},
		Index: func(p gen.Pick[any]) float64 {
			return arb.CalculateIndex(p, 8)
		},
	}
}
