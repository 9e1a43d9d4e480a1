// Package explorer implements the traversal engine: given a compiled
// scenario, a sampler, and a sample-size/budget, it walks the quantifier
// list applying the ∀/∃ rules, evaluates the property at each leaf, and
// aggregates classifier/cover/collect statistics along the way.
//
// There is no direct teacher analogue (lucaskalb-rapidx's prop.ForAll
// only ever drives a single flat ∀), so the traversal order and the
// mixed-nesting ∃-exhaustion policy below are this package's own design,
// following spec.md §4.5 directly rather than a teacher file.
package explorer

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rapidx-dev/rapidx/gen"
	"github.com/rapidx-dev/rapidx/internal/sampler"
	"github.com/rapidx-dev/rapidx/scenario"
	"github.com/rapidx-dev/rapidx/stats"
)

// Distribution selects how a sample budget is partitioned across nested
// quantifier depth.
type Distribution int

const (
	// NestedLoop (the default) takes the depth-th root of the total
	// budget, so a d-level scenario performs roughly that many leaf
	// evaluations in total rather than budget^d.
	NestedLoop Distribution = iota
	// Flat draws the full budget at every quantifier level regardless of
	// nesting depth.
	Flat
)

// PartitionSampleSize returns how many samples to draw at each of depth
// nested quantifier levels so their product stays close to maxTests, per
// the floor(max_tests^(1/depth)) rule. depth <= 1 or dist == Flat always
// returns maxTests unchanged.
func PartitionSampleSize(maxTests, depth int, dist Distribution) int {
	if dist == Flat || depth <= 1 {
		return maxTests
	}
	n := int(math.Floor(math.Pow(float64(maxTests), 1.0/float64(depth))))
	if n < 1 {
		n = 1
	}
	return n
}

// OutcomeStatus is the three-way verdict a traversal can reach.
type OutcomeStatus int

const (
	// Passed: every quantifier rule was satisfied by the explored samples.
	Passed OutcomeStatus = iota
	// Failed: a counterexample was found.
	Failed
	// Inconclusive: the budget ran out, or the scenario never produced a
	// usable branch (every branch was discarded by a precondition, or an
	// inner ∃ nested under an outer ∀ never found a witness for any
	// sample of that ∀).
	Inconclusive
)

func (s OutcomeStatus) String() string {
	switch s {
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	default:
		return "inconclusive"
	}
}

// CoverResult reports one Cover/CoverTable category's observed hit rate.
type CoverResult struct {
	Hits    int
	Total   int
	Minimum float64
}

// Satisfied reports whether the observed rate met Minimum. A category
// never exercised (Total == 0) is vacuously satisfied.
func (c CoverResult) Satisfied() bool {
	if c.Total == 0 {
		return true
	}
	return float64(c.Hits)/float64(c.Total) >= c.Minimum
}

// Outcome is the result of one Explore call.
type Outcome struct {
	Status            OutcomeStatus
	TestsRun          int
	Discarded         int
	// PassedLeaves and FailedLeaves are the leaf-evaluation counts
	// Budget.ShouldStop was actually consulted with, exposed so a caller
	// computing its own final confidence.Decision for reporting uses the
	// exact same counts that drove any early stop.
	PassedLeaves      int
	FailedLeaves      int
	Witness           map[string]any
	WitnessPicks      map[string]gen.Pick[any]
	Counterexample    map[string]any
	CounterexamplePicks map[string]gen.Pick[any]
	LabelCounts       map[string]int
	Collected         []any
	CoverResults      map[string]CoverResult
	CoverTableResults map[string]map[string]CoverResult
	Err               error
}

// Budget bounds a single Explore call. Zero fields mean "unbounded" for
// that dimension.
type Budget struct {
	MaxTests int
	MaxTime  time.Duration
	// ShouldStop, when non-nil, is consulted after every completed leaf
	// evaluation with the running passed/failed leaf counts; returning
	// true ends the run early (confidence-driven termination, §4.7),
	// independent of MaxTests/MaxTime.
	ShouldStop func(passed, failed int) bool
}

type budgetState struct {
	budget   Budget
	testsRun int
	passed   int
	failed   int
	start    time.Time
}

func newBudgetState(b Budget) *budgetState { return &budgetState{budget: b, start: time.Now()} }

func (s *budgetState) exceeded() bool {
	if s.budget.MaxTests > 0 && s.testsRun >= s.budget.MaxTests {
		return true
	}
	if s.budget.MaxTime > 0 && time.Since(s.start) >= s.budget.MaxTime {
		return true
	}
	if s.budget.ShouldStop != nil && s.budget.ShouldStop(s.passed, s.failed) {
		return true
	}
	return false
}

type verdict int

const (
	held verdict = iota
	failed
	inconclusive
)

// PropertyPanic wraps a recovered panic from a Then/When predicate.
// Unwrap exposes the original panic value when it was itself an error,
// so errors.As/errors.Is chains through to it.
type PropertyPanic struct {
	Value any
}

func (p *PropertyPanic) Error() string { return fmt.Sprintf("rapidx: property panicked: %v", p.Value) }

func (p *PropertyPanic) Unwrap() error {
	if err, ok := p.Value.(error); ok {
		return err
	}
	return nil
}

type quantResult struct {
	verdict        verdict
	witness        *scenario.BoundTestCase
	counterexample *scenario.BoundTestCase
	discarded      int
	err            error
}

// Explore runs the compiled scenario to completion (or until budget runs
// out), drawing n samples per quantifier level. statCtx may be nil, in
// which case no per-quantifier index observations are recorded.
func Explore(es scenario.ExecutableScenario, smp sampler.Sampler, n int, budget Budget, statCtx *stats.Context) Outcome {
	bs := newBudgetState(budget)
	collector := newRunCollector()
	res := exploreLevel(es.Quantifiers, 0, scenario.NewBoundTestCase(), es.Nodes, smp, n, bs, collector, statCtx)

	out := Outcome{
		TestsRun:          bs.testsRun,
		Discarded:         res.discarded,
		PassedLeaves:      bs.passed,
		FailedLeaves:      bs.failed,
		LabelCounts:       collector.labelCounts,
		Collected:         collector.collected,
		CoverResults:      collector.coverResults(),
		CoverTableResults: collector.coverTableResults(),
	}
	switch res.verdict {
	case held:
		out.Status = Passed
		if res.witness != nil {
			out.Witness = res.witness.Example()
			out.WitnessPicks = res.witness.PicksMap()
		}
	case failed:
		out.Status = Failed
		out.Err = res.err
		if res.counterexample != nil {
			out.Counterexample = res.counterexample.Example()
			out.CounterexamplePicks = res.counterexample.PicksMap()
		}
	case inconclusive:
		out.Status = Inconclusive
	}
	return out
}

func exploreLevel(
	qs []scenario.CompiledQuantifier,
	idx int,
	bound *scenario.BoundTestCase,
	leafNodes []scenario.Node,
	smp sampler.Sampler,
	n int,
	bs *budgetState,
	collector *runCollector,
	statCtx *stats.Context,
) quantResult {
	if idx == len(qs) {
		if bs.exceeded() {
			return quantResult{verdict: inconclusive}
		}
		bs.testsRun++
		v, result, err := evalLeaf(leafNodes, bound, collector)
		switch v {
		case held:
			bs.passed++
			return quantResult{verdict: held, witness: result}
		case inconclusive:
			return quantResult{verdict: inconclusive, discarded: 1}
		default:
			bs.failed++
			return quantResult{verdict: failed, counterexample: result, err: err}
		}
	}

	q := qs[idx]
	picks, _ := q.Sample(smp, n)

	switch q.Kind {
	case scenario.ForAll:
		sawHeld := false
		discarded := 0
		var heldWitness *scenario.BoundTestCase
		for _, p := range picks {
			if bs.exceeded() {
				break
			}
			if statCtx != nil {
				statCtx.Observe(q.Name, q.Index(p))
			}
			nb := bound.Bind(q.Name, p)
			child := exploreLevel(qs, idx+1, nb, leafNodes, smp, n, bs, collector, statCtx)
			discarded += child.discarded
			switch child.verdict {
			case failed:
				return quantResult{verdict: failed, counterexample: child.counterexample, err: child.err, discarded: discarded}
			case held:
				sawHeld = true
				if heldWitness == nil {
					// Any held sample's bindings (deeper existentials'
					// witness if one propagated, else this level's own
					// binding) are a valid instance demonstrating the
					// enclosing existential's witness — a ∀ has no single
					// representative sample of its own to report.
					if child.witness != nil {
						heldWitness = child.witness
					} else {
						heldWitness = nb
					}
				}
			}
		}
		if sawHeld {
			return quantResult{verdict: held, witness: heldWitness, discarded: discarded}
		}
		// Every sample of this ∀ was discarded, or an inner ∃ nested
		// beneath it never found a witness on any sample: the whole ∀
		// level is inconclusive, not a counterexample (mixed-nesting
		// ∃-exhaustion policy — an unwitnessed inner ∃ never manufactures
		// a counterexample for an outer ∀ on its own).
		return quantResult{verdict: inconclusive, discarded: discarded}

	case scenario.Exists:
		discarded := 0
		for _, p := range picks {
			if bs.exceeded() {
				break
			}
			if statCtx != nil {
				statCtx.Observe(q.Name, q.Index(p))
			}
			nb := bound.Bind(q.Name, p)
			child := exploreLevel(qs, idx+1, nb, leafNodes, smp, n, bs, collector, statCtx)
			discarded += child.discarded
			if child.verdict == held {
				witness := child.witness
				if witness == nil {
					witness = nb
				}
				return quantResult{verdict: held, witness: witness, discarded: discarded}
			}
			// failed or inconclusive: this witness candidate doesn't
			// work, try the next sample.
		}
		if idx == 0 {
			// A top-level ∃ with no witness is a genuine failure: there
			// is no enclosing ∀ for which this is merely "inconclusive".
			return quantResult{verdict: failed, counterexample: bound, discarded: discarded}
		}
		return quantResult{verdict: inconclusive, discarded: discarded}
	}
	panic(fmt.Sprintf("explorer: unknown quantifier kind %v", q.Kind))
}

// EvaluateFixed evaluates a scenario's leaf nodes against a fully fixed
// binding, with no quantifier resampling — the oracle the shrinker uses
// to check whether a shrink candidate still reproduces a failure.
func EvaluateFixed(nodes []scenario.Node, bound *scenario.BoundTestCase) (status OutcomeStatus, result *scenario.BoundTestCase, err error) {
	v, res, e := evalLeaf(nodes, bound, newRunCollector())
	switch v {
	case held:
		return Passed, res, nil
	case failed:
		return Failed, res, e
	default:
		return Inconclusive, res, nil
	}
}

func evalLeaf(nodes []scenario.Node, bound *scenario.BoundTestCase, collector *runCollector) (v verdict, result *scenario.BoundTestCase, err error) {
	defer func() {
		if r := recover(); r != nil {
			if r == scenario.ErrPrecondition {
				v, result, err = inconclusive, bound, nil
				return
			}
			v, result, err = failed, bound, &PropertyPanic{Value: r}
		}
	}()

	cur := bound
	allHeld := true
	for _, n := range nodes {
		switch node := n.(type) {
		case scenario.QuantifierNode:
			continue
		case scenario.GivenNode:
			cur = cur.Bind(node.Name, gen.NewPick[any](node.Value))
		case scenario.GivenFuncNode:
			cur = cur.Bind(node.Name, gen.NewPick[any](node.Factory(cur)))
		case scenario.WhenNode:
			if werr := node.Fn(cur); werr != nil {
				if errors.Is(werr, scenario.ErrPrecondition) {
					return inconclusive, cur, nil
				}
				return failed, cur, werr
			}
		case scenario.ClassifyNode:
			if node.Pred(cur) {
				collector.addLabel(node.Label)
			}
		case scenario.LabelNode:
			collector.addLabel(node.Fn(cur))
		case scenario.CollectNode:
			collector.addCollected(node.Fn(cur))
		case scenario.CoverNode:
			collector.addCover(node.Label, node.Minimum, node.Pred(cur))
		case scenario.CoverTableNode:
			collector.addCoverTable(node.Name, node.Minimum, node.Categories, cur)
		case scenario.ThenNode:
			ok, terr := node.Pred(cur)
			if terr != nil {
				if errors.Is(terr, scenario.ErrPrecondition) {
					return inconclusive, cur, nil
				}
				return failed, cur, terr
			}
			if !ok {
				allHeld = false
			}
		}
	}
	if !allHeld {
		return failed, cur, nil
	}
	return held, cur, nil
}
