// Package shrinker implements counterexample minimization: starting
// from a failing binding, it repeatedly substitutes a smaller candidate
// for one quantifier at a time and re-verifies the property with no
// resampling, keeping the substitution whenever the property still
// fails. This reuses explorer.EvaluateFixed as its oracle (spec.md
// §4.6's "the shrinker re-runs the property, not its own copy of it").
//
// There is no teacher analogue for a quantifier-aware shrinker
// (lucaskalb-rapidx's closures only ever minimize a single value), so
// this package's loop structure is original; it builds entirely on the
// per-arbitrary shrink ladders already established in gen.
package shrinker

import (
	"github.com/rapidx-dev/rapidx/explorer"
	"github.com/rapidx-dev/rapidx/gen"
	"github.com/rapidx-dev/rapidx/scenario"
)

// Order selects how quantifiers and their candidates are traversed.
type Order int

const (
	// RoundRobin (the default) cycles through every quantifier, applying
	// at most one successful substitution per quantifier per round, until
	// a full round produces no improvement.
	RoundRobin Order = iota
	// SequentialExhaustive fully minimizes one quantifier (repeating
	// until it stops improving) before moving to the next.
	SequentialExhaustive
	// DeltaDebugging reorders each quantifier's candidate list to try a
	// large jump (the list's midpoint) before falling back to a linear
	// scan, trading shrink quality for fewer oracle calls.
	DeltaDebugging
)

// OrderStrategy reorders or filters a quantifier's raw shrink candidate
// list before the shrinker tries its entries one by one.
type OrderStrategy interface {
	Candidates(raw []gen.Pick[any]) []gen.Pick[any]
}

type identityStrategy struct{}

func (identityStrategy) Candidates(raw []gen.Pick[any]) []gen.Pick[any] { return raw }

// DeltaDebuggingStrategy implements OrderStrategy for Order.
type DeltaDebuggingStrategy struct{}

func (DeltaDebuggingStrategy) Candidates(raw []gen.Pick[any]) []gen.Pick[any] {
	if len(raw) <= 2 {
		return raw
	}
	mid := len(raw) / 2
	out := make([]gen.Pick[any], 0, len(raw)+1)
	out = append(out, raw[mid])
	out = append(out, raw...)
	return out
}

func strategyFor(o Order) OrderStrategy {
	if o == DeltaDebugging {
		return DeltaDebuggingStrategy{}
	}
	return identityStrategy{}
}

// Oracle reports whether a fully fixed binding should be accepted as the
// new current candidate: a counterexample oracle accepts while the
// property still fails, a witness oracle accepts while it still holds.
// NewOracle/NewWitnessOracle build the two modes from a compiled
// scenario; Shrink is agnostic to which one it's given.
type Oracle func(picks map[string]gen.Pick[any]) (accept bool, err error)

func evaluate(es scenario.ExecutableScenario, picks map[string]gen.Pick[any]) (explorer.OutcomeStatus, error) {
	bound := scenario.NewBoundTestCase()
	for _, q := range es.Quantifiers {
		p, ok := picks[q.Name]
		if !ok {
			continue
		}
		bound = bound.Bind(q.Name, p)
	}
	status, _, err := explorer.EvaluateFixed(es.Nodes, bound)
	return status, err
}

// NewOracle builds a counterexample oracle: a shrink candidate is
// accepted as long as it still reproduces a failure. Used to minimize a
// ∀'s counterexample.
func NewOracle(es scenario.ExecutableScenario) Oracle {
	return func(picks map[string]gen.Pick[any]) (bool, error) {
		status, err := evaluate(es, picks)
		return status == explorer.Failed, err
	}
}

// NewWitnessOracle builds a witness oracle: a shrink candidate is
// accepted as long as the scenario still passes. Used to minimize an
// ∃'s witness down to the simplest value that still satisfies the
// property (spec.md §4.6's witness mode).
func NewWitnessOracle(es scenario.ExecutableScenario) Oracle {
	return func(picks map[string]gen.Pick[any]) (bool, error) {
		status, err := evaluate(es, picks)
		return status == explorer.Passed, err
	}
}

// Result is the minimized binding and how many shrink candidates were
// considered (each costing at most one oracle call).
type Result struct {
	Picks   map[string]gen.Pick[any]
	Example map[string]any
	Steps   int
}

const maxCandidatesPerQuantifierStep = 32

// Shrink minimizes initial (a failing binding) against oracle, trying at
// most maxSteps oracle calls in total. Every quantifier present in
// initial is a shrink target: a recorded counterexample is one full,
// already-failing binding, so minimizing any of its parts while holding
// the rest fixed and re-verifying failure is sound regardless of
// whether that part came from a ∀ or a ∃.
func Shrink(es scenario.ExecutableScenario, oracle Oracle, initial map[string]gen.Pick[any], order Order, maxSteps int) Result {
	return shrink(es, oracle, initial, order, maxSteps, nil)
}

// ShrinkWitness minimizes an existential witness against oracle, but
// only ever substitutes candidates for ∃-bound names. A witness binding
// also carries along whatever ∀-bound values the enclosing universal
// happened to sample on the branch that produced it — those aren't the
// existential's own witness, just incidental supporting evidence, and
// shrinking them can make an unrelated ∃ vacuously satisfied (e.g.
// forcing a companion ∀ sample to 0 can make any witness value pass the
// oracle's re-check). They are carried through to Example unchanged.
func ShrinkWitness(es scenario.ExecutableScenario, oracle Oracle, initial map[string]gen.Pick[any], order Order, maxSteps int) Result {
	eligible := func(k scenario.QuantifierKind) bool { return k == scenario.Exists }
	return shrink(es, oracle, initial, order, maxSteps, eligible)
}

func shrink(es scenario.ExecutableScenario, oracle Oracle, initial map[string]gen.Pick[any], order Order, maxSteps int, eligible func(scenario.QuantifierKind) bool) Result {
	current := clonePicks(initial)
	allNames := make([]string, len(es.Quantifiers))
	var shrinkNames []string
	byName := make(map[string]scenario.CompiledQuantifier, len(es.Quantifiers))
	for i, q := range es.Quantifiers {
		allNames[i] = q.Name
		byName[q.Name] = q
		if eligible == nil || eligible(q.Kind) {
			shrinkNames = append(shrinkNames, q.Name)
		}
	}
	strat := strategyFor(order)
	stepsLeft := maxSteps

	tryOnce := func(q scenario.CompiledQuantifier) bool {
		origin, ok := current[q.Name]
		if !ok {
			return false
		}
		raw := q.Shrink(origin, maxCandidatesPerQuantifierStep)
		for _, cand := range strat.Candidates(raw) {
			if stepsLeft <= 0 {
				return false
			}
			stepsLeft--
			if !q.IsShrunken(cand, origin) {
				continue
			}
			trial := clonePicks(current)
			trial[q.Name] = cand
			if accept, _ := oracle(trial); accept {
				current = trial
				return true
			}
		}
		return false
	}

	if order == SequentialExhaustive {
		for _, name := range shrinkNames {
			for stepsLeft > 0 && tryOnce(byName[name]) {
			}
		}
	} else {
		for stepsLeft > 0 {
			improvedAny := false
			for _, name := range shrinkNames {
				if stepsLeft <= 0 {
					break
				}
				if tryOnce(byName[name]) {
					improvedAny = true
				}
			}
			if !improvedAny {
				break
			}
		}
	}

	bound := scenario.NewBoundTestCase()
	for _, name := range allNames {
		bound = bound.Bind(name, current[name])
	}
	return Result{Picks: current, Example: bound.Example(), Steps: maxSteps - stepsLeft}
}

func clonePicks(m map[string]gen.Pick[any]) map[string]gen.Pick[any] {
	out := make(map[string]gen.Pick[any], len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
