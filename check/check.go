// Package check assembles scenario, explorer, shrinker, confidence, and
// stats into the library's top-level entry point: Check and
// CheckWithConfidence, each returning a Result summarizing what
// happened. Grounded on the call shape of the teacher's
// prop.ForAll(t, gen, predicate) (lucaskalb-rapidx/prop/prop.go), scaled
// up from "drive one generator against testing.T" to "compile and run
// an arbitrarily nested scenario against a Strategy".
package check

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/rapidx-dev/rapidx/config"
	"github.com/rapidx-dev/rapidx/confidence"
	"github.com/rapidx-dev/rapidx/explorer"
	"github.com/rapidx-dev/rapidx/internal/prng"
	"github.com/rapidx-dev/rapidx/internal/rxlog"
	"github.com/rapidx-dev/rapidx/internal/sampler"
	"github.com/rapidx-dev/rapidx/scenario"
	"github.com/rapidx-dev/rapidx/shrinker"
	"github.com/rapidx-dev/rapidx/stats"
)

// ErrPrecondition re-exports scenario.ErrPrecondition: the sentinel a
// When/Then step returns (or panics with, via Pre) to discard a branch.
var ErrPrecondition = scenario.ErrPrecondition

// Pre re-exports scenario.Pre for callers who only import check.
func Pre(cond bool) { scenario.Pre(cond) }

// PropertyPanic re-exports explorer.PropertyPanic: the error type a
// recovered Then/When panic is wrapped in.
type PropertyPanic = explorer.PropertyPanic

// Interval is a two-sided confidence interval over a proportion.
type Interval struct {
	Lo         float64
	Hi         float64
	Confidence float64
}

// ArbitraryStat mirrors stats.Summary for one named quantifier.
type ArbitraryStat struct {
	Count    int
	Mean     float64
	Variance float64
	P50      float64
	P90      float64
	P99      float64
}

// CoverageResult reports one Cover/CoverTable category's outcome.
type CoverageResult struct {
	Hits      int
	Total     int
	Minimum   float64
	Satisfied bool
}

// TimeBreakdown reports wall-clock time spent exploring vs. shrinking.
type TimeBreakdown struct {
	Explore time.Duration
	Shrink  time.Duration
	Total   time.Duration
}

// Statistics is the full statistical picture of one Check/
// CheckWithConfidence run.
type Statistics struct {
	LabelCounts    map[string]int
	Collected      []any
	Coverage       map[string]CoverageResult
	CoverageTables map[string]map[string]CoverageResult
	Confidence     Interval
	Time           TimeBreakdown
	Arbitraries    map[string]ArbitraryStat
	Events         map[string]int
}

// ShrinkReport describes a counterexample minimization pass.
type ShrinkReport struct {
	Original  map[string]any
	Minimized map[string]any
	Steps     int
}

// Result is Check/CheckWithConfidence's return value.
type Result struct {
	Passed bool
	// Seed is the PRNG seed this run used, always populated — pinned from
	// the strategy's Seed field when non-zero, otherwise drawn fresh from
	// crypto/rand and reported here so the run can be replayed exactly.
	Seed           uint32
	TestsRun       int
	Discarded      int
	Counterexample map[string]any
	Witness        map[string]any
	Shrunk         *ShrinkReport
	Statistics     Statistics
	// RawStats is the underlying statistics context the run accumulated
	// into, exposed for callers that want to mirror it into their own
	// metrics sink (e.g. stats/promexport) rather than re-derive it from
	// Statistics.
	RawStats *stats.Context
	Err      error
}

// AsTestingT adapts a Result into a *testing.T failure, for embedding a
// Check call inside a conventional Go test function.
func (r Result) AsTestingT(t testingT) {
	t.Helper()
	if r.Passed {
		return
	}
	if r.Shrunk != nil {
		t.Fatalf("rapidx: property failed\n  minimized counterexample: %v\n  (original: %v)\n  tests run: %d\n  cause: %v",
			r.Shrunk.Minimized, r.Shrunk.Original, r.TestsRun, r.Err)
		return
	}
	t.Fatalf("rapidx: property failed\n  counterexample: %v\n  tests run: %d\n  cause: %v", r.Counterexample, r.TestsRun, r.Err)
}

// testingT is the subset of *testing.T AsTestingT needs, so check does
// not import the testing package into non-test builds.
type testingT interface {
	Helper()
	Fatalf(format string, args ...any)
}

// Check runs sc against strat (or config.DefaultStrategy if nil),
// shrinking any counterexample found, and returns a full Result.
func Check(sc *scenario.Scenario, strat *config.Strategy) (Result, error) {
	return runCheck(sc, strat, nil)
}

// CheckWithConfidence runs sc with tau as the confidence target (the
// Bayesian posterior confidence C a run stops early once reaching,
// §4.7's withConfidence(tau)). tau never overrides strat's own
// PassRateThreshold (theta, the pass rate the posterior is computed
// against) — the two are tracked independently.
func CheckWithConfidence(sc *scenario.Scenario, tau float64, strat *config.Strategy) (Result, error) {
	return runCheck(sc, strat, &tau)
}

func runCheck(sc *scenario.Scenario, strat *config.Strategy, tauOverride *float64) (Result, error) {
	start := time.Now()
	if strat == nil {
		strat = config.DefaultStrategy()
	}
	if err := strat.Validate(); err != nil {
		return Result{}, fmt.Errorf("check: invalid strategy: %w", err)
	}

	es, err := scenario.Compile(sc)
	if err != nil {
		return Result{}, fmt.Errorf("check: compile scenario: %w", err)
	}

	statCtx := stats.NewContext()
	logger := rxlog.Default()

	// theta (PassRateThreshold) and tau (the confidence-termination
	// target) are two distinct knobs per §4.7: theta is never overwritten
	// by tau here, unlike the earlier, conflated implementation.
	theta := strat.PassRateThreshold
	tau := strat.Confidence
	tauEnabled := strat.ConfidenceEnabled()
	if tauOverride != nil {
		tau = *tauOverride
		tauEnabled = true
	}
	// MinConfidence is a floor over whatever tau withConfidence or
	// CheckWithConfidence asked for, so a low target never fires the
	// confidence-driven early stop before the floor is cleared. It only
	// raises that early-stop target: a run still ends when MaxIterations
	// or its sampled batches run out, whatever confidence was reached,
	// and it has no effect when confidence-driven stopping is not enabled.
	if strat.MinConfidence > tau {
		tau = strat.MinConfidence
	}

	exploreStart := time.Now()
	seed := strat.Seed
	if seed == 0 {
		seed = randomSeed()
	}
	r := prng.New(seed)
	smp := sampler.Build(r, strat.Dedup, strat.Bias, strat.Cache)
	budget := explorer.Budget{MaxTests: strat.MaxIterations}
	if tauEnabled {
		budget.ShouldStop = func(passed, failed int) bool {
			if passed+failed == 0 {
				return false
			}
			return confidence.Evaluate(passed, failed, theta, tau).ShouldStop
		}
	}
	depth := len(es.Quantifiers)
	perLevelN := explorer.PartitionSampleSize(strat.SampleSize, depth, sampleDistributionFromString(strat.SampleDistribution))
	out := explorer.Explore(es, smp, perLevelN, budget, statCtx)
	exploreElapsed := time.Since(exploreStart)

	decision := confidence.Evaluate(out.PassedLeaves, out.FailedLeaves, theta, tau)

	res := Result{
		Seed:           seed,
		TestsRun:       out.TestsRun,
		Discarded:      out.Discarded,
		Counterexample: out.Counterexample,
		Witness:        out.Witness,
		Err:            out.Err,
	}

	var shrinkElapsed time.Duration
	switch out.Status {
	case explorer.Passed:
		res.Passed = true
		if strat.Shrinking && out.WitnessPicks != nil {
			shrinkStart := time.Now()
			order := shrinkOrderFromString(strat.ShrinkOrder)
			oracle := shrinker.NewWitnessOracle(es)
			sr := shrinker.ShrinkWitness(es, oracle, out.WitnessPicks, order, strat.ShrinkSize)
			shrinkElapsed = time.Since(shrinkStart)
			res.Shrunk = &ShrinkReport{Original: out.Witness, Minimized: sr.Example, Steps: sr.Steps}
			res.Witness = sr.Example
			statCtx.RecordEvent("shrink-step")
			logger.Info().Int("steps", sr.Steps).Msg("witness minimized")
		}
	case explorer.Inconclusive:
		res.Passed = false
		if res.Err == nil {
			res.Err = fmt.Errorf("check: scenario never produced a conclusive branch (every branch discarded, or budget exhausted)")
		}
		logger.Warn().Int("discarded", out.Discarded).Msg("scenario ran to inconclusive, no counterexample found")
	case explorer.Failed:
		res.Passed = false
		if _, ok := res.Err.(*explorer.PropertyPanic); ok {
			logger.Error().Err(res.Err).Msg("property panicked")
		}
		if strat.Shrinking && out.CounterexamplePicks != nil {
			shrinkStart := time.Now()
			order := shrinkOrderFromString(strat.ShrinkOrder)
			oracle := shrinker.NewOracle(es)
			sr := shrinker.Shrink(es, oracle, out.CounterexamplePicks, order, strat.ShrinkSize)
			shrinkElapsed = time.Since(shrinkStart)
			res.Shrunk = &ShrinkReport{Original: out.Counterexample, Minimized: sr.Example, Steps: sr.Steps}
			statCtx.RecordEvent("shrink-step")
			logger.Info().Int("steps", sr.Steps).Msg("counterexample minimized")
		}
	}

	res.Statistics = Statistics{
		LabelCounts:    out.LabelCounts,
		Collected:      out.Collected,
		Coverage:       coverageFrom(out.CoverResults),
		CoverageTables: coverageTablesFrom(out.CoverTableResults),
		Confidence:     Interval{Lo: decision.WilsonLo, Hi: decision.WilsonHi, Confidence: decision.Confidence},
		Time: TimeBreakdown{
			Explore: exploreElapsed,
			Shrink:  shrinkElapsed,
			Total:   time.Since(start),
		},
		Arbitraries: arbitraryStatsFrom(statCtx),
		Events:      statCtx.Events(),
	}
	res.RawStats = statCtx
	return res, nil
}

// randomSeed draws a fresh 32-bit seed from crypto/rand for runs that
// didn't pin one via Strategy.Seed, mirroring the teacher's
// Config.effectiveSeed fallback (prop/prop.go) but switched from
// time.Now().UnixNano(), which can collide across rapid successive calls
// in the same nanosecond, to crypto/rand.
func randomSeed() uint32 {
	var buf [4]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		// crypto/rand failing is not something a caller can act on; fall
		// back to a fixed seed rather than leaving the run unseeded.
		return 1
	}
	return binary.BigEndian.Uint32(buf[:])
}

func sampleDistributionFromString(s string) explorer.Distribution {
	if s == "flat" {
		return explorer.Flat
	}
	return explorer.NestedLoop
}

func coverageFrom(in map[string]explorer.CoverResult) map[string]CoverageResult {
	if in == nil {
		return nil
	}
	out := make(map[string]CoverageResult, len(in))
	for k, v := range in {
		out[k] = CoverageResult{Hits: v.Hits, Total: v.Total, Minimum: v.Minimum, Satisfied: v.Satisfied()}
	}
	return out
}

func coverageTablesFrom(in map[string]map[string]explorer.CoverResult) map[string]map[string]CoverageResult {
	if in == nil {
		return nil
	}
	out := make(map[string]map[string]CoverageResult, len(in))
	for name, cats := range in {
		row := make(map[string]CoverageResult, len(cats))
		for cat, v := range cats {
			row[cat] = CoverageResult{Hits: v.Hits, Total: v.Total, Minimum: v.Minimum, Satisfied: v.Satisfied()}
		}
		out[name] = row
	}
	return out
}

func arbitraryStatsFrom(statCtx *stats.Context) map[string]ArbitraryStat {
	snap := statCtx.Snapshot()
	if len(snap) == 0 {
		return nil
	}
	out := make(map[string]ArbitraryStat, len(snap))
	for name, s := range snap {
		out[name] = ArbitraryStat{Count: s.Count, Mean: s.Mean, Variance: s.Variance, P50: s.P50, P90: s.P90, P99: s.P99}
	}
	return out
}

func shrinkOrderFromString(s string) shrinker.Order {
	switch s {
	case "sequential-exhaustive":
		return shrinker.SequentialExhaustive
	case "delta-debugging":
		return shrinker.DeltaDebugging
	default:
		return shrinker.RoundRobin
	}
}
