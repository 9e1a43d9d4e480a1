// Package config implements the strategy configuration surface:
// sampler pipeline toggles, sample/shrink sizes, and confidence-based
// termination settings, fluent to build and loadable from YAML.
// Grounded on the teacher's flag-parsing style (prop's -rapidx.seed/
// -rapidx.examples/-rapidx.maxshrink/-rapidx.shrink.strategy flags in
// lucaskalb-rapidx/prop/prop.go), generalized from package-level flags
// into an explicit, composable value passed to Check, and on
// dshills-dungo/agentshield's use of gopkg.in/yaml.v3 for config loading.
package config

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Strategy configures one Check/CheckWithConfidence call. Setters never
// panic; the first validation error encountered is recorded and
// surfaced from Validate, so a fluent chain can be built in one
// expression without a mid-chain panic derailing program flow.
type Strategy struct {
	SampleSize         int     `yaml:"sampleSize"`
	ShrinkSize         int     `yaml:"shrinkSize"`
	Shrinking          bool    `yaml:"shrinking"`
	Bias               bool    `yaml:"bias"`
	Dedup              bool    `yaml:"dedup"`
	Cache              bool    `yaml:"cache"`
	Confidence         float64 `yaml:"confidence"`
	MinConfidence      float64 `yaml:"minConfidence"`
	PassRateThreshold  float64 `yaml:"passRateThreshold"`
	MaxIterations      int     `yaml:"maxIterations"`
	ShrinkOrder        string  `yaml:"shrinkOrder"`
	// SampleDistribution selects how SampleSize is partitioned across
	// nested quantifier depth: "nested-loop" (default) draws
	// floor(SampleSize^(1/depth)) samples at every level, so a
	// d-level scenario performs roughly SampleSize leaf evaluations in
	// total rather than SampleSize^d; "flat" draws SampleSize samples
	// at every level regardless of nesting.
	SampleDistribution string `yaml:"sampleDistribution"`
	// Seed pins the PRNG's seed for reproducing a run. Zero (the zero
	// value) means "unseeded": Check draws a fresh seed from
	// crypto/rand and reports it on Result.Seed instead.
	Seed uint32 `yaml:"seed"`

	err           error
	confidenceSet bool
}

// DefaultStrategy returns the baseline strategy every Check call starts
// from: 1000 samples, shrinking on with up to 500 shrink steps, bias and
// dedup on, cache off, round-robin shrink order, 99.9% pass rate target.
func DefaultStrategy() *Strategy {
	return &Strategy{
		SampleSize:         1000,
		ShrinkSize:         500,
		Shrinking:          true,
		Bias:               true,
		Dedup:              true,
		Cache:              false,
		Confidence:         0.99,
		MinConfidence:      0,
		PassRateThreshold:  0.999,
		MaxIterations:      10_000,
		ShrinkOrder:        "round-robin",
		SampleDistribution: "nested-loop",
	}
}

// NewStrategy is an alias for DefaultStrategy, read more naturally at a
// fluent chain's head: config.NewStrategy().WithSampleSize(500)...
func NewStrategy() *Strategy { return DefaultStrategy() }

func (s *Strategy) fail(err error) *Strategy {
	if s.err == nil {
		s.err = err
	}
	return s
}

// WithSampleSize sets the sample budget, divided across quantifier
// levels per SampleDistribution.
func (s *Strategy) WithSampleSize(n int) *Strategy {
	if n <= 0 {
		return s.fail(fmt.Errorf("config: sample size must be positive, got %d", n))
	}
	s.SampleSize = n
	return s
}

// WithShrinking toggles shrinking and, when enabled, sets the maximum
// number of shrink candidates tried over the whole shrink pass.
func (s *Strategy) WithShrinking(enabled bool, shrinkSize int) *Strategy {
	s.Shrinking = enabled
	if !enabled {
		return s
	}
	if shrinkSize <= 0 {
		return s.fail(fmt.Errorf("config: shrink size must be positive, got %d", shrinkSize))
	}
	s.ShrinkSize = shrinkSize
	return s
}

// WithBias toggles the biased sampler layer (corner cases first).
func (s *Strategy) WithBias(enabled bool) *Strategy {
	s.Bias = enabled
	return s
}

// WithoutReplacement enables the dedup sampler layer (no repeated
// values within a single batch).
func (s *Strategy) WithoutReplacement() *Strategy {
	s.Dedup = true
	return s
}

// UsingCache toggles the cached sampler layer.
func (s *Strategy) UsingCache(enabled bool) *Strategy {
	s.Cache = enabled
	return s
}

// WithConfidence sets tau, the confidence target a run stops early at
// once reached (C >= tau), in (0,1). This is distinct from
// WithPassRateThreshold's theta: tau gates termination, theta is the
// pass rate the posterior confidence is computed against.
func (s *Strategy) WithConfidence(tau float64) *Strategy {
	if tau <= 0 || tau >= 1 {
		return s.fail(fmt.Errorf("config: confidence target must be in (0,1), got %v", tau))
	}
	s.Confidence = tau
	s.confidenceSet = true
	return s
}

// ConfidenceEnabled reports whether WithConfidence was called, enabling
// confidence-driven early termination for a plain Check call (a
// CheckWithConfidence call always enables it via its own tau argument,
// regardless of this flag).
func (s *Strategy) ConfidenceEnabled() bool { return s.confidenceSet }

// WithSampleDistribution selects the budget-partition mode ("nested-loop"
// or "flat") Explore uses to divide SampleSize across quantifier depth.
func (s *Strategy) WithSampleDistribution(dist string) *Strategy {
	switch dist {
	case "nested-loop", "flat":
		s.SampleDistribution = dist
	default:
		return s.fail(fmt.Errorf("config: sample distribution must be \"nested-loop\" or \"flat\", got %q", dist))
	}
	return s
}

// WithSeed pins the PRNG seed a run uses, for reproducing a prior run
// exactly (Result.Seed always reports the seed actually used, pinned or
// not).
func (s *Strategy) WithSeed(seed uint32) *Strategy {
	s.Seed = seed
	return s
}

// WithMinConfidence sets how confident the posterior must be in tau
// before a confidence-driven run stops early, in (0,1).
func (s *Strategy) WithMinConfidence(minConfidence float64) *Strategy {
	if minConfidence <= 0 || minConfidence >= 1 {
		return s.fail(fmt.Errorf("config: min confidence must be in (0,1), got %v", minConfidence))
	}
	s.MinConfidence = minConfidence
	return s
}

// WithPassRateThreshold sets theta, the pass rate the posterior
// confidence is computed against, in (0,1].
func (s *Strategy) WithPassRateThreshold(threshold float64) *Strategy {
	if threshold <= 0 || threshold > 1 {
		return s.fail(fmt.Errorf("config: pass rate threshold must be in (0,1], got %v", threshold))
	}
	s.PassRateThreshold = threshold
	return s
}

// WithMaxIterations bounds the total number of leaf evaluations a run
// may perform.
func (s *Strategy) WithMaxIterations(n int) *Strategy {
	if n <= 0 {
		return s.fail(fmt.Errorf("config: max iterations must be positive, got %d", n))
	}
	s.MaxIterations = n
	return s
}

// Validate returns the first setter error recorded, if any, or a
// structural error found at call time.
func (s *Strategy) Validate() error {
	if s.err != nil {
		return s.err
	}
	if s.SampleSize <= 0 {
		return fmt.Errorf("config: sample size must be positive")
	}
	if s.Shrinking && s.ShrinkSize <= 0 {
		return fmt.Errorf("config: shrink size must be positive when shrinking is enabled")
	}
	if s.PassRateThreshold <= 0 || s.PassRateThreshold > 1 {
		return fmt.Errorf("config: pass rate threshold out of range (0,1]")
	}
	if s.MaxIterations <= 0 {
		return fmt.Errorf("config: max iterations must be positive")
	}
	switch s.SampleDistribution {
	case "", "nested-loop", "flat":
	default:
		return fmt.Errorf("config: sample distribution must be \"nested-loop\" or \"flat\", got %q", s.SampleDistribution)
	}
	return nil
}

// FromYAML loads a Strategy from YAML, starting from DefaultStrategy's
// values so a config file only needs to override what it cares about.
func FromYAML(r io.Reader) (*Strategy, error) {
	s := DefaultStrategy()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(s); err != nil && err != io.EOF {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
