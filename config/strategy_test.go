package config_test

import (
	"strings"
	"testing"

	"github.com/rapidx-dev/rapidx/config"
	"github.com/rapidx-dev/rapidx/quick"
)

func TestDefaultStrategyValidates(t *testing.T) {
	if err := config.DefaultStrategy().Validate(); err != nil {
		t.Fatalf("default strategy should validate, got: %v", err)
	}
}

func TestFluentSettersRecordFirstError(t *testing.T) {
	strat := config.NewStrategy().
		WithSampleSize(-1).
		WithSampleSize(10) // the first failure should stick, not the second call

	if err := strat.Validate(); err == nil {
		t.Fatalf("expected a validation error from the negative sample size")
	}
}

func TestWithConfidenceRejectsOutOfRangeValues(t *testing.T) {
	strat := config.NewStrategy().WithConfidence(1.5)
	if err := strat.Validate(); err == nil {
		t.Fatalf("expected an error for a confidence target outside (0,1)")
	}
}

func TestFromYAMLOverridesOnlyGivenFields(t *testing.T) {
	yamlDoc := `
sampleSize: 250
bias: false
`
	strat, err := config.FromYAML(strings.NewReader(yamlDoc))
	if err != nil {
		t.Fatalf("FromYAML: %v", err)
	}
	quick.Equal(t, strat.SampleSize, 250)
	quick.Equal(t, strat.Bias, false)
	// Fields the YAML doc didn't mention keep DefaultStrategy's values.
	quick.Equal(t, strat.Dedup, config.DefaultStrategy().Dedup)
	quick.Equal(t, strat.ShrinkOrder, config.DefaultStrategy().ShrinkOrder)
}

func TestFromYAMLRejectsInvalidOverride(t *testing.T) {
	yamlDoc := `sampleSize: -5`
	if _, err := config.FromYAML(strings.NewReader(yamlDoc)); err == nil {
		t.Fatalf("expected Validate to reject a negative sampleSize loaded from YAML")
	}
}
