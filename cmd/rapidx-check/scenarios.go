package main

import (
	"sort"
	"strings"

	"github.com/rapidx-dev/rapidx/gen"
	"github.com/rapidx-dev/rapidx/gen/domain"
	"github.com/rapidx-dev/rapidx/scenario"
)

// demoScenario pairs a built-in scenario with a short human-readable
// description, the shape the list/run subcommands present to a user.
type demoScenario struct {
	name        string
	description string
	build       func() *scenario.Scenario
}

// demoScenarios is the fixed registry cmd/rapidx-check exercises against
// check.Check. Each one exists to exhibit a specific engine behavior,
// not to test rapidx's own domain types against anything external.
var demoScenarios = []demoScenario{
	{
		name:        "reverse-twice",
		description: "reversing a slice of ints twice returns the original slice",
		build:       buildReverseTwice,
	},
	{
		name:        "sum-commutative",
		description: "integer addition is commutative over two arbitrary ints",
		build:       buildSumCommutative,
	},
	{
		name:        "cpf-mask-roundtrip",
		description: "unmasking a masked CPF returns the original digits",
		build:       buildCPFRoundtrip,
	},
	{
		name:        "exists-divisor",
		description: "every n in [2,50) has some divisor in [2,50) other than itself (mixed forall/exists)",
		build:       buildExistsDivisor,
	},
	{
		name:        "string-length-budget",
		description: "a generated alphanumeric string never exceeds its declared maximum length",
		build:       buildStringLengthBudget,
	},
}

func demoScenarioNames() []string {
	names := make([]string, 0, len(demoScenarios))
	for _, d := range demoScenarios {
		names = append(names, d.name)
	}
	sort.Strings(names)
	return names
}

func findDemoScenario(name string) (demoScenario, bool) {
	for _, d := range demoScenarios {
		if strings.EqualFold(d.name, name) {
			return d, true
		}
	}
	return demoScenario{}, false
}

func buildReverseTwice() *scenario.Scenario {
	return scenario.New().
		ForAll("xs", gen.Erase(gen.Array(gen.Integer(-100, 100), 0, 20))).
		Then(func(b *scenario.BoundTestCase) (bool, error) {
			xs := b.Value("xs").([]int)
			once := reverseInts(xs)
			twice := reverseInts(once)
			return intsEqual(xs, twice), nil
		})
}

func buildSumCommutative() *scenario.Scenario {
	return scenario.New().
		ForAll("a", gen.Erase(gen.Integer(-1000, 1000))).
		ForAll("b", gen.Erase(gen.Integer(-1000, 1000))).
		Then(func(bound *scenario.BoundTestCase) (bool, error) {
			a := bound.Value("a").(int)
			b := bound.Value("b").(int)
			return a+b == b+a, nil
		})
}

func buildCPFRoundtrip() *scenario.Scenario {
	return scenario.New().
		ForAll("cpf", gen.Erase(domain.CPF(false))).
		Then(func(b *scenario.BoundTestCase) (bool, error) {
			raw := b.Value("cpf").(string)
			masked := domain.MaskCPF(raw)
			return domain.UnmaskCPF(masked) == raw, nil
		})
}

func buildExistsDivisor() *scenario.Scenario {
	return scenario.New().
		ForAll("n", gen.Erase(gen.Integer(2, 49))).
		Exists("d", gen.Erase(gen.Integer(2, 49))).
		Then(func(b *scenario.BoundTestCase) (bool, error) {
			n := b.Value("n").(int)
			d := b.Value("d").(int)
			return d != n && n%d == 0, nil
		})
}

func buildStringLengthBudget() *scenario.Scenario {
	const maxLen = 16
	return scenario.New().
		ForAll("s", gen.Erase(gen.StringAlphaNum(0, maxLen))).
		Then(func(b *scenario.BoundTestCase) (bool, error) {
			return len(b.Value("s").(string)) <= maxLen, nil
		})
}

func reverseInts(xs []int) []int {
	out := make([]int, len(xs))
	for i, v := range xs {
		out[len(xs)-1-i] = v
	}
	return out
}

func intsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
