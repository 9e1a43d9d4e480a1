package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rapidx-dev/rapidx/check"
	"github.com/rapidx-dev/rapidx/config"
	"github.com/rapidx-dev/rapidx/internal/rxlog"
	"github.com/rapidx-dev/rapidx/stats/promexport"
)

var runCmd = &cobra.Command{
	Use:   "run [scenario ...]",
	Short: "run one or more built-in demo scenarios (default: all of them)",
	RunE:  runCommand,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runCommand(cmd *cobra.Command, args []string) error {
	if verbose {
		rxlog.SetLevel(zerolog.DebugLevel)
	}

	strat, err := loadStrategy()
	if err != nil {
		return err
	}

	targets := demoScenarios
	if len(args) > 0 {
		targets = nil
		for _, name := range args {
			d, ok := findDemoScenario(name)
			if !ok {
				return fmt.Errorf("rapidx-check: unknown scenario %q (see: rapidx-check list)", name)
			}
			targets = append(targets, d)
		}
	}

	exporter := promexport.NewExporter("rapidx_check")
	anyFailed := false

	for _, d := range targets {
		sc := d.build()
		var res check.Result
		var runErr error
		if confidence {
			res, runErr = check.CheckWithConfidence(sc, tau, strat)
		} else {
			res, runErr = check.Check(sc, strat)
		}
		if runErr != nil {
			return fmt.Errorf("rapidx-check: %s: %w", d.name, runErr)
		}
		printResult(d, res)
		if res.RawStats != nil {
			exporter.Update(res.RawStats)
		}
		if !res.Passed {
			anyFailed = true
		}
	}

	if metricsAddr != "" {
		if err := serveMetrics(exporter); err != nil {
			return err
		}
	}

	if anyFailed {
		os.Exit(1)
	}
	return nil
}

func loadStrategy() (*config.Strategy, error) {
	var strat *config.Strategy
	if strategyPath != "" {
		f, err := os.Open(strategyPath)
		if err != nil {
			return nil, fmt.Errorf("rapidx-check: open strategy file: %w", err)
		}
		defer f.Close()
		strat, err = config.FromYAML(f)
		if err != nil {
			return nil, err
		}
	} else {
		strat = config.DefaultStrategy()
	}
	if sampleSize > 0 {
		strat = strat.WithSampleSize(sampleSize)
	}
	if seed != 0 {
		strat = strat.WithSeed(seed)
	}
	if err := strat.Validate(); err != nil {
		return nil, fmt.Errorf("rapidx-check: invalid strategy: %w", err)
	}
	return strat, nil
}

func printResult(d demoScenario, res check.Result) {
	status := "PASS"
	if !res.Passed {
		status = "FAIL"
	}
	fmt.Printf("[%s] %-24s tests=%d discarded=%d seed=%d\n", status, d.name, res.TestsRun, res.Discarded, res.Seed)
	if res.Passed {
		return
	}
	if res.Shrunk != nil {
		fmt.Printf("       minimized counterexample: %v (original: %v, %d shrink steps)\n",
			res.Shrunk.Minimized, res.Shrunk.Original, res.Shrunk.Steps)
	} else if res.Counterexample != nil {
		fmt.Printf("       counterexample: %v\n", res.Counterexample)
	}
	if res.Err != nil {
		fmt.Printf("       cause: %v\n", res.Err)
	}
}

// serveMetrics blocks forever serving /metrics, the way a long-running
// check daemon would expose its statistics rather than a one-shot CLI
// run — here used for the demo's own terminal to stay attached when a
// human is watching it (isTerminal), and to print the listening address
// either way so a script invoking this non-interactively still knows
// where to scrape.
func serveMetrics(exporter *promexport.Exporter) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(exporter.Collectors()...)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	fmt.Printf("serving metrics on %s/metrics", metricsAddr)
	if term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Print(" (press Ctrl-C to exit)")
	}
	fmt.Println()
	return http.ListenAndServe(metricsAddr, mux)
}
