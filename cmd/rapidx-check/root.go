package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	strategyPath string
	sampleSize   int
	seed         uint32
	confidence   bool
	tau          float64
	metricsAddr  string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "rapidx-check",
	Short: "rapidx-check — run rapidx's built-in demo scenarios",
	Long: `rapidx-check drives check.Check/check.CheckWithConfidence end to end
against a handful of built-in scenarios, the same way an application
would wire the rapidx engine into its own test or CI tooling.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&strategyPath, "strategy", "", "path to a YAML strategy file (default: config.DefaultStrategy)")
	rootCmd.PersistentFlags().IntVar(&sampleSize, "sample-size", 0, "override the strategy's sample size (0: use strategy's own value)")
	rootCmd.PersistentFlags().Uint32Var(&seed, "seed", 0, "pin the PRNG seed for a reproducible run (0: draw one from crypto/rand and report it)")
	rootCmd.PersistentFlags().BoolVar(&confidence, "confidence", false, "use CheckWithConfidence instead of Check")
	rootCmd.PersistentFlags().Float64Var(&tau, "tau", 0.999, "confidence target for --confidence runs (the posterior confidence C to reach before stopping early; distinct from the strategy's own pass-rate threshold)")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "if set, serve Prometheus metrics on this address (e.g. :9090) after the run completes")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level instead of info")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
