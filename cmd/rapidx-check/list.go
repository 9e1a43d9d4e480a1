package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "list the built-in demo scenarios",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, d := range demoScenarios {
			fmt.Printf("%-24s %s\n", d.name, d.description)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
