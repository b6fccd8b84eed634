package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"typeforge/internal/logging"
)

var (
	synthMaxCost    float64
	synthMaxResults int
)

var synthesizeCmd = &cobra.Command{
	Use:   "synthesize <source-type> <goal-type>",
	Short: "Find candidate transformation paths from a source type to a goal type",
	Args:  cobra.ExactArgs(2),
	RunE:  runSynthesize,
}

func runSynthesize(cmd *cobra.Command, args []string) error {
	src, goal := args[0], args[1]

	e, err := buildEngine()
	if err != nil {
		return err
	}

	results := e.Synthesize(src, goal, synthMaxCost, synthMaxResults)
	if len(results) == 0 {
		logging.Synth("no candidate paths found: %s -> %s", src, goal)
		fmt.Printf("no path found from %s to %s within cost %.2f\n", src, goal, synthMaxCost)
		return nil
	}

	for i, r := range results {
		fmt.Printf("%d. cost=%.2f confidence=%.2f steps=%d\n", i+1, r.Cost, r.Confidence, len(r.Path))
		for _, fn := range r.Path {
			fmt.Printf("     %s : %v -> %s\n", fn.ID, fn.Domain, fn.Codomain)
		}
		fmt.Printf("     proof: %s\n", r.Proof.Compact())
	}
	return nil
}

func init() {
	synthesizeCmd.Flags().Float64Var(&synthMaxCost, "max-cost", 100, "Maximum total path cost")
	synthesizeCmd.Flags().IntVar(&synthMaxResults, "max-results", 5, "Maximum number of candidate paths to return")
}
