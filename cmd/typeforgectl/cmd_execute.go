package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"typeforge/internal/logging"
	"typeforge/internal/prov"
)

var (
	execMaxCost    float64
	execProvenance bool
)

var executeCmd = &cobra.Command{
	Use:   "execute <source-type> <goal-type> <input>",
	Short: "Synthesize a path from source to goal and execute it against an input value",
	Args:  cobra.ExactArgs(3),
	RunE:  runExecute,
}

func runExecute(cmd *cobra.Command, args []string) error {
	src, goal := args[0], args[1]
	input, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("invalid input value %q: %w", args[2], err)
	}

	e, err := buildEngine()
	if err != nil {
		return err
	}

	result, err := e.SynthesizeAndExecute(src, goal, execMaxCost, input, execProvenance || cfg.Provenance.Enabled)
	if err != nil {
		logging.ExecError("execute failed: %v", err)
		return err
	}

	fmt.Printf("result: %v\n", result.Result)
	fmt.Printf("cost: %.2f\n", result.TotalCost)
	fmt.Printf("proof: %s\n", result.Proof)

	if result.Graph != nil {
		out, encErr := renderProvenance(result.Graph)
		if encErr != nil {
			return encErr
		}
		fmt.Println("provenance:")
		fmt.Println(out)
	}
	return nil
}

func renderProvenance(g *prov.Graph) (string, error) {
	switch cfg.Provenance.Format {
	case "turtle":
		return g.ToTurtle(), nil
	case "jsonld":
		data, err := g.ToJSONLD()
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	data, err := g.ToJSON()
	if err != nil {
		return "", err
	}
	var pretty interface{}
	if err := json.Unmarshal(data, &pretty); err == nil {
		if indented, err := json.MarshalIndent(pretty, "", "  "); err == nil {
			return string(indented), nil
		}
	}
	return string(data), nil
}

func init() {
	executeCmd.Flags().Float64Var(&execMaxCost, "max-cost", 100, "Maximum total path cost")
	executeCmd.Flags().BoolVar(&execProvenance, "provenance", false, "Emit a W3C PROV-O provenance graph for this run")
}
