package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the loaded function catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every function and product type in the catalog",
	Args:  cobra.NoArgs,
	RunE:  runCatalogList,
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	e, err := buildEngine()
	if err != nil {
		return err
	}

	fmt.Println("functions:")
	for _, fn := range e.Catalog.Functions() {
		fmt.Printf("  %-24s %v -> %-16s cost=%.1f confidence=%.2f\n", fn.ID, fn.Domain, fn.Codomain, fn.Cost, fn.Confidence)
	}

	pts := e.Catalog.ProductTypes()
	if len(pts) > 0 {
		fmt.Println("product types:")
		for _, pt := range pts {
			fmt.Printf("  %-24s %v\n", pt.Name, pt.Components)
		}
	}
	return nil
}

var catalogTypeCmd = &cobra.Command{
	Use:   "type <name>",
	Short: "Show details for a single type",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogType,
}

func runCatalogType(cmd *cobra.Command, args []string) error {
	e, err := buildEngine()
	if err != nil {
		return err
	}

	tv, err := e.Type(args[0])
	if err != nil {
		return err
	}

	if tv.Base != nil {
		fmt.Printf("%s: unit=%s\n", args[0], tv.Base.Unit())
	} else if tv.Product != nil {
		fmt.Printf("%s: product of %v\n", args[0], tv.Product.Components)
	}
	return nil
}

var catalogReturningCmd = &cobra.Command{
	Use:   "returning <type>",
	Short: "List functions whose codomain is <type>",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogReturning,
}

func runCatalogReturning(cmd *cobra.Command, args []string) error {
	e, err := buildEngine()
	if err != nil {
		return err
	}
	for _, fn := range e.FunctionsReturning(args[0]) {
		fmt.Printf("  %-24s %v -> %s\n", fn.ID, fn.Domain, fn.Codomain)
	}
	return nil
}

var catalogAcceptingCmd = &cobra.Command{
	Use:   "accepting <type>",
	Short: "List functions that accept <type> in their domain",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogAccepting,
}

func runCatalogAccepting(cmd *cobra.Command, args []string) error {
	e, err := buildEngine()
	if err != nil {
		return err
	}
	for _, fn := range e.FunctionsAccepting(args[0]) {
		fmt.Printf("  %-24s %v -> %s\n", fn.ID, fn.Domain, fn.Codomain)
	}
	return nil
}

func init() {
	catalogCmd.AddCommand(catalogListCmd, catalogTypeCmd, catalogReturningCmd, catalogAcceptingCmd)
}
