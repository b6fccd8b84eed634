package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"typeforge/internal/config"
)

const testCatalogYAML = `{
	"types": [
		{"name": "Fuel", "attributes": {"unit": "liters"}},
		{"name": "Scope1", "attributes": {"unit": "kgCO2e"}}
	],
	"functions": [
		{"id": "fuel_to_scope1", "domain": ["Fuel"], "codomain": "Scope1", "cost": 1, "confidence": 1,
		 "impl": {"kind": "formula", "expr": "x * emission_factor"}}
	]
}`

// setUpCLI points the global config at a temp catalog file, mirroring how
// PersistentPreRunE would have populated it, without going through cobra.
func setUpCLI(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	catalogFile := filepath.Join(dir, "catalog.json")
	require.NoError(t, os.WriteFile(catalogFile, []byte(testCatalogYAML), 0644))

	cfg = config.DefaultConfig()
	cfg.CatalogPath = catalogFile

	old := cfg
	t.Cleanup(func() { cfg = old })
}

func TestRunSynthesize_FindsPath(t *testing.T) {
	setUpCLI(t)
	synthMaxCost = 10
	synthMaxResults = 5

	err := runSynthesize(&cobra.Command{}, []string{"Fuel", "Scope1"})
	require.NoError(t, err)
}

func TestRunSynthesize_NoPathDoesNotError(t *testing.T) {
	setUpCLI(t)
	synthMaxCost = 10
	synthMaxResults = 5

	err := runSynthesize(&cobra.Command{}, []string{"Scope1", "Fuel"})
	require.NoError(t, err)
}

func TestRunExecute_RunsSynthesizedPath(t *testing.T) {
	setUpCLI(t)
	execMaxCost = 10
	execProvenance = false

	err := runExecute(&cobra.Command{}, []string{"Fuel", "Scope1", "400"})
	require.NoError(t, err)
}

func TestRunExecute_InvalidInputErrors(t *testing.T) {
	setUpCLI(t)
	execMaxCost = 10

	err := runExecute(&cobra.Command{}, []string{"Fuel", "Scope1", "not-a-number"})
	require.Error(t, err)
}

func TestRunExecute_WithProvenance(t *testing.T) {
	setUpCLI(t)
	execMaxCost = 10
	execProvenance = true
	defer func() { execProvenance = false }()

	err := runExecute(&cobra.Command{}, []string{"Fuel", "Scope1", "400"})
	require.NoError(t, err)
}

func TestRunCatalogList(t *testing.T) {
	setUpCLI(t)
	err := runCatalogList(&cobra.Command{}, nil)
	require.NoError(t, err)
}

func TestRunCatalogType(t *testing.T) {
	setUpCLI(t)
	err := runCatalogType(&cobra.Command{}, []string{"Fuel"})
	require.NoError(t, err)
}

func TestRunCatalogType_UnknownTypeErrors(t *testing.T) {
	setUpCLI(t)
	err := runCatalogType(&cobra.Command{}, []string{"NoSuchType"})
	require.Error(t, err)
}

func TestRunCatalogReturningAndAccepting(t *testing.T) {
	setUpCLI(t)
	require.NoError(t, runCatalogReturning(&cobra.Command{}, []string{"Scope1"}))
	require.NoError(t, runCatalogAccepting(&cobra.Command{}, []string{"Fuel"}))
}
