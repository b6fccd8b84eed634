// Package main implements typeforgectl, the CLI for the type-directed
// synthesis engine.
//
// It is a thin cobra front end over internal/facade: every subcommand loads
// (or is handed) an *facade.Engine and calls exactly one façade method,
// formats the result, and sets the process exit code.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"typeforge/internal/config"
	"typeforge/internal/logging"
)

var (
	verbose     bool
	workspace   string
	catalogPath string
	timeout     time.Duration

	logger *zap.Logger
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "typeforgectl",
	Short: "typeforgectl - type-directed program synthesis over a function catalog",
	Long: `typeforgectl synthesizes and executes typed transformation pipelines
from a catalog of functions, producing a W3C PROV-O provenance trail for
every run.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		ws := workspace
		if ws == "" {
			ws, _ = os.Getwd()
		}
		if err := logging.Initialize(ws); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize file logging: %v\n", err)
		}

		cfg, err = config.Load(configPath(ws))
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if catalogPath != "" {
			cfg.CatalogPath = catalogPath
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
}

func configPath(workspace string) string {
	return workspace + "/typeforge.yaml"
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace directory (default: current)")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Catalog file (overrides config)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Operation timeout")

	rootCmd.AddCommand(
		synthesizeCmd,
		executeCmd,
		catalogCmd,
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
