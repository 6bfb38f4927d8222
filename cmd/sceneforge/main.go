// Package main implements the sceneforge CLI: structure-preserving
// inspection and editing of Unity-style scene, prefab, and settings files.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"sceneforge/internal/config"
	"sceneforge/internal/logging"
	"sceneforge/internal/project"
)

var (
	// Global flags
	verbose     bool
	jsonOutput  bool
	projectFlag string

	// Loaded in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "sceneforge",
	Short: "sceneforge - structure-preserving editor for Unity scene files",
	Long: `sceneforge inspects and edits Unity scene, prefab, and project
settings files without disturbing any byte it was not asked to change.

Documents are treated as anchored line blocks rather than parsed YAML, so
version-control diffs stay minimal and binary-faithful.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
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

		workspace, err := os.Getwd()
		if err != nil {
			return err
		}
		if root, rerr := project.FindRoot(workspace); rerr == nil {
			workspace = root
		}
		cfg, err = config.Load(workspace)
		if err != nil {
			return err
		}
		if err := logging.Initialize(workspace, cfg.Logging.Options()); err != nil {
			logger.Warn("debug logging unavailable", zap.Error(err))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Close()
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// resolveProject returns the project root for settings and GUID work:
// the --project flag when given, otherwise the nearest ancestor of the
// working directory that contains an Assets directory.
func resolveProject() (string, error) {
	if projectFlag != "" {
		return project.FindRoot(projectFlag)
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return project.FindRoot(wd)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "emit machine-readable JSON")
	rootCmd.PersistentFlags().StringVar(&projectFlag, "project", "", "project directory (default: walk up from cwd)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		failf(err)
		os.Exit(1)
	}
}
