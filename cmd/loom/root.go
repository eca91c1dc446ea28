// Root command for the loom CLI.
// Implements: prd009-loom-cli (R1, R6); prd010-configuration-directories (R1, R2).
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/loom/internal/paths"
)

// Version is the loom release version reported by the version command.
const Version = "0.1.0"

// Exit codes per prd009-loom-cli R8.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
	flagActor     string
	flagVerbose   bool
)

// configDataDir holds the data_dir value loaded from config.yaml.
// Set by PersistentPreRunE so all subcommands can use it.
var configDataDir string

var rootCmd = &cobra.Command{
	Use:           "loom",
	Short:         "Loom links requirements, tests, risks, and documents into a traceability graph",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging()

		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configDataDir = cfg.GetString(cfgKeyDataDir)
		if flagActor == "" {
			flagActor = cfg.GetString(cfgKeyActor)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.loom-db)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().StringVar(&flagActor, "actor", "", "name recorded as the acting user (default: config actor or \"cli\")")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(traceCmd)
	rootCmd.AddCommand(orphansCmd)
	rootCmd.AddCommand(matrixCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(coverageCmd)
	rootCmd.AddCommand(impactCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(entityCmd)
}

// setupLogging installs a text slog handler on stderr at the level selected
// by --verbose. Engine and sink logging all flow through the default logger.
func setupLogging() {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// resolveDataDir returns the data directory path following prd010 R2.3
// precedence: --data-dir flag > config.yaml data_dir > LOOM_DATA_DIR env >
// default $(CWD)/.loom-db.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}

// resolveConfigDir returns the configuration directory following prd010 R1.3
// precedence: --config-dir flag > LOOM_CONFIG_DIR env > DefaultConfigDir().
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// actor returns the name recorded against mutations.
func actor() string {
	if flagActor != "" {
		return flagActor
	}
	return "cli"
}
