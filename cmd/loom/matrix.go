// Matrix command generates the requirements traceability matrix.
// Implements: prd006-trace-matrix; prd009-loom-cli R5.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/loom/internal/matrix"
)

var (
	matrixFormat       string
	matrixProfile      string
	matrixSortBy       string
	matrixCategories   []string
	matrixPriorities   []string
	matrixStatuses     []string
	matrixVerification []string
	matrixDescriptions bool
	matrixNoCoverage   bool
	matrixOutput       string
)

var matrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Generate the requirements traceability matrix",
	Long: `Matrix builds one row per requirement with its linked tests, designs,
risks, and documents, then renders it in the chosen format.

Filters are allow-lists; an unset filter admits everything. A YAML profile
file can carry the full configuration and is overridden by explicit flags.

Example:
  loom matrix
  loom matrix --format html --output rtm.html
  loom matrix --priority Critical --priority High --sort coverage
  loom matrix --profile release-audit.yaml --format pdf`,
	Args: cobra.NoArgs,
	RunE: runMatrix,
}

func init() {
	matrixCmd.Flags().StringVar(&matrixFormat, "format", "csv", "output format (csv, json, html, markdown, pdf)")
	matrixCmd.Flags().StringVar(&matrixProfile, "profile", "", "YAML profile file with filters and sort settings")
	matrixCmd.Flags().StringVar(&matrixSortBy, "sort", "", "sort key (id, title, priority, status, verification, coverage)")
	matrixCmd.Flags().StringSliceVar(&matrixCategories, "category", nil, "only requirements in these categories")
	matrixCmd.Flags().StringSliceVar(&matrixPriorities, "priority", nil, "only requirements with these priorities")
	matrixCmd.Flags().StringSliceVar(&matrixStatuses, "status", nil, "only requirements with these statuses")
	matrixCmd.Flags().StringSliceVar(&matrixVerification, "verification", nil, "only rows with these verification statuses")
	matrixCmd.Flags().BoolVar(&matrixDescriptions, "descriptions", false, "include requirement descriptions")
	matrixCmd.Flags().BoolVar(&matrixNoCoverage, "no-coverage", false, "omit the coverage column")
	matrixCmd.Flags().StringVar(&matrixOutput, "output", "", "write to file instead of stdout")

	matrixCmd.AddCommand(matrixStatsCmd)
}

// matrixConfig folds the profile file and the explicit flags into one
// Config. Flags win over profile values.
func matrixConfig() (matrix.Config, error) {
	cfg := matrix.DefaultConfig()
	if matrixProfile != "" {
		loaded, err := matrix.LoadProfile(matrixProfile)
		if err != nil {
			return matrix.Config{}, err
		}
		cfg = loaded
	}
	if matrixSortBy != "" {
		cfg.SortBy = matrixSortBy
	}
	if len(matrixCategories) > 0 {
		cfg.Categories = matrixCategories
	}
	if len(matrixPriorities) > 0 {
		cfg.Priorities = matrixPriorities
	}
	if len(matrixStatuses) > 0 {
		cfg.Statuses = matrixStatuses
	}
	if len(matrixVerification) > 0 {
		cfg.Verification = matrixVerification
	}
	if matrixDescriptions {
		cfg.IncludeDescriptions = true
	}
	if matrixNoCoverage {
		cfg.IncludeCoverage = false
	}
	return cfg, nil
}

func runMatrix(cmd *cobra.Command, args []string) error {
	format, err := matrix.ParseFormat(matrixFormat)
	if err != nil {
		return err
	}
	cfg, err := matrixConfig()
	if err != nil {
		return err
	}

	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	m, err := ws.Engine.RTM(cfg)
	if err != nil {
		return err
	}
	data, err := matrix.Export(m, cfg, format)
	if err != nil {
		return err
	}
	return writeOutput(matrixOutput, data)
}

var matrixStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Aggregate matrix totals and coverage quality",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := matrixConfig()
		if err != nil {
			return err
		}

		ws, err := openWorkspace()
		if err != nil {
			return err
		}
		defer ws.Close()

		stats, err := ws.Engine.RTMStats(cfg)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(stats)
		}
		fmt.Printf("Requirements:   %d\n", stats.TotalRequirements)
		fmt.Printf("Verified:       %d\n", stats.Verified)
		fmt.Printf("Not verified:   %d\n", stats.NotVerified)
		fmt.Printf("Test coverage:  %.1f%% (%s)\n", stats.CoveragePercent, stats.Quality)
		if len(stats.ByCategory) > 0 {
			fmt.Println("By category:")
			for category, n := range stats.ByCategory {
				fmt.Printf("  %-20s %d\n", category, n)
			}
		}
		if len(stats.ByPriority) > 0 {
			fmt.Println("By priority:")
			for priority, n := range stats.ByPriority {
				fmt.Printf("  %-20s %d\n", priority, n)
			}
		}
		return nil
	},
}
