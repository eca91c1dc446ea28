// Coverage command measures requirement-to-test linkage.
// Implements: prd012-impact-coverage R1.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var coverageCmd = &cobra.Command{
	Use:   "coverage",
	Short: "Report requirement test coverage",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return err
		}
		defer ws.Close()

		report, err := ws.Engine.Coverage()
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(report)
		}
		fmt.Printf("Requirements: %d\n", report.TotalRequirements)
		fmt.Printf("Covered:      %d\n", report.CoveredRequirements)
		fmt.Printf("Coverage:     %.1f%% (%s)\n", report.Percent, report.Quality)
		if len(report.UncoveredRequirements) > 0 {
			fmt.Println("Uncovered:")
			for _, id := range report.UncoveredRequirements {
				fmt.Printf("  %s\n", id)
			}
		}
		for category, c := range report.ByCategory {
			fmt.Printf("  %s: %d/%d\n", category, c.Covered, c.Total)
		}
		return nil
	},
}
