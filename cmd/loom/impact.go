// Impact command estimates the blast radius of changing an entity.
// Implements: prd012-impact-coverage R2.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var impactCmd = &cobra.Command{
	Use:   "impact <entity-id>",
	Short: "Report everything a change to an entity would touch",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return err
		}
		defer ws.Close()

		report, err := ws.Engine.Impact(args[0])
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(report)
		}
		fmt.Printf("Impact of changing %s: %s\n", report.EntityID, report.Severity)
		fmt.Printf("Direct:     %s\n", joinOrNone(report.Direct))
		fmt.Printf("Transitive: %s\n", joinOrNone(report.Transitive))
		fmt.Printf("Tests:      %s\n", joinOrNone(report.AffectedTests))
		fmt.Printf("Risks:      %s\n", joinOrNone(report.AffectedRisks))
		fmt.Printf("Documents:  %s\n", joinOrNone(report.AffectedDocs))
		return nil
	},
}

func joinOrNone(ids []string) string {
	if len(ids) == 0 {
		return "(none)"
	}
	return strings.Join(ids, ", ")
}
