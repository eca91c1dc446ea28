// Verify command group: the evidence-based verification workflow on links.
// Implements: prd008-verification; prd009-loom-cli R7.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/loom/pkg/types"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Manage link verification: evidence, confirmation, status",
}

func init() {
	verifyCmd.AddCommand(verifyEvidenceCmd)
	verifyCmd.AddCommand(verifyConfirmCmd)
	verifyCmd.AddCommand(verifyStatusCmd)
}

var verifyEvidenceNote string

var verifyEvidenceCmd = &cobra.Command{
	Use:   "add-evidence <link-id>",
	Short: "Record a verification observation against a link",
	Long: `Add-evidence appends an observation to a link's verification record,
moving an unverified link to partially verified.

Example:
  loom verify add-evidence 0192f3a1-... --note "system test run 142 passed"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return err
		}
		defer ws.Close()

		rec, err := ws.Engine.AddEvidence(args[0], verifyEvidenceNote, actor())
		if err != nil {
			return err
		}
		return printVerification(rec)
	},
}

var verifyConfirmCmd = &cobra.Command{
	Use:   "confirm <link-id>",
	Short: "Confirm a link with evidence as fully verified",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return err
		}
		defer ws.Close()

		rec, err := ws.Engine.ConfirmVerification(args[0], actor())
		if err != nil {
			return err
		}
		return printVerification(rec)
	},
}

var verifyStatusCmd = &cobra.Command{
	Use:   "status <link-id>",
	Short: "Show a link's verification record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return err
		}
		defer ws.Close()

		rec, err := ws.Engine.VerificationStatus(args[0])
		if err != nil {
			return err
		}
		return printVerification(rec)
	},
}

func init() {
	verifyEvidenceCmd.Flags().StringVar(&verifyEvidenceNote, "note", "", "description of the evidence (required)")
	_ = verifyEvidenceCmd.MarkFlagRequired("note")
}

func printVerification(rec types.VerificationRecord) error {
	if flagJSON {
		return printJSON(rec)
	}
	fmt.Printf("Link:     %s\n", rec.LinkID)
	fmt.Printf("State:    %s\n", rec.State)
	for _, ev := range rec.Evidence {
		fmt.Printf("Evidence: %s (%s, %s)\n", ev.Description, ev.RecordedBy, ev.RecordedAt.Format("2006-01-02"))
	}
	if rec.ConfirmedBy != "" && rec.ConfirmedAt != nil {
		fmt.Printf("Confirmed: %s by %s\n", rec.ConfirmedAt.Format("2006-01-02"), rec.ConfirmedBy)
	}
	return nil
}
