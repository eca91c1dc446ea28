// Link show command prints one link in full.
// Implements: prd001-trace-link-core R4.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var linkShowCmd = &cobra.Command{
	Use:   "show <link-id>",
	Short: "Show one trace link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return err
		}
		defer ws.Close()

		link, err := ws.Engine.GetLink(args[0])
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(link)
		}
		fmt.Printf("Link:       %s\n", link.LinkID)
		fmt.Printf("Source:     %s (%s)\n", link.SourceID, link.SourceType)
		fmt.Printf("Target:     %s (%s)\n", link.TargetID, link.TargetType)
		fmt.Printf("Type:       %s\n", link.LinkType)
		fmt.Printf("Created:    %s by %s\n", link.CreatedAt.Format("2006-01-02 15:04:05"), link.CreatedBy)
		if link.Verified && link.VerifiedAt != nil && link.VerifiedBy != nil {
			fmt.Printf("Verified:   %s by %s\n", link.VerifiedAt.Format("2006-01-02 15:04:05"), *link.VerifiedBy)
		} else {
			fmt.Println("Verified:   no")
		}
		return nil
	},
}
