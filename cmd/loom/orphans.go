// Orphans command reports entities with no trace links.
// Implements: prd005-traversal R4.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var orphansCmd = &cobra.Command{
	Use:   "orphans",
	Short: "List registered entities with no traceability links",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return err
		}
		defer ws.Close()

		orphans, err := ws.Engine.FindOrphans()
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(orphans)
		}
		if len(orphans) == 0 {
			fmt.Println("No orphaned entities")
			return nil
		}
		for _, o := range orphans {
			fmt.Printf("%s (%s): %s\n", o.EntityID, o.EntityType, o.Reason)
		}
		return nil
	},
}
