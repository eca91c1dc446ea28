// Link delete command removes a trace link by ID.
// Implements: prd001-trace-link-core R5.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var linkDeleteCmd = &cobra.Command{
	Use:   "delete <link-id>",
	Short: "Delete a trace link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return err
		}
		defer ws.Close()

		if err := ws.Engine.DeleteLink(args[0], actor()); err != nil {
			return err
		}

		if flagJSON {
			return printJSON(map[string]string{"deleted": args[0]})
		}
		fmt.Printf("Deleted link %s\n", args[0])
		return nil
	},
}
