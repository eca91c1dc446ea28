// Link command group: create, delete, list, and show trace links.
// Implements: prd001-trace-link-core; prd009-loom-cli R4.
package main

import (
	"github.com/spf13/cobra"
)

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Manage trace links between entities",
}

func init() {
	linkCmd.AddCommand(linkAddCmd)
	linkCmd.AddCommand(linkDeleteCmd)
	linkCmd.AddCommand(linkListCmd)
	linkCmd.AddCommand(linkShowCmd)
}
