// Version command for the loom CLI.
// Implements: prd009-loom-cli R2.2.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the loom version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if flagJSON {
			fmt.Printf("{\"version\": %q}\n", Version)
			return
		}
		fmt.Println("loom", Version)
	},
}
