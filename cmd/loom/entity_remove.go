// Entity remove command drops an entity from the registry.
// Implements: prd003-entity-registry R4.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var entityRemoveCmd = &cobra.Command{
	Use:   "remove <entity-id>",
	Short: "Remove an entity from the registry",
	Long: `Remove drops a registry record. Links touching the entity are not
deleted; they will surface through orphan detection and matrix rows as
unresolved references.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return err
		}
		defer ws.Close()

		links, err := ws.Engine.LinksFor(args[0])
		if err != nil {
			return err
		}
		if err := ws.Registry.Remove(args[0]); err != nil {
			return err
		}

		if flagJSON {
			return printJSON(map[string]any{"removed": args[0], "dangling_links": len(links)})
		}
		fmt.Printf("Removed %s\n", args[0])
		if len(links) > 0 {
			fmt.Printf("Warning: %d link(s) still reference %s\n", len(links), args[0])
		}
		return nil
	},
}
