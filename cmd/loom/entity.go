// Entity command group: registry maintenance for the entities links refer
// to. The graph engine itself never creates or mutates entities; these
// commands maintain the registry the engine resolves against.
// Implements: prd003-entity-registry R4.
package main

import (
	"github.com/spf13/cobra"
)

var entityCmd = &cobra.Command{
	Use:   "entity",
	Short: "Maintain the entity registry",
}

func init() {
	entityCmd.AddCommand(entityAddCmd)
	entityCmd.AddCommand(entityListCmd)
	entityCmd.AddCommand(entityRemoveCmd)
}
