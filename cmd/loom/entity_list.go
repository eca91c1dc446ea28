// Entity list command prints registered entities, optionally by kind.
// Implements: prd003-entity-registry R4.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/loom/pkg/types"
)

var entityListKind string

var entityListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered entities",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return err
		}
		defer ws.Close()

		var infos []types.EntityInfo
		if entityListKind != "" {
			kind, err := types.ParseEntityKind(entityListKind)
			if err != nil {
				return err
			}
			infos, err = ws.Registry.List(kind)
			if err != nil {
				return err
			}
		} else {
			for _, kind := range []types.EntityKind{
				types.KindRequirement, types.KindTestCase, types.KindRisk, types.KindDocument,
			} {
				batch, err := ws.Registry.List(kind)
				if err != nil {
					return err
				}
				infos = append(infos, batch...)
			}
		}

		if flagJSON {
			return printJSON(infos)
		}
		if len(infos) == 0 {
			fmt.Println("No entities registered")
			return nil
		}
		for _, info := range infos {
			fmt.Printf("%-12s %-12s %-10s %s\n", info.EntityID, info.EntityType, info.Status, info.Title)
		}
		return nil
	},
}

func init() {
	entityListCmd.Flags().StringVar(&entityListKind, "kind", "", "only this entity kind (requirement, testcase, risk, document)")
}
