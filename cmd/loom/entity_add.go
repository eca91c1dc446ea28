// Entity add command registers an entity in the registry.
// Implements: prd003-entity-registry R4.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/loom/pkg/types"
)

var (
	entityTitle       string
	entityStatus      string
	entityCategory    string
	entityPriority    string
	entityDescription string
)

var entityAddCmd = &cobra.Command{
	Use:   "add <entity-id>",
	Short: "Register an entity",
	Long: `Add registers an entity under its prefix-derived kind (REQ- Requirement,
TC- TestCase, RISK- Risk, DOC- Document).

Example:
  loom entity add REQ-001 --title "User login" --status Approved --priority High
  loom entity add TC-001 --title "Login test"`,
	Args: cobra.ExactArgs(1),
	RunE: runEntityAdd,
}

func init() {
	entityAddCmd.Flags().StringVar(&entityTitle, "title", "", "display title")
	entityAddCmd.Flags().StringVar(&entityStatus, "status", "", "lifecycle status")
	entityAddCmd.Flags().StringVar(&entityCategory, "category", "", "category (requirements only)")
	entityAddCmd.Flags().StringVar(&entityPriority, "priority", "", "priority (Critical, High, Medium, Low)")
	entityAddCmd.Flags().StringVar(&entityDescription, "description", "", "free-form description")
}

func runEntityAdd(cmd *cobra.Command, args []string) error {
	kind, err := types.KindForID(args[0])
	if err != nil {
		return err
	}

	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	info := types.EntityInfo{
		EntityID:    args[0],
		EntityType:  kind,
		Title:       entityTitle,
		Status:      entityStatus,
		Category:    entityCategory,
		Priority:    entityPriority,
		Description: entityDescription,
	}
	if err := ws.Registry.Put(info); err != nil {
		return err
	}

	if flagJSON {
		return printJSON(info)
	}
	fmt.Printf("Registered %s (%s)\n", info.EntityID, info.EntityType)
	return nil
}
