// Link add command creates a trace link through the validated path.
// Implements: prd001-trace-link-core R3; prd004-graph-invariants.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/loom/pkg/types"
)

var linkAddType string

var linkAddCmd = &cobra.Command{
	Use:   "add <source-id> <target-id>",
	Short: "Create a trace link between two entities",
	Long: `Add creates a directed trace link from source to target. Both entities
must exist in the registry; duplicate links and dependency cycles are
rejected.

Example:
  loom link add REQ-001 TC-001 --type Verifies
  loom link add REQ-002 REQ-001 --type DerivedFrom --json`,
	Args: cobra.ExactArgs(2),
	RunE: runLinkAdd,
}

func init() {
	linkAddCmd.Flags().StringVar(&linkAddType, "type", "", "link type (DerivedFrom, Implements, Verifies, DependsOn, Conflicts, Duplicates, Related)")
	_ = linkAddCmd.MarkFlagRequired("type")
}

func runLinkAdd(cmd *cobra.Command, args []string) error {
	linkType, err := types.ParseLinkType(linkAddType)
	if err != nil {
		return err
	}

	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	link, err := ws.Engine.CreateLink(args[0], args[1], linkType, actor())
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(link)
	}
	fmt.Printf("Created link %s: %s -> %s (%s)\n", link.LinkID, link.SourceID, link.TargetID, link.LinkType)
	return nil
}
