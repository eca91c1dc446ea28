// Link list command prints the link collection, optionally scoped to one
// entity.
// Implements: prd001-trace-link-core R4.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/loom/pkg/types"
)

var linkListEntity string

var linkListCmd = &cobra.Command{
	Use:   "list",
	Short: "List trace links",
	Long: `List prints every trace link, or only the links touching one entity when
--entity is given.

Example:
  loom link list
  loom link list --entity REQ-001 --json`,
	Args: cobra.NoArgs,
	RunE: runLinkList,
}

func init() {
	linkListCmd.Flags().StringVar(&linkListEntity, "entity", "", "only links where this entity is source or target")
}

func runLinkList(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	var links []types.Link
	if linkListEntity != "" {
		links, err = ws.Engine.LinksFor(linkListEntity)
	} else {
		links, err = ws.Engine.List()
	}
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(links)
	}
	if len(links) == 0 {
		fmt.Println("No links found")
		return nil
	}
	for _, l := range links {
		verified := ""
		if l.Verified {
			verified = " [verified]"
		}
		fmt.Printf("%s  %s -> %s (%s)%s\n", l.LinkID, l.SourceID, l.TargetID, l.LinkType, verified)
	}
	return nil
}
