// Trace command walks the graph from one entity.
// Implements: prd005-traversal R1-R3.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/loom/pkg/types"
)

var traceBackward bool

var traceCmd = &cobra.Command{
	Use:   "trace <entity-id>",
	Short: "Print the traceability tree from an entity",
	Long: `Trace walks the link graph from an entity: forward along outgoing links
by default, backward along incoming links with --backward.

Example:
  loom trace REQ-001
  loom trace TC-001 --backward --json`,
	Args: cobra.ExactArgs(1),
	RunE: runTrace,
}

func init() {
	traceCmd.Flags().BoolVar(&traceBackward, "backward", false, "follow incoming links instead of outgoing")
}

func runTrace(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	var path types.TracePath
	if traceBackward {
		path, err = ws.Engine.TraceBackward(args[0])
	} else {
		path, err = ws.Engine.TraceForward(args[0])
	}
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(path)
	}
	fmt.Printf("%s (%s trace, depth %d)\n", path.RootID, path.Direction, path.Depth)
	printNodes(path.Nodes, 1)
	return nil
}

func printNodes(nodes []types.PathNode, indent int) {
	for _, n := range nodes {
		fmt.Printf("%s%s [%s]\n", strings.Repeat("  ", indent), n.EntityID, n.LinkType)
		printNodes(n.Children, indent+1)
	}
}
