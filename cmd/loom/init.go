// Init command scaffolds the data directory.
// Implements: prd010-configuration-directories (R2, R8).
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/loom/internal/paths"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the loom data directory",
	Long: `Init creates the data directory with an empty link document, the entity
registry database, and the verification document, all ready for use.

Example:
  loom init
  loom init --data-dir ./compliance/.loom-db`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	if err := ws.Engine.Init(); err != nil {
		return err
	}

	if flagJSON {
		return printJSON(map[string]string{
			"data_dir": ws.DataDir,
			"links":    paths.LinksFile(ws.DataDir),
			"registry": paths.RegistryFile(ws.DataDir),
		})
	}
	fmt.Printf("Initialized loom data directory: %s\n", ws.DataDir)
	return nil
}
