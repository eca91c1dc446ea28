// Export command renders the graph for external consumers.
// Implements: prd007-import-export R4-R5.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/loom/pkg/types"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the summary matrix or the dependency graph",
	Long: `Export renders the summary traceability matrix as CSV or JSON, or the
full link graph in Graphviz DOT form.

Example:
  loom export --format csv --output matrix.csv
  loom export --format dot | dot -Tsvg -o graph.svg`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "output format (csv, json, dot)")
	exportCmd.Flags().StringVar(&exportOutput, "output", "", "write to file instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	var data []byte
	switch strings.ToLower(exportFormat) {
	case "csv":
		data, err = ws.Engine.ExportCSV(actor())
	case "json":
		data, err = ws.Engine.ExportJSON(actor())
	case "dot":
		data, err = ws.Engine.ExportDOT(actor())
	default:
		return fmt.Errorf("unknown export format %q (csv, json, dot): %w", exportFormat, types.ErrValidation)
	}
	if err != nil {
		return err
	}
	return writeOutput(exportOutput, data)
}
