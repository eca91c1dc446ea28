package bridge

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/mesh-intelligence/loom/pkg/types"
)

// summaryHeader is the fixed column set of the summary matrix CSV.
var summaryHeader = []string{"Entity ID", "Entity Type", "Title", "Status", "Linked Entities"}

// ExportSummaryCSV renders the summary matrix: one row per linked entity,
// linked IDs semicolon-joined, rows sorted by entity ID so repeated exports
// of the same graph are byte-identical.
func ExportSummaryCSV(m types.TraceMatrix) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(summaryHeader); err != nil {
		return nil, fmt.Errorf("writing summary header: %v: %w", err, types.ErrIO)
	}
	for _, e := range sortedEntities(m) {
		row := []string{
			e.EntityID,
			string(e.EntityType),
			e.Title,
			e.Status,
			strings.Join(e.LinkedEntities, ";"),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing summary row %s: %v: %w", e.EntityID, err, types.ErrIO)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing summary csv: %v: %w", err, types.ErrIO)
	}
	return buf.Bytes(), nil
}

// ExportSummaryJSON renders the matrix with its raw link list and generation
// metadata as an indented document.
func ExportSummaryJSON(m types.TraceMatrix) ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding summary matrix: %w", err)
	}
	return append(data, '\n'), nil
}

// ExportDOT renders the dependency graph in Graphviz DOT form: one node
// statement per distinct endpoint, one edge statement per link labeled with
// its type. Nodes are emitted sorted; edges keep link-document order.
func ExportDOT(links []types.Link) []byte {
	nodes := make(map[string]bool)
	for _, l := range links {
		nodes[l.SourceID] = true
		nodes[l.TargetID] = true
	}
	ids := make([]string, 0, len(nodes))
	for id := range nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var buf bytes.Buffer
	buf.WriteString("digraph TraceabilityGraph {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box];\n")
	for _, id := range ids {
		fmt.Fprintf(&buf, "  %q;\n", id)
	}
	for _, l := range links {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", l.SourceID, l.TargetID, string(l.LinkType))
	}
	buf.WriteString("}\n")
	return buf.Bytes()
}

// sortedEntities flattens the matrix entity map into ID order.
func sortedEntities(m types.TraceMatrix) []types.TraceEntity {
	out := make([]types.TraceEntity, 0, len(m.Entities))
	for _, e := range m.Entities {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntityID < out[j].EntityID })
	return out
}
