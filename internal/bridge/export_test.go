package bridge

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/loom/pkg/types"
)

func sampleMatrix() types.TraceMatrix {
	link := types.Link{
		LinkID:     "l1",
		SourceType: types.KindRequirement,
		SourceID:   "REQ-001",
		TargetType: types.KindTestCase,
		TargetID:   "TC-001",
		LinkType:   types.LinkVerifies,
		CreatedAt:  time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		CreatedBy:  "alice",
	}
	return types.TraceMatrix{
		Entities: map[string]types.TraceEntity{
			"TC-001": {
				EntityID:       "TC-001",
				EntityType:     types.KindTestCase,
				Title:          "Login test",
				Status:         "Passed",
				LinkedEntities: []string{"REQ-001"},
			},
			"REQ-001": {
				EntityID:       "REQ-001",
				EntityType:     types.KindRequirement,
				Title:          "User login",
				Status:         "Approved",
				LinkedEntities: []string{"DOC-001", "TC-001"},
			},
		},
		Links:       []types.Link{link},
		GeneratedAt: time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC),
	}
}

func TestExportSummaryCSV(t *testing.T) {
	data, err := ExportSummaryCSV(sampleMatrix())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Entity ID,Entity Type,Title,Status,Linked Entities", lines[0])
	// Rows come out in entity-ID order regardless of map iteration.
	assert.Equal(t, "REQ-001,Requirement,User login,Approved,DOC-001;TC-001", lines[1])
	assert.Equal(t, "TC-001,TestCase,Login test,Passed,REQ-001", lines[2])
}

func TestExportSummaryJSON(t *testing.T) {
	data, err := ExportSummaryJSON(sampleMatrix())
	require.NoError(t, err)

	var decoded types.TraceMatrix
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded.Entities, 2)
	require.Len(t, decoded.Links, 1)
	assert.Equal(t, "l1", decoded.Links[0].LinkID)
	assert.False(t, decoded.GeneratedAt.IsZero())
}

func TestExportDOT(t *testing.T) {
	links := []types.Link{
		{SourceID: "REQ-001", TargetID: "TC-001", LinkType: types.LinkVerifies},
		{SourceID: "REQ-002", TargetID: "REQ-001", LinkType: types.LinkDerivedFrom},
	}

	dot := string(ExportDOT(links))
	want := `digraph TraceabilityGraph {
  rankdir=TB;
  node [shape=box];
  "REQ-001";
  "REQ-002";
  "TC-001";
  "REQ-001" -> "TC-001" [label="Verifies"];
  "REQ-002" -> "REQ-001" [label="DerivedFrom"];
}
`
	assert.Equal(t, want, dot)

	// Byte-stable across repeated renders of the same link set.
	assert.Equal(t, dot, string(ExportDOT(links)))
}

func TestExportDOTEmptyGraph(t *testing.T) {
	dot := string(ExportDOT(nil))
	assert.Equal(t, "digraph TraceabilityGraph {\n  rankdir=TB;\n  node [shape=box];\n}\n", dot)
}
