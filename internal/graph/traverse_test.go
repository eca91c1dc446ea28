package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/loom/pkg/types"
)

func TestTraceForwardChain(t *testing.T) {
	tr := NewTraverser()
	links := []types.Link{
		mkLink("l1", "REQ-001", "REQ-002", types.LinkDependsOn),
		mkLink("l2", "REQ-002", "REQ-003", types.LinkDependsOn),
	}

	path := tr.TraceForward(links, "REQ-001")

	assert.Equal(t, "REQ-001", path.RootID)
	assert.Equal(t, types.TraceForward, path.Direction)
	assert.Equal(t, 2, path.Depth)

	require.Len(t, path.Nodes, 1)
	first := path.Nodes[0]
	assert.Equal(t, "REQ-002", first.EntityID)
	assert.Equal(t, types.LinkDependsOn, first.LinkType)
	assert.Equal(t, 1, first.Depth)

	require.Len(t, first.Children, 1)
	assert.Equal(t, "REQ-003", first.Children[0].EntityID)
	assert.Equal(t, 2, first.Children[0].Depth)
	assert.Empty(t, first.Children[0].Children)
}

func TestTraceBackwardChain(t *testing.T) {
	tr := NewTraverser()
	links := []types.Link{
		mkLink("l1", "TC-001", "REQ-001", types.LinkVerifies),
		mkLink("l2", "REQ-001", "REQ-002", types.LinkDerivedFrom),
	}

	path := tr.TraceBackward(links, "REQ-002")

	assert.Equal(t, types.TraceBackward, path.Direction)
	assert.Equal(t, 2, path.Depth)
	require.Len(t, path.Nodes, 1)
	assert.Equal(t, "REQ-001", path.Nodes[0].EntityID)
	require.Len(t, path.Nodes[0].Children, 1)
	assert.Equal(t, "TC-001", path.Nodes[0].Children[0].EntityID)
	assert.Equal(t, types.KindTestCase, path.Nodes[0].Children[0].EntityType)
}

func TestTraceNoLinks(t *testing.T) {
	tr := NewTraverser()

	path := tr.TraceForward(nil, "REQ-001")
	assert.Equal(t, 0, path.Depth)
	assert.Empty(t, path.Nodes)
}

func TestTraceSharedDescendantStaysVisible(t *testing.T) {
	// Two requirements both depend on a shared third; the shared node must
	// appear under each parent independently.
	tr := NewTraverser()
	links := []types.Link{
		mkLink("l1", "REQ-001", "REQ-002", types.LinkDependsOn),
		mkLink("l2", "REQ-001", "REQ-003", types.LinkDependsOn),
		mkLink("l3", "REQ-002", "REQ-010", types.LinkDependsOn),
		mkLink("l4", "REQ-003", "REQ-010", types.LinkDependsOn),
	}

	path := tr.TraceForward(links, "REQ-001")

	require.Len(t, path.Nodes, 2)
	for _, branch := range path.Nodes {
		require.Len(t, branch.Children, 1, "branch %s", branch.EntityID)
		assert.Equal(t, "REQ-010", branch.Children[0].EntityID)
	}
	assert.Equal(t, 2, path.Depth)
}

func TestTraceCorruptCycleTerminates(t *testing.T) {
	// A cyclic collection can only come from corrupted data; the walk must
	// cut the repeat on the ancestor chain instead of looping.
	tr := NewTraverser()
	links := []types.Link{
		mkLink("l1", "REQ-001", "REQ-002", types.LinkDependsOn),
		mkLink("l2", "REQ-002", "REQ-003", types.LinkDependsOn),
		mkLink("l3", "REQ-003", "REQ-001", types.LinkDependsOn),
	}

	path := tr.TraceForward(links, "REQ-001")

	assert.Equal(t, 2, path.Depth)
	require.Len(t, path.Nodes, 1)
	require.Len(t, path.Nodes[0].Children, 1)
	assert.Equal(t, "REQ-003", path.Nodes[0].Children[0].EntityID)
	assert.Empty(t, path.Nodes[0].Children[0].Children, "walk must stop where the cycle closes")
}

func TestTraceMixedLinkTypes(t *testing.T) {
	// Traversal follows every link type, not just dependency edges.
	tr := NewTraverser()
	links := []types.Link{
		mkLink("l1", "REQ-001", "DOC-001", types.LinkRelated),
		mkLink("l2", "TC-001", "REQ-001", types.LinkVerifies),
	}

	forward := tr.TraceForward(links, "REQ-001")
	require.Len(t, forward.Nodes, 1)
	assert.Equal(t, "DOC-001", forward.Nodes[0].EntityID)

	backward := tr.TraceBackward(links, "REQ-001")
	require.Len(t, backward.Nodes, 1)
	assert.Equal(t, "TC-001", backward.Nodes[0].EntityID)
}
