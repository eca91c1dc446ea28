package graph

import (
	"github.com/mesh-intelligence/loom/pkg/types"
)

// Traverser builds forward and backward trace trees. The walk is iterative
// with an explicit stack, so corrupted cyclic data loaded from disk can
// never overflow the call stack; write-time validation normally keeps the
// dependency edges acyclic.
type Traverser struct{}

// NewTraverser returns a Traverser.
func NewTraverser() *Traverser {
	return &Traverser{}
}

// TraceForward walks outgoing links from rootID: every link whose source is
// the current node contributes its target as a child.
func (t *Traverser) TraceForward(links []types.Link, rootID string) types.TracePath {
	return walk(links, rootID, types.TraceForward)
}

// TraceBackward walks incoming links from rootID: every link whose target is
// the current node contributes its source as a child.
func (t *Traverser) TraceBackward(links []types.Link, rootID string) types.TracePath {
	return walk(links, rootID, types.TraceBackward)
}

// edge is one hop away from a node, labeled with the link type that made it.
type edge struct {
	to       string
	linkType types.LinkType
}

// frame ties a tree node to its ancestor chain during the walk.
type frame struct {
	node   *types.PathNode
	id     string
	parent *frame
}

// onAncestorChain reports whether id already appears on the path from the
// root down to f. A repeat on its own branch would loop; the same entity
// under an independent parent is legitimate and stays visible there.
func onAncestorChain(f *frame, id string) bool {
	for cur := f; cur != nil; cur = cur.parent {
		if cur.id == id {
			return true
		}
	}
	return false
}

func walk(links []types.Link, rootID string, direction types.TraceDirection) types.TracePath {
	adjacent := make(map[string][]edge)
	for _, l := range links {
		switch direction {
		case types.TraceForward:
			adjacent[l.SourceID] = append(adjacent[l.SourceID], edge{to: l.TargetID, linkType: l.LinkType})
		case types.TraceBackward:
			adjacent[l.TargetID] = append(adjacent[l.TargetID], edge{to: l.SourceID, linkType: l.LinkType})
		}
	}

	root := types.PathNode{
		EntityID:   rootID,
		EntityType: kindOf(rootID),
		Depth:      0,
	}

	maxDepth := 0
	stack := []*frame{{node: &root, id: rootID}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.node.Depth > maxDepth {
			maxDepth = f.node.Depth
		}

		for _, e := range adjacent[f.id] {
			if onAncestorChain(f, e.to) {
				continue
			}
			f.node.Children = append(f.node.Children, types.PathNode{
				EntityID:   e.to,
				EntityType: kindOf(e.to),
				LinkType:   e.linkType,
				Depth:      f.node.Depth + 1,
			})
		}
		// Children are complete for this node; pointers into the slice are
		// stable from here on.
		for i := range f.node.Children {
			stack = append(stack, &frame{
				node:   &f.node.Children[i],
				id:     f.node.Children[i].EntityID,
				parent: f,
			})
		}
	}

	return types.TracePath{
		RootID:    rootID,
		Direction: direction,
		Depth:     maxDepth,
		Nodes:     root.Children,
	}
}

// kindOf derives the entity kind from the ID prefix, tolerating unknown
// prefixes in corrupt data with an empty kind rather than failing the walk.
func kindOf(id string) types.EntityKind {
	kind, err := types.KindForID(id)
	if err != nil {
		return ""
	}
	return kind
}
