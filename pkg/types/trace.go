package types

// TraceDirection selects which way a traversal walks the graph.
// Implements: prd005-traversal R1.
type TraceDirection string

// Traversal directions. Forward follows links out of the root's source
// position; backward follows links into the root's target position.
const (
	TraceForward  TraceDirection = "forward"
	TraceBackward TraceDirection = "backward"
)

// PathNode is one entity in a trace tree. Children are the next hop away
// from the root; LinkType names the edge that reached this node and is empty
// on the root itself.
type PathNode struct {
	EntityID   string     `json:"entity_id"`
	EntityType EntityKind `json:"entity_type"`
	LinkType   LinkType   `json:"link_type,omitempty"`
	Depth      int        `json:"depth"`
	Children   []PathNode `json:"children,omitempty"`
}

// TracePath is the result of a forward or backward traversal: the full tree
// rooted at the starting entity. Depth is the maximum node depth reached,
// with the root at depth 0.
type TracePath struct {
	RootID    string         `json:"root_id"`
	Direction TraceDirection `json:"direction"`
	Depth     int            `json:"depth"`
	Nodes     []PathNode     `json:"nodes"`
}

// OrphanedItem records an entity with no incident trace links.
// Implements: prd005-traversal R4.
type OrphanedItem struct {
	EntityID   string     `json:"entity_id"`
	EntityType EntityKind `json:"entity_type"`
	Reason     string     `json:"reason"`
}
