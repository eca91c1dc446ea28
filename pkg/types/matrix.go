package types

import "time"

// TraceEntity is one row of the summary traceability matrix: an entity plus
// the IDs of everything it links to, in either direction.
// Implements: prd006-trace-matrix R1.
type TraceEntity struct {
	EntityID       string     `json:"entity_id"`
	EntityType     EntityKind `json:"entity_type"`
	Title          string     `json:"title,omitempty"`
	Status         string     `json:"status,omitempty"`
	LinkedEntities []string   `json:"linked_entities"`
}

// TraceMatrix is the summary matrix across every entity known to the
// registry, keyed by entity ID, together with the raw link list it was
// derived from.
type TraceMatrix struct {
	Entities    map[string]TraceEntity `json:"entities"`
	Links       []Link                 `json:"links"`
	GeneratedAt time.Time              `json:"generated_at"`
}
