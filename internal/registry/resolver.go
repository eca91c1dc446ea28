package registry

import (
	"github.com/mesh-intelligence/loom/pkg/types"
)

// Resolver answers "what is this ID" questions for the rest of the system:
// prefix-derived kind first, then the registry record. It enforces no
// business rules beyond the prefix convention.
type Resolver struct {
	index types.EntityIndex
}

// NewResolver wraps an entity index.
func NewResolver(index types.EntityIndex) *Resolver {
	return &Resolver{index: index}
}

// Kind returns the prefix-derived kind without consulting the index.
func (r *Resolver) Kind(id string) (types.EntityKind, error) {
	return types.KindForID(id)
}

// Resolve validates the ID prefix, then looks the entity up. A malformed ID
// is a validation failure; a well-formed but unregistered ID is not found.
func (r *Resolver) Resolve(id string) (types.EntityInfo, error) {
	if _, err := types.KindForID(id); err != nil {
		return types.EntityInfo{}, err
	}
	return r.index.Lookup(id)
}

// Index exposes the wrapped index for read paths that enumerate entities.
func (r *Resolver) Index() types.EntityIndex {
	return r.index
}
