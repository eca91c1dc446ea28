package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/mesh-intelligence/loom/pkg/types"
)

// MemIndex is an in-memory EntityIndex for tests.
type MemIndex struct {
	mu       sync.RWMutex
	entities map[string]types.EntityInfo
}

var _ types.EntityIndex = (*MemIndex)(nil)

// NewMemIndex returns an empty in-memory index.
func NewMemIndex() *MemIndex {
	return &MemIndex{entities: make(map[string]types.EntityInfo)}
}

// Put inserts or updates an entity record, deriving the kind from the ID
// prefix when unset.
func (m *MemIndex) Put(info types.EntityInfo) error {
	kind, err := types.KindForID(info.EntityID)
	if err != nil {
		return err
	}
	if info.EntityType == "" {
		info.EntityType = kind
	} else if info.EntityType != kind {
		return fmt.Errorf("entity type %q does not match id %q: %w", info.EntityType, info.EntityID, types.ErrValidation)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entities[info.EntityID] = info
	return nil
}

// Lookup implements types.EntityIndex.
func (m *MemIndex) Lookup(id string) (types.EntityInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	info, ok := m.entities[id]
	if !ok {
		return types.EntityInfo{}, fmt.Errorf("entity %s: %w", id, types.ErrNotFound)
	}
	return info, nil
}

// IDs implements types.EntityIndex.
func (m *MemIndex) IDs() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.entities))
	for id := range m.entities {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// List returns all entities of the given kind ordered by ID. An empty kind
// returns every entity.
func (m *MemIndex) List(kind types.EntityKind) ([]types.EntityInfo, error) {
	ids, _ := m.IDs()
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []types.EntityInfo
	for _, id := range ids {
		info := m.entities[id]
		if kind == "" || info.EntityType == kind {
			out = append(out, info)
		}
	}
	return out, nil
}

// Remove deletes an entity record.
func (m *MemIndex) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entities[id]; !ok {
		return fmt.Errorf("entity %s: %w", id, types.ErrNotFound)
	}
	delete(m.entities, id)
	return nil
}
