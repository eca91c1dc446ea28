package linkstore

import (
	"fmt"
	"sync"

	"github.com/mesh-intelligence/loom/pkg/types"
)

// MemStore is an in-memory LinkStore for tests and ephemeral runs. It mirrors
// FileStore semantics, including copy-on-read so callers cannot mutate the
// stored collection behind the store's back.
type MemStore struct {
	mu    sync.Mutex
	links []types.Link
}

var _ types.LinkStore = (*MemStore)(nil)

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// Load implements types.LinkStore.
func (s *MemStore) Load() ([]types.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyLinks(s.links), nil
}

// Save implements types.LinkStore.
func (s *MemStore) Save(links []types.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.links = copyLinks(links)
	return nil
}

// Update implements types.LinkStore.
func (s *MemStore) Update(fn func(links []types.Link) ([]types.Link, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(copyLinks(s.links))
	if err != nil {
		return err
	}
	s.links = copyLinks(next)
	return nil
}

// Append implements types.LinkStore.
func (s *MemStore) Append(link types.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.links = append(s.links, link)
	return nil
}

// Get implements types.LinkStore.
func (s *MemStore) Get(linkID string) (types.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.links {
		if l.LinkID == linkID {
			return l, nil
		}
	}
	return types.Link{}, fmt.Errorf("link %s: %w", linkID, types.ErrNotFound)
}

// GetForEntity implements types.LinkStore.
func (s *MemStore) GetForEntity(entityID string) ([]types.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []types.Link
	for _, l := range s.links {
		if l.Touches(entityID) {
			out = append(out, l)
		}
	}
	return out, nil
}

// Delete implements types.LinkStore.
func (s *MemStore) Delete(linkID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.links {
		if l.LinkID == linkID {
			s.links = append(s.links[:i], s.links[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("link %s: %w", linkID, types.ErrNotFound)
}

func copyLinks(links []types.Link) []types.Link {
	out := make([]types.Link, len(links))
	copy(out, links)
	return out
}
