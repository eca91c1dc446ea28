// Package linkstore persists the trace link collection as a single versioned
// JSON document with atomic writes and advisory locking.
// Implements: prd002-link-filestore; docs/ARCHITECTURE § Data Design.
package linkstore

import (
	"fmt"
	"os"

	"github.com/mesh-intelligence/loom/internal/atomicfile"
	"github.com/mesh-intelligence/loom/internal/paths"
	"github.com/mesh-intelligence/loom/pkg/types"
)

// FileStore is the production LinkStore: one links.json document per data
// directory, replaced atomically on every save, with a links.lock advisory
// lock serializing read-modify-write cycles across processes.
type FileStore struct {
	path     string
	lockPath string
}

// compile-time interface check
var _ types.LinkStore = (*FileStore)(nil)

// NewFileStore returns a store rooted at dataDir. The directory must already
// exist; scaffolding is the caller's responsibility.
func NewFileStore(dataDir string) *FileStore {
	return &FileStore{
		path:     paths.LinksFile(dataDir),
		lockPath: paths.LockFile(dataDir),
	}
}

// Load implements types.LinkStore. A missing document reads as an empty
// collection; a corrupt one is a parse failure, never a silent reset.
func (s *FileStore) Load() ([]types.Link, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []types.Link{}, nil
		}
		return nil, fmt.Errorf("reading %s: %v: %w", s.path, err, types.ErrIO)
	}
	links, err := decodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return links, nil
}

// Save implements types.LinkStore.
func (s *FileStore) Save(links []types.Link) error {
	data, err := encodeDocument(links)
	if err != nil {
		return err
	}
	if err := atomicfile.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %v: %w", s.path, err, types.ErrIO)
	}
	return nil
}

// Update implements types.LinkStore. The advisory lock is held across the
// load, the callback, and the save, so concurrent writers cannot interleave
// and drop each other's links.
func (s *FileStore) Update(fn func(links []types.Link) ([]types.Link, error)) error {
	lock := newStoreLock(s.lockPath)
	if err := lock.acquire(); err != nil {
		return err
	}
	defer lock.release()

	links, err := s.Load()
	if err != nil {
		return err
	}
	next, err := fn(links)
	if err != nil {
		return err
	}
	return s.Save(next)
}

// Append implements types.LinkStore.
func (s *FileStore) Append(link types.Link) error {
	return s.Update(func(links []types.Link) ([]types.Link, error) {
		return append(links, link), nil
	})
}

// Get implements types.LinkStore.
func (s *FileStore) Get(linkID string) (types.Link, error) {
	links, err := s.Load()
	if err != nil {
		return types.Link{}, err
	}
	for _, l := range links {
		if l.LinkID == linkID {
			return l, nil
		}
	}
	return types.Link{}, fmt.Errorf("link %s: %w", linkID, types.ErrNotFound)
}

// GetForEntity implements types.LinkStore.
func (s *FileStore) GetForEntity(entityID string) ([]types.Link, error) {
	links, err := s.Load()
	if err != nil {
		return nil, err
	}
	var out []types.Link
	for _, l := range links {
		if l.Touches(entityID) {
			out = append(out, l)
		}
	}
	return out, nil
}

// Delete implements types.LinkStore.
func (s *FileStore) Delete(linkID string) error {
	return s.Update(func(links []types.Link) ([]types.Link, error) {
		out := links[:0]
		found := false
		for _, l := range links {
			if l.LinkID == linkID {
				found = true
				continue
			}
			out = append(out, l)
		}
		if !found {
			return nil, fmt.Errorf("link %s: %w", linkID, types.ErrNotFound)
		}
		return out, nil
	})
}
