package types

// LinkStore persists the trace link collection. Implementations guarantee
// atomic visibility: readers never observe a partially written document.
// Implements: prd002-link-filestore R1.
type LinkStore interface {
	// Load returns every stored link. A missing backing document yields an
	// empty slice, not an error.
	Load() ([]Link, error)

	// Save replaces the entire collection.
	Save(links []Link) error

	// Update applies fn to the current collection under the store's write
	// lock and persists the result. fn receives the freshly loaded links and
	// returns the full replacement set. Returning an error from fn aborts
	// the update without writing.
	Update(fn func(links []Link) ([]Link, error)) error

	// Append adds one link under the store's write lock.
	Append(link Link) error

	// Get returns the link with the given ID. Returns an error wrapping
	// ErrNotFound when absent.
	Get(linkID string) (Link, error)

	// GetForEntity returns every link that has entityID as source or target.
	GetForEntity(entityID string) ([]Link, error)

	// Delete removes the link with the given ID. Returns an error wrapping
	// ErrNotFound when absent.
	Delete(linkID string) error
}
