package linkstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/loom/internal/paths"
	"github.com/mesh-intelligence/loom/pkg/types"
)

func sampleLink(id, src, dst string, lt types.LinkType) types.Link {
	srcKind, _ := types.KindForID(src)
	dstKind, _ := types.KindForID(dst)
	return types.Link{
		LinkID:     id,
		SourceType: srcKind,
		SourceID:   src,
		TargetType: dstKind,
		TargetID:   dst,
		LinkType:   lt,
		CreatedAt:  time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
		CreatedBy:  "tester",
	}
}

func TestFileStoreLoadMissing(t *testing.T) {
	store := NewFileStore(t.TempDir())

	links, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir())
	in := []types.Link{
		sampleLink("l1", "TC-001", "REQ-001", types.LinkVerifies),
		sampleLink("l2", "REQ-002", "REQ-001", types.LinkDerivedFrom),
	}

	require.NoError(t, store.Save(in))

	out, err := store.Load()
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, in[0], out[0])
	assert.Equal(t, in[1], out[1])
}

func TestFileStoreDocumentShape(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)
	require.NoError(t, store.Save([]types.Link{sampleLink("l1", "TC-001", "REQ-001", types.LinkVerifies)}))

	data, err := os.ReadFile(filepath.Join(dir, "links.json"))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "1.0", raw["version"])
	links, ok := raw["links"].([]any)
	require.True(t, ok, "links must be an array")
	assert.Len(t, links, 1)
}

func TestFileStoreSaveEmptyKeepsArray(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)
	require.NoError(t, store.Save(nil))

	data, err := os.ReadFile(filepath.Join(dir, "links.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"links": []`)
}

func TestFileStoreCorruptDocument(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "links.json"), []byte("{not json"), 0o644))

	store := NewFileStore(dir)
	_, err := store.Load()
	assert.ErrorIs(t, err, types.ErrParse)
}

func TestFileStoreUnsupportedVersion(t *testing.T) {
	dir := t.TempDir()
	doc := `{"version":"2.0","links":[]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "links.json"), []byte(doc), 0o644))

	store := NewFileStore(dir)
	_, err := store.Load()
	require.ErrorIs(t, err, types.ErrParse)
	assert.Contains(t, err.Error(), "2.0")
}

func TestFileStoreGet(t *testing.T) {
	store := NewFileStore(t.TempDir())
	require.NoError(t, store.Save([]types.Link{
		sampleLink("l1", "TC-001", "REQ-001", types.LinkVerifies),
	}))

	got, err := store.Get("l1")
	require.NoError(t, err)
	assert.Equal(t, "TC-001", got.SourceID)

	_, err = store.Get("absent")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestFileStoreGetForEntity(t *testing.T) {
	store := NewFileStore(t.TempDir())
	require.NoError(t, store.Save([]types.Link{
		sampleLink("l1", "TC-001", "REQ-001", types.LinkVerifies),
		sampleLink("l2", "REQ-002", "REQ-001", types.LinkDerivedFrom),
		sampleLink("l3", "TC-002", "REQ-002", types.LinkVerifies),
	}))

	links, err := store.GetForEntity("REQ-001")
	require.NoError(t, err)
	assert.Len(t, links, 2)

	links, err = store.GetForEntity("REQ-099")
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestFileStoreDelete(t *testing.T) {
	store := NewFileStore(t.TempDir())
	require.NoError(t, store.Save([]types.Link{
		sampleLink("l1", "TC-001", "REQ-001", types.LinkVerifies),
		sampleLink("l2", "REQ-002", "REQ-001", types.LinkDerivedFrom),
	}))

	require.NoError(t, store.Delete("l1"))

	links, err := store.Load()
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "l2", links[0].LinkID)

	assert.ErrorIs(t, store.Delete("l1"), types.ErrNotFound)
}

func TestFileStoreUpdate(t *testing.T) {
	store := NewFileStore(t.TempDir())
	require.NoError(t, store.Save([]types.Link{
		sampleLink("l1", "TC-001", "REQ-001", types.LinkVerifies),
	}))

	err := store.Update(func(links []types.Link) ([]types.Link, error) {
		return append(links, sampleLink("l2", "TC-002", "REQ-001", types.LinkVerifies)), nil
	})
	require.NoError(t, err)

	links, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, links, 2)
}

func TestFileStoreUpdateAbort(t *testing.T) {
	store := NewFileStore(t.TempDir())
	require.NoError(t, store.Save([]types.Link{
		sampleLink("l1", "TC-001", "REQ-001", types.LinkVerifies),
	}))

	wantErr := assert.AnError
	err := store.Update(func(links []types.Link) ([]types.Link, error) {
		return nil, wantErr
	})
	require.ErrorIs(t, err, wantErr)

	// Aborted update leaves the document untouched.
	links, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, links, 1)
}

func TestFileStoreUpdateReleasesLock(t *testing.T) {
	store := NewFileStore(t.TempDir())

	// Two sequential updates prove the lock is released between cycles.
	for i := 0; i < 2; i++ {
		err := store.Update(func(links []types.Link) ([]types.Link, error) {
			return links, nil
		})
		require.NoError(t, err)
	}
}

func TestFileStoreUpdateContentionSurfacesConflict(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	// Hold the advisory lock on a second descriptor past the retry budget.
	// flock conflicts across open descriptors, so Update cannot acquire it.
	held := newStoreLock(paths.LockFile(dir))
	require.NoError(t, held.acquire())
	defer held.release()

	mutated := false
	err := store.Update(func(links []types.Link) ([]types.Link, error) {
		mutated = true
		return links, nil
	})
	assert.ErrorIs(t, err, types.ErrConflict)
	assert.False(t, mutated, "mutation must not run without the lock")

	// Releasing the competing holder lets the next update through.
	require.NoError(t, held.release())
	require.NoError(t, store.Update(func(links []types.Link) ([]types.Link, error) {
		return links, nil
	}))
}

func TestFileStoreUpdateCorruptRefusesWrite(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "links.json"), []byte("{broken"), 0o644))

	store := NewFileStore(dir)
	called := false
	err := store.Update(func(links []types.Link) ([]types.Link, error) {
		called = true
		return links, nil
	})
	assert.ErrorIs(t, err, types.ErrParse)
	assert.False(t, called, "callback must not run on a corrupt document")

	// The corrupt document is preserved for inspection.
	data, rerr := os.ReadFile(filepath.Join(dir, "links.json"))
	require.NoError(t, rerr)
	assert.Equal(t, "{broken", string(data))
}
