package registry

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/loom/pkg/types"
)

func openTestIndex(t *testing.T) *SQLiteIndex {
	t.Helper()
	idx, err := Open(filepath.Join(t.TempDir(), "registry.db"))
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })
	return idx
}

func TestSQLiteIndexPutAndLookup(t *testing.T) {
	idx := openTestIndex(t)

	err := idx.Put(types.EntityInfo{
		EntityID: "REQ-001",
		Title:    "User authentication",
		Status:   "Approved",
		Priority: "High",
	})
	require.NoError(t, err)

	got, err := idx.Lookup("REQ-001")
	require.NoError(t, err)
	assert.Equal(t, types.KindRequirement, got.EntityType, "kind derived from prefix")
	assert.Equal(t, "User authentication", got.Title)
	assert.Equal(t, "Approved", got.Status)

	_, err = idx.Lookup("REQ-404")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestSQLiteIndexPutValidation(t *testing.T) {
	idx := openTestIndex(t)

	t.Run("rejects unknown prefix", func(t *testing.T) {
		err := idx.Put(types.EntityInfo{EntityID: "STORY-1"})
		assert.ErrorIs(t, err, types.ErrValidation)
	})

	t.Run("rejects kind mismatching prefix", func(t *testing.T) {
		err := idx.Put(types.EntityInfo{EntityID: "REQ-001", EntityType: types.KindRisk})
		assert.ErrorIs(t, err, types.ErrValidation)
	})
}

func TestSQLiteIndexUpdate(t *testing.T) {
	idx := openTestIndex(t)

	require.NoError(t, idx.Put(types.EntityInfo{EntityID: "TC-001", Title: "first"}))
	require.NoError(t, idx.Put(types.EntityInfo{EntityID: "TC-001", Title: "second", Status: "Passed"}))

	got, err := idx.Lookup("TC-001")
	require.NoError(t, err)
	assert.Equal(t, "second", got.Title)
	assert.Equal(t, "Passed", got.Status)

	ids, err := idx.IDs()
	require.NoError(t, err)
	assert.Equal(t, []string{"TC-001"}, ids, "update must not duplicate the row")
}

func TestSQLiteIndexIDsSorted(t *testing.T) {
	idx := openTestIndex(t)
	for _, id := range []string{"TC-002", "REQ-001", "RISK-001", "TC-001", "DOC-001"} {
		require.NoError(t, idx.Put(types.EntityInfo{EntityID: id}))
	}

	ids, err := idx.IDs()
	require.NoError(t, err)
	assert.Equal(t, []string{"DOC-001", "REQ-001", "RISK-001", "TC-001", "TC-002"}, ids)
}

func TestSQLiteIndexList(t *testing.T) {
	idx := openTestIndex(t)
	require.NoError(t, idx.Put(types.EntityInfo{EntityID: "REQ-001"}))
	require.NoError(t, idx.Put(types.EntityInfo{EntityID: "REQ-002"}))
	require.NoError(t, idx.Put(types.EntityInfo{EntityID: "TC-001"}))

	reqs, err := idx.List(types.KindRequirement)
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	assert.Equal(t, "REQ-001", reqs[0].EntityID)

	all, err := idx.List("")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSQLiteIndexRemove(t *testing.T) {
	idx := openTestIndex(t)
	require.NoError(t, idx.Put(types.EntityInfo{EntityID: "RISK-001"}))

	require.NoError(t, idx.Remove("RISK-001"))
	assert.ErrorIs(t, idx.Remove("RISK-001"), types.ErrNotFound)
}

func TestSQLiteIndexReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.db")

	idx, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, idx.Put(types.EntityInfo{EntityID: "REQ-001", Title: "persisted"}))
	require.NoError(t, idx.Close())

	idx2, err := Open(path)
	require.NoError(t, err)
	defer idx2.Close()

	got, err := idx2.Lookup("REQ-001")
	require.NoError(t, err)
	assert.Equal(t, "persisted", got.Title)
}

func TestMemIndexMirrorsSQLite(t *testing.T) {
	mem := NewMemIndex()

	require.NoError(t, mem.Put(types.EntityInfo{EntityID: "REQ-001", Title: "auth"}))
	require.NoError(t, mem.Put(types.EntityInfo{EntityID: "TC-001"}))

	got, err := mem.Lookup("REQ-001")
	require.NoError(t, err)
	assert.Equal(t, types.KindRequirement, got.EntityType)

	ids, err := mem.IDs()
	require.NoError(t, err)
	assert.Equal(t, []string{"REQ-001", "TC-001"}, ids)

	reqs, err := mem.List(types.KindRequirement)
	require.NoError(t, err)
	assert.Len(t, reqs, 1)

	require.NoError(t, mem.Remove("TC-001"))
	assert.ErrorIs(t, mem.Remove("TC-001"), types.ErrNotFound)
	_, err = mem.Lookup("TC-001")
	assert.ErrorIs(t, err, types.ErrNotFound)

	assert.ErrorIs(t, mem.Put(types.EntityInfo{EntityID: "BAD-1"}), types.ErrValidation)
}
