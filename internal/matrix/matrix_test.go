package matrix

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/loom/internal/registry"
	"github.com/mesh-intelligence/loom/pkg/types"
)

func testIndex(t *testing.T) *registry.MemIndex {
	t.Helper()
	idx := registry.NewMemIndex()
	entities := []types.EntityInfo{
		{EntityID: "REQ-001", Title: "Authentication", Category: "security", Priority: "Critical", Status: "Verified"},
		{EntityID: "REQ-002", Title: "audit logging", Category: "security", Priority: "Low", Status: "Draft"},
		{EntityID: "REQ-003", Title: "Export formats", Category: "reporting", Priority: "Medium", Status: "Validated"},
		{EntityID: "TC-001"},
		{EntityID: "TC-002"},
		{EntityID: "RISK-001"},
		{EntityID: "DOC-001"},
	}
	for _, e := range entities {
		require.NoError(t, idx.Put(e))
	}
	return idx
}

func testLink(id, src, dst string, lt types.LinkType) types.Link {
	srcKind, _ := types.KindForID(src)
	dstKind, _ := types.KindForID(dst)
	return types.Link{
		LinkID:     id,
		SourceType: srcKind,
		SourceID:   src,
		TargetType: dstKind,
		TargetID:   dst,
		LinkType:   lt,
		CreatedAt:  time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		CreatedBy:  "tester",
	}
}

func testLinks() []types.Link {
	return []types.Link{
		testLink("l1", "TC-001", "REQ-001", types.LinkVerifies),
		testLink("l2", "TC-002", "REQ-001", types.LinkVerifies),
		testLink("l3", "REQ-002", "REQ-001", types.LinkDerivedFrom),
		testLink("l4", "RISK-001", "REQ-001", types.LinkRelated),
		testLink("l5", "REQ-002", "DOC-001", types.LinkRelated),
	}
}

func TestBuildPartitionsRows(t *testing.T) {
	g := NewGenerator(testIndex(t))

	m, err := g.Build(testLinks(), DefaultConfig())
	require.NoError(t, err)
	require.Len(t, m.Rows, 3)

	r1 := m.Rows[0]
	assert.Equal(t, "REQ-001", r1.RequirementID)
	assert.Equal(t, []string{"TC-001", "TC-002"}, r1.LinkedTests)
	assert.Equal(t, []string{"REQ-002"}, r1.LinkedDesigns)
	assert.Equal(t, []string{"RISK-001"}, r1.LinkedRisks)
	assert.Empty(t, r1.LinkedDocs)
	assert.Equal(t, StatusVerified, r1.VerificationStatus)
	assert.Equal(t, MethodTest, r1.VerificationMethod)
	assert.Equal(t, 100.0, r1.Coverage)

	r2 := m.Rows[1]
	assert.Equal(t, "REQ-002", r2.RequirementID)
	assert.Equal(t, []string{"REQ-001"}, r2.LinkedDesigns)
	assert.Equal(t, []string{"DOC-001"}, r2.LinkedDocs)
	assert.Equal(t, StatusNotVerified, r2.VerificationStatus)
	assert.Equal(t, MethodAnalysis, r2.VerificationMethod)
	assert.Equal(t, 0.0, r2.Coverage)

	r3 := m.Rows[2]
	assert.Equal(t, "REQ-003", r3.RequirementID)
	assert.Empty(t, r3.LinkedTests)
	assert.Equal(t, StatusVerified, r3.VerificationStatus, "Validated counts as verified")
	assert.Equal(t, MethodNotSpecified, r3.VerificationMethod)
}

func TestBuildFilters(t *testing.T) {
	g := NewGenerator(testIndex(t))

	tests := []struct {
		name string
		cfg  Config
		want []string
	}{
		{
			name: "category",
			cfg:  Config{Categories: []string{"security"}},
			want: []string{"REQ-001", "REQ-002"},
		},
		{
			name: "priority case-insensitive",
			cfg:  Config{Priorities: []string{"critical", "MEDIUM"}},
			want: []string{"REQ-001", "REQ-003"},
		},
		{
			name: "status",
			cfg:  Config{Statuses: []string{"Draft"}},
			want: []string{"REQ-002"},
		},
		{
			name: "verification",
			cfg:  Config{Verification: []string{StatusVerified}},
			want: []string{"REQ-001", "REQ-003"},
		},
		{
			name: "combined",
			cfg:  Config{Categories: []string{"security"}, Verification: []string{StatusVerified}},
			want: []string{"REQ-001"},
		},
		{
			name: "no match",
			cfg:  Config{Categories: []string{"absent"}},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := g.Build(testLinks(), tt.cfg)
			require.NoError(t, err)
			var ids []string
			for _, r := range m.Rows {
				ids = append(ids, r.RequirementID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestBuildSorting(t *testing.T) {
	g := NewGenerator(testIndex(t))

	tests := []struct {
		sortBy string
		want   []string
	}{
		{SortByID, []string{"REQ-001", "REQ-002", "REQ-003"}},
		{SortByTitle, []string{"REQ-002", "REQ-001", "REQ-003"}},
		{SortByPriority, []string{"REQ-001", "REQ-003", "REQ-002"}},
		{SortByStatus, []string{"REQ-002", "REQ-003", "REQ-001"}},
		// "Not Verified" sorts before "Verified".
		{SortByVerification, []string{"REQ-002", "REQ-001", "REQ-003"}},
		// Coverage descending: the tested requirement first.
		{SortByCoverage, []string{"REQ-001", "REQ-002", "REQ-003"}},
	}

	for _, tt := range tests {
		t.Run(tt.sortBy, func(t *testing.T) {
			m, err := g.Build(testLinks(), Config{SortBy: tt.sortBy})
			require.NoError(t, err)
			var ids []string
			for _, r := range m.Rows {
				ids = append(ids, r.RequirementID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestBuildRejectsBadSortKey(t *testing.T) {
	g := NewGenerator(testIndex(t))
	_, err := g.Build(nil, Config{SortBy: "size"})
	assert.ErrorIs(t, err, types.ErrValidation)
}

func TestBuildEmptyRegistry(t *testing.T) {
	g := NewGenerator(registry.NewMemIndex())
	m, err := g.Build(nil, DefaultConfig())
	require.NoError(t, err)
	assert.Empty(t, m.Rows)
	assert.False(t, m.GeneratedAt.IsZero())
}

func TestPriorityRank(t *testing.T) {
	assert.Less(t, priorityRank("Critical"), priorityRank("High"))
	assert.Less(t, priorityRank("High"), priorityRank("Medium"))
	assert.Less(t, priorityRank("Medium"), priorityRank("Low"))
	assert.Less(t, priorityRank("low"), priorityRank("unknown"))
}
