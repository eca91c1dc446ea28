package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/loom/pkg/types"
)

func TestDetectOrphans(t *testing.T) {
	idx := seedIndex(t, "REQ-001", "REQ-002", "TC-001", "TC-002", "RISK-001", "DOC-001")
	d := NewOrphanDetector(idx)

	links := []types.Link{
		mkLink("l1", "TC-001", "REQ-001", types.LinkVerifies),
	}

	orphans, err := d.Detect(links)
	require.NoError(t, err)

	var ids []string
	for _, o := range orphans {
		ids = append(ids, o.EntityID)
		assert.Equal(t, "no traceability links found", o.Reason)
	}
	// Grouped Requirement, TestCase, Risk, Document; sorted inside groups.
	assert.Equal(t, []string{"REQ-002", "TC-002", "RISK-001", "DOC-001"}, ids)

	kinds := []types.EntityKind{orphans[0].EntityType, orphans[1].EntityType, orphans[2].EntityType, orphans[3].EntityType}
	assert.Equal(t, []types.EntityKind{
		types.KindRequirement, types.KindTestCase, types.KindRisk, types.KindDocument,
	}, kinds)
}

func TestDetectOrphansNoneLinked(t *testing.T) {
	idx := seedIndex(t, "REQ-001", "TC-001")
	d := NewOrphanDetector(idx)

	orphans, err := d.Detect(nil)
	require.NoError(t, err)
	assert.Len(t, orphans, 2)
}

func TestDetectOrphansAllLinked(t *testing.T) {
	idx := seedIndex(t, "REQ-001", "TC-001")
	d := NewOrphanDetector(idx)

	links := []types.Link{mkLink("l1", "TC-001", "REQ-001", types.LinkVerifies)}
	orphans, err := d.Detect(links)
	require.NoError(t, err)
	assert.Empty(t, orphans)
}

func TestDetectOrphansEmptyRegistry(t *testing.T) {
	idx := seedIndex(t)
	d := NewOrphanDetector(idx)

	orphans, err := d.Detect(nil)
	require.NoError(t, err)
	assert.Empty(t, orphans)
}
