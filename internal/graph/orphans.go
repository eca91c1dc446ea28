package graph

import (
	"sort"

	"github.com/mesh-intelligence/loom/pkg/types"
)

// orphanReason is the fixed reason attached to every orphan report entry.
const orphanReason = "no traceability links found"

// OrphanDetector finds registered entities no trace link touches.
type OrphanDetector struct {
	index types.EntityIndex
}

// NewOrphanDetector returns a detector enumerating entities through index.
func NewOrphanDetector(index types.EntityIndex) *OrphanDetector {
	return &OrphanDetector{index: index}
}

// kindOrder fixes the grouping order of the orphan report.
var kindOrder = []types.EntityKind{
	types.KindRequirement,
	types.KindTestCase,
	types.KindRisk,
	types.KindDocument,
}

// Detect diffs every registered entity ID against the union of link
// endpoints. Results are grouped by kind in a fixed order and sorted by ID
// within each group.
func (d *OrphanDetector) Detect(links []types.Link) ([]types.OrphanedItem, error) {
	linked := make(map[string]bool)
	for _, l := range links {
		linked[l.SourceID] = true
		linked[l.TargetID] = true
	}

	ids, err := d.index.IDs()
	if err != nil {
		return nil, err
	}

	byKind := make(map[types.EntityKind][]string)
	for _, id := range ids {
		if linked[id] {
			continue
		}
		kind := kindOf(id)
		byKind[kind] = append(byKind[kind], id)
	}

	var out []types.OrphanedItem
	for _, kind := range kindOrder {
		group := byKind[kind]
		sort.Strings(group)
		for _, id := range group {
			out = append(out, types.OrphanedItem{
				EntityID:   id,
				EntityType: kind,
				Reason:     orphanReason,
			})
		}
	}
	return out, nil
}
