package graph

import (
	"sort"

	"github.com/mesh-intelligence/loom/pkg/types"
)

// Severity thresholds on the transitive reach of a change.
const (
	impactHighAt     = 10
	impactModerateAt = 4
)

// ImpactAnalyzer computes the blast radius of changing one entity.
type ImpactAnalyzer struct {
	traverser *Traverser
}

// NewImpactAnalyzer returns an analyzer.
func NewImpactAnalyzer() *ImpactAnalyzer {
	return &ImpactAnalyzer{traverser: NewTraverser()}
}

// Analyze reports everything reachable from entityID through the link graph:
// one-hop neighbors, the transitive closure in both directions, kind
// breakdowns, and a severity grade from the closure size.
func (a *ImpactAnalyzer) Analyze(links []types.Link, entityID string) types.ImpactReport {
	directSet := make(map[string]bool)
	for _, l := range links {
		if other := l.Other(entityID); other != "" {
			directSet[other] = true
		}
	}

	transitiveSet := make(map[string]bool)
	collectIDs(a.traverser.TraceForward(links, entityID).Nodes, transitiveSet)
	collectIDs(a.traverser.TraceBackward(links, entityID).Nodes, transitiveSet)
	delete(transitiveSet, entityID)

	report := types.ImpactReport{
		EntityID:    entityID,
		Direct:      sortedIDs(directSet),
		Transitive:  sortedIDs(transitiveSet),
		CountByKind: make(map[types.EntityKind]int),
	}
	for _, id := range report.Transitive {
		kind := kindOf(id)
		report.CountByKind[kind]++
		switch kind {
		case types.KindTestCase:
			report.AffectedTests = append(report.AffectedTests, id)
		case types.KindRisk:
			report.AffectedRisks = append(report.AffectedRisks, id)
		case types.KindDocument:
			report.AffectedDocs = append(report.AffectedDocs, id)
		}
	}

	switch n := len(report.Transitive); {
	case n >= impactHighAt:
		report.Severity = types.ImpactHigh
	case n >= impactModerateAt:
		report.Severity = types.ImpactModerate
	default:
		report.Severity = types.ImpactLow
	}
	return report
}

// collectIDs walks a trace tree adding every node ID to set.
func collectIDs(nodes []types.PathNode, set map[string]bool) {
	for i := range nodes {
		set[nodes[i].EntityID] = true
		collectIDs(nodes[i].Children, set)
	}
}

func sortedIDs(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
