package graph

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/loom/pkg/types"
)

func TestImpactAnalyze(t *testing.T) {
	links := []types.Link{
		mkLink("l1", "REQ-001", "REQ-002", types.LinkDependsOn),
		mkLink("l2", "REQ-002", "REQ-003", types.LinkDependsOn),
		mkLink("l3", "TC-001", "REQ-002", types.LinkVerifies),
		mkLink("l4", "REQ-002", "DOC-001", types.LinkRelated),
		mkLink("l5", "RISK-001", "REQ-002", types.LinkRelated),
	}

	a := NewImpactAnalyzer()
	report := a.Analyze(links, "REQ-002")

	assert.Equal(t, "REQ-002", report.EntityID)
	assert.Equal(t, []string{"DOC-001", "REQ-001", "REQ-003", "RISK-001", "TC-001"}, report.Direct)
	assert.Equal(t, []string{"DOC-001", "REQ-001", "REQ-003", "RISK-001", "TC-001"}, report.Transitive)
	assert.Equal(t, []string{"TC-001"}, report.AffectedTests)
	assert.Equal(t, []string{"RISK-001"}, report.AffectedRisks)
	assert.Equal(t, []string{"DOC-001"}, report.AffectedDocs)
	assert.Equal(t, 2, report.CountByKind[types.KindRequirement])
	assert.Equal(t, 1, report.CountByKind[types.KindTestCase])
	assert.Equal(t, types.ImpactModerate, report.Severity)
}

func TestImpactTransitiveBeyondDirect(t *testing.T) {
	// REQ-001 <- REQ-002 <- REQ-003 plus a test hanging off the far end.
	links := []types.Link{
		mkLink("l1", "REQ-002", "REQ-001", types.LinkDerivedFrom),
		mkLink("l2", "REQ-003", "REQ-002", types.LinkDerivedFrom),
		mkLink("l3", "TC-001", "REQ-003", types.LinkVerifies),
	}

	a := NewImpactAnalyzer()
	report := a.Analyze(links, "REQ-001")

	assert.Equal(t, []string{"REQ-002"}, report.Direct)
	assert.Equal(t, []string{"REQ-002", "REQ-003", "TC-001"}, report.Transitive)
	assert.Equal(t, types.ImpactLow, report.Severity)
}

func TestImpactSeverityBands(t *testing.T) {
	a := NewImpactAnalyzer()

	build := func(n int) []types.Link {
		var links []types.Link
		for i := 0; i < n; i++ {
			child := fmt.Sprintf("REQ-%03d", i+100)
			links = append(links, mkLink(fmt.Sprintf("l%d", i), "REQ-001", child, types.LinkDependsOn))
		}
		return links
	}

	assert.Equal(t, types.ImpactLow, a.Analyze(build(3), "REQ-001").Severity)
	assert.Equal(t, types.ImpactModerate, a.Analyze(build(4), "REQ-001").Severity)
	assert.Equal(t, types.ImpactModerate, a.Analyze(build(9), "REQ-001").Severity)
	assert.Equal(t, types.ImpactHigh, a.Analyze(build(10), "REQ-001").Severity)
}

func TestImpactIsolatedEntity(t *testing.T) {
	a := NewImpactAnalyzer()
	report := a.Analyze(nil, "REQ-001")

	assert.Empty(t, report.Direct)
	assert.Empty(t, report.Transitive)
	assert.Equal(t, types.ImpactLow, report.Severity)
}

func TestImpactExcludesSelfOnCycle(t *testing.T) {
	// Corrupt cyclic data: the entity itself must not appear in its own
	// transitive set.
	links := []types.Link{
		mkLink("l1", "REQ-001", "REQ-002", types.LinkDependsOn),
		mkLink("l2", "REQ-002", "REQ-001", types.LinkDependsOn),
	}

	a := NewImpactAnalyzer()
	report := a.Analyze(links, "REQ-001")
	assert.Equal(t, []string{"REQ-002"}, report.Transitive)
}
