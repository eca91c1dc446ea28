package graph

import (
	"fmt"
	"sort"

	"github.com/mesh-intelligence/loom/pkg/types"
)

// uncategorized buckets requirements with no category set in the registry.
const uncategorized = "uncategorized"

// CoverageAnalyzer measures requirement-to-test linkage.
type CoverageAnalyzer struct {
	index types.EntityIndex
}

// NewCoverageAnalyzer returns an analyzer enumerating requirements through
// index.
func NewCoverageAnalyzer(index types.EntityIndex) *CoverageAnalyzer {
	return &CoverageAnalyzer{index: index}
}

// Analyze reports which requirements have at least one link to a test case,
// in either direction, with a per-category breakdown.
func (a *CoverageAnalyzer) Analyze(links []types.Link) (types.CoverageReport, error) {
	hasTest := make(map[string]bool)
	for _, l := range links {
		if kindOf(l.SourceID) == types.KindRequirement && kindOf(l.TargetID) == types.KindTestCase {
			hasTest[l.SourceID] = true
		}
		if kindOf(l.TargetID) == types.KindRequirement && kindOf(l.SourceID) == types.KindTestCase {
			hasTest[l.TargetID] = true
		}
	}

	ids, err := a.index.IDs()
	if err != nil {
		return types.CoverageReport{}, err
	}

	report := types.CoverageReport{
		ByCategory: make(map[string]types.CategoryCoverage),
	}
	for _, id := range ids {
		if kindOf(id) != types.KindRequirement {
			continue
		}
		info, err := a.index.Lookup(id)
		if err != nil {
			return types.CoverageReport{}, fmt.Errorf("enumerating requirements: %w", err)
		}
		category := info.Category
		if category == "" {
			category = uncategorized
		}

		report.TotalRequirements++
		slice := report.ByCategory[category]
		slice.Total++
		if hasTest[id] {
			report.CoveredRequirements++
			slice.Covered++
		} else {
			report.UncoveredRequirements = append(report.UncoveredRequirements, id)
		}
		report.ByCategory[category] = slice
	}

	sort.Strings(report.UncoveredRequirements)
	if report.TotalRequirements > 0 {
		report.Percent = float64(report.CoveredRequirements) / float64(report.TotalRequirements) * 100
	}
	report.Quality = types.QualityLabel(report.Percent)
	return report, nil
}
