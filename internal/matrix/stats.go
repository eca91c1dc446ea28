package matrix

import (
	"github.com/mesh-intelligence/loom/pkg/types"
)

// Stats aggregates a generated matrix.
type Stats struct {
	TotalRequirements int            `json:"total_requirements"`
	ByCategory        map[string]int `json:"by_category"`
	ByPriority        map[string]int `json:"by_priority"`
	Verified          int            `json:"verified"`
	NotVerified       int            `json:"not_verified"`
	CoveredByTests    int            `json:"covered_by_tests"`
	CoveragePercent   float64        `json:"coverage_percent"`
	Quality           string         `json:"quality"`
}

// ComputeStats aggregates totals, category/priority/verification breakdowns,
// and the coverage quality label over the matrix rows.
func ComputeStats(m Matrix) Stats {
	s := Stats{
		TotalRequirements: len(m.Rows),
		ByCategory:        make(map[string]int),
		ByPriority:        make(map[string]int),
	}
	for _, row := range m.Rows {
		category := row.Category
		if category == "" {
			category = "uncategorized"
		}
		s.ByCategory[category]++

		priority := row.Priority
		if priority == "" {
			priority = "unspecified"
		}
		s.ByPriority[priority]++

		if row.VerificationStatus == StatusVerified {
			s.Verified++
		} else {
			s.NotVerified++
		}
		if len(row.LinkedTests) > 0 {
			s.CoveredByTests++
		}
	}
	if s.TotalRequirements > 0 {
		s.CoveragePercent = float64(s.CoveredByTests) / float64(s.TotalRequirements) * 100
	}
	s.Quality = types.QualityLabel(s.CoveragePercent)
	return s
}
