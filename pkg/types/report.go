package types

// ImportStats summarizes a bulk import run. TotalProcessed always equals
// SuccessfulImports + FailedImports + DuplicatesFound.
// Implements: prd007-import-export R3.
type ImportStats struct {
	TotalProcessed    int      `json:"total_processed"`
	SuccessfulImports int      `json:"successful_imports"`
	FailedImports     int      `json:"failed_imports"`
	DuplicatesFound   int      `json:"duplicates_found"`
	ValidationErrors  []string `json:"validation_errors"`
}

// CategoryCoverage is the covered/total split for one requirement category.
type CategoryCoverage struct {
	Total   int `json:"total"`
	Covered int `json:"covered"`
}

// Coverage quality labels shared by the coverage analyzer and matrix stats.
const (
	QualityExcellent = "excellent"
	QualityModerate  = "moderate"
	QualityPoor      = "poor"
)

// QualityLabel grades a coverage percentage.
func QualityLabel(percent float64) string {
	switch {
	case percent >= 80:
		return QualityExcellent
	case percent >= 60:
		return QualityModerate
	default:
		return QualityPoor
	}
}

// CoverageReport measures how completely requirements are linked to test
// cases. Percent is 0 when no requirements are registered.
// Implements: prd012-impact-coverage R1.
type CoverageReport struct {
	TotalRequirements     int                         `json:"total_requirements"`
	CoveredRequirements   int                         `json:"covered_requirements"`
	UncoveredRequirements []string                    `json:"uncovered_requirements"`
	Percent               float64                     `json:"percent"`
	ByCategory            map[string]CategoryCoverage `json:"by_category"`
	Quality               string                      `json:"quality"`
}

// ImpactSeverity grades how widely a change to one entity propagates.
type ImpactSeverity string

// Impact severities, ordered by transitive reach.
const (
	ImpactLow      ImpactSeverity = "low"
	ImpactModerate ImpactSeverity = "moderate"
	ImpactHigh     ImpactSeverity = "high"
)

// ImpactReport lists everything reachable from a changed entity. Direct holds
// one-hop neighbors; Transitive holds the full closure in both directions,
// excluding the entity itself.
// Implements: prd012-impact-coverage R2.
type ImpactReport struct {
	EntityID      string             `json:"entity_id"`
	Direct        []string           `json:"direct"`
	Transitive    []string           `json:"transitive"`
	AffectedTests []string           `json:"affected_tests"`
	AffectedRisks []string           `json:"affected_risks"`
	AffectedDocs  []string           `json:"affected_docs"`
	CountByKind   map[EntityKind]int `json:"count_by_kind"`
	Severity      ImpactSeverity     `json:"severity"`
}
