// Package matrix generates the requirements traceability matrix: one row per
// requirement with its linked artifacts partitioned by kind, filterable,
// sortable, and exportable to CSV, JSON, HTML, Markdown, and plain text.
// Implements: prd006-trace-matrix; docs/ARCHITECTURE § Reporting.
package matrix

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mesh-intelligence/loom/pkg/types"
)

// Verification status values carried by RTM rows.
const (
	StatusVerified    = "Verified"
	StatusNotVerified = "Not Verified"
)

// Verification method values derived from a row's linked evidence.
const (
	MethodTest         = "Test"
	MethodAnalysis     = "Analysis"
	MethodNotSpecified = "Not Specified"
)

// Row is one requirement's traceability record.
type Row struct {
	RequirementID      string   `json:"requirement_id"`
	Title              string   `json:"title"`
	Category           string   `json:"category"`
	Priority           string   `json:"priority"`
	Status             string   `json:"status"`
	LinkedTests        []string `json:"linked_tests"`
	LinkedDesigns      []string `json:"linked_designs"`
	LinkedRisks        []string `json:"linked_risks"`
	LinkedDocs         []string `json:"linked_docs"`
	VerificationStatus string   `json:"verification_status"`
	VerificationMethod string   `json:"verification_method"`
	Coverage           float64  `json:"coverage_percentage"`
	Description        string   `json:"description,omitempty"`
}

// Matrix is the generated RTM.
type Matrix struct {
	Rows        []Row     `json:"rows"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Generator builds matrices from the entity registry and the link set.
type Generator struct {
	index types.EntityIndex
}

// NewGenerator returns a generator enumerating requirements through index.
func NewGenerator(index types.EntityIndex) *Generator {
	return &Generator{index: index}
}

// Build produces one row per requirement passing cfg's filters, sorted by
// cfg's sort key.
func (g *Generator) Build(links []types.Link, cfg Config) (Matrix, error) {
	if err := cfg.Validate(); err != nil {
		return Matrix{}, err
	}

	ids, err := g.index.IDs()
	if err != nil {
		return Matrix{}, err
	}

	incident := make(map[string][]types.Link)
	for _, l := range links {
		incident[l.SourceID] = append(incident[l.SourceID], l)
		if l.TargetID != l.SourceID {
			incident[l.TargetID] = append(incident[l.TargetID], l)
		}
	}

	m := Matrix{GeneratedAt: time.Now().UTC()}
	for _, id := range ids {
		if kind, err := types.KindForID(id); err != nil || kind != types.KindRequirement {
			continue
		}
		info, err := g.index.Lookup(id)
		if err != nil {
			return Matrix{}, fmt.Errorf("enumerating requirements: %w", err)
		}

		row := buildRow(info, incident[id])
		if cfg.admits(row) {
			m.Rows = append(m.Rows, row)
		}
	}

	sortRows(m.Rows, cfg.SortBy)
	return m, nil
}

// buildRow partitions a requirement's incident links by the prefix of the
// opposite endpoint and derives the verification columns.
func buildRow(info types.EntityInfo, incident []types.Link) Row {
	row := Row{
		RequirementID: info.EntityID,
		Title:         info.Title,
		Category:      info.Category,
		Priority:      info.Priority,
		Status:        info.Status,
		Description:   info.Description,
	}

	seen := make(map[string]bool)
	for _, l := range incident {
		other := l.Other(info.EntityID)
		if other == "" || seen[other] {
			continue
		}
		seen[other] = true
		kind, err := types.KindForID(other)
		if err != nil {
			continue
		}
		switch kind {
		case types.KindTestCase:
			row.LinkedTests = append(row.LinkedTests, other)
		case types.KindRequirement:
			row.LinkedDesigns = append(row.LinkedDesigns, other)
		case types.KindRisk:
			row.LinkedRisks = append(row.LinkedRisks, other)
		case types.KindDocument:
			row.LinkedDocs = append(row.LinkedDocs, other)
		}
	}
	sort.Strings(row.LinkedTests)
	sort.Strings(row.LinkedDesigns)
	sort.Strings(row.LinkedRisks)
	sort.Strings(row.LinkedDocs)

	if info.Status == "Verified" || info.Status == "Validated" {
		row.VerificationStatus = StatusVerified
	} else {
		row.VerificationStatus = StatusNotVerified
	}
	switch {
	case len(row.LinkedTests) > 0:
		row.VerificationMethod = MethodTest
		row.Coverage = 100
	case len(row.LinkedDocs) > 0:
		row.VerificationMethod = MethodAnalysis
	default:
		row.VerificationMethod = MethodNotSpecified
	}
	return row
}

// priorityRank orders Critical < High < Medium < Low; anything else sorts
// after Low.
func priorityRank(p string) int {
	switch strings.ToLower(p) {
	case "critical":
		return 0
	case "high":
		return 1
	case "medium":
		return 2
	case "low":
		return 3
	}
	return 4
}

func sortRows(rows []Row, key string) {
	less := func(a, b Row) bool { return a.RequirementID < b.RequirementID }
	switch key {
	case SortByTitle:
		less = func(a, b Row) bool {
			at, bt := strings.ToLower(a.Title), strings.ToLower(b.Title)
			if at != bt {
				return at < bt
			}
			return a.RequirementID < b.RequirementID
		}
	case SortByPriority:
		less = func(a, b Row) bool {
			ar, br := priorityRank(a.Priority), priorityRank(b.Priority)
			if ar != br {
				return ar < br
			}
			return a.RequirementID < b.RequirementID
		}
	case SortByStatus:
		less = func(a, b Row) bool {
			if a.Status != b.Status {
				return a.Status < b.Status
			}
			return a.RequirementID < b.RequirementID
		}
	case SortByVerification:
		less = func(a, b Row) bool {
			if a.VerificationStatus != b.VerificationStatus {
				return a.VerificationStatus < b.VerificationStatus
			}
			return a.RequirementID < b.RequirementID
		}
	case SortByCoverage:
		// Coverage sorts descending: covered rows first.
		less = func(a, b Row) bool {
			if a.Coverage != b.Coverage {
				return a.Coverage > b.Coverage
			}
			return a.RequirementID < b.RequirementID
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return less(rows[i], rows[j]) })
}
