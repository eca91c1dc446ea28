package matrix

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/mesh-intelligence/loom/pkg/types"
)

// Format selects an RTM export rendering.
type Format string

// Export formats. FormatPDF renders the fixed-width plain-text report; the
// name is kept for command-line compatibility.
const (
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
	FormatPDF      Format = "pdf"
)

// ParseFormat converts a string to a Format, accepting common aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "html":
		return FormatHTML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "pdf", "text", "txt":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("unknown matrix format %q: %w", s, types.ErrValidation)
}

// Export renders the matrix in the chosen format.
func Export(m Matrix, cfg Config, f Format) ([]byte, error) {
	switch f {
	case FormatCSV:
		return ExportCSV(m, cfg)
	case FormatJSON:
		return ExportJSON(m, cfg)
	case FormatHTML:
		return ExportHTML(m, cfg)
	case FormatMarkdown:
		return ExportMarkdown(m, cfg)
	case FormatPDF:
		return ExportText(m, cfg)
	}
	return nil, fmt.Errorf("unknown matrix format %q: %w", f, types.ErrValidation)
}

// reportTitle heads the HTML, Markdown, and text renderings.
const reportTitle = "Requirements Traceability Matrix"

// headerCells returns the column headers. The fixed columns always appear in
// this order; the toggles only ever append.
func headerCells(cfg Config) []string {
	cells := []string{
		"Requirement ID", "Title", "Category", "Priority", "Status",
		"Linked Tests", "Linked Designs", "Linked Risks", "Linked Docs",
		"Verification Status", "Verification Method",
	}
	if cfg.IncludeCoverage {
		cells = append(cells, "Coverage %")
	}
	if cfg.IncludeDescriptions {
		cells = append(cells, "Description")
	}
	return cells
}

// rowCells renders one row in headerCells order. Linked-entity lists are
// semicolon-joined.
func rowCells(r Row, cfg Config) []string {
	cells := []string{
		r.RequirementID, r.Title, r.Category, r.Priority, r.Status,
		strings.Join(r.LinkedTests, ";"),
		strings.Join(r.LinkedDesigns, ";"),
		strings.Join(r.LinkedRisks, ";"),
		strings.Join(r.LinkedDocs, ";"),
		r.VerificationStatus, r.VerificationMethod,
	}
	if cfg.IncludeCoverage {
		cells = append(cells, fmt.Sprintf("%.0f", r.Coverage))
	}
	if cfg.IncludeDescriptions {
		cells = append(cells, r.Description)
	}
	return cells
}

// ExportCSV renders RFC 4180 CSV with the fixed column set.
func ExportCSV(m Matrix, cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(headerCells(cfg)); err != nil {
		return nil, fmt.Errorf("writing matrix header: %w", err)
	}
	for _, row := range m.Rows {
		if err := w.Write(rowCells(row, cfg)); err != nil {
			return nil, fmt.Errorf("writing matrix row %s: %w", row.RequirementID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing matrix csv: %w", err)
	}
	return buf.Bytes(), nil
}

// jsonRow mirrors Row with the optional columns dropped when toggled off.
type jsonRow struct {
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
	Coverage           *float64 `json:"coverage_percentage,omitempty"`
	Description        *string  `json:"description,omitempty"`
}

// ExportJSON renders the matrix document with generation metadata.
func ExportJSON(m Matrix, cfg Config) ([]byte, error) {
	doc := struct {
		GeneratedAt time.Time `json:"generated_at"`
		RowCount    int       `json:"row_count"`
		Rows        []jsonRow `json:"rows"`
	}{
		GeneratedAt: m.GeneratedAt,
		RowCount:    len(m.Rows),
		Rows:        make([]jsonRow, 0, len(m.Rows)),
	}
	for i := range m.Rows {
		r := &m.Rows[i]
		jr := jsonRow{
			RequirementID:      r.RequirementID,
			Title:              r.Title,
			Category:           r.Category,
			Priority:           r.Priority,
			Status:             r.Status,
			LinkedTests:        orEmpty(r.LinkedTests),
			LinkedDesigns:      orEmpty(r.LinkedDesigns),
			LinkedRisks:        orEmpty(r.LinkedRisks),
			LinkedDocs:         orEmpty(r.LinkedDocs),
			VerificationStatus: r.VerificationStatus,
			VerificationMethod: r.VerificationMethod,
		}
		if cfg.IncludeCoverage {
			jr.Coverage = &r.Coverage
		}
		if cfg.IncludeDescriptions {
			jr.Description = &r.Description
		}
		doc.Rows = append(doc.Rows, jr)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding matrix json: %w", err)
	}
	return append(data, '\n'), nil
}

// ExportHTML renders a standalone HTML document.
func ExportHTML(m Matrix, cfg Config) ([]byte, error) {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", reportTitle)
	b.WriteString("<style>table{border-collapse:collapse}th,td{border:1px solid #999;padding:4px 8px;text-align:left;vertical-align:top}th{background:#eee}</style>\n")
	b.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&b, "<h1>%s</h1>\n", reportTitle)
	fmt.Fprintf(&b, "<p>Generated: %s &middot; %d requirements</p>\n",
		m.GeneratedAt.Format(time.RFC3339), len(m.Rows))
	b.WriteString("<table>\n<thead>\n<tr>")
	for _, h := range headerCells(cfg) {
		fmt.Fprintf(&b, "<th>%s</th>", html.EscapeString(h))
	}
	b.WriteString("</tr>\n</thead>\n<tbody>\n")
	for _, row := range m.Rows {
		b.WriteString("<tr>")
		for _, cell := range rowCells(row, cfg) {
			fmt.Fprintf(&b, "<td>%s</td>", html.EscapeString(cell))
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</tbody>\n</table>\n</body>\n</html>\n")
	return []byte(b.String()), nil
}

// ExportMarkdown renders a GitHub-flavored Markdown table.
func ExportMarkdown(m Matrix, cfg Config) ([]byte, error) {
	escape := func(s string) string {
		return strings.ReplaceAll(s, "|", "\\|")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", reportTitle)
	fmt.Fprintf(&b, "Generated: %s. Requirements: %d.\n\n",
		m.GeneratedAt.Format(time.RFC3339), len(m.Rows))

	headers := headerCells(cfg)
	b.WriteString("|")
	for _, h := range headers {
		fmt.Fprintf(&b, " %s |", escape(h))
	}
	b.WriteString("\n|")
	for range headers {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")
	for _, row := range m.Rows {
		b.WriteString("|")
		for _, cell := range rowCells(row, cfg) {
			fmt.Fprintf(&b, " %s |", escape(cell))
		}
		b.WriteString("\n")
	}
	return []byte(b.String()), nil
}

// ExportText renders the fixed-width plain-text report backing the "pdf"
// target.
func ExportText(m Matrix, cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, reportTitle)
	fmt.Fprintln(&buf, strings.Repeat("=", len(reportTitle)))
	fmt.Fprintf(&buf, "Generated: %s\nRequirements: %d\n\n",
		m.GeneratedAt.Format(time.RFC3339), len(m.Rows))

	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(headerCells(cfg), "\t"))
	for _, row := range m.Rows {
		fmt.Fprintln(w, strings.Join(rowCells(row, cfg), "\t"))
	}
	if err := w.Flush(); err != nil {
		return nil, fmt.Errorf("flushing matrix text: %w", err)
	}
	return buf.Bytes(), nil
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
