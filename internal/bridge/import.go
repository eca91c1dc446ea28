// Package bridge moves link data across the system boundary: bulk CSV and
// JSON import routed through the validated creation path, and CSV, JSON, and
// DOT export.
// Implements: prd007-import-export; docs/ARCHITECTURE § Import/Export.
package bridge

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mesh-intelligence/loom/pkg/types"
)

// DefaultImportActor is recorded as created_by when an import row carries
// none.
const DefaultImportActor = "import"

// csvHeader is the required first row of a link CSV, matched exactly.
var csvHeader = []string{"SourceType", "SourceID", "TargetType", "TargetID", "LinkType", "CreatedBy"}

// Graph is the slice of the engine the importer drives: a snapshot of the
// current links for duplicate detection and the validated creation path.
type Graph interface {
	List() ([]types.Link, error)
	CreateLink(sourceID, targetID string, linkType types.LinkType, createdBy string) (types.Link, error)
}

// Importer runs bulk imports with per-row isolation: a bad row is recorded
// and skipped, never aborting the batch.
type Importer struct {
	graph Graph
	log   *slog.Logger
}

// NewImporter returns an importer submitting rows through graph.
func NewImporter(graph Graph, log *slog.Logger) *Importer {
	if log == nil {
		log = slog.Default()
	}
	return &Importer{graph: graph, log: log}
}

// record is one import row after field extraction, before validation.
type record struct {
	sourceType string
	sourceID   string
	targetType string
	targetID   string
	linkType   string
	createdBy  string
}

// ImportCSV reads the fixed-header link CSV from r. A missing or mismatched
// header fails the whole file; every data row is processed independently.
func (im *Importer) ImportCSV(r io.Reader) (types.ImportStats, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return types.ImportStats{}, fmt.Errorf("csv is empty, expected header %s: %w",
			strings.Join(csvHeader, ","), types.ErrParse)
	}
	if err != nil {
		return types.ImportStats{}, fmt.Errorf("reading csv header: %v: %w", err, types.ErrParse)
	}
	if !headerMatches(header) {
		return types.ImportStats{}, fmt.Errorf("csv header %q does not match %q: %w",
			strings.Join(header, ","), strings.Join(csvHeader, ","), types.ErrParse)
	}

	batch, err := im.newBatch()
	if err != nil {
		return types.ImportStats{}, err
	}

	for row := 1; ; row++ {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			batch.reject(row, fmt.Sprintf("unreadable row: %v", err))
			continue
		}
		if len(fields) != len(csvHeader) {
			batch.reject(row, fmt.Sprintf("expected %d fields, got %d", len(csvHeader), len(fields)))
			continue
		}
		batch.process(row, record{
			sourceType: strings.TrimSpace(fields[0]),
			sourceID:   strings.TrimSpace(fields[1]),
			targetType: strings.TrimSpace(fields[2]),
			targetID:   strings.TrimSpace(fields[3]),
			linkType:   strings.TrimSpace(fields[4]),
			createdBy:  strings.TrimSpace(fields[5]),
		})
	}
	return batch.stats, nil
}

// jsonImportRecord is one element of the import array.
type jsonImportRecord struct {
	SourceType string `json:"source_type"`
	SourceID   string `json:"source_id"`
	TargetType string `json:"target_type"`
	TargetID   string `json:"target_id"`
	LinkType   string `json:"link_type"`
	CreatedBy  string `json:"created_by"`
}

// ImportJSON reads an array of link records from r with the same per-record
// semantics as the CSV path. Malformed JSON fails the whole file.
func (im *Importer) ImportJSON(r io.Reader) (types.ImportStats, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return types.ImportStats{}, fmt.Errorf("reading import json: %v: %w", err, types.ErrIO)
	}
	var records []jsonImportRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return types.ImportStats{}, fmt.Errorf("decoding import json: %v: %w", err, types.ErrParse)
	}

	batch, err := im.newBatch()
	if err != nil {
		return types.ImportStats{}, err
	}
	for i, rec := range records {
		batch.process(i+1, record{
			sourceType: strings.TrimSpace(rec.SourceType),
			sourceID:   strings.TrimSpace(rec.SourceID),
			targetType: strings.TrimSpace(rec.TargetType),
			targetID:   strings.TrimSpace(rec.TargetID),
			linkType:   strings.TrimSpace(rec.LinkType),
			createdBy:  strings.TrimSpace(rec.CreatedBy),
		})
	}
	return batch.stats, nil
}

func headerMatches(header []string) bool {
	if len(header) != len(csvHeader) {
		return false
	}
	for i, h := range csvHeader {
		if strings.TrimSpace(header[i]) != h {
			return false
		}
	}
	return true
}

// batch tracks one import run: the stats and the known (source, target,
// type) tuples, including links created earlier in the same run.
type batch struct {
	im     *Importer
	stats  types.ImportStats
	tuples map[string]bool
}

func (im *Importer) newBatch() (*batch, error) {
	existing, err := im.graph.List()
	if err != nil {
		return nil, err
	}
	b := &batch{im: im, tuples: make(map[string]bool, len(existing))}
	for _, l := range existing {
		b.tuples[tupleKey(l.SourceID, l.TargetID, l.LinkType)] = true
	}
	return b, nil
}

func tupleKey(source, target string, lt types.LinkType) string {
	return source + "\x00" + target + "\x00" + string(lt)
}

// reject records a row-level failure and keeps the batch going.
func (b *batch) reject(row int, reason string) {
	b.stats.TotalProcessed++
	b.stats.FailedImports++
	b.stats.ValidationErrors = append(b.stats.ValidationErrors, fmt.Sprintf("row %d: %s", row, reason))
	b.im.log.Warn("import row rejected", "row", row, "reason", reason)
}

// process validates one record and submits it through the creation path.
func (b *batch) process(row int, rec record) {
	if rec.sourceID == "" {
		b.reject(row, "empty SourceID")
		return
	}
	if rec.targetID == "" {
		b.reject(row, "empty TargetID")
		return
	}
	if rec.linkType == "" {
		b.reject(row, "empty LinkType")
		return
	}
	linkType, err := types.ParseLinkType(rec.linkType)
	if err != nil {
		b.reject(row, fmt.Sprintf("unknown link type %q", rec.linkType))
		return
	}
	if err := checkStatedKind(rec.sourceType, rec.sourceID); err != nil {
		b.reject(row, err.Error())
		return
	}
	if err := checkStatedKind(rec.targetType, rec.targetID); err != nil {
		b.reject(row, err.Error())
		return
	}

	key := tupleKey(rec.sourceID, rec.targetID, linkType)
	if b.tuples[key] {
		b.stats.TotalProcessed++
		b.stats.DuplicatesFound++
		return
	}

	createdBy := rec.createdBy
	if createdBy == "" {
		createdBy = DefaultImportActor
	}

	b.stats.TotalProcessed++
	if _, err := b.im.graph.CreateLink(rec.sourceID, rec.targetID, linkType, createdBy); err != nil {
		b.stats.FailedImports++
		b.stats.ValidationErrors = append(b.stats.ValidationErrors, fmt.Sprintf("row %d: %v", row, err))
		b.im.log.Warn("import row rejected", "row", row, "reason", err)
		return
	}
	b.tuples[key] = true
	b.stats.SuccessfulImports++
}

// checkStatedKind verifies a stated entity type against the ID prefix. An
// empty stated type is allowed; the prefix alone decides the kind.
func checkStatedKind(stated, id string) error {
	kind, err := types.KindForID(id)
	if err != nil {
		return fmt.Errorf("id %q has no recognized prefix", id)
	}
	if stated == "" {
		return nil
	}
	statedKind, err := types.ParseEntityKind(stated)
	if err != nil {
		return fmt.Errorf("unknown entity type %q", stated)
	}
	if statedKind != kind {
		return fmt.Errorf("stated type %s does not match id %q", statedKind, id)
	}
	return nil
}

// IsRowError reports whether err carries a row-level category an import
// records rather than aborts on.
func IsRowError(err error) bool {
	return errors.Is(err, types.ErrValidation) || errors.Is(err, types.ErrConflict) ||
		errors.Is(err, types.ErrNotFound)
}
