// Package verify layers the evidence-based verification workflow on top of
// trace links: records move unverified -> partially verified -> fully
// verified by explicit caller action, never backward and never automatically.
// Implements: prd008-verification; docs/ARCHITECTURE § Verification.
package verify

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mesh-intelligence/loom/internal/atomicfile"
	"github.com/mesh-intelligence/loom/pkg/types"
)

// DocumentVersion is the verification document schema version this build
// reads and writes.
const DocumentVersion = "1.0"

// document is the on-disk envelope of verification.json.
type document struct {
	Version string                     `json:"version"`
	Records []types.VerificationRecord `json:"records"`
}

// Store persists verification records as a single versioned JSON document,
// one record per link, replaced atomically on every save.
type Store struct {
	path string
}

// NewStore returns a store writing to path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns every stored record. A missing document reads as an empty
// collection; a corrupt one is a parse failure, never a silent reset.
func (s *Store) Load() ([]types.VerificationRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []types.VerificationRecord{}, nil
		}
		return nil, fmt.Errorf("reading %s: %v: %w", s.path, err, types.ErrIO)
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding %s: %v: %w", s.path, err, types.ErrParse)
	}
	if doc.Version != DocumentVersion {
		return nil, fmt.Errorf("unsupported verification document version %q: %w", doc.Version, types.ErrParse)
	}
	if doc.Records == nil {
		return []types.VerificationRecord{}, nil
	}
	return doc.Records, nil
}

// Save replaces the entire collection.
func (s *Store) Save(records []types.VerificationRecord) error {
	if records == nil {
		records = []types.VerificationRecord{}
	}
	data, err := json.MarshalIndent(document{Version: DocumentVersion, Records: records}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding verification document: %w", err)
	}
	if err := atomicfile.WriteFile(s.path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %v: %w", s.path, err, types.ErrIO)
	}
	return nil
}

// Get returns the record for a link. A link with no stored record reads as a
// fresh unverified record rather than an error; absence of evidence is a
// state, not a failure.
func (s *Store) Get(linkID string) (types.VerificationRecord, error) {
	records, err := s.Load()
	if err != nil {
		return types.VerificationRecord{}, err
	}
	for _, r := range records {
		if r.LinkID == linkID {
			return r, nil
		}
	}
	return types.NewVerificationRecord(linkID), nil
}

// Put upserts one record.
func (s *Store) Put(rec types.VerificationRecord) error {
	records, err := s.Load()
	if err != nil {
		return err
	}
	replaced := false
	for i, r := range records {
		if r.LinkID == rec.LinkID {
			records[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, rec)
	}
	return s.Save(records)
}

// Delete drops the record for a link. Deleting an absent record is a no-op:
// the link may never have entered the workflow.
func (s *Store) Delete(linkID string) error {
	records, err := s.Load()
	if err != nil {
		return err
	}
	out := records[:0]
	for _, r := range records {
		if r.LinkID != linkID {
			out = append(out, r)
		}
	}
	return s.Save(out)
}
